// internal/app/store/internships/internshipstore.go
package internshipstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/interno/internal/app/store/recordstore"
	"github.com/dalemusser/interno/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection is the Mongo collection holding internships.
const Collection = "internships"

// internshipDoc is the stored shape. region_id is null when unassigned.
type internshipDoc struct {
	ID           primitive.ObjectID  `bson:"_id"`
	Name         string              `bson:"name"`
	NameCI       string              `bson:"name_ci"`
	IndustryType string              `bson:"industry_type"`
	Address      string              `bson:"address"`
	RegionID     *primitive.ObjectID `bson:"region_id"`
	Status       string              `bson:"status"`
	Priority     string              `bson:"priority"`
	Notes        string              `bson:"notes"`
	Contacts     []models.Contact    `bson:"point_of_contacts"`
	CreatedAt    time.Time           `bson:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at"`
}

// hydratedRow is what the $lookup pipeline returns: the doc plus a
// zero-or-one element region array.
type hydratedRow struct {
	Doc    internshipDoc `bson:",inline"`
	Region []struct {
		ID   primitive.ObjectID `bson:"_id"`
		Name string             `bson:"name"`
	} `bson:"region"`
}

func (r hydratedRow) model() models.HydratedInternship {
	var ref *models.RegionRef
	if len(r.Region) > 0 {
		ref = &models.RegionRef{ID: r.Region[0].ID.Hex(), Name: r.Region[0].Name}
	} else if r.Doc.RegionID != nil {
		// dangling reference: keep the id, group as unassigned
		ref = &models.RegionRef{ID: r.Doc.RegionID.Hex()}
	}
	return models.Hydrate(r.Doc.stored(), ref)
}

func (d internshipDoc) stored() models.StoredInternship {
	regionID := ""
	if d.RegionID != nil {
		regionID = d.RegionID.Hex()
	}
	contacts := d.Contacts
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return models.StoredInternship{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		IndustryType: d.IndustryType,
		Address:      d.Address,
		RegionID:     regionID,
		Status:       d.Status,
		Priority:     d.Priority,
		Notes:        d.Notes,
		Contacts:     contacts,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// Store is the Mongo-backed internship store.
type Store struct {
	c *mongo.Collection
}

var _ recordstore.Internships = (*Store)(nil)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// hydratePipeline joins regions onto the matched internships.
func hydratePipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "regions"},
			{Key: "localField", Value: "region_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "region"},
		}}},
	}
}

func (s *Store) List(ctx context.Context) ([]models.HydratedInternship, error) {
	return s.aggregate(ctx, bson.M{})
}

func (s *Store) aggregate(ctx context.Context, match bson.M) ([]models.HydratedInternship, error) {
	cur, err := s.c.Aggregate(ctx, hydratePipeline(match))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []hydratedRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make([]models.HydratedInternship, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (models.HydratedInternship, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.HydratedInternship{}, recordstore.ErrNotFound
	}
	rows, err := s.aggregate(ctx, bson.M{"_id": oid})
	if err != nil {
		return models.HydratedInternship{}, err
	}
	if len(rows) == 0 {
		return models.HydratedInternship{}, recordstore.ErrNotFound
	}
	return rows[0], nil
}

func (s *Store) Create(ctx context.Context, in models.StoredInternship) (models.HydratedInternship, error) {
	regionID, err := parseRegionID(in.RegionID)
	if err != nil {
		return models.HydratedInternship{}, err
	}
	now := time.Now().UTC()
	contacts := in.Contacts
	if contacts == nil {
		contacts = []models.Contact{}
	}
	d := internshipDoc{
		ID:           primitive.NewObjectID(),
		Name:         in.Name,
		NameCI:       text.Fold(in.Name),
		IndustryType: in.IndustryType,
		Address:      in.Address,
		RegionID:     regionID,
		Status:       in.Status,
		Priority:     in.Priority,
		Notes:        in.Notes,
		Contacts:     contacts,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.HydratedInternship{}, err
	}
	return s.Get(ctx, d.ID.Hex())
}

func (s *Store) Update(ctx context.Context, id string, p models.InternshipPatch) (models.HydratedInternship, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.HydratedInternship{}, recordstore.ErrNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Name != nil {
		set["name"] = *p.Name
		set["name_ci"] = text.Fold(*p.Name)
	}
	if p.IndustryType != nil {
		set["industry_type"] = *p.IndustryType
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	if p.RegionID != nil {
		rid, err := parseRegionID(*p.RegionID)
		if err != nil {
			return models.HydratedInternship{}, err
		}
		set["region_id"] = rid
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.Priority != nil {
		set["priority"] = *p.Priority
	}
	if p.Notes != nil {
		set["notes"] = *p.Notes
	}
	if p.Contacts != nil {
		contacts := *p.Contacts
		if contacts == nil {
			contacts = []models.Contact{}
		}
		set["point_of_contacts"] = contacts
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return models.HydratedInternship{}, err
	}
	if res.MatchedCount == 0 {
		return models.HydratedInternship{}, recordstore.ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return recordstore.ErrNotFound
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return recordstore.ErrNotFound
	}
	return nil
}

// ErrBadRegionID is returned when a region id is not a valid ObjectID.
var ErrBadRegionID = errors.New("invalid region id")

func parseRegionID(id string) (*primitive.ObjectID, error) {
	if id == "" {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrBadRegionID
	}
	return &oid, nil
}

// internal/app/store/regions/regionstore.go
package regionstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/interno/internal/app/store/recordstore"
	"github.com/dalemusser/interno/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	Collection            = "regions"
	internshipsCollection = "internships"
)

type regionDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	NameCI    string             `bson:"name_ci"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d regionDoc) model() models.Region {
	return models.Region{ID: d.ID.Hex(), Name: d.Name, CreatedAt: d.CreatedAt}
}

// Store is the Mongo-backed region store.
type Store struct {
	c           *mongo.Collection
	internships *mongo.Collection
}

var _ recordstore.Regions = (*Store)(nil)

func New(db *mongo.Database) *Store {
	return &Store{
		c:           db.Collection(Collection),
		internships: db.Collection(internshipsCollection),
	}
}

func (s *Store) List(ctx context.Context) ([]models.Region, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []regionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Region, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (models.Region, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Region{}, recordstore.ErrNotFound
	}
	var d regionDoc
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Region{}, recordstore.ErrNotFound
		}
		return models.Region{}, err
	}
	return d.model(), nil
}

func (s *Store) Create(ctx context.Context, name string) (models.Region, error) {
	name = strings.TrimSpace(name)
	d := regionDoc{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Region{}, recordstore.ErrDuplicateRegion
		}
		return models.Region{}, err
	}
	return d.model(), nil
}

func (s *Store) Rename(ctx context.Context, id, name string) (models.Region, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Region{}, recordstore.ErrNotFound
	}
	name = strings.TrimSpace(name)
	var d regionDoc
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"name": name, "name_ci": text.Fold(name)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return models.Region{}, recordstore.ErrNotFound
		case wafflemongo.IsDup(err):
			return models.Region{}, recordstore.ErrDuplicateRegion
		}
		return models.Region{}, err
	}
	return d.model(), nil
}

// Delete removes the region and clears region_id on every internship that
// pointed at it.
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
	_, err = s.internships.UpdateMany(ctx,
		bson.M{"region_id": oid},
		bson.M{"$set": bson.M{"region_id": nil, "updated_at": time.Now().UTC()}},
	)
	return err
}

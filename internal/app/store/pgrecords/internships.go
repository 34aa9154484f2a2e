package pgrecords

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/interno/internal/app/store/recordstore"
	"github.com/dalemusser/interno/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrBadRegionID is returned when an internship names a region id that is
// not a uuid.
var ErrBadRegionID = errors.New("invalid region id")

// Internships is the Postgres internship store.
type Internships struct {
	db *pgxpool.Pool
}

var _ recordstore.Internships = (*Internships)(nil)

func NewInternships(db *pgxpool.Pool) *Internships {
	return &Internships{db: db}
}

const hydratedSelect = `
select i.id::text, i.name, i.industry_type, i.address,
       coalesce(i.region_id::text, ''), coalesce(r.name, ''),
       i.status, i.priority, i.notes, i.point_of_contacts,
       i.created_at, i.updated_at
from internships i
left join regions r on r.id = i.region_id
`

func scanHydrated(row pgx.Row) (models.HydratedInternship, error) {
	var (
		s          models.StoredInternship
		regionName string
	)
	err := row.Scan(&s.ID, &s.Name, &s.IndustryType, &s.Address,
		&s.RegionID, &regionName,
		&s.Status, &s.Priority, &s.Notes, &s.Contacts,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.HydratedInternship{}, recordstore.ErrNotFound
		}
		return models.HydratedInternship{}, err
	}
	var ref *models.RegionRef
	if s.RegionID != "" {
		ref = &models.RegionRef{ID: s.RegionID, Name: regionName}
	}
	return models.Hydrate(s, ref), nil
}

func (s *Internships) List(ctx context.Context) ([]models.HydratedInternship, error) {
	rows, err := s.db.Query(ctx, hydratedSelect+`order by i.created_at desc, i.id desc;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.HydratedInternship{}
	for rows.Next() {
		rec, err := scanHydrated(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Internships) Get(ctx context.Context, id string) (models.HydratedInternship, error) {
	if !validID(id) {
		return models.HydratedInternship{}, recordstore.ErrNotFound
	}
	return scanHydrated(s.db.QueryRow(ctx, hydratedSelect+`where i.id = $1;`, id))
}

// regionParam maps "" to SQL null.
func regionParam(id string) (any, error) {
	if id == "" {
		return nil, nil
	}
	if !validID(id) {
		return nil, ErrBadRegionID
	}
	return id, nil
}

func contactsParam(c []models.Contact) []models.Contact {
	if c == nil {
		return []models.Contact{}
	}
	return c
}

func (s *Internships) Create(ctx context.Context, in models.StoredInternship) (models.HydratedInternship, error) {
	region, err := regionParam(in.RegionID)
	if err != nil {
		return models.HydratedInternship{}, err
	}
	const q = `
insert into internships
  (name, name_ci, industry_type, address, region_id, status, priority, notes, point_of_contacts)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
returning id::text;
`
	var id string
	err = s.db.QueryRow(ctx, q,
		in.Name, text.Fold(in.Name), in.IndustryType, in.Address, region,
		in.Status, in.Priority, in.Notes, contactsParam(in.Contacts),
	).Scan(&id)
	if err != nil {
		return models.HydratedInternship{}, err
	}
	return s.Get(ctx, id)
}

// Update reads the row under a lock, applies the patch and writes every
// column back, so concurrent patches to different fields do not clobber
// each other.
func (s *Internships) Update(ctx context.Context, id string, patch models.InternshipPatch) (models.HydratedInternship, error) {
	if !validID(id) {
		return models.HydratedInternship{}, recordstore.ErrNotFound
	}
	if patch.RegionID != nil {
		if _, err := regionParam(*patch.RegionID); err != nil {
			return models.HydratedInternship{}, err
		}
	}

	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		const sel = `
select name, industry_type, address, coalesce(region_id::text, ''),
       status, priority, notes, point_of_contacts
from internships
where id = $1
for update;
`
		var cur models.StoredInternship
		err := tx.QueryRow(ctx, sel, id).Scan(&cur.Name, &cur.IndustryType, &cur.Address,
			&cur.RegionID, &cur.Status, &cur.Priority, &cur.Notes, &cur.Contacts)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return recordstore.ErrNotFound
			}
			return fmt.Errorf("lock internship: %w", err)
		}

		next := patch.Apply(cur)
		region, _ := regionParam(next.RegionID)

		const upd = `
update internships
set name = $2, name_ci = $3, industry_type = $4, address = $5, region_id = $6,
    status = $7, priority = $8, notes = $9, point_of_contacts = $10, updated_at = now()
where id = $1;
`
		_, err = tx.Exec(ctx, upd, id,
			next.Name, text.Fold(next.Name), next.IndustryType, next.Address, region,
			next.Status, next.Priority, next.Notes, contactsParam(next.Contacts))
		return err
	})
	if err != nil {
		return models.HydratedInternship{}, err
	}
	return s.Get(ctx, id)
}

func (s *Internships) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return recordstore.ErrNotFound
	}
	tag, err := s.db.Exec(ctx, `delete from internships where id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return recordstore.ErrNotFound
	}
	return nil
}

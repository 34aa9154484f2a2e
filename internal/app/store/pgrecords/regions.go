package pgrecords

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/interno/internal/app/store/recordstore"
	"github.com/dalemusser/interno/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Regions is the Postgres region store.
type Regions struct {
	db *pgxpool.Pool
}

var _ recordstore.Regions = (*Regions)(nil)

func NewRegions(db *pgxpool.Pool) *Regions {
	return &Regions{db: db}
}

func scanRegion(row pgx.Row) (models.Region, error) {
	var r models.Region
	if err := row.Scan(&r.ID, &r.Name, &r.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Region{}, recordstore.ErrNotFound
		}
		return models.Region{}, err
	}
	return r, nil
}

func (s *Regions) List(ctx context.Context) ([]models.Region, error) {
	const q = `
select id::text, name, created_at
from regions
order by name_ci, id;
`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Region{}
	for rows.Next() {
		r, err := scanRegion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Regions) Get(ctx context.Context, id string) (models.Region, error) {
	if !validID(id) {
		return models.Region{}, recordstore.ErrNotFound
	}
	const q = `select id::text, name, created_at from regions where id = $1;`
	return scanRegion(s.db.QueryRow(ctx, q, id))
}

func (s *Regions) Create(ctx context.Context, name string) (models.Region, error) {
	name = strings.TrimSpace(name)
	const q = `
insert into regions (name, name_ci)
values ($1, $2)
returning id::text, name, created_at;
`
	r, err := scanRegion(s.db.QueryRow(ctx, q, name, text.Fold(name)))
	if isUniqueViolation(err) {
		return models.Region{}, recordstore.ErrDuplicateRegion
	}
	return r, err
}

func (s *Regions) Rename(ctx context.Context, id, name string) (models.Region, error) {
	if !validID(id) {
		return models.Region{}, recordstore.ErrNotFound
	}
	name = strings.TrimSpace(name)
	const q = `
update regions
set name = $2, name_ci = $3
where id = $1
returning id::text, name, created_at;
`
	r, err := scanRegion(s.db.QueryRow(ctx, q, id, name, text.Fold(name)))
	if isUniqueViolation(err) {
		return models.Region{}, recordstore.ErrDuplicateRegion
	}
	return r, err
}

// Delete removes the region. The foreign key clears region_id on the
// internships that referenced it.
func (s *Regions) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return recordstore.ErrNotFound
	}
	tag, err := s.db.Exec(ctx, `delete from regions where id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return recordstore.ErrNotFound
	}
	return nil
}

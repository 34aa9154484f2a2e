package pgrecords

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied in order on every start; each statement is idempotent.
var schema = []string{
	`create table if not exists regions (
  id uuid primary key default gen_random_uuid(),
  name text not null,
  name_ci text not null,
  created_at timestamptz not null default now()
)`,
	`create unique index if not exists regions_name_ci_key on regions (name_ci)`,

	`create table if not exists internships (
  id uuid primary key default gen_random_uuid(),
  name text not null,
  name_ci text not null default '',
  industry_type text not null default 'Company',
  address text not null default '',
  region_id uuid references regions (id) on delete set null,
  status text not null default 'Not Applied',
  priority text not null default 'Medium',
  notes text not null default '',
  point_of_contacts jsonb not null default '[]'::jsonb,
  created_at timestamptz not null default now(),
  updated_at timestamptz not null default now()
)`,
	`create index if not exists internships_created_at_idx on internships (created_at desc, id desc)`,
	`create index if not exists internships_region_id_idx on internships (region_id)`,

	`create table if not exists users (
  id uuid primary key default gen_random_uuid(),
  email text not null,
  email_ci text not null,
  full_name text not null default '',
  password_hash text not null,
  status text not null default 'active',
  created_at timestamptz not null default now(),
  updated_at timestamptz not null default now()
)`,
	`create unique index if not exists users_email_ci_key on users (email_ci)`,
}

// EnsureSchema creates the tables and indexes if they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

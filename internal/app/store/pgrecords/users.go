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

// Users is the Postgres account store.
type Users struct {
	db *pgxpool.Pool
}

var _ recordstore.Users = (*Users)(nil)

func NewUsers(db *pgxpool.Pool) *Users {
	return &Users{db: db}
}

const userColumns = `id::text, email, full_name, password_hash, status, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, recordstore.ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Users) GetByEmail(ctx context.Context, email string) (models.User, error) {
	q := `select ` + userColumns + ` from users where email_ci = $1;`
	return scanUser(s.db.QueryRow(ctx, q, text.Fold(strings.TrimSpace(email))))
}

func (s *Users) GetByID(ctx context.Context, id string) (models.User, error) {
	if !validID(id) {
		return models.User{}, recordstore.ErrNotFound
	}
	q := `select ` + userColumns + ` from users where id = $1;`
	return scanUser(s.db.QueryRow(ctx, q, id))
}

func (s *Users) Create(ctx context.Context, u models.User) (models.User, error) {
	email := strings.TrimSpace(u.Email)
	status := u.Status
	if status == "" {
		status = "active"
	}
	q := `
insert into users (email, email_ci, full_name, password_hash, status)
values ($1, $2, $3, $4, $5)
returning ` + userColumns + `;`
	created, err := scanUser(s.db.QueryRow(ctx, q, email, text.Fold(email), strings.TrimSpace(u.FullName), u.PasswordHash, status))
	if isUniqueViolation(err) {
		return models.User{}, recordstore.ErrDuplicateUser
	}
	return created, err
}

func (s *Users) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRow(ctx, `select count(*) from users;`).Scan(&n)
	return n, err
}

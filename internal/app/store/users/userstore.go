// internal/app/store/users/userstore.go
package userstore

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
)

// Collection is the Mongo collection holding accounts.
const Collection = "users"

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	Email        string             `bson:"email"`
	EmailCI      string             `bson:"email_ci"`
	FullName     string             `bson:"full_name"`
	PasswordHash string             `bson:"password_hash"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d userDoc) model() models.User {
	return models.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		FullName:     d.FullName,
		PasswordHash: d.PasswordHash,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type Store struct {
	c *mongo.Collection
}

var _ recordstore.Users = (*Store)(nil)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func (s *Store) GetByID(ctx context.Context, id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, recordstore.ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

// GetByEmail matches email case- and diacritic-insensitively.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findOne(ctx, bson.M{"email_ci": text.Fold(strings.TrimSpace(email))})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var d userDoc
	if err := s.c.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, recordstore.ErrNotFound
		}
		return models.User{}, err
	}
	return d.model(), nil
}

// Create inserts u, assigning id and timestamps. Status defaults to "active".
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	email := strings.TrimSpace(u.Email)
	d := userDoc{
		ID:           primitive.NewObjectID(),
		Email:        email,
		EmailCI:      text.Fold(email),
		FullName:     strings.TrimSpace(u.FullName),
		PasswordHash: u.PasswordHash,
		Status:       u.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if d.Status == "" {
		d.Status = "active"
	}
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, recordstore.ErrDuplicateUser
		}
		return models.User{}, err
	}
	return d.model(), nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// Package mongorecords bundles the Mongo stores into a recordstore.Backend.
// It is the default record store (record_store = "mongo").
package mongorecords

import (
	"context"

	internshipstore "github.com/dalemusser/interno/internal/app/store/internships"
	"github.com/dalemusser/interno/internal/app/store/recordstore"
	regionstore "github.com/dalemusser/interno/internal/app/store/regions"
	userstore "github.com/dalemusser/interno/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewBackend wires the internship, region and user stores around db.
func NewBackend(db *mongo.Database) recordstore.Backend {
	client := db.Client()
	return recordstore.Backend{
		Internships: internshipstore.New(db),
		Regions:     regionstore.New(db),
		Users:       userstore.New(db),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		Name: "mongo",
	}
}

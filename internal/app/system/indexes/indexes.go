// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureInternships(ctx, db); err != nil {
		problems = append(problems, "internships: "+err.Error())
	}
	if err := ensureRegions(ctx, db); err != nil {
		problems = append(problems, "regions: "+err.Error())
	}
	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolVal(p *bool) bool { return p != nil && *p }

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

func listIndexes(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	out := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return out
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out
}

// recreate drops the index called oldName and creates m in its place.
func recreate(ctx context.Context, coll *mongo.Collection, oldName string, m mongo.IndexModel, name, sig string) error {
	if _, err := coll.Indexes().DropOne(ctx, oldName); err != nil {
		return fmt.Errorf("%s(%s): drop failed: %v", coll.Name(), name, err)
	}
	if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
		return createErr(coll, m, name, sig, err)
	}
	return nil
}

func createErr(coll *mongo.Collection, m mongo.IndexModel, name, sig string, err error) error {
	if isDuplicateKeyErr(err) && m.Options != nil && boolVal(m.Options.Unique) {
		helper := ""
		if field, _, ok := strings.Cut(sig, ":"); ok {
			helper = fmt.Sprintf("; duplicates exist on %s.%s. Example finder:\n"+
				`db.%s.aggregate([{ $group: { _id: "$%s", n: { $sum: 1 } } }, { $match: { n: { $gt: 1 } } }])`,
				coll.Name(), field, coll.Name(), field)
		}
		return fmt.Errorf("%s(%s): cannot create unique index (duplicates present)%s", coll.Name(), name, helper)
	}
	return fmt.Errorf("%s(%s): %v", coll.Name(), name, err)
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()
		log := zap.L().With(
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", boolVal(desiredUnique)))
		log.Info("ensuring index")

		existing := listIndexes(ctx, coll)

		if ex, ok := existing[desiredSig]; ok {
			switch {
			case boolVal(desiredUnique) != boolVal(ex.Unique):
				// Options mismatch (e.g., upgrading to unique). Drop & recreate.
				if err := recreate(ctx, coll, ex.Name, m, desiredName, desiredSig); err != nil {
					log.Warn("index recreate failed", zap.Error(err))
					errs = append(errs, err.Error())
					continue
				}
				log.Info("index dropped and recreated", zap.Duration("took", time.Since(start)))
			case desiredName != "" && ex.Name != desiredName:
				if err := recreate(ctx, coll, ex.Name, m, desiredName, desiredSig); err != nil {
					log.Warn("index rename failed", zap.String("from", ex.Name), zap.Error(err))
					errs = append(errs, err.Error())
					continue
				}
				log.Info("index renamed", zap.String("from", ex.Name), zap.Duration("took", time.Since(start)))
			default:
				log.Info("reusing existing index", zap.Duration("took", time.Since(start)))
			}
			continue
		}

		created, err := coll.Indexes().CreateOne(ctx, m)
		if err == nil {
			log.Info("index ensured",
				zap.String("created_name", created),
				zap.Duration("took", time.Since(start)))
			continue
		}

		if isOptionsConflictErr(err) {
			if match, ok := listIndexes(ctx, coll)[desiredSig]; ok {
				if boolVal(desiredUnique) == boolVal(match.Unique) {
					log.Info("reusing existing index (post-conflict)", zap.String("existing", match.Name))
					continue
				}
				if rerr := recreate(ctx, coll, match.Name, m, desiredName, desiredSig); rerr != nil {
					errs = append(errs, rerr.Error())
					continue
				}
				log.Info("index dropped and recreated (post-conflict)", zap.Duration("took", time.Since(start)))
				continue
			}
		}

		log.Warn("index ensure failed", zap.Duration("took", time.Since(start)), zap.Error(err))
		errs = append(errs, createErr(coll, m, desiredName, desiredSig, err).Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureInternships(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("internships")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// List order: newest first, _id as tiebreaker
		{
			Keys: bson.D{
				{Key: "created_at", Value: -1},
				{Key: "_id", Value: -1},
			},
			Options: options.Index().SetName("idx_internships_created__id"),
		},
		// Region delete unsets region_id on every referencing record
		{
			Keys:    bson.D{{Key: "region_id", Value: 1}},
			Options: options.Index().SetName("idx_internships_region"),
		},
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_internships_nameci"),
		},
	})
}

func ensureRegions(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("regions")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Region names are unique case-insensitively; also the list order
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_regions_nameci"),
		},
	})
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_emailci"),
		},
	})
}

// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/strataministry/internal/domain/models"
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

	for _, coll := range []string{
		models.CollectionStatistics,
		models.CollectionPaymentMethods,
		models.CollectionLocations,
	} {
		if err := ensurePositioned(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
		}
	}
	if err := ensureBanners(ctx, db); err != nil {
		problems = append(problems, models.CollectionBanners+": "+err.Error())
	}
	if err := ensureContentBlocks(ctx, db); err != nil {
		problems = append(problems, models.CollectionContentBlocks+": "+err.Error())
	}
	if err := ensureDocuments(ctx, db); err != nil {
		problems = append(problems, models.CollectionDocuments+": "+err.Error())
	}
	if err := ensureAdmins(ctx, db); err != nil {
		problems = append(problems, "admins: "+err.Error())
	}
	if err := ensureLoginAttempts(ctx, db); err != nil {
		problems = append(problems, "login_attempts: "+err.Error())
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

func sameBoolPtr(a, b *bool) bool {
	av := false
	bv := false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

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
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
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
			if m.Options.Unique != nil {
				desiredUnique = m.Options.Unique
			}
		}
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()
		zap.L().Info("ensuring index",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique))

		// 1) Load existing indexes
		existing := map[string]existingIndex{} // sig -> index
		cur, err := coll.Indexes().List(ctx)
		if err == nil {
			defer cur.Close(ctx)
			for cur.Next(ctx) {
				var idx existingIndex
				if err := cur.Decode(&idx); err != nil {
					zap.L().Warn("failed to decode existing index",
						zap.String("collection", coll.Name()),
						zap.Error(err))
					continue
				}
				existing[keySig(idx.Key)] = idx
			}
		}

		if ex, ok := existing[desiredSig]; ok {
			// Same key pattern exists already.
			if sameBoolPtr(desiredUnique, ex.Unique) {
				// Names aligned (or we don't care) → reuse
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig),
					zap.Bool("unique", ex.Unique != nil && *ex.Unique),
					zap.String("took", time.Since(start).String()))
				continue
			}

			// Options mismatch (e.g., upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				zap.L().Warn("drop existing index failed",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig),
					zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
			if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
				if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
					errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
				} else {
					errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				}
				continue
			}
			zap.L().Info("index dropped and recreated",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()))
			continue
		}

		// 2) No existing index with the same keys: create it.
		if created, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isOptionsConflictErr(err) {
				zap.L().Warn("index ensure failed (options conflict)",
					zap.String("collection", coll.Name()),
					zap.String("name", desiredName),
					zap.String("keys", desiredSig),
					zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				continue
			}

			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		} else {
			zap.L().Info("index ensured",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("created_name", created),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

// ensurePositioned covers list sections ordered by position.
func ensurePositioned(ctx context.Context, db *mongo.Database, name string) error {
	c := db.Collection(name)
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: models.FieldActive, Value: 1},
				{Key: models.FieldPosition, Value: 1},
			},
			Options: options.Index().SetName("idx_" + name + "_active_position"),
		},
	})
}

func ensureBanners(ctx context.Context, db *mongo.Database) error {
	c := db.Collection(models.CollectionBanners)
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Latest active banner per page
		{
			Keys: bson.D{
				{Key: "page", Value: 1},
				{Key: models.FieldActive, Value: 1},
				{Key: models.FieldCreatedAt, Value: -1},
			},
			Options: options.Index().SetName("idx_banners_page_active_created"),
		},
	})
}

func ensureContentBlocks(ctx context.Context, db *mongo.Database) error {
	c := db.Collection(models.CollectionContentBlocks)
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Beliefs and ministries list by type then position
		{
			Keys: bson.D{
				{Key: "type", Value: 1},
				{Key: models.FieldActive, Value: 1},
				{Key: models.FieldPosition, Value: 1},
			},
			Options: options.Index().SetName("idx_blocks_type_active_position"),
		},
	})
}

func ensureDocuments(ctx context.Context, db *mongo.Database) error {
	c := db.Collection(models.CollectionDocuments)
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Newest first
		{
			Keys: bson.D{
				{Key: models.FieldActive, Value: 1},
				{Key: models.FieldCreatedAt, Value: -1},
			},
			Options: options.Index().SetName("idx_documents_active_created"),
		},
	})
}

func ensureAdmins(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("admins")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email is the login identifier
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_admins_email"),
		},
	})
}

func ensureLoginAttempts(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("login_attempts")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "identifier", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_login_attempts_identifier"),
		},
		// Drop stale windows after a day
		{
			Keys:    bson.D{{Key: "last_attempt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(86400).SetName("idx_login_attempts_ttl"),
		},
	})
}

// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/strataministry/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Collection names owned by the admin stores. Literal here so this package
// does not import them.
const (
	adminsCollection        = "admins"
	loginAttemptsCollection = "login_attempts"
)

// contentCollections are read by the public pages. They carry no validator:
// editors write them with mixed field types (the active flag in particular)
// and the loader tolerates that.
var contentCollections = []string{
	models.CollectionBanners,
	models.CollectionContentBlocks,
	models.CollectionStatistics,
	models.CollectionLocations,
	models.CollectionPaymentMethods,
	models.CollectionDocuments,
}

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators to the ones this app writes. On servers that don't support
// collMod/validators (e.g. some DocumentDB versions), it logs and skips.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll, logger); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema, logger); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				logger.Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	for _, coll := range contentCollections {
		ensure(coll, nil)
	}
	ensure(adminsCollection, adminsSchema())
	ensure(loginAttemptsCollection, loginAttemptsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers ---------------------- */

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection idempotently makes sure name exists.
// Returns created==true only if it was created by this call.
func ensureCollection(ctx context.Context, db *mongo.Database, name string, logger *zap.Logger) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		logger.Debug("collection exists", zap.String("collection", name))
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return false, nil
		}
		logger.Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	logger.Info("created collection", zap.String("collection", name))
	return true, nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M, logger *zap.Logger) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	logger.Debug("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func commandErrorMatches(err error, code int32, phrases ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func isNamespaceExistsErr(err error) bool {
	return commandErrorMatches(err, 48, "already exists", "namespace exists")
}

func isNoSuchCommand(err error) bool {
	return commandErrorMatches(err, 59, "no such command")
}

func isNotImplemented(err error) bool {
	return commandErrorMatches(err, 115, "not implemented", "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func adminsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"email", "password_hash", "email_confirmed"},
			"properties": bson.M{
				"email":           bson.M{"bsonType": "string", "minLength": 3, "pattern": "^[^A-Z\\s]+@[^A-Z\\s]+$"},
				"password_hash":   bson.M{"bsonType": "string"},
				"email_confirmed": bson.M{"bsonType": "bool"},
				"last_login_at":   bson.M{"bsonType": bson.A{"date", "null"}},
			},
		},
	}
}

func loginAttemptsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"identifier", "failures"},
			"properties": bson.M{
				"identifier": bson.M{"bsonType": "string", "minLength": 1},
				"failures":   bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
			},
		},
	}
}

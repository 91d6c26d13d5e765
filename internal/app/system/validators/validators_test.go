package validators

import (
	"errors"
	"testing"

	"github.com/dalemusser/strataministry/internal/domain/models"
	"github.com/dalemusser/strataministry/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll() error = %v", err)
	}

	collections := append([]string{adminsCollection, loginAttemptsCollection}, contentCollections...)
	for _, coll := range collections {
		exists, err := collectionExists(ctx, db, coll)
		if err != nil {
			t.Errorf("collectionExists(%s) error = %v", coll, err)
			continue
		}
		if !exists {
			t.Errorf("collection %s should exist after EnsureAll", coll)
		}
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("First EnsureAll() error = %v", err)
	}
	if err := EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("Second EnsureAll() error = %v", err)
	}
}

func TestAdminsValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll() error = %v", err)
	}
	coll := db.Collection(adminsCollection)

	good := bson.M{"email": "pastor@example.org", "password_hash": "$2a$12$x", "email_confirmed": true}
	if _, err := coll.InsertOne(ctx, good); err != nil {
		t.Fatalf("valid admin rejected: %v", err)
	}

	for name, doc := range map[string]bson.M{
		"missing hash":    {"email": "a@example.org", "email_confirmed": true},
		"uppercase email": {"email": "A@Example.org", "password_hash": "x", "email_confirmed": true},
		"string flag":     {"email": "b@example.org", "password_hash": "x", "email_confirmed": "true"},
	} {
		if _, err := coll.InsertOne(ctx, doc); err == nil {
			t.Errorf("%s: insert should fail validation", name)
		}
	}
}

func TestContentCollectionsAcceptMixedFlags(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll() error = %v", err)
	}

	docs := []any{
		bson.M{"label": "Members", "active": true},
		bson.M{"label": "Churches", "active": "true"},
	}
	if _, err := db.Collection(models.CollectionStatistics).InsertMany(ctx, docs); err != nil {
		t.Fatalf("content insert rejected: %v", err)
	}
}

func TestEnsureCollection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := ensureCollection(ctx, db, "new_collection", zap.NewNop())
	if err != nil {
		t.Fatalf("First ensureCollection() error = %v", err)
	}
	if !created {
		t.Error("First ensureCollection() should return created=true")
	}

	created, err = ensureCollection(ctx, db, "new_collection", zap.NewNop())
	if err != nil {
		t.Fatalf("Second ensureCollection() error = %v", err)
	}
	if created {
		t.Error("Second ensureCollection() should return created=false")
	}
}

func TestErrorClassifiers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(error) bool
		err  error
		want bool
	}{
		{"exists nil", isNamespaceExistsErr, nil, false},
		{"exists generic", isNamespaceExistsErr, errors.New("some error"), false},
		{"exists message", isNamespaceExistsErr, errors.New("Collection already exists"), true},
		{"exists code 48", isNamespaceExistsErr, mongo.CommandError{Code: 48, Message: "exists"}, true},
		{"no such command message", isNoSuchCommand, errors.New("NO SUCH COMMAND"), true},
		{"no such command code 59", isNoSuchCommand, mongo.CommandError{Code: 59, Message: "command"}, true},
		{"not implemented code 115", isNotImplemented, mongo.CommandError{Code: 115, Message: "impl"}, true},
		{"not supported message", isNotImplemented, mongo.CommandError{Message: "not supported"}, true},
		{"not implemented generic", isNotImplemented, errors.New("timeout"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.err); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

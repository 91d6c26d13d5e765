// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/strataministry/internal/app/store/admins"
	"github.com/dalemusser/strataministry/internal/app/store/ratelimit"
	"github.com/dalemusser/strataministry/internal/app/store/records"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// It is created in ConnectDB and passed to EnsureSchema, Startup,
// BuildHandler, and Shutdown.
type DBDeps struct {
	// MongoDB client and database
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Records serves every public content section.
	Records *records.Store

	// Admins and LoginAttempts back the local identity provider.
	Admins        *admins.Store
	LoginAttempts *ratelimit.Store
}

// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/strataministry/internal/app/store/admins"
	"github.com/dalemusser/strataministry/internal/app/system/authutil"
	"github.com/dalemusser/strataministry/internal/app/system/normalize"
	"github.com/dalemusser/strataministry/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AdminSeed is the bootstrap admin account taken from configuration.
type AdminSeed struct {
	Email    string
	Password string
}

// SeedAll seeds default data if not already present.
func SeedAll(ctx context.Context, db *mongo.Database, seed AdminSeed, logger *zap.Logger) error {
	if err := seedAdmin(ctx, admins.New(db), seed, logger); err != nil {
		return err
	}
	return nil
}

// seedAdmin creates the configured admin when it does not exist yet. An
// existing account is left untouched so a changed password in config never
// overwrites one set later. Seeding is skipped when no email is configured.
func seedAdmin(ctx context.Context, store *admins.Store, seed AdminSeed, logger *zap.Logger) error {
	email := normalize.Email(seed.Email)
	if email == "" {
		logger.Debug("no seed admin configured")
		return nil
	}

	_, err := store.GetByEmail(ctx, email)
	if err == nil {
		logger.Debug("seed admin already present", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		logger.Error("failed to look up seed admin", zap.String("email", email), zap.Error(err))
		return err
	}

	if err := authutil.ValidatePassword(seed.Password); err != nil {
		return fmt.Errorf("seed admin %s: %w", email, err)
	}
	hash, err := authutil.HashPassword(seed.Password)
	if err != nil {
		return fmt.Errorf("seed admin %s: hash password: %w", email, err)
	}

	_, err = store.Create(ctx, models.Admin{
		Email:          email,
		PasswordHash:   hash,
		EmailConfirmed: true,
	})
	if errors.Is(err, admins.ErrDuplicateEmail) {
		// Another instance seeded it first.
		return nil
	}
	if err != nil {
		logger.Error("failed to seed admin", zap.String("email", email), zap.Error(err))
		return err
	}
	logger.Info("seeded admin account", zap.String("email", email))
	return nil
}

// internal/app/store/admins/store.go
package admins

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/strataministry/internal/app/system/normalize"
	"github.com/dalemusser/strataministry/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateEmail is returned when an admin with the same email exists.
var ErrDuplicateEmail = errors.New("an admin with that email already exists")

// Store manages dashboard admin accounts.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admins")}
}

// Create inserts a new admin. Email is normalized before insert.
func (s *Store) Create(ctx context.Context, a models.Admin) (models.Admin, error) {
	a.ID = primitive.NewObjectID()
	a.Email = normalize.Email(a.Email)
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Admin{}, ErrDuplicateEmail
		}
		return models.Admin{}, err
	}
	return a, nil
}

// GetByEmail looks up an admin by email. Returns mongo.ErrNoDocuments if
// not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByID loads an admin by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	var a models.Admin
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// TouchLogin records a successful sign-in.
func (s *Store) TouchLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_login_at": at, "updated_at": at}},
	)
	return err
}

// SetEmailConfirmed marks an admin's email as confirmed or not.
func (s *Store) SetEmailConfirmed(ctx context.Context, id primitive.ObjectID, confirmed bool) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"email_confirmed": confirmed, "updated_at": time.Now().UTC()}},
	)
	return err
}

// Count returns the number of admin accounts.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// internal/app/store/ratelimit/store.go
package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/strataministry/internal/app/system/normalize"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection holds one document per identifier with recent failed sign-ins.
const Collection = "login_attempts"

// Defaults used when a Policy field is zero.
const (
	DefaultMaxAttempts = 5
	DefaultWindow      = 15 * time.Minute
	DefaultLockout     = 15 * time.Minute
)

// Policy sets how many failures are tolerated inside Window before the
// identifier is locked out for Lockout.
type Policy struct {
	MaxAttempts int
	Window      time.Duration
	Lockout     time.Duration
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.Window <= 0 {
		p.Window = DefaultWindow
	}
	if p.Lockout <= 0 {
		p.Lockout = DefaultLockout
	}
	return p
}

// Attempt is the stored failure window for one identifier.
type Attempt struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Identifier  string             `bson:"identifier"`
	Failures    int                `bson:"failures"`
	WindowStart time.Time          `bson:"window_start"`
	LockedUntil *time.Time         `bson:"locked_until,omitempty"`
	LastAttempt time.Time          `bson:"last_attempt"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// Store tracks failed admin sign-ins. It fails open: a database error never
// blocks a sign-in attempt.
type Store struct {
	c      *mongo.Collection
	policy Policy
	now    func() time.Time
}

// New creates a Store. Zero fields in policy take the package defaults.
func New(db *mongo.Database, policy Policy) *Store {
	return &Store{
		c:      db.Collection(Collection),
		policy: policy.withDefaults(),
		now:    time.Now,
	}
}

// Policy returns the effective policy.
func (s *Store) Policy() Policy { return s.policy }

func (s *Store) find(ctx context.Context, identifier string) (*Attempt, error) {
	var a Attempt
	err := s.c.FindOne(ctx, bson.M{"identifier": identifier}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CheckAllowed reports whether identifier may attempt a sign-in now.
// remaining is -1 while locked out.
func (s *Store) CheckAllowed(ctx context.Context, identifier string) (allowed bool, remaining int, lockedUntil *time.Time) {
	a, err := s.find(ctx, normalize.Email(identifier))
	if err != nil || a == nil {
		return true, s.policy.MaxAttempts, nil
	}

	now := s.now()
	if a.LockedUntil != nil && now.Before(*a.LockedUntil) {
		return false, -1, a.LockedUntil
	}
	if now.After(a.WindowStart.Add(s.policy.Window)) {
		return true, s.policy.MaxAttempts, nil
	}

	remaining = s.policy.MaxAttempts - a.Failures
	if remaining <= 0 {
		return false, 0, nil
	}
	return true, remaining, nil
}

// RecordFailure counts one failed sign-in and locks the identifier once the
// policy limit is reached.
func (s *Store) RecordFailure(ctx context.Context, identifier string) (lockedOut bool, lockedUntil *time.Time) {
	identifier = normalize.Email(identifier)
	now := s.now()

	a, err := s.find(ctx, identifier)
	if err != nil {
		return false, nil
	}

	if a == nil || now.After(a.WindowStart.Add(s.policy.Window)) {
		a = &Attempt{Identifier: identifier, WindowStart: now, CreatedAt: now}
	}
	a.Failures++
	a.LastAttempt = now
	a.UpdatedAt = now
	a.LockedUntil = nil

	if a.Failures >= s.policy.MaxAttempts {
		until := now.Add(s.policy.Lockout)
		a.LockedUntil = &until
		lockedOut, lockedUntil = true, &until
	}

	set := bson.M{
		"failures":     a.Failures,
		"window_start": a.WindowStart,
		"last_attempt": a.LastAttempt,
		"updated_at":   a.UpdatedAt,
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": a.CreatedAt},
	}
	if a.LockedUntil != nil {
		set["locked_until"] = a.LockedUntil
	} else {
		update["$unset"] = bson.M{"locked_until": ""}
	}

	_, _ = s.c.UpdateOne(ctx,
		bson.M{"identifier": identifier},
		update,
		options.Update().SetUpsert(true),
	)
	return lockedOut, lockedUntil
}

// ClearOnSuccess forgets the failures recorded for identifier.
func (s *Store) ClearOnSuccess(ctx context.Context, identifier string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"identifier": normalize.Email(identifier)})
	return err
}

// Get returns the stored attempt for identifier, or nil when there is none.
func (s *Store) Get(ctx context.Context, identifier string) (*Attempt, error) {
	return s.find(ctx, normalize.Email(identifier))
}

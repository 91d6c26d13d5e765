package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is a dashboard account held by the local identity provider.
//
// Email is stored lowercase and is also the login identifier.
// EmailConfirmed must be true before the account can sign in.
type Admin struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email"`
	PasswordHash   string             `bson:"password_hash" json:"-"`
	EmailConfirmed bool               `bson:"email_confirmed" json:"email_confirmed"`
	LastLoginAt    *time.Time         `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// AdminIdentity is the signed-in admin as persisted in the session cookie.
// Username always equals Email.
type AdminIdentity struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// NewAdminIdentity builds the persisted identity for a successful login.
func NewAdminIdentity(id, email string, at time.Time) AdminIdentity {
	return AdminIdentity{
		ID:          id,
		Email:       email,
		Username:    email,
		LastLoginAt: at.UTC(),
	}
}

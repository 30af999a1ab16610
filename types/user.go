package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account.
// Users are created at registration and read at login and on every
// authenticated request; they are never updated or deleted.
type User struct {
	// ID is the store-assigned identifier of the user.
	ID primitive.ObjectID `json:"_id" bson:"_id,omitempty"`

	// Username is the unique login name chosen by the user.
	Username string `json:"username" bson:"username"`

	// Email is the user's unique email address, stored lower-cased.
	Email string `json:"email" bson:"email"`

	// PasswordHash stores the bcrypt digest of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" bson:"passwordHash"`

	// AccessToken is the opaque bearer credential issued once at
	// registration. It is only returned by the register and login endpoints.
	AccessToken string `json:"-" bson:"accessToken"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

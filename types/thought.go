package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Thought categories accepted by the API.
const (
	CategoryHappy    = "happy"
	CategoryFunny    = "funny"
	CategoryGrateful = "grateful"
	CategoryInspired = "inspired"
	CategoryFood     = "food"
	CategoryTravel   = "travel"
	CategoryOther    = "other"
)

// Thought represents a short public message that other visitors can heart.
type Thought struct {
	// ID is the store-assigned identifier of the thought.
	ID primitive.ObjectID `json:"_id" bson:"_id,omitempty"`

	// Message is the text of the thought, between 5 and 140 characters.
	Message string `json:"message" bson:"message" validate:"required,min=5,max=140"`

	// Hearts counts how many times the thought has been liked.
	Hearts int `json:"hearts" bson:"hearts" validate:"min=0"`

	// Category is one of the fixed thought categories.
	Category string `json:"category" bson:"category" validate:"required,oneof=happy funny grateful inspired food travel other"`

	// CreatedAt is set by the server when the thought is stored.
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`

	// User references the author when the thought was posted with a token.
	// It is a weak reference: deleting a user would not touch its thoughts.
	User *primitive.ObjectID `json:"user,omitempty" bson:"user,omitempty"`
}

// ThoughtInput is the payload accepted when creating a thought.
type ThoughtInput struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// ThoughtPatch carries the fields of a partial thought update.
// Nil fields are left untouched.
type ThoughtPatch struct {
	Message  *string `json:"message" validate:"omitempty,min=5,max=140"`
	Hearts   *int    `json:"hearts" validate:"omitempty,min=0"`
	Category *string `json:"category" validate:"omitempty,oneof=happy funny grateful inspired food travel other"`
}

// Empty reports whether the patch changes nothing.
func (p ThoughtPatch) Empty() bool {
	return p.Message == nil && p.Hearts == nil && p.Category == nil
}

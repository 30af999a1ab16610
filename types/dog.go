package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dog represents a dog listed in the directory.
type Dog struct {
	// ID is the store-assigned identifier of the dog.
	ID primitive.ObjectID `json:"_id" bson:"_id,omitempty"`

	// Name is the dog's name.
	Name string `json:"name" bson:"name" validate:"required,min=2,max=50"`

	// Breed is the dog's breed, e.g. "Labrador".
	Breed string `json:"breed" bson:"breed" validate:"required,min=2,max=50"`

	// Color is the dominant coat color.
	Color string `json:"color" bson:"color" validate:"required,min=2,max=30"`

	// Size is one of small, medium or large, or empty when unknown.
	Size string `json:"size" bson:"size" validate:"omitempty,oneof=small medium large"`

	// Age is the dog's age in years.
	Age int `json:"age" bson:"age" validate:"min=0,max=30"`

	// Vaccinated reports whether the dog's vaccinations are up to date.
	Vaccinated bool `json:"vaccinated" bson:"vaccinated"`

	// Likes counts how many times the dog has been liked.
	Likes int `json:"likes" bson:"likes" validate:"min=0"`

	// CreatedAt is set by the server when the dog is stored.
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`

	// Owner references the user who listed the dog, if any.
	Owner *primitive.ObjectID `json:"owner,omitempty" bson:"owner,omitempty"`
}

// DogInput is the payload accepted when creating a dog.
type DogInput struct {
	Name       string `json:"name"`
	Breed      string `json:"breed"`
	Color      string `json:"color"`
	Size       string `json:"size"`
	Age        int    `json:"age"`
	Vaccinated bool   `json:"vaccinated"`
}

// DogPatch carries the fields of a partial dog update.
type DogPatch struct {
	Name       *string `json:"name" validate:"omitempty,min=2,max=50"`
	Breed      *string `json:"breed" validate:"omitempty,min=2,max=50"`
	Color      *string `json:"color" validate:"omitempty,min=2,max=30"`
	Size       *string `json:"size" validate:"omitempty,oneof=small medium large"`
	Age        *int    `json:"age" validate:"omitempty,min=0,max=30"`
	Vaccinated *bool   `json:"vaccinated"`
	Likes      *int    `json:"likes" validate:"omitempty,min=0"`
}

// Empty reports whether the patch changes nothing.
func (p DogPatch) Empty() bool {
	return p.Name == nil && p.Breed == nil && p.Color == nil && p.Size == nil &&
		p.Age == nil && p.Vaccinated == nil && p.Likes == nil
}

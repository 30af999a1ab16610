package store

import (
	"context"
	"regexp"
	"strings"

	"github.com/happythoughts/apiserver/internal/query"
	"github.com/happythoughts/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DogRepository handles persistence for dogs.
type DogRepository struct {
	coll *mongo.Collection
}

func NewDogRepository(db *mongo.Database) *DogRepository {
	return &DogRepository{coll: db.Collection(DogsCollection)}
}

// List returns matching dogs, newest first.
func (r *DogRepository) List(ctx context.Context, filter query.Filter, offset, limit int) ([]types.Dog, error) {
	cursor, err := r.coll.Find(ctx, filter.BSON(), listOptions(offset, limit))
	if err != nil {
		return nil, err
	}
	dogs := []types.Dog{}
	if err := cursor.All(ctx, &dogs); err != nil {
		return nil, err
	}
	return dogs, nil
}

func (r *DogRepository) Get(ctx context.Context, id string) (types.Dog, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return types.Dog{}, err
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

// GetByName returns the first dog whose name matches case-insensitively.
func (r *DogRepository) GetByName(ctx context.Context, name string) (types.Dog, error) {
	pattern := primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(name)) + "$",
		Options: "i",
	}
	return r.findOne(ctx, bson.D{{Key: "name", Value: pattern}})
}

func (r *DogRepository) Create(ctx context.Context, dog types.Dog) (types.Dog, error) {
	dog.ID = primitive.NewObjectID()
	dog.CreatedAt = now()

	if _, err := r.coll.InsertOne(ctx, dog); err != nil {
		return types.Dog{}, translate(err)
	}
	return dog, nil
}

// Update sets the non-nil fields of patch and returns the updated dog.
func (r *DogRepository) Update(ctx context.Context, id string, patch types.DogPatch) (types.Dog, error) {
	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Breed != nil {
		set = append(set, bson.E{Key: "breed", Value: *patch.Breed})
	}
	if patch.Color != nil {
		set = append(set, bson.E{Key: "color", Value: *patch.Color})
	}
	if patch.Size != nil {
		set = append(set, bson.E{Key: "size", Value: *patch.Size})
	}
	if patch.Age != nil {
		set = append(set, bson.E{Key: "age", Value: *patch.Age})
	}
	if patch.Vaccinated != nil {
		set = append(set, bson.E{Key: "vaccinated", Value: *patch.Vaccinated})
	}
	if patch.Likes != nil {
		set = append(set, bson.E{Key: "likes", Value: *patch.Likes})
	}
	if len(set) == 0 {
		return r.Get(ctx, id)
	}
	return r.findOneAndUpdate(ctx, id, bson.D{{Key: "$set", Value: set}})
}

// Like increments the likes counter by one in a single atomic update.
func (r *DogRepository) Like(ctx context.Context, id string) (types.Dog, error) {
	return r.findOneAndUpdate(ctx, id, bson.D{{Key: "$inc", Value: bson.D{{Key: "likes", Value: 1}}}})
}

// Delete removes the dog and returns it as it was before removal.
func (r *DogRepository) Delete(ctx context.Context, id string) (types.Dog, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return types.Dog{}, err
	}
	var dog types.Dog
	if err := r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&dog); err != nil {
		return types.Dog{}, translate(err)
	}
	return dog, nil
}

// Reset wipes the collection and inserts dogs.
func (r *DogRepository) Reset(ctx context.Context, dogs []types.Dog) error {
	if _, err := r.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return err
	}
	if len(dogs) == 0 {
		return nil
	}
	docs := make([]any, 0, len(dogs))
	for _, dog := range dogs {
		if dog.ID.IsZero() {
			dog.ID = primitive.NewObjectID()
		}
		if dog.CreatedAt.IsZero() {
			dog.CreatedAt = now()
		}
		docs = append(docs, dog)
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return translate(err)
}

func (r *DogRepository) findOne(ctx context.Context, filter bson.D) (types.Dog, error) {
	var dog types.Dog
	if err := r.coll.FindOne(ctx, filter).Decode(&dog); err != nil {
		return types.Dog{}, translate(err)
	}
	return dog, nil
}

func (r *DogRepository) findOneAndUpdate(ctx context.Context, id string, update bson.D) (types.Dog, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return types.Dog{}, err
	}
	var dog types.Dog
	err = r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, returnAfter()).Decode(&dog)
	if err != nil {
		return types.Dog{}, translate(err)
	}
	return dog, nil
}

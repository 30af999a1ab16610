package store

import (
	"context"

	"github.com/happythoughts/apiserver/internal/query"
	"github.com/happythoughts/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ThoughtRepository handles persistence for thoughts.
type ThoughtRepository struct {
	coll *mongo.Collection
}

func NewThoughtRepository(db *mongo.Database) *ThoughtRepository {
	return &ThoughtRepository{coll: db.Collection(ThoughtsCollection)}
}

// List returns matching thoughts, newest first.
func (r *ThoughtRepository) List(ctx context.Context, filter query.Filter, offset, limit int) ([]types.Thought, error) {
	cursor, err := r.coll.Find(ctx, filter.BSON(), listOptions(offset, limit))
	if err != nil {
		return nil, err
	}
	thoughts := []types.Thought{}
	if err := cursor.All(ctx, &thoughts); err != nil {
		return nil, err
	}
	return thoughts, nil
}

func (r *ThoughtRepository) Get(ctx context.Context, id string) (types.Thought, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return types.Thought{}, err
	}
	var thought types.Thought
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&thought); err != nil {
		return types.Thought{}, translate(err)
	}
	return thought, nil
}

func (r *ThoughtRepository) Create(ctx context.Context, thought types.Thought) (types.Thought, error) {
	thought.ID = primitive.NewObjectID()
	thought.CreatedAt = now()

	if _, err := r.coll.InsertOne(ctx, thought); err != nil {
		return types.Thought{}, translate(err)
	}
	return thought, nil
}

// Update sets the non-nil fields of patch and returns the updated thought.
func (r *ThoughtRepository) Update(ctx context.Context, id string, patch types.ThoughtPatch) (types.Thought, error) {
	set := bson.D{}
	if patch.Message != nil {
		set = append(set, bson.E{Key: "message", Value: *patch.Message})
	}
	if patch.Hearts != nil {
		set = append(set, bson.E{Key: "hearts", Value: *patch.Hearts})
	}
	if patch.Category != nil {
		set = append(set, bson.E{Key: "category", Value: *patch.Category})
	}
	if len(set) == 0 {
		return r.Get(ctx, id)
	}
	return r.findOneAndUpdate(ctx, id, bson.D{{Key: "$set", Value: set}})
}

// Like increments the hearts counter by one in a single atomic update.
func (r *ThoughtRepository) Like(ctx context.Context, id string) (types.Thought, error) {
	return r.findOneAndUpdate(ctx, id, bson.D{{Key: "$inc", Value: bson.D{{Key: "hearts", Value: 1}}}})
}

// Delete removes the thought and returns it as it was before removal.
func (r *ThoughtRepository) Delete(ctx context.Context, id string) (types.Thought, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return types.Thought{}, err
	}
	var thought types.Thought
	if err := r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&thought); err != nil {
		return types.Thought{}, translate(err)
	}
	return thought, nil
}

// Reset wipes the collection and inserts thoughts.
func (r *ThoughtRepository) Reset(ctx context.Context, thoughts []types.Thought) error {
	if _, err := r.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return err
	}
	if len(thoughts) == 0 {
		return nil
	}
	docs := make([]any, 0, len(thoughts))
	for _, thought := range thoughts {
		if thought.ID.IsZero() {
			thought.ID = primitive.NewObjectID()
		}
		if thought.CreatedAt.IsZero() {
			thought.CreatedAt = now()
		}
		docs = append(docs, thought)
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return translate(err)
}

func (r *ThoughtRepository) findOneAndUpdate(ctx context.Context, id string, update bson.D) (types.Thought, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return types.Thought{}, err
	}
	var thought types.Thought
	err = r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, returnAfter()).Decode(&thought)
	if err != nil {
		return types.Thought{}, translate(err)
	}
	return thought, nil
}

package store

import (
	"context"

	"github.com/happythoughts/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(UsersCollection)}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (types.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return types.User{}, err
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (types.User, error) {
	return r.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

// GetByAccessToken returns the user whose token equals token exactly.
func (r *UserRepository) GetByAccessToken(ctx context.Context, token string) (types.User, error) {
	return r.findOne(ctx, bson.D{{Key: "accessToken", Value: token}})
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now()

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return types.User{}, translate(err)
	}
	return user, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.D) (types.User, error) {
	var user types.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return types.User{}, translate(err)
	}
	return user, nil
}

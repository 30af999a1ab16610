package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	UsersCollection    = "users"
	ThoughtsCollection = "thoughts"
	DogsCollection     = "dogs"
)

// accessTokenIndex must match the index name in the users migration.
const accessTokenIndex = "users_access_token_unique"

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// now is truncated to the millisecond precision of BSON dates.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func listOptions(offset, limit int) *options.FindOptions {
	opts := options.Find().SetSort(newestFirst)
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return opts
}

func returnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// translate maps driver errors onto the package's sentinel errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		if strings.Contains(err.Error(), accessTokenIndex) {
			return fmt.Errorf("%w: %v", ErrTokenCollision, err)
		}
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

package database

import (
	"context"
	"main/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// UserStore is the persistence boundary for user profiles.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUserIfAbsent(ctx context.Context, user *model.User) error
	UpsertUserByEmail(ctx context.Context, email, name, profilePicture string) (*model.User, error)
}

type MongoUserStore struct {
	users *mongo.Collection
}

func NewUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{users: db.Collection(usersCollection)}
}

func (s *MongoUserStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}

	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // No user found is not an error
		}
		return nil, err
	}

	return user, nil
}

// CreateUserIfAbsent inserts the user unless a document with the same
// email already exists. Two first-logins racing past the existence
// check both end up here; the unique index rejects the loser and that
// rejection is treated as success.
func (s *MongoUserStore) CreateUserIfAbsent(ctx context.Context, user *model.User) error {
	_, err := s.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return err
	}
	return nil
}

func (s *MongoUserStore) UpsertUserByEmail(ctx context.Context, email, name, profilePicture string) (*model.User, error) {
	user := &model.User{}

	err := s.users.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"name": name, "profilePicture": profilePicture}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

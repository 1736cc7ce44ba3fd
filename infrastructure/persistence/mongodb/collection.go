package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserCursor interface for mocking
type UserCursor interface {
	Next(ctx context.Context) bool
	Decode(v any) error
	Err() error
	Close(ctx context.Context) error
}

// UserSingleResult interface for mocking
type UserSingleResult interface {
	Decode(v any) error
}

// UserCollection interface for mocking
type UserCollection interface {
	InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) (UserCursor, error)
	FindOneAndReplace(ctx context.Context, filter any, replacement any, opts ...*options.FindOneAndReplaceOptions) UserSingleResult
	FindOneAndDelete(ctx context.Context, filter any, opts ...*options.FindOneAndDeleteOptions) UserSingleResult
}

// mongoUserCollection adapts *mongo.Collection to UserCollection
type mongoUserCollection struct {
	*mongo.Collection
}

func (m *mongoUserCollection) Find(ctx context.Context, filter any, opts ...*options.FindOptions) (UserCursor, error) {
	cursor, err := m.Collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	return cursor, nil
}

func (m *mongoUserCollection) FindOneAndReplace(ctx context.Context, filter any, replacement any, opts ...*options.FindOneAndReplaceOptions) UserSingleResult {
	return m.Collection.FindOneAndReplace(ctx, filter, replacement, opts...)
}

func (m *mongoUserCollection) FindOneAndDelete(ctx context.Context, filter any, opts ...*options.FindOneAndDeleteOptions) UserSingleResult {
	return m.Collection.FindOneAndDelete(ctx, filter, opts...)
}

var (
	_ UserCollection = (*mongoUserCollection)(nil)
	_ UserCursor     = (*mongo.Cursor)(nil)
)

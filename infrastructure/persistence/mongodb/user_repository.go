package mongodb

import (
	"context"
	"errors"
	"iter"

	"flexible-project/domain/shared"
	"flexible-project/domain/user"
	"flexible-project/infrastructure/persistence/retry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository stores users as documents of a single collection.
// Uniqueness of name and email rests on the indexes created by
// EnsureIndexes.
type UserRepository struct {
	coll        UserCollection
	retryConfig retry.Config
}

// NewUserRepository creates a repository over an arbitrary collection
// implementation; production code passes NewUserCollection(coll).
func NewUserRepository(coll UserCollection, retryConfig retry.Config) *UserRepository {
	return &UserRepository{coll: coll, retryConfig: retryConfig}
}

// NewUserCollection adapts a driver collection.
func NewUserCollection(coll *mongo.Collection) UserCollection {
	return &mongoUserCollection{Collection: coll}
}

func byID(id user.ID) bson.D {
	return bson.D{{Key: fieldID, Value: id.String()}}
}

// Create inserts once. A network error may hide an insert that was applied,
// and a second attempt would then report the user's own row as a conflict.
func (r *UserRepository) Create(ctx context.Context, id user.ID, data user.Data) (user.User, error) {
	if _, err := r.coll.InsertOne(ctx, fromDomain(id, data)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, shared.NewConflictError("user", id.Erase(), err)
		}
		return user.User{}, err
	}
	return user.User{ID: id, Data: data}, nil
}

// Read streams matching documents through a driver cursor. The cursor is
// closed when the sequence ends or the consumer stops early.
func (r *UserRepository) Read(ctx context.Context, filters user.Filters) iter.Seq2[user.User, error] {
	return func(yield func(user.User, error) bool) {
		query := Query(filters)
		cursor, err := retry.Do(ctx, r.retryConfig, func(ctx context.Context) (UserCursor, error) {
			return r.coll.Find(ctx, query)
		})
		if err != nil {
			yield(user.User{}, err)
			return
		}
		defer cursor.Close(context.WithoutCancel(ctx))

		for cursor.Next(ctx) {
			var doc userDocument
			if err := cursor.Decode(&doc); err != nil {
				yield(user.User{}, err)
				return
			}
			u, err := doc.toDomain()
			if err != nil {
				yield(user.User{}, err)
				return
			}
			if !yield(u, nil) {
				return
			}
		}
		if err := cursor.Err(); err != nil {
			yield(user.User{}, err)
		}
	}
}

// Update replaces the whole document by id, so repeating it after a lost
// reply leaves the same state and it is retried like a read.
func (r *UserRepository) Update(ctx context.Context, id user.ID, data user.Data) (user.User, error) {
	replacement := fromDomain(id, data)
	opts := options.FindOneAndReplace().SetReturnDocument(options.After)

	updated, err := retry.Do(ctx, r.retryConfig, func(ctx context.Context) (userDocument, error) {
		var doc userDocument
		err := r.coll.FindOneAndReplace(ctx, byID(id), replacement, opts).Decode(&doc)
		return doc, err
	})
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return user.User{}, shared.NewNotFoundError("user", id.Erase())
		case mongo.IsDuplicateKeyError(err):
			return user.User{}, shared.NewConflictError("user", id.Erase(), err)
		}
		return user.User{}, err
	}
	return updated.toDomain()
}

// Delete runs once for the same reason as Create: a repeat after an
// applied delete would report not found.
func (r *UserRepository) Delete(ctx context.Context, id user.ID) (user.User, error) {
	var deleted userDocument
	if err := r.coll.FindOneAndDelete(ctx, byID(id)).Decode(&deleted); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, shared.NewNotFoundError("user", id.Erase())
		}
		return user.User{}, err
	}
	return deleted.toDomain()
}

var _ user.Repository = (*UserRepository)(nil)

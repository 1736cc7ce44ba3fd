package mongodb

import (
	"context"
	"fmt"
	"time"

	"flexible-project/config"
	"flexible-project/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// MongoDB holds the MongoDB client and the users collection
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	Users    *mongo.Collection
}

// Connect opens a client, verifies it with a ping and, if configured,
// creates the users indexes.
func Connect(ctx context.Context, cfg config.MongoDBConfig) (*MongoDB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.URI).SetTimeout(timeout)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)
	m := &MongoDB{Client: client, Database: db, Users: db.Collection(cfg.Collection)}

	if cfg.EnsureIndexes {
		if err := EnsureIndexes(ctx, m.Users); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
	}

	logger.Info("Connected to MongoDB",
		zap.String("database", cfg.Database),
		zap.String("collection", cfg.Collection),
	)
	return m, nil
}

// UserIndexes are the indexes backing name and email uniqueness. Email is
// sparse because users without one omit the field.
func UserIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: fieldName, Value: 1}},
			Options: options.Index().SetName("users_name_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: fieldEmail, Value: 1}},
			Options: options.Index().SetName("users_email_unique").SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: fieldRole, Value: 1}},
			Options: options.Index().SetName("users_role"),
		},
	}
}

// EnsureIndexes creates necessary indexes for the users collection
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	if _, err := coll.Indexes().CreateMany(ctx, UserIndexes()); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

// HealthCheck performs a health check on the MongoDB connection
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	return m.Client.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

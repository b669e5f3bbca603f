package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carwash/internal/bookings/repository"
	"carwash/internal/migrations/mongo/validators"
	"carwash/pkg/logger"
)

// BookingsIndexes back the list filters and the default sort. The text index
// covers the fields the search endpoint matches.
var BookingsIndexes = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "customerName", Value: "text"},
			{Key: "carDetails.make", Value: "text"},
			{Key: "carDetails.model", Value: "text"},
		},
		Options: options.Index().SetName("bookings_text"),
	},
	{Keys: bson.D{{Key: "serviceType", Value: 1}}},
	{Keys: bson.D{{Key: "carDetails.type", Value: 1}}},
	{Keys: bson.D{{Key: "status", Value: 1}}},
	{Keys: bson.D{{Key: "date", Value: 1}, {Key: "timeSlot", Value: 1}}},
	{Keys: bson.D{{Key: "createdAt", Value: -1}}},
}

type collectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections maps every managed collection to its schema and indexes.
var Collections = map[string]collectionDef{
	repository.CollectionName: {
		Indexes:   BookingsIndexes,
		Validator: validators.BookingValidator,
	},
}

func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log = log.Component("migrations")
	log.Info("Running Mongo migrations", "database", db.Name())

	for name, def := range Collections {
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	names, err := db.Collection(name).Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "indexes", names)
	return nil
}

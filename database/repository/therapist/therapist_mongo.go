package therapistRepo

import (
	"context"
	"fmt"
	"time"

	"mindhaven/database"
	"mindhaven/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTherapistRepo implements TherapistRepository using MongoDB.
type MongoTherapistRepo struct {
	coll *mongo.Collection
}

// NewMongoTherapistRepo constructs a new instance of MongoTherapistRepo.
func NewMongoTherapistRepo() TherapistRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("therapists")
	repo := &MongoTherapistRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		fmt.Printf("failed to create therapist indexes: %v\n", err)
	}
	return repo
}

// GetByID retrieves a therapist profile by ID.
func (r *MongoTherapistRepo) GetByID(ctx context.Context, id string) (*models.Therapist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var therapist models.Therapist
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&therapist); err != nil {
		return nil, fmt.Errorf("therapist %s not found: %w", id, err)
	}
	return &therapist, nil
}

// UpdateAvailability replaces the therapist's weekly availability map.
func (r *MongoTherapistRepo) UpdateAvailability(ctx context.Context, id string, availability models.WeeklyAvailability) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{
		"availability": availability,
		"updatedAt":    time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating availability for therapist %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("therapist %s not found", id)
	}
	return nil
}

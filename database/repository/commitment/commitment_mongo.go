package commitmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"soothely/database"
	"soothely/models"
)

// MongoCommitmentRepo implements CommitmentRepository using MongoDB.
type MongoCommitmentRepo struct {
	coll *mongo.Collection
}

// NewMongoCommitmentRepo creates a new instance of CommitmentRepository using MongoDB.
func NewMongoCommitmentRepo() CommitmentRepository {
	coll := database.DB().Collection("commitments")
	repo := &MongoCommitmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create commitment indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates the lookup index and the reservation uniqueness
// constraint. The partial filter keeps cancelled commitments from blocking
// a re-booking of the freed slot.
func (r *MongoCommitmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	reservationOpts := options.Index().
		SetUnique(true).
		SetPartialFilterExpression(bson.M{"status": models.CommitmentConfirmed})

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "date", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "providerId", Value: 1},
				{Key: "date", Value: 1},
				{Key: "startMinute", Value: 1},
			},
			Options: reservationOpts,
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoCommitmentRepo) GetByID(id string) (*models.Commitment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var c models.Commitment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to fetch commitment with id %s: %w", id, err)
	}
	return &c, nil
}

func (r *MongoCommitmentRepo) GetByProviderAndDate(providerID, date string) ([]models.Commitment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"providerId": providerID, "date": date}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve commitments for provider %s on %s: %w", providerID, date, err)
	}
	defer cursor.Close(ctx)

	var commitments []models.Commitment
	for cursor.Next(ctx) {
		var c models.Commitment
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode commitment: %w", err)
		}
		commitments = append(commitments, c)
	}
	return commitments, nil
}

// Reserve inserts the commitment; the unique (providerId, date, startMinute)
// index turns a lost race into ErrSlotTaken instead of a double-booking.
func (r *MongoCommitmentRepo) Reserve(commitment *models.Commitment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	commitment.Status = models.CommitmentConfirmed
	commitment.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, commitment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to reserve slot: %w", err)
	}
	return nil
}

func (r *MongoCommitmentRepo) Cancel(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": models.CommitmentCancelled}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to cancel commitment with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("commitment with id %s not found", id)
	}
	return nil
}

package quoteRepo

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

// MongoQuoteRepo implements QuoteRepository using MongoDB.
type MongoQuoteRepo struct {
	coll *mongo.Collection
}

// NewMongoQuoteRepo creates a new instance of QuoteRepository using MongoDB.
func NewMongoQuoteRepo() QuoteRepository {
	coll := database.DB().Collection("quotes")
	repo := &MongoQuoteRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create quote indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoQuoteRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customerId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoQuoteRepo) Create(quote *models.Quote) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	quote.CreatedAt = now
	quote.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, quote); err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}
	return nil
}

func (r *MongoQuoteRepo) GetByID(id string) (*models.Quote, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var quote models.Quote
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&quote); err != nil {
		return nil, fmt.Errorf("failed to fetch quote with id %s: %w", id, err)
	}
	return &quote, nil
}

func (r *MongoQuoteRepo) Update(quote *models.Quote) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	quote.UpdatedAt = time.Now()
	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": quote.ID}, quote)
	if err != nil {
		return fmt.Errorf("failed to update quote with id %s: %w", quote.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("quote with id %s not found", quote.ID)
	}
	return nil
}

package rulesRepo

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

// businessRulesDocID keys the singleton business rules document.
const businessRulesDocID = "default"

// MongoRulesRepo implements RulesRepository using MongoDB.
type MongoRulesRepo struct {
	businessColl *mongo.Collection
	pricingColl  *mongo.Collection
	durationColl *mongo.Collection
}

// NewMongoRulesRepo creates a new instance of RulesRepository using MongoDB.
func NewMongoRulesRepo() RulesRepository {
	db := database.DB()
	repo := &MongoRulesRepo{
		businessColl: db.Collection("businessRules"),
		pricingColl:  db.Collection("pricingRules"),
		durationColl: db.Collection("durationRules"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create rules indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRulesRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.pricingColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "dayOfWeek", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create pricing rule indexes: %w", err)
	}
	if _, err := r.durationColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "durationMinutes", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return fmt.Errorf("failed to create duration rule indexes: %w", err)
	}
	return nil
}

func (r *MongoRulesRepo) GetBusinessRules() (*models.BusinessRules, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rules models.BusinessRules
	err := r.businessColl.FindOne(ctx, bson.M{"_id": businessRulesDocID}).Decode(&rules)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch business rules: %w", err)
	}
	return &rules, nil
}

func (r *MongoRulesRepo) UpsertBusinessRules(rules *models.BusinessRules) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	rules.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	doc := struct {
		ID string `bson:"_id"`
		models.BusinessRules `bson:",inline"`
	}{ID: businessRulesDocID, BusinessRules: *rules}
	if _, err := r.businessColl.ReplaceOne(ctx, bson.M{"_id": businessRulesDocID}, doc, opts); err != nil {
		return fmt.Errorf("failed to upsert business rules: %w", err)
	}
	return nil
}

func (r *MongoRulesRepo) ListPricingRules() ([]models.PricingRule, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "dayOfWeek", Value: 1}, {Key: "startMinute", Value: 1}})
	cursor, err := r.pricingColl.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve pricing rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []models.PricingRule
	for cursor.Next(ctx) {
		var rule models.PricingRule
		if err := cursor.Decode(&rule); err != nil {
			return nil, fmt.Errorf("failed to decode pricing rule: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (r *MongoRulesRepo) CreatePricingRule(rule *models.PricingRule) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.pricingColl.InsertOne(ctx, rule); err != nil {
		return fmt.Errorf("failed to create pricing rule: %w", err)
	}
	return nil
}

func (r *MongoRulesRepo) DeletePricingRule(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.pricingColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete pricing rule with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("pricing rule with id %s not found", id)
	}
	return nil
}

func (r *MongoRulesRepo) ListDurationRules() ([]models.DurationRule, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "durationMinutes", Value: 1}})
	cursor, err := r.durationColl.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve duration rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []models.DurationRule
	for cursor.Next(ctx) {
		var rule models.DurationRule
		if err := cursor.Decode(&rule); err != nil {
			return nil, fmt.Errorf("failed to decode duration rule: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (r *MongoRulesRepo) CreateDurationRule(rule *models.DurationRule) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.durationColl.InsertOne(ctx, rule); err != nil {
		return fmt.Errorf("failed to create duration rule: %w", err)
	}
	return nil
}

func (r *MongoRulesRepo) DeleteDurationRule(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.durationColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete duration rule with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("duration rule with id %s not found", id)
	}
	return nil
}

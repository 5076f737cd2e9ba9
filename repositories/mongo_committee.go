package repositories

import (
	"context"
	"time"

	"dues-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCommitteeStore struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewMongoCommitteeStore(collection *mongo.Collection, timeout time.Duration) *MongoCommitteeStore {
	return &MongoCommitteeStore{collection: collection, timeout: timeout}
}

// ReplaceByName replaces the whole committee document with the same name,
// inserting it when none exists.
func (s *MongoCommitteeStore) ReplaceByName(ctx context.Context, committee *models.Committee) error {
	ctx, cancel := opContext(ctx, s.timeout)
	defer cancel()

	replacement := bson.M{
		"name":       committee.Name,
		"budget":     committee.Budget,
		"activities": committee.Activities,
	}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"name": committee.Name}, replacement, options.Replace().SetUpsert(true))
	return translate("failed to upsert committee", err)
}

func (s *MongoCommitteeStore) FindAll(ctx context.Context) ([]models.Committee, error) {
	return s.find(ctx, options.Find())
}

// FindBudgets returns every committee projected to name, budget and activities.
func (s *MongoCommitteeStore) FindBudgets(ctx context.Context) ([]models.Committee, error) {
	projection := bson.M{"name": 1, "budget": 1, "activities": 1}
	return s.find(ctx, options.Find().SetProjection(projection))
}

func (s *MongoCommitteeStore) find(ctx context.Context, opts *options.FindOptions) ([]models.Committee, error) {
	ctx, cancel := opContext(ctx, s.timeout)
	defer cancel()

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate("failed to retrieve committees", err)
	}
	committees := []models.Committee{}
	if err := cursor.All(ctx, &committees); err != nil {
		return nil, translate("failed to decode committees", err)
	}
	return committees, nil
}

package repositories

import (
	"context"
	"time"

	"dues-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoMemberStore struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewMongoMemberStore(collection *mongo.Collection, timeout time.Duration) *MongoMemberStore {
	return &MongoMemberStore{collection: collection, timeout: timeout}
}

func (s *MongoMemberStore) FindByID(ctx context.Context, userID string) (*models.Member, error) {
	ctx, cancel := opContext(ctx, s.timeout)
	defer cancel()

	var member models.Member
	if err := s.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&member); err != nil {
		return nil, translate("failed to find member", err)
	}
	return &member, nil
}

func (s *MongoMemberStore) Insert(ctx context.Context, member *models.Member) error {
	ctx, cancel := opContext(ctx, s.timeout)
	defer cancel()

	_, err := s.collection.InsertOne(ctx, member)
	return translate("failed to insert member", err)
}

func (s *MongoMemberStore) UpdateStatus(ctx context.Context, userID string, status models.DuesStatus) (int64, error) {
	ctx, cancel := opContext(ctx, s.timeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"dues.status": status}}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return 0, translate("failed to update member status", err)
	}
	return result.ModifiedCount, nil
}

func (s *MongoMemberStore) AddPayment(ctx context.Context, userID string, amount float64) (int64, error) {
	ctx, cancel := opContext(ctx, s.timeout)
	defer cancel()

	update := bson.M{"$inc": bson.M{"dues.totalPaid": amount}}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return 0, translate("failed to record payment", err)
	}
	return result.MatchedCount, nil
}

func (s *MongoMemberStore) FindOutstanding(ctx context.Context) ([]models.Member, error) {
	ctx, cancel := opContext(ctx, s.timeout)
	defer cancel()

	filter := bson.M{"$expr": bson.M{"$lt": bson.A{"$dues.totalPaid", "$dues.totalDue"}}}
	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, translate("failed to find members with outstanding dues", err)
	}
	members := []models.Member{}
	if err := cursor.All(ctx, &members); err != nil {
		return nil, translate("failed to decode members", err)
	}
	return members, nil
}

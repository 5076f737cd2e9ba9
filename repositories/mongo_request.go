package repositories

import (
	"context"
	"time"

	"dues-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoRequestStore struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewMongoRequestStore(collection *mongo.Collection, timeout time.Duration) *MongoRequestStore {
	return &MongoRequestStore{collection: collection, timeout: timeout}
}

func (s *MongoRequestStore) Insert(ctx context.Context, request *models.Request) (primitive.ObjectID, error) {
	ctx, cancel := opContext(ctx, s.timeout)
	defer cancel()

	if request.ID.IsZero() {
		request.ID = primitive.NewObjectID()
	}
	if _, err := s.collection.InsertOne(ctx, request); err != nil {
		return primitive.NilObjectID, translate("failed to create request", err)
	}
	return request.ID, nil
}

func (s *MongoRequestStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Request, error) {
	ctx, cancel := opContext(ctx, s.timeout)
	defer cancel()

	var request models.Request
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request); err != nil {
		return nil, translate("failed to find request", err)
	}
	return &request, nil
}

func (s *MongoRequestStore) FindByStatus(ctx context.Context, status models.RequestStatus) ([]models.Request, error) {
	ctx, cancel := opContext(ctx, s.timeout)
	defer cancel()

	cursor, err := s.collection.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, translate("failed to retrieve requests", err)
	}
	requests := []models.Request{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, translate("failed to decode requests", err)
	}
	return requests, nil
}

func (s *MongoRequestStore) UpdateStatusFrom(ctx context.Context, id primitive.ObjectID, from, to models.RequestStatus, processedAt time.Time) (int64, error) {
	ctx, cancel := opContext(ctx, s.timeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "dateProcessed": processedAt}}
	result, err := s.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, translate("failed to update request status", err)
	}
	return result.MatchedCount, nil
}

func (s *MongoRequestStore) DeleteByStatus(ctx context.Context, status models.RequestStatus) (int64, error) {
	ctx, cancel := opContext(ctx, s.timeout)
	defer cancel()

	result, err := s.collection.DeleteMany(ctx, bson.M{"status": status})
	if err != nil {
		return 0, translate("failed to delete requests", err)
	}
	return result.DeletedCount, nil
}

package repositories

import (
	"context"
	"errors"
	"time"

	"dues-service/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrDuplicate   = errors.New("duplicate key")
	ErrUnavailable = errors.New("document store unavailable")
)

// MemberStore is the access layer over the members collection.
type MemberStore interface {
	FindByID(ctx context.Context, userID string) (*models.Member, error)
	Insert(ctx context.Context, member *models.Member) error
	// UpdateStatus returns the number of documents whose status changed.
	UpdateStatus(ctx context.Context, userID string, status models.DuesStatus) (int64, error)
	// AddPayment returns the number of documents matched.
	AddPayment(ctx context.Context, userID string, amount float64) (int64, error)
	FindOutstanding(ctx context.Context) ([]models.Member, error)
}

// CommitteeStore is the access layer over the committee budget collection.
type CommitteeStore interface {
	ReplaceByName(ctx context.Context, committee *models.Committee) error
	FindAll(ctx context.Context) ([]models.Committee, error)
	FindBudgets(ctx context.Context) ([]models.Committee, error)
}

// RequestStore is the access layer over the funding requests collection.
type RequestStore interface {
	Insert(ctx context.Context, request *models.Request) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Request, error)
	FindByStatus(ctx context.Context, status models.RequestStatus) ([]models.Request, error)
	// UpdateStatusFrom sets status and dateProcessed only while the document
	// is still in status from, and returns the number of documents matched.
	UpdateStatusFrom(ctx context.Context, id primitive.ObjectID, from, to models.RequestStatus, processedAt time.Time) (int64, error)
	// DeleteByStatus removes every document currently in status.
	DeleteByStatus(ctx context.Context, status models.RequestStatus) (int64, error)
}

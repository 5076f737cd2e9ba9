package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"dues-service/logging"
	"dues-service/models"
	"dues-service/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestService struct {
	requests repositories.RequestStore
	// Now is the clock used for dateSubmitted and dateProcessed.
	Now func() time.Time
}

func NewRequestService(requests repositories.RequestStore) *RequestService {
	return &RequestService{requests: requests, Now: time.Now}
}

// now truncates to the millisecond precision the document store keeps.
func (s *RequestService) now() time.Time {
	return s.Now().UTC().Truncate(time.Millisecond)
}

// ParseAmount converts a client-supplied amount to a number.
func ParseAmount(amount string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, invalidArgument("amount %q is not a number", amount)
	}
	return value, nil
}

// Create files a new pending request and returns its id.
func (s *RequestService) Create(ctx context.Context, department, amount, description, requester string) (string, error) {
	value, err := ParseAmount(amount)
	if err != nil {
		return "", err
	}

	request := &models.Request{
		Department:    department,
		Amount:        value,
		Description:   description,
		Requester:     requester,
		Status:        models.RequestPending,
		DateSubmitted: s.now(),
	}
	id, err := s.requests.Insert(ctx, request)
	if err != nil {
		return "", storeError("failed to create request", err)
	}

	logging.Logger.Infof("Event ID: REQUEST_CREATED, Description: Request %s created by %s for %.2f", id.Hex(), requester, value)
	return id.Hex(), nil
}

// ListByStatus returns every request currently in status.
func (s *RequestService) ListByStatus(ctx context.Context, status models.RequestStatus) ([]models.Request, error) {
	if !status.Valid() {
		return nil, invalidArgument("unknown request status %q", status)
	}
	requests, err := s.requests.FindByStatus(ctx, status)
	if err != nil {
		return nil, storeError("failed to list requests", err)
	}
	if requests == nil {
		requests = []models.Request{}
	}
	return requests, nil
}

// Transition moves a pending request to accepted or declined. The write is
// conditional on the request still being pending, so two racing transitions
// cannot both succeed.
func (s *RequestService) Transition(ctx context.Context, id string, status models.RequestStatus) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return invalidArgument("invalid request id %q", id)
	}
	if !status.Terminal() {
		return invalidArgument("status must be %s or %s", models.RequestAccepted, models.RequestDeclined)
	}

	current, err := s.requests.FindByID(ctx, objectID)
	if err != nil {
		return storeError("failed to load request", err)
	}
	if !current.Status.CanTransition(status) {
		return fmt.Errorf("%w: cannot move request from %s to %s", ErrInvalidTransition, current.Status, status)
	}

	processedAt := s.now()
	if processedAt.Before(current.DateSubmitted) {
		processedAt = current.DateSubmitted
	}

	matched, err := s.requests.UpdateStatusFrom(ctx, objectID, models.RequestPending, status, processedAt)
	if err != nil {
		return storeError("failed to update request", err)
	}
	if matched == 0 {
		// Processed by someone else between the read and the write.
		return fmt.Errorf("%w: request is no longer pending", ErrInvalidTransition)
	}

	logging.Logger.Infof("Event ID: REQUEST_STATUS_UPDATED, Description: Request %s moved from %s to %s", id, current.Status, status)
	return nil
}

// ListDeclinedAndPurge returns the declined requests and then deletes every
// request that is declined at delete time. The delete goes by predicate, not
// by the ids just read: a request declined between the two steps is removed
// without ever being returned.
func (s *RequestService) ListDeclinedAndPurge(ctx context.Context) ([]models.Request, error) {
	declined, err := s.ListByStatus(ctx, models.RequestDeclined)
	if err != nil {
		return nil, err
	}

	deleted, err := s.requests.DeleteByStatus(ctx, models.RequestDeclined)
	if err != nil {
		return nil, storeError("failed to purge declined requests", err)
	}

	if deleted != int64(len(declined)) {
		logging.Logger.Warnf("Event ID: REQUEST_PURGE_MISMATCH, Description: Read %d declined requests but purged %d", len(declined), deleted)
	} else {
		logging.Logger.Infof("Event ID: REQUEST_PURGE, Description: Purged %d declined requests", deleted)
	}
	return declined, nil
}

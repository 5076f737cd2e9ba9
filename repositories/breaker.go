package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dues-service/logging"
	"dues-service/models"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Breaker fails store calls fast once the document store keeps erroring.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// NewBreaker trips after maxFailures consecutive store failures and stays
// open for openTimeout before letting a single probe call through.
func NewBreaker(name string, maxFailures int, openTimeout time.Duration) *Breaker {
	return &Breaker{cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(maxFailures)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
		IsSuccessful: isStoreHealthy,
	})}
}

// isStoreHealthy treats outcomes that say nothing about store health as
// successes so they do not count towards tripping the breaker.
func isStoreHealthy(err error) bool {
	return err == nil ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, context.Canceled)
}

func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func (b *Breaker) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%s: %w", b.cb.Name(), ErrUnavailable)
	}
	return result, err
}

func (b *Breaker) run(fn func() error) error {
	_, err := b.execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

func (b *Breaker) count(fn func() (int64, error)) (int64, error) {
	result, err := b.execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return 0, err
	}
	return result.(int64), nil
}

type breakerMemberStore struct {
	next    MemberStore
	breaker *Breaker
}

// WithMemberBreaker wraps next so every call goes through breaker.
func WithMemberBreaker(next MemberStore, breaker *Breaker) MemberStore {
	return &breakerMemberStore{next: next, breaker: breaker}
}

func (s *breakerMemberStore) FindByID(ctx context.Context, userID string) (*models.Member, error) {
	result, err := s.breaker.execute(func() (interface{}, error) {
		return s.next.FindByID(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Member), nil
}

func (s *breakerMemberStore) Insert(ctx context.Context, member *models.Member) error {
	return s.breaker.run(func() error {
		return s.next.Insert(ctx, member)
	})
}

func (s *breakerMemberStore) UpdateStatus(ctx context.Context, userID string, status models.DuesStatus) (int64, error) {
	return s.breaker.count(func() (int64, error) {
		return s.next.UpdateStatus(ctx, userID, status)
	})
}

func (s *breakerMemberStore) AddPayment(ctx context.Context, userID string, amount float64) (int64, error) {
	return s.breaker.count(func() (int64, error) {
		return s.next.AddPayment(ctx, userID, amount)
	})
}

func (s *breakerMemberStore) FindOutstanding(ctx context.Context) ([]models.Member, error) {
	result, err := s.breaker.execute(func() (interface{}, error) {
		return s.next.FindOutstanding(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Member), nil
}

type breakerCommitteeStore struct {
	next    CommitteeStore
	breaker *Breaker
}

func WithCommitteeBreaker(next CommitteeStore, breaker *Breaker) CommitteeStore {
	return &breakerCommitteeStore{next: next, breaker: breaker}
}

func (s *breakerCommitteeStore) ReplaceByName(ctx context.Context, committee *models.Committee) error {
	return s.breaker.run(func() error {
		return s.next.ReplaceByName(ctx, committee)
	})
}

func (s *breakerCommitteeStore) FindAll(ctx context.Context) ([]models.Committee, error) {
	return s.committees(func() ([]models.Committee, error) {
		return s.next.FindAll(ctx)
	})
}

func (s *breakerCommitteeStore) FindBudgets(ctx context.Context) ([]models.Committee, error) {
	return s.committees(func() ([]models.Committee, error) {
		return s.next.FindBudgets(ctx)
	})
}

func (s *breakerCommitteeStore) committees(fn func() ([]models.Committee, error)) ([]models.Committee, error) {
	result, err := s.breaker.execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Committee), nil
}

type breakerRequestStore struct {
	next    RequestStore
	breaker *Breaker
}

func WithRequestBreaker(next RequestStore, breaker *Breaker) RequestStore {
	return &breakerRequestStore{next: next, breaker: breaker}
}

func (s *breakerRequestStore) Insert(ctx context.Context, request *models.Request) (primitive.ObjectID, error) {
	result, err := s.breaker.execute(func() (interface{}, error) {
		return s.next.Insert(ctx, request)
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.(primitive.ObjectID), nil
}

func (s *breakerRequestStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Request, error) {
	result, err := s.breaker.execute(func() (interface{}, error) {
		return s.next.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Request), nil
}

func (s *breakerRequestStore) FindByStatus(ctx context.Context, status models.RequestStatus) ([]models.Request, error) {
	result, err := s.breaker.execute(func() (interface{}, error) {
		return s.next.FindByStatus(ctx, status)
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Request), nil
}

func (s *breakerRequestStore) UpdateStatusFrom(ctx context.Context, id primitive.ObjectID, from, to models.RequestStatus, processedAt time.Time) (int64, error) {
	return s.breaker.count(func() (int64, error) {
		return s.next.UpdateStatusFrom(ctx, id, from, to, processedAt)
	})
}

func (s *breakerRequestStore) DeleteByStatus(ctx context.Context, status models.RequestStatus) (int64, error) {
	return s.breaker.count(func() (int64, error) {
		return s.next.DeleteByStatus(ctx, status)
	})
}

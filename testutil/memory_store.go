// Package testutil provides in-memory document stores for service and
// handler tests. They mirror the MongoDB stores' observable behavior: copies
// in and out, duplicate keys rejected, predicate deletes.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"dues-service/models"
	"dues-service/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemberStore struct {
	mu      sync.Mutex
	members map[string]models.Member
	// Err, when set, is returned by every call.
	Err error
}

func NewMemberStore() *MemberStore {
	return &MemberStore{members: make(map[string]models.Member)}
}

func (s *MemberStore) FindByID(ctx context.Context, userID string) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	member, ok := s.members[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &member, nil
}

func (s *MemberStore) Insert(ctx context.Context, member *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.members[member.UserID]; ok {
		return repositories.ErrDuplicate
	}
	s.members[member.UserID] = *member
	return nil
}

func (s *MemberStore) UpdateStatus(ctx context.Context, userID string, status models.DuesStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	member, ok := s.members[userID]
	if !ok || member.Dues.Status == status {
		return 0, nil
	}
	member.Dues.Status = status
	s.members[userID] = member
	return 1, nil
}

func (s *MemberStore) AddPayment(ctx context.Context, userID string, amount float64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	member, ok := s.members[userID]
	if !ok {
		return 0, nil
	}
	member.Dues.TotalPaid += amount
	s.members[userID] = member
	return 1, nil
}

func (s *MemberStore) FindOutstanding(ctx context.Context) ([]models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	members := []models.Member{}
	for _, member := range s.members {
		if member.Dues.TotalPaid < member.Dues.TotalDue {
			members = append(members, member)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].UserID < members[j].UserID })
	return members, nil
}

// Len returns the number of stored members.
func (s *MemberStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}

type CommitteeStore struct {
	mu         sync.Mutex
	committees []models.Committee
	Err        error
}

func NewCommitteeStore() *CommitteeStore {
	return &CommitteeStore{}
}

func (s *CommitteeStore) ReplaceByName(ctx context.Context, committee *models.Committee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	replacement := models.Committee{
		Name:       committee.Name,
		Budget:     committee.Budget,
		Activities: append([]models.Activity(nil), committee.Activities...),
	}
	for i, existing := range s.committees {
		if existing.Name == committee.Name {
			replacement.ID = existing.ID
			s.committees[i] = replacement
			return nil
		}
	}
	replacement.ID = primitive.NewObjectID()
	s.committees = append(s.committees, replacement)
	return nil
}

func (s *CommitteeStore) FindAll(ctx context.Context) ([]models.Committee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]models.Committee{}, s.committees...), nil
}

func (s *CommitteeStore) FindBudgets(ctx context.Context) ([]models.Committee, error) {
	return s.FindAll(ctx)
}

type RequestStore struct {
	mu       sync.Mutex
	requests []models.Request
	Err      error
	// BeforeDelete runs inside DeleteByStatus before documents are removed,
	// letting tests interleave a write between a read and the purge.
	BeforeDelete func(*RequestStore)
}

func NewRequestStore() *RequestStore {
	return &RequestStore{}
}

func (s *RequestStore) Insert(ctx context.Context, request *models.Request) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return primitive.NilObjectID, s.Err
	}
	return s.insertLocked(request), nil
}

func (s *RequestStore) insertLocked(request *models.Request) primitive.ObjectID {
	if request.ID.IsZero() {
		request.ID = primitive.NewObjectID()
	}
	s.requests = append(s.requests, *request)
	return request.ID
}

// Put stores request as-is, bypassing Err. Used to seed and to simulate
// concurrent writers.
func (s *RequestStore) Put(request models.Request) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(&request)
}

func (s *RequestStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, request := range s.requests {
		if request.ID == id {
			return &request, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *RequestStore) FindByStatus(ctx context.Context, status models.RequestStatus) ([]models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	requests := []models.Request{}
	for _, request := range s.requests {
		if request.Status == status {
			requests = append(requests, request)
		}
	}
	return requests, nil
}

func (s *RequestStore) UpdateStatusFrom(ctx context.Context, id primitive.ObjectID, from, to models.RequestStatus, processedAt time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	for i, request := range s.requests {
		if request.ID == id && request.Status == from {
			processed := processedAt
			s.requests[i].Status = to
			s.requests[i].DateProcessed = &processed
			return 1, nil
		}
	}
	return 0, nil
}

func (s *RequestStore) DeleteByStatus(ctx context.Context, status models.RequestStatus) (int64, error) {
	if s.BeforeDelete != nil {
		s.BeforeDelete(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	kept := s.requests[:0]
	var deleted int64
	for _, request := range s.requests {
		if request.Status == status {
			deleted++
			continue
		}
		kept = append(kept, request)
	}
	s.requests = kept
	return deleted, nil
}

// Len returns the number of stored requests in any status.
func (s *RequestStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

var (
	_ repositories.MemberStore    = (*MemberStore)(nil)
	_ repositories.CommitteeStore = (*CommitteeStore)(nil)
	_ repositories.RequestStore   = (*RequestStore)(nil)
)

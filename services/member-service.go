package services

import (
	"context"
	"math"
	"strings"

	"dues-service/logging"
	"dues-service/models"
	"dues-service/repositories"
)

type MemberService struct {
	members repositories.MemberStore
}

func NewMemberService(members repositories.MemberStore) *MemberService {
	return &MemberService{members: members}
}

// project returns the member as served to clients, with memberType uppercased.
func project(member *models.Member) *models.Member {
	view := *member
	view.MemberType = models.NormalizeMemberType(member.MemberType)
	return &view
}

// Fetch returns the member projection for userID.
func (s *MemberService) Fetch(ctx context.Context, userID string) (*models.Member, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalidArgument("userId is required")
	}
	member, err := s.members.FindByID(ctx, userID)
	if err != nil {
		return nil, storeError("failed to fetch member", err)
	}
	return project(member), nil
}

// Create registers a member. Dues are fixed here from the member type and
// never recomputed afterwards.
func (s *MemberService) Create(ctx context.Context, userID, name, memberType, pledgeClass string) (*models.Member, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalidArgument("userId is required")
	}

	member := &models.Member{
		UserID:      userID,
		Name:        name,
		MemberType:  models.NormalizeMemberType(memberType),
		PledgeClass: pledgeClass,
		Dues: models.Dues{
			TotalDue:  models.TotalDueFor(memberType),
			TotalPaid: 0,
			Status:    models.DuesActive,
		},
	}

	if err := s.members.Insert(ctx, member); err != nil {
		return nil, storeError("failed to create member", err)
	}
	logging.Logger.Infof("Event ID: MEMBER_CREATED, Description: Member %s created with total due %.2f", userID, member.Dues.TotalDue)
	return member, nil
}

// UpdateStatus changes only the dues status. A member that is missing and a
// member already in status both report ErrNotFound, since neither modifies
// a document.
func (s *MemberService) UpdateStatus(ctx context.Context, userID string, status models.DuesStatus) (*models.Member, error) {
	if !status.Valid() {
		return nil, invalidArgument("invalid status. Must be one of: ACTIVE, LOA, PART-TIME")
	}

	modified, err := s.members.UpdateStatus(ctx, userID, status)
	if err != nil {
		return nil, storeError("failed to update member status", err)
	}
	if modified == 0 {
		return nil, ErrNotFound
	}

	logging.Logger.Infof("Event ID: MEMBER_STATUS_UPDATED, Description: Member %s status set to %s", userID, status)
	return s.Fetch(ctx, userID)
}

// RecordPayment adds amount to the member's paid total.
func (s *MemberService) RecordPayment(ctx context.Context, userID string, amount float64) (*models.Member, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalidArgument("userId is required")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, invalidArgument("payment amount must be a positive number")
	}

	matched, err := s.members.AddPayment(ctx, userID, amount)
	if err != nil {
		return nil, storeError("failed to record payment", err)
	}
	if matched == 0 {
		return nil, ErrNotFound
	}

	logging.Logger.Infof("Event ID: MEMBER_PAYMENT_RECORDED, Description: Payment of %.2f recorded for member %s", amount, userID)
	return s.Fetch(ctx, userID)
}

// ListOutstanding returns members who still owe part of their dues.
func (s *MemberService) ListOutstanding(ctx context.Context) ([]models.Member, error) {
	members, err := s.members.FindOutstanding(ctx)
	if err != nil {
		return nil, storeError("failed to list outstanding dues", err)
	}
	views := make([]models.Member, 0, len(members))
	for i := range members {
		views = append(views, *project(&members[i]))
	}
	return views, nil
}

package services

import (
	"context"
	"strings"

	"dues-service/models"
	"dues-service/repositories"
)

type CommitteeService struct {
	committees repositories.CommitteeStore
}

func NewCommitteeService(committees repositories.CommitteeStore) *CommitteeService {
	return &CommitteeService{committees: committees}
}

// Upsert replaces the committee with the same name, or creates it. Callers
// always supply the full record.
func (s *CommitteeService) Upsert(ctx context.Context, name string, budget float64, activities []models.Activity) error {
	if strings.TrimSpace(name) == "" {
		return invalidArgument("committee name is required")
	}
	if activities == nil {
		activities = []models.Activity{}
	}

	committee := &models.Committee{
		Name:       name,
		Budget:     budget,
		Activities: activities,
	}
	if err := s.committees.ReplaceByName(ctx, committee); err != nil {
		return storeError("failed to upsert committee", err)
	}
	return nil
}

func (s *CommitteeService) List(ctx context.Context) ([]models.Committee, error) {
	committees, err := s.committees.FindAll(ctx)
	if err != nil {
		return nil, storeError("failed to list committees", err)
	}
	return normalizeCommittees(committees), nil
}

// ListBudgets returns the committees projected to name, budget and activities.
func (s *CommitteeService) ListBudgets(ctx context.Context) ([]models.Committee, error) {
	committees, err := s.committees.FindBudgets(ctx)
	if err != nil {
		return nil, storeError("failed to list committee budgets", err)
	}
	return normalizeCommittees(committees), nil
}

func normalizeCommittees(committees []models.Committee) []models.Committee {
	if committees == nil {
		return []models.Committee{}
	}
	for i := range committees {
		if committees[i].Activities == nil {
			committees[i].Activities = []models.Activity{}
		}
	}
	return committees
}

package services

import (
	"context"
	"testing"

	"dues-service/models"
	"dues-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitteeService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("IdempotentReplay", func(t *testing.T) {
		service := NewCommitteeService(testutil.NewCommitteeStore())
		activities := []models.Activity{{Name: "Formal", Cost: 600}, {Name: "Mixer", Cost: 150}}

		require.NoError(t, service.Upsert(ctx, "Social", 1000, activities))
		require.NoError(t, service.Upsert(ctx, "Social", 1000, activities))

		committees, err := service.List(ctx)
		require.NoError(t, err)
		require.Len(t, committees, 1)
		assert.Equal(t, "Social", committees[0].Name)
		assert.Equal(t, 1000.0, committees[0].Budget)
		assert.Equal(t, activities, committees[0].Activities)
	})

	t.Run("FullReplacement", func(t *testing.T) {
		service := NewCommitteeService(testutil.NewCommitteeStore())
		require.NoError(t, service.Upsert(ctx, "Philanthropy", 500, []models.Activity{{Name: "5k", Cost: 200}}))
		require.NoError(t, service.Upsert(ctx, "Philanthropy", 800, nil))

		committees, err := service.ListBudgets(ctx)
		require.NoError(t, err)
		require.Len(t, committees, 1)
		assert.Equal(t, 800.0, committees[0].Budget)
		assert.NotNil(t, committees[0].Activities)
		assert.Empty(t, committees[0].Activities)
	})

	t.Run("NameRequired", func(t *testing.T) {
		service := NewCommitteeService(testutil.NewCommitteeStore())
		assert.ErrorIs(t, service.Upsert(ctx, "", 100, nil), ErrInvalidArgument)
	})
}

func TestCommitteeService_ListEmpty(t *testing.T) {
	service := NewCommitteeService(testutil.NewCommitteeStore())

	committees, err := service.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, committees)
	assert.Empty(t, committees)
}

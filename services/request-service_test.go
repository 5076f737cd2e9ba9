package services

import (
	"context"
	"testing"
	"time"

	"dues-service/models"
	"dues-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestRequestService(store *testutil.RequestStore, start time.Time) *RequestService {
	service := NewRequestService(store)
	current := start
	service.Now = func() time.Time {
		current = current.Add(time.Second)
		return current
	}
	return service
}

func TestParseAmount(t *testing.T) {
	value, err := ParseAmount("120.50")
	require.NoError(t, err)
	assert.Equal(t, 120.5, value)

	value, err = ParseAmount(" 75 ")
	require.NoError(t, err)
	assert.Equal(t, 75.0, value)

	for _, bad := range []string{"", "abc", "12,50", "NaN", "inf"} {
		_, err := ParseAmount(bad)
		assert.ErrorIs(t, err, ErrInvalidArgument, bad)
	}
}

func TestRequestService_Create(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewRequestStore()
	service := NewRequestService(store)

	before := time.Now().UTC().Truncate(time.Millisecond)
	id, err := service.Create(ctx, "Social", "120.50", "x", "u1")
	require.NoError(t, err)
	_, err = primitive.ObjectIDFromHex(id)
	require.NoError(t, err)

	pending, err := service.ListByStatus(ctx, models.RequestPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID.Hex())
	assert.Equal(t, 120.5, pending[0].Amount)
	assert.Equal(t, models.RequestPending, pending[0].Status)
	assert.False(t, pending[0].DateSubmitted.Before(before))
	assert.False(t, pending[0].DateSubmitted.After(time.Now()))
	assert.Nil(t, pending[0].DateProcessed)

	_, err = service.Create(ctx, "Social", "lots", "x", "u1")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 1, store.Len())
}

func TestRequestService_ListByStatus(t *testing.T) {
	service := NewRequestService(testutil.NewRequestStore())

	requests, err := service.ListByStatus(context.Background(), models.RequestAccepted)
	require.NoError(t, err)
	assert.NotNil(t, requests)
	assert.Empty(t, requests)

	_, err = service.ListByStatus(context.Background(), "archived")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRequestService_Transition(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Accept", func(t *testing.T) {
		store := testutil.NewRequestStore()
		service := newTestRequestService(store, start)
		id, err := service.Create(ctx, "Social", "100", "x", "u1")
		require.NoError(t, err)

		require.NoError(t, service.Transition(ctx, id, models.RequestAccepted))

		accepted, err := service.ListByStatus(ctx, models.RequestAccepted)
		require.NoError(t, err)
		require.Len(t, accepted, 1)
		require.NotNil(t, accepted[0].DateProcessed)
		assert.False(t, accepted[0].DateProcessed.Before(accepted[0].DateSubmitted))
	})

	t.Run("ClockBehindSubmission", func(t *testing.T) {
		store := testutil.NewRequestStore()
		service := NewRequestService(store)
		submitted := start.Add(time.Hour)
		id := store.Put(models.Request{Status: models.RequestPending, DateSubmitted: submitted})
		service.Now = func() time.Time { return start }

		require.NoError(t, service.Transition(ctx, id.Hex(), models.RequestDeclined))

		processed, err := store.FindByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, processed.DateProcessed.Equal(submitted))
	})

	t.Run("TerminalStatesAreFinal", func(t *testing.T) {
		store := testutil.NewRequestStore()
		service := newTestRequestService(store, start)
		id, err := service.Create(ctx, "Social", "100", "x", "u1")
		require.NoError(t, err)
		require.NoError(t, service.Transition(ctx, id, models.RequestAccepted))

		err = service.Transition(ctx, id, models.RequestDeclined)
		assert.ErrorIs(t, err, ErrInvalidTransition)

		accepted, err := service.ListByStatus(ctx, models.RequestAccepted)
		require.NoError(t, err)
		assert.Len(t, accepted, 1)
	})

	t.Run("InvalidTargets", func(t *testing.T) {
		store := testutil.NewRequestStore()
		service := newTestRequestService(store, start)
		id, err := service.Create(ctx, "Social", "100", "x", "u1")
		require.NoError(t, err)

		assert.ErrorIs(t, service.Transition(ctx, id, models.RequestPending), ErrInvalidArgument)
		assert.ErrorIs(t, service.Transition(ctx, id, "approved"), ErrInvalidArgument)
		assert.ErrorIs(t, service.Transition(ctx, "not-an-id", models.RequestAccepted), ErrInvalidArgument)
		assert.ErrorIs(t, service.Transition(ctx, primitive.NewObjectID().Hex(), models.RequestAccepted), ErrNotFound)

		pending, err := service.ListByStatus(ctx, models.RequestPending)
		require.NoError(t, err)
		assert.Len(t, pending, 1)
	})
}

func TestRequestService_ListDeclinedAndPurge(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("SecondCallIsEmpty", func(t *testing.T) {
		store := testutil.NewRequestStore()
		service := newTestRequestService(store, start)
		for i := 0; i < 3; i++ {
			id, err := service.Create(ctx, "Social", "10", "x", "u1")
			require.NoError(t, err)
			if i < 2 {
				require.NoError(t, service.Transition(ctx, id, models.RequestDeclined))
			}
		}

		declined, err := service.ListDeclinedAndPurge(ctx)
		require.NoError(t, err)
		assert.Len(t, declined, 2)

		declined, err = service.ListDeclinedAndPurge(ctx)
		require.NoError(t, err)
		assert.Empty(t, declined)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("PurgeIsByPredicate", func(t *testing.T) {
		store := testutil.NewRequestStore()
		service := newTestRequestService(store, start)
		store.Put(models.Request{Status: models.RequestDeclined, DateSubmitted: start})
		store.BeforeDelete = func(s *testutil.RequestStore) {
			s.Put(models.Request{Status: models.RequestDeclined, DateSubmitted: start})
		}

		declined, err := service.ListDeclinedAndPurge(ctx)
		require.NoError(t, err)
		assert.Len(t, declined, 1, "only the request read before the purge is returned")
		assert.Equal(t, 0, store.Len(), "the late declined request is purged too")
	})

	t.Run("EndToEnd", func(t *testing.T) {
		store := testutil.NewRequestStore()
		service := newTestRequestService(store, start)

		id, err := service.Create(ctx, "Social", "120.50", "x", "u1")
		require.NoError(t, err)

		pending, err := service.ListByStatus(ctx, models.RequestPending)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, 120.50, pending[0].Amount)

		require.NoError(t, service.Transition(ctx, id, models.RequestDeclined))

		declined, err := service.ListDeclinedAndPurge(ctx)
		require.NoError(t, err)
		require.Len(t, declined, 1)
		assert.Equal(t, id, declined[0].ID.Hex())

		declined, err = service.ListByStatus(ctx, models.RequestDeclined)
		require.NoError(t, err)
		assert.Empty(t, declined)
	})
}

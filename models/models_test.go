package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalDueFor(t *testing.T) {
	tests := []struct {
		memberType string
		want       float64
	}{
		{"PLEDGE", 350},
		{"Pledge", 350},
		{"pledge", 350},
		{" pLeDgE ", 350},
		{"brother", 250},
		{"REGULAR", 250},
		{"", 250},
	}
	for _, tt := range tests {
		t.Run(tt.memberType, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalDueFor(tt.memberType))
		})
	}
}

func TestDuesStatusValid(t *testing.T) {
	for _, s := range []DuesStatus{DuesActive, DuesLOA, DuesPartTime} {
		assert.True(t, s.Valid(), s)
	}
	for _, s := range []DuesStatus{"", "active", "INACTIVE", "PART TIME"} {
		assert.False(t, s.Valid(), s)
	}
}

func TestRequestStatusTransitions(t *testing.T) {
	assert.True(t, RequestPending.CanTransition(RequestAccepted))
	assert.True(t, RequestPending.CanTransition(RequestDeclined))
	assert.False(t, RequestPending.CanTransition(RequestPending))
	assert.False(t, RequestAccepted.CanTransition(RequestDeclined))
	assert.False(t, RequestAccepted.CanTransition(RequestPending))
	assert.False(t, RequestDeclined.CanTransition(RequestAccepted))
	assert.False(t, RequestPending.CanTransition("archived"))

	assert.True(t, RequestDeclined.Valid())
	assert.False(t, RequestStatus("Pending").Valid())
}

func TestMemberOutstanding(t *testing.T) {
	m := Member{Dues: Dues{TotalDue: 250, TotalPaid: 100}}
	assert.Equal(t, 150.0, m.Outstanding())

	m.Dues.TotalPaid = 300
	assert.Equal(t, 0.0, m.Outstanding())
}

package models

import "strings"

type DuesStatus string

const (
	DuesActive   DuesStatus = "ACTIVE"
	DuesLOA      DuesStatus = "LOA"
	DuesPartTime DuesStatus = "PART-TIME"
)

const (
	MemberTypePledge = "PLEDGE"

	PledgeDues  = 350.0
	RegularDues = 250.0
)

// Valid reports whether s is one of the accepted dues statuses.
func (s DuesStatus) Valid() bool {
	switch s {
	case DuesActive, DuesLOA, DuesPartTime:
		return true
	}
	return false
}

type Dues struct {
	TotalDue  float64    `json:"totalDue" bson:"totalDue"`
	TotalPaid float64    `json:"totalPaid" bson:"totalPaid"`
	Status    DuesStatus `json:"status" bson:"status"`
}

// Member is keyed by the identity provider's subject id.
type Member struct {
	UserID      string `json:"userId" bson:"_id"`
	Name        string `json:"name" bson:"name"`
	MemberType  string `json:"memberType" bson:"memberType"`
	PledgeClass string `json:"pledgeClass" bson:"pledgeClass"`
	Dues        Dues   `json:"dues" bson:"dues"`
}

// NormalizeMemberType trims and uppercases a member type so "Pledge" and
// "PLEDGE" compare equal.
func NormalizeMemberType(memberType string) string {
	return strings.ToUpper(strings.TrimSpace(memberType))
}

// TotalDueFor returns the dues owed by a new member of the given type.
func TotalDueFor(memberType string) float64 {
	if NormalizeMemberType(memberType) == MemberTypePledge {
		return PledgeDues
	}
	return RegularDues
}

// Outstanding is the unpaid part of the member's dues, never negative.
func (m Member) Outstanding() float64 {
	if diff := m.Dues.TotalDue - m.Dues.TotalPaid; diff > 0 {
		return diff
	}
	return 0
}

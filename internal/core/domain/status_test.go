package domain

import (
	"testing"
	"time"
)

func TestOrderStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderPending, OrderApproved, true},
		{OrderPending, OrderRejected, true},
		{OrderPending, OrderCompleted, false},
		{OrderApproved, OrderCompleted, true},
		{OrderApproved, OrderRejected, false},
		{OrderRejected, OrderApproved, false},
		{OrderCompleted, OrderPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestPolicyStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to PolicyStatus
		want     bool
	}{
		{PolicyPending, PolicyActive, true},
		{PolicyPending, PolicyCancelled, true},
		{PolicyPending, PolicyExpired, false},
		{PolicyActive, PolicyExpired, true},
		{PolicyActive, PolicyCancelled, true},
		{PolicyExpired, PolicyActive, false},
		{PolicyCancelled, PolicyActive, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestClaimStatus_Transitions(t *testing.T) {
	if !ClaimSubmitted.CanTransitionTo(ClaimApproved) {
		t.Errorf("submitted -> approved should be valid")
	}
	if !ClaimSubmitted.CanTransitionTo(ClaimRejected) {
		t.Errorf("submitted -> rejected should be valid")
	}
	if ClaimApproved.CanTransitionTo(ClaimRejected) {
		t.Errorf("approved claims are final")
	}
	if ClaimRejected.CanTransitionTo(ClaimApproved) {
		t.Errorf("rejected claims are final")
	}
}

func TestPolicy_RenewalDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	within := Policy{ExpiryDate: now.Add(10 * 24 * time.Hour)}
	if !within.RenewalDue(now) {
		t.Errorf("expiry in 10 days should be due for renewal")
	}

	far := Policy{ExpiryDate: now.Add(90 * 24 * time.Hour)}
	if far.RenewalDue(now) {
		t.Errorf("expiry in 90 days should not be due")
	}

	expired := Policy{ExpiryDate: now.Add(-24 * time.Hour)}
	if expired.RenewalDue(now) {
		t.Errorf("already expired policies are not flagged")
	}
}

func TestRoleResolution_Effective(t *testing.T) {
	if got := (RoleResolution{}).Effective(); got != RoleUser {
		t.Errorf("empty resolution should default to user, got %q", got)
	}
	if got := (RoleResolution{Role: RoleAdmin, Found: true}).Effective(); got != RoleAdmin {
		t.Errorf("expected admin, got %q", got)
	}
	if got := (RoleResolution{Role: RoleAdmin, Found: false}).Effective(); got != RoleUser {
		t.Errorf("unfound resolution should default to user, got %q", got)
	}
}

package domain

import "time"

// ClaimStatus represents the lifecycle state of a claim.
type ClaimStatus string

const (
	ClaimSubmitted ClaimStatus = "submitted"
	ClaimApproved  ClaimStatus = "approved"
	ClaimRejected  ClaimStatus = "rejected"
)

var validClaimTransitions = map[ClaimStatus][]ClaimStatus{
	ClaimSubmitted: {ClaimApproved, ClaimRejected},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s ClaimStatus) CanTransitionTo(next ClaimStatus) bool {
	for _, allowed := range validClaimTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Claim is a loss report filed against an active policy.
type Claim struct {
	ID              string      `json:"id"`
	ClaimNumber     string      `json:"claim_number"`
	PolicyID        string      `json:"policy_id"`
	UserID          string      `json:"user_id"`
	AccidentDate    time.Time   `json:"accident_date"`
	Description     string      `json:"description"`
	EstimatedAmount float64     `json:"estimated_amount,omitempty"`
	ApprovedAmount  *float64    `json:"approved_amount,omitempty"`
	AdminNotes      string      `json:"admin_notes,omitempty"`
	Uploads         []string    `json:"uploads,omitempty"`
	Status          ClaimStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// PolicySummary is the slice of policy fields joined onto claim listings.
type PolicySummary struct {
	PolicyNumber string `json:"policy_number"`
	VehicleMake  string `json:"vehicle_make"`
	VehicleModel string `json:"vehicle_model"`
	VehicleYear  int    `json:"vehicle_year"`
}

// ClaimWithPolicy is a claim decorated with its policy summary for listings.
type ClaimWithPolicy struct {
	Claim
	Policy PolicySummary `json:"policy"`
}

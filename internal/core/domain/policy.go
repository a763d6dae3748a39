package domain

import "time"

// PolicyStatus represents the lifecycle state of an insurance policy.
type PolicyStatus string

const (
	PolicyPending   PolicyStatus = "pending"
	PolicyActive    PolicyStatus = "active"
	PolicyExpired   PolicyStatus = "expired"
	PolicyCancelled PolicyStatus = "cancelled"
)

var validPolicyTransitions = map[PolicyStatus][]PolicyStatus{
	PolicyPending: {PolicyActive, PolicyCancelled},
	PolicyActive:  {PolicyExpired, PolicyCancelled},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s PolicyStatus) CanTransitionTo(next PolicyStatus) bool {
	for _, allowed := range validPolicyTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// renewalWindow is how far ahead of expiry a policy is flagged for renewal.
const renewalWindow = 30 * 24 * time.Hour

// Vehicle captures the insured vehicle's details.
type Vehicle struct {
	Make          string `json:"make"`
	Model         string `json:"model"`
	Year          int    `json:"year"`
	RegNumber     string `json:"reg_number"`
	Category      string `json:"category,omitempty"`
	EngineNumber  string `json:"engine_number,omitempty"`
	ChassisNumber string `json:"chassis_number,omitempty"`
	EnergyType    string `json:"energy_type,omitempty"`
	SeatingCap    int    `json:"seating_capacity,omitempty"`
	Tonnage       float64 `json:"tonnage,omitempty"`
}

// Owner captures the policyholder's contact details.
type Owner struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Policy is the core insurance aggregate.
type Policy struct {
	ID           string       `json:"id"`
	PolicyNumber string       `json:"policy_number"`
	UserID       string       `json:"user_id"`
	OrderID      string       `json:"order_id,omitempty"`
	PolicyTypeID string       `json:"policy_type_id,omitempty"`
	PolicyType   string       `json:"policy_type,omitempty"`
	Vehicle      Vehicle      `json:"vehicle"`
	Owner        Owner        `json:"owner"`
	Premium      float64      `json:"premium"`
	StartDate    time.Time    `json:"start_date"`
	ExpiryDate   time.Time    `json:"expiry_date"`
	Renewable    bool         `json:"renewable"`
	Status       PolicyStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// RenewalDue reports whether the policy expires within the renewal window
// relative to now. Already-expired policies are not flagged.
func (p Policy) RenewalDue(now time.Time) bool {
	until := p.ExpiryDate.Sub(now)
	return until > 0 && until <= renewalWindow
}

// PolicyType is an admin-managed product definition backing catalog items.
type PolicyType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	BasePremium float64   `json:"base_premium"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

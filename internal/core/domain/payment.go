package domain

import "time"

// PaymentStatus represents the settlement state of a recorded payment.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment is one premium payment recorded against a policy.
type Payment struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	PolicyID      string        `json:"policy_id"`
	Amount        float64       `json:"amount"`
	PaymentDate   time.Time     `json:"payment_date"`
	PaymentMethod string        `json:"payment_method"`
	PlanType      string        `json:"plan_type"`
	Status        PaymentStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

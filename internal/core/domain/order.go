package domain

import "time"

// OrderStatus represents the lifecycle state of a checkout order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderApproved  OrderStatus = "approved"
	OrderRejected  OrderStatus = "rejected"
	OrderCompleted OrderStatus = "completed"
)

// validOrderTransitions defines the allowed state machine transitions.
// Completed is reached only by the issuance worker once every line has a
// policy.
var validOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:  {OrderApproved, OrderRejected},
	OrderApproved: {OrderCompleted},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderLine is one purchased cart entry. RatePremium is the effective price
// at checkout multiplied by the quantity.
type OrderLine struct {
	ID          string  `json:"id"`
	ItemID      string  `json:"item_id"`
	ItemName    string  `json:"item_name"`
	Quantity    int     `json:"quantity"`
	RatePremium float64 `json:"rate_premium"`
}

// Order is a checkout submission awaiting admin review.
type Order struct {
	ID              string      `json:"id"`
	OrderNumber     string      `json:"order_number"`
	CustomerID      string      `json:"customer_id"`
	Lines           []OrderLine `json:"lines"`
	Total           float64     `json:"total"`
	DeliveryAddress string      `json:"delivery_address,omitempty"`
	PhoneNumber     string      `json:"phone_number,omitempty"`
	ProofOfPayment  string      `json:"proof_of_payment,omitempty"`
	Status          OrderStatus `json:"status"`
	IdempotencyKey  string      `json:"idempotency_key,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

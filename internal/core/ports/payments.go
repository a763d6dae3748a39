package ports

import (
	"context"
	"time"

	"github.com/motorshield/insurance-portal/internal/core/domain"
)

// PaymentRepository defines persistence for payment records.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	// List returns payments newest first; userID empty means all (admin).
	List(ctx context.Context, userID string) ([]*domain.Payment, error)
}

// RecordPaymentInput carries an admin-recorded premium payment.
type RecordPaymentInput struct {
	UserID        string
	PolicyID      string
	Amount        float64
	PaymentDate   time.Time
	PaymentMethod string
	PlanType      string
	Status        domain.PaymentStatus
}

// PaymentService defines payment-history use cases.
type PaymentService interface {
	ListPayments(ctx context.Context, userID string) ([]*domain.Payment, error)
	RecordPayment(ctx context.Context, input RecordPaymentInput) (*domain.Payment, error)
}

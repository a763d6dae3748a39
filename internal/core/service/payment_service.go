package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/motorshield/insurance-portal/internal/core/domain"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

// PaymentService implements the payment-history use cases. Payments are
// recorded by admins; customers only read their own history.
type PaymentService struct {
	payments ports.PaymentRepository
	policies ports.PolicyRepository
	log      zerolog.Logger
}

func NewPaymentService(payments ports.PaymentRepository, policies ports.PolicyRepository, log zerolog.Logger) *PaymentService {
	return &PaymentService{payments: payments, policies: policies, log: log}
}

func (s *PaymentService) ListPayments(ctx context.Context, userID string) ([]*domain.Payment, error) {
	return s.payments.List(ctx, userID)
}

func (s *PaymentService) RecordPayment(ctx context.Context, input ports.RecordPaymentInput) (*domain.Payment, error) {
	if _, err := s.policies.FindByID(ctx, input.PolicyID); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.PaymentCompleted
	}
	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now().UTC()
	}

	payment := &domain.Payment{
		UserID:        input.UserID,
		PolicyID:      input.PolicyID,
		Amount:        input.Amount,
		PaymentDate:   paymentDate,
		PaymentMethod: input.PaymentMethod,
		PlanType:      input.PlanType,
		Status:        status,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.payments.Create(ctx, payment)
	if err != nil {
		s.log.Error().Err(err).Str("policy_id", input.PolicyID).Msg("failed to record payment")
		return nil, err
	}

	s.log.Info().Str("payment_id", created.ID).Float64("amount", created.Amount).Msg("payment recorded")
	return created, nil
}

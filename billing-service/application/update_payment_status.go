package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/swiftship/courier-system/billing-service/domain"
	"github.com/swiftship/courier-system/shared/events"
	"github.com/swiftship/courier-system/shared/models"
)

// UpdatePaymentStatusCommand represents an administrative status override
type UpdatePaymentStatusCommand struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
}

// UpdatePaymentStatusResponse represents the response after an override
type UpdatePaymentStatusResponse struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
}

// UpdatePaymentStatus applies a back-office status override. The override
// bypasses the charge flow, so no attempt row is written; the change is
// journaled as a domain event instead.
type UpdatePaymentStatus struct {
	payments       domain.PaymentRepository
	eventPublisher events.Publisher
}

// NewUpdatePaymentStatus creates a new UpdatePaymentStatus use case
func NewUpdatePaymentStatus(payments domain.PaymentRepository, eventPublisher events.Publisher) *UpdatePaymentStatus {
	return &UpdatePaymentStatus{
		payments:       payments,
		eventPublisher: eventPublisher,
	}
}

// Execute applies the status override
func (uc *UpdatePaymentStatus) Execute(ctx context.Context, cmd *UpdatePaymentStatusCommand) (*UpdatePaymentStatusResponse, error) {
	if cmd.PaymentID == "" {
		return nil, domain.NewValidationError("payment ID is required")
	}

	status, err := domain.NewPaymentStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	paymentID, err := models.NewID(cmd.PaymentID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid payment ID")
	}

	payment, err := uc.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find payment")
	}
	if payment == nil {
		return nil, errors.Wrapf(domain.ErrNotFound, "payment %s not found", paymentID)
	}

	if err := payment.OverrideStatus(*status); err != nil {
		return nil, err
	}

	if err := uc.payments.Save(ctx, payment); err != nil {
		return nil, errors.Wrap(err, "failed to save payment")
	}

	if err := uc.eventPublisher.Publish(ctx, payment.Events()...); err != nil {
		return nil, errors.Wrap(err, "failed to publish events")
	}
	payment.ClearEvents()

	return &UpdatePaymentStatusResponse{
		PaymentID: payment.ID.String(),
		Status:    payment.Status.String(),
	}, nil
}

package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/swiftship/courier-system/billing-service/domain"
	"github.com/swiftship/courier-system/shared/events"
	"github.com/swiftship/courier-system/shared/models"
)

// CreatePaymentCommand represents the command to open a payment for a
// placed order
type CreatePaymentCommand struct {
	OrderID  string `json:"order_id"`
	ParcelID string `json:"parcel_id"`
	UserID   string `json:"user_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreatePaymentResponse represents the response after opening a payment
type CreatePaymentResponse struct {
	PaymentID string `json:"payment_id"`
}

// CreatePayment opens the NOT_PAID payment for a freshly placed order.
// It is driven by order placed events, so it is idempotent per order:
// redelivered events return the existing payment.
type CreatePayment struct {
	payments       domain.PaymentRepository
	eventPublisher events.Publisher
}

// NewCreatePayment creates a new CreatePayment use case
func NewCreatePayment(payments domain.PaymentRepository, eventPublisher events.Publisher) *CreatePayment {
	return &CreatePayment{
		payments:       payments,
		eventPublisher: eventPublisher,
	}
}

// Execute opens the payment for an order
func (uc *CreatePayment) Execute(ctx context.Context, cmd *CreatePaymentCommand) (*CreatePaymentResponse, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	orderID, err := models.NewID(cmd.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	parcelID, err := models.NewID(cmd.ParcelID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid parcel ID")
	}

	userID, err := models.NewID(cmd.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user ID")
	}

	existing, err := uc.payments.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check for existing payment")
	}
	if existing != nil {
		// A redelivered order placed event must carry the same total as the
		// payment it originally opened.
		if !existing.Amount.Equals(models.NewMoney(cmd.Amount, cmd.Currency)) {
			return nil, errors.Wrapf(domain.ErrConflict,
				"payment for order %s already open with amount %s", orderID, existing.Amount)
		}
		return &CreatePaymentResponse{PaymentID: existing.ID.String()}, nil
	}

	payment, err := domain.CreatePayment(orderID, parcelID, userID, models.NewMoney(cmd.Amount, cmd.Currency))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create payment")
	}

	if err := uc.payments.Save(ctx, payment); err != nil {
		return nil, errors.Wrap(err, "failed to save payment")
	}

	if err := uc.eventPublisher.Publish(ctx, payment.Events()...); err != nil {
		return nil, errors.Wrap(err, "failed to publish events")
	}
	payment.ClearEvents()

	return &CreatePaymentResponse{PaymentID: payment.ID.String()}, nil
}

func (uc *CreatePayment) validateCommand(cmd *CreatePaymentCommand) error {
	if cmd.OrderID == "" {
		return domain.NewValidationError("order ID is required")
	}
	if cmd.ParcelID == "" {
		return domain.NewValidationError("parcel ID is required")
	}
	if cmd.UserID == "" {
		return domain.NewValidationError("user ID is required")
	}
	if cmd.Amount <= 0 {
		return domain.NewValidationError("amount must be positive")
	}
	if cmd.Currency == "" {
		return domain.NewValidationError("currency is required")
	}
	return nil
}

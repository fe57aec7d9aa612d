package application

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/swiftship/courier-system/billing-service/domain"
	"github.com/swiftship/courier-system/shared/models"
)

// GetPaymentDetailsQuery represents the query for an order's payment
type GetPaymentDetailsQuery struct {
	OrderID   string           `json:"order_id"`
	Principal domain.Principal `json:"-"`
}

// PaymentAttemptView is one attempt row in the payment details
type PaymentAttemptView struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	Provider      string    `json:"provider,omitempty"`
	TransactionID string    `json:"transaction_id,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentDetailsResponse represents a payment with its attempt history
type PaymentDetailsResponse struct {
	PaymentID string               `json:"payment_id"`
	OrderID   string               `json:"order_id"`
	ParcelID  string               `json:"parcel_id"`
	Amount    models.Money         `json:"amount"`
	Status    string               `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	Attempts  []PaymentAttemptView `json:"attempts"`
}

// GetPaymentDetails reads an order's payment together with its attempt log
type GetPaymentDetails struct {
	payments domain.PaymentRepository
	attempts domain.PaymentAttemptRepository
}

// NewGetPaymentDetails creates a new GetPaymentDetails use case
func NewGetPaymentDetails(payments domain.PaymentRepository, attempts domain.PaymentAttemptRepository) *GetPaymentDetails {
	return &GetPaymentDetails{payments: payments, attempts: attempts}
}

// Execute loads the payment details for an order
func (uc *GetPaymentDetails) Execute(ctx context.Context, query *GetPaymentDetailsQuery) (*PaymentDetailsResponse, error) {
	if query.OrderID == "" {
		return nil, domain.NewValidationError("order ID is required")
	}
	if query.Principal.IsZero() {
		return nil, errors.Wrap(domain.ErrUnauthorized, "no principal on request")
	}

	orderID, err := models.NewID(query.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	payment, err := uc.payments.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find payment")
	}
	if payment == nil {
		return nil, errors.Wrapf(domain.ErrNotFound, "no payment for order %s", orderID)
	}

	if payment.UserID != query.Principal.ID {
		return nil, errors.Wrap(domain.ErrUnauthorized, "payment belongs to another user")
	}

	attempts, err := uc.attempts.FindByPaymentID(ctx, payment.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load payment attempts")
	}

	views := make([]PaymentAttemptView, 0, len(attempts))
	for _, attempt := range attempts {
		views = append(views, PaymentAttemptView{
			ID:            attempt.ID.String(),
			Status:        string(attempt.Status),
			Provider:      attempt.Provider,
			TransactionID: attempt.TransactionID,
			FailureReason: attempt.FailureReason,
			CreatedAt:     attempt.Timestamps.CreatedAt,
		})
	}

	return &PaymentDetailsResponse{
		PaymentID: payment.ID.String(),
		OrderID:   payment.OrderID.String(),
		ParcelID:  payment.ParcelID.String(),
		Amount:    payment.Amount,
		Status:    payment.Status.String(),
		CreatedAt: payment.Timestamps.CreatedAt,
		UpdatedAt: payment.Timestamps.UpdatedAt,
		Attempts:  views,
	}, nil
}

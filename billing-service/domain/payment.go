package domain

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/swiftship/courier-system/shared/events"
	"github.com/swiftship/courier-system/shared/models"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusNotPaid  PaymentStatus = "NOT_PAID"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusCanceled PaymentStatus = "CANCELED"
)

var allPaymentStatuses = map[string]PaymentStatus{
	PaymentStatusNotPaid.String():  PaymentStatusNotPaid,
	PaymentStatusPaid.String():     PaymentStatusPaid,
	PaymentStatusFailed.String():   PaymentStatusFailed,
	PaymentStatusCanceled.String(): PaymentStatusCanceled,
}

// NewPaymentStatus parses a status value, rejecting anything outside the
// recognized set. The administrative override path relies on this check.
func NewPaymentStatus(value string) (*PaymentStatus, error) {
	if status, ok := allPaymentStatuses[value]; ok {
		return &status, nil
	}
	return nil, NewValidationError("unknown payment status: %s", value)
}

func (s PaymentStatus) String() string {
	return string(s)
}

// Payment aggregate root. One payment per order, created NOT_PAID when the
// order is placed and advanced only by the charge flow or an administrative
// override.
type Payment struct {
	ID         models.ID
	OrderID    models.ID
	ParcelID   models.ID
	UserID     models.ID
	Amount     models.Money
	Status     PaymentStatus
	Timestamps models.Timestamps
	Version    models.Version

	events []*events.Event
}

// CreatePayment factory method
func CreatePayment(orderID, parcelID, userID models.ID, amount models.Money) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, errors.New("amount must be positive")
	}
	if orderID.IsEmpty() {
		return nil, errors.New("order ID is required")
	}
	if userID.IsEmpty() {
		return nil, errors.New("user ID is required")
	}

	payment := &Payment{
		ID:         models.GenerateUUID(),
		OrderID:    orderID,
		ParcelID:   parcelID,
		UserID:     userID,
		Amount:     amount,
		Status:     PaymentStatusNotPaid,
		Timestamps: models.NewTimestamps(),
		Version:    models.NewVersion(),
	}

	event := events.NewEvent(payment.ID, events.PaymentCreatedEvent, PaymentCreatedData{
		PaymentID: payment.ID,
		OrderID:   payment.OrderID,
		ParcelID:  payment.ParcelID,
		UserID:    payment.UserID,
		Amount:    payment.Amount,
	})

	payment.recordEvent(event)
	return payment, nil
}

// MarkPaid transitions the payment to PAID after a successful charge
func (p *Payment) MarkPaid() error {
	if p.Status != PaymentStatusNotPaid {
		return errors.New("payment can only be paid from NOT_PAID status")
	}

	p.Status = PaymentStatusPaid
	p.Timestamps = p.Timestamps.Update()
	p.Version = p.Version.Update()

	event := events.NewEvent(p.ID, events.PaymentPaidEvent, PaymentPaidData{
		PaymentID: p.ID,
		OrderID:   p.OrderID,
		UserID:    p.UserID,
		Amount:    p.Amount,
		PaidAt:    time.Now(),
	})

	p.recordEvent(event)
	return nil
}

// Cancel marks the payment as canceled
func (p *Payment) Cancel() error {
	if p.Status == PaymentStatusPaid {
		return errors.New("cannot cancel a paid payment")
	}

	p.Status = PaymentStatusCanceled
	p.Timestamps = p.Timestamps.Update()
	p.Version = p.Version.Update()

	event := events.NewEvent(p.ID, events.PaymentCanceledEvent, PaymentCanceledData{
		PaymentID:  p.ID,
		OrderID:    p.OrderID,
		CanceledAt: time.Now(),
	})

	p.recordEvent(event)
	return nil
}

// OverrideStatus applies an administrative status change, bypassing the
// charge flow. The status must already be validated via NewPaymentStatus.
func (p *Payment) OverrideStatus(status PaymentStatus) error {
	if _, ok := allPaymentStatuses[status.String()]; !ok {
		return NewValidationError("unknown payment status: %s", status)
	}

	previous := p.Status
	p.Status = status
	p.Timestamps = p.Timestamps.Update()
	p.Version = p.Version.Update()

	event := events.NewEvent(p.ID, events.PaymentStatusOverriddenEvent, PaymentStatusOverriddenData{
		PaymentID:      p.ID,
		OrderID:        p.OrderID,
		PreviousStatus: previous,
		NewStatus:      status,
		OverriddenAt:   time.Now(),
	})

	p.recordEvent(event)
	return nil
}

// Events returns domain events
func (p *Payment) Events() []*events.Event {
	return p.events
}

// ClearEvents clears domain events
func (p *Payment) ClearEvents() {
	p.events = make([]*events.Event, 0)
}

func (p *Payment) recordEvent(event *events.Event) {
	p.events = append(p.events, event)
}

// Event Data Structures
type PaymentCreatedData struct {
	PaymentID models.ID    `json:"payment_id"`
	OrderID   models.ID    `json:"order_id"`
	ParcelID  models.ID    `json:"parcel_id"`
	UserID    models.ID    `json:"user_id"`
	Amount    models.Money `json:"amount"`
}

type PaymentPaidData struct {
	PaymentID models.ID    `json:"payment_id"`
	OrderID   models.ID    `json:"order_id"`
	UserID    models.ID    `json:"user_id"`
	Amount    models.Money `json:"amount"`
	PaidAt    time.Time    `json:"paid_at"`
}

type PaymentCanceledData struct {
	PaymentID  models.ID `json:"payment_id"`
	OrderID    models.ID `json:"order_id"`
	CanceledAt time.Time `json:"canceled_at"`
}

type PaymentStatusOverriddenData struct {
	PaymentID      models.ID     `json:"payment_id"`
	OrderID        models.ID     `json:"order_id"`
	PreviousStatus PaymentStatus `json:"previous_status"`
	NewStatus      PaymentStatus `json:"new_status"`
	OverriddenAt   time.Time     `json:"overridden_at"`
}

// PaymentRepository interface
type PaymentRepository interface {
	Save(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id models.ID) (*Payment, error)
	FindByOrderID(ctx context.Context, orderID models.ID) (*Payment, error)
}

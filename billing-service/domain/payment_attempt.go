package domain

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/swiftship/courier-system/shared/events"
	"github.com/swiftship/courier-system/shared/models"
)

// PaymentAttemptStatus represents the status of a single charge attempt
type PaymentAttemptStatus string

const (
	PaymentAttemptStatusPending PaymentAttemptStatus = "PENDING"
	PaymentAttemptStatusSuccess PaymentAttemptStatus = "SUCCESS"
	PaymentAttemptStatusFailed  PaymentAttemptStatus = "FAILED"
)

// PaymentAttempt is the durable record of one charge attempt against a
// payment. It starts PENDING and moves to exactly one terminal state.
type PaymentAttempt struct {
	ID            models.ID
	PaymentID     models.ID
	Status        PaymentAttemptStatus
	Provider      string
	TransactionID string
	FailureReason string
	Timestamps    models.Timestamps
	Version       models.Version

	events []*events.Event
}

// NewPaymentAttempt creates a new PENDING attempt bound to a payment
func NewPaymentAttempt(paymentID models.ID) *PaymentAttempt {
	attempt := &PaymentAttempt{
		ID:         models.GenerateUUID(),
		PaymentID:  paymentID,
		Status:     PaymentAttemptStatusPending,
		Timestamps: models.NewTimestamps(),
		Version:    models.NewVersion(),
	}

	event := events.NewEvent(attempt.ID, events.PaymentAttemptStartedEvent, PaymentAttemptStartedData{
		AttemptID: attempt.ID,
		PaymentID: attempt.PaymentID,
	})

	attempt.recordEvent(event)
	return attempt
}

// Succeed marks the attempt as SUCCESS with the provider result
func (a *PaymentAttempt) Succeed(provider, transactionID string) error {
	if a.Status != PaymentAttemptStatusPending {
		return errors.Errorf("attempt is already %s", a.Status)
	}

	a.Status = PaymentAttemptStatusSuccess
	a.Provider = provider
	a.TransactionID = transactionID
	a.Timestamps = a.Timestamps.Update()
	a.Version = a.Version.Update()

	event := events.NewEvent(a.ID, events.PaymentAttemptSucceededEvent, PaymentAttemptSucceededData{
		AttemptID:     a.ID,
		PaymentID:     a.PaymentID,
		Provider:      a.Provider,
		TransactionID: a.TransactionID,
		SucceededAt:   time.Now(),
	})

	a.recordEvent(event)
	return nil
}

// Fail marks the attempt as FAILED with the decline reason
func (a *PaymentAttempt) Fail(provider, reason string) error {
	if a.Status != PaymentAttemptStatusPending {
		return errors.Errorf("attempt is already %s", a.Status)
	}

	a.Status = PaymentAttemptStatusFailed
	a.Provider = provider
	a.FailureReason = reason
	a.Timestamps = a.Timestamps.Update()
	a.Version = a.Version.Update()

	event := events.NewEvent(a.ID, events.PaymentAttemptFailedEvent, PaymentAttemptFailedData{
		AttemptID:     a.ID,
		PaymentID:     a.PaymentID,
		Provider:      a.Provider,
		FailureReason: a.FailureReason,
		FailedAt:      time.Now(),
	})

	a.recordEvent(event)
	return nil
}

// IsTerminal reports whether the attempt reached SUCCESS or FAILED
func (a *PaymentAttempt) IsTerminal() bool {
	return a.Status != PaymentAttemptStatusPending
}

// Events returns domain events
func (a *PaymentAttempt) Events() []*events.Event {
	return a.events
}

// ClearEvents clears domain events
func (a *PaymentAttempt) ClearEvents() {
	a.events = make([]*events.Event, 0)
}

func (a *PaymentAttempt) recordEvent(event *events.Event) {
	a.events = append(a.events, event)
}

// Event Data Structures
type PaymentAttemptStartedData struct {
	AttemptID models.ID `json:"attempt_id"`
	PaymentID models.ID `json:"payment_id"`
}

type PaymentAttemptSucceededData struct {
	AttemptID     models.ID `json:"attempt_id"`
	PaymentID     models.ID `json:"payment_id"`
	Provider      string    `json:"provider"`
	TransactionID string    `json:"transaction_id"`
	SucceededAt   time.Time `json:"succeeded_at"`
}

type PaymentAttemptFailedData struct {
	AttemptID     models.ID `json:"attempt_id"`
	PaymentID     models.ID `json:"payment_id"`
	Provider      string    `json:"provider"`
	FailureReason string    `json:"failure_reason"`
	FailedAt      time.Time `json:"failed_at"`
}

// PaymentAttemptRepository persists charge attempts. Implementations must
// commit every write on its own connection, outside any transaction carried
// by ctx: the attempt log has to survive a rollback of the surrounding
// operation, otherwise a failed charge would erase the evidence that an
// attempt was ever made.
type PaymentAttemptRepository interface {
	Create(ctx context.Context, attempt *PaymentAttempt) error
	Update(ctx context.Context, attempt *PaymentAttempt) error
	FindByPaymentID(ctx context.Context, paymentID models.ID) ([]*PaymentAttempt, error)
}

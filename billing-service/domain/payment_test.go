package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/swiftship/courier-system/shared/events"
	"github.com/swiftship/courier-system/shared/models"
)

func newTestPayment(t *testing.T) *Payment {
	t.Helper()

	payment, err := CreatePayment(
		models.GenerateUUID(),
		models.GenerateUUID(),
		models.GenerateUUID(),
		models.NewMoney(2500, "USD"),
	)
	assert.NoError(t, err)
	payment.ClearEvents()

	return payment
}

func TestCreatePayment(t *testing.T) {
	tests := []struct {
		name          string
		orderID       models.ID
		userID        models.ID
		amount        models.Money
		expectedError string
	}{
		{
			name:    "successful creation",
			orderID: models.GenerateUUID(),
			userID:  models.GenerateUUID(),
			amount:  models.NewMoney(2500, "USD"),
		},
		{
			name:          "zero amount",
			orderID:       models.GenerateUUID(),
			userID:        models.GenerateUUID(),
			amount:        models.NewMoney(0, "USD"),
			expectedError: "amount must be positive",
		},
		{
			name:          "negative amount",
			orderID:       models.GenerateUUID(),
			userID:        models.GenerateUUID(),
			amount:        models.NewMoney(-100, "USD"),
			expectedError: "amount must be positive",
		},
		{
			name:          "missing order ID",
			userID:        models.GenerateUUID(),
			amount:        models.NewMoney(2500, "USD"),
			expectedError: "order ID is required",
		},
		{
			name:          "missing user ID",
			orderID:       models.GenerateUUID(),
			amount:        models.NewMoney(2500, "USD"),
			expectedError: "user ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment, err := CreatePayment(tt.orderID, models.GenerateUUID(), tt.userID, tt.amount)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, payment)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, PaymentStatusNotPaid, payment.Status)
			assert.Len(t, payment.Events(), 1)
			assert.Equal(t, events.PaymentCreatedEvent, payment.Events()[0].EventType)
		})
	}
}

func TestPayment_MarkPaid(t *testing.T) {
	t.Run("marks a fresh payment paid", func(t *testing.T) {
		payment := newTestPayment(t)

		err := payment.MarkPaid()

		assert.NoError(t, err)
		assert.Equal(t, PaymentStatusPaid, payment.Status)
		assert.Len(t, payment.Events(), 1)
		assert.Equal(t, events.PaymentPaidEvent, payment.Events()[0].EventType)
	})

	t.Run("rejects a second settlement", func(t *testing.T) {
		payment := newTestPayment(t)
		assert.NoError(t, payment.MarkPaid())
		payment.ClearEvents()

		err := payment.MarkPaid()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "NOT_PAID")
		assert.Empty(t, payment.Events())
	})

	t.Run("rejects settling a canceled payment", func(t *testing.T) {
		payment := newTestPayment(t)
		assert.NoError(t, payment.Cancel())

		err := payment.MarkPaid()

		assert.Error(t, err)
		assert.Equal(t, PaymentStatusCanceled, payment.Status)
	})
}

func TestPayment_Cancel(t *testing.T) {
	t.Run("cancels an open payment", func(t *testing.T) {
		payment := newTestPayment(t)

		err := payment.Cancel()

		assert.NoError(t, err)
		assert.Equal(t, PaymentStatusCanceled, payment.Status)
	})

	t.Run("rejects canceling a paid payment", func(t *testing.T) {
		payment := newTestPayment(t)
		assert.NoError(t, payment.MarkPaid())

		err := payment.Cancel()

		assert.Error(t, err)
		assert.Equal(t, PaymentStatusPaid, payment.Status)
	})
}

func TestPayment_OverrideStatus(t *testing.T) {
	t.Run("records the previous status in the journal event", func(t *testing.T) {
		payment := newTestPayment(t)

		err := payment.OverrideStatus(PaymentStatusFailed)

		assert.NoError(t, err)
		assert.Equal(t, PaymentStatusFailed, payment.Status)
		assert.Len(t, payment.Events(), 1)

		event := payment.Events()[0]
		assert.Equal(t, events.PaymentStatusOverriddenEvent, event.EventType)

		data, ok := event.Data.(PaymentStatusOverriddenData)
		assert.True(t, ok)
		assert.Equal(t, PaymentStatusNotPaid, data.PreviousStatus)
		assert.Equal(t, PaymentStatusFailed, data.NewStatus)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		payment := newTestPayment(t)

		err := payment.OverrideStatus(PaymentStatus("SETTLED"))

		assert.Error(t, err)
		assert.True(t, IsValidationError(err))
		assert.Equal(t, PaymentStatusNotPaid, payment.Status)
	})
}

func TestNewPaymentStatus(t *testing.T) {
	tests := []struct {
		name          string
		value         string
		expectedError bool
	}{
		{name: "not paid", value: "NOT_PAID"},
		{name: "paid", value: "PAID"},
		{name: "failed", value: "FAILED"},
		{name: "canceled", value: "CANCELED"},
		{name: "unknown value", value: "SETTLED", expectedError: true},
		{name: "lowercase is rejected", value: "paid", expectedError: true},
		{name: "empty value", value: "", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := NewPaymentStatus(tt.value)

			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, IsValidationError(err))
				assert.Contains(t, err.Error(), "unknown payment status")
				assert.Nil(t, status)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.value, status.String())
		})
	}
}

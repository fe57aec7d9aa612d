package application

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/swiftship/courier-system/billing-service/domain"
	"github.com/swiftship/courier-system/billing-service/mocks"
	"github.com/swiftship/courier-system/shared/models"
)

func TestGetPaymentDetails_Execute(t *testing.T) {
	principal := domain.Principal{ID: models.GenerateUUID(), Name: "Jane Roe"}

	newPayment := func(t *testing.T, userID models.ID) *domain.Payment {
		t.Helper()
		payment, err := domain.CreatePayment(
			models.GenerateUUID(),
			models.GenerateUUID(),
			userID,
			models.NewMoney(4200, "USD"),
		)
		assert.NoError(t, err)
		payment.ClearEvents()
		return payment
	}

	t.Run("returns payment with attempt history", func(t *testing.T) {
		payment := newPayment(t, principal.ID)

		succeeded := domain.NewPaymentAttempt(payment.ID)
		assert.NoError(t, succeeded.Succeed(domain.ProviderCreditCard, "txn-123"))
		failed := domain.NewPaymentAttempt(payment.ID)
		assert.NoError(t, failed.Fail(domain.ProviderCreditCard, "DECLINED: card declined"))

		mockPayments := mocks.NewMockPaymentRepository(t)
		mockAttempts := mocks.NewMockPaymentAttemptRepository(t)

		mockPayments.EXPECT().FindByOrderID(mock.Anything, payment.OrderID).Return(payment, nil).Once()
		mockAttempts.EXPECT().FindByPaymentID(mock.Anything, payment.ID).
			Return([]*domain.PaymentAttempt{failed, succeeded}, nil).Once()

		useCase := NewGetPaymentDetails(mockPayments, mockAttempts)

		result, err := useCase.Execute(context.Background(), &GetPaymentDetailsQuery{
			OrderID:   payment.OrderID.String(),
			Principal: principal,
		})

		assert.NoError(t, err)
		assert.Equal(t, payment.ID.String(), result.PaymentID)
		assert.Equal(t, payment.ParcelID.String(), result.ParcelID)
		assert.Equal(t, "NOT_PAID", result.Status)
		assert.Len(t, result.Attempts, 2)
		assert.Equal(t, "DECLINED: card declined", result.Attempts[0].FailureReason)
		assert.Equal(t, "txn-123", result.Attempts[1].TransactionID)
	})

	t.Run("payment owned by another user", func(t *testing.T) {
		payment := newPayment(t, models.GenerateUUID())

		mockPayments := mocks.NewMockPaymentRepository(t)
		mockAttempts := mocks.NewMockPaymentAttemptRepository(t)

		mockPayments.EXPECT().FindByOrderID(mock.Anything, payment.OrderID).Return(payment, nil).Once()

		useCase := NewGetPaymentDetails(mockPayments, mockAttempts)

		result, err := useCase.Execute(context.Background(), &GetPaymentDetailsQuery{
			OrderID:   payment.OrderID.String(),
			Principal: principal,
		})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})

	t.Run("no payment for order", func(t *testing.T) {
		orderID := models.GenerateUUID()

		mockPayments := mocks.NewMockPaymentRepository(t)
		mockAttempts := mocks.NewMockPaymentAttemptRepository(t)

		mockPayments.EXPECT().FindByOrderID(mock.Anything, orderID).Return(nil, nil).Once()

		useCase := NewGetPaymentDetails(mockPayments, mockAttempts)

		result, err := useCase.Execute(context.Background(), &GetPaymentDetailsQuery{
			OrderID:   orderID.String(),
			Principal: principal,
		})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("missing order ID", func(t *testing.T) {
		useCase := NewGetPaymentDetails(mocks.NewMockPaymentRepository(t), mocks.NewMockPaymentAttemptRepository(t))

		result, err := useCase.Execute(context.Background(), &GetPaymentDetailsQuery{Principal: principal})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("missing principal", func(t *testing.T) {
		useCase := NewGetPaymentDetails(mocks.NewMockPaymentRepository(t), mocks.NewMockPaymentAttemptRepository(t))

		result, err := useCase.Execute(context.Background(), &GetPaymentDetailsQuery{
			OrderID: models.GenerateUUID().String(),
		})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})
}

package application

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/swiftship/courier-system/billing-service/domain"
	"github.com/swiftship/courier-system/billing-service/mocks"
	"github.com/swiftship/courier-system/shared/models"
)

type processPaymentMocks struct {
	payments  *mocks.MockPaymentRepository
	attempts  *mocks.MockPaymentAttemptRepository
	orders    *mocks.MockOrderRepository
	parcels   *mocks.MockParcelRepository
	methods   *mocks.MockPaymentMethodRepository
	publisher *mocks.MockPublisher
	tx        *mocks.MockTxManager
}

func newProcessPaymentMocks(t *testing.T) *processPaymentMocks {
	return &processPaymentMocks{
		payments:  mocks.NewMockPaymentRepository(t),
		attempts:  mocks.NewMockPaymentAttemptRepository(t),
		orders:    mocks.NewMockOrderRepository(t),
		parcels:   mocks.NewMockParcelRepository(t),
		methods:   mocks.NewMockPaymentMethodRepository(t),
		publisher: mocks.NewMockPublisher(t),
		tx:        mocks.NewMockTxManager(t),
	}
}

func (m *processPaymentMocks) useCase() *ProcessPayment {
	return m.useCaseWithProcessors(domain.NewDefaultProcessorRegistry())
}

func (m *processPaymentMocks) useCaseWithProcessors(processors *domain.ProcessorRegistry) *ProcessPayment {
	return NewProcessPayment(
		m.payments,
		m.attempts,
		m.orders,
		m.parcels,
		m.methods,
		domain.NewPaymentMethodFactory(m.methods),
		processors,
		m.publisher,
		m.tx,
	)
}

// passthroughTx makes WithinTx run its function directly
func (m *processPaymentMocks) passthroughTx() {
	m.tx.EXPECT().WithinTx(mock.Anything, mock.Anything).RunAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).Once()
}

type billingFixture struct {
	principal domain.Principal
	payment   *domain.Payment
	order     *domain.Order
	parcel    *domain.Parcel
}

func newBillingFixture(t *testing.T) *billingFixture {
	t.Helper()

	principal := domain.Principal{ID: models.GenerateUUID(), Name: "Jane Roe"}
	orderID := models.GenerateUUID()
	parcelID := models.GenerateUUID()

	payment, err := domain.CreatePayment(orderID, parcelID, principal.ID, models.NewMoney(2500, "USD"))
	assert.NoError(t, err)
	payment.ClearEvents()

	order := &domain.Order{
		ID:         orderID,
		UserID:     principal.ID,
		Total:      models.NewMoney(2500, "USD"),
		Status:     domain.OrderStatusPending,
		Timestamps: models.NewTimestamps(),
		Version:    models.NewVersion(),
	}

	parcel := &domain.Parcel{
		ID:              parcelID,
		OrderID:         orderID,
		UserID:          principal.ID,
		PickupAddress:   "12 Dock Rd",
		DeliveryAddress: "80 Harbor Ave",
		Status:          domain.ParcelStatusWaitingForPayment,
		Timestamps:      models.NewTimestamps(),
		Version:         models.NewVersion(),
	}

	return &billingFixture{
		principal: principal,
		payment:   payment,
		order:     order,
		parcel:    parcel,
	}
}

func validNewMethod() *NewMethodRequest {
	return &NewMethodRequest{
		Kind:       domain.MethodDescriptorCard,
		CardNumber: "4111111111111111",
		Expiry:     "12/99",
		HolderName: "Jane Roe",
	}
}

func TestProcessPayment_Execute_OneTimeCardSuccess(t *testing.T) {
	fx := newBillingFixture(t)
	m := newProcessPaymentMocks(t)

	m.payments.EXPECT().FindByOrderID(mock.Anything, fx.payment.OrderID).Return(fx.payment, nil).Once()
	m.orders.EXPECT().FindByID(mock.Anything, fx.order.ID).Return(fx.order, nil).Once()
	m.parcels.EXPECT().FindByID(mock.Anything, fx.parcel.ID).Return(fx.parcel, nil).Once()
	m.attempts.EXPECT().Create(mock.Anything, mock.AnythingOfType("*domain.PaymentAttempt")).Return(nil).Once()
	m.attempts.EXPECT().Update(mock.Anything, mock.MatchedBy(func(attempt *domain.PaymentAttempt) bool {
		return attempt.Status == domain.PaymentAttemptStatusSuccess &&
			attempt.Provider == domain.ProviderCreditCard &&
			attempt.TransactionID != ""
	})).Return(nil).Once()
	m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil)
	m.passthroughTx()
	m.payments.EXPECT().Save(mock.Anything, fx.payment).Return(nil).Once()
	m.orders.EXPECT().Save(mock.Anything, fx.order).Return(nil).Once()
	m.parcels.EXPECT().Save(mock.Anything, fx.parcel).Return(nil).Once()

	result, err := m.useCase().Execute(context.Background(), &ProcessPaymentCommand{
		OrderID:   fx.payment.OrderID.String(),
		Principal: fx.principal,
		NewMethod: validNewMethod(),
		CVC:       "742",
	})

	assert.NoError(t, err)
	assert.Equal(t, "APPROVED", result.Message)
	assert.Equal(t, domain.ProviderCreditCard, result.Provider)
	assert.NotEmpty(t, result.TransactionID)

	assert.Equal(t, domain.PaymentStatusPaid, fx.payment.Status)
	assert.Equal(t, domain.OrderStatusConfirmed, fx.order.Status)
	assert.Equal(t, domain.ParcelStatusPickingUp, fx.parcel.Status)
}

func TestProcessPayment_Execute_DeclinedCard(t *testing.T) {
	fx := newBillingFixture(t)
	m := newProcessPaymentMocks(t)

	var failedAttempt *domain.PaymentAttempt

	m.payments.EXPECT().FindByOrderID(mock.Anything, fx.payment.OrderID).Return(fx.payment, nil).Once()
	m.orders.EXPECT().FindByID(mock.Anything, fx.order.ID).Return(fx.order, nil).Once()
	m.parcels.EXPECT().FindByID(mock.Anything, fx.parcel.ID).Return(fx.parcel, nil).Once()
	m.attempts.EXPECT().Create(mock.Anything, mock.AnythingOfType("*domain.PaymentAttempt")).Return(nil).Once()
	m.attempts.EXPECT().Update(mock.Anything, mock.AnythingOfType("*domain.PaymentAttempt")).Run(
		func(ctx context.Context, attempt *domain.PaymentAttempt) {
			failedAttempt = attempt
		},
	).Return(nil).Once()
	m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil)

	method := validNewMethod()
	method.CardNumber = "4111111111111100"

	result, err := m.useCase().Execute(context.Background(), &ProcessPaymentCommand{
		OrderID:   fx.payment.OrderID.String(),
		Principal: fx.principal,
		NewMethod: method,
		CVC:       "742",
	})

	assert.Error(t, err)
	assert.Nil(t, result)

	var failed *domain.PaymentFailedError
	assert.True(t, errors.As(err, &failed))
	assert.Equal(t, "DECLINED", failed.Status)

	// The attempt record keeps the decline even though the payment stays open.
	assert.NotNil(t, failedAttempt)
	assert.Equal(t, domain.PaymentAttemptStatusFailed, failedAttempt.Status)
	assert.Contains(t, failedAttempt.FailureReason, "DECLINED")
	assert.Equal(t, domain.PaymentStatusNotPaid, fx.payment.Status)
	assert.Equal(t, domain.OrderStatusPending, fx.order.Status)
	assert.Equal(t, domain.ParcelStatusWaitingForPayment, fx.parcel.Status)
}

func TestProcessPayment_Execute_SavedMethodSuccess(t *testing.T) {
	fx := newBillingFixture(t)
	m := newProcessPaymentMocks(t)

	card := &domain.SavedCard{
		ID:         models.GenerateUUID(),
		OwnerID:    fx.principal.ID,
		CardNumber: "4111111111111111",
		Expiry:     "12/99",
		HolderName: "Jane Roe",
		Timestamps: models.NewTimestamps(),
	}

	m.payments.EXPECT().FindByOrderID(mock.Anything, fx.payment.OrderID).Return(fx.payment, nil).Once()
	m.orders.EXPECT().FindByID(mock.Anything, fx.order.ID).Return(fx.order, nil).Once()
	m.parcels.EXPECT().FindByID(mock.Anything, fx.parcel.ID).Return(fx.parcel, nil).Once()
	m.methods.EXPECT().FindByID(mock.Anything, card.ID).Return(card, nil).Once()
	m.attempts.EXPECT().Create(mock.Anything, mock.AnythingOfType("*domain.PaymentAttempt")).Return(nil).Once()
	m.attempts.EXPECT().Update(mock.Anything, mock.AnythingOfType("*domain.PaymentAttempt")).Return(nil).Once()
	m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil)
	m.passthroughTx()
	m.payments.EXPECT().Save(mock.Anything, fx.payment).Return(nil).Once()
	m.orders.EXPECT().Save(mock.Anything, fx.order).Return(nil).Once()
	m.parcels.EXPECT().Save(mock.Anything, fx.parcel).Return(nil).Once()

	methodID := card.ID.String()
	result, err := m.useCase().Execute(context.Background(), &ProcessPaymentCommand{
		OrderID:         fx.payment.OrderID.String(),
		Principal:       fx.principal,
		PaymentMethodID: &methodID,
		CVC:             "742",
	})

	assert.NoError(t, err)
	assert.Equal(t, "APPROVED", result.Message)
	assert.Equal(t, domain.PaymentStatusPaid, fx.payment.Status)
}

func TestProcessPayment_Execute_SavedMethodOtherOwner(t *testing.T) {
	fx := newBillingFixture(t)
	m := newProcessPaymentMocks(t)

	card := &domain.SavedCard{
		ID:         models.GenerateUUID(),
		OwnerID:    models.GenerateUUID(), // someone else's card
		CardNumber: "4111111111111111",
		Expiry:     "12/99",
		HolderName: "John Doe",
		Timestamps: models.NewTimestamps(),
	}

	var failedAttempt *domain.PaymentAttempt

	m.payments.EXPECT().FindByOrderID(mock.Anything, fx.payment.OrderID).Return(fx.payment, nil).Once()
	m.orders.EXPECT().FindByID(mock.Anything, fx.order.ID).Return(fx.order, nil).Once()
	m.parcels.EXPECT().FindByID(mock.Anything, fx.parcel.ID).Return(fx.parcel, nil).Once()
	m.methods.EXPECT().FindByID(mock.Anything, card.ID).Return(card, nil).Once()
	m.attempts.EXPECT().Create(mock.Anything, mock.AnythingOfType("*domain.PaymentAttempt")).Return(nil).Once()
	m.attempts.EXPECT().Update(mock.Anything, mock.AnythingOfType("*domain.PaymentAttempt")).Run(
		func(ctx context.Context, attempt *domain.PaymentAttempt) {
			failedAttempt = attempt
		},
	).Return(nil).Once()
	m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil)

	methodID := card.ID.String()
	result, err := m.useCase().Execute(context.Background(), &ProcessPaymentCommand{
		OrderID:         fx.payment.OrderID.String(),
		Principal:       fx.principal,
		PaymentMethodID: &methodID,
		CVC:             "742",
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	assert.NotNil(t, failedAttempt)
	assert.Equal(t, domain.PaymentAttemptStatusFailed, failedAttempt.Status)
	assert.Equal(t, domain.PaymentStatusNotPaid, fx.payment.Status)
}

func TestProcessPayment_Execute_Guards(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(t *testing.T, fx *billingFixture, m *processPaymentMocks)
		command       func(fx *billingFixture) *ProcessPaymentCommand
		expectedError string
		errorIs       error
		validation    bool
	}{
		{
			name: "payment not found",
			setup: func(t *testing.T, fx *billingFixture, m *processPaymentMocks) {
				m.payments.EXPECT().FindByOrderID(mock.Anything, fx.payment.OrderID).Return(nil, nil).Once()
			},
			command: func(fx *billingFixture) *ProcessPaymentCommand {
				return &ProcessPaymentCommand{
					OrderID:   fx.payment.OrderID.String(),
					Principal: fx.principal,
					NewMethod: validNewMethod(),
					CVC:       "742",
				}
			},
			errorIs: domain.ErrNotFound,
		},
		{
			name: "payment belongs to another user",
			setup: func(t *testing.T, fx *billingFixture, m *processPaymentMocks) {
				m.payments.EXPECT().FindByOrderID(mock.Anything, fx.payment.OrderID).Return(fx.payment, nil).Once()
			},
			command: func(fx *billingFixture) *ProcessPaymentCommand {
				return &ProcessPaymentCommand{
					OrderID:   fx.payment.OrderID.String(),
					Principal: domain.Principal{ID: models.GenerateUUID(), Name: "Someone Else"},
					NewMethod: validNewMethod(),
					CVC:       "742",
				}
			},
			errorIs: domain.ErrUnauthorized,
		},
		{
			name: "already paid payment is not charged again",
			setup: func(t *testing.T, fx *billingFixture, m *processPaymentMocks) {
				assert.NoError(t, fx.payment.MarkPaid())
				fx.payment.ClearEvents()
				m.payments.EXPECT().FindByOrderID(mock.Anything, fx.payment.OrderID).Return(fx.payment, nil).Once()
			},
			command: func(fx *billingFixture) *ProcessPaymentCommand {
				return &ProcessPaymentCommand{
					OrderID:   fx.payment.OrderID.String(),
					Principal: fx.principal,
					NewMethod: validNewMethod(),
					CVC:       "742",
				}
			},
			expectedError: "already been processed",
			validation:    true,
		},
		{
			name: "canceled payment is not charged",
			setup: func(t *testing.T, fx *billingFixture, m *processPaymentMocks) {
				assert.NoError(t, fx.payment.Cancel())
				fx.payment.ClearEvents()
				m.payments.EXPECT().FindByOrderID(mock.Anything, fx.payment.OrderID).Return(fx.payment, nil).Once()
			},
			command: func(fx *billingFixture) *ProcessPaymentCommand {
				return &ProcessPaymentCommand{
					OrderID:   fx.payment.OrderID.String(),
					Principal: fx.principal,
					NewMethod: validNewMethod(),
					CVC:       "742",
				}
			},
			expectedError: "canceled",
			validation:    true,
		},
		{
			name: "missing parcel linkage",
			setup: func(t *testing.T, fx *billingFixture, m *processPaymentMocks) {
				m.payments.EXPECT().FindByOrderID(mock.Anything, fx.payment.OrderID).Return(fx.payment, nil).Once()
				m.orders.EXPECT().FindByID(mock.Anything, fx.order.ID).Return(fx.order, nil).Once()
				m.parcels.EXPECT().FindByID(mock.Anything, fx.parcel.ID).Return(nil, nil).Once()
			},
			command: func(fx *billingFixture) *ProcessPaymentCommand {
				return &ProcessPaymentCommand{
					OrderID:   fx.payment.OrderID.String(),
					Principal: fx.principal,
					NewMethod: validNewMethod(),
					CVC:       "742",
				}
			},
			errorIs: domain.ErrInvalidState,
		},
		{
			name:  "missing order ID",
			setup: func(t *testing.T, fx *billingFixture, m *processPaymentMocks) {},
			command: func(fx *billingFixture) *ProcessPaymentCommand {
				return &ProcessPaymentCommand{
					Principal: fx.principal,
					NewMethod: validNewMethod(),
					CVC:       "742",
				}
			},
			expectedError: "order ID is required",
			validation:    true,
		},
		{
			name:  "missing principal",
			setup: func(t *testing.T, fx *billingFixture, m *processPaymentMocks) {},
			command: func(fx *billingFixture) *ProcessPaymentCommand {
				return &ProcessPaymentCommand{
					OrderID:   fx.payment.OrderID.String(),
					NewMethod: validNewMethod(),
					CVC:       "742",
				}
			},
			errorIs: domain.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newBillingFixture(t)
			m := newProcessPaymentMocks(t)
			tt.setup(t, fx, m)

			result, err := m.useCase().Execute(context.Background(), tt.command(fx))

			assert.Error(t, err)
			assert.Nil(t, result)

			if tt.errorIs != nil {
				assert.True(t, errors.Is(err, tt.errorIs))
			}
			if tt.validation {
				assert.True(t, domain.IsValidationError(err))
			}
			if tt.expectedError != "" {
				assert.Contains(t, err.Error(), tt.expectedError)
			}
		})
	}
}

func TestProcessPayment_Execute_NoHandlerMatched(t *testing.T) {
	fx := newBillingFixture(t)
	m := newProcessPaymentMocks(t)

	m.payments.EXPECT().FindByOrderID(mock.Anything, fx.payment.OrderID).Return(fx.payment, nil).Once()
	m.orders.EXPECT().FindByID(mock.Anything, fx.order.ID).Return(fx.order, nil).Once()
	m.parcels.EXPECT().FindByID(mock.Anything, fx.parcel.ID).Return(fx.parcel, nil).Once()
	m.attempts.EXPECT().Create(mock.Anything, mock.AnythingOfType("*domain.PaymentAttempt")).Return(nil).Once()
	m.attempts.EXPECT().Update(mock.Anything, mock.MatchedBy(func(attempt *domain.PaymentAttempt) bool {
		return attempt.Status == domain.PaymentAttemptStatusFailed
	})).Return(nil).Once()
	m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil)

	// Neither a method reference nor an inline method.
	result, err := m.useCase().Execute(context.Background(), &ProcessPaymentCommand{
		OrderID:   fx.payment.OrderID.String(),
		Principal: fx.principal,
		CVC:       "742",
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	assert.Contains(t, err.Error(), "no payment request handler matched")
}

func TestProcessPayment_Execute_ProviderTimeout(t *testing.T) {
	fx := newBillingFixture(t)
	m := newProcessPaymentMocks(t)

	release := make(chan struct{})
	defer close(release)

	// A provider that never answers within the request deadline.
	stalled := func(ctx context.Context, provider string, card domain.CardDetails) (*domain.ChargeResult, error) {
		<-release
		return nil, errors.New("provider never answered")
	}

	var failedAttempt *domain.PaymentAttempt

	m.payments.EXPECT().FindByOrderID(mock.Anything, fx.payment.OrderID).Return(fx.payment, nil).Once()
	m.orders.EXPECT().FindByID(mock.Anything, fx.order.ID).Return(fx.order, nil).Once()
	m.parcels.EXPECT().FindByID(mock.Anything, fx.parcel.ID).Return(fx.parcel, nil).Once()
	m.attempts.EXPECT().Create(mock.Anything, mock.AnythingOfType("*domain.PaymentAttempt")).Return(nil).Once()
	m.attempts.EXPECT().Update(mock.Anything, mock.AnythingOfType("*domain.PaymentAttempt")).Run(
		func(ctx context.Context, attempt *domain.PaymentAttempt) {
			failedAttempt = attempt
		},
	).Return(nil).Once()
	m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil)

	useCase := m.useCaseWithProcessors(domain.NewProcessorRegistry(
		domain.NewOneTimeCardProcessorWithCharge(stalled),
	))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result, err := useCase.Execute(ctx, &ProcessPaymentCommand{
		OrderID:   fx.payment.OrderID.String(),
		Principal: fx.principal,
		NewMethod: validNewMethod(),
		CVC:       "742",
	})

	assert.Error(t, err)
	assert.Nil(t, result)

	var failed *domain.PaymentFailedError
	assert.True(t, errors.As(err, &failed))
	assert.Equal(t, "TIMEOUT", failed.Status)

	// The timed-out charge is closed out like any other failed attempt.
	assert.NotNil(t, failedAttempt)
	assert.Equal(t, domain.PaymentAttemptStatusFailed, failedAttempt.Status)
	assert.Contains(t, failedAttempt.FailureReason, "TIMEOUT")
	assert.Contains(t, failedAttempt.FailureReason, "provider call timed out")
	assert.Equal(t, domain.PaymentStatusNotPaid, fx.payment.Status)
	assert.Equal(t, domain.OrderStatusPending, fx.order.Status)
	assert.Equal(t, domain.ParcelStatusWaitingForPayment, fx.parcel.Status)
}

package domain

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/swiftship/courier-system/shared/models"
)

func testPrincipal() Principal {
	return Principal{ID: models.GenerateUUID(), Name: "Jane Roe"}
}

func oneTimeCardMethod(number, expiry, holder string) *PaymentMethod {
	return NewOneTimeCardMethod(&OneTimeCard{
		CardNumber: number,
		Expiry:     expiry,
		HolderName: holder,
	})
}

func TestOneTimeCardProcessor_Charge(t *testing.T) {
	principal := testPrincipal()
	processor := NewOneTimeCardProcessor()

	tests := []struct {
		name           string
		method         *PaymentMethod
		cvc            string
		expectedStatus string // failure status when the charge must fail
	}{
		{
			name:   "approved charge",
			method: oneTimeCardMethod("4111111111111111", "12/99", "Jane Roe"),
			cvc:    "742",
		},
		{
			name:           "blank holder fails before anything else",
			method:         oneTimeCardMethod("4111111111111100", "12/99", ""),
			cvc:            "742",
			expectedStatus: "EMPTY_FIELDS",
		},
		{
			name:           "blank cvc fails before anything else",
			method:         oneTimeCardMethod("4111111111111111", "12/99", "Jane Roe"),
			cvc:            "",
			expectedStatus: "EMPTY_FIELDS",
		},
		{
			name:           "expired card",
			method:         oneTimeCardMethod("4111111111111111", "01/20", "Jane Roe"),
			cvc:            "742",
			expectedStatus: "CARD_EXPIRED",
		},
		{
			name:           "unparseable expiry counts as expired",
			method:         oneTimeCardMethod("4111111111111111", "13/2099", "Jane Roe"),
			cvc:            "742",
			expectedStatus: "CARD_EXPIRED",
		},
		{
			name:           "number ending 00 is declined",
			method:         oneTimeCardMethod("4111111111111100", "12/99", "Jane Roe"),
			cvc:            "742",
			expectedStatus: "DECLINED",
		},
		{
			name:           "cvc ending 3 is rejected",
			method:         oneTimeCardMethod("4111111111111111", "12/99", "Jane Roe"),
			cvc:            "213",
			expectedStatus: "REJECTED",
		},
		{
			name:           "expiry check wins over declined number",
			method:         oneTimeCardMethod("4111111111111100", "01/20", "Jane Roe"),
			cvc:            "742",
			expectedStatus: "CARD_EXPIRED",
		},
		{
			name:           "declined number wins over rejected cvc",
			method:         oneTimeCardMethod("4111111111111100", "12/99", "Jane Roe"),
			cvc:            "213",
			expectedStatus: "DECLINED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := processor.Charge(context.Background(), &ChargeRequest{
				Method:    tt.method,
				CVC:       tt.cvc,
				Amount:    models.NewMoney(2500, "USD"),
				Principal: principal,
			})

			if tt.expectedStatus != "" {
				assert.Error(t, err)
				assert.Nil(t, result)

				var failed *PaymentFailedError
				assert.True(t, errors.As(err, &failed))
				assert.Equal(t, tt.expectedStatus, failed.Status)
				assert.Equal(t, ProviderCreditCard, failed.Provider)
				assert.Empty(t, failed.TransactionID)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "success", result.Status)
			assert.Equal(t, "APPROVED", result.Message)
			assert.Equal(t, ProviderCreditCard, result.Provider)
			assert.NotEmpty(t, result.TransactionID)
		})
	}
}

func TestCreditCardProcessor_Charge(t *testing.T) {
	principal := testPrincipal()
	processor := NewCreditCardProcessor()

	savedCard := func(ownerID models.ID, number string) *PaymentMethod {
		return NewSavedCardMethod(&SavedCard{
			ID:         models.GenerateUUID(),
			OwnerID:    ownerID,
			CardNumber: number,
			Expiry:     "12/99",
			HolderName: "Jane Roe",
			Timestamps: models.NewTimestamps(),
		})
	}

	t.Run("charges the owner's card", func(t *testing.T) {
		result, err := processor.Charge(context.Background(), &ChargeRequest{
			Method:    savedCard(principal.ID, "4111111111111111"),
			CVC:       "742",
			Amount:    models.NewMoney(2500, "USD"),
			Principal: principal,
		})

		assert.NoError(t, err)
		assert.Equal(t, "APPROVED", result.Message)
		assert.NotEmpty(t, result.TransactionID)
	})

	t.Run("rejects another user's card before charging", func(t *testing.T) {
		// The card would decline, but the ownership check must run first.
		result, err := processor.Charge(context.Background(), &ChargeRequest{
			Method:    savedCard(models.GenerateUUID(), "4111111111111100"),
			CVC:       "742",
			Amount:    models.NewMoney(2500, "USD"),
			Principal: principal,
		})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, ErrUnauthorized))

		var failed *PaymentFailedError
		assert.False(t, errors.As(err, &failed))
	})
}

func TestPayPalProcessor_Charge(t *testing.T) {
	processor := NewPayPalProcessor()

	result, err := processor.Charge(context.Background(), &ChargeRequest{
		Method:    &PaymentMethod{Kind: PaymentMethodKindPayPal, PayPalAccount: &PayPalAccount{Email: "jane@example.com"}},
		Amount:    models.NewMoney(2500, "USD"),
		Principal: testPrincipal(),
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrUnsupportedOperation))
}

func TestProcessorRegistry_GetProcessor(t *testing.T) {
	registry := NewDefaultProcessorRegistry()

	tests := []struct {
		name     string
		method   *PaymentMethod
		expected PaymentProcessor
	}{
		{
			name:     "saved card resolves to the credit card processor",
			method:   NewSavedCardMethod(&SavedCard{ID: models.GenerateUUID()}),
			expected: &CreditCardProcessor{},
		},
		{
			name:     "one-time card resolves to the one-time processor",
			method:   oneTimeCardMethod("4111111111111111", "12/99", "Jane Roe"),
			expected: &OneTimeCardProcessor{},
		},
		{
			name:     "paypal resolves to the paypal processor",
			method:   &PaymentMethod{Kind: PaymentMethodKindPayPal, PayPalAccount: &PayPalAccount{}},
			expected: &PayPalProcessor{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processor, err := registry.GetProcessor(tt.method)

			assert.NoError(t, err)
			assert.IsType(t, tt.expected, processor)
		})
	}

	t.Run("unknown kind has no processor", func(t *testing.T) {
		processor, err := registry.GetProcessor(&PaymentMethod{Kind: PaymentMethodKind("crypto")})

		assert.Error(t, err)
		assert.Nil(t, processor)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestProcessorCharge_ProviderTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	// A provider that never answers within the request deadline.
	stalled := func(ctx context.Context, provider string, card CardDetails) (*ChargeResult, error) {
		<-release
		return nil, errors.New("provider never answered")
	}

	processor := NewOneTimeCardProcessorWithCharge(stalled)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	result, err := processor.Charge(ctx, &ChargeRequest{
		Method:    oneTimeCardMethod("4111111111111111", "12/99", "Jane Roe"),
		CVC:       "742",
		Principal: testPrincipal(),
	})

	assert.Nil(t, result)

	var failed *PaymentFailedError
	assert.True(t, errors.As(err, &failed))
	assert.Equal(t, "TIMEOUT", failed.Status)
	assert.Equal(t, "provider call timed out", failed.Reason)
	assert.Equal(t, ProviderCreditCard, failed.Provider)
	assert.Empty(t, failed.TransactionID)
}

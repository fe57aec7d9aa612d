package domain

import (
	"context"

	"github.com/pkg/errors"
)

// CreditCardProcessor charges saved cards. The card is loaded from the
// owner's stored record, so ownership is enforced here before any provider
// call is made.
type CreditCardProcessor struct {
	charge ChargeFunc
}

// NewCreditCardProcessor creates a saved card processor
func NewCreditCardProcessor() *CreditCardProcessor {
	return NewCreditCardProcessorWithCharge(simulateCharge)
}

// NewCreditCardProcessorWithCharge creates a saved card processor backed by
// the given provider call
func NewCreditCardProcessorWithCharge(charge ChargeFunc) *CreditCardProcessor {
	return &CreditCardProcessor{charge: charge}
}

func (p *CreditCardProcessor) Supports(method *PaymentMethod) bool {
	return method != nil && method.Kind == PaymentMethodKindSavedCard
}

func (p *CreditCardProcessor) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	card := req.Method.SavedCard
	if card == nil {
		return nil, errors.Wrap(ErrInvalidState, "saved card method has no card attached")
	}

	if card.OwnerID != req.Principal.ID {
		return nil, errors.Wrap(ErrUnauthorized, "payment method belongs to another user")
	}

	return chargeWithTimeout(ctx, p.charge, ProviderCreditCard, CardDetails{
		Number: card.CardNumber,
		Expiry: card.Expiry,
		Holder: card.HolderName,
		CVC:    req.CVC,
	})
}

package domain

import (
	"context"

	"github.com/pkg/errors"
)

// OneTimeCardProcessor charges ephemeral cards supplied inline with the
// request. The card came from the caller's own payload and has no stored
// owner, so there is no ownership check to make.
type OneTimeCardProcessor struct {
	charge ChargeFunc
}

// NewOneTimeCardProcessor creates a one-time card processor
func NewOneTimeCardProcessor() *OneTimeCardProcessor {
	return NewOneTimeCardProcessorWithCharge(simulateCharge)
}

// NewOneTimeCardProcessorWithCharge creates a one-time card processor backed
// by the given provider call
func NewOneTimeCardProcessorWithCharge(charge ChargeFunc) *OneTimeCardProcessor {
	return &OneTimeCardProcessor{charge: charge}
}

func (p *OneTimeCardProcessor) Supports(method *PaymentMethod) bool {
	return method != nil && method.Kind == PaymentMethodKindOneTimeCard
}

func (p *OneTimeCardProcessor) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	card := req.Method.OneTimeCard
	if card == nil {
		return nil, errors.Wrap(ErrInvalidState, "one-time card method has no card attached")
	}

	return chargeWithTimeout(ctx, p.charge, ProviderCreditCard, CardDetails{
		Number: card.CardNumber,
		Expiry: card.Expiry,
		Holder: card.HolderName,
		CVC:    req.CVC,
	})
}

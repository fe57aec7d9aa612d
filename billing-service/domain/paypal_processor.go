package domain

import (
	"context"

	"github.com/pkg/errors"
)

// PayPalProcessor is registered so that paypal methods resolve to a
// processor, but charging is not built yet. It fails loudly instead of
// pretending the charge went through.
type PayPalProcessor struct{}

// NewPayPalProcessor creates a paypal processor
func NewPayPalProcessor() *PayPalProcessor {
	return &PayPalProcessor{}
}

func (p *PayPalProcessor) Supports(method *PaymentMethod) bool {
	return method != nil && method.Kind == PaymentMethodKindPayPal
}

func (p *PayPalProcessor) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	return nil, errors.Wrap(ErrUnsupportedOperation, "paypal charging is not implemented")
}

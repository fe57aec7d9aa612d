package domain

import (
	"context"

	"github.com/pkg/errors"

	"github.com/swiftship/courier-system/shared/models"
)

// ChargeRequest carries everything a processor needs to run one charge
type ChargeRequest struct {
	Method    *PaymentMethod
	CVC       string
	Amount    models.Money
	Principal Principal
}

// PaymentProcessor charges one kind of payment method
type PaymentProcessor interface {
	Supports(method *PaymentMethod) bool
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error)
}

// ProcessorRegistry resolves the processor for a payment method. Processors
// are consulted in registration order and the first supporting one wins.
type ProcessorRegistry struct {
	processors []PaymentProcessor
}

// NewProcessorRegistry creates a registry over an explicit processor list
func NewProcessorRegistry(processors ...PaymentProcessor) *ProcessorRegistry {
	return &ProcessorRegistry{processors: processors}
}

// NewDefaultProcessorRegistry wires up the full processor set
func NewDefaultProcessorRegistry() *ProcessorRegistry {
	return NewProcessorRegistry(
		NewCreditCardProcessor(),
		NewOneTimeCardProcessor(),
		NewPayPalProcessor(),
	)
}

// GetProcessor returns the first processor supporting the method
func (r *ProcessorRegistry) GetProcessor(method *PaymentMethod) (PaymentProcessor, error) {
	for _, processor := range r.processors {
		if processor.Supports(method) {
			return processor, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "no processor registered for payment method kind %s", method.Kind)
}

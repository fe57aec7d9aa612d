package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/swiftship/courier-system/billing-service/domain"
	"github.com/swiftship/courier-system/shared/models"
)

// NewMethodRequest is the inline payment method payload of a charge request
type NewMethodRequest struct {
	Kind        string `json:"kind"`
	CardNumber  string `json:"card_number"`
	Expiry      string `json:"expiry"` // MM/YY
	HolderName  string `json:"holder_name"`
	PayPalEmail string `json:"paypal_email,omitempty"`
	Save        bool   `json:"save"`
}

// paymentRequestHandler resolves one shape of charge request into a charge.
// Handlers are consulted in order and the first supporting one runs.
type paymentRequestHandler interface {
	Supports(cmd *ProcessPaymentCommand) bool
	Handle(ctx context.Context, cmd *ProcessPaymentCommand, payment *domain.Payment) (*domain.ChargeResult, error)
}

// useExistingMethodHandler charges a previously saved payment method
// referenced by ID
type useExistingMethodHandler struct {
	methods    domain.PaymentMethodRepository
	processors *domain.ProcessorRegistry
}

func newUseExistingMethodHandler(methods domain.PaymentMethodRepository, processors *domain.ProcessorRegistry) *useExistingMethodHandler {
	return &useExistingMethodHandler{methods: methods, processors: processors}
}

func (h *useExistingMethodHandler) Supports(cmd *ProcessPaymentCommand) bool {
	return cmd.PaymentMethodID != nil && *cmd.PaymentMethodID != ""
}

func (h *useExistingMethodHandler) Handle(ctx context.Context, cmd *ProcessPaymentCommand, payment *domain.Payment) (*domain.ChargeResult, error) {
	methodID, err := models.NewID(*cmd.PaymentMethodID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid payment method ID")
	}

	card, err := h.methods.FindByID(ctx, methodID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find payment method")
	}
	if card == nil {
		return nil, errors.Wrapf(domain.ErrNotFound, "payment method %s not found", methodID)
	}

	return charge(ctx, h.processors, domain.NewSavedCardMethod(card), cmd, payment)
}

// useNewMethodHandler builds a payment method from the inline payload and
// charges it
type useNewMethodHandler struct {
	factory    *domain.PaymentMethodFactory
	processors *domain.ProcessorRegistry
}

func newUseNewMethodHandler(factory *domain.PaymentMethodFactory, processors *domain.ProcessorRegistry) *useNewMethodHandler {
	return &useNewMethodHandler{factory: factory, processors: processors}
}

func (h *useNewMethodHandler) Supports(cmd *ProcessPaymentCommand) bool {
	return cmd.NewMethod != nil && (cmd.PaymentMethodID == nil || *cmd.PaymentMethodID == "")
}

func (h *useNewMethodHandler) Handle(ctx context.Context, cmd *ProcessPaymentCommand, payment *domain.Payment) (*domain.ChargeResult, error) {
	method, err := h.factory.Create(ctx, &domain.PaymentMethodCreator{
		Kind:        cmd.NewMethod.Kind,
		CardNumber:  cmd.NewMethod.CardNumber,
		Expiry:      cmd.NewMethod.Expiry,
		HolderName:  cmd.NewMethod.HolderName,
		PayPalEmail: cmd.NewMethod.PayPalEmail,
		Save:        cmd.NewMethod.Save,
	}, cmd.Principal, cmd.CVC)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create payment method")
	}

	return charge(ctx, h.processors, method, cmd, payment)
}

func charge(ctx context.Context, processors *domain.ProcessorRegistry, method *domain.PaymentMethod, cmd *ProcessPaymentCommand, payment *domain.Payment) (*domain.ChargeResult, error) {
	processor, err := processors.GetProcessor(method)
	if err != nil {
		return nil, err
	}

	return processor.Charge(ctx, &domain.ChargeRequest{
		Method:    method,
		CVC:       cmd.CVC,
		Amount:    payment.Amount,
		Principal: cmd.Principal,
	})
}

package application

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/swiftship/courier-system/billing-service/domain"
	"github.com/swiftship/courier-system/shared/events"
	"github.com/swiftship/courier-system/shared/models"
	"github.com/swiftship/courier-system/shared/telemetry"
)

// ProcessPaymentCommand represents the command to charge an order's payment
type ProcessPaymentCommand struct {
	OrderID         string            `json:"order_id"`
	Principal       domain.Principal  `json:"-"`
	PaymentMethodID *string           `json:"payment_method_id,omitempty"`
	NewMethod       *NewMethodRequest `json:"new_method,omitempty"`
	CVC             string            `json:"cvc"`
}

// PaymentResult represents the outcome of a settled charge
type PaymentResult struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	Provider      string `json:"provider"`
	TransactionID string `json:"transaction_id"`
}

// ProcessPayment orchestrates one charge: it records the attempt, runs the
// charge through the matching request handler, and on success settles the
// payment, order and parcel together.
type ProcessPayment struct {
	payments       domain.PaymentRepository
	attempts       domain.PaymentAttemptRepository
	orders         domain.OrderRepository
	parcels        domain.ParcelRepository
	handlers       []paymentRequestHandler
	eventPublisher events.Publisher
	tx             TxManager
}

// NewProcessPayment creates a new ProcessPayment use case
func NewProcessPayment(
	payments domain.PaymentRepository,
	attempts domain.PaymentAttemptRepository,
	orders domain.OrderRepository,
	parcels domain.ParcelRepository,
	methods domain.PaymentMethodRepository,
	factory *domain.PaymentMethodFactory,
	processors *domain.ProcessorRegistry,
	eventPublisher events.Publisher,
	tx TxManager,
) *ProcessPayment {
	return &ProcessPayment{
		payments: payments,
		attempts: attempts,
		orders:   orders,
		parcels:  parcels,
		handlers: []paymentRequestHandler{
			newUseExistingMethodHandler(methods, processors),
			newUseNewMethodHandler(factory, processors),
		},
		eventPublisher: eventPublisher,
		tx:             tx,
	}
}

// Execute runs the charge for the order's payment
func (uc *ProcessPayment) Execute(ctx context.Context, cmd *ProcessPaymentCommand) (*PaymentResult, error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "process_payment",
		trace.WithAttributes(
			attribute.String("order_id", cmd.OrderID),
		),
	)
	defer span.End()

	var status = "error"
	defer func() {
		duration := time.Since(start)
		telemetry.RecordCounter(ctx, "payment_charges_total", "Total payment charge requests", 1,
			attribute.String("status", status),
		)
		telemetry.RecordHistogram(ctx, "payment_charge_duration_seconds", "Payment charge duration", duration.Seconds(),
			attribute.String("status", status),
		)
	}()

	if err := uc.validateCommand(cmd); err != nil {
		span.RecordError(err)
		return nil, err
	}

	orderID, err := models.NewID(cmd.OrderID)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "invalid order ID")
	}

	payment, err := uc.payments.FindByOrderID(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to find payment")
	}
	if payment == nil {
		err := errors.Wrapf(domain.ErrNotFound, "no payment for order %s", orderID)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("payment_id", payment.ID.String()))

	if payment.UserID != cmd.Principal.ID {
		err := errors.Wrap(domain.ErrUnauthorized, "payment belongs to another user")
		span.RecordError(err)
		return nil, err
	}

	if err := uc.checkChargeable(payment); err != nil {
		span.RecordError(err)
		return nil, err
	}

	order, parcel, err := uc.loadLinkedAggregates(ctx, payment)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	// The attempt row is committed before the charge runs and updated on
	// its own connection afterwards, so it survives whatever happens to
	// the rest of the operation.
	attempt := domain.NewPaymentAttempt(payment.ID)
	if err := uc.attempts.Create(ctx, attempt); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to record payment attempt")
	}
	uc.publishAggregateEvents(ctx, attempt.Events())
	attempt.ClearEvents()

	result, err := uc.dispatch(ctx, cmd, payment)
	if err != nil {
		span.RecordError(err)
		if failErr := uc.failAttempt(ctx, attempt, err); failErr != nil {
			return nil, stderrors.Join(err, failErr)
		}
		return nil, err
	}

	if err := attempt.Succeed(result.Provider, result.TransactionID); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to close payment attempt")
	}
	if err := uc.attempts.Update(ctx, attempt); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to update payment attempt")
	}
	uc.publishAggregateEvents(ctx, attempt.Events())
	attempt.ClearEvents()

	// Payment, order and parcel move together or not at all.
	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := payment.MarkPaid(); err != nil {
			return errors.Wrap(err, "failed to mark payment paid")
		}
		if err := uc.payments.Save(ctx, payment); err != nil {
			return errors.Wrap(err, "failed to save payment")
		}

		if err := order.Confirm(); err != nil {
			return errors.Wrap(err, "failed to confirm order")
		}
		if err := uc.orders.Save(ctx, order); err != nil {
			return errors.Wrap(err, "failed to save order")
		}

		if err := parcel.StartPickup(); err != nil {
			return errors.Wrap(err, "failed to start parcel pickup")
		}
		if err := uc.parcels.Save(ctx, parcel); err != nil {
			return errors.Wrap(err, "failed to save parcel")
		}

		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.publishAggregateEvents(ctx, payment.Events())
	uc.publishAggregateEvents(ctx, order.Events())
	uc.publishAggregateEvents(ctx, parcel.Events())
	payment.ClearEvents()
	order.ClearEvents()
	parcel.ClearEvents()

	status = "success"
	span.SetAttributes(
		attribute.String("provider", result.Provider),
		attribute.String("transaction_id", result.TransactionID),
	)

	return &PaymentResult{
		Status:        result.Status,
		Message:       result.Message,
		Provider:      result.Provider,
		TransactionID: result.TransactionID,
	}, nil
}

func (uc *ProcessPayment) validateCommand(cmd *ProcessPaymentCommand) error {
	if cmd.OrderID == "" {
		return domain.NewValidationError("order ID is required")
	}
	if cmd.Principal.IsZero() {
		return errors.Wrap(domain.ErrUnauthorized, "no principal on request")
	}
	return nil
}

func (uc *ProcessPayment) checkChargeable(payment *domain.Payment) error {
	switch payment.Status {
	case domain.PaymentStatusNotPaid:
		return nil
	case domain.PaymentStatusPaid:
		return domain.NewValidationError("payment has already been processed")
	case domain.PaymentStatusCanceled:
		return domain.NewValidationError("payment has been canceled")
	default:
		return domain.NewValidationError("payment cannot be processed in status %s", payment.Status)
	}
}

func (uc *ProcessPayment) loadLinkedAggregates(ctx context.Context, payment *domain.Payment) (*domain.Order, *domain.Parcel, error) {
	order, err := uc.orders.FindByID(ctx, payment.OrderID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to find order")
	}
	if order == nil {
		return nil, nil, errors.Wrapf(domain.ErrInvalidState, "payment %s references missing order %s", payment.ID, payment.OrderID)
	}

	parcel, err := uc.parcels.FindByID(ctx, payment.ParcelID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to find parcel")
	}
	if parcel == nil {
		return nil, nil, errors.Wrapf(domain.ErrInvalidState, "payment %s references missing parcel %s", payment.ID, payment.ParcelID)
	}

	return order, parcel, nil
}

func (uc *ProcessPayment) dispatch(ctx context.Context, cmd *ProcessPaymentCommand, payment *domain.Payment) (*domain.ChargeResult, error) {
	for _, handler := range uc.handlers {
		if handler.Supports(cmd) {
			return handler.Handle(ctx, cmd, payment)
		}
	}
	return nil, errors.Wrap(domain.ErrInvalidState, "no payment request handler matched")
}

// failAttempt closes the attempt record after a failed charge. The returned
// error covers only the close-out itself; the charge failure stays with the
// caller.
func (uc *ProcessPayment) failAttempt(ctx context.Context, attempt *domain.PaymentAttempt, cause error) error {
	var failed *domain.PaymentFailedError
	var markErr error
	if stderrors.As(cause, &failed) {
		markErr = attempt.Fail(failed.Provider, failed.FailureReason())
	} else {
		markErr = attempt.Fail("", cause.Error())
	}
	if markErr != nil {
		return errors.Wrap(markErr, "failed to close payment attempt")
	}

	if err := uc.attempts.Update(ctx, attempt); err != nil {
		return errors.Wrap(err, "failed to update payment attempt")
	}

	uc.publishAggregateEvents(ctx, attempt.Events())
	attempt.ClearEvents()
	return nil
}

// publishAggregateEvents publishes best effort: the state change already
// committed, so a publish failure is logged by the publisher and must not
// fail the operation.
func (uc *ProcessPayment) publishAggregateEvents(ctx context.Context, evts []*events.Event) {
	if len(evts) == 0 {
		return
	}
	if err := uc.eventPublisher.Publish(ctx, evts...); err != nil {
		telemetry.RecordCounter(ctx, "event_publish_failures_total", "Total event publish failures", 1)
	}
}

package handlers

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/swiftship/courier-system/billing-service/application"
	"github.com/swiftship/courier-system/shared/events"
)

// BillingEventHandlers contains event handlers for the billing service
type BillingEventHandlers struct {
	createPayment *application.CreatePayment
	logger        *slog.Logger
}

// NewBillingEventHandlers creates new billing event handlers
func NewBillingEventHandlers(createPayment *application.CreatePayment, logger *slog.Logger) *BillingEventHandlers {
	return &BillingEventHandlers{
		createPayment: createPayment,
		logger:        logger,
	}
}

// Handle implements the events.EventHandler interface
func (h *BillingEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.OrderPlacedEvent:
		return h.HandleOrderPlaced(ctx, event)
	default:
		// Unknown event type, ignore
		return nil
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *BillingEventHandlers) HandlerID() string {
	return "billing-service-event-handler"
}

// HandleOrderPlaced opens the payment for a freshly placed order
func (h *BillingEventHandlers) HandleOrderPlaced(ctx context.Context, event *events.Event) error {
	data, ok := event.Data.(map[string]interface{})
	if !ok {
		return errors.New("order placed event has no payload")
	}

	orderID, ok := data["order_id"].(string)
	if !ok {
		return errors.New("order_id is required")
	}

	parcelID, ok := data["parcel_id"].(string)
	if !ok {
		return errors.New("parcel_id is required")
	}

	userID, ok := data["user_id"].(string)
	if !ok {
		return errors.New("user_id is required")
	}

	amount, ok := data["amount"].(float64)
	if !ok {
		return errors.New("amount is required")
	}

	currency, ok := data["currency"].(string)
	if !ok {
		return errors.New("currency is required")
	}

	cmd := &application.CreatePaymentCommand{
		OrderID:  orderID,
		ParcelID: parcelID,
		UserID:   userID,
		Amount:   int64(amount),
		Currency: currency,
	}

	response, err := h.createPayment.Execute(ctx, cmd)
	if err != nil {
		h.logger.Error("failed to open payment for order",
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
		return err
	}

	h.logger.Info("payment opened for order",
		slog.String("order_id", orderID),
		slog.String("payment_id", response.PaymentID),
	)
	return nil
}

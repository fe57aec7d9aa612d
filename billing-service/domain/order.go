package domain

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/swiftship/courier-system/shared/events"
	"github.com/swiftship/courier-system/shared/models"
)

// OrderStatus represents the lifecycle state of a customer order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

func (s OrderStatus) String() string {
	return string(s)
}

// Order is the customer order a payment settles
type Order struct {
	ID         models.ID
	UserID     models.ID
	Total      models.Money
	Status     OrderStatus
	Timestamps models.Timestamps
	Version    models.Version

	events []*events.Event
}

// Confirm transitions the order to CONFIRMED after its payment settled
func (o *Order) Confirm() error {
	if o.Status != OrderStatusPending {
		return errors.Wrapf(ErrInvalidState, "cannot confirm order in status %s", o.Status)
	}

	o.Status = OrderStatusConfirmed
	o.Timestamps = o.Timestamps.Update()
	o.Version = o.Version.Update()

	event := events.NewEvent(o.ID, events.OrderConfirmedEvent, OrderConfirmedData{
		OrderID:     o.ID,
		UserID:      o.UserID,
		ConfirmedAt: time.Now(),
	})

	o.recordEvent(event)
	return nil
}

// Cancel transitions the order to CANCELED
func (o *Order) Cancel() error {
	if o.Status != OrderStatusPending {
		return errors.Wrapf(ErrInvalidState, "cannot cancel order in status %s", o.Status)
	}

	o.Status = OrderStatusCanceled
	o.Timestamps = o.Timestamps.Update()
	o.Version = o.Version.Update()

	event := events.NewEvent(o.ID, events.OrderCanceledEvent, OrderCanceledData{
		OrderID:    o.ID,
		UserID:     o.UserID,
		CanceledAt: time.Now(),
	})

	o.recordEvent(event)
	return nil
}

// Events returns domain events
func (o *Order) Events() []*events.Event {
	return o.events
}

// ClearEvents clears domain events
func (o *Order) ClearEvents() {
	o.events = make([]*events.Event, 0)
}

func (o *Order) recordEvent(event *events.Event) {
	o.events = append(o.events, event)
}

type OrderConfirmedData struct {
	OrderID     models.ID `json:"order_id"`
	UserID      models.ID `json:"user_id"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

type OrderCanceledData struct {
	OrderID    models.ID `json:"order_id"`
	UserID     models.ID `json:"user_id"`
	CanceledAt time.Time `json:"canceled_at"`
}

// OrderRepository persists orders
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id models.ID) (*Order, error)
}

package domain

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/swiftship/courier-system/shared/events"
	"github.com/swiftship/courier-system/shared/models"
)

// ParcelStatus represents the delivery state of a parcel
type ParcelStatus string

const (
	ParcelStatusWaitingForPayment ParcelStatus = "WAITING_FOR_PAYMENT"
	ParcelStatusPickingUp         ParcelStatus = "PICKING_UP"
	ParcelStatusInTransit         ParcelStatus = "IN_TRANSIT"
	ParcelStatusDelivered         ParcelStatus = "DELIVERED"
)

func (s ParcelStatus) String() string {
	return string(s)
}

// Parcel is the shipment attached to an order. It stays parked in
// WAITING_FOR_PAYMENT until the order's payment settles.
type Parcel struct {
	ID              models.ID
	OrderID         models.ID
	UserID          models.ID
	PickupAddress   string
	DeliveryAddress string
	Status          ParcelStatus
	Timestamps      models.Timestamps
	Version         models.Version

	events []*events.Event
}

// StartPickup releases the parcel to the courier fleet once payment settled
func (p *Parcel) StartPickup() error {
	if p.Status != ParcelStatusWaitingForPayment {
		return errors.Wrapf(ErrInvalidState, "cannot start pickup for parcel in status %s", p.Status)
	}

	p.Status = ParcelStatusPickingUp
	p.Timestamps = p.Timestamps.Update()
	p.Version = p.Version.Update()

	event := events.NewEvent(p.ID, events.ParcelPickupStartedEvent, ParcelPickupStartedData{
		ParcelID:  p.ID,
		OrderID:   p.OrderID,
		StartedAt: time.Now(),
	})

	p.recordEvent(event)
	return nil
}

// Events returns domain events
func (p *Parcel) Events() []*events.Event {
	return p.events
}

// ClearEvents clears domain events
func (p *Parcel) ClearEvents() {
	p.events = make([]*events.Event, 0)
}

func (p *Parcel) recordEvent(event *events.Event) {
	p.events = append(p.events, event)
}

type ParcelPickupStartedData struct {
	ParcelID  models.ID `json:"parcel_id"`
	OrderID   models.ID `json:"order_id"`
	StartedAt time.Time `json:"started_at"`
}

// ParcelRepository persists parcels
type ParcelRepository interface {
	Save(ctx context.Context, parcel *Parcel) error
	FindByID(ctx context.Context, id models.ID) (*Parcel, error)
	FindByOrderID(ctx context.Context, orderID models.ID) (*Parcel, error)
}

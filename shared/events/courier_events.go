package events

// Event Types Constants
const (
	// Order Events
	OrderPlacedEvent    = "order.placed"
	OrderConfirmedEvent = "order.confirmed"
	OrderCanceledEvent  = "order.canceled"

	// Parcel Events
	ParcelPickupStartedEvent = "parcel.pickup.started"

	// Payment Events
	PaymentCreatedEvent          = "payment.created"
	PaymentPaidEvent             = "payment.paid"
	PaymentFailedEvent           = "payment.failed"
	PaymentCanceledEvent         = "payment.canceled"
	PaymentStatusOverriddenEvent = "payment.status.overridden"

	// Payment Attempt Events
	PaymentAttemptStartedEvent   = "payment.attempt.started"
	PaymentAttemptSucceededEvent = "payment.attempt.succeeded"
	PaymentAttemptFailedEvent    = "payment.attempt.failed"
)

package domain

// PaymentMethodKind identifies the concrete payment method variant
type PaymentMethodKind string

const (
	PaymentMethodKindSavedCard   PaymentMethodKind = "saved_card"
	PaymentMethodKindOneTimeCard PaymentMethodKind = "one_time_card"
	PaymentMethodKindPayPal      PaymentMethodKind = "paypal"
)

var allPaymentMethodKinds = map[string]PaymentMethodKind{
	PaymentMethodKindSavedCard.String():   PaymentMethodKindSavedCard,
	PaymentMethodKindOneTimeCard.String(): PaymentMethodKindOneTimeCard,
	PaymentMethodKindPayPal.String():      PaymentMethodKindPayPal,
}

// NewPaymentMethodKind parses a method kind value
func NewPaymentMethodKind(value string) (*PaymentMethodKind, error) {
	if kind, ok := allPaymentMethodKinds[value]; ok {
		return &kind, nil
	}
	return nil, NewValidationError("unknown payment method kind: %s", value)
}

func (k PaymentMethodKind) String() string {
	return string(k)
}

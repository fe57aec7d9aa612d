package domain

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/swiftship/courier-system/shared/models"
)

// Descriptor kinds accepted by the factory. "card" resolves to a saved or
// one-time card depending on the persist flag.
const (
	MethodDescriptorCard   = "card"
	MethodDescriptorPayPal = "paypal"
)

const expiryLayout = "01/06" // MM/YY

var (
	cardNumberPattern = regexp.MustCompile(`^[0-9]{16}$`)
	cvcPattern        = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// PaymentMethodCreator carries the inline method payload of a request
type PaymentMethodCreator struct {
	Kind        string
	CardNumber  string
	Expiry      string // MM/YY
	HolderName  string
	PayPalEmail string
	Save        bool
}

// PaymentMethodFactory validates and constructs payment methods from
// request payloads
type PaymentMethodFactory struct {
	methods PaymentMethodRepository
}

// NewPaymentMethodFactory creates a new payment method factory
func NewPaymentMethodFactory(methods PaymentMethodRepository) *PaymentMethodFactory {
	return &PaymentMethodFactory{methods: methods}
}

// Create builds a payment method for the requesting principal. Card payloads
// are validated field by field; with the persist flag set the card is stored
// and returned as a SavedCard, otherwise an ephemeral OneTimeCard is
// returned and nothing is written.
func (f *PaymentMethodFactory) Create(ctx context.Context, creator *PaymentMethodCreator, principal Principal, cvc string) (*PaymentMethod, error) {
	if creator == nil {
		return nil, errors.New("payment method creator cannot be nil")
	}

	switch creator.Kind {
	case MethodDescriptorCard:
		return f.createCard(ctx, creator, principal, cvc)
	case MethodDescriptorPayPal:
		return nil, errors.Wrap(ErrUnsupportedOperation, "paypal payment methods are not supported")
	default:
		return nil, NewValidationError("unknown payment method kind: %s", creator.Kind)
	}
}

func (f *PaymentMethodFactory) createCard(ctx context.Context, creator *PaymentMethodCreator, principal Principal, cvc string) (*PaymentMethod, error) {
	if err := f.validateCard(creator, principal, cvc); err != nil {
		return nil, err
	}

	if creator.Save {
		card := &SavedCard{
			ID:         models.GenerateUUID(),
			OwnerID:    principal.ID,
			CardNumber: creator.CardNumber,
			Expiry:     creator.Expiry,
			HolderName: creator.HolderName,
			Timestamps: models.NewTimestamps(),
		}

		if err := f.methods.Save(ctx, card); err != nil {
			return nil, errors.Wrap(err, "failed to save payment method")
		}

		return NewSavedCardMethod(card), nil
	}

	return NewOneTimeCardMethod(&OneTimeCard{
		CardNumber: creator.CardNumber,
		Expiry:     creator.Expiry,
		HolderName: creator.HolderName,
	}), nil
}

func (f *PaymentMethodFactory) validateCard(creator *PaymentMethodCreator, principal Principal, cvc string) error {
	if !cardNumberPattern.MatchString(creator.CardNumber) {
		return NewValidationError("card number must be 16 digits")
	}

	expiry, err := time.Parse(expiryLayout, creator.Expiry)
	if err != nil {
		return NewValidationError("expiry date must use the MM/YY format")
	}

	if expiry.Before(currentMonthStart(time.Now())) {
		return NewValidationError("card expiry date is in the past")
	}

	if !cvcPattern.MatchString(cvc) {
		return NewValidationError("cvc must be 3 or 4 digits")
	}

	if strings.TrimSpace(creator.HolderName) == "" ||
		!strings.EqualFold(strings.TrimSpace(creator.HolderName), strings.TrimSpace(principal.Name)) {
		return NewValidationError("cardholder name does not match the requesting user")
	}

	return nil
}

func currentMonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

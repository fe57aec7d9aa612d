package domain

import (
	"context"

	"github.com/swiftship/courier-system/shared/models"
)

// PaymentMethod is the closed set of chargeable instruments. Exactly one of
// the embedded variants is non-nil, matching Kind.
type PaymentMethod struct {
	Kind PaymentMethodKind
	*SavedCard
	*OneTimeCard
	*PayPalAccount
}

// SavedCard is a persisted, reusable card owned by a user
type SavedCard struct {
	ID         models.ID
	OwnerID    models.ID
	CardNumber string
	Expiry     string // MM/YY
	HolderName string
	Timestamps models.Timestamps
}

// OneTimeCard is an ephemeral card supplied inline with a single request.
// It is never persisted and never assigned an identifier.
type OneTimeCard struct {
	CardNumber string
	Expiry     string // MM/YY
	HolderName string
}

// PayPalAccount is declared but has no working processor yet
type PayPalAccount struct {
	Email string
}

// NewSavedCardMethod wraps a saved card in its method variant
func NewSavedCardMethod(card *SavedCard) *PaymentMethod {
	return &PaymentMethod{
		Kind:      PaymentMethodKindSavedCard,
		SavedCard: card,
	}
}

// NewOneTimeCardMethod wraps an ephemeral card in its method variant
func NewOneTimeCardMethod(card *OneTimeCard) *PaymentMethod {
	return &PaymentMethod{
		Kind:        PaymentMethodKindOneTimeCard,
		OneTimeCard: card,
	}
}

// PaymentMethodRepository persists saved cards. Ephemeral methods never
// touch this repository.
type PaymentMethodRepository interface {
	Save(ctx context.Context, card *SavedCard) error
	FindByID(ctx context.Context, id models.ID) (*SavedCard, error)
	FindByOwnerID(ctx context.Context, ownerID models.ID) ([]*SavedCard, error)
}

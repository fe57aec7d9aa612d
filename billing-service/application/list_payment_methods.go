package application

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/swiftship/courier-system/billing-service/domain"
)

// ListPaymentMethodsQuery represents the query for a user's saved methods
type ListPaymentMethodsQuery struct {
	Principal domain.Principal `json:"-"`
}

// SavedMethodView is one saved card in the listing. Card numbers are masked
// down to the last four digits.
type SavedMethodView struct {
	ID         string    `json:"id"`
	CardNumber string    `json:"card_number"`
	Expiry     string    `json:"expiry"`
	HolderName string    `json:"holder_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListPaymentMethodsResponse represents the saved methods of one user
type ListPaymentMethodsResponse struct {
	Methods []SavedMethodView `json:"methods"`
}

// ListPaymentMethods reads the saved payment methods of the requesting user
type ListPaymentMethods struct {
	methods domain.PaymentMethodRepository
}

// NewListPaymentMethods creates a new ListPaymentMethods use case
func NewListPaymentMethods(methods domain.PaymentMethodRepository) *ListPaymentMethods {
	return &ListPaymentMethods{methods: methods}
}

// Execute lists the saved methods owned by the principal
func (uc *ListPaymentMethods) Execute(ctx context.Context, query *ListPaymentMethodsQuery) (*ListPaymentMethodsResponse, error) {
	if query.Principal.IsZero() {
		return nil, errors.Wrap(domain.ErrUnauthorized, "no principal on request")
	}

	cards, err := uc.methods.FindByOwnerID(ctx, query.Principal.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load payment methods")
	}

	views := make([]SavedMethodView, 0, len(cards))
	for _, card := range cards {
		views = append(views, SavedMethodView{
			ID:         card.ID.String(),
			CardNumber: maskCardNumber(card.CardNumber),
			Expiry:     card.Expiry,
			HolderName: card.HolderName,
			CreatedAt:  card.Timestamps.CreatedAt,
		})
	}

	return &ListPaymentMethodsResponse{Methods: views}, nil
}

func maskCardNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}

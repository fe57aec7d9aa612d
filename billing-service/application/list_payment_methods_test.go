package application

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/swiftship/courier-system/billing-service/domain"
	"github.com/swiftship/courier-system/billing-service/mocks"
	"github.com/swiftship/courier-system/shared/models"
)

func TestListPaymentMethods_Execute(t *testing.T) {
	principal := domain.Principal{ID: models.GenerateUUID(), Name: "Jane Roe"}

	t.Run("lists saved cards with masked numbers", func(t *testing.T) {
		cards := []*domain.SavedCard{
			{
				ID:         models.GenerateUUID(),
				OwnerID:    principal.ID,
				CardNumber: "4111111111111111",
				Expiry:     "12/99",
				HolderName: "Jane Roe",
				Timestamps: models.NewTimestamps(),
			},
			{
				ID:         models.GenerateUUID(),
				OwnerID:    principal.ID,
				CardNumber: "5500005555555559",
				Expiry:     "06/30",
				HolderName: "Jane Roe",
				Timestamps: models.NewTimestamps(),
			},
		}

		mockMethods := mocks.NewMockPaymentMethodRepository(t)
		mockMethods.EXPECT().FindByOwnerID(mock.Anything, principal.ID).Return(cards, nil).Once()

		useCase := NewListPaymentMethods(mockMethods)

		result, err := useCase.Execute(context.Background(), &ListPaymentMethodsQuery{Principal: principal})

		assert.NoError(t, err)
		assert.Len(t, result.Methods, 2)
		assert.Equal(t, cards[0].ID.String(), result.Methods[0].ID)
		assert.Equal(t, "************1111", result.Methods[0].CardNumber)
		assert.Equal(t, "************5559", result.Methods[1].CardNumber)
		assert.Equal(t, "12/99", result.Methods[0].Expiry)
	})

	t.Run("no saved cards", func(t *testing.T) {
		mockMethods := mocks.NewMockPaymentMethodRepository(t)
		mockMethods.EXPECT().FindByOwnerID(mock.Anything, principal.ID).Return(nil, nil).Once()

		useCase := NewListPaymentMethods(mockMethods)

		result, err := useCase.Execute(context.Background(), &ListPaymentMethodsQuery{Principal: principal})

		assert.NoError(t, err)
		assert.Empty(t, result.Methods)
	})

	t.Run("missing principal", func(t *testing.T) {
		useCase := NewListPaymentMethods(mocks.NewMockPaymentMethodRepository(t))

		result, err := useCase.Execute(context.Background(), &ListPaymentMethodsQuery{})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})

	t.Run("repository failure surfaces", func(t *testing.T) {
		mockMethods := mocks.NewMockPaymentMethodRepository(t)
		mockMethods.EXPECT().FindByOwnerID(mock.Anything, principal.ID).
			Return(nil, errors.New("connection reset")).Once()

		useCase := NewListPaymentMethods(mockMethods)

		result, err := useCase.Execute(context.Background(), &ListPaymentMethodsQuery{Principal: principal})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "failed to load payment methods")
	})
}

package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func stringPtr(s string) *string {
	return &s
}

func TestPaymentRequestHandlers_Supports(t *testing.T) {
	existing := &useExistingMethodHandler{}
	inline := &useNewMethodHandler{}

	tests := []struct {
		name            string
		command         *ProcessPaymentCommand
		existingMatches bool
		inlineMatches   bool
	}{
		{
			name: "method reference only",
			command: &ProcessPaymentCommand{
				PaymentMethodID: stringPtr("550e8400-e29b-41d4-a716-446655440001"),
			},
			existingMatches: true,
		},
		{
			name: "inline method only",
			command: &ProcessPaymentCommand{
				NewMethod: &NewMethodRequest{Kind: "card"},
			},
			inlineMatches: true,
		},
		{
			name: "reference wins when both are present",
			command: &ProcessPaymentCommand{
				PaymentMethodID: stringPtr("550e8400-e29b-41d4-a716-446655440001"),
				NewMethod:       &NewMethodRequest{Kind: "card"},
			},
			existingMatches: true,
		},
		{
			name: "empty reference falls through to the inline method",
			command: &ProcessPaymentCommand{
				PaymentMethodID: stringPtr(""),
				NewMethod:       &NewMethodRequest{Kind: "card"},
			},
			inlineMatches: true,
		},
		{
			name:    "neither shape matches",
			command: &ProcessPaymentCommand{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.existingMatches, existing.Supports(tt.command))
			assert.Equal(t, tt.inlineMatches, inline.Supports(tt.command))
		})
	}
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoney_Equals(t *testing.T) {
	tests := []struct {
		name  string
		left  Money
		right Money
		want  bool
	}{
		{
			name:  "same amount and currency",
			left:  NewMoney(2500, "USD"),
			right: NewMoney(2500, "USD"),
			want:  true,
		},
		{
			name:  "different amount",
			left:  NewMoney(2500, "USD"),
			right: NewMoney(9900, "USD"),
			want:  false,
		},
		{
			name:  "different currency",
			left:  NewMoney(2500, "USD"),
			right: NewMoney(2500, "EUR"),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.left.Equals(tt.right))
		})
	}
}

func TestMoney_String(t *testing.T) {
	tests := []struct {
		name  string
		money Money
		want  string
	}{
		{
			name:  "whole and fractional part",
			money: NewMoney(2550, "USD"),
			want:  "25.50 USD",
		},
		{
			name:  "cents only keep the leading zero",
			money: NewMoney(7, "USD"),
			want:  "0.07 USD",
		},
		{
			name:  "negative amount keeps a single sign",
			money: NewMoney(-2550, "EUR"),
			want:  "-25.50 EUR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.money.String())
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("add same currency", func(t *testing.T) {
		sum, err := NewMoney(2500, "USD").Add(NewMoney(500, "USD"))
		assert.NoError(t, err)
		assert.True(t, sum.Equals(NewMoney(3000, "USD")))
	})

	t.Run("subtract same currency", func(t *testing.T) {
		diff, err := NewMoney(500, "USD").Subtract(NewMoney(2500, "USD"))
		assert.NoError(t, err)
		assert.Equal(t, "-20.00 USD", diff.String())
	})

	t.Run("currency mismatch", func(t *testing.T) {
		_, err := NewMoney(2500, "USD").Add(NewMoney(500, "EUR"))
		assert.Error(t, err)

		_, err = NewMoney(2500, "USD").Subtract(NewMoney(500, "EUR"))
		assert.Error(t, err)
	})
}

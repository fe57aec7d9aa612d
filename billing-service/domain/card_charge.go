package domain

import (
	"context"
	"strings"
	"time"

	"github.com/swiftship/courier-system/shared/models"
)

// Provider identifiers recorded on attempts and charge results
const (
	ProviderCreditCard = "CREDIT_CARD"
	ProviderPayPal     = "PAYPAL"
)

const chargeTimeout = 5 * time.Second

// CardDetails is the full card payload handed to the provider call
type CardDetails struct {
	Number string
	Expiry string // MM/YY
	Holder string
	CVC    string
}

// ChargeResult is the provider outcome of a successful charge
type ChargeResult struct {
	Status        string
	Message       string
	Provider      string
	TransactionID string
}

// ChargeFunc executes a single provider charge. Processors are built over
// simulateCharge; a different ChargeFunc can be substituted to model a slow
// or unreachable provider.
type ChargeFunc func(ctx context.Context, provider string, card CardDetails) (*ChargeResult, error)

// simulateCharge stands in for the card network. Outcomes are keyed off the
// card payload so that behavior is reproducible: any blank field is an
// immediate failure, then expiry, then a number ending in "00" declines,
// then a cvc ending in "3" is rejected. Anything else is approved with a
// fresh transaction ID. The checks run in this order and the first hit wins.
func simulateCharge(_ context.Context, provider string, card CardDetails) (*ChargeResult, error) {
	if card.Number == "" || card.Expiry == "" || card.Holder == "" || card.CVC == "" {
		return nil, &PaymentFailedError{
			Provider: provider,
			Status:   "EMPTY_FIELDS",
			Reason:   "fields cannot be empty",
		}
	}

	expiry, err := time.Parse(expiryLayout, card.Expiry)
	if err != nil || expiry.Before(currentMonthStart(time.Now())) {
		return nil, &PaymentFailedError{
			Provider: provider,
			Status:   "CARD_EXPIRED",
			Reason:   "card expired",
		}
	}

	if strings.HasSuffix(card.Number, "00") {
		return nil, &PaymentFailedError{
			Provider: provider,
			Status:   "DECLINED",
			Reason:   "card declined",
		}
	}

	if strings.HasSuffix(card.CVC, "3") {
		return nil, &PaymentFailedError{
			Provider: provider,
			Status:   "REJECTED",
			Reason:   "card rejected",
		}
	}

	return &ChargeResult{
		Status:        "success",
		Message:       "APPROVED",
		Provider:      provider,
		TransactionID: models.GenerateUUID().String(),
	}, nil
}

type chargeOutcome struct {
	result *ChargeResult
	err    error
}

// chargeWithTimeout runs the provider call under a deadline so a stalled
// network hop cannot wedge the request
func chargeWithTimeout(ctx context.Context, charge ChargeFunc, provider string, card CardDetails) (*ChargeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, chargeTimeout)
	defer cancel()

	outcomes := make(chan chargeOutcome, 1)
	go func() {
		result, err := charge(ctx, provider, card)
		outcomes <- chargeOutcome{result: result, err: err}
	}()

	select {
	case outcome := <-outcomes:
		return outcome.result, outcome.err
	case <-ctx.Done():
		return nil, &PaymentFailedError{
			Provider: provider,
			Status:   "TIMEOUT",
			Reason:   "provider call timed out",
		}
	}
}

package payment

import (
	"context"
	"errors"
	"strings"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

var ErrTransactionNotFound = errors.New("transaction not found at provider")

// ProviderStatus is the provider-side verdict on a transaction.
type ProviderStatus string

const (
	ProviderSuccessful ProviderStatus = "successful"
	ProviderFailed     ProviderStatus = "failed"
	ProviderPending    ProviderStatus = "pending"
)

type VerifiedTransaction struct {
	TxRef    string
	Amount   int64
	Currency string
	Status   ProviderStatus
}

// Gateway verifies that money actually moved before the ledger is touched.
// The tx_ref is the provider-side transaction reference handed back by the
// checkout widget.
type Gateway interface {
	VerifyTransaction(ctx context.Context, txRef string) (*VerifiedTransaction, error)
}

type StripeGateway struct {
	sc *client.API
}

func NewStripeGateway(apiKey string) *StripeGateway {
	sc := &client.API{}
	sc.Init(apiKey, nil)
	return &StripeGateway{sc: sc}
}

func (g *StripeGateway) VerifyTransaction(ctx context.Context, txRef string) (*VerifiedTransaction, error) {
	pi, err := g.sc.PaymentIntents.Get(txRef, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) && se.HTTPStatusCode == 404 {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	return &VerifiedTransaction{
		TxRef:    pi.ID,
		Amount:   pi.Amount,
		Currency: strings.ToUpper(string(pi.Currency)),
		Status:   mapIntentStatus(pi.Status),
	}, nil
}

func mapIntentStatus(s stripe.PaymentIntentStatus) ProviderStatus {
	switch s {
	case stripe.PaymentIntentStatusSucceeded:
		return ProviderSuccessful
	case stripe.PaymentIntentStatusCanceled:
		return ProviderFailed
	default:
		return ProviderPending
	}
}

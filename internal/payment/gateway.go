package payment

import "context"

// GatewayOrder is the provider-side transaction record authorizing a charge.
// Amount is in the gateway's minor currency unit (paise for INR).
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

// Gateway creates provider-side transactions for checkout. Implementations
// must honor ctx cancellation and bound their own request timeouts.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string) (*GatewayOrder, error)
}

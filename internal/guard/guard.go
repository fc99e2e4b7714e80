// Package guard decides whether a buy may proceed under the configured
// price and balance limits.
package guard

// Decision is the outcome of one guardrail evaluation.
type Decision struct {
	Continue bool
	Reason   string
}

const (
	ReasonPriceTooHigh = "price too high"
	ReasonBalanceFloor = "balance floor reached"
)

// Evaluate applies the guardrails in order: price ceiling first, then the
// projected-balance floor. It must be called with a freshly polled balance
// after every buy, never a snapshot taken before the buy.
func Evaluate(price, currentBalance, maxPrice, balanceFloor float64) Decision {
	if price > maxPrice {
		return Decision{Continue: false, Reason: ReasonPriceTooHigh}
	}
	if currentBalance-price < balanceFloor {
		return Decision{Continue: false, Reason: ReasonBalanceFloor}
	}
	return Decision{Continue: true}
}

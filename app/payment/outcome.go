// Package payment integrates the external payment provider.
//
// The storefront treats the provider as an opaque collaborator: it is
// handed a total and a currency, and exactly one of three terminal
// outcomes comes back: success, failure, or cancellation. Nothing in here
// renders buttons or speaks the provider's client SDK; the browser widget
// talks to the provider directly and the server only creates and captures
// orders.
package payment

// State is the terminal outcome of a checkout attempt.
type State string

const (
	StateSuccess   State = "success"
	StateFailure   State = "failure"
	StateCancelled State = "cancelled"
)

// Outcome is what the checkout flow reacts to. Details and Err are opaque
// beyond logging.
type Outcome struct {
	State   State           `json:"state"`
	Details *CaptureDetails `json:"details,omitempty"`
	Err     error           `json:"-"`
}

// Success wraps captured order details.
func Success(details *CaptureDetails) Outcome {
	return Outcome{State: StateSuccess, Details: details}
}

// Failure wraps a provider error. The cart is left untouched so the user
// can retry.
func Failure(err error) Outcome {
	return Outcome{State: StateFailure, Err: err}
}

// Cancelled is the user closing the widget. No notice beyond a log line.
func Cancelled() Outcome {
	return Outcome{State: StateCancelled}
}

// CaptureDetails is the subset of the provider's capture response the
// storefront keeps for its receipt.
type CaptureDetails struct {
	OrderID  string  `json:"order_id"`
	PayerID  string  `json:"payer_id"`
	Status   string  `json:"status"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

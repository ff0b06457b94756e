package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/lumina/app/cart"
	"github.com/shashiranjanraj/lumina/app/catalog"
	"github.com/shashiranjanraj/lumina/app/models"
	"github.com/shashiranjanraj/lumina/app/payment"
	"github.com/shashiranjanraj/lumina/pkg/event"
	"github.com/shashiranjanraj/lumina/pkg/logger"
	"github.com/shashiranjanraj/lumina/pkg/metrics"
	"github.com/shashiranjanraj/lumina/pkg/response"
	"github.com/shashiranjanraj/lumina/pkg/router"
)

// CheckoutCompleted is fired after a successful capture. Payload is a
// *models.Receipt.
const CheckoutCompleted = "checkout.completed"

// CheckoutController drives the order lifecycle against the payment
// provider. Payment is all-or-nothing against the full current total:
// success clears the cart, failure and cancellation leave it untouched.
type CheckoutController struct {
	store   *cart.Store
	catalog *catalog.Service
	paypal  *payment.PayPal
}

func NewCheckoutController(store *cart.Store, c *catalog.Service, p *payment.PayPal) *CheckoutController {
	return &CheckoutController{store: store, catalog: c, paypal: p}
}

// Config hands the browser widget its public client id and currency.
func (c *CheckoutController) Config(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{
		"client_id":   c.paypal.ClientID(),
		"currency":    c.paypal.Currency(),
		"intent":      c.paypal.Intent(),
		"environment": c.paypal.Environment(),
	})
}

// CreateOrder opens a provider order for the cart's current total.
// The total is always recomputed server-side from the cookie, never
// accepted from the request body.
func (c *CheckoutController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	items := c.store.Load(r)
	summary := cart.Derive(c.catalog.All(), items)

	if len(summary.Items) == 0 {
		response.ValidationError(w, map[string]string{"cart": "cart is empty"})
		return
	}

	orderID, err := c.paypal.CreateOrder(r.Context(), summary.Total)
	if err != nil {
		logger.WithCtx(r.Context()).Error("checkout: create order failed", "error", err)
		metrics.Checkouts.WithLabelValues(string(payment.StateFailure)).Inc()
		response.Error(w, http.StatusBadGateway, "payment provider unavailable, please retry")
		return
	}

	response.Created(w, map[string]interface{}{
		"order_id": orderID,
		"total":    summary.Total,
		"currency": c.paypal.Currency(),
	})
}

// Capture finalises an approved order. On success the cart is cleared and
// a receipt event is fired; on failure the cart is untouched so the user
// can retry.
func (c *CheckoutController) Capture(w http.ResponseWriter, r *http.Request) {
	orderID := router.Param(r, "id")
	if orderID == "" {
		response.NotFound(w)
		return
	}

	items := c.store.Load(r)
	summary := cart.Derive(c.catalog.All(), items)

	details, err := c.paypal.CaptureOrder(r.Context(), orderID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("checkout: capture failed", "order_id", orderID, "error", err)
		metrics.Checkouts.WithLabelValues(string(payment.StateFailure)).Inc()
		response.Error(w, http.StatusBadGateway, "payment failed, your cart is unchanged")
		return
	}

	c.store.Save(w, items.Clear())
	metrics.Checkouts.WithLabelValues(string(payment.StateSuccess)).Inc()
	metrics.OrderTotal.Observe(details.Total)

	event.FireAsync(CheckoutCompleted, receiptFor(details, summary))

	response.SuccessMessage(w, "payment completed, thank you for your order", payment.Success(details))
}

// Cancel is the user closing the payment widget. Nothing to undo: the
// cart was never touched. Logged and acknowledged, no user-facing notice.
func (c *CheckoutController) Cancel(w http.ResponseWriter, r *http.Request) {
	orderID := router.Param(r, "id")
	logger.WithCtx(r.Context()).Info("checkout: cancelled by user", "order_id", orderID)
	metrics.Checkouts.WithLabelValues(string(payment.StateCancelled)).Inc()
	response.NoContent(w)
}

// receiptFor snapshots the purchased line items for the receipt record.
func receiptFor(details *payment.CaptureDetails, summary cart.Summary) *models.Receipt {
	snapshot, _ := json.Marshal(summary.Items)
	return &models.Receipt{
		OrderID:  details.OrderID,
		PayerID:  details.PayerID,
		Total:    details.Total,
		Currency: details.Currency,
		Items:    string(snapshot),
	}
}

package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/shashiranjanraj/lumina/config"
	"github.com/shashiranjanraj/lumina/pkg/http"
	"github.com/shashiranjanraj/lumina/pkg/logger"
)

const (
	sandboxBase = "https://api-m.sandbox.paypal.com"
	liveBase    = "https://api-m.paypal.com"
)

// PayPal is an Orders v2 REST client. One instance is shared by all
// requests; the OAuth access token is cached until shortly before expiry.
type PayPal struct {
	base     string
	clientID string
	secret   string
	currency string
	intent   string

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

// NewPayPal builds a client from configuration. The sandbox endpoint is
// used unless PAYPAL_ENV is "production".
func NewPayPal() *PayPal {
	base := sandboxBase
	if config.PayPalEnvironment() == "production" {
		base = liveBase
	}
	return &PayPal{
		base:     base,
		clientID: config.PayPalClientID(),
		secret:   config.PayPalSecret(),
		currency: config.PayPalCurrency(),
		intent:   config.PayPalIntent(),
	}
}

// Currency returns the configured currency code, e.g. "AUD".
func (p *PayPal) Currency() string { return p.currency }

// ClientID returns the public client id the browser widget needs.
func (p *PayPal) ClientID() string { return p.clientID }

// Intent returns the configured order intent, normally "capture".
func (p *PayPal) Intent() string { return p.intent }

// Environment reports which provider endpoint is in use.
func (p *PayPal) Environment() string {
	if p.base == liveBase {
		return "production"
	}
	return "sandbox"
}

// accessToken returns a valid OAuth token, fetching a fresh one when the
// cached token is absent or within a minute of expiry.
func (p *PayPal) accessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && time.Now().Before(p.tokenExp.Add(-time.Minute)) {
		return p.token, nil
	}

	resp, err := http.Post(p.base+"/v1/oauth2/token").
		BasicAuth(p.clientID, p.secret).
		Body("grant_type=client_credentials").
		WithContext(ctx).
		Retry(3, 500*time.Millisecond).
		Send()
	if err != nil {
		return "", fmt.Errorf("payment: token request: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return "", fmt.Errorf("payment: token request: %w", err)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := resp.JSON(&body); err != nil {
		return "", fmt.Errorf("payment: token response: %w", err)
	}

	p.token = body.AccessToken
	p.tokenExp = time.Now().Add(time.Duration(body.ExpiresIn) * time.Second)
	return p.token, nil
}

// CreateOrder opens an order for the given total and returns the provider's
// order id. The browser widget takes it from there.
func (p *PayPal) CreateOrder(ctx context.Context, total float64) (string, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return "", err
	}

	order := map[string]interface{}{
		"intent": p.intent,
		"purchase_units": []map[string]interface{}{
			{
				"amount": map[string]string{
					"currency_code": p.currency,
					"value":         formatAmount(total),
				},
			},
		},
	}

	resp, err := http.Post(p.base+"/v2/checkout/orders").
		Bearer(token).
		Body(order).
		WithContext(ctx).
		Send()
	if err != nil {
		return "", fmt.Errorf("payment: create order: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return "", fmt.Errorf("payment: create order: %w", err)
	}

	var body struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := resp.JSON(&body); err != nil {
		return "", fmt.Errorf("payment: create order response: %w", err)
	}

	logger.Info("payment: order created", "order_id", body.ID, "total", total, "currency", p.currency)
	return body.ID, nil
}

// CaptureOrder captures an approved order and returns the details the
// storefront keeps. A capture whose status is not COMPLETED is an error.
func (p *PayPal) CaptureOrder(ctx context.Context, orderID string) (*CaptureDetails, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	// The capture endpoint wants an empty JSON object, not an empty body.
	resp, err := http.Post(p.base+"/v2/checkout/orders/"+orderID+"/capture").
		Bearer(token).
		Body(json.RawMessage("{}")).
		WithContext(ctx).
		Send()
	if err != nil {
		return nil, fmt.Errorf("payment: capture order %s: %w", orderID, err)
	}
	if err := resp.Throw(); err != nil {
		return nil, fmt.Errorf("payment: capture order %s: %w", orderID, err)
	}

	var body struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Payer  struct {
			PayerID string `json:"payer_id"`
		} `json:"payer"`
		PurchaseUnits []struct {
			Payments struct {
				Captures []struct {
					Amount struct {
						CurrencyCode string `json:"currency_code"`
						Value        string `json:"value"`
					} `json:"amount"`
				} `json:"captures"`
			} `json:"payments"`
		} `json:"purchase_units"`
	}
	if err := resp.JSON(&body); err != nil {
		return nil, fmt.Errorf("payment: capture response: %w", err)
	}

	if body.Status != "COMPLETED" {
		return nil, fmt.Errorf("payment: capture of %s ended with status %s", orderID, body.Status)
	}

	details := &CaptureDetails{
		OrderID:  body.ID,
		PayerID:  body.Payer.PayerID,
		Status:   body.Status,
		Currency: p.currency,
	}
	if len(body.PurchaseUnits) > 0 {
		caps := body.PurchaseUnits[0].Payments.Captures
		if len(caps) > 0 {
			details.Currency = caps[0].Amount.CurrencyCode
			details.Total, _ = strconv.ParseFloat(caps[0].Amount.Value, 64)
		}
	}

	logger.Info("payment: order captured",
		"order_id", details.OrderID, "payer_id", details.PayerID, "total", details.Total)
	return details, nil
}

// formatAmount renders a total the way the provider's API expects,
// two decimal places and no currency symbol.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// BaseURL is exposed for tests that point the client at a local stub.
func (p *PayPal) BaseURL() string { return p.base }

// SetBaseURL overrides the API endpoint (tests only).
func (p *PayPal) SetBaseURL(u string) { p.base = u }

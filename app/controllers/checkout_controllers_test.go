package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lumina/app/cart"
	"github.com/shashiranjanraj/lumina/app/controllers"
	"github.com/shashiranjanraj/lumina/app/models"
	"github.com/shashiranjanraj/lumina/app/payment"
	"github.com/shashiranjanraj/lumina/pkg/event"
	"github.com/shashiranjanraj/lumina/pkg/router"
)

// checkoutEnv wires a checkout controller against a stubbed provider.
func checkoutEnv(t *testing.T, providerOK bool) (http.Handler, *httptest.Server) {
	t.Helper()

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v1/oauth2/token":
			json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "tok", "expires_in": 3600})
		case !providerOK:
			w.WriteHeader(http.StatusInternalServerError)
		case r.URL.Path == "/v2/checkout/orders":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"id": "ORDER-77", "status": "CREATED"})
		case strings.HasSuffix(r.URL.Path, "/capture"):
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":     "ORDER-77",
				"status": "COMPLETED",
				"payer":  map[string]string{"payer_id": "PAYER-1"},
				"purchase_units": []map[string]interface{}{
					{
						"payments": map[string]interface{}{
							"captures": []map[string]interface{}{
								{"amount": map[string]string{"currency_code": "AUD", "value": "30.00"}},
							},
						},
					},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(provider.Close)

	cat := testCatalog()
	store := cart.NewStore(
		&cart.CookiePersister{Name: "cart", TTL: 30 * 24 * time.Hour},
		cat.Len,
	)
	paypal := payment.NewPayPal()
	paypal.SetBaseURL(provider.URL)

	c := controllers.NewCheckoutController(store, cat, paypal)

	r := router.New()
	api := r.Group("/api")
	api.Get("/checkout/config", "checkout.config", c.Config)
	api.Post("/checkout/orders", "checkout.create", c.CreateOrder)
	api.Post("/checkout/orders/{id}/capture", "checkout.capture", c.Capture)
	api.Post("/checkout/orders/{id}/cancel", "checkout.cancel", c.Cancel)
	return r.Handler(), provider
}

func cartCookie(items cart.Items) *http.Cookie {
	return &http.Cookie{Name: "cart", Value: url.QueryEscape(cart.Encode(items))}
}

func TestCheckoutConfig(t *testing.T) {
	h, _ := checkoutEnv(t, true)

	w := do(t, h, http.MethodGet, "/api/checkout/config", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "AUD", body.Data["currency"])
	assert.Contains(t, body.Data, "client_id")
}

func TestCreateOrderFromCart(t *testing.T) {
	h, _ := checkoutEnv(t, true)

	// One Flask at 30.00.
	w := do(t, h, http.MethodPost, "/api/checkout/orders", "", []*http.Cookie{
		cartCookie(cart.Items{0, 0, 1}),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Data struct {
			OrderID  string  `json:"order_id"`
			Total    float64 `json:"total"`
			Currency string  `json:"currency"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ORDER-77", body.Data.OrderID)
	assert.Equal(t, 30.00, body.Data.Total)
	assert.Equal(t, "AUD", body.Data.Currency)
}

func TestCreateOrderEmptyCartRejected(t *testing.T) {
	h, _ := checkoutEnv(t, true)

	w := do(t, h, http.MethodPost, "/api/checkout/orders", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateOrderProviderFailure(t *testing.T) {
	h, _ := checkoutEnv(t, false)

	w := do(t, h, http.MethodPost, "/api/checkout/orders", "", []*http.Cookie{
		cartCookie(cart.Items{1, 0, 0}),
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCaptureSuccessClearsCartAndFiresReceipt(t *testing.T) {
	h, _ := checkoutEnv(t, true)

	event.Flush()
	defer event.Flush()
	received := make(chan *models.Receipt, 1)
	event.Listen(controllers.CheckoutCompleted, func(payload interface{}) {
		if r, ok := payload.(*models.Receipt); ok {
			received <- r
		}
	})

	w := do(t, h, http.MethodPost, "/api/checkout/orders/ORDER-77/capture", "", []*http.Cookie{
		cartCookie(cart.Items{0, 0, 1}),
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The response must carry a cleared cart cookie.
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	raw, err := url.QueryUnescape(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "[0,0,0]", raw)

	select {
	case receipt := <-received:
		assert.Equal(t, "ORDER-77", receipt.OrderID)
		assert.Equal(t, "PAYER-1", receipt.PayerID)
		assert.Equal(t, 30.00, receipt.Total)
		assert.Equal(t, "AUD", receipt.Currency)
		assert.Contains(t, receipt.Items, "Flask")
	case <-time.After(2 * time.Second):
		t.Fatal("receipt event never fired")
	}
}

func TestCaptureFailureLeavesCartUntouched(t *testing.T) {
	h, _ := checkoutEnv(t, false)

	w := do(t, h, http.MethodPost, "/api/checkout/orders/ORDER-77/capture", "", []*http.Cookie{
		cartCookie(cart.Items{0, 0, 1}),
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// No cookie write on failure: the client keeps its cart.
	assert.Empty(t, w.Result().Cookies())
}

func TestCancelIsSilent(t *testing.T) {
	h, _ := checkoutEnv(t, true)

	w := do(t, h, http.MethodPost, "/api/checkout/orders/ORDER-77/cancel", "", []*http.Cookie{
		cartCookie(cart.Items{0, 0, 1}),
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Result().Cookies())
	assert.Empty(t, w.Body.Bytes())
}

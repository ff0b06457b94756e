package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lumina/app/cart"
	"github.com/shashiranjanraj/lumina/app/catalog"
	"github.com/shashiranjanraj/lumina/app/controllers"
	"github.com/shashiranjanraj/lumina/app/models"
	"github.com/shashiranjanraj/lumina/pkg/router"
)

func testCatalog() *catalog.Service {
	return catalog.NewStatic([]models.Product{
		{ID: 1, Name: "Throw", Price: 10.00},
		{ID: 2, Name: "Candle", Price: 20.00},
		{ID: 3, Name: "Flask", Price: 30.00},
	})
}

func cartHandler(cat *catalog.Service) http.Handler {
	store := cart.NewStore(
		&cart.CookiePersister{Name: "cart", TTL: 30 * 24 * time.Hour},
		cat.Len,
	)
	c := controllers.NewCartController(store, cat)

	r := router.New()
	api := r.Group("/api")
	api.Get("/cart", "cart.show", c.Show)
	api.Post("/cart/increase", "cart.increase", c.Increase)
	api.Post("/cart/decrease", "cart.decrease", c.Decrease)
	api.Post("/cart/quantity", "cart.quantity", c.SetQuantity)
	api.Delete("/cart/items/{id}", "cart.delete", c.DeleteItem)
	api.Delete("/cart", "cart.clear", c.Clear)
	return r.Handler()
}

// do runs a request, carrying the cart cookie from the previous response.
func do(t *testing.T, h http.Handler, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type summaryBody struct {
	Data cart.Summary `json:"data"`
}

func decodeSummary(t *testing.T, w *httptest.ResponseRecorder) cart.Summary {
	t.Helper()
	var body summaryBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data
}

func TestCartShowEmpty(t *testing.T) {
	h := cartHandler(testCatalog())

	w := do(t, h, http.MethodGet, "/api/cart", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	summary := decodeSummary(t, w)
	assert.Empty(t, summary.Items)
	assert.Equal(t, 0.0, summary.Total)
	assert.Equal(t, "A$0.00", summary.TotalDisplay)
}

func TestCartIncreaseSetsCookieAndReturnsSummary(t *testing.T) {
	h := cartHandler(testCatalog())

	w := do(t, h, http.MethodPost, "/api/cart/increase", `{"product_id":1}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	summary := decodeSummary(t, w)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 1, summary.Items[0].Quantity)
	assert.Equal(t, 10.00, summary.Total)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "cart", cookies[0].Name)
	assert.Equal(t, "/", cookies[0].Path)
}

func TestCartScenarioAcrossRequests(t *testing.T) {
	h := cartHandler(testCatalog())

	// Increase(1) three times, Increase(3) once, carrying the cookie forward.
	var cookies []*http.Cookie
	for _, body := range []string{
		`{"product_id":1}`, `{"product_id":1}`, `{"product_id":1}`, `{"product_id":3}`,
	} {
		w := do(t, h, http.MethodPost, "/api/cart/increase", body, cookies)
		require.Equal(t, http.StatusOK, w.Code)
		cookies = w.Result().Cookies()
	}

	w := do(t, h, http.MethodGet, "/api/cart", "", cookies)
	summary := decodeSummary(t, w)

	require.Len(t, summary.Items, 2)
	assert.Equal(t, uint(1), summary.Items[0].Product.ID)
	assert.Equal(t, 3, summary.Items[0].Quantity)
	assert.Equal(t, 30.00, summary.Items[0].Subtotal)
	assert.Equal(t, uint(3), summary.Items[1].Product.ID)
	assert.Equal(t, 1, summary.Items[1].Quantity)
	assert.Equal(t, 30.00, summary.Items[1].Subtotal)
	assert.Equal(t, 60.00, summary.Total)
	assert.Equal(t, "A$60.00", summary.TotalDisplay)
}

func TestCartDecreaseFloorsAtZero(t *testing.T) {
	h := cartHandler(testCatalog())

	w := do(t, h, http.MethodPost, "/api/cart/decrease", `{"product_id":2}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	summary := decodeSummary(t, w)
	assert.Empty(t, summary.Items)
}

func TestCartSetQuantity(t *testing.T) {
	h := cartHandler(testCatalog())

	w := do(t, h, http.MethodPost, "/api/cart/quantity", `{"product_id":2,"quantity":5}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	summary := decodeSummary(t, w)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 5, summary.Items[0].Quantity)
	assert.Equal(t, 100.00, summary.Total)
}

func TestCartDeleteItem(t *testing.T) {
	h := cartHandler(testCatalog())

	w := do(t, h, http.MethodPost, "/api/cart/increase", `{"product_id":1}`, nil)
	cookies := w.Result().Cookies()

	w = do(t, h, http.MethodDelete, "/api/cart/items/1", "", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	summary := decodeSummary(t, w)
	assert.Empty(t, summary.Items)
}

func TestCartClear(t *testing.T) {
	h := cartHandler(testCatalog())

	w := do(t, h, http.MethodPost, "/api/cart/quantity", `{"product_id":3,"quantity":4}`, nil)
	cookies := w.Result().Cookies()

	w = do(t, h, http.MethodDelete, "/api/cart", "", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	summary := decodeSummary(t, w)
	assert.Empty(t, summary.Items)
	assert.Equal(t, 0.0, summary.Total)
}

func TestCartUnknownProductIs404(t *testing.T) {
	h := cartHandler(testCatalog())

	w := do(t, h, http.MethodPost, "/api/cart/increase", `{"product_id":99}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodDelete, "/api/cart/items/99", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartValidation(t *testing.T) {
	h := cartHandler(testCatalog())

	// Missing product_id.
	w := do(t, h, http.MethodPost, "/api/cart/increase", `{}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Malformed JSON.
	w = do(t, h, http.MethodPost, "/api/cart/increase", `{`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartCorruptCookieResetsSilently(t *testing.T) {
	h := cartHandler(testCatalog())

	w := do(t, h, http.MethodGet, "/api/cart", "", []*http.Cookie{
		{Name: "cart", Value: "not%20json"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	summary := decodeSummary(t, w)
	assert.Empty(t, summary.Items)
}

func TestCartStaleLongCookieResets(t *testing.T) {
	h := cartHandler(testCatalog())

	// A cookie from a bigger catalogue is discarded, not truncated.
	w := do(t, h, http.MethodGet, "/api/cart", "", []*http.Cookie{
		{Name: "cart", Value: "%5B1%2C2%2C3%2C4%5D"}, // [1,2,3,4]
	})
	require.Equal(t, http.StatusOK, w.Code)

	summary := decodeSummary(t, w)
	assert.Empty(t, summary.Items)
}

func TestCartShortCookieIsPadded(t *testing.T) {
	h := cartHandler(testCatalog())

	w := do(t, h, http.MethodGet, "/api/cart", "", []*http.Cookie{
		{Name: "cart", Value: "%5B2%2C1%5D"}, // [2,1]
	})
	require.Equal(t, http.StatusOK, w.Code)

	summary := decodeSummary(t, w)
	require.Len(t, summary.Items, 2)
	assert.Equal(t, 2, summary.Items[0].Quantity)
	assert.Equal(t, 1, summary.Items[1].Quantity)
	assert.Equal(t, 40.00, summary.Total) // 2×10 + 1×20
}

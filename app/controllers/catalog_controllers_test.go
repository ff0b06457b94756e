package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lumina/app/cart"
	"github.com/shashiranjanraj/lumina/app/controllers"
	"github.com/shashiranjanraj/lumina/pkg/router"
)

func catalogHandler() http.Handler {
	cat := testCatalog()
	store := cart.NewStore(
		&cart.CookiePersister{Name: "cart", TTL: 30 * 24 * time.Hour},
		cat.Len,
	)
	c := controllers.NewCatalogController(cat, store)
	r := router.New()
	api := r.Group("/api")
	api.Get("/products", "products.index", c.Index)
	api.Get("/products/{id}", "products.show", c.Show)
	return r.Handler()
}

// productBody is the slice of the response shape these tests care about.
type productBody struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	PriceDisplay string  `json:"price_display"`
	Quantity     int     `json:"quantity"`
	InCart       bool    `json:"in_cart"`
}

type productsEnvelope struct {
	Data []productBody `json:"data"`
}

func TestProductsIndex(t *testing.T) {
	h := catalogHandler()

	w := do(t, h, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body productsEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 3)
	assert.Equal(t, "A$10.00", body.Data[0].PriceDisplay)
	assert.False(t, body.Data[0].InCart)
}

func TestProductsIndexCarriesCartQuantities(t *testing.T) {
	h := catalogHandler()
	cookie := &http.Cookie{Name: "cart", Value: url.QueryEscape("[0,2,0]")}

	w := do(t, h, http.MethodGet, "/api/products", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, w.Code)

	var body productsEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 3)

	assert.False(t, body.Data[0].InCart)
	assert.True(t, body.Data[1].InCart)
	assert.Equal(t, 2, body.Data[1].Quantity)
	assert.False(t, body.Data[2].InCart)
}

func TestProductsSearch(t *testing.T) {
	h := catalogHandler()

	w := do(t, h, http.MethodGet, "/api/products?search=candle", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body productsEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Candle", body.Data[0].Name)
}

func TestProductsSearchNoMatch(t *testing.T) {
	h := catalogHandler()

	w := do(t, h, http.MethodGet, "/api/products?search=nothing-here", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body productsEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Data)
}

func TestProductShow(t *testing.T) {
	h := catalogHandler()
	cookie := &http.Cookie{Name: "cart", Value: url.QueryEscape("[0,3,0]")}

	w := do(t, h, http.MethodGet, "/api/products/2", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data productBody `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, uint(2), body.Data.ID)
	assert.Equal(t, "Candle", body.Data.Name)
	assert.Equal(t, "A$20.00", body.Data.PriceDisplay)
	assert.True(t, body.Data.InCart)
	assert.Equal(t, 3, body.Data.Quantity)
}

func TestProductShowNotFound(t *testing.T) {
	h := catalogHandler()

	for _, path := range []string{"/api/products/99", "/api/products/0", "/api/products/abc"} {
		w := do(t, h, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code, "path %s", path)
	}
}

package routes

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shashiranjanraj/lumina/app/cart"
	"github.com/shashiranjanraj/lumina/app/catalog"
	"github.com/shashiranjanraj/lumina/app/controllers"
	"github.com/shashiranjanraj/lumina/app/payment"
	"github.com/shashiranjanraj/lumina/pkg/logger"
	"github.com/shashiranjanraj/lumina/pkg/metrics"
	"github.com/shashiranjanraj/lumina/pkg/middleware"
	"github.com/shashiranjanraj/lumina/pkg/response"
	"github.com/shashiranjanraj/lumina/pkg/router"
	"github.com/shashiranjanraj/lumina/pkg/storage"
)

// RegisterAPI mounts every route over the shared services.
func RegisterAPI(r *router.Router, cat *catalog.Service) {
	store := cart.NewStore(cart.NewCookiePersister(), cat.Len)
	paypal := payment.NewPayPal()

	catalogController := controllers.NewCatalogController(cat, store)
	cartController := controllers.NewCartController(store, cat)
	checkoutController := controllers.NewCheckoutController(store, cat, paypal)

	api := r.Group("/api")

	api.Get("/products", "products.index", catalogController.Index)
	api.Get("/products/{id}", "products.show", catalogController.Show)

	api.Get("/cart", "cart.show", cartController.Show)
	api.Post("/cart/increase", "cart.increase", cartController.Increase)
	api.Post("/cart/decrease", "cart.decrease", cartController.Decrease)
	api.Post("/cart/quantity", "cart.quantity", cartController.SetQuantity)
	api.Delete("/cart/items/{id}", "cart.delete", cartController.DeleteItem)
	api.Delete("/cart", "cart.clear", cartController.Clear)

	// Checkout calls fan out to the payment provider, so they get a
	// per-client rate limit the cheap read endpoints don't need.
	checkout := api.Group("/checkout", middleware.RateLimit(30, time.Minute))
	checkout.Get("/config", "checkout.config", checkoutController.Config)
	checkout.Post("/orders", "checkout.create", checkoutController.CreateOrder)
	checkout.Post("/orders/{id}/capture", "checkout.capture", checkoutController.Capture)
	checkout.Post("/orders/{id}/cancel", "checkout.cancel", checkoutController.Cancel)

	if gql, err := controllers.NewGraphQLController(cat); err != nil {
		logger.Error("routes: graphql schema failed", "error", err)
	} else {
		api.Post("/graphql", "graphql.query", gql.Query)
	}

	r.HandleFunc("/metrics", metrics.Handler())
	r.Get("/storage/*", "storage.serve", serveFile)

	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
}

// serveFile streams a stored file (product images) from the default disk.
func serveFile(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/storage/")
	if path == "" || strings.Contains(path, "..") {
		response.NotFound(w)
		return
	}

	rc, err := storage.GetStream(path)
	if err != nil {
		response.NotFound(w)
		return
	}
	defer rc.Close()

	if strings.HasSuffix(path, ".jpg") || strings.HasSuffix(path, ".jpeg") {
		w.Header().Set("Content-Type", "image/jpeg")
	} else if strings.HasSuffix(path, ".png") {
		w.Header().Set("Content-Type", "image/png")
	} else if strings.HasSuffix(path, ".webp") {
		w.Header().Set("Content-Type", "image/webp")
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")

	io.Copy(w, rc) //nolint:errcheck
}

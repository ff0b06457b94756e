package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/lumina/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRouteLookup(t *testing.T) {
	r := router.New()
	r.Get("/products/{id}", "products.show", ok)

	path, found := r.Path("products.show")
	if !found {
		t.Fatal("expected route to be registered")
	}
	if path != "/products/{id}" {
		t.Errorf("unexpected path: %s", path)
	}

	if _, found := r.Path("missing"); found {
		t.Error("expected missing route to not be found")
	}
}

func TestURLBuilding(t *testing.T) {
	r := router.New()
	r.Get("/products/{id}", "products.show", ok)

	url, err := r.URL("products.show", map[string]string{"id": "7"})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "/products/7" {
		t.Errorf("unexpected url: %s", url)
	}

	if _, err := r.URL("products.show", nil); err == nil {
		t.Error("expected error for missing params")
	}
	if _, err := r.URL("missing", nil); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestGroupPrefixing(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	api.Get("/cart", "cart.show", ok)

	path, _ := r.Path("cart.show")
	if path != "/api/cart" {
		t.Errorf("expected /api/cart, got %s", path)
	}

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestNestedGroups(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	checkout := api.Group("/checkout")
	checkout.Post("/orders", "checkout.create", ok)

	path, _ := r.Path("checkout.create")
	if path != "/api/checkout/orders" {
		t.Errorf("expected /api/checkout/orders, got %s", path)
	}
}

func TestGroupMiddlewareApplies(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	api := r.Group("/api", mw("group"))
	api.Get("/x", "x", ok, mw("route"))

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/x", nil))

	if len(order) != 2 || order[0] != "group" || order[1] != "route" {
		t.Errorf("unexpected middleware order: %v", order)
	}
}

func TestParam(t *testing.T) {
	r := router.New()
	var got string
	r.Get("/products/{id}", "products.show", func(w http.ResponseWriter, req *http.Request) {
		got = router.Param(req, "id")
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/42", nil))

	if got != "42" {
		t.Errorf("expected id 42, got %q", got)
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/a", "a", ok)
	r.Post("/b", "b", ok)
	r.Delete("/c", "", ok) // unnamed routes are not listed

	infos := r.Routes()
	if len(infos) != 2 {
		t.Fatalf("expected 2 named routes, got %d", len(infos))
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r := router.New()
	r.Get("/only-get", "g", ok)

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/only-get", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

package routes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lumina/app/catalog"
	"github.com/shashiranjanraj/lumina/app/routes"
	"github.com/shashiranjanraj/lumina/pkg/router"
)

// Registration must work over a static catalogue with no database or cache
// behind it; route:list relies on that.
func TestRegisterAPIWithStaticCatalog(t *testing.T) {
	r := router.New()
	routes.RegisterAPI(r, catalog.NewStatic(nil))

	byName := map[string]router.RouteInfo{}
	for _, ri := range r.Routes() {
		byName[ri.Name] = ri
	}

	for _, name := range []string{
		"products.index",
		"products.show",
		"cart.show",
		"cart.increase",
		"cart.decrease",
		"cart.quantity",
		"cart.delete",
		"cart.clear",
		"checkout.config",
		"checkout.create",
		"checkout.capture",
		"checkout.cancel",
		"graphql.query",
		"storage.serve",
		"health",
	} {
		require.Contains(t, byName, name)
	}

	assert.Equal(t, "/api/checkout/orders/{id}/capture", byName["checkout.capture"].Path)
	assert.Equal(t, "/api/products/{id}", byName["products.show"].Path)
}

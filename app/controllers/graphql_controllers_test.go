package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lumina/app/controllers"
	"github.com/shashiranjanraj/lumina/pkg/router"
)

func graphqlHandler(t *testing.T) http.Handler {
	t.Helper()
	g, err := controllers.NewGraphQLController(testCatalog())
	require.NoError(t, err)

	r := router.New()
	r.Post("/api/graphql", "graphql.query", g.Query)
	return r.Handler()
}

func gql(t *testing.T, h http.Handler, query string) map[string]interface{} {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"query": query})
	w := do(t, h, http.MethodPost, "/api/graphql", string(body), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGraphQLProducts(t *testing.T) {
	h := graphqlHandler(t)

	out := gql(t, h, `{ products { id name price } }`)
	require.NotContains(t, out, "errors")

	data := out["data"].(map[string]interface{})
	products := data["products"].([]interface{})
	assert.Len(t, products, 3)

	first := products[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["id"])
	assert.Equal(t, "Throw", first["name"])
	assert.Equal(t, 10.00, first["price"])
}

func TestGraphQLProductsSearch(t *testing.T) {
	h := graphqlHandler(t)

	out := gql(t, h, `{ products(search: "candle") { name } }`)
	data := out["data"].(map[string]interface{})
	products := data["products"].([]interface{})
	require.Len(t, products, 1)
	assert.Equal(t, "Candle", products[0].(map[string]interface{})["name"])
}

func TestGraphQLProductByID(t *testing.T) {
	h := graphqlHandler(t)

	out := gql(t, h, `{ product(id: 2) { id name } }`)
	data := out["data"].(map[string]interface{})
	product := data["product"].(map[string]interface{})
	assert.Equal(t, "Candle", product["name"])
}

func TestGraphQLUnknownProductIsNull(t *testing.T) {
	h := graphqlHandler(t)

	out := gql(t, h, `{ product(id: 99) { id name } }`)
	data := out["data"].(map[string]interface{})
	assert.Nil(t, data["product"])
}

func TestGraphQLMalformedQuery(t *testing.T) {
	h := graphqlHandler(t)

	out := gql(t, h, `{ nonsense }`)
	assert.Contains(t, out, "errors")
}

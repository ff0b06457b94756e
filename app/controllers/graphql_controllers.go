package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/lumina/app/catalog"
	gqlschema "github.com/shashiranjanraj/lumina/pkg/graphql"
	"github.com/shashiranjanraj/lumina/pkg/response"
)

// GraphQLController exposes a read-only query surface over the catalogue
// for storefront clients that prefer one round trip over several REST
// calls. Mutations stay REST-only because they have to set the cart cookie.
type GraphQLController struct {
	schema graphql.Schema
}

func NewGraphQLController(c *catalog.Service) (*GraphQLController, error) {
	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.Int},
			"name":         &graphql.Field{Type: graphql.String},
			"description":  &graphql.Field{Type: graphql.String},
			"price":        &graphql.Field{Type: graphql.Float},
			"rating":       &graphql.Field{Type: graphql.Float},
			"rating_count": &graphql.Field{Type: graphql.Int},
			"image":        &graphql.Field{Type: graphql.String},
			"images":       &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"search": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					search, _ := p.Args["search"].(string)
					return c.Search(search), nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					product, ok := c.Find(id)
					if !ok {
						return nil, nil
					}
					return product, nil
				},
			},
		},
	})

	schema, err := gqlschema.NewSchema(query)
	if err != nil {
		return nil, err
	}
	return &GraphQLController{schema: schema}, nil
}

// Query handles POST /api/graphql.
func (g *GraphQLController) Query(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         g.schema,
		RequestString:  body.Query,
		VariableValues: body.Variables,
		Context:        r.Context(),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

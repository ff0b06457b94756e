package controllers

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/lumina/app/cart"
	"github.com/shashiranjanraj/lumina/app/catalog"
	"github.com/shashiranjanraj/lumina/pkg/bind"
	"github.com/shashiranjanraj/lumina/pkg/metrics"
	"github.com/shashiranjanraj/lumina/pkg/response"
	"github.com/shashiranjanraj/lumina/pkg/router"
)

// CartController owns every cart endpoint. The cart travels in a cookie:
// each handler loads it from the request, applies one mutation, writes the
// new cookie on the response, and returns the derived summary so the
// client can re-render without a second round trip.
type CartController struct {
	store   *cart.Store
	catalog *catalog.Service
}

func NewCartController(store *cart.Store, c *catalog.Service) *CartController {
	return &CartController{store: store, catalog: c}
}

type cartMutation struct {
	ProductID int `json:"product_id" validate:"required,integer,gt=0"`
}

type quantityMutation struct {
	ProductID int `json:"product_id" validate:"required,integer,gt=0"`
	Quantity  int `json:"quantity"   validate:"integer"`
}

// Show returns the current cart summary.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	items := c.store.Load(r)
	response.Success(w, cart.Derive(c.catalog.All(), items))
}

// Increase adds one unit of a product.
func (c *CartController) Increase(w http.ResponseWriter, r *http.Request) {
	var body cartMutation
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if _, ok := c.catalog.Find(body.ProductID); !ok {
		response.NotFound(w)
		return
	}

	items := c.store.Load(r).Increase(body.ProductID)
	c.store.Save(w, items)
	metrics.CartOperations.WithLabelValues("increase").Inc()

	response.Success(w, cart.Derive(c.catalog.All(), items))
}

// Decrease removes one unit of a product, flooring at zero.
func (c *CartController) Decrease(w http.ResponseWriter, r *http.Request) {
	var body cartMutation
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if _, ok := c.catalog.Find(body.ProductID); !ok {
		response.NotFound(w)
		return
	}

	items := c.store.Load(r).Decrease(body.ProductID)
	c.store.Save(w, items)
	metrics.CartOperations.WithLabelValues("decrease").Inc()

	response.Success(w, cart.Derive(c.catalog.All(), items))
}

// SetQuantity sets a product's quantity outright. Zero or negative
// removes the product.
func (c *CartController) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var body quantityMutation
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if _, ok := c.catalog.Find(body.ProductID); !ok {
		response.NotFound(w)
		return
	}

	items := c.store.Load(r).SetQuantity(body.ProductID, body.Quantity)
	c.store.Save(w, items)
	metrics.CartOperations.WithLabelValues("set").Inc()

	response.Success(w, cart.Derive(c.catalog.All(), items))
}

// DeleteItem removes a product from the cart entirely.
func (c *CartController) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(router.Param(r, "id"))
	if err != nil || id < 1 {
		response.NotFound(w)
		return
	}
	if _, ok := c.catalog.Find(id); !ok {
		response.NotFound(w)
		return
	}

	items := c.store.Load(r).Delete(id)
	c.store.Save(w, items)
	metrics.CartOperations.WithLabelValues("delete").Inc()

	response.Success(w, cart.Derive(c.catalog.All(), items))
}

// Clear empties the whole cart.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	items := c.store.Load(r).Clear()
	c.store.Save(w, items)
	metrics.CartOperations.WithLabelValues("clear").Inc()

	response.Success(w, cart.Derive(c.catalog.All(), items))
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/lumina/app/cart"
	"github.com/shashiranjanraj/lumina/app/catalog"
	"github.com/shashiranjanraj/lumina/app/models"
	"github.com/shashiranjanraj/lumina/pkg/response"
	"github.com/shashiranjanraj/lumina/pkg/router"
	"github.com/shashiranjanraj/lumina/pkg/storage"
)

type CatalogController struct {
	catalog *catalog.Service
	store   *cart.Store
}

func NewCatalogController(c *catalog.Service, store *cart.Store) *CatalogController {
	return &CatalogController{catalog: c, store: store}
}

// productView is a product plus what the browsing client renders next to
// it: the resolved image URL, the display price and the cart affordance.
type productView struct {
	models.Product
	ImageURL     string `json:"image_url"`
	PriceDisplay string `json:"price_display"`
	Quantity     int    `json:"quantity"`
	InCart       bool   `json:"in_cart"`
}

func viewOf(p models.Product, items cart.Items) productView {
	qty := items.Quantity(int(p.ID))
	return productView{
		Product:      p,
		ImageURL:     storage.URL(p.Image),
		PriceDisplay: cart.FormatPrice(p.Price),
		Quantity:     qty,
		InCart:       qty > 0,
	}
}

// Index lists the catalogue. The optional ?search= parameter filters by
// case-insensitive substring match on name or description.
func (c *CatalogController) Index(w http.ResponseWriter, r *http.Request) {
	items := c.store.Load(r)

	products := c.catalog.Search(r.URL.Query().Get("search"))
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, viewOf(p, items))
	}
	response.Success(w, views)
}

// Show returns a single product by id. Unknown ids are a 404, not an error.
func (c *CatalogController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(router.Param(r, "id"))
	if err != nil || id < 1 {
		response.NotFound(w)
		return
	}

	product, ok := c.catalog.Find(id)
	if !ok {
		response.NotFound(w)
		return
	}
	response.Success(w, viewOf(product, c.store.Load(r)))
}

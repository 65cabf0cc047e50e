package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/app/middleware"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/view"
)

type HomeController struct {
	catalog *services.CatalogService
	orders  *services.OrderService
	view    *view.Renderer
}

func NewHomeController(catalog *services.CatalogService, orders *services.OrderService, v *view.Renderer) *HomeController {
	return &HomeController{catalog: catalog, orders: orders, view: v}
}

// Index lists the catalogue, plus the visitor's own orders when signed in.
func (c *HomeController) Index(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	products, err := c.catalog.Products(r.Context())
	if err != nil {
		serverError(w, r, err, "Error loading products")
		return
	}

	page := homePage{User: id.User, Products: products}
	if id.Authenticated() {
		page.Orders, err = c.orders.ForUser(r.Context(), id.UserID())
		if err != nil {
			serverError(w, r, err, "Error loading orders")
			return
		}
	}

	render(w, r, c.view, http.StatusOK, "home", page)
}

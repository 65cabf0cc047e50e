package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/app/middleware"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Store places one order per positive quantity_<productId> field.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, "Malformed form")
		return
	}

	created, err := c.orders.Submit(r.Context(), id.UserID(), r.PostForm)
	metrics.OrdersCreated.Add(float64(len(created)))
	if err != nil {
		serverError(w, r, err, "Error creating order")
		return
	}

	logger.WithCtx(r.Context()).Info().Int("orders", len(created)).Msg("orders placed")
	response.Redirect(w, r, "/")
}

package controllers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/storefront/app/middleware"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/view"
)

const (
	maxUploadBytes = 5 << 20
	adminHome      = "/admin/orders"
)

// orderStatuses are offered as suggestions; any status is accepted.
var orderStatuses = []string{"in progress", "shipped", "delivered", "cancelled"}

type AdminController struct {
	orders  *services.OrderService
	catalog *services.CatalogService
	view    *view.Renderer
}

func NewAdminController(orders *services.OrderService, catalog *services.CatalogService, v *view.Renderer) *AdminController {
	return &AdminController{orders: orders, catalog: catalog, view: v}
}

// Orders lists every order with its customer and product, plus the catalogue.
func (c *AdminController) Orders(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	orders, err := c.orders.All(r.Context())
	if err != nil {
		serverError(w, r, err, "Error loading orders")
		return
	}
	products, err := c.catalog.Products(r.Context())
	if err != nil {
		serverError(w, r, err, "Error loading products")
		return
	}

	render(w, r, c.view, http.StatusOK, "admin_orders", adminOrdersPage{
		User:     id.User,
		Orders:   orders,
		Products: products,
		Statuses: orderStatuses,
	})
}

// UpdateOrder overwrites an order's status.
func (c *AdminController) UpdateOrder(w http.ResponseWriter, r *http.Request, _ middleware.Identity) {
	orderID, ok := idParam(r)
	if !ok {
		response.NotFound(w, "Order not found")
		return
	}

	err := c.orders.UpdateStatus(r.Context(), orderID, r.PostFormValue("status"))
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		response.BadRequest(w, strings.Join(verr.Messages, "\n"))
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w, "Order not found")
	case err != nil:
		serverError(w, r, err, "Error updating order")
	default:
		response.Redirect(w, r, adminHome)
	}
}

// DeleteOrder removes an order. Repeating the call answers 404.
func (c *AdminController) DeleteOrder(w http.ResponseWriter, r *http.Request, _ middleware.Identity) {
	orderID, ok := idParam(r)
	if !ok {
		response.NotFound(w, "Order not found")
		return
	}

	err := c.orders.Delete(r.Context(), orderID)
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w, "Order not found")
	case err != nil:
		serverError(w, r, err, "Error deleting order")
	default:
		logger.WithCtx(r.Context()).Info().Uint("order_id", orderID).Msg("order deleted")
		response.Redirect(w, r, adminHome)
	}
}

// CreateProduct adds a product from product_name, price and an optional image.
func (c *AdminController) CreateProduct(w http.ResponseWriter, r *http.Request, _ middleware.Identity) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<20)

	var image *services.Upload
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			response.BadRequest(w, "The image may not be larger than 5 MB.")
			return
		}
		file, header, err := r.FormFile("image")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			response.BadRequest(w, "Malformed upload")
			return
		default:
			defer file.Close()
			// Browsers send an empty part when no file was chosen.
			if header.Size > 0 {
				if image, err = sniffUpload(file, header); err != nil {
					serverError(w, r, err, "Error creating product")
					return
				}
			}
		}
	}

	in := services.ProductInput{
		ProductName: r.FormValue("product_name"),
		Price:       r.FormValue("price"),
	}
	product, err := c.catalog.Create(r.Context(), in, image)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			response.BadRequest(w, strings.Join(verr.Messages, "\n"))
			return
		}
		serverError(w, r, err, "Error creating product")
		return
	}

	logger.WithCtx(r.Context()).Info().Uint("product_id", product.ID).Msg("product created")
	response.Redirect(w, r, adminHome)
}

// DeleteProduct removes a product that no order references.
func (c *AdminController) DeleteProduct(w http.ResponseWriter, r *http.Request, _ middleware.Identity) {
	productID, ok := idParam(r)
	if !ok {
		response.NotFound(w, "Product not found")
		return
	}

	err := c.catalog.Delete(r.Context(), productID)
	switch {
	case errors.Is(err, services.ErrProductInUse):
		response.Conflict(w, "Product has orders")
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w, "Product not found")
	case err != nil:
		serverError(w, r, err, "Error deleting product")
	default:
		logger.WithCtx(r.Context()).Info().Uint("product_id", productID).Msg("product deleted")
		response.Redirect(w, r, adminHome)
	}
}

// sniffUpload detects the content type from the file's first bytes rather
// than trusting the client's header.
func sniffUpload(file multipart.File, header *multipart.FileHeader) (*services.Upload, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return &services.Upload{
		Filename:    header.Filename,
		ContentType: http.DetectContentType(head[:n]),
		Body:        file,
	}, nil
}

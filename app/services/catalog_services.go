package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/storage"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

const maxPrice = 99999999.99

// ProductInput is the create-product form.
type ProductInput struct {
	ProductName string `form:"product_name" validate:"required,max=255"`
	Price       string `form:"price"        validate:"required,numeric"`
}

// Upload is an optional product image.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type CatalogService struct {
	products ProductStore
	disk     storage.Disk
}

// NewCatalogService builds the service. disk may be nil when uploads are disabled.
func NewCatalogService(products ProductStore, disk storage.Disk) *CatalogService {
	return &CatalogService{products: products, disk: disk}
}

// Products lists the whole catalogue.
func (s *CatalogService) Products(ctx context.Context) ([]models.Product, error) {
	return s.products.All(ctx)
}

// Create validates in, stores the optional image and persists the product.
func (s *CatalogService) Create(ctx context.Context, in ProductInput, image *Upload) (*models.Product, error) {
	in.ProductName = strings.TrimSpace(in.ProductName)
	in.Price = strings.TrimSpace(in.Price)

	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, invalid(validate.Messages(errs)...)
	}
	price, err := strconv.ParseFloat(in.Price, 64)
	if err != nil || price < 0 || price > maxPrice {
		return nil, invalid(fmt.Sprintf("The price must be between 0 and %.2f.", maxPrice))
	}

	product := &models.Product{ProductName: in.ProductName, Price: price}

	var key string
	if image != nil && s.disk != nil {
		ext, ok := imageTypes[image.ContentType]
		if !ok {
			return nil, invalid("The image must be a JPEG, PNG, GIF or WebP file.")
		}
		key = imageKey(ext)
		if err := s.disk.Put(ctx, key, image.Body, image.ContentType); err != nil {
			return nil, fmt.Errorf("create product: store image %s: %w", path.Base(image.Filename), err)
		}
		product.ImageURL = s.disk.URL(key)
	}

	if err := s.products.Create(ctx, product); err != nil {
		if key != "" {
			if derr := s.disk.Delete(ctx, key); derr != nil {
				logger.WithCtx(ctx).Warn().Err(derr).Str("key", key).Msg("orphaned product image")
			}
		}
		return nil, err
	}
	return product, nil
}

// Delete removes a product. Products referenced by orders are kept and
// ErrProductInUse is returned.
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	return s.products.Delete(ctx, id)
}

// imageKey names a stored product image; the original filename is never
// part of the key.
func imageKey(ext string) string {
	return "products/" + uuid.NewString() + ext
}

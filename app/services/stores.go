package services

import (
	"context"

	"github.com/shashiranjanraj/storefront/app/models"
)

// UserStore is the credential store used by AuthService.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	SetAdmin(ctx context.Context, email string, admin bool) error
}

// ProductStore is the catalogue store.
type ProductStore interface {
	All(ctx context.Context) ([]models.Product, error)
	ExistingIDs(ctx context.Context, ids []uint) (map[uint]bool, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}

// OrderStore is the order store.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	ForUser(ctx context.Context, userID uint) ([]models.Order, error)
	AllWithRelations(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/internal/testdb"
)

type fixture struct {
	db       *gorm.DB
	users    *repositories.UserRepository
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
}

func setup(t *testing.T) fixture {
	db := testdb.Open(t)
	return fixture{
		db:       db,
		users:    repositories.NewUserRepository(db),
		products: repositories.NewProductRepository(db),
		orders:   repositories.NewOrderRepository(db),
	}
}

func (f fixture) user(t *testing.T, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "N", Email: email, Password: "hash"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f fixture) product(t *testing.T, name string) *models.Product {
	t.Helper()
	p := &models.Product{ProductName: name, Price: 2.5}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func TestUserRepository(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	u := f.user(t, " Ann@Example.com ")
	assert.Equal(t, "ann@example.com", u.Email)
	assert.False(t, u.IsAdmin)

	found, err := f.users.FindByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = f.users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = f.users.FindByID(ctx, 999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = f.users.Create(ctx, &models.User{Name: "Dup", Email: "ann@example.com", Password: "x"})
	assert.Error(t, err, "email is unique")

	require.NoError(t, f.users.SetAdmin(ctx, "ann@example.com", true))
	found, err = f.users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, found.IsAdmin)

	require.NoError(t, f.users.SetAdmin(ctx, "ann@example.com", true), "idempotent")
	assert.ErrorIs(t, f.users.SetAdmin(ctx, "nobody@example.com", true), repositories.ErrNotFound)
}

func TestProductRepository(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	mug := f.product(t, "Mug")
	tee := f.product(t, "Tee")

	all, err := f.products.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Mug", all[0].ProductName)

	n, err := f.products.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	existing, err := f.products.ExistingIDs(ctx, []uint{mug.ID, tee.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{mug.ID: true, tee.ID: true}, existing)

	existing, err = f.products.ExistingIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, existing)
}

func TestProductDeleteRejectsReferencedProducts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	u := f.user(t, "ann@example.com")
	mug := f.product(t, "Mug")
	tee := f.product(t, "Tee")
	require.NoError(t, f.orders.Create(ctx, &models.Order{UserID: u.ID, ProductID: mug.ID, Quantity: 1}))

	assert.ErrorIs(t, f.products.Delete(ctx, mug.ID), repositories.ErrInUse)
	_, err := f.products.FindByID(ctx, mug.ID)
	assert.NoError(t, err, "referenced product survives")

	require.NoError(t, f.products.Delete(ctx, tee.ID))
	assert.ErrorIs(t, f.products.Delete(ctx, tee.ID), repositories.ErrNotFound)
}

func TestOrderRepository(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	ann := f.user(t, "ann@example.com")
	bob := f.user(t, "bob@example.com")
	mug := f.product(t, "Mug")

	first := &models.Order{UserID: ann.ID, ProductID: mug.ID, Quantity: 2}
	require.NoError(t, f.orders.Create(ctx, first))
	assert.Equal(t, models.DefaultOrderStatus, first.Status)
	assert.False(t, first.OrderDate.IsZero())

	require.NoError(t, f.orders.Create(ctx, &models.Order{UserID: bob.ID, ProductID: mug.ID, Quantity: 5}))

	mine, err := f.orders.ForUser(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mug", mine[0].Product.ProductName)

	all, err := f.orders.AllWithRelations(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "bob@example.com", all[0].User.Email, "newest first")
	assert.Equal(t, "Mug", all[0].Product.ProductName)

	require.NoError(t, f.orders.UpdateStatus(ctx, first.ID, "shipped"))
	require.NoError(t, f.orders.UpdateStatus(ctx, first.ID, "shipped"), "unchanged value is not an error")
	assert.ErrorIs(t, f.orders.UpdateStatus(ctx, 999, "shipped"), repositories.ErrNotFound)

	mine, err = f.orders.ForUser(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "shipped", mine[0].Status)

	require.NoError(t, f.orders.Delete(ctx, first.ID))
	assert.ErrorIs(t, f.orders.Delete(ctx, first.ID), repositories.ErrNotFound)
}

func TestOrderRequiresExistingUserAndProduct(t *testing.T) {
	f := setup(t)
	err := f.orders.Create(context.Background(), &models.Order{UserID: 42, ProductID: 42, Quantity: 1})
	assert.Error(t, err, "foreign keys are enforced")
}

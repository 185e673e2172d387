package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avdeenko/aromashop/internal/models"
	"github.com/avdeenko/aromashop/internal/repo"
)

func TestCategoryCRUD(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	svc := &CatalogService{Repo: r}

	require.ErrorIs(t, svc.CreateCategory(ctx, &models.Category{Name: "Protein"}), ErrValidation)

	cat := models.Category{Name: "Protein", Slug: "protein", IsActive: true}
	require.NoError(t, svc.CreateCategory(ctx, &cat))

	dup := models.Category{Name: "Other", Slug: "protein"}
	require.ErrorIs(t, svc.CreateCategory(ctx, &dup), ErrConflict)

	cat.Name = "Protein powders"
	require.NoError(t, svc.UpdateCategory(ctx, &cat))

	missing := models.Category{Name: "Ghost", Slug: "ghost"}
	missing.ID = 9999
	require.ErrorIs(t, svc.UpdateCategory(ctx, &missing), ErrNotFound)
}

func TestProductAndVariantValidation(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	svc := &CatalogService{Repo: r}

	cat := models.Category{Name: "Protein", Slug: "protein", IsActive: true}
	require.NoError(t, svc.CreateCategory(ctx, &cat))

	p := models.Product{CategoryID: cat.ID, Name: "Whey", Slug: "whey", IsActive: true}
	require.NoError(t, svc.CreateProduct(ctx, &p))

	dup := models.Product{CategoryID: cat.ID, Name: "Whey 2", Slug: "whey"}
	require.ErrorIs(t, svc.CreateProduct(ctx, &dup), ErrConflict)

	v := models.ProductVariant{ProductID: p.ID, Name: "Vanilla", SKU: "WH-V", Price: 4500, StockCount: 10, IsActive: true}
	require.NoError(t, svc.CreateVariant(ctx, &v))

	bad := models.ProductVariant{ProductID: p.ID, Name: "Broken", SKU: "WH-B", Price: -1}
	require.ErrorIs(t, svc.CreateVariant(ctx, &bad), ErrValidation)

	overDiscount := models.ProductVariant{ProductID: p.ID, Name: "Broken", SKU: "WH-D", Price: 100, DiscountPercent: 150}
	require.ErrorIs(t, svc.CreateVariant(ctx, &overDiscount), ErrValidation)

	orphan := models.ProductVariant{ProductID: 9999, Name: "Orphan", SKU: "WH-O", Price: 100}
	require.ErrorIs(t, svc.CreateVariant(ctx, &orphan), ErrNotFound)

	skuDup := models.ProductVariant{ProductID: p.ID, Name: "Dup", SKU: "WH-V", Price: 100}
	require.ErrorIs(t, svc.CreateVariant(ctx, &skuDup), ErrConflict)
}

func TestListProductsFilter(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	svc := &CatalogService{Repo: r}

	cat := models.Category{Name: "Protein", Slug: "protein", IsActive: true}
	require.NoError(t, svc.CreateCategory(ctx, &cat))

	active := models.Product{CategoryID: cat.ID, Name: "Active", Slug: "active", IsActive: true}
	require.NoError(t, svc.CreateProduct(ctx, &active))
	hidden := models.Product{CategoryID: cat.ID, Name: "Hidden", Slug: "hidden", IsActive: false}
	require.NoError(t, svc.CreateProduct(ctx, &hidden))

	public, total, err := svc.ListProducts(ctx, repo.ProductFilter{ActiveOnly: true}, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Active", public[0].Name)

	all, total, err := svc.ListProducts(ctx, repo.ProductFilter{}, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, all, 2)
}

func TestUploadPhotoWithoutStore(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	_, err := svc.UploadPhoto(context.Background(), 1, "x.jpg", nil, 0, "image/jpeg", false)
	require.ErrorIs(t, err, ErrValidation)
}

func TestShippingMethods(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	svc := &CatalogService{Repo: r}

	require.ErrorIs(t, svc.CreateShippingMethod(ctx, &models.ShippingMethod{Code: "x"}), ErrValidation)

	m := models.ShippingMethod{Code: "courier", Name: "Courier", Price: 9900, IsActive: true}
	require.NoError(t, svc.CreateShippingMethod(ctx, &m))

	dup := models.ShippingMethod{Code: "courier", Name: "Again", Price: 100}
	require.ErrorIs(t, svc.CreateShippingMethod(ctx, &dup), ErrConflict)

	ms, err := svc.ListShippingMethods(ctx)
	require.NoError(t, err)
	require.Len(t, ms, 1)

	m.Name = "Courier express"
	m.Price = 12900
	require.NoError(t, svc.UpdateShippingMethod(ctx, &m))

	ms, err = svc.ListShippingMethods(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 12900, ms[0].Price)
	require.Equal(t, "Courier express", ms[0].Name)

	bad := models.ShippingMethod{Code: "courier", Price: 100}
	bad.ID = m.ID
	require.ErrorIs(t, svc.UpdateShippingMethod(ctx, &bad), ErrValidation)

	ghost := models.ShippingMethod{Code: "ghost", Name: "Ghost", Price: 100}
	ghost.ID = 9999
	require.ErrorIs(t, svc.UpdateShippingMethod(ctx, &ghost), ErrNotFound)

	require.NoError(t, svc.DeleteShippingMethod(ctx, m.ID))
	ms, err = svc.ListShippingMethods(ctx)
	require.NoError(t, err)
	require.Empty(t, ms)
}

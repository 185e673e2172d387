package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/avdeenko/aromashop/internal/models"
	"github.com/avdeenko/aromashop/internal/repo"
	"github.com/avdeenko/aromashop/internal/search"
	"github.com/avdeenko/aromashop/internal/storage"
)

// CatalogService is the category/product/variant/photo CRUD surface. Search
// index updates are best-effort side effects of product writes.
type CatalogService struct {
	Repo   *repo.GormRepo
	ES     *elasticsearch.Client
	Index  string
	Photos *storage.ObjectStore
}

func (s *CatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx, activeOnly)
}

func (s *CatalogService) CreateCategory(ctx context.Context, cat *models.Category) error {
	if cat.Name == "" || cat.Slug == "" {
		return fmt.Errorf("%w: name and slug are required", ErrValidation)
	}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		if repo.IsDuplicate(err) {
			return fmt.Errorf("%w: slug %q already exists", ErrConflict, cat.Slug)
		}
		return err
	}
	return nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, cat *models.Category) error {
	if _, err := s.Repo.GetCategory(ctx, cat.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category %d", ErrNotFound, cat.ID)
		}
		return err
	}
	return s.Repo.SaveCategory(ctx, cat)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return s.Repo.DeleteCategory(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, f repo.ProductFilter, limit, offset int) ([]models.Product, int64, error) {
	return s.Repo.ListProducts(ctx, f, limit, offset)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.Name == "" || p.Slug == "" {
		return fmt.Errorf("%w: name and slug are required", ErrValidation)
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		if repo.IsDuplicate(err) {
			return fmt.Errorf("%w: slug %q already exists", ErrConflict, p.Slug)
		}
		return err
	}
	s.reindex(ctx, p)
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p *models.Product) error {
	if _, err := s.GetProduct(ctx, p.ID); err != nil {
		return err
	}
	if err := s.Repo.SaveProduct(ctx, p); err != nil {
		return err
	}
	s.reindex(ctx, p)
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	if s.ES != nil {
		search.IndexAsync(ctx, func(ctx context.Context) error {
			return search.DeleteProduct(ctx, s.ES, s.Index, id)
		})
	}
	return nil
}

func (s *CatalogService) GetVariant(ctx context.Context, id uint) (*models.ProductVariant, error) {
	v, err := s.Repo.GetVariant(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: variant %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *CatalogService) CreateVariant(ctx context.Context, v *models.ProductVariant) error {
	if v.Name == "" || v.SKU == "" {
		return fmt.Errorf("%w: name and sku are required", ErrValidation)
	}
	if v.Price < 0 || v.DiscountPercent < 0 || v.DiscountPercent > 100 || v.StockCount < 0 {
		return fmt.Errorf("%w: invalid price, discount or stock", ErrValidation)
	}
	if _, err := s.GetProduct(ctx, v.ProductID); err != nil {
		return err
	}
	if err := s.Repo.CreateVariant(ctx, v); err != nil {
		if repo.IsDuplicate(err) {
			return fmt.Errorf("%w: sku %q already exists", ErrConflict, v.SKU)
		}
		return err
	}
	return nil
}

func (s *CatalogService) UpdateVariant(ctx context.Context, v *models.ProductVariant) error {
	if v.Price < 0 || v.DiscountPercent < 0 || v.DiscountPercent > 100 || v.StockCount < 0 {
		return fmt.Errorf("%w: invalid price, discount or stock", ErrValidation)
	}
	if _, err := s.GetVariant(ctx, v.ID); err != nil {
		return err
	}
	return s.Repo.SaveVariant(ctx, v)
}

func (s *CatalogService) DeleteVariant(ctx context.Context, id uint) error {
	return s.Repo.DeleteVariant(ctx, id)
}

// UploadPhoto stores the image in the object store and records its URL.
func (s *CatalogService) UploadPhoto(ctx context.Context, productID uint, filename string, r io.Reader, size int64, contentType string, isMain bool) (*models.ProductPhoto, error) {
	if s.Photos == nil {
		return nil, fmt.Errorf("%w: photo storage is not configured", ErrValidation)
	}
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	url, err := s.Photos.UploadPhoto(ctx, productID, filename, r, size, contentType)
	if err != nil {
		return nil, err
	}

	photo := &models.ProductPhoto{ProductID: productID, URL: url, IsMain: isMain}
	if err := s.Repo.CreatePhoto(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *CatalogService) DeletePhoto(ctx context.Context, id uint) error {
	return s.Repo.DeletePhoto(ctx, id)
}

func (s *CatalogService) ListShippingMethods(ctx context.Context) ([]models.ShippingMethod, error) {
	return s.Repo.ListShippingMethods(ctx)
}

func (s *CatalogService) CreateShippingMethod(ctx context.Context, m *models.ShippingMethod) error {
	if m.Code == "" || m.Name == "" || m.Price < 0 {
		return fmt.Errorf("%w: code, name and non-negative price are required", ErrValidation)
	}
	if err := s.Repo.CreateShippingMethod(ctx, m); err != nil {
		if repo.IsDuplicate(err) {
			return fmt.Errorf("%w: code %q already exists", ErrConflict, m.Code)
		}
		return err
	}
	return nil
}

func (s *CatalogService) UpdateShippingMethod(ctx context.Context, m *models.ShippingMethod) error {
	if m.Code == "" || m.Name == "" || m.Price < 0 {
		return fmt.Errorf("%w: code, name and non-negative price are required", ErrValidation)
	}
	if _, err := s.Repo.GetShippingMethod(ctx, m.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: shipping method %d", ErrNotFound, m.ID)
		}
		return err
	}
	if err := s.Repo.SaveShippingMethod(ctx, m); err != nil {
		if repo.IsDuplicate(err) {
			return fmt.Errorf("%w: code %q already exists", ErrConflict, m.Code)
		}
		return err
	}
	return nil
}

func (s *CatalogService) DeleteShippingMethod(ctx context.Context, id uint) error {
	return s.Repo.DeleteShippingMethod(ctx, id)
}

func (s *CatalogService) reindex(ctx context.Context, p *models.Product) {
	if s.ES == nil {
		return
	}
	doc := *p
	search.IndexAsync(ctx, func(ctx context.Context) error {
		return search.IndexProduct(ctx, s.ES, s.Index, &doc)
	})
}

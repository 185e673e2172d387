package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/avdeenko/aromashop/internal/models"
)

func (r *GormRepo) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	q := r.DB.WithContext(ctx).Model(&models.Category{})
	if activeOnly {
		q = q.Where("is_active")
	}
	var cats []models.Category
	if err := q.Order("name ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}

func (r *GormRepo) SaveCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Save(cat).Error
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Category{}, id).Error
}

type ProductFilter struct {
	CategoryID uint
	ActiveOnly bool
}

func (r *GormRepo) ListProducts(ctx context.Context, f ProductFilter, limit, offset int) ([]models.Product, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.ActiveOnly {
		q = q.Where("is_active")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Product
	if err := q.Preload("Variants").Preload("Photos", func(db *gorm.DB) *gorm.DB {
		return db.Order("product_photos.position ASC")
	}).Order("id ASC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).
		Preload("Variants").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_photos.position ASC")
		}).
		First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Select("Variants", "Photos").Delete(&models.Product{ID: id}).Error
}

func (r *GormRepo) GetVariant(ctx context.Context, id uint) (*models.ProductVariant, error) {
	var v models.ProductVariant
	if err := r.DB.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *GormRepo) CreateVariant(ctx context.Context, v *models.ProductVariant) error {
	return r.DB.WithContext(ctx).Create(v).Error
}

func (r *GormRepo) SaveVariant(ctx context.Context, v *models.ProductVariant) error {
	return r.DB.WithContext(ctx).Save(v).Error
}

func (r *GormRepo) DeleteVariant(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.ProductVariant{}, id).Error
}

func (r *GormRepo) CreatePhoto(ctx context.Context, p *models.ProductPhoto) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) DeletePhoto(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.ProductPhoto{}, id).Error
}

func (r *GormRepo) GetShippingMethodByCode(ctx context.Context, code string) (*models.ShippingMethod, error) {
	var m models.ShippingMethod
	if err := r.DB.WithContext(ctx).
		Where("code = ? AND is_active", code).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormRepo) GetShippingMethod(ctx context.Context, id uint) (*models.ShippingMethod, error) {
	var m models.ShippingMethod
	if err := r.DB.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormRepo) ListShippingMethods(ctx context.Context) ([]models.ShippingMethod, error) {
	var ms []models.ShippingMethod
	if err := r.DB.WithContext(ctx).Order("price ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}

func (r *GormRepo) CreateShippingMethod(ctx context.Context, m *models.ShippingMethod) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *GormRepo) SaveShippingMethod(ctx context.Context, m *models.ShippingMethod) error {
	return r.DB.WithContext(ctx).Save(m).Error
}

func (r *GormRepo) DeleteShippingMethod(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.ShippingMethod{}, id).Error
}

package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/avdeenko/aromashop/internal/models"
)

func (r *GormRepo) ListAddresses(ctx context.Context, userID uint) ([]models.UserAddress, error) {
	var addrs []models.UserAddress
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addrs).Error; err != nil {
		return nil, err
	}
	return addrs, nil
}

func (r *GormRepo) GetAddress(ctx context.Context, id uint) (*models.UserAddress, error) {
	var addr models.UserAddress
	if err := r.DB.WithContext(ctx).First(&addr, id).Error; err != nil {
		return nil, err
	}
	return &addr, nil
}

// CreateAddress inserts the address. The user's first address becomes the
// default; an explicit default demotes the previous one.
func (r *GormRepo) CreateAddress(ctx context.Context, addr *models.UserAddress) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.UserAddress{}).
			Where("user_id = ?", addr.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			addr.IsDefault = true
		} else if addr.IsDefault {
			if err := demoteDefault(tx, addr.UserID); err != nil {
				return err
			}
		}
		return tx.Create(addr).Error
	})
}

func (r *GormRepo) UpdateAddress(ctx context.Context, addr *models.UserAddress) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if addr.IsDefault {
			if err := demoteDefault(tx, addr.UserID); err != nil {
				return err
			}
		}
		return tx.Save(addr).Error
	})
}

// DeleteAddress removes the address; when it was the default, the most
// recent remaining address is promoted so the per-user default invariant
// survives deletion.
func (r *GormRepo) DeleteAddress(ctx context.Context, addr *models.UserAddress) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.UserAddress{}, addr.ID).Error; err != nil {
			return err
		}
		if !addr.IsDefault {
			return nil
		}

		var next models.UserAddress
		err := tx.Where("user_id = ?", addr.UserID).
			Order("created_at DESC").
			First(&next).Error
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&next).Update("is_default", true).Error
	})
}

func (r *GormRepo) SetDefaultAddress(ctx context.Context, userID, addressID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := demoteDefault(tx, userID); err != nil {
			return err
		}
		return tx.Model(&models.UserAddress{}).
			Where("id = ? AND user_id = ?", addressID, userID).
			Update("is_default", true).Error
	})
}

func demoteDefault(tx *gorm.DB, userID uint) error {
	return tx.Model(&models.UserAddress{}).
		Where("user_id = ? AND is_default", userID).
		Update("is_default", false).Error
}

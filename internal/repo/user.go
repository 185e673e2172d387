package repo

import (
	"context"

	"github.com/avdeenko/aromashop/internal/models"
)

func (r *GormRepo) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormRepo) GetUserEmail(ctx context.Context, id uint) (string, error) {
	u, err := r.GetUser(ctx, id)
	if err != nil {
		return "", err
	}
	return u.Email, nil
}

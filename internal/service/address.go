package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/avdeenko/aromashop/internal/models"
	"github.com/avdeenko/aromashop/internal/repo"
)

type AddressService struct {
	Repo *repo.GormRepo
}

func (s *AddressService) List(ctx context.Context, userID uint) ([]models.UserAddress, error) {
	return s.Repo.ListAddresses(ctx, userID)
}

func (s *AddressService) Create(ctx context.Context, addr *models.UserAddress) error {
	if addr.Recipient == "" || addr.City == "" || addr.Street == "" {
		return fmt.Errorf("%w: recipient, city and street are required", ErrValidation)
	}
	return s.Repo.CreateAddress(ctx, addr)
}

func (s *AddressService) Update(ctx context.Context, userID uint, addr *models.UserAddress) error {
	existing, err := s.owned(ctx, userID, addr.ID)
	if err != nil {
		return err
	}
	addr.UserID = existing.UserID
	addr.CreatedAt = existing.CreatedAt
	return s.Repo.UpdateAddress(ctx, addr)
}

func (s *AddressService) Delete(ctx context.Context, userID, addressID uint) error {
	addr, err := s.owned(ctx, userID, addressID)
	if err != nil {
		return err
	}
	return s.Repo.DeleteAddress(ctx, addr)
}

func (s *AddressService) SetDefault(ctx context.Context, userID, addressID uint) error {
	if _, err := s.owned(ctx, userID, addressID); err != nil {
		return err
	}
	return s.Repo.SetDefaultAddress(ctx, userID, addressID)
}

func (s *AddressService) owned(ctx context.Context, userID, addressID uint) (*models.UserAddress, error) {
	addr, err := s.Repo.GetAddress(ctx, addressID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: address %d", ErrNotFound, addressID)
	}
	if err != nil {
		return nil, err
	}
	if addr.UserID != userID {
		return nil, fmt.Errorf("%w: address belongs to another user", ErrForbidden)
	}
	return addr, nil
}

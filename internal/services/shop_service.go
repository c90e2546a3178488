package services

import (
	"context"

	"pos-backend/internal/apperrors"
	"pos-backend/internal/models"
	"pos-backend/internal/repositories"
)

type ShopService struct {
	Repo *repositories.ShopRepository
}

func NewShopService(repo *repositories.ShopRepository) *ShopService {
	return &ShopService{Repo: repo}
}

// AuthorizeShopAccess loads the shop and checks the caller may act on
// it: superusers reach every shop, everyone else only shops they own.
func (s *ShopService) AuthorizeShopAccess(ctx context.Context, shopID, userID int, role string) (*models.Shop, error) {
	shop, err := s.Repo.Get(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleSuperuser && shop.OwnerID != userID {
		return nil, apperrors.NotFound("shop %d not found", shopID)
	}
	return shop, nil
}

func (s *ShopService) CreateShop(ctx context.Context, ownerID int, req *models.CreateShopRequest) (*models.Shop, error) {
	if req.Name == "" {
		return nil, apperrors.Validation("shop name is required")
	}

	shop := &models.Shop{
		Name:     req.Name,
		Location: req.Location,
		Address:  req.Address,
		Phone:    req.Phone,
		OwnerID:  ownerID,
	}
	if err := s.Repo.Create(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// ListShops returns every shop for superusers, and only owned shops
// for everyone else.
func (s *ShopService) ListShops(ctx context.Context, userID int, role string) ([]*models.Shop, error) {
	if role == models.RoleSuperuser {
		return s.Repo.List(ctx)
	}
	return s.Repo.ListByOwner(ctx, userID)
}

func (s *ShopService) GetShop(ctx context.Context, shopID, userID int, role string) (*models.Shop, error) {
	return s.AuthorizeShopAccess(ctx, shopID, userID, role)
}

func (s *ShopService) UpdateShop(ctx context.Context, shopID, userID int, role string, req *models.UpdateShopRequest) (*models.Shop, error) {
	shop, err := s.AuthorizeShopAccess(ctx, shopID, userID, role)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, apperrors.Validation("shop name is required")
	}

	shop.Name = req.Name
	shop.Location = req.Location
	shop.Address = req.Address
	shop.Phone = req.Phone

	if err := s.Repo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *ShopService) DeleteShop(ctx context.Context, shopID, userID int, role string) error {
	if _, err := s.AuthorizeShopAccess(ctx, shopID, userID, role); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, shopID)
}

package services

import (
	"context"

	"github.com/shopspring/decimal"

	"pos-backend/internal/apperrors"
	"pos-backend/internal/models"
	"pos-backend/internal/repositories"
)

type InventoryService struct {
	Repo *repositories.InventoryRepository
}

func NewInventoryService(repo *repositories.InventoryRepository) *InventoryService {
	return &InventoryService{Repo: repo}
}

func validateInventoryFields(brand, model string, quantity, threshold int, cost, selling decimal.Decimal) error {
	if brand == "" || model == "" {
		return apperrors.Validation("brand and model are required")
	}
	if quantity < 0 {
		return apperrors.Validation("quantity cannot be negative")
	}
	if threshold < 0 {
		return apperrors.Validation("low stock threshold cannot be negative")
	}
	if cost.IsNegative() || selling.IsNegative() {
		return apperrors.Validation("prices cannot be negative")
	}
	return nil
}

func (s *InventoryService) AddItem(ctx context.Context, shopID int, req *models.CreateInventoryRequest) (*models.InventoryItem, error) {
	if err := validateInventoryFields(req.Brand, req.Model, req.Quantity, req.LowStockThreshold, req.CostPrice, req.SellingPrice); err != nil {
		return nil, err
	}

	cost := req.CostPrice
	item := &models.InventoryItem{
		ShopID:            shopID,
		Brand:             req.Brand,
		Model:             req.Model,
		Storage:           req.Storage,
		RAM:               req.RAM,
		Color:             req.Color,
		Quantity:          req.Quantity,
		CostPrice:         &cost,
		SellingPrice:      req.SellingPrice,
		LowStockThreshold: req.LowStockThreshold,
	}
	if err := s.Repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns the shop's stock with cost redacted for staff.
func (s *InventoryService) ListItems(ctx context.Context, shopID int, filter models.InventoryFilter, role string) ([]*models.InventoryItem, error) {
	items, err := s.Repo.ListByShop(ctx, shopID, filter)
	if err != nil {
		return nil, err
	}
	return RedactInventoryForViewer(items, role), nil
}

func (s *InventoryService) GetItem(ctx context.Context, id, shopID int, role string) (*models.InventoryItem, error) {
	item, err := s.Repo.GetForShop(ctx, id, shopID)
	if err != nil {
		return nil, err
	}
	redacted := RedactInventoryForViewer([]*models.InventoryItem{item}, role)
	return redacted[0], nil
}

// ResolveItem loads an item by id alone, for routes that are keyed by
// item id rather than shop. Callers must authorize against the
// returned ShopID before acting.
func (s *InventoryService) ResolveItem(ctx context.Context, id int) (*models.InventoryItem, error) {
	return s.Repo.Get(ctx, id)
}

func (s *InventoryService) UpdateItem(ctx context.Context, id, shopID int, req *models.UpdateInventoryRequest) (*models.InventoryItem, error) {
	item, err := s.Repo.GetForShop(ctx, id, shopID)
	if err != nil {
		return nil, err
	}
	if err := validateInventoryFields(req.Brand, req.Model, req.Quantity, req.LowStockThreshold, req.CostPrice, req.SellingPrice); err != nil {
		return nil, err
	}

	cost := req.CostPrice
	item.Brand = req.Brand
	item.Model = req.Model
	item.Storage = req.Storage
	item.RAM = req.RAM
	item.Color = req.Color
	item.Quantity = req.Quantity
	item.CostPrice = &cost
	item.SellingPrice = req.SellingPrice
	item.LowStockThreshold = req.LowStockThreshold

	if err := s.Repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *InventoryService) DeleteItem(ctx context.Context, id, shopID int) error {
	if _, err := s.Repo.GetForShop(ctx, id, shopID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

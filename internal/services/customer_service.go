package services

import (
	"context"

	"pos-backend/internal/apperrors"
	"pos-backend/internal/models"
	"pos-backend/internal/repositories"
)

type CustomerService struct {
	Repo *repositories.CustomerRepository
}

func NewCustomerService(repo *repositories.CustomerRepository) *CustomerService {
	return &CustomerService{Repo: repo}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, shopID int, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if req.Name == "" || req.Mobile == "" {
		return nil, apperrors.Validation("name and mobile are required")
	}

	customer := &models.Customer{
		ShopID:  shopID,
		Name:    req.Name,
		Mobile:  req.Mobile,
		Address: req.Address,
	}
	if err := s.Repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id, shopID int) (*models.Customer, error) {
	return s.Repo.GetForShop(ctx, id, shopID)
}

func (s *CustomerService) ListCustomers(ctx context.Context, shopID int) ([]*models.Customer, error) {
	return s.Repo.ListByShop(ctx, shopID)
}

// SearchCustomers matches by name or mobile for the counter lookup.
func (s *CustomerService) SearchCustomers(ctx context.Context, shopID int, query string) ([]*models.Customer, error) {
	if query == "" {
		return nil, apperrors.Validation("search query is required")
	}
	return s.Repo.Search(ctx, shopID, query)
}

package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pos-backend/internal/apperrors"
	"pos-backend/internal/models"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

const customerColumns = `id, shop_id, name, mobile, COALESCE(address, '') as address, created_at, updated_at`

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO customers(shop_id, name, mobile, address)
         VALUES($1, $2, $3, NULLIF($4, ''))
         RETURNING id, created_at, updated_at`,
		c.ShopID, c.Name, c.Mobile, c.Address,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetForShop fetches a customer scoped to a shop so one tenant can never
// reference another tenant's customer.
func (r *CustomerRepository) GetForShop(ctx context.Context, id, shopID int) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id=$1 AND shop_id=$2`, id, shopID)

	var c models.Customer
	err := row.Scan(&c.ID, &c.ShopID, &c.Name, &c.Mobile, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("customer %d not found in shop %d", id, shopID)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) ListByShop(ctx context.Context, shopID int) ([]*models.Customer, error) {
	return r.list(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE shop_id=$1 ORDER BY created_at DESC`, shopID)
}

// Search matches customers by name or mobile, capped at 10 rows for the
// checkout typeahead.
func (r *CustomerRepository) Search(ctx context.Context, shopID int, query string) ([]*models.Customer, error) {
	return r.list(ctx,
		`SELECT `+customerColumns+` FROM customers
         WHERE shop_id=$1 AND (name ILIKE '%' || $2 || '%' OR mobile ILIKE '%' || $2 || '%')
         ORDER BY created_at DESC LIMIT 10`, shopID, query)
}

func (r *CustomerRepository) list(ctx context.Context, sql string, args ...interface{}) ([]*models.Customer, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		var c models.Customer
		err := rows.Scan(&c.ID, &c.ShopID, &c.Name, &c.Mobile, &c.Address, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}

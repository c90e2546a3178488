package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"pos-backend/internal/apperrors"
	"pos-backend/internal/models"
)

type InventoryRepository struct {
	DB *pgxpool.Pool
}

func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{DB: db}
}

const inventoryColumns = `id, shop_id, brand, model, storage, ram, COALESCE(color, '') as color,
        quantity, cost_price, selling_price, low_stock_threshold, created_at, updated_at`

func scanInventoryItem(row pgx.Row) (*models.InventoryItem, error) {
	var item models.InventoryItem
	var cost decimal.Decimal
	err := row.Scan(&item.ID, &item.ShopID, &item.Brand, &item.Model, &item.Storage,
		&item.RAM, &item.Color, &item.Quantity, &cost, &item.SellingPrice,
		&item.LowStockThreshold, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.CostPrice = &cost
	return &item, nil
}

func (r *InventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO inventory(shop_id, brand, model, storage, ram, color, quantity,
                               cost_price, selling_price, low_stock_threshold)
         VALUES($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10)
         RETURNING id, created_at, updated_at`,
		item.ShopID, item.Brand, item.Model, item.Storage, item.RAM, item.Color,
		item.Quantity, item.CostPrice, item.SellingPrice, item.LowStockThreshold,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

// GetForShop fetches one inventory item scoped to a shop.
func (r *InventoryRepository) GetForShop(ctx context.Context, id, shopID int) (*models.InventoryItem, error) {
	item, err := scanInventoryItem(r.DB.QueryRow(ctx,
		`SELECT `+inventoryColumns+` FROM inventory WHERE id=$1 AND shop_id=$2`, id, shopID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("inventory item %d not found in shop %d", id, shopID)
	}
	return item, err
}

func (r *InventoryRepository) Get(ctx context.Context, id int) (*models.InventoryItem, error) {
	item, err := scanInventoryItem(r.DB.QueryRow(ctx,
		`SELECT `+inventoryColumns+` FROM inventory WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("inventory item %d not found", id)
	}
	return item, err
}

// ListByShop returns a shop's inventory, newest first, narrowed by the
// optional filter.
func (r *InventoryRepository) ListByShop(ctx context.Context, shopID int, filter models.InventoryFilter) ([]*models.InventoryItem, error) {
	sql := `SELECT ` + inventoryColumns + ` FROM inventory WHERE shop_id=$1`
	args := []interface{}{shopID}

	if filter.Brand != "" {
		args = append(args, filter.Brand)
		sql += fmt.Sprintf(" AND brand ILIKE $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, filter.Search)
		n := len(args)
		sql += fmt.Sprintf(" AND (brand ILIKE '%%' || $%d || '%%' OR model ILIKE '%%' || $%d || '%%')", n, n)
	}
	if filter.LowStock {
		sql += " AND quantity <= low_stock_threshold"
	}
	sql += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CountLowStock returns how many items in a shop sit at or below their
// low stock threshold.
func (r *InventoryRepository) CountLowStock(ctx context.Context, shopID int) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory WHERE shop_id=$1 AND quantity <= low_stock_threshold`,
		shopID).Scan(&n)
	return n, err
}

func (r *InventoryRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE inventory SET brand=$1, model=$2, storage=$3, ram=$4, color=NULLIF($5, ''),
                quantity=$6, cost_price=$7, selling_price=$8, low_stock_threshold=$9,
                updated_at=CURRENT_TIMESTAMP
         WHERE id=$10`,
		item.Brand, item.Model, item.Storage, item.RAM, item.Color, item.Quantity,
		item.CostPrice, item.SellingPrice, item.LowStockThreshold, item.ID)
	return err
}

func (r *InventoryRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM inventory WHERE id=$1`, id)
	return err
}

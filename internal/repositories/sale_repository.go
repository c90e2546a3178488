package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"pos-backend/internal/apperrors"
	"pos-backend/internal/models"
)

type SaleRepository struct {
	DB *pgxpool.Pool
}

func NewSaleRepository(db *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{DB: db}
}

// CreateSale persists a sale header plus its lines and decrements stock,
// all in one transaction. Inventory rows are locked in ascending id
// order so two concurrent carts touching the same items cannot
// deadlock; stock is re-checked after the lock is acquired, so a
// concurrent sale that drained an item fails here with
// InsufficientStockError and the whole transaction rolls back.
func (r *SaleRepository) CreateSale(ctx context.Context, sale *models.Sale, items []*models.SaleItem) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return translatePgError(err)
	}
	defer tx.Rollback(ctx)

	// Lock inventory rows and capture on-hand quantities.
	requested := make(map[int]int)
	for _, item := range items {
		requested[item.InventoryID] += item.Quantity
	}
	ids := make([]int, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	available := make(map[int]int, len(ids))
	for _, id := range ids {
		var qty int
		err := tx.QueryRow(ctx,
			`SELECT quantity FROM inventory WHERE id=$1 AND shop_id=$2 FOR UPDATE`,
			id, sale.ShopID).Scan(&qty)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("inventory item %d not found in shop %d", id, sale.ShopID)
		}
		if err != nil {
			return translatePgError(err)
		}
		available[id] = qty
	}
	for _, id := range ids {
		if requested[id] > available[id] {
			return &apperrors.InsufficientStockError{
				InventoryID: id,
				Available:   available[id],
				Requested:   requested[id],
			}
		}
	}

	if sale.InvoiceCode == "" {
		code, err := nextInvoiceCode(ctx, tx)
		if err != nil {
			return translatePgError(err)
		}
		sale.InvoiceCode = code
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO sales(shop_id, customer_id, invoice_code, total_amount, total_profit)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		sale.ShopID, sale.CustomerID, sale.InvoiceCode, sale.TotalAmount, sale.TotalProfit,
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return translatePgError(err)
	}

	for _, item := range items {
		err = tx.QueryRow(ctx,
			`INSERT INTO sale_items(sale_id, inventory_id, brand, model, variant, quantity, unit_price, cost_price)
             VALUES($1, $2, $3, $4, $5, $6, $7, $8)
             RETURNING id, created_at`,
			sale.ID, item.InventoryID, item.Brand, item.Model, item.Variant,
			item.Quantity, item.UnitPrice, item.CostPrice,
		).Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			return translatePgError(err)
		}
		item.SaleID = sale.ID

		// Conditional decrement backs up the locked re-check; a zero
		// row count here means the stock moved underneath us.
		tag, err := tx.Exec(ctx,
			`UPDATE inventory SET quantity = quantity - $1, updated_at=CURRENT_TIMESTAMP
             WHERE id=$2 AND quantity >= $1`,
			item.Quantity, item.InventoryID)
		if err != nil {
			return translatePgError(err)
		}
		if tag.RowsAffected() == 0 {
			return &apperrors.InsufficientStockError{
				InventoryID: item.InventoryID,
				Available:   available[item.InventoryID],
				Requested:   requested[item.InventoryID],
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return translatePgError(err)
	}
	return nil
}

// nextInvoiceCode draws from the invoice_code_seq sequence for O(1),
// collision-free codes.
func nextInvoiceCode(ctx context.Context, tx pgx.Tx) (string, error) {
	var next int64
	if err := tx.QueryRow(ctx, `SELECT nextval('invoice_code_seq')`).Scan(&next); err != nil {
		return "", fmt.Errorf("failed to get next invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%06d", next), nil
}

// ListByShop returns a shop's sales newest first, with customer and
// lines attached. Nil bounds leave that side of the range open.
func (r *SaleRepository) ListByShop(ctx context.Context, shopID int, from, to *time.Time) ([]*models.SaleWithDetails, error) {
	sql := `SELECT s.id, s.shop_id, s.customer_id, s.invoice_code, s.total_amount, s.total_profit, s.created_at,
                   c.id, c.shop_id, c.name, c.mobile, COALESCE(c.address, ''), c.created_at, c.updated_at
            FROM sales s
            JOIN customers c ON s.customer_id = c.id
            WHERE s.shop_id = $1`
	args := []interface{}{shopID}

	if from != nil {
		args = append(args, *from)
		sql += fmt.Sprintf(" AND s.created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		sql += fmt.Sprintf(" AND s.created_at <= $%d", len(args))
	}
	sql += " ORDER BY s.created_at DESC"

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*models.SaleWithDetails
	var saleIDs []int
	for rows.Next() {
		var s models.SaleWithDetails
		var c models.Customer
		var profit decimal.Decimal
		err := rows.Scan(&s.ID, &s.ShopID, &s.CustomerID, &s.InvoiceCode, &s.TotalAmount, &profit, &s.CreatedAt,
			&c.ID, &c.ShopID, &c.Name, &c.Mobile, &c.Address, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		s.TotalProfit = &profit
		s.Customer = &c
		s.Items = []*models.SaleItem{}
		sales = append(sales, &s)
		saleIDs = append(saleIDs, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return sales, nil
	}

	items, err := r.listItems(ctx, saleIDs)
	if err != nil {
		return nil, err
	}
	bySale := make(map[int][]*models.SaleItem, len(sales))
	for _, item := range items {
		bySale[item.SaleID] = append(bySale[item.SaleID], item)
	}
	for _, s := range sales {
		if lines, ok := bySale[s.ID]; ok {
			s.Items = lines
		}
	}
	return sales, nil
}

func (r *SaleRepository) listItems(ctx context.Context, saleIDs []int) ([]*models.SaleItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, sale_id, inventory_id, brand, model, variant, quantity, unit_price, cost_price, created_at
         FROM sale_items WHERE sale_id = ANY($1) ORDER BY id`, saleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.SaleItem
	for rows.Next() {
		var item models.SaleItem
		var cost decimal.Decimal
		err := rows.Scan(&item.ID, &item.SaleID, &item.InventoryID, &item.Brand, &item.Model,
			&item.Variant, &item.Quantity, &item.UnitPrice, &cost, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		item.CostPrice = &cost
		items = append(items, &item)
	}
	return items, rows.Err()
}

// Summarize aggregates the ledger for the dashboard report.
func (r *SaleRepository) Summarize(ctx context.Context, shopID int, from, to *time.Time) (*models.ShopSummary, error) {
	sql := `SELECT COUNT(*),
                   COALESCE(SUM(total_amount), 0),
                   COALESCE(SUM(total_profit), 0)
            FROM sales WHERE shop_id = $1`
	args := []interface{}{shopID}
	if from != nil {
		args = append(args, *from)
		sql += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		sql += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	summary := &models.ShopSummary{ShopID: shopID}
	var profit decimal.Decimal
	err := r.DB.QueryRow(ctx, sql, args...).Scan(&summary.SalesCount, &summary.TotalRevenue, &profit)
	if err != nil {
		return nil, err
	}
	summary.TotalProfit = &profit

	itemSQL := `SELECT COALESCE(SUM(si.quantity), 0)
                FROM sale_items si JOIN sales s ON si.sale_id = s.id
                WHERE s.shop_id = $1`
	topSQL := `SELECT si.brand, si.model, SUM(si.quantity) AS units
               FROM sale_items si JOIN sales s ON si.sale_id = s.id
               WHERE s.shop_id = $1`
	itemArgs := []interface{}{shopID}
	if from != nil {
		itemArgs = append(itemArgs, *from)
		cond := fmt.Sprintf(" AND s.created_at >= $%d", len(itemArgs))
		itemSQL += cond
		topSQL += cond
	}
	if to != nil {
		itemArgs = append(itemArgs, *to)
		cond := fmt.Sprintf(" AND s.created_at <= $%d", len(itemArgs))
		itemSQL += cond
		topSQL += cond
	}
	topSQL += " GROUP BY si.brand, si.model ORDER BY units DESC LIMIT 5"

	if err := r.DB.QueryRow(ctx, itemSQL, itemArgs...).Scan(&summary.UnitsSold); err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, topSQL, itemArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var tm models.TopModel
		if err := rows.Scan(&tm.Brand, &tm.Model, &tm.UnitsSold); err != nil {
			return nil, err
		}
		summary.TopModels = append(summary.TopModels, tm)
	}
	return summary, rows.Err()
}

// translatePgError maps serialization and lock failures to the
// retryable conflict kind; everything else passes through.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return apperrors.Conflict("concurrent checkout conflict, retry the sale")
		}
	}
	return err
}

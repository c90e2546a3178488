package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"pos-backend/internal/apperrors"
	"pos-backend/internal/cache"
	"pos-backend/internal/models"
	"pos-backend/internal/repositories"
	"pos-backend/internal/timeutil"
)

// ReportService answers ledger queries: sale listings, dashboard
// summaries and CSV exports. Everything it returns is redacted for the
// viewer's role before leaving the service.
type ReportService struct {
	SaleRepo      *repositories.SaleRepository
	InventoryRepo *repositories.InventoryRepository
}

func NewReportService(saleRepo *repositories.SaleRepository, inventoryRepo *repositories.InventoryRepository) *ReportService {
	return &ReportService{
		SaleRepo:      saleRepo,
		InventoryRepo: inventoryRepo,
	}
}

// DateRange is an inclusive calendar range; zero bounds are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// ParseDateRange interprets startDate/endDate query values as inclusive
// IST calendar days.
func ParseDateRange(startDate, endDate string) (DateRange, error) {
	var dr DateRange
	if startDate != "" {
		t, err := timeutil.ParseDate(startDate)
		if err != nil {
			return dr, apperrors.Validation("invalid startDate %q: expected YYYY-MM-DD", startDate)
		}
		from := timeutil.StartOfDay(t)
		dr.From = &from
	}
	if endDate != "" {
		t, err := timeutil.ParseDate(endDate)
		if err != nil {
			return dr, apperrors.Validation("invalid endDate %q: expected YYYY-MM-DD", endDate)
		}
		to := timeutil.EndOfDay(t)
		dr.To = &to
	}
	return dr, nil
}

func (dr DateRange) cacheKey() string {
	from, to := "open", "open"
	if dr.From != nil {
		from = dr.From.Format(timeutil.DateLayout)
	}
	if dr.To != nil {
		to = dr.To.Format(timeutil.DateLayout)
	}
	return from + ":" + to
}

// ListSales returns a shop's sales newest first, redacted for the role.
func (s *ReportService) ListSales(ctx context.Context, shopID int, dr DateRange, role string) ([]*models.SaleWithDetails, error) {
	sales, err := s.SaleRepo.ListByShop(ctx, shopID, dr.From, dr.To)
	if err != nil {
		return nil, err
	}
	return RedactSalesForViewer(sales, role), nil
}

// Summary aggregates the ledger and low-stock count for the dashboard.
// The unredacted aggregate is cached briefly; redaction happens on the
// way out so the cache stays role-agnostic.
func (s *ReportService) Summary(ctx context.Context, shopID int, dr DateRange, role string) (*models.ShopSummary, error) {
	rangeKey := dr.cacheKey()

	if data, ok := cache.GetCachedShopSummary(ctx, shopID, rangeKey); ok {
		var summary models.ShopSummary
		if err := json.Unmarshal(data, &summary); err == nil {
			return RedactSummaryForViewer(&summary, role), nil
		}
	}

	summary, err := s.SaleRepo.Summarize(ctx, shopID, dr.From, dr.To)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.InventoryRepo.CountLowStock(ctx, shopID)
	if err != nil {
		return nil, err
	}
	summary.LowStockCount = lowStock

	if data, err := json.Marshal(summary); err == nil {
		cache.CacheShopSummary(ctx, shopID, rangeKey, data)
	}

	return RedactSummaryForViewer(summary, role), nil
}

// ExportSalesCSV renders the (redacted) ledger as CSV, one row per sale
// line. Profit columns appear only for viewers who may see them.
func (s *ReportService) ExportSalesCSV(ctx context.Context, shopID int, dr DateRange, role string) ([]byte, error) {
	sales, err := s.ListSales(ctx, shopID, dr, role)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"invoice_code", "date", "customer", "mobile", "brand", "model", "variant", "quantity", "unit_price", "line_total"}
	withProfit := models.CanSeeProfit(role)
	if withProfit {
		header = append(header, "cost_price", "line_profit")
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, sale := range sales {
		customerName, customerMobile := "", ""
		if sale.Customer != nil {
			customerName = sale.Customer.Name
			customerMobile = sale.Customer.Mobile
		}
		for _, item := range sale.Items {
			qty := int64(item.Quantity)
			lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(qty))
			record := []string{
				sale.InvoiceCode,
				sale.CreatedAt.In(timeutil.IST).Format(timeutil.DateLayout),
				customerName,
				customerMobile,
				item.Brand,
				item.Model,
				item.Variant,
				fmt.Sprintf("%d", item.Quantity),
				item.UnitPrice.StringFixed(2),
				lineTotal.StringFixed(2),
			}
			if withProfit && item.CostPrice != nil {
				lineProfit := item.UnitPrice.Sub(*item.CostPrice).Mul(decimal.NewFromInt(qty))
				record = append(record, item.CostPrice.StringFixed(2), lineProfit.StringFixed(2))
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

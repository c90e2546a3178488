package handlers

import (
	"net/http"

	"pos-backend/internal/models"
	"pos-backend/internal/services"
	"pos-backend/pkg/utils"
)

type SaleHandler struct {
	Checkout *services.CheckoutService
	Reports  *services.ReportService
	Shops    *services.ShopService
}

func NewSaleHandler(checkout *services.CheckoutService, reports *services.ReportService, shops *services.ShopService) *SaleHandler {
	return &SaleHandler{Checkout: checkout, Reports: reports, Shops: shops}
}

// Create runs a checkout: validates the cart, persists the sale and
// decrements stock in one transaction, then returns the receipt with
// profit fields redacted for staff.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, err := resolveShopScope(r, h.Shops)
	if err != nil {
		utils.Error(w, err)
		return
	}

	var req models.CreateSaleRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	sale, err := h.Checkout.CreateSale(r.Context(), scope.ShopID, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	redacted := services.RedactSalesForViewer([]*models.SaleWithDetails{sale}, scope.Role)
	utils.JSON(w, http.StatusCreated, redacted[0])
}

func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, err := resolveShopScope(r, h.Shops)
	if err != nil {
		utils.Error(w, err)
		return
	}

	q := r.URL.Query()
	dr, err := services.ParseDateRange(q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	sales, err := h.Reports.ListSales(r.Context(), scope.ShopID, dr, scope.Role)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, sales)
}

// Export streams the sales for the range as CSV. Staff exports omit
// the cost and profit columns entirely.
func (h *SaleHandler) Export(w http.ResponseWriter, r *http.Request) {
	scope, err := resolveShopScope(r, h.Shops)
	if err != nil {
		utils.Error(w, err)
		return
	}

	q := r.URL.Query()
	dr, err := services.ParseDateRange(q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	data, err := h.Reports.ExportSalesCSV(r.Context(), scope.ShopID, dr, scope.Role)
	if err != nil {
		utils.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="sales.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

package handlers

import (
	"net/http"

	"pos-backend/internal/models"
	"pos-backend/internal/services"
	"pos-backend/pkg/utils"
)

type CustomerHandler struct {
	Service *services.CustomerService
	Shops   *services.ShopService
}

func NewCustomerHandler(s *services.CustomerService, shops *services.ShopService) *CustomerHandler {
	return &CustomerHandler{Service: s, Shops: shops}
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, err := resolveShopScope(r, h.Shops)
	if err != nil {
		utils.Error(w, err)
		return
	}

	var req models.CreateCustomerRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	customer, err := h.Service.CreateCustomer(r.Context(), scope.ShopID, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, customer)
}

// List returns the shop's customers; with ?search= it becomes the
// counter's name/mobile lookup instead.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, err := resolveShopScope(r, h.Shops)
	if err != nil {
		utils.Error(w, err)
		return
	}

	if query := r.URL.Query().Get("search"); query != "" {
		customers, err := h.Service.SearchCustomers(r.Context(), scope.ShopID, query)
		if err != nil {
			utils.Error(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, customers)
		return
	}

	customers, err := h.Service.ListCustomers(r.Context(), scope.ShopID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, err := resolveShopScope(r, h.Shops)
	if err != nil {
		utils.Error(w, err)
		return
	}

	id, err := pathInt(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	customer, err := h.Service.GetCustomer(r.Context(), id, scope.ShopID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

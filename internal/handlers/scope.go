package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"pos-backend/internal/apperrors"
	"pos-backend/internal/middleware"
	"pos-backend/internal/services"
)

// requestScope is the resolved identity plus the shop a request acts
// on. Every shop-scoped handler goes through resolveShopScope so
// tenancy is enforced in exactly one place.
type requestScope struct {
	UserID int
	Role   string
	ShopID int
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("invalid %s", name)
	}
	return id, nil
}

func resolveShopScope(r *http.Request, shops *services.ShopService) (*requestScope, error) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return nil, apperrors.Validation("missing authentication context")
	}
	role, _ := middleware.GetRoleFromContext(r.Context())

	shopID, err := pathInt(r, "shopId")
	if err != nil {
		return nil, err
	}
	if _, err := shops.AuthorizeShopAccess(r.Context(), shopID, userID, role); err != nil {
		return nil, err
	}

	return &requestScope{UserID: userID, Role: role, ShopID: shopID}, nil
}

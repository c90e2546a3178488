package handlers

import (
	"log"
	"net/http"
	"strings"

	"pos-backend/internal/middleware"
	"pos-backend/internal/models"
	"pos-backend/internal/repositories"
	"pos-backend/internal/services"
	"pos-backend/pkg/utils"
)

type AuthHandler struct {
	Service      *services.UserService
	LoginLogRepo *repositories.LoginLogRepository
}

func NewAuthHandler(s *services.UserService, loginLogRepo *repositories.LoginLogRepository) *AuthHandler {
	return &AuthHandler{
		Service:      s,
		LoginLogRepo: loginLogRepo,
	}
}

// Signup handles user registration
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	authResp, err := h.Service.Signup(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, authResp)
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	authResp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	// Record the login; failure here must not fail the login itself.
	if err := h.LoginLogRepo.Create(r.Context(), authResp.User.ID, getIPAddress(r), r.UserAgent()); err != nil {
		log.Printf("[Auth] failed to record login for user %d: %v", authResp.User.ID, err)
	}

	utils.JSON(w, http.StatusOK, authResp)
}

// Me returns the authenticated principal.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, user)
}

// ListLoginLogs returns the most recent logins for the audit view.
func (h *AuthHandler) ListLoginLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.LoginLogRepo.List(r.Context(), 100)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, logs)
}

// getIPAddress extracts the real IP address from the request
func getIPAddress(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs, take the first one
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	return r.RemoteAddr
}

package api

import (
	"encoding/json"
	"net/http"

	apperrors "utsavia/internal/errors"
	"utsavia/internal/service"
)

type AdminAuthHandler struct {
	service service.AdminAuthService
}

func NewAdminAuthHandler(svc service.AdminAuthService) *AdminAuthHandler {
	return &AdminAuthHandler{service: svc}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation("invalid request body"))
		return
	}

	token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		apperrors.WriteJSON(w, apperrors.ErrUnauthorized("invalid credentials"))
		return
	}

	// The frontend also keeps the token in a cookie so browser navigation
	// to admin pages stays authenticated.
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, LoginResponse{Token: token})
}

func (h *AdminAuthHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation("invalid request body"))
		return
	}

	if err := h.service.CreateAdmin(req.Email, req.Password, req.Role); err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation(err.Error()))
		return
	}
	respondJSON(w, http.StatusCreated, MessageResponse{Message: "Admin registered successfully"})
}

func (h *AdminAuthHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.service.ListAdmins()
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, admins)
}

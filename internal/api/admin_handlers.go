package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"utsavia/internal/db"
	apperrors "utsavia/internal/errors"
	"utsavia/internal/service"
)

type AdminHandler struct {
	Service *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	status := r.URL.Query().Get("status")
	city := r.URL.Query().Get("city")
	bookings, err := h.Service.ListBookings(date, status, city)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}

func (h *AdminHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation("invalid request body"))
		return
	}
	if err := h.Service.UpdateBookingStatus(code, req.Status); err != nil {
		apperrors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Booking updated"})
}

func (h *AdminHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation("invalid booking id"))
		return
	}
	if err := h.Service.DeleteBooking(id); err != nil {
		apperrors.WriteJSON(w, apperrors.ErrNotFound("booking not found"))
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Booking deleted"})
}

func (h *AdminHandler) CreateTheme(w http.ResponseWriter, r *http.Request) {
	var theme db.Theme
	if err := json.NewDecoder(r.Body).Decode(&theme); err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation("invalid request body"))
		return
	}
	if err := h.Service.CreateTheme(&theme); err != nil {
		apperrors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, theme)
}

func (h *AdminHandler) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation("invalid theme id"))
		return
	}
	var theme db.Theme
	if err := json.NewDecoder(r.Body).Decode(&theme); err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation("invalid request body"))
		return
	}
	theme.ID = id
	if err := h.Service.UpdateTheme(&theme); err != nil {
		apperrors.WriteJSON(w, apperrors.ErrNotFound("theme not found"))
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Theme updated"})
}

func (h *AdminHandler) DeleteTheme(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation("invalid theme id"))
		return
	}
	if err := h.Service.DeleteTheme(id); err != nil {
		apperrors.WriteJSON(w, apperrors.ErrNotFound("theme not found"))
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Theme deleted"})
}

func (h *AdminHandler) CreatePortfolioItem(w http.ResponseWriter, r *http.Request) {
	var item db.PortfolioItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation("invalid request body"))
		return
	}
	if err := h.Service.CreatePortfolioItem(&item); err != nil {
		apperrors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *AdminHandler) UpdatePortfolioItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation("invalid portfolio id"))
		return
	}
	var item db.PortfolioItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation("invalid request body"))
		return
	}
	item.ID = id
	if err := h.Service.UpdatePortfolioItem(&item); err != nil {
		apperrors.WriteJSON(w, apperrors.ErrNotFound("portfolio item not found"))
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Portfolio item updated"})
}

func (h *AdminHandler) DeletePortfolioItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation("invalid portfolio id"))
		return
	}
	if err := h.Service.DeletePortfolioItem(id); err != nil {
		apperrors.WriteJSON(w, apperrors.ErrNotFound("portfolio item not found"))
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Portfolio item deleted"})
}

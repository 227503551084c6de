package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"utsavia/internal/entities"
	apperrors "utsavia/internal/errors"
	"utsavia/internal/repository"
	"utsavia/internal/service"
	"utsavia/internal/utils"
)

type UserBookingHandler struct {
	Bookings     *service.BookingService
	Availability *service.AvailabilityService
	Pricing      *service.PricingService
	Catalog      *repository.CatalogRepository
}

func NewUserBookingHandler(bookings *service.BookingService, availability *service.AvailabilityService,
	pricing *service.PricingService, catalog *repository.CatalogRepository) *UserBookingHandler {
	return &UserBookingHandler{
		Bookings:     bookings,
		Availability: availability,
		Pricing:      pricing,
		Catalog:      catalog,
	}
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// CheckAvailability returns the annotated slot catalogue for a date. A
// missing date is a VALIDATION_ERROR; an unparseable or past date is an
// INVALID_DATE. Both map to 400 with the structured envelope.
func (h *UserBookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req entities.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation("invalid request body"))
		return
	}
	result, err := h.Availability.CheckAvailability(req)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *UserBookingHandler) EstimatePrice(w http.ResponseWriter, r *http.Request) {
	var req entities.PricingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation("invalid request body"))
		return
	}
	estimate := h.Pricing.EstimatePrice(req)
	respondJSON(w, http.StatusOK, EstimateResponse{
		Estimate:  estimate,
		Formatted: utils.FormatINR(estimate),
	})
}

func (h *UserBookingHandler) PriceBreakdown(w http.ResponseWriter, r *http.Request) {
	var req entities.PricingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation("invalid request body"))
		return
	}
	breakdown := h.Pricing.CalculateBreakdown(req, h.Catalog.GetAddonPrice)
	respondJSON(w, http.StatusOK, breakdown)
}

func (h *UserBookingHandler) GetBudgetRanges(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Pricing.BudgetRanges())
}

func (h *UserBookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation("invalid request body"))
		return
	}
	session, err := h.Bookings.CreateBooking(&req)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

func (h *UserBookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	email := r.URL.Query().Get("email")
	if email == "" {
		apperrors.WriteJSON(w, apperrors.ErrValidation("email query parameter is required"))
		return
	}
	booking, err := h.Bookings.GetBookingByCode(code, email)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *UserBookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := h.Bookings.CancelBooking(code); err != nil {
		apperrors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Booking cancelled"})
}

func (h *UserBookingHandler) ListThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := h.Catalog.GetThemes(r.URL.Query().Get("occasion"))
	if err != nil {
		log.Error().Err(err).Msg("error listing themes")
		apperrors.WriteJSON(w, apperrors.ErrInternal("could not list themes"))
		return
	}
	respondJSON(w, http.StatusOK, themes)
}

func (h *UserBookingHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.WriteJSON(w, apperrors.ErrValidation("invalid theme id"))
		return
	}
	theme, err := h.Catalog.GetThemeByID(id)
	if err != nil {
		apperrors.WriteJSON(w, apperrors.ErrNotFound("theme not found"))
		return
	}
	respondJSON(w, http.StatusOK, theme)
}

func (h *UserBookingHandler) ListPortfolio(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.GetPortfolioItems()
	if err != nil {
		log.Error().Err(err).Msg("error listing portfolio")
		apperrors.WriteJSON(w, apperrors.ErrInternal("could not list portfolio"))
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *UserBookingHandler) ListAddons(w http.ResponseWriter, r *http.Request) {
	addons, err := h.Catalog.GetAddons()
	if err != nil {
		log.Error().Err(err).Msg("error listing addons")
		apperrors.WriteJSON(w, apperrors.ErrInternal("could not list addons"))
		return
	}
	respondJSON(w, http.StatusOK, addons)
}

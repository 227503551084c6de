package service

import (
	"utsavia/internal/db"
	"utsavia/internal/entities"
	apperrors "utsavia/internal/errors"
	"utsavia/internal/repository"
)

type AdminService struct {
	bookingRepo *repository.BookingRepository
	catalogRepo *repository.CatalogRepository
}

func NewAdminService(bookingRepo *repository.BookingRepository, catalogRepo *repository.CatalogRepository) *AdminService {
	return &AdminService{bookingRepo: bookingRepo, catalogRepo: catalogRepo}
}

func (s *AdminService) ListBookings(date, status, city string) (*entities.BookingsList, error) {
	bookings, err := s.bookingRepo.ListBookings(date, status, city)
	if err != nil {
		return nil, err
	}
	return &entities.BookingsList{Total: len(bookings), Bookings: bookings}, nil
}

// UpdateBookingStatus is the admin override for walking a booking through
// its lifecycle (confirm, start, complete). Validation of allowed statuses
// only; transition ordering is left to the operator.
func (s *AdminService) UpdateBookingStatus(code, status string) error {
	switch status {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
	default:
		return apperrors.ErrValidation("unknown booking status '" + status + "'")
	}
	booking, err := s.bookingRepo.GetBookingByCodeOnly(code)
	if err != nil {
		return apperrors.ErrNotFound("booking not found")
	}
	return s.bookingRepo.UpdateBookingStatus(booking.ID, status)
}

func (s *AdminService) DeleteBooking(id int) error {
	return s.bookingRepo.DeleteBookingByID(id)
}

func (s *AdminService) CreateTheme(t *db.Theme) error {
	if t.Name == "" {
		return apperrors.ErrValidation("theme name is required")
	}
	return s.catalogRepo.CreateTheme(t)
}

func (s *AdminService) UpdateTheme(t *db.Theme) error {
	return s.catalogRepo.UpdateTheme(t)
}

func (s *AdminService) DeleteTheme(id int) error {
	return s.catalogRepo.DeleteTheme(id)
}

func (s *AdminService) CreatePortfolioItem(p *db.PortfolioItem) error {
	if p.Title == "" {
		return apperrors.ErrValidation("portfolio title is required")
	}
	return s.catalogRepo.CreatePortfolioItem(p)
}

func (s *AdminService) UpdatePortfolioItem(p *db.PortfolioItem) error {
	return s.catalogRepo.UpdatePortfolioItem(p)
}

func (s *AdminService) DeletePortfolioItem(id int) error {
	return s.catalogRepo.DeletePortfolioItem(id)
}

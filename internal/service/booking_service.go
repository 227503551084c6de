package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"utsavia/internal/db"
	"utsavia/internal/entities"
	apperrors "utsavia/internal/errors"
	"utsavia/internal/repository"
)

const (
	paymentPending   = "pending"
	paymentSucceeded = "succeeded"
	paymentRefunded  = "refunded"

	// Pending bookings past this age without a paid deposit are swept.
	stalePendingAge = 24 * time.Hour

	cancellationNotice = 24 * time.Hour
	maxAdvanceBooking  = 365 * 24 * time.Hour
)

type BookingService struct {
	Repo         *repository.BookingRepository
	catalogRepo  *repository.CatalogRepository
	availability *AvailabilityService
	pricing      *PricingService
	stripe       *StripeService
	sender       *SenderService
	now          func() time.Time
}

func NewBookingService(
	repo *repository.BookingRepository,
	catalogRepo *repository.CatalogRepository,
	availability *AvailabilityService,
	pricing *PricingService,
	stripe *StripeService,
	sender *SenderService,
) *BookingService {
	return &BookingService{
		Repo:         repo,
		catalogRepo:  catalogRepo,
		availability: availability,
		pricing:      pricing,
		stripe:       stripe,
		sender:       sender,
		now:          time.Now,
	}
}

// CreateBooking validates the request, re-checks the chosen window against
// the current booking set, prices the event and persists a pending booking
// together with a Stripe checkout session for the token deposit.
//
// The availability re-check narrows but does not close the race between two
// concurrent callers; the bookings table's exclusion constraint on
// (event_date, city, time range) is the final arbiter.
func (s *BookingService) CreateBooking(req *entities.BookingRequest) (*entities.CheckoutSessionResponse, error) {
	if herr := validateBookingRequest(req, s.now()); herr != nil {
		return nil, herr
	}

	slotFree, err := s.isWindowAvailable(req)
	if err != nil {
		return nil, err
	}
	if !slotFree {
		return nil, apperrors.ErrConflict("the selected time slot is no longer available")
	}

	breakdown := s.pricing.CalculateBreakdown(entities.PricingRequest{
		Occasion:       req.Occasion,
		BudgetRangeKey: req.BudgetRangeKey,
		GuestCount:     req.GuestCount,
		Location:       req.City,
		AddonIDs:       req.AddonIDs,
	}, s.catalogRepo.GetAddonPrice)
	if breakdown.FinalAmount == 0 {
		return nil, apperrors.ErrValidation(fmt.Sprintf("unknown budget range '%s'", req.BudgetRangeKey))
	}
	tokenAmount := s.pricing.CalculateTokenAmount(breakdown.FinalAmount)

	code := fmt.Sprintf("%08X", s.now().UnixNano()%100000000)
	eventDate, _ := time.ParseInLocation(dateLayout, req.EventDate, s.now().Location())

	booking := &db.Booking{
		Code:           code,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		ThemeID:        req.ThemeID,
		Occasion:       string(req.Occasion),
		BudgetRangeKey: req.BudgetRangeKey,
		GuestCount:     guestsOrDefault(req.GuestCount),
		EventDate:      eventDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		City:           req.City,
		Pincode:        req.Pincode,
		Address:        req.Address,
		TotalAmount:    breakdown.FinalAmount,
		TokenAmount:    tokenAmount,
		Status:         StatusPending,
		PaymentStatus:  paymentPending,
		CreatedAt:      s.now().UTC(),
		UpdatedAt:      s.now().UTC(),
	}

	description := fmt.Sprintf("Utsavia booking %s (token deposit)", code)
	sessionURL, sessionID, err := s.stripe.CreateCheckoutSession(int64(tokenAmount*100), "inr", description, req.CustomerEmail)
	if err != nil {
		return nil, fmt.Errorf("creating checkout session: %w", err)
	}
	booking.StripeSessionID = sessionID

	if err := s.Repo.CreateBooking(booking); err != nil {
		log.Error().Err(err).Str("code", code).Msg("error creating booking")
		return nil, err
	}

	return &entities.CheckoutSessionResponse{
		Code:      code,
		URL:       sessionURL,
		SessionID: sessionID,
	}, nil
}

func (s *BookingService) isWindowAvailable(req *entities.BookingRequest) (bool, error) {
	result, err := s.availability.CheckAvailability(entities.AvailabilityRequest{
		Date:    req.EventDate,
		City:    req.City,
		Pincode: req.Pincode,
	})
	if err != nil {
		return false, err
	}
	for _, slot := range result.Slots {
		if slot.StartTime == req.StartTime && slot.EndTime == req.EndTime {
			return slot.IsAvailable, nil
		}
	}
	return false, apperrors.ErrValidation("start_time/end_time is not a bookable window")
}

func (s *BookingService) GetBookingByCode(code, email string) (*entities.BookingResponse, error) {
	res, err := s.Repo.GetBookingByCode(code, email)
	if err != nil {
		return nil, apperrors.ErrNotFound("booking not found")
	}
	return res, nil
}

func (s *BookingService) GetBookingBySessionID(sessionID string) (*entities.BookingResponse, error) {
	booking, err := s.Repo.GetBookingByStripeSessionID(sessionID)
	if err != nil {
		return nil, err
	}
	return bookingToResponse(booking), nil
}

// CancelBooking cancels and, if the deposit was paid, refunds it. Bookings
// can only be cancelled with at least 24 hours notice before setup starts.
func (s *BookingService) CancelBooking(code string) error {
	booking, err := s.Repo.GetBookingByCodeOnly(code)
	if err != nil {
		return apperrors.ErrNotFound("booking not found")
	}
	if booking.Status == StatusCancelled {
		return apperrors.ErrValidation("booking is already cancelled")
	}

	eventStart := booking.EventDate.Add(time.Duration(minutesOfDay(booking.StartTime)) * time.Minute)
	if eventStart.Sub(s.now()) < cancellationNotice {
		return apperrors.ErrValidation("bookings can only be cancelled more than 24 hours before the event")
	}

	if booking.PaymentStatus == paymentSucceeded && booking.StripeSessionID != "" {
		if err := s.stripe.RefundPaymentBySessionID(booking.StripeSessionID); err != nil {
			return fmt.Errorf("refunding deposit: %w", err)
		}
	}

	if _, err := s.Repo.CancelBooking(code); err != nil {
		return err
	}

	resp := bookingToResponse(booking)
	resp.Status = StatusCancelled
	s.sender.SendBookingSMS(*resp)
	s.sender.SendBookingEmail(*resp)
	return nil
}

func (s *BookingService) ConfirmBookingBySessionID(sessionID, paymentIntentID string) (*entities.BookingResponse, error) {
	err := s.Repo.UpdateBookingStatusPaymentAndIntentBySessionID(sessionID, StatusConfirmed, paymentSucceeded, paymentIntentID)
	if err != nil {
		return nil, err
	}
	return s.GetBookingBySessionID(sessionID)
}

func (s *BookingService) MarkBookingRefundedBySessionID(sessionID string) error {
	return s.Repo.UpdateBookingStatusPaymentAndIntentBySessionID(sessionID, StatusCancelled, paymentRefunded, "")
}

func validateBookingRequest(req *entities.BookingRequest, now time.Time) *apperrors.HTTPError {
	switch {
	case strings.TrimSpace(req.CustomerName) == "":
		return apperrors.ErrValidation("customer_name is required")
	case strings.TrimSpace(req.CustomerEmail) == "":
		return apperrors.ErrValidation("customer_email is required")
	case strings.TrimSpace(req.CustomerPhone) == "":
		return apperrors.ErrValidation("customer_phone is required")
	case strings.TrimSpace(req.City) == "":
		return apperrors.ErrValidation("city is required")
	}
	if !req.Occasion.Valid() {
		return apperrors.ErrValidation(fmt.Sprintf("occasion '%s' is not recognised", req.Occasion))
	}

	date, herr := validateQueryDate(req.EventDate, now)
	if herr != nil {
		return herr
	}
	if date.Sub(now) > maxAdvanceBooking {
		return apperrors.ErrValidation("event_date cannot be more than one year ahead")
	}
	return nil
}

func bookingToResponse(b *db.Booking) *entities.BookingResponse {
	return &entities.BookingResponse{
		Code:          b.Code,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		ThemeID:       b.ThemeID,
		Occasion:      entities.Occasion(b.Occasion),
		GuestCount:    b.GuestCount,
		EventDate:     b.EventDate.Format(dateLayout),
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		City:          b.City,
		Pincode:       b.Pincode,
		Address:       b.Address,
		TotalAmount:   b.TotalAmount,
		TokenAmount:   b.TokenAmount,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

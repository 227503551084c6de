package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utsavia/internal/db"
	"utsavia/internal/entities"
	apperrors "utsavia/internal/errors"
)

func validRequest() entities.BookingRequest {
	return entities.BookingRequest{
		CustomerName:   "Priya Sharma",
		CustomerEmail:  "priya@example.com",
		CustomerPhone:  "+919876543210",
		Occasion:       entities.OccasionBirthday,
		BudgetRangeKey: "10000-20000",
		GuestCount:     25,
		EventDate:      "2026-09-25",
		StartTime:      "10:00",
		EndTime:        "14:00",
		City:           "Mumbai",
		Pincode:        "400001",
	}
}

func TestValidateBookingRequest(t *testing.T) {
	mutate := func(fn func(r *entities.BookingRequest)) entities.BookingRequest {
		r := validRequest()
		fn(&r)
		return r
	}

	tests := []struct {
		name     string
		req      entities.BookingRequest
		wantCode string // "" means valid
	}{
		{"valid", validRequest(), ""},
		{"missing name", mutate(func(r *entities.BookingRequest) { r.CustomerName = "  " }), apperrors.CodeValidation},
		{"missing email", mutate(func(r *entities.BookingRequest) { r.CustomerEmail = "" }), apperrors.CodeValidation},
		{"missing phone", mutate(func(r *entities.BookingRequest) { r.CustomerPhone = "" }), apperrors.CodeValidation},
		{"missing city", mutate(func(r *entities.BookingRequest) { r.City = "" }), apperrors.CodeValidation},
		{"bad occasion", mutate(func(r *entities.BookingRequest) { r.Occasion = "HOUSEWARMING" }), apperrors.CodeValidation},
		{"missing date", mutate(func(r *entities.BookingRequest) { r.EventDate = "" }), apperrors.CodeValidation},
		{"past date", mutate(func(r *entities.BookingRequest) { r.EventDate = "2026-01-01" }), apperrors.CodeInvalidDate},
		{"malformed date", mutate(func(r *entities.BookingRequest) { r.EventDate = "25-09-2026" }), apperrors.CodeInvalidDate},
		{"too far ahead", mutate(func(r *entities.BookingRequest) { r.EventDate = "2027-12-01" }), apperrors.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			herr := validateBookingRequest(&tt.req, testNow)
			if tt.wantCode == "" {
				assert.Nil(t, herr)
				return
			}
			require.NotNil(t, herr)
			assert.Equal(t, tt.wantCode, herr.Code)
		})
	}
}

func TestBookingToResponse(t *testing.T) {
	created := time.Date(2026, time.September, 10, 9, 0, 0, 0, time.UTC)
	booking := &db.Booking{
		Code:          "A1B2C3D4",
		CustomerName:  "Priya Sharma",
		CustomerEmail: "priya@example.com",
		Occasion:      "ANNIVERSARY",
		GuestCount:    40,
		EventDate:     time.Date(2026, time.September, 25, 0, 0, 0, 0, time.Local),
		StartTime:     "18:00",
		EndTime:       "22:00",
		City:          "Pune",
		TotalAmount:   15576,
		TokenAmount:   2000,
		Status:        StatusConfirmed,
		PaymentStatus: paymentSucceeded,
		CreatedAt:     created,
		UpdatedAt:     created,
	}

	resp := bookingToResponse(booking)
	assert.Equal(t, "A1B2C3D4", resp.Code)
	assert.Equal(t, entities.OccasionAnniversary, resp.Occasion)
	assert.Equal(t, "2026-09-25", resp.EventDate)
	assert.Equal(t, "18:00", resp.StartTime)
	assert.Equal(t, StatusConfirmed, resp.Status)
	assert.Equal(t, paymentSucceeded, resp.PaymentStatus)
}

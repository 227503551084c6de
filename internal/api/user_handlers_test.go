package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utsavia/internal/entities"
	"utsavia/internal/service"
)

type fakeBookingFinder struct {
	windows []entities.BookingWindow
}

func (f *fakeBookingFinder) GetActiveBookingsForDate(date time.Time, statuses []string) ([]entities.BookingWindow, error) {
	return f.windows, nil
}

func newAvailabilityHandler(finder *fakeBookingFinder) *UserBookingHandler {
	return &UserBookingHandler{
		Availability: service.NewAvailabilityService(finder, false),
		Pricing:      service.NewPricingService(),
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestCheckAvailabilityErrorEnvelope(t *testing.T) {
	h := newAvailabilityHandler(&fakeBookingFinder{})

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"missing date", `{}`, "VALIDATION_ERROR"},
		{"malformed body", `not-json`, "VALIDATION_ERROR"},
		{"bad date", `{"date":"soon"}`, "INVALID_DATE"},
		{"past date", `{"date":"2020-01-01"}`, "INVALID_DATE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.CheckAvailability, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var envelope struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			assert.Equal(t, tt.wantCode, envelope.Code)
			assert.NotEmpty(t, envelope.Message)
		})
	}
}

func TestCheckAvailabilityAnnotatesSlots(t *testing.T) {
	finder := &fakeBookingFinder{windows: []entities.BookingWindow{
		{StartTime: "10:00", EndTime: "14:00", Status: "confirmed"},
	}}
	h := newAvailabilityHandler(finder)

	// Far-future date keeps the same-day rule out of the way.
	rec := postJSON(t, h.CheckAvailability, `{"date":"2030-05-20","city":"Mumbai"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp entities.AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Slots, 12)
	assert.Equal(t, 6, resp.Metadata.AvailableSlots)
	assert.Equal(t, "2030-05-20", resp.Date)
	assert.Equal(t, "Mumbai", resp.Location.City)
}

func TestEstimatePriceFormatsINR(t *testing.T) {
	h := newAvailabilityHandler(&fakeBookingFinder{})

	body := `{"occasion":"BIRTHDAY","budget_range":"10000-20000","guest_count":25,"location":"Mumbai"}`
	rec := postJSON(t, h.EstimatePrice, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EstimateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 13570, resp.Estimate, 0.001)
	assert.Equal(t, "₹13,570", resp.Formatted)
}

func TestGetBudgetRanges(t *testing.T) {
	h := newAvailabilityHandler(&fakeBookingFinder{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.GetBudgetRanges(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var ranges []entities.BudgetRange
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ranges))
	require.Len(t, ranges, 5)
	assert.Equal(t, "10000-20000", ranges[1].Key)
}

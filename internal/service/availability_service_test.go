package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utsavia/internal/entities"
	apperrors "utsavia/internal/errors"
)

// 2026-09-15 is a Tuesday, 2026-09-19 a Saturday.
var (
	testNow     = time.Date(2026, time.September, 15, 14, 30, 0, 0, time.Local)
	futureDate  = "2026-09-25"
	weekendDate = "2026-09-19"
)

func loc(city, pincode string) *entities.Location {
	return &entities.Location{City: city, Pincode: pincode}
}

func slotByStart(t *testing.T, resp *entities.AvailabilityResponse, start string) entities.AvailabilitySlot {
	t.Helper()
	for _, s := range resp.Slots {
		if s.StartTime == start {
			return s
		}
	}
	t.Fatalf("no slot starting at %s", start)
	return entities.AvailabilitySlot{}
}

func TestSlotCatalogue(t *testing.T) {
	catalogue := SlotCatalogue()
	require.Len(t, catalogue, 12)
	assert.Equal(t, entities.TimeWindow{StartTime: "08:00", EndTime: "12:00"}, catalogue[0])
	assert.Equal(t, entities.TimeWindow{StartTime: "19:00", EndTime: "23:00"}, catalogue[11])
	for i, w := range catalogue {
		assert.Equal(t, fmt.Sprintf("%02d:00", 8+i), w.StartTime)
		assert.Equal(t, fmt.Sprintf("%02d:00", 12+i), w.EndTime)
	}
}

func TestComputeAvailabilityNoBookings(t *testing.T) {
	resp, err := ComputeAvailability(entities.AvailabilityRequest{Date: futureDate}, nil, testNow, false)
	require.NoError(t, err)

	assert.Equal(t, futureDate, resp.Date)
	assert.Len(t, resp.Slots, 12)
	assert.Equal(t, 12, resp.Metadata.TotalSlots)
	assert.Equal(t, 12, resp.Metadata.AvailableSlots)
	assert.False(t, resp.Metadata.IsWeekend)
	assert.False(t, resp.Metadata.IsSameDay)
	for _, slot := range resp.Slots {
		assert.True(t, slot.IsAvailable)
	}

	// Catalogue order is preserved in the response.
	for i, w := range SlotCatalogue() {
		assert.Equal(t, w.StartTime, resp.Slots[i].StartTime)
		assert.Equal(t, w.EndTime, resp.Slots[i].EndTime)
	}
}

func TestComputeAvailabilityWeekendMetadata(t *testing.T) {
	resp, err := ComputeAvailability(entities.AvailabilityRequest{Date: weekendDate}, nil, testNow, false)
	require.NoError(t, err)
	assert.True(t, resp.Metadata.IsWeekend)
}

func TestComputeAvailabilityDateValidation(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		wantCode string
	}{
		{"missing date", "", apperrors.CodeValidation},
		{"blank date", "   ", apperrors.CodeValidation},
		{"garbage date", "not-a-date", apperrors.CodeInvalidDate},
		{"wrong layout", "15/09/2026", apperrors.CodeInvalidDate},
		{"past date", "2026-09-14", apperrors.CodeInvalidDate},
		{"long past date", "2020-01-01", apperrors.CodeInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ComputeAvailability(entities.AvailabilityRequest{Date: tt.date}, nil, testNow, false)
			require.Error(t, err)
			assert.Nil(t, resp)

			var he *apperrors.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.wantCode, he.Code)
			assert.Equal(t, 400, he.Status)
		})
	}
}

func TestComputeAvailabilityTodayIsNotPast(t *testing.T) {
	// Today's date is valid even though the clock is mid-afternoon.
	resp, err := ComputeAvailability(entities.AvailabilityRequest{Date: "2026-09-15"}, nil, testNow, false)
	require.NoError(t, err)
	assert.True(t, resp.Metadata.IsSameDay)
}

func TestComputeAvailabilityConflicts(t *testing.T) {
	tests := []struct {
		name        string
		req         entities.AvailabilityRequest
		booking     entities.BookingWindow
		blockedSlot string // start time expected unavailable, "" when no conflict expected
	}{
		{
			name:        "same city blocks overlapping slot",
			req:         entities.AvailabilityRequest{Date: futureDate, City: "Mumbai"},
			booking:     entities.BookingWindow{StartTime: "10:00", EndTime: "14:00", Location: loc("Mumbai", "400001"), Status: StatusConfirmed},
			blockedSlot: "10:00",
		},
		{
			name:        "city match is case-insensitive",
			req:         entities.AvailabilityRequest{Date: futureDate, City: "mumbai"},
			booking:     entities.BookingWindow{StartTime: "10:00", EndTime: "14:00", Location: loc("MUMBAI", ""), Status: StatusPending},
			blockedSlot: "10:00",
		},
		{
			name:        "pincode match overrides city mismatch",
			req:         entities.AvailabilityRequest{Date: futureDate, City: "Navi Mumbai", Pincode: "400703"},
			booking:     entities.BookingWindow{StartTime: "10:00", EndTime: "14:00", Location: loc("Mumbai", "400703"), Status: StatusInProgress},
			blockedSlot: "10:00",
		},
		{
			name:    "different city does not conflict",
			req:     entities.AvailabilityRequest{Date: futureDate, City: "Pune"},
			booking: entities.BookingWindow{StartTime: "10:00", EndTime: "14:00", Location: loc("Mumbai", "400001"), Status: StatusConfirmed},
		},
		{
			name:        "booking without location conflicts conservatively",
			req:         entities.AvailabilityRequest{Date: futureDate, City: "Pune"},
			booking:     entities.BookingWindow{StartTime: "10:00", EndTime: "14:00", Status: StatusConfirmed},
			blockedSlot: "10:00",
		},
		{
			name:        "query without city conflicts conservatively",
			req:         entities.AvailabilityRequest{Date: futureDate},
			booking:     entities.BookingWindow{StartTime: "10:00", EndTime: "14:00", Location: loc("Mumbai", "400001"), Status: StatusConfirmed},
			blockedSlot: "10:00",
		},
		{
			name:    "cancelled booking never blocks",
			req:     entities.AvailabilityRequest{Date: futureDate, City: "Mumbai"},
			booking: entities.BookingWindow{StartTime: "10:00", EndTime: "14:00", Location: loc("Mumbai", ""), Status: StatusCancelled},
		},
		{
			name:    "completed booking never blocks",
			req:     entities.AvailabilityRequest{Date: futureDate},
			booking: entities.BookingWindow{StartTime: "10:00", EndTime: "14:00", Status: StatusCompleted},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ComputeAvailability(tt.req, []entities.BookingWindow{tt.booking}, testNow, false)
			require.NoError(t, err)

			if tt.blockedSlot == "" {
				assert.Equal(t, 12, resp.Metadata.AvailableSlots)
				return
			}
			assert.False(t, slotByStart(t, resp, tt.blockedSlot).IsAvailable)
		})
	}
}

func TestComputeAvailabilityOverlapExtent(t *testing.T) {
	// A 10:00-14:00 booking overlaps every window from 07:00..13:00 starts
	// that exist in the catalogue: 08:00 through 13:00.
	booking := entities.BookingWindow{StartTime: "10:00", EndTime: "14:00", Status: StatusConfirmed}
	resp, err := ComputeAvailability(entities.AvailabilityRequest{Date: futureDate}, []entities.BookingWindow{booking}, testNow, false)
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		start := slot.StartTime
		blocked := start >= "07:00" && start <= "13:00"
		assert.Equal(t, !blocked, slot.IsAvailable, "slot %s", start)
	}
	assert.Equal(t, 6, resp.Metadata.AvailableSlots)
}

func TestComputeAvailabilityBoundaryDoesNotConflict(t *testing.T) {
	// A booking ending exactly at a slot's start is not a conflict, and
	// neither is one starting exactly at a slot's end.
	bookings := []entities.BookingWindow{
		{StartTime: "08:00", EndTime: "12:00", Status: StatusConfirmed},
	}
	resp, err := ComputeAvailability(entities.AvailabilityRequest{Date: futureDate}, bookings, testNow, false)
	require.NoError(t, err)

	assert.False(t, slotByStart(t, resp, "08:00").IsAvailable)
	assert.False(t, slotByStart(t, resp, "11:00").IsAvailable)
	assert.True(t, slotByStart(t, resp, "12:00").IsAvailable)
}

func TestComputeAvailabilitySameDayLeadTime(t *testing.T) {
	// now is 14:30, so slots must start strictly after hour 16: the 16:00
	// window is excluded, 17:00 onwards are bookable.
	resp, err := ComputeAvailability(entities.AvailabilityRequest{Date: "2026-09-15"}, nil, testNow, false)
	require.NoError(t, err)

	assert.True(t, resp.Metadata.IsSameDay)
	for _, slot := range resp.Slots {
		wantAvailable := startHour(slot.StartTime) > 16
		assert.Equal(t, wantAvailable, slot.IsAvailable, "slot %s", slot.StartTime)
	}
	assert.Equal(t, 3, resp.Metadata.AvailableSlots) // 17:00, 18:00, 19:00
}

func TestComputeAvailabilitySameDayOnlyRemoves(t *testing.T) {
	// A slot blocked by a conflict stays blocked; the lead-time rule never
	// grants availability back.
	booking := entities.BookingWindow{StartTime: "18:00", EndTime: "22:00", Status: StatusConfirmed}
	resp, err := ComputeAvailability(entities.AvailabilityRequest{Date: "2026-09-15"}, []entities.BookingWindow{booking}, testNow, false)
	require.NoError(t, err)

	assert.False(t, slotByStart(t, resp, "17:00").IsAvailable)
	assert.False(t, slotByStart(t, resp, "18:00").IsAvailable)
	assert.False(t, slotByStart(t, resp, "19:00").IsAvailable)
	assert.Equal(t, 0, resp.Metadata.AvailableSlots)
}

func TestComputeAvailabilityOverrideDominates(t *testing.T) {
	bookings := []entities.BookingWindow{
		{StartTime: "08:00", EndTime: "12:00", Status: StatusConfirmed},
		{StartTime: "12:00", EndTime: "16:00", Status: StatusPending},
		{StartTime: "16:00", EndTime: "20:00", Status: StatusInProgress},
	}
	// Same-day query with conflicts everywhere: the override still forces
	// every slot available and reports isSameDay false.
	resp, err := ComputeAvailability(entities.AvailabilityRequest{Date: "2026-09-15", City: "Mumbai"}, bookings, testNow, true)
	require.NoError(t, err)

	assert.Equal(t, 12, resp.Metadata.AvailableSlots)
	assert.False(t, resp.Metadata.IsSameDay)
	for _, slot := range resp.Slots {
		assert.True(t, slot.IsAvailable)
	}
}

func TestComputeAvailabilityOverrideStillValidatesDate(t *testing.T) {
	_, err := ComputeAvailability(entities.AvailabilityRequest{Date: "2026-09-01"}, nil, testNow, true)
	var he *apperrors.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, apperrors.CodeInvalidDate, he.Code)
}

func TestComputeAvailabilityIdempotent(t *testing.T) {
	req := entities.AvailabilityRequest{Date: "2026-09-15", City: "Pune"}
	bookings := []entities.BookingWindow{
		{StartTime: "09:00", EndTime: "13:00", Location: loc("Pune", "411001"), Status: StatusConfirmed},
		{StartTime: "15:00", EndTime: "19:00", Status: StatusPending},
	}

	first, err := ComputeAvailability(req, bookings, testNow, false)
	require.NoError(t, err)
	second, err := ComputeAvailability(req, bookings, testNow, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

type stubBookingFinder struct {
	windows  []entities.BookingWindow
	err      error
	lastDate time.Time
	statuses []string
}

func (s *stubBookingFinder) GetActiveBookingsForDate(date time.Time, statuses []string) ([]entities.BookingWindow, error) {
	s.lastDate = date
	s.statuses = statuses
	return s.windows, s.err
}

func TestAvailabilityServiceCheckAvailability(t *testing.T) {
	finder := &stubBookingFinder{windows: []entities.BookingWindow{
		{StartTime: "10:00", EndTime: "14:00", Location: loc("Jaipur", ""), Status: StatusConfirmed},
	}}
	svc := NewAvailabilityService(finder, false)
	svc.now = func() time.Time { return testNow }

	resp, err := svc.CheckAvailability(entities.AvailabilityRequest{Date: futureDate, City: "Jaipur"})
	require.NoError(t, err)
	assert.False(t, slotByStart(t, resp, "10:00").IsAvailable)
	assert.Equal(t, ActiveStatuses, finder.statuses)
	assert.Equal(t, futureDate, finder.lastDate.Format("2006-01-02"))
}

func TestAvailabilityServiceRejectsBeforeQueryingRepo(t *testing.T) {
	finder := &stubBookingFinder{err: errors.New("should not be called")}
	svc := NewAvailabilityService(finder, false)
	svc.now = func() time.Time { return testNow }

	_, err := svc.CheckAvailability(entities.AvailabilityRequest{Date: "2020-01-01"})
	var he *apperrors.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, apperrors.CodeInvalidDate, he.Code)
	assert.True(t, finder.lastDate.IsZero())
}

func TestAvailabilityServicePropagatesRepoError(t *testing.T) {
	finder := &stubBookingFinder{err: errors.New("db down")}
	svc := NewAvailabilityService(finder, false)
	svc.now = func() time.Time { return testNow }

	_, err := svc.CheckAvailability(entities.AvailabilityRequest{Date: futureDate})
	require.Error(t, err)
	assert.ErrorContains(t, err, "db down")
}

func TestMinutesOfDay(t *testing.T) {
	assert.Equal(t, 480, minutesOfDay("08:00"))
	assert.Equal(t, 1380, minutesOfDay("23:00"))
	assert.Equal(t, 870, minutesOfDay("14:30"))
	assert.Equal(t, 0, minutesOfDay("garbage"))
}

package service

import (
	"fmt"
	"strings"
	"time"

	"utsavia/internal/entities"
	apperrors "utsavia/internal/errors"
)

// Booking statuses. Pending, confirmed and in-progress bookings block
// slots; cancelled and completed ones never do.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// ActiveStatuses is the conflict-relevant subset.
var ActiveStatuses = []string{StatusPending, StatusConfirmed, StatusInProgress}

const (
	dateLayout = "2006-01-02"

	// Same-day bookings need roughly two hours of notice. The check is
	// hour-granular: a slot must start strictly after now.Hour()+2.
	sameDayLeadHours = 2
)

// slotCatalogue is the fixed ordered set of twelve daily windows offered
// for decoration setups: hourly starts from 08:00, each four hours long.
var slotCatalogue = buildCatalogue()

func buildCatalogue() []entities.TimeWindow {
	windows := make([]entities.TimeWindow, 0, 12)
	for hour := 8; hour <= 19; hour++ {
		windows = append(windows, entities.TimeWindow{
			StartTime: fmt.Sprintf("%02d:00", hour),
			EndTime:   fmt.Sprintf("%02d:00", hour+4),
		})
	}
	return windows
}

// SlotCatalogue returns a copy of the fixed window catalogue.
func SlotCatalogue() []entities.TimeWindow {
	out := make([]entities.TimeWindow, len(slotCatalogue))
	copy(out, slotCatalogue)
	return out
}

// BookingFinder is the repository view the availability engine needs.
type BookingFinder interface {
	GetActiveBookingsForDate(date time.Time, statuses []string) ([]entities.BookingWindow, error)
}

type AvailabilityService struct {
	Repo BookingFinder

	// overrideAll is a staging toggle that forces every slot available
	// and skips the same-day rule. Threaded in from config, never read
	// from the environment here.
	overrideAll bool
	now         func() time.Time
}

func NewAvailabilityService(repo BookingFinder, overrideAll bool) *AvailabilityService {
	return &AvailabilityService{Repo: repo, overrideAll: overrideAll, now: time.Now}
}

// CheckAvailability fetches the active bookings for the requested date and
// annotates the slot catalogue. The snapshot is not locked against
// concurrent booking creation; the final guard is the re-check on write in
// the booking service plus the database's exclusion constraint.
func (s *AvailabilityService) CheckAvailability(req entities.AvailabilityRequest) (*entities.AvailabilityResponse, error) {
	now := s.now()
	date, herr := validateQueryDate(req.Date, now)
	if herr != nil {
		return nil, herr
	}

	bookings, err := s.Repo.GetActiveBookingsForDate(date, ActiveStatuses)
	if err != nil {
		return nil, fmt.Errorf("fetching bookings for %s: %w", req.Date, err)
	}
	return ComputeAvailability(req, bookings, now, s.overrideAll)
}

// ComputeAvailability annotates the fixed slot catalogue for a single day.
// Pure over its inputs: identical (query, bookings, now, override) always
// yield identical results, so it is safe under concurrent calls and client
// retries.
func ComputeAvailability(req entities.AvailabilityRequest, activeBookings []entities.BookingWindow, now time.Time, overrideAll bool) (*entities.AvailabilityResponse, error) {
	date, herr := validateQueryDate(req.Date, now)
	if herr != nil {
		return nil, herr
	}

	slots := make([]entities.AvailabilitySlot, 0, len(slotCatalogue))
	for _, w := range slotCatalogue {
		slots = append(slots, entities.AvailabilitySlot{
			StartTime:   w.StartTime,
			EndTime:     w.EndTime,
			IsAvailable: true,
		})
	}

	sameDay := false
	if !overrideAll {
		for i := range slots {
			if hasConflict(slots[i], activeBookings, req.City, req.Pincode) {
				slots[i].IsAvailable = false
			}
		}

		// Same-day lead time only removes availability, never grants it.
		if sameCalendarDay(date, now) {
			sameDay = true
			cutoff := now.Hour() + sameDayLeadHours
			for i := range slots {
				if startHour(slots[i].StartTime) <= cutoff {
					slots[i].IsAvailable = false
				}
			}
		}
	}

	available := 0
	for _, slot := range slots {
		if slot.IsAvailable {
			available++
		}
	}

	weekday := date.Weekday()
	return &entities.AvailabilityResponse{
		Date:     req.Date,
		Location: entities.Location{City: req.City, Pincode: req.Pincode},
		Slots:    slots,
		Metadata: entities.AvailabilityMetadata{
			TotalSlots:     len(slots),
			AvailableSlots: available,
			IsWeekend:      weekday == time.Saturday || weekday == time.Sunday,
			IsSameDay:      sameDay,
		},
	}, nil
}

// hasConflict reports whether any active booking blocks the slot. Overlap
// uses strict inequality on both ends, so a booking ending exactly when a
// slot starts does not conflict. When both the query and the booking carry
// a location, the conflict is scoped by city (case-insensitive) or exact
// pincode; otherwise an overlap alone blocks the slot.
func hasConflict(slot entities.AvailabilitySlot, bookings []entities.BookingWindow, city, pincode string) bool {
	slotStart := minutesOfDay(slot.StartTime)
	slotEnd := minutesOfDay(slot.EndTime)

	for _, b := range bookings {
		if b.Status != "" && !IsActiveStatus(b.Status) {
			continue
		}
		if slotStart >= minutesOfDay(b.EndTime) || slotEnd <= minutesOfDay(b.StartTime) {
			continue
		}
		if city != "" && b.Location != nil {
			if strings.EqualFold(b.Location.City, city) {
				return true
			}
			if pincode != "" && b.Location.Pincode == pincode {
				return true
			}
			continue
		}
		return true
	}
	return false
}

func IsActiveStatus(status string) bool {
	for _, s := range ActiveStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// validateQueryDate rejects missing, unparseable and past calendar dates.
// No upper bound is enforced here; the one-year cap on bookings belongs to
// the booking flow.
func validateQueryDate(dateStr string, now time.Time) (time.Time, *apperrors.HTTPError) {
	if strings.TrimSpace(dateStr) == "" {
		return time.Time{}, apperrors.ErrValidation("date is required")
	}
	date, err := time.ParseInLocation(dateLayout, dateStr, now.Location())
	if err != nil {
		return time.Time{}, apperrors.ErrInvalidDate("date must be a valid YYYY-MM-DD date")
	}
	if date.Before(startOfDay(now)) {
		return time.Time{}, apperrors.ErrInvalidDate("date cannot be in the past")
	}
	return date, nil
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// minutesOfDay parses "HH:MM" into minutes since midnight. Catalogue
// windows and booking rows share this representation; malformed values
// count as midnight rather than failing the whole query.
func minutesOfDay(clock string) int {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0
	}
	return h*60 + m
}

func startHour(clock string) int {
	return minutesOfDay(clock) / 60
}

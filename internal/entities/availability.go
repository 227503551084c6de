package entities

// TimeWindow is one fixed daily interval from the bookable catalogue.
// Times are wall-clock "HH:MM" strings interpreted in the service's
// operating timezone; windows are configuration, never persisted.
type TimeWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AvailabilitySlot is a catalogue window annotated for one query date.
type AvailabilitySlot struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type Location struct {
	City    string `json:"city,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

// BookingWindow is the read projection of a booking used for conflict
// checks. Only bookings in an active status can block a slot.
type BookingWindow struct {
	StartTime string
	EndTime   string
	Location  *Location
	Status    string
}

type AvailabilityRequest struct {
	Date    string `json:"date"`
	City    string `json:"city,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

type AvailabilityMetadata struct {
	TotalSlots     int  `json:"total_slots"`
	AvailableSlots int  `json:"available_slots"`
	IsWeekend      bool `json:"is_weekend"`
	IsSameDay      bool `json:"is_same_day"`
}

type AvailabilityResponse struct {
	Date     string               `json:"date"`
	Location Location             `json:"location"`
	Slots    []AvailabilitySlot   `json:"slots"`
	Metadata AvailabilityMetadata `json:"metadata"`
}

package entities

import "time"

type BookingRequest struct {
	CustomerName   string   `json:"customer_name"`
	CustomerEmail  string   `json:"customer_email"`
	CustomerPhone  string   `json:"customer_phone"`
	ThemeID        int      `json:"theme_id"`
	Occasion       Occasion `json:"occasion"`
	BudgetRangeKey string   `json:"budget_range"`
	GuestCount     int      `json:"guest_count,omitempty"`
	EventDate      string   `json:"event_date"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	City           string   `json:"city"`
	Pincode        string   `json:"pincode,omitempty"`
	Address        string   `json:"address,omitempty"`
	AddonIDs       []string `json:"addon_ids,omitempty"`
}

type BookingResponse struct {
	Code          string    `json:"code"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	ThemeID       int       `json:"theme_id"`
	ThemeName     string    `json:"theme_name"`
	Occasion      Occasion  `json:"occasion"`
	GuestCount    int       `json:"guest_count"`
	EventDate     string    `json:"event_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	City          string    `json:"city"`
	Pincode       string    `json:"pincode,omitempty"`
	Address       string    `json:"address,omitempty"`
	TotalAmount   float64   `json:"total_amount"`
	TokenAmount   float64   `json:"token_amount"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CheckoutSessionResponse is returned on booking creation: the caller pays
// the token deposit through the hosted checkout URL.
type CheckoutSessionResponse struct {
	Code      string `json:"booking_code"`
	URL       string `json:"checkout_url"`
	SessionID string `json:"session_id"`
}

type BookingsList struct {
	Total    int               `json:"total"`
	Bookings []BookingResponse `json:"bookings"`
}

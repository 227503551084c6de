package api

// Pricing
type EstimateResponse struct {
	Estimate  float64 `json:"estimate"`
	Formatted string  `json:"formatted"`
}

// Admin bookings
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

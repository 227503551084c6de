package db

import "time"

type Booking struct {
	ID                    int
	Code                  string
	CustomerName          string
	CustomerEmail         string
	CustomerPhone         string
	ThemeID               int
	Occasion              string
	BudgetRangeKey        string
	GuestCount            int
	EventDate             time.Time
	StartTime             string // "HH:MM"
	EndTime               string // "HH:MM"
	City                  string
	Pincode               string
	Address               string
	TotalAmount           float64
	TokenAmount           float64
	Status                string
	PaymentStatus         string
	StripeSessionID       string
	StripePaymentIntentID string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type Theme struct {
	ID          int
	Name        string
	Description string
	Occasion    string
	BasePrice   float64
	ImageURL    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type PortfolioItem struct {
	ID           int
	Title        string
	Description  string
	ImageURL     string
	City         string
	DisplayOrder int
	CreatedAt    time.Time
}

type Addon struct {
	ID       string
	Name     string
	Price    float64
	IsActive bool
}

type Admin struct {
	ID           int
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

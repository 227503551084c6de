package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"utsavia/internal/db"
	"utsavia/internal/entities"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

// GetActiveBookingsForDate returns the conflict projection of every booking
// on the given calendar day whose status is in the given set.
func (r *BookingRepository) GetActiveBookingsForDate(date time.Time, statuses []string) ([]entities.BookingWindow, error) {
	query := `
		SELECT start_time, end_time, city, pincode, status
		FROM bookings
		WHERE event_date = $1 AND status = ANY($2)
		ORDER BY start_time`

	rows, err := r.DB.Query(query, date.Format("2006-01-02"), pq.Array(statuses))
	if err != nil {
		return nil, fmt.Errorf("error querying bookings for date: %w", err)
	}
	defer rows.Close()

	var windows []entities.BookingWindow
	for rows.Next() {
		var w entities.BookingWindow
		var city, pincode sql.NullString
		if err := rows.Scan(&w.StartTime, &w.EndTime, &city, &pincode, &w.Status); err != nil {
			return nil, fmt.Errorf("error scanning booking window: %w", err)
		}
		if city.String != "" || pincode.String != "" {
			w.Location = &entities.Location{City: city.String, Pincode: pincode.String}
		}
		windows = append(windows, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return windows, nil
}

func (r *BookingRepository) CreateBooking(b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(code, customer_name, customer_email, customer_phone, theme_id, occasion, budget_range_key, guest_count,
		 event_date, start_time, end_time, city, pincode, address, total_amount, token_amount,
		 status, payment_status, stripe_session_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		b.Code,
		b.CustomerName,
		b.CustomerEmail,
		b.CustomerPhone,
		b.ThemeID,
		b.Occasion,
		b.BudgetRangeKey,
		b.GuestCount,
		b.EventDate,
		b.StartTime,
		b.EndTime,
		b.City,
		b.Pincode,
		b.Address,
		b.TotalAmount,
		b.TokenAmount,
		b.Status,
		b.PaymentStatus,
		b.StripeSessionID,
		b.CreatedAt,
		b.UpdatedAt,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookingRepository) GetBookingByCode(code, email string) (*entities.BookingResponse, error) {
	query := `
		SELECT b.code, b.customer_name, b.customer_email, b.customer_phone,
		       b.theme_id, COALESCE(t.name, ''), b.occasion, b.guest_count,
		       to_char(b.event_date, 'YYYY-MM-DD'), b.start_time, b.end_time,
		       b.city, b.pincode, b.address, b.total_amount, b.token_amount,
		       b.status, b.payment_status, b.created_at, b.updated_at
		FROM bookings b
		LEFT JOIN themes t ON b.theme_id = t.id
		WHERE b.code = $1 AND b.customer_email = $2`

	var res entities.BookingResponse
	err := r.DB.QueryRow(query, code, email).Scan(
		&res.Code, &res.CustomerName, &res.CustomerEmail, &res.CustomerPhone,
		&res.ThemeID, &res.ThemeName, &res.Occasion, &res.GuestCount,
		&res.EventDate, &res.StartTime, &res.EndTime,
		&res.City, &res.Pincode, &res.Address, &res.TotalAmount, &res.TokenAmount,
		&res.Status, &res.PaymentStatus, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking with code '%s' and email '%s' not found: %w", code, email, err)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &res, nil
}

func (r *BookingRepository) GetBookingByCodeOnly(code string) (*db.Booking, error) {
	query := `
		SELECT id, code, customer_name, customer_email, customer_phone, theme_id, occasion, budget_range_key,
		       guest_count, event_date, start_time, end_time, city, pincode, address, total_amount, token_amount,
		       status, payment_status, COALESCE(stripe_session_id, ''), COALESCE(stripe_payment_intent_id, ''),
		       created_at, updated_at
		FROM bookings WHERE code = $1`
	return r.scanBooking(r.DB.QueryRow(query, code), code)
}

func (r *BookingRepository) GetBookingByStripeSessionID(sessionID string) (*db.Booking, error) {
	query := `
		SELECT id, code, customer_name, customer_email, customer_phone, theme_id, occasion, budget_range_key,
		       guest_count, event_date, start_time, end_time, city, pincode, address, total_amount, token_amount,
		       status, payment_status, COALESCE(stripe_session_id, ''), COALESCE(stripe_payment_intent_id, ''),
		       created_at, updated_at
		FROM bookings WHERE stripe_session_id = $1`
	return r.scanBooking(r.DB.QueryRow(query, sessionID), sessionID)
}

func (r *BookingRepository) scanBooking(row *sql.Row, key string) (*db.Booking, error) {
	var b db.Booking
	err := row.Scan(
		&b.ID, &b.Code, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &b.ThemeID, &b.Occasion,
		&b.BudgetRangeKey, &b.GuestCount, &b.EventDate, &b.StartTime, &b.EndTime, &b.City, &b.Pincode,
		&b.Address, &b.TotalAmount, &b.TokenAmount, &b.Status, &b.PaymentStatus, &b.StripeSessionID,
		&b.StripePaymentIntentID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking '%s' not found: %w", key, err)
		}
		return nil, fmt.Errorf("error scanning booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) UpdateBookingStatus(id int, status string) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.DB.Exec(query, id, status)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *BookingRepository) UpdateBookingAndPaymentStatus(id int, status, paymentStatus string) error {
	query := `UPDATE bookings SET status = $2, payment_status = $3, updated_at = NOW() WHERE id = $1`
	_, err := r.DB.Exec(query, id, status, paymentStatus)
	if err != nil {
		return fmt.Errorf("error updating booking and payment status: %w", err)
	}
	return nil
}

func (r *BookingRepository) UpdateBookingStatusPaymentAndIntentBySessionID(sessionID, status, paymentStatus, paymentIntentID string) error {
	query := `
		UPDATE bookings
		SET status = $2, payment_status = $3, stripe_payment_intent_id = $4, updated_at = NOW()
		WHERE stripe_session_id = $1`
	_, err := r.DB.Exec(query, sessionID, status, paymentStatus, paymentIntentID)
	if err != nil {
		return fmt.Errorf("error updating booking by session id: %w", err)
	}
	return nil
}

func (r *BookingRepository) CancelBooking(code string) (string, error) {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE code = $1 RETURNING status`
	var status string
	if err := r.DB.QueryRow(query, code, "cancelled").Scan(&status); err != nil {
		return "", fmt.Errorf("error cancelling booking: %w", err)
	}
	return status, nil
}

func (r *BookingRepository) DeleteBookingByID(id int) error {
	result, err := r.DB.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting booking: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListBookings returns bookings matching the optional date/status/city
// filters, newest first.
func (r *BookingRepository) ListBookings(date, status, city string) ([]entities.BookingResponse, error) {
	query := `
		SELECT b.code, b.customer_name, b.customer_email, b.customer_phone,
		       b.theme_id, COALESCE(t.name, ''), b.occasion, b.guest_count,
		       to_char(b.event_date, 'YYYY-MM-DD'), b.start_time, b.end_time,
		       b.city, b.pincode, b.address, b.total_amount, b.token_amount,
		       b.status, b.payment_status, b.created_at, b.updated_at
		FROM bookings b
		LEFT JOIN themes t ON b.theme_id = t.id
		WHERE ($1 = '' OR b.event_date = $1::date)
		  AND ($2 = '' OR b.status = $2)
		  AND ($3 = '' OR LOWER(b.city) = LOWER($3))
		ORDER BY b.created_at DESC`

	rows, err := r.DB.Query(query, date, status, city)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer rows.Close()

	var bookings []entities.BookingResponse
	for rows.Next() {
		var res entities.BookingResponse
		if err := rows.Scan(
			&res.Code, &res.CustomerName, &res.CustomerEmail, &res.CustomerPhone,
			&res.ThemeID, &res.ThemeName, &res.Occasion, &res.GuestCount,
			&res.EventDate, &res.StartTime, &res.EndTime,
			&res.City, &res.Pincode, &res.Address, &res.TotalAmount, &res.TokenAmount,
			&res.Status, &res.PaymentStatus, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		bookings = append(bookings, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, nil
}

package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetBookingIDsPastEventEnd finds confirmed or in-progress bookings whose
// event window is already over. end_time is a wall-clock "HH:MM" string on
// event_date, both in the server's timezone.
func (r *JobRepository) GetBookingIDsPastEventEnd(now time.Time) ([]int, error) {
	query := `
		SELECT id FROM bookings
		WHERE status IN ('confirmed', 'in_progress')
		  AND event_date + end_time::time < $1`
	rows, err := r.DB.Query(query, now)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings past event end: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booking ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

func (r *JobRepository) UpdateBookingStatuses(ids []int, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.Exec(query, newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating booking statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Warn().Err(err).Msg("could not get rows affected")
	} else {
		log.Info().Int64("count", rowsAffected).Str("status", newStatus).Msg("updated booking statuses")
	}
	return nil
}

// DeletePendingBookingsOlderThan removes pending bookings created before the
// given time whose deposit was never paid.
func (r *JobRepository) DeletePendingBookingsOlderThan(before time.Time) (int64, error) {
	result, err := r.DB.Exec(
		`DELETE FROM bookings WHERE status = 'pending' AND payment_status = 'pending' AND created_at < $1`,
		before)
	if err != nil {
		return 0, fmt.Errorf("error deleting stale pending bookings: %w", err)
	}
	return result.RowsAffected()
}

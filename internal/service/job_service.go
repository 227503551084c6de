package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"utsavia/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// CompleteFinishedBookings marks confirmed bookings whose event window has
// passed as completed, so they stop blocking availability.
func (s *JobService) CompleteFinishedBookings() error {
	ids, err := s.Repo.GetBookingIDsPastEventEnd(time.Now())
	if err != nil {
		return fmt.Errorf("cron job: failed to get bookings past event end: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	log.Info().Ints("ids", ids).Msg("cron: marking finished bookings as completed")
	if err := s.Repo.UpdateBookingStatuses(ids, StatusCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}
	return nil
}

// DeleteStalePendingBookings removes pending bookings whose deposit was
// never paid, freeing their slots.
func (s *JobService) DeleteStalePendingBookings() error {
	deleted, err := s.Repo.DeletePendingBookingsOlderThan(time.Now().Add(-stalePendingAge))
	if err != nil {
		return fmt.Errorf("cron job: failed to delete stale pending bookings: %w", err)
	}
	if deleted > 0 {
		log.Info().Int64("count", deleted).Msg("cron: deleted stale pending bookings")
	}
	return nil
}

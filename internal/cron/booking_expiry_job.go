package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/caribeway/caribeway-backend/pkg/logger"
)

// BookingExpiryJobParams configure the pending booking expiry job.
type BookingExpiryJobParams struct {
	Logger   *logger.Logger
	Bookings bookingExpirer
}

type bookingExpirer interface {
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// NewBookingExpiryJob builds the cron job that expires pending bookings whose
// hold window has lapsed without payment or confirmation.
func NewBookingExpiryJob(params BookingExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Bookings == nil {
		return nil, fmt.Errorf("bookings service required")
	}
	return &bookingExpiryJob{
		logg:     params.Logger,
		bookings: params.Bookings,
		now:      time.Now,
	}, nil
}

type bookingExpiryJob struct {
	logg     *logger.Logger
	bookings bookingExpirer
	now      func() time.Time
}

func (j *bookingExpiryJob) Name() string { return "booking-expiry" }

func (j *bookingExpiryJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	expired, err := j.bookings.ExpireStale(ctx, now)
	if err != nil {
		return fmt.Errorf("booking expiry: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"expired": expired})
	j.logg.Info(logCtx, "booking expiry loop complete")
	return nil
}

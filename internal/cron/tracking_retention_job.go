package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/caribeway/caribeway-backend/pkg/logger"
)

const defaultTrackingRetention = 90 * 24 * time.Hour

// TrackingRetentionJobParams configure the conversion event retention job.
type TrackingRetentionJobParams struct {
	Logger    *logger.Logger
	Tracking  eventPruner
	Retention time.Duration
}

type eventPruner interface {
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewTrackingRetentionJob builds the cron job that prunes old conversion events.
func NewTrackingRetentionJob(params TrackingRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Tracking == nil {
		return nil, fmt.Errorf("tracking service required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = defaultTrackingRetention
	}
	return &trackingRetentionJob{
		logg:      params.Logger,
		tracking:  params.Tracking,
		retention: retention,
		now:       time.Now,
	}, nil
}

type trackingRetentionJob struct {
	logg      *logger.Logger
	tracking  eventPruner
	retention time.Duration
	now       func() time.Time
}

func (j *trackingRetentionJob) Name() string { return "tracking-retention" }

func (j *trackingRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.retention)
	deleted, err := j.tracking.PruneBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("tracking retention: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":       cutoff,
		"rows_deleted": deleted,
	})
	j.logg.Info(logCtx, "tracking retention complete")
	return nil
}

package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/caribeway/caribeway-backend/pkg/logger"
)

func TestTrackingRetentionJobPrunesOldEvents(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	pruner := &fakeEventPruner{deleted: 120}
	job := newTrackingRetentionJob(t, pruner, 30*24*time.Hour)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	expectedCutoff := now.Add(-30 * 24 * time.Hour)
	if !pruner.lastCutoff.Equal(expectedCutoff) {
		t.Fatalf("expected cutoff %s, got %s", expectedCutoff, pruner.lastCutoff)
	}
}

func TestTrackingRetentionJobDefaultsRetention(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	pruner := &fakeEventPruner{}
	job := newTrackingRetentionJob(t, pruner, 0)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !pruner.lastCutoff.Equal(now.Add(-defaultTrackingRetention)) {
		t.Fatalf("expected default retention cutoff, got %s", pruner.lastCutoff)
	}
}

func TestTrackingRetentionJobPropagatesErrors(t *testing.T) {
	pruner := &fakeEventPruner{err: errors.New("boom")}
	job := newTrackingRetentionJob(t, pruner, time.Hour)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func newTrackingRetentionJob(t *testing.T, pruner *fakeEventPruner, retention time.Duration) *trackingRetentionJob {
	t.Helper()
	jobIface, err := NewTrackingRetentionJob(TrackingRetentionJobParams{
		Logger:    logger.New(logger.Options{ServiceName: "test"}),
		Tracking:  pruner,
		Retention: retention,
	})
	if err != nil {
		t.Fatalf("NewTrackingRetentionJob: %v", err)
	}
	job, ok := jobIface.(*trackingRetentionJob)
	if !ok {
		t.Fatalf("expected trackingRetentionJob, got %T", jobIface)
	}
	return job
}

type fakeEventPruner struct {
	deleted    int64
	err        error
	lastCutoff time.Time
}

func (f *fakeEventPruner) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.lastCutoff = cutoff
	if f.err != nil {
		return 0, f.err
	}
	return f.deleted, nil
}

package tracking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caribeway/caribeway-backend/pkg/db/models"
	"github.com/caribeway/caribeway-backend/pkg/enums"
	pkgerrors "github.com/caribeway/caribeway-backend/pkg/errors"
	"github.com/caribeway/caribeway-backend/pkg/logger"
)

// RecordInput is the fire-and-forget event payload from the booking wizard.
type RecordInput struct {
	SessionID  string `json:"session_id" validate:"required,max=100"`
	Step       string `json:"step" validate:"required"`
	Category   string `json:"category,omitempty"`
	BookingRef string `json:"booking_ref,omitempty"`
}

// Service defines the conversion tracking behavior used by the API edge and
// the retention job.
type Service interface {
	Record(ctx context.Context, input RecordInput) error
	FunnelSummary(ctx context.Context, since time.Time) ([]StepCount, error)
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

// ServiceParams bundles the dependencies required to build a tracking service.
type ServiceParams struct {
	Repo   Repository
	Logger *logger.Logger
}

// NewService constructs a tracking service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("tracking repository is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo: params.Repo,
		logg: params.Logger,
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Record(ctx context.Context, input RecordInput) error {
	sessionID := strings.TrimSpace(input.SessionID)
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	step, err := enums.ParseFunnelStep(strings.TrimSpace(input.Step))
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	event := &models.ConversionEvent{
		SessionID:  sessionID,
		Step:       step,
		OccurredAt: s.now(),
	}

	if raw := strings.TrimSpace(input.Category); raw != "" {
		category, err := enums.ParseServiceCategory(raw)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		event.Category = &category
	}

	if ref := strings.ToUpper(strings.TrimSpace(input.BookingRef)); ref != "" {
		event.BookingRef = &ref
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record conversion event")
	}
	return nil
}

func (s *service) FunnelSummary(ctx context.Context, since time.Time) ([]StepCount, error) {
	if since.IsZero() {
		since = s.now().AddDate(0, 0, -30)
	}
	rows, err := s.repo.Summary(ctx, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "funnel summary")
	}
	return rows, nil
}

func (s *service) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := s.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "prune conversion events")
	}
	if deleted > 0 {
		logCtx := s.logg.WithFields(ctx, map[string]any{"rows_deleted": deleted, "cutoff": cutoff})
		s.logg.Info(logCtx, "pruned conversion events")
	}
	return deleted, nil
}

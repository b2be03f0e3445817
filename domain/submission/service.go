package submission

import (
	"context"
	"sync"
	"time"

	"github.com/akeren/bizguard-leads/internal/log"
	apperrors "github.com/akeren/bizguard-leads/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/akeren/bizguard-leads/domain/submission")

//go:generate mockgen -source=service.go -destination=mock_service.go -package=submission

type SubmissionService interface {
	// Submit classifies, enriches and persists one submission payload.
	Submit(ctx context.Context, payload map[string]any) (*SubmitResult, error)

	// List returns every stored record of a category in append order.
	List(ctx context.Context, category Category) ([]Record, error)

	// Stats counts stored records per category.
	Stats(ctx context.Context) (*StatsResponse, error)
}

type ServiceOption func(*submissionService)

// WithClock replaces time.Now as the source of submission timestamps.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *submissionService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithRecorder(recorder Recorder) ServiceOption {
	return func(s *submissionService) {
		s.recorder = recorder
	}
}

type submissionService struct {
	logger     *log.Logger
	repository SubmissionRepository
	recorder   Recorder
	clock      func() time.Time

	stampMu   sync.Mutex
	lastStamp time.Time
}

func NewSubmissionService(logger *log.Logger, repository SubmissionRepository, opts ...ServiceOption) SubmissionService {
	s := &submissionService{
		logger:     logger,
		repository: repository,
		clock:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *submissionService) Submit(ctx context.Context, payload map[string]any) (*SubmitResult, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if payload == nil {
		logger.Error("Submit received empty payload")
		return nil, apperrors.NewInvalidRequestError("submission cannot be empty", nil)
	}

	category := Classify(payload)
	record := Enrich(payload, category, s.nextTimestamp())

	ctx, span := tracer.Start(ctx, "submission.Submit")
	defer span.End()
	span.SetAttributes(attribute.String("lead.category", string(category)))

	if err := s.repository.Append(ctx, category, record); err != nil {
		logger.Error("Failed to save submission", "type", category, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "append failed")
		s.observe(category, outcomeFailed)
		return nil, err
	}

	s.observe(category, outcomeSaved)

	logger.Info("New submission saved",
		"type", category,
		"timestamp", record.Timestamp(),
		"email", log.MaskEmail(record.Email()),
	)

	return &SubmitResult{Category: category, Timestamp: record.Timestamp()}, nil
}

func (s *submissionService) List(ctx context.Context, category Category) ([]Record, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if _, ok := ParseCategory(string(category)); !ok {
		logger.Error("List received unknown category", "category", category)
		return nil, apperrors.NewInvalidRequestError("unknown submission category", nil)
	}

	records, err := s.repository.List(ctx, category)
	if err != nil {
		logger.Error("Failed to list submissions", "category", category, "error", err)
		return nil, err
	}

	return records, nil
}

func (s *submissionService) Stats(ctx context.Context) (*StatsResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	stats := &StatsResponse{}
	for _, category := range Categories {
		count, err := s.repository.Count(ctx, category)
		if err != nil {
			logger.Error("Failed to count submissions", "category", category, "error", err)
			return nil, err
		}

		switch category {
		case CategoryWaitlist:
			stats.Waitlist = count
		case CategorySubscription:
			stats.Subscription = count
		}
		stats.Total += count
	}

	return stats, nil
}

// nextTimestamp returns a millisecond timestamp strictly after the previous
// one handed out by this service.
func (s *submissionService) nextTimestamp() time.Time {
	s.stampMu.Lock()
	defer s.stampMu.Unlock()

	now := s.clock().UTC().Truncate(time.Millisecond)
	if !now.After(s.lastStamp) {
		now = s.lastStamp.Add(time.Millisecond)
	}
	s.lastStamp = now

	return now
}

func (s *submissionService) observe(category Category, outcome string) {
	if s.recorder != nil {
		s.recorder.Observe(category, outcome)
	}
}

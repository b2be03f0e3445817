package submission

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/akeren/bizguard-leads/internal/log"
	apperrors "github.com/akeren/bizguard-leads/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
)

type recordedOutcome struct {
	category Category
	outcome  string
}

type fakeRecorder struct {
	outcomes []recordedOutcome
}

func (r *fakeRecorder) Observe(category Category, outcome string) {
	r.outcomes = append(r.outcomes, recordedOutcome{category: category, outcome: outcome})
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSubmissionService_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockSubmissionRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	recorder := &fakeRecorder{}
	service := NewSubmissionService(logger, mockRepo, WithClock(fixedClock(now)), WithRecorder(recorder))

	t.Run("waitlist submission", func(t *testing.T) {
		payload := map[string]any{"name": "A", "profession": "accountant", "email": "a@x.com"}

		mockRepo.EXPECT().
			Append(gomock.Any(), CategoryWaitlist, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ Category, record Record) error {
				assert.Equal(t, "A", record["name"])
				assert.Equal(t, "accountant", record["profession"])
				assert.Equal(t, "a@x.com", record.Email())
				assert.Equal(t, "waitlist", record.Source())
				assert.Equal(t, "2024-05-01T09:30:00.000Z", record.Timestamp())
				return nil
			})

		result, err := service.Submit(context.Background(), payload)

		require.NoError(t, err)
		assert.Equal(t, CategoryWaitlist, result.Category)
		assert.Equal(t, "2024-05-01T09:30:00.000Z", result.Timestamp)
	})

	t.Run("subscription submission", func(t *testing.T) {
		mockRepo.EXPECT().
			Append(gomock.Any(), CategorySubscription, gomock.Any()).
			Return(nil)

		result, err := service.Submit(context.Background(), map[string]any{"email": "b@x.com"})

		require.NoError(t, err)
		assert.Equal(t, CategorySubscription, result.Category)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.EXPECT().
			Append(gomock.Any(), CategorySubscription, gomock.Any()).
			Return(apperrors.NewStorageError("disk full", nil))

		result, err := service.Submit(context.Background(), map[string]any{"email": "c@x.com"})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeStorageError, apperrors.GetErrorType(err))
	})

	t.Run("nil payload", func(t *testing.T) {
		result, err := service.Submit(context.Background(), nil)

		assert.Error(t, err)
		assert.Nil(t, result)
	})

	assert.Equal(t, []recordedOutcome{
		{CategoryWaitlist, outcomeSaved},
		{CategorySubscription, outcomeSaved},
		{CategorySubscription, outcomeFailed},
	}, recorder.outcomes)
}

func TestSubmissionService_TimestampsAreStrictlyIncreasing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockSubmissionRepository(ctrl)
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	service := NewSubmissionService(log.NewLoggerWithJSONOutput(), mockRepo, WithClock(fixedClock(now)))

	const submissions = 10
	mockRepo.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(submissions)

	stamps := make([]string, 0, submissions)
	for i := 0; i < submissions; i++ {
		result, err := service.Submit(context.Background(), map[string]any{"email": "x@x.com"})
		require.NoError(t, err)
		stamps = append(stamps, result.Timestamp)
	}

	seen := make(map[string]struct{}, submissions)
	for _, stamp := range stamps {
		seen[stamp] = struct{}{}
	}
	assert.Len(t, seen, submissions)
	assert.True(t, sort.StringsAreSorted(stamps))
	assert.Equal(t, "2024-05-01T09:30:00.000Z", stamps[0])
	assert.Equal(t, "2024-05-01T09:30:00.009Z", stamps[submissions-1])
}

func TestSubmissionService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockSubmissionRepository(ctrl)
	service := NewSubmissionService(log.NewLoggerWithJSONOutput(), mockRepo)

	t.Run("known category", func(t *testing.T) {
		expected := []Record{{"email": "a@x.com"}}
		mockRepo.EXPECT().List(gomock.Any(), CategoryWaitlist).Return(expected, nil)

		records, err := service.List(context.Background(), CategoryWaitlist)

		require.NoError(t, err)
		assert.Equal(t, expected, records)
	})

	t.Run("unknown category", func(t *testing.T) {
		records, err := service.List(context.Background(), Category("ledger"))

		assert.Error(t, err)
		assert.Nil(t, records)
		assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
	})
}

func TestSubmissionService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockSubmissionRepository(ctrl)
	service := NewSubmissionService(log.NewLoggerWithJSONOutput(), mockRepo)

	t.Run("counts every category", func(t *testing.T) {
		mockRepo.EXPECT().Count(gomock.Any(), CategoryWaitlist).Return(int64(3), nil)
		mockRepo.EXPECT().Count(gomock.Any(), CategorySubscription).Return(int64(4), nil)

		stats, err := service.Stats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, &StatsResponse{Waitlist: 3, Subscription: 4, Total: 7}, stats)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.EXPECT().Count(gomock.Any(), CategoryWaitlist).Return(int64(0), apperrors.NewStorageError("boom", nil))

		stats, err := service.Stats(context.Background())

		assert.Error(t, err)
		assert.Nil(t, stats)
	})
}

func TestSubmissionService_SubmitSpan(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	ctrl := gomock.NewController(t)
	mockRepo := NewMockSubmissionRepository(ctrl)
	mockRepo.EXPECT().
		Append(gomock.Any(), CategoryWaitlist, gomock.Any()).
		Return(apperrors.NewStorageError("unable to save submission", nil))

	service := NewSubmissionService(log.NewLoggerWithJSONOutput(), mockRepo)
	_, err := service.Submit(context.Background(), map[string]any{"type": "waitlist", "email": "d@x.com"})
	require.Error(t, err)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "submission.Submit", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.String("lead.category", "waitlist"))
	assert.Equal(t, codes.Error, ended[0].Status().Code)
}

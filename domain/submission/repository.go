package submission

import (
	"context"
	"encoding/json"
	"time"

	"github.com/akeren/bizguard-leads/internal/models"
	"github.com/akeren/bizguard-leads/pkg/constants"
	apperrors "github.com/akeren/bizguard-leads/pkg/errors"
	"gorm.io/gorm"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=submission

type SubmissionRepository interface {
	// Append persists one enriched record to the log of the given category.
	Append(ctx context.Context, category Category, record Record) error
	// List returns every record of a category in append order. An empty log yields an empty slice.
	List(ctx context.Context, category Category) ([]Record, error)
	// Count returns the number of records stored for a category.
	Count(ctx context.Context, category Category) (int64, error)
	// Ping reports whether the underlying storage is reachable.
	Ping(ctx context.Context) error
}

type databaseRepository struct {
	db *gorm.DB
}

func NewDatabaseRepository(db *gorm.DB) SubmissionRepository {
	return &databaseRepository{db: db}
}

func (r *databaseRepository) Append(ctx context.Context, category Category, record Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return apperrors.NewInvalidRequestError("submission cannot be encoded", err)
	}

	submittedAt, err := time.Parse(constants.ISO8601MillisFormat, record.Timestamp())
	if err != nil {
		submittedAt = time.Now().UTC()
	}

	row := &models.Submission{
		Category:    string(category),
		Email:       record.Email(),
		Payload:     string(payload),
		SubmittedAt: submittedAt,
	}

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return apperrors.NewDatabaseError("unable to save submission", err)
	}

	return nil
}

func (r *databaseRepository) List(ctx context.Context, category Category) ([]Record, error) {
	var rows []models.Submission

	err := r.db.WithContext(ctx).
		Where("category = ?", string(category)).
		Order("submitted_at ASC").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("unable to fetch submissions", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		record, err := decodeRecord([]byte(row.Payload))
		if err != nil {
			return nil, apperrors.NewDatabaseError("stored submission is not valid JSON", err)
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *databaseRepository) Count(ctx context.Context, category Category) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("category = ?", string(category)).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.NewDatabaseError("unable to count submissions", err)
	}

	return count, nil
}

func (r *databaseRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

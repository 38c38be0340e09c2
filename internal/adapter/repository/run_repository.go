package repository

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/fireflies-agent/internal/domain/entities"
	repo "github.com/johnquangdev/fireflies-agent/internal/domain/repositories"
)

type runRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a run report repository backed by GORM
func NewRunRepository(db *gorm.DB) repo.RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) SaveRunReport(ctx context.Context, report *entities.RunReport) error {
	record, err := entities.NewRunRecord(report)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *runRepository) GetRunReportByID(ctx context.Context, id uuid.UUID) (*entities.RunReport, error) {
	var record entities.RunRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.ToReport()
}

func (r *runRepository) ListRunReportsByTranscript(ctx context.Context, transcriptID string) ([]*entities.RunReport, error) {
	var records []entities.RunRecord
	err := r.db.WithContext(ctx).
		Where("transcript_id = ?", transcriptID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	reports := make([]*entities.RunReport, 0, len(records))
	for i := range records {
		report, err := records[i].ToReport()
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

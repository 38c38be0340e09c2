package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/fireflies-agent/internal/domain/entities"
)

// RunRepository persists finalized run reports
type RunRepository interface {
	SaveRunReport(ctx context.Context, report *entities.RunReport) error
	GetRunReportByID(ctx context.Context, id uuid.UUID) (*entities.RunReport, error)
	ListRunReportsByTranscript(ctx context.Context, transcriptID string) ([]*entities.RunReport, error)
}

package presenter

import (
	rundto "github.com/johnquangdev/fireflies-agent/internal/adapter/dto/run"
	"github.com/johnquangdev/fireflies-agent/internal/domain/entities"
)

// ToRunReportResponse maps a domain RunReport to its API view
func ToRunReportResponse(report *entities.RunReport) *rundto.RunReportResponse {
	items := make([]rundto.ActionItemResponse, 0, len(report.Extraction.ActionItems))
	for _, item := range report.Extraction.ActionItems {
		items = append(items, rundto.ActionItemResponse{
			Description: item.Description,
			Owner:       item.Owner,
			DueDate:     item.DueDate,
		})
	}

	outcomes := make([]rundto.SinkOutcomeResponse, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		outcomes = append(outcomes, rundto.SinkOutcomeResponse{
			SinkName: o.SinkName,
			Status:   string(o.Status),
			Detail:   o.Detail,
		})
	}

	return &rundto.RunReportResponse{
		ID:           report.ID.String(),
		TranscriptID: report.TranscriptID,
		Extraction: rundto.ExtractionResponse{
			Summary:           report.Extraction.Summary,
			ActionItems:       items,
			FollowUpRequested: report.Extraction.FollowUpRequested,
			UsedFallback:      report.Extraction.UsedFallback,
		},
		Outcomes:      outcomes,
		OverallStatus: string(report.OverallStatus),
		CreatedAt:     report.CreatedAt,
	}
}

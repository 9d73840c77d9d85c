package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"adops_backend/internal/services/dto"
	"adops_backend/pkg/apperrors"
)

// Export produces downloadable reports from the numbers the analytics
// page already computed. It does not recompute anything itself.
type ExportService interface {
	Export(ctx context.Context, campaignID string, req *dto.ExportRequest) (*ExportResult, error)
}

type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

type exportService struct {
	analyticsService AnalyticsService
}

func NewExportService(analyticsService AnalyticsService) ExportService {
	return &exportService{analyticsService: analyticsService}
}

func (s *exportService) Export(ctx context.Context, campaignID string, req *dto.ExportRequest) (*ExportResult, error) {
	switch req.Format {
	case "csv":
		return s.exportCSV(ctx, campaignID, req.TimeRange)
	case "pdf":
		// PDF rendering is not wired up; the UI offers it but the
		// backend has only ever shipped CSV.
		return nil, apperrors.New(apperrors.CodeInvalidOperation, "export",
			"PDF export is not supported", http.StatusNotImplemented)
	default:
		return nil, apperrors.NewBadRequestError("Unknown export format: " + req.Format)
	}
}

func (s *exportService) exportCSV(ctx context.Context, campaignID, timeRange string) (*ExportResult, error) {
	result, err := s.analyticsService.CampaignAnalytics(ctx, campaignID, timeRange)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{
		"date", "impressions", "engagements", "conversions",
		"ctr_pct", "conversion_rate_pct", "spend", "avg_dwell_time_s",
	})
	for _, p := range result.Series {
		_ = w.Write([]string{
			p.Date,
			strconv.FormatInt(p.Impressions, 10),
			strconv.FormatInt(p.Engagements, 10),
			strconv.FormatInt(p.Conversions, 10),
			strconv.FormatFloat(p.CTR, 'f', 2, 64),
			strconv.FormatFloat(p.ConversionRate, 'f', 2, 64),
			strconv.FormatFloat(p.Spend, 'f', 2, 64),
			strconv.FormatFloat(p.AverageDwellTime, 'f', 2, 64),
		})
	}

	// Summary footer row
	_ = w.Write([]string{
		"TOTAL",
		strconv.FormatInt(result.Summary.TotalImpressions, 10),
		strconv.FormatInt(result.Summary.TotalEngagements, 10),
		strconv.FormatInt(result.Summary.TotalConversions, 10),
		strconv.FormatFloat(result.Summary.AverageCTR, 'f', 2, 64),
		strconv.FormatFloat(result.Summary.AverageConversionRate, 'f', 2, 64),
		strconv.FormatFloat(result.Summary.TotalSpend, 'f', 2, 64),
		strconv.FormatFloat(result.Summary.AverageDwellTime, 'f', 2, 64),
	})

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("campaign-%s-analytics-%s.csv", campaignID, result.Range),
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

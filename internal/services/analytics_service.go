package services

import (
	"context"
	"hash/fnv"
	"time"

	"adops_backend/internal/analytics"
	"adops_backend/internal/models"
	"adops_backend/internal/repositories"
	"adops_backend/internal/services/dto"
	"adops_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

// DefaultTimeRange is used when the page does not pass a selector.
const DefaultTimeRange = "30d"

var rangeDays = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

type AnalyticsService interface {
	CampaignAnalytics(ctx context.Context, campaignID, timeRange string) (*dto.CampaignAnalyticsResponse, error)
	IngestRecords(ctx context.Context, campaignID string, req *dto.IngestRecordsRequest) (int, error)
}

type analyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
	campaignRepo  repositories.CampaignRepository
}

func NewAnalyticsService(
	analyticsRepo repositories.AnalyticsRepository,
	campaignRepo repositories.CampaignRepository,
) AnalyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		campaignRepo:  campaignRepo,
	}
}

// CampaignAnalytics runs the full pipeline for the selected window:
// fetch, normalize, series, summary, comparison, breakdowns. The
// engine itself is pure; this method owns all I/O.
func (s *analyticsService) CampaignAnalytics(ctx context.Context, campaignID, timeRange string) (*dto.CampaignAnalyticsResponse, error) {
	if timeRange == "" {
		timeRange = DefaultTimeRange
	}

	if _, err := s.campaignRepo.GetByID(campaignID); err != nil {
		if apperrors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, apperrors.NewNotFoundError("campaign", "Campaign not found")
		}
		return nil, apperrors.InternalError(err)
	}

	from, to := resolveWindow(timeRange, time.Now())
	records, err := s.analyticsRepo.FetchRecords(ctx, campaignID, from, to)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "analytics",
			"Failed to load analytics records", 500)
	}

	normalized := analytics.Normalize(records)
	summary := analytics.Summarize(normalized)

	resp := &dto.CampaignAnalyticsResponse{
		CampaignID: campaignID,
		Range:      timeRange,
		Series:     analytics.BuildSeries(normalized),
		Summary:    summary,
		Breakdowns: analytics.BuildBreakdowns(normalized),
	}

	if len(normalized) > 0 {
		prior, synthetic, err := s.priorSummary(ctx, campaignID, normalized, summary)
		if err != nil {
			return nil, err
		}
		resp.Comparison = analytics.Compare(summary, prior)
		resp.ComparisonSynthetic = synthetic
	}

	return resp, nil
}

// priorSummary fetches and summarizes the equal-length window that
// precedes the current one. Campaigns with no rows before the current
// window fall back to the synthesized placeholder, seeded per
// campaign and window start so the displayed deltas are stable.
func (s *analyticsService) priorSummary(ctx context.Context, campaignID string, current []analytics.NormalizedRecord, summary analytics.Summary) (analytics.Summary, bool, error) {
	earliest := current[0].Date
	start, end := analytics.PriorWindow(earliest, len(current))

	// Cheap no-history check before fetching a whole window.
	earliestEver, err := s.analyticsRepo.EarliestRecordDate(ctx, campaignID)
	if err != nil {
		return analytics.Summary{}, false, apperrors.Wrap(err, apperrors.CodeDatabaseError, "analytics",
			"Failed to inspect analytics history", 500)
	}
	if earliestEver == nil || !earliestEver.Before(earliest) {
		seed := comparisonSeed(campaignID, start)
		return analytics.SyntheticPrior(summary, seed), true, nil
	}

	records, err := s.analyticsRepo.FetchRecords(ctx, campaignID, &start, end)
	if err != nil {
		return analytics.Summary{}, false, apperrors.Wrap(err, apperrors.CodeDatabaseError, "analytics",
			"Failed to load prior-window records", 500)
	}

	if len(records) == 0 {
		seed := comparisonSeed(campaignID, start)
		return analytics.SyntheticPrior(summary, seed), true, nil
	}

	return analytics.Summarize(analytics.Normalize(records)), false, nil
}

// IngestRecords upserts a batch of daily records for the campaign and
// returns how many rows were written.
func (s *analyticsService) IngestRecords(ctx context.Context, campaignID string, req *dto.IngestRecordsRequest) (int, error) {
	if _, err := s.campaignRepo.GetByID(campaignID); err != nil {
		if apperrors.Is(err, repositories.ErrCampaignNotFound) {
			return 0, apperrors.NewNotFoundError("campaign", "Campaign not found")
		}
		return 0, apperrors.InternalError(err)
	}

	// Parse the whole batch before touching the database so a bad
	// date rejects the request without leaving partial rows behind.
	rows := make([]*models.AnalyticsRecord, 0, len(req.Records))
	for i := range req.Records {
		in := &req.Records[i]

		date, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return 0, apperrors.NewBadRequestError("Invalid record date: " + in.Date)
		}

		rows = append(rows, &models.AnalyticsRecord{
			CampaignID:       campaignID,
			Date:             date,
			Impressions:      in.Impressions,
			Engagements:      in.Engagements,
			Conversions:      in.Conversions,
			CTR:              in.CTR,
			ConversionRate:   in.ConversionRate,
			AverageDwellTime: in.AverageDwellTime,
			CostData:         datatypes.JSON(in.CostData),
			AudienceMetrics:  datatypes.JSON(in.AudienceMetrics),
			EmotionMetrics:   datatypes.JSON(in.EmotionMetrics),
		})
	}

	written := 0
	for _, record := range rows {
		if err := s.analyticsRepo.UpsertRecord(ctx, record); err != nil {
			return written, apperrors.Wrap(err, apperrors.CodeDatabaseError, "analytics",
				"Failed to store analytics record", 500)
		}
		written++
	}

	return written, nil
}

// resolveWindow maps a range token to [from, to]. A nil from means
// unbounded ("all").
func resolveWindow(timeRange string, now time.Time) (*time.Time, time.Time) {
	to := now
	days, ok := rangeDays[timeRange]
	if !ok { // "all"
		return nil, to
	}

	from := now.AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)
	return &from, to
}

func comparisonSeed(campaignID string, windowStart time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(campaignID))
	h.Write([]byte(windowStart.Format("2006-01-02")))
	return int64(h.Sum64())
}

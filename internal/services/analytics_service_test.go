package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"adops_backend/internal/analytics"
	"adops_backend/internal/models"
	"adops_backend/internal/repositories"
	"adops_backend/internal/services/dto"
	"adops_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type fakeCampaignRepo struct {
	campaigns map[string]*models.Campaign
}

func newFakeCampaignRepo(ids ...string) *fakeCampaignRepo {
	r := &fakeCampaignRepo{campaigns: map[string]*models.Campaign{}}
	for _, id := range ids {
		c := &models.Campaign{Name: "Campaign " + id}
		c.ID = id
		r.campaigns[id] = c
	}
	return r
}

func (r *fakeCampaignRepo) Create(c *models.Campaign) error { r.campaigns[c.ID] = c; return nil }

func (r *fakeCampaignRepo) GetByID(id string) (*models.Campaign, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return nil, repositories.ErrCampaignNotFound
	}
	return c, nil
}

func (r *fakeCampaignRepo) Update(c *models.Campaign) error { r.campaigns[c.ID] = c; return nil }

func (r *fakeCampaignRepo) UpdateStatus(id string, status models.CampaignStatus) error {
	c, ok := r.campaigns[id]
	if !ok {
		return repositories.ErrCampaignNotFound
	}
	c.Status = status
	return nil
}

func (r *fakeCampaignRepo) Delete(id string) error { delete(r.campaigns, id); return nil }

func (r *fakeCampaignRepo) List(repositories.CampaignFilter) ([]models.Campaign, int64, error) {
	return nil, 0, nil
}

func (r *fakeCampaignRepo) CountByStatus(models.CampaignStatus) (int64, error) { return 0, nil }

// fakeAnalyticsRepo serves records keyed by date, mimicking the
// window filtering the SQL implementation does.
type fakeAnalyticsRepo struct {
	records  []analytics.Record
	upserted []*models.AnalyticsRecord
}

func (r *fakeAnalyticsRepo) FetchRecords(_ context.Context, _ string, from *time.Time, to time.Time) ([]analytics.Record, error) {
	var out []analytics.Record
	for _, rec := range r.records {
		if rec.Date.After(to) {
			continue
		}
		if from != nil && rec.Date.Before(*from) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) UpsertRecord(_ context.Context, record *models.AnalyticsRecord) error {
	r.upserted = append(r.upserted, record)
	return nil
}

func (r *fakeAnalyticsRepo) EarliestRecordDate(_ context.Context, _ string) (*time.Time, error) {
	if len(r.records) == 0 {
		return nil, nil
	}
	earliest := r.records[0].Date
	for _, rec := range r.records[1:] {
		if rec.Date.Before(earliest) {
			earliest = rec.Date
		}
	}
	return &earliest, nil
}

func dailyRecords(start time.Time, days int, impressions int64) []analytics.Record {
	out := make([]analytics.Record, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, analytics.Record{
			Date:        start.AddDate(0, 0, i),
			Impressions: impressions,
			Engagements: impressions / 10,
			Conversions: impressions / 100,
			CTR:         0.1,
		})
	}
	return out
}

// --- CampaignAnalytics ---

func TestCampaignAnalytics_UnknownCampaign(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{}, newFakeCampaignRepo())

	_, err := svc.CampaignAnalytics(context.Background(), "missing", "7d")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestCampaignAnalytics_DefaultsRange(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{}, newFakeCampaignRepo("c1"))

	resp, err := svc.CampaignAnalytics(context.Background(), "c1", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeRange, resp.Range)
}

func TestCampaignAnalytics_EmptyWindow(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{}, newFakeCampaignRepo("c1"))

	resp, err := svc.CampaignAnalytics(context.Background(), "c1", "30d")
	require.NoError(t, err)

	assert.Empty(t, resp.Series)
	assert.Equal(t, analytics.Summary{}, resp.Summary)
	// No records means no comparison at all.
	assert.Equal(t, analytics.Comparison{}, resp.Comparison)
	assert.False(t, resp.ComparisonSynthetic)
	// Breakdowns still render from the fallback distributions.
	assert.NotEmpty(t, resp.Breakdowns.Age)
	assert.NotEmpty(t, resp.Breakdowns.Device)
}

func TestCampaignAnalytics_RealPriorWindow(t *testing.T) {
	now := time.Now()
	currentStart := now.AddDate(0, 0, -6)

	repo := &fakeAnalyticsRepo{}
	// Prior week performed at half the current volume.
	repo.records = append(repo.records, dailyRecords(currentStart.AddDate(0, 0, -7), 7, 500)...)
	repo.records = append(repo.records, dailyRecords(currentStart, 7, 1000)...)

	svc := NewAnalyticsService(repo, newFakeCampaignRepo("c1"))

	resp, err := svc.CampaignAnalytics(context.Background(), "c1", "7d")
	require.NoError(t, err)

	assert.False(t, resp.ComparisonSynthetic)
	assert.InDelta(t, 100.0, resp.Comparison.Impressions, 0.001)
}

func TestCampaignAnalytics_SyntheticWhenNoHistory(t *testing.T) {
	now := time.Now()
	repo := &fakeAnalyticsRepo{records: dailyRecords(now.AddDate(0, 0, -6), 7, 1000)}

	svc := NewAnalyticsService(repo, newFakeCampaignRepo("c1"))

	first, err := svc.CampaignAnalytics(context.Background(), "c1", "7d")
	require.NoError(t, err)
	assert.True(t, first.ComparisonSynthetic)

	// The synthesized baseline is seeded, so a rerun shows the same deltas.
	second, err := svc.CampaignAnalytics(context.Background(), "c1", "7d")
	require.NoError(t, err)
	assert.Equal(t, first.Comparison, second.Comparison)
}

// --- IngestRecords ---

func TestIngestRecords_WritesEveryRow(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := NewAnalyticsService(repo, newFakeCampaignRepo("c1"))

	req := &dto.IngestRecordsRequest{
		Records: []dto.IngestRecordRequest{
			{Date: "2026-08-01", Impressions: 100, Engagements: 10, CTR: 0.1},
			{Date: "2026-08-02", Impressions: 200, Engagements: 20, CTR: 0.1,
				CostData: json.RawMessage(`{"spend": 12.5}`)},
		},
	}

	written, err := svc.IngestRecords(context.Background(), "c1", req)
	require.NoError(t, err)
	assert.Equal(t, 2, written)
	require.Len(t, repo.upserted, 2)
	assert.Equal(t, "c1", repo.upserted[0].CampaignID)
	assert.Equal(t, int64(200), repo.upserted[1].Impressions)
}

func TestIngestRecords_BadDateWritesNothing(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := NewAnalyticsService(repo, newFakeCampaignRepo("c1"))

	req := &dto.IngestRecordsRequest{
		Records: []dto.IngestRecordRequest{
			{Date: "2026-08-01", Impressions: 100},
			{Date: "01-08-2026", Impressions: 200},
		},
	}

	written, err := svc.IngestRecords(context.Background(), "c1", req)
	require.Error(t, err)
	assert.Equal(t, 0, written)
	assert.Empty(t, repo.upserted)
}

func TestIngestRecords_UnknownCampaign(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{}, newFakeCampaignRepo())

	_, err := svc.IngestRecords(context.Background(), "missing", &dto.IngestRecordsRequest{
		Records: []dto.IngestRecordRequest{{Date: "2026-08-01"}},
	})
	require.Error(t, err)
}

// --- resolveWindow ---

func TestResolveWindow(t *testing.T) {
	now := time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)

	from, to := resolveWindow("7d", now)
	require.NotNil(t, from)
	assert.Equal(t, now, to)
	assert.Equal(t, now.AddDate(0, 0, -6).Truncate(24*time.Hour), *from)

	from, _ = resolveWindow("all", now)
	assert.Nil(t, from)
}

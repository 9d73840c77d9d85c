package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"adops_backend/internal/analytics"
	"adops_backend/internal/models"
)

// AnalyticsRepository reads and writes the per-day performance rows.
// This path uses database/sql directly: the fetch is a hot query on
// the analytics page and the upsert needs ON CONFLICT.
type AnalyticsRepository interface {
	FetchRecords(ctx context.Context, campaignID string, from *time.Time, to time.Time) ([]analytics.Record, error)
	UpsertRecord(ctx context.Context, record *models.AnalyticsRecord) error
	EarliestRecordDate(ctx context.Context, campaignID string) (*time.Time, error)
}

type analyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// FetchRecords returns the campaign's records in [from, to], in
// chronological order. A nil from means no lower bound (the "all"
// range token).
func (r *analyticsRepository) FetchRecords(ctx context.Context, campaignID string, from *time.Time, to time.Time) ([]analytics.Record, error) {
	query := `
		SELECT date, impressions, engagements, conversions, ctr, conversion_rate,
		       average_dwell_time, cost_data, audience_metrics, emotion_metrics
		FROM analytics_records
		WHERE campaign_id = $1 AND date <= $2`
	args := []interface{}{campaignID, to}

	if from != nil {
		query += ` AND date >= $3`
		args = append(args, *from)
	}
	query += ` ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []analytics.Record
	for rows.Next() {
		var (
			rec       analytics.Record
			dwell     sql.NullFloat64
			cost      []byte
			audience  []byte
			emotion   []byte
		)
		if err := rows.Scan(
			&rec.Date, &rec.Impressions, &rec.Engagements, &rec.Conversions,
			&rec.CTR, &rec.ConversionRate, &dwell, &cost, &audience, &emotion,
		); err != nil {
			return nil, err
		}

		if dwell.Valid {
			v := dwell.Float64
			rec.AverageDwellTime = &v
		}
		rec.CostData = json.RawMessage(cost)
		rec.AudienceMetrics = json.RawMessage(audience)
		rec.EmotionMetrics = json.RawMessage(emotion)

		records = append(records, rec)
	}

	return records, rows.Err()
}

// UpsertRecord inserts or replaces the day's row for the campaign.
func (r *analyticsRepository) UpsertRecord(ctx context.Context, record *models.AnalyticsRecord) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO analytics_records (
			campaign_id, date, impressions, engagements, conversions,
			ctr, conversion_rate, average_dwell_time,
			cost_data, audience_metrics, emotion_metrics
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (campaign_id, date) DO UPDATE SET
			impressions = EXCLUDED.impressions,
			engagements = EXCLUDED.engagements,
			conversions = EXCLUDED.conversions,
			ctr = EXCLUDED.ctr,
			conversion_rate = EXCLUDED.conversion_rate,
			average_dwell_time = EXCLUDED.average_dwell_time,
			cost_data = EXCLUDED.cost_data,
			audience_metrics = EXCLUDED.audience_metrics,
			emotion_metrics = EXCLUDED.emotion_metrics,
			updated_at = NOW()
		RETURNING id
	`,
		record.CampaignID, record.Date, record.Impressions, record.Engagements,
		record.Conversions, record.CTR, record.ConversionRate, record.AverageDwellTime,
		nullableJSON(record.CostData), nullableJSON(record.AudienceMetrics), nullableJSON(record.EmotionMetrics),
	).Scan(&record.ID)
}

// EarliestRecordDate returns the campaign's first recorded day, or nil
// when the campaign has no records at all.
func (r *analyticsRepository) EarliestRecordDate(ctx context.Context, campaignID string) (*time.Time, error) {
	var earliest sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT MIN(date) FROM analytics_records WHERE campaign_id = $1
	`, campaignID).Scan(&earliest)
	if err != nil {
		return nil, err
	}
	if !earliest.Valid {
		return nil, nil
	}
	return &earliest.Time, nil
}

func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return []byte(b)
}

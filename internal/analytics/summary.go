package analytics

import (
	"context"
	"errors"

	"backend-vitalhub/internal/shared/metric"
)

// Completeness flags which record types contributed to a summary.
// has_workout stays false: workouts are stored but not aggregated yet.
type Completeness struct {
	HasSleep         bool `json:"has_sleep"`
	HasRecovery      bool `json:"has_recovery"`
	HasWorkout       bool `json:"has_workout"`
	HasCycle         bool `json:"has_cycle"`
	HasPhysiological bool `json:"has_physiological"`
}

// DailySummary is the per-user, per-day wellbeing rollup. Every metric is
// a tagged optional: absent means the source record was missing for that
// day, never zero.
type DailySummary struct {
	UserID             string       `json:"user_id"`
	RecordID           string       `json:"record_id"`
	Date               string       `json:"date"`
	RecoveryScore      metric.Value `json:"recovery_score"`
	SleepQualityScore  metric.Value `json:"sleep_quality_score"`
	TotalStrain        metric.Value `json:"total_strain"`
	SleepDurationHours metric.Value `json:"sleep_duration_hours"`
	AverageHRV         metric.Value `json:"average_hrv"`
	RestingHeartRate   metric.Value `json:"resting_heart_rate"`
	RespiratoryRate    metric.Value `json:"respiratory_rate"`
	Completeness       Completeness `json:"data_completeness"`
	ComputedAt         int64        `json:"computed_at"`
	TTL                int64        `json:"ttl"`
}

// Query selects a date range of stored summaries. The zero value means
// the last 30 days, newest first, at most 30 results.
type Query struct {
	StartDate   string
	EndDate     string
	Limit       int
	OldestFirst bool
}

// ErrStoreNotConfigured is returned by a SummaryStore that has no backing
// handle. Callers surface it directly rather than falling back.
var ErrStoreNotConfigured = errors.New("summary store not configured")

// SummaryStore is the persistence boundary for computed summaries, keyed
// by (userID, recordID).
type SummaryStore interface {
	Put(ctx context.Context, summary DailySummary) error
	QueryRange(ctx context.Context, userID string, q Query) ([]DailySummary, error)
}

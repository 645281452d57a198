package summarystore

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"backend-vitalhub/internal/analytics"
	"backend-vitalhub/internal/shared/metric"

	"github.com/redis/go-redis/v9"
)

const (
	defaultLimit     = 30
	defaultRangeDays = 30
	dateLayout       = "2006-01-02"
)

// Store keeps computed summaries in Redis, keyed by (userID, recordID).
// Record ids sort lexicographically by date ("summary#YYYY-MM-DD"), so a
// per-user sorted set serves date-range queries.
type Store struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Put upserts one summary. The payload expires at the summary's TTL.
func (s *Store) Put(ctx context.Context, summary analytics.DailySummary) error {
	if s.rdb == nil {
		return analytics.ErrStoreNotConfigured
	}

	payload, err := json.Marshal(storedFromSummary(summary))
	if err != nil {
		return err
	}

	key := payloadKey(summary.UserID, summary.RecordID)
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key, payload, 0)
	pipe.ExpireAt(ctx, key, time.Unix(summary.TTL, 0))
	pipe.ZAdd(ctx, indexKey(summary.UserID), redis.Z{Member: summary.RecordID})
	_, err = pipe.Exec(ctx)
	return err
}

// QueryRange returns stored summaries whose record id falls within the
// date range. Backend read failures degrade to an empty result, and
// entries that fail to decode are skipped.
func (s *Store) QueryRange(ctx context.Context, userID string, q analytics.Query) ([]analytics.DailySummary, error) {
	if s.rdb == nil {
		return nil, analytics.ErrStoreNotConfigured
	}

	today := time.Now().UTC()
	if q.EndDate == "" {
		q.EndDate = today.Format(dateLayout)
	}
	if q.StartDate == "" {
		q.StartDate = today.AddDate(0, 0, -defaultRangeDays).Format(dateLayout)
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}

	rangeBy := &redis.ZRangeBy{
		Min:   "[summary#" + q.StartDate,
		Max:   "[summary#" + q.EndDate,
		Count: int64(q.Limit),
	}
	var cmd *redis.StringSliceCmd
	if q.OldestFirst {
		cmd = s.rdb.ZRangeByLex(ctx, indexKey(userID), rangeBy)
	} else {
		cmd = s.rdb.ZRevRangeByLex(ctx, indexKey(userID), rangeBy)
	}
	recordIDs, err := cmd.Result()
	if err != nil {
		log.Printf("summary range query failed for user %s: %v", userID, err)
		return []analytics.DailySummary{}, nil
	}

	summaries := make([]analytics.DailySummary, 0, len(recordIDs))
	for _, recordID := range recordIDs {
		raw, err := s.rdb.Get(ctx, payloadKey(userID, recordID)).Bytes()
		if err != nil {
			if err != redis.Nil {
				log.Printf("summary fetch failed for %s: %v", recordID, err)
			}
			continue
		}
		var stored storedSummary
		if err := json.Unmarshal(raw, &stored); err != nil {
			log.Printf("skipping unreadable summary %s: %v", recordID, err)
			continue
		}
		summaries = append(summaries, stored.toSummary())
	}
	return summaries, nil
}

func payloadKey(userID, recordID string) string {
	return "summary:" + userID + ":" + recordID
}

func indexKey(userID string) string {
	return "summaries:" + userID
}

// storedSummary is the wire shape: absent metrics are omitted entirely
// and numeric fields are truncated to two decimals.
type storedSummary struct {
	UserID             string                `json:"user_id"`
	RecordID           string                `json:"record_id"`
	Date               string                `json:"date"`
	RecoveryScore      *float64              `json:"recovery_score,omitempty"`
	SleepQualityScore  *float64              `json:"sleep_quality_score,omitempty"`
	TotalStrain        *float64              `json:"total_strain,omitempty"`
	SleepDurationHours *float64              `json:"sleep_duration_hours,omitempty"`
	AverageHRV         *float64              `json:"average_hrv,omitempty"`
	RestingHeartRate   *float64              `json:"resting_heart_rate,omitempty"`
	RespiratoryRate    *float64              `json:"respiratory_rate,omitempty"`
	Completeness       analytics.Completeness `json:"data_completeness"`
	ComputedAt         int64                 `json:"computed_at"`
	TTL                int64                 `json:"ttl"`
}

func storedFromSummary(s analytics.DailySummary) storedSummary {
	return storedSummary{
		UserID:             s.UserID,
		RecordID:           s.RecordID,
		Date:               s.Date,
		RecoveryScore:      truncPtr(s.RecoveryScore),
		SleepQualityScore:  truncPtr(s.SleepQualityScore),
		TotalStrain:        truncPtr(s.TotalStrain),
		SleepDurationHours: truncPtr(s.SleepDurationHours),
		AverageHRV:         truncPtr(s.AverageHRV),
		RestingHeartRate:   truncPtr(s.RestingHeartRate),
		RespiratoryRate:    truncPtr(s.RespiratoryRate),
		Completeness:       s.Completeness,
		ComputedAt:         s.ComputedAt,
		TTL:                s.TTL,
	}
}

func (st storedSummary) toSummary() analytics.DailySummary {
	return analytics.DailySummary{
		UserID:             st.UserID,
		RecordID:           st.RecordID,
		Date:               st.Date,
		RecoveryScore:      metric.FromPtr(st.RecoveryScore),
		SleepQualityScore:  metric.FromPtr(st.SleepQualityScore),
		TotalStrain:        metric.FromPtr(st.TotalStrain),
		SleepDurationHours: metric.FromPtr(st.SleepDurationHours),
		AverageHRV:         metric.FromPtr(st.AverageHRV),
		RestingHeartRate:   metric.FromPtr(st.RestingHeartRate),
		RespiratoryRate:    metric.FromPtr(st.RespiratoryRate),
		Completeness:       st.Completeness,
		ComputedAt:         st.ComputedAt,
		TTL:                st.TTL,
	}
}

func truncPtr(v metric.Value) *float64 {
	f, ok := v.Get()
	if !ok {
		return nil
	}
	t := metric.Trunc2(f)
	return &t
}

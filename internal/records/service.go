package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend-vitalhub/internal/db"
	"backend-vitalhub/internal/shared/metric"

	"github.com/jackc/pgx/v5"
)

// Service persists raw wearable records and serves per-day lookups for
// summary computation.
type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

var nowMillis = func() int64 { return time.Now().UnixMilli() }

func (s *Service) SaveSleep(ctx context.Context, rec SleepRecord) (SleepRecord, error) {
	if err := rec.Validate(); err != nil {
		return SleepRecord{}, err
	}
	if rec.RecordID == "" {
		rec.RecordID = fmt.Sprintf("sleep#%d", rec.EndTime)
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = nowMillis()
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO sleep_records (
			user_id, record_id, sleep_id, start_time, end_time,
			duration_ms, quality_duration_ms, latency_ms, disturbance_count,
			light_ms, deep_ms, rem_ms, awake_ms,
			need_baseline_ms, need_debt_ms, need_strain_ms, need_total_ms,
			respiratory_rate, heart_rate, hrv, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		ON CONFLICT (user_id, record_id) DO UPDATE SET
			duration_ms=EXCLUDED.duration_ms,
			quality_duration_ms=EXCLUDED.quality_duration_ms,
			latency_ms=EXCLUDED.latency_ms,
			disturbance_count=EXCLUDED.disturbance_count
	`, rec.UserID, rec.RecordID, rec.SleepID, rec.StartTime, rec.EndTime,
		rec.Duration, rec.QualityDuration, rec.Latency, rec.DisturbanceCount,
		rec.Stages.Light, rec.Stages.Deep, rec.Stages.REM, rec.Stages.Awake,
		rec.Need.Baseline, rec.Need.Debt, rec.Need.Strain, rec.Need.Total,
		rec.RespiratoryRate, rec.HeartRate, rec.HRV, rec.CreatedAt)
	if err != nil {
		return SleepRecord{}, err
	}
	return rec, nil
}

func (s *Service) SaveRecovery(ctx context.Context, rec RecoveryRecord) (RecoveryRecord, error) {
	if err := rec.Validate(); err != nil {
		return RecoveryRecord{}, err
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = nowMillis()
	}
	if rec.RecordID == "" {
		rec.RecordID = fmt.Sprintf("recovery#%d", rec.CreatedAt)
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO recovery_records (
			user_id, record_id, cycle_id, recovery_score, hrv,
			resting_heart_rate, hrv_rmssd, spo2, skin_temp, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (user_id, record_id) DO UPDATE SET
			recovery_score=EXCLUDED.recovery_score,
			hrv=EXCLUDED.hrv,
			resting_heart_rate=EXCLUDED.resting_heart_rate
	`, rec.UserID, rec.RecordID, rec.CycleID, rec.RecoveryScore, rec.HRV,
		rec.RestingHeartRate, rec.HRVRMSSD, rec.SpO2.Ptr(), rec.SkinTemp.Ptr(), rec.CreatedAt)
	if err != nil {
		return RecoveryRecord{}, err
	}
	return rec, nil
}

func (s *Service) SaveCycle(ctx context.Context, rec CycleRecord) (CycleRecord, error) {
	if err := rec.Validate(); err != nil {
		return CycleRecord{}, err
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = nowMillis()
	}
	if rec.RecordID == "" {
		rec.RecordID = fmt.Sprintf("cycle#%d", rec.EndTime)
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO cycle_records (
			user_id, record_id, cycle_id, start_time, end_time, days,
			strain, kilojoules, average_heart_rate, max_heart_rate, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (user_id, record_id) DO UPDATE SET
			end_time=EXCLUDED.end_time,
			days=EXCLUDED.days,
			strain=EXCLUDED.strain,
			kilojoules=EXCLUDED.kilojoules
	`, rec.UserID, rec.RecordID, rec.CycleID, rec.StartTime, rec.EndTime, rec.Days,
		rec.Strain, rec.Kilojoules, rec.AverageHeartRate, rec.MaxHeartRate, rec.CreatedAt)
	if err != nil {
		return CycleRecord{}, err
	}
	return rec, nil
}

func (s *Service) SaveWorkout(ctx context.Context, rec WorkoutRecord) (WorkoutRecord, error) {
	if err := rec.Validate(); err != nil {
		return WorkoutRecord{}, err
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = nowMillis()
	}
	if rec.RecordID == "" {
		rec.RecordID = fmt.Sprintf("workout#%d", rec.EndTime)
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO workout_records (
			user_id, record_id, workout_id, start_time, end_time, duration_ms,
			strain, average_heart_rate, max_heart_rate, kilojoules,
			sport_id, sport_name, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (user_id, record_id) DO NOTHING
	`, rec.UserID, rec.RecordID, rec.WorkoutID, rec.StartTime, rec.EndTime, rec.Duration,
		rec.Strain, rec.AverageHeartRate, rec.MaxHeartRate, rec.Kilojoules,
		rec.SportID, rec.SportName, rec.CreatedAt)
	if err != nil {
		return WorkoutRecord{}, err
	}
	return rec, nil
}

func (s *Service) SavePhysiological(ctx context.Context, rec PhysiologicalSample) (PhysiologicalSample, error) {
	if err := rec.Validate(); err != nil {
		return PhysiologicalSample{}, err
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = nowMillis()
	}
	if rec.RecordID == "" {
		rec.RecordID = fmt.Sprintf("physiological#%d", rec.Timestamp)
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO physiological_samples (
			user_id, record_id, ts, heart_rate, hrv,
			respiratory_rate, skin_temp, spo2, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (user_id, record_id) DO NOTHING
	`, rec.UserID, rec.RecordID, rec.Timestamp, rec.HeartRate, rec.HRV.Ptr(),
		rec.RespiratoryRate, rec.SkinTemp, rec.SpO2.Ptr(), rec.CreatedAt)
	if err != nil {
		return PhysiologicalSample{}, err
	}
	return rec, nil
}

// SleepForDay returns the sleep session that ended within the given day,
// or nil when none was recorded.
func (s *Service) SleepForDay(ctx context.Context, userID, date string) (*SleepRecord, error) {
	startMs, endMs, err := DayWindow(date)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(ctx, `
		SELECT user_id, record_id, sleep_id, start_time, end_time,
			duration_ms, quality_duration_ms, latency_ms, disturbance_count,
			light_ms, deep_ms, rem_ms, awake_ms,
			need_baseline_ms, need_debt_ms, need_strain_ms, need_total_ms,
			respiratory_rate, heart_rate, hrv, created_at
		FROM sleep_records
		WHERE user_id=$1 AND end_time >= $2 AND end_time < $3
		ORDER BY end_time DESC
		LIMIT 1
	`, userID, startMs, endMs)

	var rec SleepRecord
	err = row.Scan(&rec.UserID, &rec.RecordID, &rec.SleepID, &rec.StartTime, &rec.EndTime,
		&rec.Duration, &rec.QualityDuration, &rec.Latency, &rec.DisturbanceCount,
		&rec.Stages.Light, &rec.Stages.Deep, &rec.Stages.REM, &rec.Stages.Awake,
		&rec.Need.Baseline, &rec.Need.Debt, &rec.Need.Strain, &rec.Need.Total,
		&rec.RespiratoryRate, &rec.HeartRate, &rec.HRV, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecoveryForDay returns the recovery record created within the given day,
// or nil when none was recorded.
func (s *Service) RecoveryForDay(ctx context.Context, userID, date string) (*RecoveryRecord, error) {
	startMs, endMs, err := DayWindow(date)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(ctx, `
		SELECT user_id, record_id, cycle_id, recovery_score, hrv,
			resting_heart_rate, hrv_rmssd, spo2, skin_temp, created_at
		FROM recovery_records
		WHERE user_id=$1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at DESC
		LIMIT 1
	`, userID, startMs, endMs)

	var rec RecoveryRecord
	var spo2, skinTemp *float64
	err = row.Scan(&rec.UserID, &rec.RecordID, &rec.CycleID, &rec.RecoveryScore, &rec.HRV,
		&rec.RestingHeartRate, &rec.HRVRMSSD, &spo2, &skinTemp, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.SpO2 = metric.FromPtr(spo2)
	rec.SkinTemp = metric.FromPtr(skinTemp)
	return &rec, nil
}

// CycleForDay returns the cycle covering the given calendar day, or nil
// when none was recorded.
func (s *Service) CycleForDay(ctx context.Context, userID, date string) (*CycleRecord, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}

	row := s.db.QueryRow(ctx, `
		SELECT user_id, record_id, cycle_id, start_time, end_time, days,
			strain, kilojoules, average_heart_rate, max_heart_rate, created_at
		FROM cycle_records
		WHERE user_id=$1 AND $2 = ANY(days)
		ORDER BY end_time DESC
		LIMIT 1
	`, userID, date)

	var rec CycleRecord
	err := row.Scan(&rec.UserID, &rec.RecordID, &rec.CycleID, &rec.StartTime, &rec.EndTime, &rec.Days,
		&rec.Strain, &rec.Kilojoules, &rec.AverageHeartRate, &rec.MaxHeartRate, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// PhysiologicalForDay returns all samples taken within the given day in
// timestamp order.
func (s *Service) PhysiologicalForDay(ctx context.Context, userID, date string) ([]PhysiologicalSample, error) {
	startMs, endMs, err := DayWindow(date)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT user_id, record_id, ts, heart_rate, hrv,
			respiratory_rate, skin_temp, spo2, created_at
		FROM physiological_samples
		WHERE user_id=$1 AND ts >= $2 AND ts < $3
		ORDER BY ts
	`, userID, startMs, endMs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []PhysiologicalSample
	for rows.Next() {
		var rec PhysiologicalSample
		var hrv, spo2 *float64
		if err := rows.Scan(&rec.UserID, &rec.RecordID, &rec.Timestamp, &rec.HeartRate, &hrv,
			&rec.RespiratoryRate, &rec.SkinTemp, &spo2, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.HRV = metric.FromPtr(hrv)
		rec.SpO2 = metric.FromPtr(spo2)
		samples = append(samples, rec)
	}
	return samples, nil
}

package records

import (
	"time"

	"backend-vitalhub/internal/shared/metric"
)

// ValidationError reports a record field that violates its declared range
// or format. Records are validated at ingestion; downstream aggregation
// assumes already-valid inputs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// SleepStages is the per-stage duration breakdown of one sleep session,
// all in milliseconds.
type SleepStages struct {
	Light float64 `json:"light_ms"`
	Deep  float64 `json:"deep_ms"`
	REM   float64 `json:"rem_ms"`
	Awake float64 `json:"awake_ms"`
}

// SleepNeed is the sleep-need breakdown in milliseconds. Debt may be
// negative when the wearer is ahead of baseline.
type SleepNeed struct {
	Baseline float64 `json:"baseline_ms"`
	Debt     float64 `json:"debt_ms"`
	Strain   float64 `json:"strain_ms"`
	Total    float64 `json:"total_ms"`
}

type SleepRecord struct {
	UserID           string      `json:"user_id"`
	RecordID         string      `json:"record_id"`
	SleepID          string      `json:"sleep_id"`
	StartTime        int64       `json:"start_time"`
	EndTime          int64       `json:"end_time"`
	Duration         float64     `json:"duration_ms"`
	QualityDuration  float64     `json:"quality_duration_ms"`
	Latency          float64     `json:"latency_ms"`
	DisturbanceCount int         `json:"disturbance_count"`
	Stages           SleepStages `json:"stages"`
	Need             SleepNeed   `json:"need"`
	RespiratoryRate  float64     `json:"respiratory_rate"`
	HeartRate        float64     `json:"heart_rate"`
	HRV              float64     `json:"hrv"`
	CreatedAt        int64       `json:"created_at"`
}

func (r SleepRecord) Validate() error {
	if r.UserID == "" {
		return invalid("user_id", "required")
	}
	if r.Duration < 0 {
		return invalid("duration_ms", "must be >= 0")
	}
	if r.QualityDuration < 0 {
		return invalid("quality_duration_ms", "must be >= 0")
	}
	if r.Latency < 0 {
		return invalid("latency_ms", "must be >= 0")
	}
	if r.DisturbanceCount < 0 {
		return invalid("disturbance_count", "must be >= 0")
	}
	if r.Stages.Light < 0 || r.Stages.Deep < 0 || r.Stages.REM < 0 || r.Stages.Awake < 0 {
		return invalid("stages", "durations must be >= 0")
	}
	if r.Need.Baseline < 0 || r.Need.Strain < 0 || r.Need.Total < 0 {
		return invalid("need", "baseline, strain and total must be >= 0")
	}
	if r.RespiratoryRate <= 0 {
		return invalid("respiratory_rate", "must be > 0")
	}
	if r.HeartRate <= 0 {
		return invalid("heart_rate", "must be > 0")
	}
	if r.HRV <= 0 {
		return invalid("hrv", "must be > 0")
	}
	return nil
}

type RecoveryRecord struct {
	UserID           string       `json:"user_id"`
	RecordID         string       `json:"record_id"`
	CycleID          string       `json:"cycle_id"`
	RecoveryScore    float64      `json:"recovery_score"`
	HRV              float64      `json:"hrv"`
	RestingHeartRate float64      `json:"resting_heart_rate"`
	HRVRMSSD         float64      `json:"hrv_rmssd"`
	SpO2             metric.Value `json:"spo2"`
	SkinTemp         metric.Value `json:"skin_temp"`
	CreatedAt        int64        `json:"created_at"`
}

func (r RecoveryRecord) Validate() error {
	if r.UserID == "" {
		return invalid("user_id", "required")
	}
	if r.RecoveryScore < 0 || r.RecoveryScore > 100 {
		return invalid("recovery_score", "must be within [0,100]")
	}
	if r.HRV <= 0 {
		return invalid("hrv", "must be > 0")
	}
	if r.RestingHeartRate <= 0 {
		return invalid("resting_heart_rate", "must be > 0")
	}
	if r.HRVRMSSD <= 0 {
		return invalid("hrv_rmssd", "must be > 0")
	}
	if v, ok := r.SpO2.Get(); ok && (v < 0 || v > 100) {
		return invalid("spo2", "must be within [0,100]")
	}
	return nil
}

type CycleRecord struct {
	UserID           string   `json:"user_id"`
	RecordID         string   `json:"record_id"`
	CycleID          string   `json:"cycle_id"`
	StartTime        int64    `json:"start_time"`
	EndTime          int64    `json:"end_time"`
	Days             []string `json:"days"`
	Strain           float64  `json:"strain"`
	Kilojoules       float64  `json:"kilojoules"`
	AverageHeartRate float64  `json:"average_heart_rate"`
	MaxHeartRate     float64  `json:"max_heart_rate"`
	CreatedAt        int64    `json:"created_at"`
}

func (r CycleRecord) Validate() error {
	if r.UserID == "" {
		return invalid("user_id", "required")
	}
	if r.Strain < 0 || r.Strain > 21 {
		return invalid("strain", "must be within [0,21]")
	}
	if r.Kilojoules < 0 {
		return invalid("kilojoules", "must be >= 0")
	}
	if r.AverageHeartRate <= 0 {
		return invalid("average_heart_rate", "must be > 0")
	}
	if r.MaxHeartRate <= 0 {
		return invalid("max_heart_rate", "must be > 0")
	}
	for _, day := range r.Days {
		if _, err := ParseDate(day); err != nil {
			return invalid("days", "entries must be YYYY-MM-DD dates")
		}
	}
	return nil
}

// WorkoutRecord is stored for later use; nothing aggregates it into the
// daily summary yet.
type WorkoutRecord struct {
	UserID           string  `json:"user_id"`
	RecordID         string  `json:"record_id"`
	WorkoutID        string  `json:"workout_id"`
	StartTime        int64   `json:"start_time"`
	EndTime          int64   `json:"end_time"`
	Duration         float64 `json:"duration_ms"`
	Strain           float64 `json:"strain"`
	AverageHeartRate float64 `json:"average_heart_rate"`
	MaxHeartRate     float64 `json:"max_heart_rate"`
	Kilojoules       float64 `json:"kilojoules"`
	SportID          int     `json:"sport_id"`
	SportName        string  `json:"sport_name"`
	CreatedAt        int64   `json:"created_at"`
}

func (r WorkoutRecord) Validate() error {
	if r.UserID == "" {
		return invalid("user_id", "required")
	}
	if r.Duration < 0 {
		return invalid("duration_ms", "must be >= 0")
	}
	if r.Strain < 0 || r.Strain > 21 {
		return invalid("strain", "must be within [0,21]")
	}
	if r.AverageHeartRate <= 0 {
		return invalid("average_heart_rate", "must be > 0")
	}
	if r.MaxHeartRate <= 0 {
		return invalid("max_heart_rate", "must be > 0")
	}
	if r.Kilojoules < 0 {
		return invalid("kilojoules", "must be >= 0")
	}
	return nil
}

type PhysiologicalSample struct {
	UserID          string       `json:"user_id"`
	RecordID        string       `json:"record_id"`
	Timestamp       int64        `json:"timestamp"`
	HeartRate       float64      `json:"heart_rate"`
	HRV             metric.Value `json:"hrv"`
	RespiratoryRate float64      `json:"respiratory_rate"`
	SkinTemp        float64      `json:"skin_temp"`
	SpO2            metric.Value `json:"spo2"`
	CreatedAt       int64        `json:"created_at"`
}

func (r PhysiologicalSample) Validate() error {
	if r.UserID == "" {
		return invalid("user_id", "required")
	}
	if r.HeartRate <= 0 {
		return invalid("heart_rate", "must be > 0")
	}
	if v, ok := r.HRV.Get(); ok && v <= 0 {
		return invalid("hrv", "must be > 0")
	}
	if r.RespiratoryRate <= 0 {
		return invalid("respiratory_rate", "must be > 0")
	}
	if v, ok := r.SpO2.Get(); ok && (v < 0 || v > 100) {
		return invalid("spo2", "must be within [0,100]")
	}
	return nil
}

const dateLayout = "2006-01-02"

// ParseDate validates a calendar-day string in YYYY-MM-DD form.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, invalid("date", "must be YYYY-MM-DD")
	}
	return t, nil
}

// DayWindow returns the UTC day boundaries for a date as epoch
// milliseconds, [start, end).
func DayWindow(date string) (int64, int64, error) {
	day, err := ParseDate(date)
	if err != nil {
		return 0, 0, err
	}
	start := day.UnixMilli()
	end := day.AddDate(0, 0, 1).UnixMilli()
	return start, end, nil
}

package analytics

import (
	"errors"
	"testing"
	"time"

	"backend-vitalhub/internal/records"
	"backend-vitalhub/internal/shared/metric"
)

func sampleRecovery() records.RecoveryRecord {
	return records.RecoveryRecord{
		UserID:           "test-user-123",
		RecordID:         "recovery#1234567890",
		CycleID:          "cycle-123",
		RecoveryScore:    75,
		HRV:              65,
		RestingHeartRate: 55,
		HRVRMSSD:         45,
		SpO2:             metric.Of(98),
		SkinTemp:         metric.Of(35.5),
	}
}

func sampleCycle() records.CycleRecord {
	return records.CycleRecord{
		UserID:           "test-user-123",
		RecordID:         "cycle#1234567890",
		CycleID:          "cycle-123",
		Days:             []string{"2024-02-06"},
		Strain:           12.5,
		Kilojoules:       8500,
		AverageHeartRate: 70,
		MaxHeartRate:     150,
	}
}

func samplePhysio() []records.PhysiologicalSample {
	samples := make([]records.PhysiologicalSample, 0, 5)
	for i := 0; i < 5; i++ {
		samples = append(samples, records.PhysiologicalSample{
			UserID:          "test-user-123",
			Timestamp:       int64(i) * 3600000,
			HeartRate:       60 + float64(i),
			HRV:             metric.Of(65 + float64(i)*2),
			RespiratoryRate: 15,
			SkinTemp:        35.5,
			SpO2:            metric.Of(98),
		})
	}
	return samples
}

func withFixedNow(t *testing.T, at time.Time) {
	t.Helper()
	old := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = old })
}

func TestComputeDailySummaryComplete(t *testing.T) {
	withFixedNow(t, time.Unix(1700000000, 0))

	sleep := sampleSleep()
	recovery := sampleRecovery()
	cycle := sampleCycle()

	summary, err := ComputeDailySummary("test-user-123", "2024-02-06", &sleep, &recovery, cyclePtr(cycle), samplePhysio())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if summary.UserID != "test-user-123" || summary.Date != "2024-02-06" {
		t.Fatalf("unexpected identity fields: %+v", summary)
	}
	if summary.RecordID != "summary#2024-02-06" {
		t.Fatalf("unexpected record id %q", summary.RecordID)
	}

	assertMetric(t, "recovery score", summary.RecoveryScore, 75)
	assertMetric(t, "sleep quality", summary.SleepQualityScore, 92)
	assertMetric(t, "total strain", summary.TotalStrain, 12.5)
	assertMetric(t, "sleep hours", summary.SleepDurationHours, 8)
	assertMetric(t, "average hrv", summary.AverageHRV, 69)
	assertMetric(t, "resting hr", summary.RestingHeartRate, 55)
	assertMetric(t, "respiratory", summary.RespiratoryRate, 15)

	c := summary.Completeness
	if !c.HasSleep || !c.HasRecovery || !c.HasCycle || !c.HasPhysiological {
		t.Fatalf("expected completeness flags set: %+v", c)
	}
	if c.HasWorkout {
		t.Fatalf("workout flag must stay false")
	}

	if summary.ComputedAt != 1700000000 {
		t.Fatalf("unexpected computed_at %d", summary.ComputedAt)
	}
	if summary.TTL != 1700000000+30*24*60*60 {
		t.Fatalf("unexpected ttl %d", summary.TTL)
	}
}

func TestComputeDailySummaryNoInputs(t *testing.T) {
	summary, err := ComputeDailySummary("test-user-123", "2024-02-06", nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	for name, m := range map[string]metric.Value{
		"recovery score": summary.RecoveryScore,
		"sleep quality":  summary.SleepQualityScore,
		"total strain":   summary.TotalStrain,
		"sleep hours":    summary.SleepDurationHours,
		"average hrv":    summary.AverageHRV,
		"resting hr":     summary.RestingHeartRate,
		"respiratory":    summary.RespiratoryRate,
	} {
		if m.Present() {
			t.Fatalf("%s should be absent", name)
		}
	}

	c := summary.Completeness
	if c.HasSleep || c.HasRecovery || c.HasWorkout || c.HasCycle || c.HasPhysiological {
		t.Fatalf("expected all completeness flags false: %+v", c)
	}
}

func TestComputeDailySummaryMissingSleep(t *testing.T) {
	recovery := sampleRecovery()
	cycle := sampleCycle()

	summary, err := ComputeDailySummary("test-user-123", "2024-02-06", nil, &recovery, cyclePtr(cycle), nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	// sleep quality and duration are absent together
	if summary.SleepQualityScore.Present() || summary.SleepDurationHours.Present() {
		t.Fatalf("sleep metrics should be absent")
	}
	assertMetric(t, "recovery score", summary.RecoveryScore, 75)
	assertMetric(t, "total strain", summary.TotalStrain, 12.5)
	if summary.Completeness.HasSleep {
		t.Fatalf("has_sleep should be false")
	}
}

func TestComputeDailySummaryEmptyPhysio(t *testing.T) {
	sleep := sampleSleep()

	summary, err := ComputeDailySummary("test-user-123", "2024-02-06", &sleep, nil, nil, []records.PhysiologicalSample{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if summary.Completeness.HasPhysiological {
		t.Fatalf("empty sample list should not count as physiological data")
	}
	if summary.AverageHRV.Present() || summary.RespiratoryRate.Present() {
		t.Fatalf("averages over no samples should be absent, not zero")
	}
}

func TestAverageHRVSkipsMissingReadings(t *testing.T) {
	physio := []records.PhysiologicalSample{
		{UserID: "u", HeartRate: 60, HRV: metric.Of(60), RespiratoryRate: 14, SkinTemp: 35},
		{UserID: "u", HeartRate: 61, RespiratoryRate: 15, SkinTemp: 35},
		{UserID: "u", HeartRate: 62, HRV: metric.Of(70), RespiratoryRate: 16, SkinTemp: 35},
	}

	summary, err := ComputeDailySummary("test-user-123", "2024-02-06", nil, nil, nil, physio)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	assertMetric(t, "average hrv", summary.AverageHRV, 65)
	assertMetric(t, "respiratory", summary.RespiratoryRate, 15)
}

func TestNoSampleHasHRV(t *testing.T) {
	physio := []records.PhysiologicalSample{
		{UserID: "u", HeartRate: 60, RespiratoryRate: 14, SkinTemp: 35},
	}

	summary, err := ComputeDailySummary("test-user-123", "2024-02-06", nil, nil, nil, physio)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if summary.AverageHRV.Present() {
		t.Fatalf("average hrv should be absent when no sample carries one")
	}
	if !summary.Completeness.HasPhysiological {
		t.Fatalf("samples were supplied, flag should be true")
	}
}

func TestComputeDailySummaryBadDate(t *testing.T) {
	for _, date := range []string{"02/06/2024", "2024-2-6", "not-a-date", ""} {
		_, err := ComputeDailySummary("test-user-123", date, nil, nil, nil, nil)
		if err == nil {
			t.Fatalf("expected error for date %q", date)
		}
		var vErr *records.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
	}
}

func TestDayWindow(t *testing.T) {
	start, end, err := records.DayWindow("2024-02-06")
	if err != nil {
		t.Fatalf("day window: %v", err)
	}
	if end-start != 24*60*60*1000 {
		t.Fatalf("expected 24h window, got %d ms", end-start)
	}
	if start != time.Date(2024, 2, 6, 0, 0, 0, 0, time.UTC).UnixMilli() {
		t.Fatalf("unexpected window start %d", start)
	}

	if _, _, err := records.DayWindow("2024-13-40"); err == nil {
		t.Fatalf("expected error for impossible date")
	}
}

func assertMetric(t *testing.T, name string, m metric.Value, want float64) {
	t.Helper()
	got, ok := m.Get()
	if !ok {
		t.Fatalf("%s should be present", name)
	}
	if got != want {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func cyclePtr(c records.CycleRecord) *records.CycleRecord {
	return &c
}

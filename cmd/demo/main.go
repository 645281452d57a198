// Command demo computes a daily summary from sample records and prints
// it. It exercises the pure computation only; nothing is persisted.
package main

import (
	"fmt"
	"log"
	"time"

	"backend-vitalhub/internal/analytics"
	"backend-vitalhub/internal/records"
	"backend-vitalhub/internal/shared/metric"
)

func main() {
	nowMs := time.Now().UnixMilli()
	date := time.Now().UTC().Format("2006-01-02")
	const eightHoursMs = 8 * 60 * 60 * 1000

	sleep := &records.SleepRecord{
		UserID:           "demo-user",
		RecordID:         fmt.Sprintf("sleep#%d", nowMs),
		SleepID:          "sleep-demo",
		StartTime:        nowMs - eightHoursMs,
		EndTime:          nowMs,
		Duration:         eightHoursMs,
		QualityDuration:  eightHoursMs * 0.92,
		Latency:          5 * 60 * 1000,
		DisturbanceCount: 1,
		Stages: records.SleepStages{
			Light: eightHoursMs * 0.45,
			Deep:  eightHoursMs * 0.22,
			REM:   eightHoursMs * 0.25,
			Awake: eightHoursMs * 0.08,
		},
		Need: records.SleepNeed{
			Baseline: eightHoursMs,
			Total:    eightHoursMs,
		},
		RespiratoryRate: 14.5,
		HeartRate:       52,
		HRV:             72,
	}

	recovery := &records.RecoveryRecord{
		UserID:           "demo-user",
		CycleID:          "cycle-demo",
		RecoveryScore:    82,
		HRV:              72,
		RestingHeartRate: 52,
		HRVRMSSD:         48,
		SpO2:             metric.Of(98.5),
		SkinTemp:         metric.Of(35.2),
	}

	cycle := &records.CycleRecord{
		UserID:           "demo-user",
		CycleID:          "cycle-demo",
		StartTime:        nowMs - 24*60*60*1000,
		EndTime:          nowMs,
		Days:             []string{date},
		Strain:           14.2,
		Kilojoules:       9200,
		AverageHeartRate: 68,
		MaxHeartRate:     165,
	}

	physio := make([]records.PhysiologicalSample, 0, 8)
	for i := 0; i < 8; i++ {
		physio = append(physio, records.PhysiologicalSample{
			UserID:          "demo-user",
			Timestamp:       nowMs - int64(i)*3600000,
			HeartRate:       55 + float64(i)*2,
			HRV:             metric.Of(70 + float64(i)),
			RespiratoryRate: 14.5,
			SkinTemp:        35.2,
			SpO2:            metric.Of(98),
		})
	}

	summary, err := analytics.ComputeDailySummary("demo-user", date, sleep, recovery, cycle, physio)
	if err != nil {
		log.Fatalf("compute summary: %v", err)
	}

	fmt.Printf("Daily summary for %s (%s)\n", summary.UserID, summary.Date)
	fmt.Printf("  record id:       %s\n", summary.RecordID)
	printMetric("recovery score", summary.RecoveryScore)
	printMetric("sleep quality", summary.SleepQualityScore)
	printMetric("sleep hours", summary.SleepDurationHours)
	printMetric("total strain", summary.TotalStrain)
	printMetric("average hrv", summary.AverageHRV)
	printMetric("resting hr", summary.RestingHeartRate)
	printMetric("respiratory", summary.RespiratoryRate)
	fmt.Printf("  completeness:    %+v\n", summary.Completeness)
	fmt.Printf("  computed at:     %d (expires %d)\n", summary.ComputedAt, summary.TTL)

	score := analytics.SleepQualityScore(*sleep)
	fmt.Printf("\nSleep quality breakdown: %d/100 for %.1fh at %.0f%% efficiency, %d disturbance(s)\n",
		score, sleep.Duration/3600000, sleep.QualityDuration/sleep.Duration*100, sleep.DisturbanceCount)
}

func printMetric(name string, v metric.Value) {
	if f, ok := v.Get(); ok {
		fmt.Printf("  %-16s %.2f\n", name+":", f)
		return
	}
	fmt.Printf("  %-16s (no data)\n", name+":")
}

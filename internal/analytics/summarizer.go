package analytics

import (
	"time"

	"backend-vitalhub/internal/records"
	"backend-vitalhub/internal/shared/metric"
)

const summaryRetention = 30 * 24 * time.Hour

var now = time.Now

// ComputeDailySummary aggregates whichever records exist for one calendar
// day into a DailySummary. Nil/empty inputs leave the matching metrics
// absent; the only failure mode is a malformed date.
func ComputeDailySummary(
	userID, date string,
	sleep *records.SleepRecord,
	recovery *records.RecoveryRecord,
	cycle *records.CycleRecord,
	physio []records.PhysiologicalSample,
) (DailySummary, error) {
	if _, err := records.ParseDate(date); err != nil {
		return DailySummary{}, err
	}

	summary := DailySummary{
		UserID:   userID,
		RecordID: "summary#" + date,
		Date:     date,
		Completeness: Completeness{
			HasSleep:         sleep != nil,
			HasRecovery:      recovery != nil,
			HasCycle:         cycle != nil,
			HasPhysiological: len(physio) > 0,
		},
	}

	if recovery != nil {
		summary.RecoveryScore = metric.Of(recovery.RecoveryScore)
		summary.RestingHeartRate = metric.Of(recovery.RestingHeartRate)
	}

	if sleep != nil {
		summary.SleepQualityScore = metric.Of(float64(SleepQualityScore(*sleep)))
		summary.SleepDurationHours = metric.Of(sleep.Duration / msPerHour)
	}

	if cycle != nil {
		summary.TotalStrain = metric.Of(cycle.Strain)
	}

	if len(physio) > 0 {
		var hrv []float64
		resp := make([]float64, 0, len(physio))
		for _, sample := range physio {
			// samples without an HRV reading are excluded, not zeroed
			if v, ok := sample.HRV.Get(); ok {
				hrv = append(hrv, v)
			}
			resp = append(resp, sample.RespiratoryRate)
		}
		summary.AverageHRV = metric.Average(hrv)
		summary.RespiratoryRate = metric.Average(resp)
	}

	summary.ComputedAt = now().Unix()
	summary.TTL = summary.ComputedAt + int64(summaryRetention.Seconds())
	return summary, nil
}

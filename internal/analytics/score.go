package analytics

import (
	"math"

	"backend-vitalhub/internal/records"
)

const msPerHour = 60 * 60 * 1000

// SleepQualityScore rates one sleep session on a 0-100 scale from three
// independent aspects: duration (0-40), efficiency (0-40) and
// disturbances (0-20).
func SleepQualityScore(sleep records.SleepRecord) int {
	hours := sleep.Duration / msPerHour

	var durationScore float64
	switch {
	case hours >= 7 && hours <= 9:
		durationScore = 40
	case hours >= 6 && hours < 7:
		durationScore = 30
	case hours >= 5 && hours < 6:
		durationScore = 20
	case hours > 9 && hours <= 10:
		durationScore = 30
	default:
		durationScore = 10
	}

	efficiency := 0.0
	if sleep.Duration > 0 {
		efficiency = sleep.QualityDuration / sleep.Duration
	}
	efficiencyScore := math.Min(40, efficiency*40)

	// 2 points per disturbance, floors at 0.
	disturbanceScore := math.Max(0, 20-float64(sleep.DisturbanceCount)*2)

	total := durationScore + efficiencyScore + disturbanceScore
	return int(math.RoundToEven(math.Min(100, math.Max(0, total))))
}

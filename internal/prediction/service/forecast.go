// Package service computes the derived values persisted as predictions.
package service

import (
	"errors"
	"math"
)

// ErrNoUsableRecords is returned when every supplied record has a zero
// denominator for both rates, leaving nothing to average.
var ErrNoUsableRecords = errors.New("no usable historical records: all have zero impressions or clicks")

// HistoricalRecord is one past performance observation.
type HistoricalRecord struct {
	Impressions int
	Clicks      int
	Conversions int
	Spend       float64
}

// Forecast is the outcome of PredictPerformance.
type Forecast struct {
	AvgCTR            float64
	AvgConversionRate float64
	PredictedValue    int
}

// PredictPerformance averages per-record click-through rate (clicks/impressions)
// and conversion rate (conversions/clicks), then projects the next conversion
// count as last_impressions x avgCTR x avgConversionRate, rounded to the
// nearest whole unit.
//
// Records with zero impressions are excluded from the CTR average, and records
// with zero clicks from the conversion-rate average, so a degenerate snapshot
// cannot poison the result with a non-finite value. If no record survives
// either filter, ErrNoUsableRecords is returned.
func PredictPerformance(records []HistoricalRecord) (Forecast, error) {
	if len(records) == 0 {
		return Forecast{}, errors.New("historical data must not be empty")
	}

	var ctrSum float64
	var ctrN int
	var convSum float64
	var convN int
	for _, rec := range records {
		if rec.Impressions > 0 {
			ctrSum += float64(rec.Clicks) / float64(rec.Impressions)
			ctrN++
		}
		if rec.Clicks > 0 {
			convSum += float64(rec.Conversions) / float64(rec.Clicks)
			convN++
		}
	}
	if ctrN == 0 || convN == 0 {
		return Forecast{}, ErrNoUsableRecords
	}

	f := Forecast{
		AvgCTR:            ctrSum / float64(ctrN),
		AvgConversionRate: convSum / float64(convN),
	}
	last := records[len(records)-1]
	f.PredictedValue = int(math.Round(float64(last.Impressions) * f.AvgCTR * f.AvgConversionRate))
	return f, nil
}

// EngagementSample is one observed engagement rate for an hour-of-day and
// day-of-week slot (0=Sunday..6=Saturday).
type EngagementSample struct {
	Hour           int
	DayOfWeek      int
	EngagementRate float64
}

// OptimalTiming returns the sample with the highest engagement rate. Ties keep
// the earliest sample: only a strictly greater rate displaces the current best.
func OptimalTiming(samples []EngagementSample) (EngagementSample, error) {
	if len(samples) == 0 {
		return EngagementSample{}, errors.New("engagement data must not be empty")
	}
	best := samples[0]
	for _, s := range samples[1:] {
		if s.EngagementRate > best.EngagementRate {
			best = s
		}
	}
	return best, nil
}

// dayNames maps DayOfWeek (0=Sunday) to its display name.
var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayName returns the display name for a 0-6 day of week, or "" if out of range.
func DayName(dayOfWeek int) string {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return ""
	}
	return dayNames[dayOfWeek]
}

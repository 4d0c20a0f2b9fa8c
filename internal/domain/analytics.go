package domain

import "time"

// ReasonCount is one slice of the visit-reason distribution.
// Percentage is relative to all records with a non-empty reason,
// rounded to one decimal place.
type ReasonCount struct {
	Reason     string  `json:"reason"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DailyRollup summarizes one UTC calendar day inside a date-range query.
// TotalVisitors always equals ActiveVisitors + CompletedVisits.
type DailyRollup struct {
	Date               time.Time `json:"date"`
	TotalVisitors      int       `json:"totalVisitors"`
	ActiveVisitors     int       `json:"activeVisitors"`
	CompletedVisits    int       `json:"completedVisits"`
	AvgDurationMinutes float64   `json:"avgDurationMinutes"`
}

// HourBucket is the per-entry-hour summary used by the peak-hours analysis.
// AvgDurationMinutes only counts completed visits; it is 0 when every visit
// that started in this hour is still active.
type HourBucket struct {
	Hour               int     `json:"hour"`
	VisitorCount       int     `json:"visitorCount"`
	AvgDurationMinutes float64 `json:"avgDurationMinutes"`
}

// PeakHoursAnalysis reports per-hour traffic plus the busiest and quietest
// entry hours. Ties are broken by the lower hour.
type PeakHoursAnalysis struct {
	HourlyData     []HourBucket `json:"hourlyData"`
	PeakHour       int          `json:"peakHour"`
	PeakHourCount  int          `json:"peakHourCount"`
	QuietHour      int          `json:"quietHour"`
	QuietHourCount int          `json:"quietHourCount"`
}

// DailyCount is a single point on the daily trend line.
type DailyCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// WeekdayTrend is the per-weekday traffic summary across all history.
// AvgCount is the mean number of visitors per observed calendar day falling
// on that weekday; days with zero visitors do not appear in the record set
// and therefore do not drag the average down.
type WeekdayTrend struct {
	DayOfWeek  string  `json:"dayOfWeek"`
	AvgCount   float64 `json:"avgCount"`
	TotalCount int     `json:"totalCount"`
}

// TrendAnalysis combines the trailing-30-day daily counts with the
// per-weekday breakdown.
type TrendAnalysis struct {
	DailyTrend     []DailyCount   `json:"dailyTrend"`
	DayOfWeekTrend []WeekdayTrend `json:"dayOfWeekTrend"`
}

// DurationAnalysis summarizes completed-visit lengths in minutes.
// All maps and counters are zero-valued (but non-nil) when there are no
// completed visits yet.
type DurationAnalysis struct {
	OverallAverage       float64            `json:"overallAverage"`
	ByHour               map[int]float64    `json:"byHour"`
	ByDayOfWeek          map[string]float64 `json:"byDayOfWeek"`
	ByReason             map[string]float64 `json:"byReason"`
	TotalCompletedVisits int                `json:"totalCompletedVisits"`
	ShortestVisit        float64            `json:"shortestVisit"`
	LongestVisit         float64            `json:"longestVisit"`
}

// HeatmapCell is one observed (weekday, hour) bucket. Cells with no visitors
// are omitted — the heatmap is sparse.
type HeatmapCell struct {
	DayOfWeek string `json:"dayOfWeek"`
	Hour      int    `json:"hour"`
	Count     int    `json:"count"`
}

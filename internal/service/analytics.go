package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/dogukancykrn/ziyaretci-takip-api/internal/domain"
	"github.com/dogukancykrn/ziyaretci-takip-api/internal/repo"
)

// AnalyticsService derives read-only aggregate views from the visitor record
// set. Every operation fetches the relevant window from the repo and groups
// it in memory: dataset sizes are small (one branch, one record per visit)
// and keeping the grouping in Go keeps it testable and portable. The repo
// interface is the seam if a future deployment needs database-side
// aggregation.
//
// An empty record set is a normal input, not an error: every operation
// returns a well-formed empty or zeroed result for it. Only a store failure
// is an error.
type AnalyticsService struct {
	visitors repo.VisitorRepo

	// now is swappable for tests.
	now func() time.Time
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(visitors repo.VisitorRepo) *AnalyticsService {
	return &AnalyticsService{
		visitors: visitors,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ReasonDistribution groups all records by visit reason and reports each
// group's share. Records with an empty reason are excluded from both the
// groups and the percentage base, so the returned percentages always sum to
// 100 give or take rounding. Sorted by count descending.
func (s *AnalyticsService) ReasonDistribution(ctx context.Context) ([]domain.ReasonCount, error) {
	all, err := s.visitors.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	total := 0
	for _, v := range all {
		if v.VisitReason == "" {
			continue
		}
		counts[v.VisitReason]++
		total++
	}

	result := make([]domain.ReasonCount, 0, len(counts))
	for reason, count := range counts {
		result = append(result, domain.ReasonCount{
			Reason:     reason,
			Count:      count,
			Percentage: round1(float64(count) / float64(total) * 100),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Reason < result[j].Reason // stable output for equal counts
	})
	return result, nil
}

// DateRange rolls up the records that entered between startDate and endDate
// (inclusive UTC calendar days) into one summary per day, sorted ascending.
// For every returned day TotalVisitors = ActiveVisitors + CompletedVisits.
func (s *AnalyticsService) DateRange(ctx context.Context, startDate, endDate time.Time) ([]domain.DailyRollup, error) {
	from := utcDay(startDate)
	to := utcDay(endDate).Add(24*time.Hour - time.Second)

	window, err := s.visitors.ListEnteredBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byDay := map[time.Time]*domain.DailyRollup{}
	durations := map[time.Time][]float64{}
	for _, v := range window {
		day := utcDay(v.EnteredAt)
		r, ok := byDay[day]
		if !ok {
			r = &domain.DailyRollup{Date: day}
			byDay[day] = r
		}
		r.TotalVisitors++
		if d, ok := v.Duration(); ok {
			r.CompletedVisits++
			durations[day] = append(durations[day], d.Minutes())
		} else {
			r.ActiveVisitors++
		}
	}

	result := make([]domain.DailyRollup, 0, len(byDay))
	for day, r := range byDay {
		r.AvgDurationMinutes = mean(durations[day])
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// PeakHours groups all records by the hour of day they entered and reports
// per-hour traffic plus the busiest and quietest hours. Average durations
// count completed visits only. Hours with no visitors are omitted from
// HourlyData; ties for peak/quiet go to the lower hour because HourlyData
// is scanned in ascending hour order.
func (s *AnalyticsService) PeakHours(ctx context.Context) (domain.PeakHoursAnalysis, error) {
	all, err := s.visitors.ListAll(ctx)
	if err != nil {
		return domain.PeakHoursAnalysis{}, err
	}

	counts := map[int]int{}
	durations := map[int][]float64{}
	for _, v := range all {
		hour := v.EnteredAt.UTC().Hour()
		counts[hour]++
		if d, ok := v.Duration(); ok {
			durations[hour] = append(durations[hour], d.Minutes())
		}
	}

	analysis := domain.PeakHoursAnalysis{HourlyData: []domain.HourBucket{}}
	for hour := 0; hour < 24; hour++ {
		count, ok := counts[hour]
		if !ok {
			continue
		}
		analysis.HourlyData = append(analysis.HourlyData, domain.HourBucket{
			Hour:               hour,
			VisitorCount:       count,
			AvgDurationMinutes: mean(durations[hour]),
		})
	}

	for _, b := range analysis.HourlyData {
		if b.VisitorCount > analysis.PeakHourCount {
			analysis.PeakHour = b.Hour
			analysis.PeakHourCount = b.VisitorCount
		}
		if analysis.QuietHourCount == 0 || b.VisitorCount < analysis.QuietHourCount {
			analysis.QuietHour = b.Hour
			analysis.QuietHourCount = b.VisitorCount
		}
	}
	return analysis, nil
}

// Trends returns the trailing-30-day daily counts (UTC, inclusive of today,
// ascending, no zero-fill) together with a real per-weekday breakdown
// computed over all history: for each weekday, the total visitor count and
// the mean count per observed calendar day falling on that weekday.
func (s *AnalyticsService) Trends(ctx context.Context) (domain.TrendAnalysis, error) {
	all, err := s.visitors.ListAll(ctx)
	if err != nil {
		return domain.TrendAnalysis{}, err
	}

	windowStart := utcDay(s.now()).AddDate(0, 0, -30)

	daily := map[time.Time]int{}
	weekdayTotals := map[time.Weekday]int{}
	weekdayDays := map[time.Weekday]map[time.Time]struct{}{}
	for _, v := range all {
		day := utcDay(v.EnteredAt)
		if !day.Before(windowStart) {
			daily[day]++
		}

		wd := day.Weekday()
		weekdayTotals[wd]++
		if weekdayDays[wd] == nil {
			weekdayDays[wd] = map[time.Time]struct{}{}
		}
		weekdayDays[wd][day] = struct{}{}
	}

	analysis := domain.TrendAnalysis{
		DailyTrend:     make([]domain.DailyCount, 0, len(daily)),
		DayOfWeekTrend: []domain.WeekdayTrend{},
	}
	for day, count := range daily {
		analysis.DailyTrend = append(analysis.DailyTrend, domain.DailyCount{Date: day, Count: count})
	}
	sort.Slice(analysis.DailyTrend, func(i, j int) bool {
		return analysis.DailyTrend[i].Date.Before(analysis.DailyTrend[j].Date)
	})

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		total, ok := weekdayTotals[wd]
		if !ok {
			continue
		}
		analysis.DayOfWeekTrend = append(analysis.DayOfWeekTrend, domain.WeekdayTrend{
			DayOfWeek:  wd.String(),
			AvgCount:   float64(total) / float64(len(weekdayDays[wd])),
			TotalCount: total,
		})
	}
	return analysis, nil
}

// DurationAnalysis summarizes all completed visits in minutes: overall
// average, breakdowns by entry hour, entry weekday, and reason, plus the
// extremes. When nothing has completed yet the result is zeroed with empty
// (non-nil) maps rather than an error.
func (s *AnalyticsService) DurationAnalysis(ctx context.Context) (domain.DurationAnalysis, error) {
	completed, err := s.visitors.ListCompleted(ctx)
	if err != nil {
		return domain.DurationAnalysis{}, err
	}

	analysis := domain.DurationAnalysis{
		ByHour:      map[int]float64{},
		ByDayOfWeek: map[string]float64{},
		ByReason:    map[string]float64{},
	}
	if len(completed) == 0 {
		return analysis, nil
	}

	var total float64
	byHour := map[int][]float64{}
	byWeekday := map[string][]float64{}
	byReason := map[string][]float64{}
	shortest := math.Inf(1)
	longest := math.Inf(-1)

	for _, v := range completed {
		d, ok := v.Duration()
		if !ok {
			continue // ListCompleted should never return these
		}
		minutes := d.Minutes()
		entered := v.EnteredAt.UTC()

		total += minutes
		byHour[entered.Hour()] = append(byHour[entered.Hour()], minutes)
		byWeekday[entered.Weekday().String()] = append(byWeekday[entered.Weekday().String()], minutes)
		byReason[v.VisitReason] = append(byReason[v.VisitReason], minutes)
		shortest = math.Min(shortest, minutes)
		longest = math.Max(longest, minutes)
	}

	analysis.OverallAverage = total / float64(len(completed))
	analysis.TotalCompletedVisits = len(completed)
	analysis.ShortestVisit = shortest
	analysis.LongestVisit = longest
	for hour, ds := range byHour {
		analysis.ByHour[hour] = mean(ds)
	}
	for wd, ds := range byWeekday {
		analysis.ByDayOfWeek[wd] = mean(ds)
	}
	for reason, ds := range byReason {
		analysis.ByReason[reason] = mean(ds)
	}
	return analysis, nil
}

// Heatmap counts records per (entry weekday, entry hour) cell. Only observed
// cells are emitted; output is sorted by weekday (Sunday first) then hour.
func (s *AnalyticsService) Heatmap(ctx context.Context) ([]domain.HeatmapCell, error) {
	all, err := s.visitors.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	type cellKey struct {
		weekday time.Weekday
		hour    int
	}
	counts := map[cellKey]int{}
	for _, v := range all {
		entered := v.EnteredAt.UTC()
		counts[cellKey{entered.Weekday(), entered.Hour()}]++
	}

	cells := make([]domain.HeatmapCell, 0, len(counts))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		for hour := 0; hour < 24; hour++ {
			if count, ok := counts[cellKey{wd, hour}]; ok {
				cells = append(cells, domain.HeatmapCell{
					DayOfWeek: wd.String(),
					Hour:      hour,
					Count:     count,
				})
			}
		}
	}
	return cells, nil
}

// utcDay truncates t to its UTC calendar day.
func utcDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mean returns the arithmetic mean of xs, or 0 for an empty slice.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dogukancykrn/ziyaretci-takip-api/internal/domain"
)

func TestReasonDistribution_OK(t *testing.T) {
	analytics := &mockAnalyticsService{
		reasonDistribution: func(context.Context) ([]domain.ReasonCount, error) {
			return []domain.ReasonCount{
				{Reason: "Account Opening", Count: 2, Percentage: 66.7},
				{Reason: "Loan Application", Count: 1, Percentage: 33.3},
			}, nil
		},
	}
	h := newTestRouter(nil, analytics, nil)

	status, env := doRequest(t, h, http.MethodGet, "/api/visitor/analytics/reason-distribution", "", true)

	assert.Equal(t, http.StatusOK, status)

	var got []domain.ReasonCount
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Account Opening", got[0].Reason)
}

func TestDateRangeAnalytics_OK(t *testing.T) {
	var gotStart, gotEnd time.Time
	analytics := &mockAnalyticsService{
		dateRange: func(_ context.Context, startDate, endDate time.Time) ([]domain.DailyRollup, error) {
			gotStart, gotEnd = startDate, endDate
			return []domain.DailyRollup{}, nil
		},
	}
	h := newTestRouter(nil, analytics, nil)

	status, _ := doRequest(t, h, http.MethodGet,
		"/api/visitor/analytics/date-range?startDate=2025-07-10&endDate=2025-07-11", "", true)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), gotStart)
	assert.Equal(t, time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC), gotEnd)
}

func TestDateRangeAnalytics_BadInput(t *testing.T) {
	h := newTestRouter(nil, &mockAnalyticsService{}, nil)

	for name, query := range map[string]string{
		"missing both":     "",
		"missing end":      "?startDate=2025-07-10",
		"malformed start":  "?startDate=10-07-2025&endDate=2025-07-11",
		"end before start": "?startDate=2025-07-11&endDate=2025-07-10",
	} {
		status, env := doRequest(t, h, http.MethodGet, "/api/visitor/analytics/date-range"+query, "", true)
		assert.Equal(t, http.StatusBadRequest, status, "case %q", name)
		assert.False(t, env.Success, "case %q", name)
	}
}

func TestPeakHours_OK(t *testing.T) {
	analytics := &mockAnalyticsService{
		peakHours: func(context.Context) (domain.PeakHoursAnalysis, error) {
			return domain.PeakHoursAnalysis{
				HourlyData:    []domain.HourBucket{{Hour: 9, VisitorCount: 2}},
				PeakHour:      9,
				PeakHourCount: 2,
			}, nil
		},
	}
	h := newTestRouter(nil, analytics, nil)

	status, env := doRequest(t, h, http.MethodGet, "/api/visitor/analytics/peak-hours", "", true)

	assert.Equal(t, http.StatusOK, status)

	var got domain.PeakHoursAnalysis
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 9, got.PeakHour)
}

func TestTrends_OK(t *testing.T) {
	analytics := &mockAnalyticsService{
		trends: func(context.Context) (domain.TrendAnalysis, error) {
			return domain.TrendAnalysis{
				DailyTrend:     []domain.DailyCount{{Date: time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC), Count: 2}},
				DayOfWeekTrend: []domain.WeekdayTrend{{DayOfWeek: "Monday", AvgCount: 2, TotalCount: 2}},
			}, nil
		},
	}
	h := newTestRouter(nil, analytics, nil)

	status, env := doRequest(t, h, http.MethodGet, "/api/visitor/analytics/trends", "", true)

	assert.Equal(t, http.StatusOK, status)

	var got domain.TrendAnalysis
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got.DayOfWeekTrend, 1)
	assert.Equal(t, "Monday", got.DayOfWeekTrend[0].DayOfWeek)
}

func TestDurationAnalysis_OK(t *testing.T) {
	analytics := &mockAnalyticsService{
		durationAnalysis: func(context.Context) (domain.DurationAnalysis, error) {
			return domain.DurationAnalysis{
				OverallAverage:       60,
				ByHour:               map[int]float64{9: 30},
				ByDayOfWeek:          map[string]float64{"Monday": 60},
				ByReason:             map[string]float64{"Account Opening": 60},
				TotalCompletedVisits: 2,
				ShortestVisit:        30,
				LongestVisit:         90,
			}, nil
		},
	}
	h := newTestRouter(nil, analytics, nil)

	status, env := doRequest(t, h, http.MethodGet, "/api/visitor/analytics/duration-analysis", "", true)

	assert.Equal(t, http.StatusOK, status)

	var got domain.DurationAnalysis
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 2, got.TotalCompletedVisits)
	assert.InDelta(t, 30, got.ByHour[9], 1e-9)
}

func TestHeatmap_OK(t *testing.T) {
	analytics := &mockAnalyticsService{
		heatmap: func(context.Context) ([]domain.HeatmapCell, error) {
			return []domain.HeatmapCell{{DayOfWeek: "Monday", Hour: 9, Count: 2}}, nil
		},
	}
	h := newTestRouter(nil, analytics, nil)

	status, env := doRequest(t, h, http.MethodGet, "/api/visitor/analytics/heatmap", "", true)

	assert.Equal(t, http.StatusOK, status)

	var got []domain.HeatmapCell
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Count)
}

package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hsuanlee/sentiment-radar/backend/internal/analytics"
	"github.com/hsuanlee/sentiment-radar/backend/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestAggregateEmptyCorpus(t *testing.T) {
	got := analytics.Aggregate(nil)

	require.Equal(t, models.Distribution{}, got.Distribution)
	require.Zero(t, got.AverageScore)
	require.Zero(t, got.TotalAnalyzed)
	require.Nil(t, got.DateRange)
	require.NotNil(t, got.DailyCounts)
	require.Empty(t, got.DailyCounts)
}

func TestAggregateDistributionAndRange(t *testing.T) {
	docs := []models.Document{
		{Sentiment: "positive", Score: 0.5, Timestamp: day(2025, 10, 10)},
		{Sentiment: "negative", Score: -0.5, Timestamp: day(2025, 10, 11)},
		{Sentiment: "neutral", Score: 0, Timestamp: day(2025, 10, 11)},
		{Sentiment: "positive", Score: 1, Timestamp: day(2025, 10, 12)},
	}

	got := analytics.Aggregate(docs)

	require.Equal(t, models.Distribution{Positive: 2, Negative: 1, Neutral: 1}, got.Distribution)
	require.Equal(t, 4, got.TotalAnalyzed)
	require.Equal(t, &models.DateRange{Start: "2025-10-10", End: "2025-10-12"}, got.DateRange)
	require.Equal(t, map[string]int{
		"2025-10-10": 1,
		"2025-10-11": 2,
		"2025-10-12": 1,
	}, got.DailyCounts)
	require.Equal(t, 0.25, got.AverageScore)
}

func TestAggregateAverageRounding(t *testing.T) {
	docs := []models.Document{
		{Sentiment: "positive", Score: 0.333, Timestamp: day(2025, 1, 1)},
		{Sentiment: "positive", Score: 0.5, Timestamp: day(2025, 1, 1)},
		{Sentiment: "neutral", Score: 0, Timestamp: day(2025, 1, 2)},
	}

	got := analytics.Aggregate(docs)
	// (0.333+0.5+0)/3 = 0.2776... -> 0.28
	require.Equal(t, 0.28, got.AverageScore)
}

func TestAggregateUnknownSentimentCountsTowardTotal(t *testing.T) {
	docs := []models.Document{
		{Sentiment: "positive", Score: 1, Timestamp: day(2025, 3, 3)},
		{Sentiment: "mixed", Score: 0, Timestamp: day(2025, 3, 3)},
	}

	got := analytics.Aggregate(docs)
	require.Equal(t, models.Distribution{Positive: 1}, got.Distribution)
	require.Equal(t, 2, got.TotalAnalyzed)
}

func TestAggregateOrderIndependent(t *testing.T) {
	docs := []models.Document{
		{Sentiment: "positive", Score: 0.4, Timestamp: day(2025, 5, 2)},
		{Sentiment: "negative", Score: -0.6, Timestamp: day(2025, 5, 1)},
		{Sentiment: "neutral", Score: 0.1, Timestamp: day(2025, 5, 3)},
	}
	reversed := []models.Document{docs[2], docs[1], docs[0]}

	require.Equal(t, analytics.Aggregate(docs), analytics.Aggregate(reversed))
}

package analytics

import (
	"math"

	"github.com/hsuanlee/sentiment-radar/backend/internal/models"
)

// Aggregate computes the corpus-wide summary in a single pass: sentiment
// distribution, average score, and per-day counts. Unknown sentiment labels
// are excluded from the distribution but still count toward TotalAnalyzed.
// Dates are bucketed in UTC. The result is order-independent.
func Aggregate(docs []models.Document) models.AnalyticsSummary {
	summary := models.AnalyticsSummary{
		TotalAnalyzed: len(docs),
		DailyCounts:   make(map[string]int),
	}

	scoreSum := 0.0
	scored := 0

	for _, doc := range docs {
		switch doc.Sentiment {
		case models.SentimentPositive:
			summary.Distribution.Positive++
		case models.SentimentNegative:
			summary.Distribution.Negative++
		case models.SentimentNeutral:
			summary.Distribution.Neutral++
		}

		if !math.IsNaN(doc.Score) {
			scoreSum += doc.Score
			scored++
		}

		if doc.Timestamp.IsZero() {
			continue
		}
		day := doc.Timestamp.UTC().Format("2006-01-02")
		summary.DailyCounts[day]++

		if summary.DateRange == nil {
			summary.DateRange = &models.DateRange{Start: day, End: day}
			continue
		}
		if day < summary.DateRange.Start {
			summary.DateRange.Start = day
		}
		if day > summary.DateRange.End {
			summary.DateRange.End = day
		}
	}

	if scored > 0 {
		summary.AverageScore = math.Round(scoreSum/float64(scored)*100) / 100
	}

	return summary
}

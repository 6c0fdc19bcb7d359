package cooccurrence

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/hsuanlee/sentiment-radar/backend/internal/keywords"
	"github.com/hsuanlee/sentiment-radar/backend/internal/models"
)

const (
	centerNodeSize  = 100
	minNodeSize     = 20
	maxNodeSize     = 80
	maxRelatedWords = 50
)

// BuildNetwork computes the star-topology co-occurrence network around
// targetTerm. Documents without a stored keyword list fall back to the
// simple extractor over their text. minFrequency must already be validated
// as a positive integer by the caller.
//
// The result is fully recomputed on every call and deterministic for a
// given input: related terms are ranked by co-occurrence count, ties broken
// by first appearance in the corpus.
func BuildNetwork(docs []models.Document, targetTerm string, minFrequency int) models.Network {
	counts := make(map[string]int)
	tallies := make(map[string]*models.SentimentTally)
	firstSeen := make(map[string]int)
	order := make([]string, 0)

	targetFrequency := 0

	for _, doc := range docs {
		kws := doc.Keywords
		if len(kws) == 0 {
			kws = keywords.ExtractFallback(doc.Text)
		}
		if !contains(kws, targetTerm) {
			continue
		}
		targetFrequency++

		for _, kw := range kws {
			if kw == targetTerm || utf8.RuneCountInString(kw) <= 1 {
				continue
			}
			if _, ok := counts[kw]; !ok {
				firstSeen[kw] = len(order)
				order = append(order, kw)
				tallies[kw] = &models.SentimentTally{}
			}
			counts[kw]++

			tally := tallies[kw]
			switch doc.Sentiment {
			case models.SentimentPositive:
				tally.Positive++
			case models.SentimentNegative:
				tally.Negative++
			default:
				tally.Neutral++
			}
			tally.Total++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})
	if len(order) > maxRelatedWords {
		order = order[:maxRelatedWords]
	}

	nodes := []models.Node{{
		ID:        targetTerm,
		Label:     targetTerm,
		Size:      centerNodeSize,
		Sentiment: models.SentimentNeutral,
		Group:     models.GroupCenter,
		Frequency: targetFrequency,
	}}
	edges := make([]models.Edge, 0, len(order))

	for _, term := range order {
		frequency := counts[term]
		if frequency < minFrequency {
			continue
		}

		tally := tallies[term]
		dominant := dominantSentiment(tally)
		score := sentimentScore(tally)

		size := minNodeSize + frequency*2
		if size > maxNodeSize {
			size = maxNodeSize
		}

		nodes = append(nodes, models.Node{
			ID:             term,
			Label:          term,
			Size:           size,
			Sentiment:      dominant,
			Group:          models.GroupRelated,
			Frequency:      frequency,
			SentimentScore: &score,
		})
		edges = append(edges, models.Edge{
			Source:    targetTerm,
			Target:    term,
			Weight:    frequency,
			Sentiment: dominant,
		})
	}

	return models.Network{
		Nodes: nodes,
		Edges: edges,
		Metadata: models.NetworkMetadata{
			TotalEntries:      len(docs),
			TargetFrequency:   targetFrequency,
			RelatedWordsCount: len(edges),
		},
	}
}

// dominantSentiment picks the label with the highest tally. Ties resolve in
// a fixed order: positive beats negative and neutral, negative beats
// neutral.
func dominantSentiment(t *models.SentimentTally) string {
	if t.Positive >= t.Negative && t.Positive >= t.Neutral {
		return models.SentimentPositive
	}
	if t.Negative >= t.Neutral {
		return models.SentimentNegative
	}
	return models.SentimentNeutral
}

func sentimentScore(t *models.SentimentTally) float64 {
	if t.Total == 0 {
		return 0
	}
	return math.Round(float64(t.Positive-t.Negative)/float64(t.Total)*100) / 100
}

func contains(words []string, target string) bool {
	for _, w := range words {
		if w == target {
			return true
		}
	}
	return false
}

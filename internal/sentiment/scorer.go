package sentiment

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/hsuanlee/sentiment-radar/backend/internal/models"
)

// Label thresholds: a score strictly above +0.2 is positive, strictly below
// -0.2 is negative, anything on or between the boundaries is neutral.
const labelBoundary = 0.2

// Result carries the outcome of scoring one text.
type Result struct {
	Sentiment        string  `json:"sentiment"`
	Score            float64 `json:"score"`
	Confidence       float64 `json:"confidence"`
	PositiveKeywords int     `json:"positiveKeywords"`
	NegativeKeywords int     `json:"negativeKeywords"`
}

// Lexicon holds the positive and negative keyword literals. It is built once
// and never mutated afterwards.
type Lexicon struct {
	positive []string
	negative []string
}

// NewLexicon copies the provided keyword lists into an immutable lexicon.
func NewLexicon(positive, negative []string) Lexicon {
	return Lexicon{
		positive: append([]string(nil), positive...),
		negative: append([]string(nil), negative...),
	}
}

// DefaultLexicon returns the built-in Traditional-Chinese keyword lists.
func DefaultLexicon() Lexicon {
	return NewLexicon(
		[]string{
			"開心", "快樂", "喜歡", "愛", "好", "棒", "讚", "感謝", "謝謝",
			"美好", "幸福", "完美", "優秀", "厲害", "加油", "支持", "溫暖",
			"可愛", "帥", "漂亮", "成功", "順利", "有趣", "笑", "哈哈",
		},
		[]string{
			"難過", "傷心", "痛苦", "討厭", "糟", "爛", "差", "壞", "失望",
			"生氣", "憤怒", "煩", "累", "辛苦", "困難", "問題", "錯誤", "失敗",
			"害怕", "擔心", "焦慮", "後悔", "哭", "可惜", "無聊", "寂寞",
		},
	)
}

// Scorer scores text against a fixed lexicon.
type Scorer struct {
	lexicon Lexicon
}

// NewScorer builds a scorer over the given lexicon.
func NewScorer(lexicon Lexicon) *Scorer {
	return &Scorer{lexicon: lexicon}
}

// Score counts lexicon occurrences in text and derives a sentiment label,
// a signed score in [-1,1], and a density-based confidence in [0,1].
// Empty text yields the neutral zero result.
func (s *Scorer) Score(text string) Result {
	if text == "" {
		return Result{Sentiment: models.SentimentNeutral}
	}

	positive := 0
	for _, kw := range s.lexicon.positive {
		positive += countOccurrences(text, kw)
	}
	negative := 0
	for _, kw := range s.lexicon.negative {
		negative += countOccurrences(text, kw)
	}

	total := positive + negative
	score := 0.0
	label := models.SentimentNeutral
	if total > 0 {
		score = float64(positive-negative) / float64(total)
		if score > labelBoundary {
			label = models.SentimentPositive
		} else if score < -labelBoundary {
			label = models.SentimentNegative
		}
	}

	// Density is lexicon hits per 100 characters of text.
	length := utf8.RuneCountInString(text)
	density := float64(total) / (float64(length) / 100)
	confidence := math.Min(density/2, 1)

	return Result{
		Sentiment:        label,
		Score:            round3(score),
		Confidence:       round3(confidence),
		PositiveKeywords: positive,
		NegativeKeywords: negative,
	}
}

// countOccurrences counts every occurrence of keyword in text, including
// overlapping ones: after each hit the scan resumes one rune later.
func countOccurrences(text, keyword string) int {
	if keyword == "" {
		return 0
	}
	count := 0
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], keyword)
		if i < 0 {
			break
		}
		count++
		_, size := utf8.DecodeRuneInString(text[offset+i:])
		offset += i + size
	}
	return count
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

package normalize

import (
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hsuanlee/sentiment-radar/backend/internal/keywords"
	"github.com/hsuanlee/sentiment-radar/backend/internal/models"
	"github.com/hsuanlee/sentiment-radar/backend/internal/sentiment"
)

const (
	maxTextLength  = 500
	maxTitleLength = 50
)

// Dcard timestamps look like "9月12日 18:08" and carry no year.
var mentionTimeRegex = regexp.MustCompile(`(\d+)月(\d+)日\s*(\d+):(\d+)`)

// Normalizer maps raw ingested records into canonical documents, invoking
// the scorer and keyword extractor on the way. The clock is injectable
// because entity timestamps lack a year and fall back to the processing
// instant.
type Normalizer struct {
	scorer       *sentiment.Scorer
	keywordLimit int
	now          func() time.Time
}

// New builds a normalizer. A nil now defaults to time.Now.
func New(scorer *sentiment.Scorer, keywordLimit int, now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{scorer: scorer, keywordLimit: keywordLimit, now: now}
}

// Normalize converts one raw record into a canonical document. It returns
// nil when the record has no usable text container; callers skip such
// records and continue the batch.
func (n *Normalizer) Normalize(raw models.RawDocument) *models.Document {
	if raw.Document == nil || raw.Document.Text == "" {
		return nil
	}

	text := raw.Document.Text
	entities := raw.Document.Entities

	result := n.scorer.Score(text)

	id := raw.ID
	if id == "" {
		id = uuid.NewString()
	}

	// Always an array on the wire, even when extraction finds nothing.
	kws := keywords.Extract(text, n.keywordLimit)
	if kws == nil {
		kws = []string{}
	}

	return &models.Document{
		ID:         id,
		Text:       truncateRunes(text, maxTextLength),
		Title:      n.extractTitle(entities, text),
		Sentiment:  result.Sentiment,
		Score:      result.Score,
		Confidence: result.Confidence,
		Timestamp:  n.extractTimestamp(entities),
		Category:   extractCategory(entities),
		Keywords:   kws,
		Entities:   entities,
		Raw:        raw.Raw,
	}
}

// extractTimestamp resolves the timestamp entity against the processing
// year, since the source format carries none. Missing or unparseable
// timestamps fall back to the current instant.
func (n *Normalizer) extractTimestamp(entities []models.Entity) time.Time {
	for _, e := range entities {
		if e.Type != "timestamp" || e.MentionText == "" {
			continue
		}
		m := mentionTimeRegex.FindStringSubmatch(e.MentionText)
		if m == nil {
			continue
		}
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		hour, _ := strconv.Atoi(m[3])
		minute, _ := strconv.Atoi(m[4])
		return time.Date(n.now().Year(), time.Month(month), day, hour, minute, 0, 0, time.UTC)
	}
	return n.now().UTC()
}

func extractCategory(entities []models.Entity) string {
	for _, e := range entities {
		if e.Type == "topic" && e.MentionText != "" {
			return e.MentionText
		}
	}
	return "general"
}

func (n *Normalizer) extractTitle(entities []models.Entity, text string) string {
	for _, e := range entities {
		if e.Type == "title" && e.MentionText != "" {
			return e.MentionText
		}
	}
	return truncateRunes(text, maxTitleLength) + "..."
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

package models

import (
	"encoding/json"
	"time"
)

// Sentiment labels produced by the lexicon scorer.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Entity is one annotation attached to an ingested document.
type Entity struct {
	Type        string `json:"type"`
	MentionText string `json:"mentionText"`
}

// RawDocument is an ingested record before normalization. The document
// container carries the text and its entity annotations; Raw keeps the
// original JSON bytes for traceability.
type RawDocument struct {
	ID       string          `json:"id,omitempty"`
	Document *RawContainer   `json:"document,omitempty"`
	Raw      json.RawMessage `json:"-"`
}

// RawContainer is the nested text holder of a raw record.
type RawContainer struct {
	Text     string   `json:"text"`
	Entities []Entity `json:"entities"`
}

// Document is the canonical, scored representation of one ingested record.
type Document struct {
	ID         string          `json:"id"`
	Text       string          `json:"text"`
	Title      string          `json:"title"`
	Sentiment  string          `json:"sentiment"`
	Score      float64         `json:"score"`
	Confidence float64         `json:"confidence"`
	Timestamp  time.Time       `json:"timestamp"`
	Category   string          `json:"category"`
	Keywords   []string        `json:"keywords"`
	Entities   []Entity        `json:"entities"`
	Raw        json.RawMessage `json:"raw,omitempty"`
}

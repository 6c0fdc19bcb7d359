package models

// Distribution counts documents per sentiment label.
type Distribution struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// DateRange marks the earliest and latest calendar dates present in a corpus.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AnalyticsSummary is the corpus-wide rollup served by the analytics endpoint.
// It is recomputed on demand and never persisted.
type AnalyticsSummary struct {
	Distribution  Distribution   `json:"distribution"`
	AverageScore  float64        `json:"averageScore"`
	TotalAnalyzed int            `json:"totalAnalyzed"`
	DateRange     *DateRange     `json:"dateRange"`
	DailyCounts   map[string]int `json:"dailyCounts"`
}

// SentimentTally accumulates per-term sentiment counts during a single
// network-build pass.
type SentimentTally struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
	Total    int `json:"total"`
}

// Node groups in a co-occurrence network.
const (
	GroupCenter  = "center"
	GroupRelated = "related"
)

// Node is one term in the co-occurrence network.
type Node struct {
	ID             string   `json:"id"`
	Label          string   `json:"label"`
	Size           int      `json:"size"`
	Sentiment      string   `json:"sentiment"`
	Group          string   `json:"group"`
	Frequency      int      `json:"frequency"`
	SentimentScore *float64 `json:"sentimentScore,omitempty"`
}

// Edge links the center term to one related term.
type Edge struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Weight    int    `json:"weight"`
	Sentiment string `json:"sentiment"`
}

// NetworkMetadata describes the corpus the network was built from.
type NetworkMetadata struct {
	TotalEntries      int `json:"totalEntries"`
	TargetFrequency   int `json:"targetFrequency"`
	RelatedWordsCount int `json:"relatedWordsCount"`
}

// Network is a star-topology co-occurrence graph centered on a target term.
type Network struct {
	Nodes    []Node          `json:"nodes"`
	Edges    []Edge          `json:"edges"`
	Metadata NetworkMetadata `json:"metadata"`
}

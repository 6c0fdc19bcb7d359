package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hsuanlee/sentiment-radar/backend/internal/models"
)

// DecodeBatch parses one ingested payload, which is either a single JSON
// object or an array of objects. Each element keeps its original bytes in
// RawDocument.Raw. Elements that are valid JSON but not object-shaped are
// still returned; the normalizer skips them later. Only an unparseable
// payload is an error.
func DecodeBatch(data []byte) ([]models.RawDocument, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty payload")
	}

	if trimmed[0] == '[' {
		var elements []json.RawMessage
		if err := json.Unmarshal(trimmed, &elements); err != nil {
			return nil, fmt.Errorf("decode array payload: %w", err)
		}
		docs := make([]models.RawDocument, 0, len(elements))
		for _, element := range elements {
			docs = append(docs, decodeElement(element))
		}
		return docs, nil
	}

	if !json.Valid(trimmed) {
		return nil, errors.New("payload is not valid JSON")
	}
	return []models.RawDocument{decodeElement(trimmed)}, nil
}

func decodeElement(element json.RawMessage) models.RawDocument {
	var doc models.RawDocument
	// Shape mismatches leave the struct zero-valued; the raw bytes are kept
	// either way so nothing is lost downstream.
	_ = json.Unmarshal(element, &doc)
	doc.Raw = append(json.RawMessage(nil), element...)
	return doc
}

package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hsuanlee/sentiment-radar/backend/internal/ingest"
)

func TestDecodeBatchSingleObject(t *testing.T) {
	payload := []byte(`{"id":"a1","document":{"text":"今天很開心","entities":[{"type":"topic","mentionText":"心情"}]}}`)

	docs, err := ingest.DecodeBatch(payload)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	require.Equal(t, "a1", docs[0].ID)
	require.NotNil(t, docs[0].Document)
	require.Equal(t, "今天很開心", docs[0].Document.Text)
	require.Len(t, docs[0].Document.Entities, 1)
	require.JSONEq(t, string(payload), string(docs[0].Raw))
}

func TestDecodeBatchArray(t *testing.T) {
	payload := []byte(`[{"id":"a1","document":{"text":"第一篇"}},{"id":"a2","document":{"text":"第二篇"}}]`)

	docs, err := ingest.DecodeBatch(payload)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "a1", docs[0].ID)
	require.Equal(t, "a2", docs[1].ID)
}

func TestDecodeBatchKeepsNonObjectElements(t *testing.T) {
	// Valid JSON that is not object-shaped flows through with raw bytes
	// preserved; the normalizer drops it later.
	docs, err := ingest.DecodeBatch([]byte(`[{"id":"ok","document":{"text":"好"}},"junk"]`))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Nil(t, docs[1].Document)
	require.JSONEq(t, `"junk"`, string(docs[1].Raw))
}

func TestDecodeBatchErrors(t *testing.T) {
	_, err := ingest.DecodeBatch(nil)
	require.Error(t, err)

	_, err = ingest.DecodeBatch([]byte("   "))
	require.Error(t, err)

	_, err = ingest.DecodeBatch([]byte(`{"broken":`))
	require.Error(t, err)

	_, err = ingest.DecodeBatch([]byte(`[1, 2,`))
	require.Error(t, err)
}

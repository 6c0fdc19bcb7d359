package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hsuanlee/sentiment-radar/backend/internal/config"
	"github.com/hsuanlee/sentiment-radar/backend/internal/resultcache"
)

func testServer() *server {
	return &server{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		cfg: &config.API{
			DefaultPage:      20,
			MaxPage:          100,
			DefaultTerm:      "暈船",
			DefaultThreshold: 5,
			FetchPageSize:    100,
		},
		cache: resultcache.New(time.Minute),
	}
}

func TestHandleCooccurrenceRejectsInvalidThreshold(t *testing.T) {
	// Validation runs before any storage access, so no client is needed.
	for _, raw := range []string{"0", "-3", "abc", "1.5"} {
		req := httptest.NewRequest(http.MethodGet, "/api/cooccurrence?threshold="+raw, nil)
		rec := httptest.NewRecorder()

		testServer().handleCooccurrence(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, "threshold %q", raw)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.False(t, resp.Success)
		require.Equal(t, "Invalid threshold. Must be a positive integer.", resp.Error)
	}
}

func TestHandleSentimentDataRejectsInvalidType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/sentiment-data?type=angry", nil)
	rec := httptest.NewRecorder()

	testServer().handleSentimentData(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSentimentDataRejectsInvalidDate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/sentiment-data?startDate=12-31-2025", nil)
	rec := httptest.NewRecorder()

	testServer().handleSentimentData(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchParamsFromQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/api/sentiment-data?type=positive&category=感情&startDate=2025-10-01&endDate=2025-10-31&from=5&size=10", nil)

	params, errMsg := testServer().searchParamsFromQuery(req)
	require.Empty(t, errMsg)
	require.Equal(t, "positive", params.Sentiment)
	require.Equal(t, "感情", params.Category)
	require.NotNil(t, params.Start)
	require.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), *params.Start)
	require.NotNil(t, params.End)
	require.Equal(t, time.Date(2025, 10, 31, 23, 59, 59, 0, time.UTC), *params.End)
	require.Equal(t, 5, params.From)
	require.Equal(t, 10, params.Size)
}

func TestSearchParamsFromQueryPagingBounds(t *testing.T) {
	// No paging params: the configured defaults apply.
	req := httptest.NewRequest(http.MethodGet, "/api/sentiment-data", nil)
	params, errMsg := testServer().searchParamsFromQuery(req)
	require.Empty(t, errMsg)
	require.Zero(t, params.From)
	require.Equal(t, 20, params.Size)

	// Oversized and junk values clamp to the configured bounds.
	req = httptest.NewRequest(http.MethodGet, "/api/sentiment-data?from=junk&size=9999", nil)
	params, errMsg = testServer().searchParamsFromQuery(req)
	require.Empty(t, errMsg)
	require.Zero(t, params.From)
	require.Equal(t, 100, params.Size)
}

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	var buf bytes.Buffer
	srv := testServer()
	srv.log = slog.New(slog.NewTextHandler(&buf, nil))

	rec := httptest.NewRecorder()
	srv.writeJSON(rec, http.StatusOK, map[string]any{"bad": func() {}})

	require.Contains(t, buf.String(), "encode response")
}

func TestParseDate(t *testing.T) {
	ts, ok := parseDate("2025-10-10", false)
	require.True(t, ok)
	require.NotNil(t, ts)
	require.Equal(t, time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC), *ts)

	end, ok := parseDate("2025-10-10", true)
	require.True(t, ok)
	require.Equal(t, time.Date(2025, 10, 10, 23, 59, 59, 0, time.UTC), *end)

	empty, ok := parseDate("", false)
	require.True(t, ok)
	require.Nil(t, empty)

	_, ok = parseDate("next tuesday", false)
	require.False(t, ok)
}

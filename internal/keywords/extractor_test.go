package keywords_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hsuanlee/sentiment-radar/backend/internal/keywords"
)

func TestExtractEmptyText(t *testing.T) {
	require.Nil(t, keywords.Extract("", 20))
}

func TestExtractPatternBucketsFirst(t *testing.T) {
	// Bucket matches come before generic phrases, in bucket order:
	// emotion, social, place, activity, time.
	got := keywords.Extract("暈船了朋友說今天吃飯", 20)

	require.GreaterOrEqual(t, len(got), 4)
	require.Equal(t, []string{"暈船", "朋友", "吃飯", "今天"}, got[:4])
}

func TestExtractDeduplicates(t *testing.T) {
	got := keywords.Extract("朋友朋友朋友", 20)
	seen := make(map[string]int)
	for _, kw := range got {
		seen[kw]++
		require.Equal(t, 1, seen[kw], "keyword %q extracted twice", kw)
	}
	require.Contains(t, got, "朋友")
}

func TestExtractFrequencyRanking(t *testing.T) {
	// 愛愛 occurs three times, 測試 once; the frequent phrase ranks first.
	got := keywords.Extract("愛愛 愛愛 愛愛 測試", 20)
	require.Equal(t, []string{"愛愛", "測試"}, got)
}

func TestExtractHonorsLimit(t *testing.T) {
	text := "暈船朋友台北吃飯今天 曖昧家人台中看電影昨天 喜歡同學台南聊天明天"
	got := keywords.Extract(text, 5)
	require.Len(t, got, 5)
}

func TestExtractDefaultLimit(t *testing.T) {
	got := keywords.Extract("朋友 今天", 0)
	require.NotEmpty(t, got)
	require.LessOrEqual(t, len(got), keywords.DefaultLimit)
}

func TestExtractFallback(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: nil},
		{name: "drops stop words and singles", text: "朋友 的 我 暈船 朋友", want: []string{"朋友", "暈船"}},
		{name: "keeps maximal runs", text: "今天吃飯 昨天", want: []string{"今天吃飯", "昨天"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, keywords.ExtractFallback(tt.text))
		})
	}
}

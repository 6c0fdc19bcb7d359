package keywords

import (
	"regexp"
	"sort"
	"unicode/utf8"
)

// DefaultLimit caps the number of keywords extracted per document.
const DefaultLimit = 20

// patternBuckets are the curated phrase patterns applied before the generic
// phrase scan. Each bucket covers one vocabulary area of Dcard posts.
var patternBuckets = []struct {
	name string
	re   *regexp.Regexp
}{
	{"emotion", regexp.MustCompile(`暈船|曖昧|喜歡|愛情|感情|交友|約會|分手|想念`)},
	{"social", regexp.MustCompile(`朋友|家人|同學|室友|鄰居|陌生人`)},
	{"place", regexp.MustCompile(`台北|台中|台南|高雄|學校|公司|家裡|餐廳`)},
	{"activity", regexp.MustCompile(`吃飯|看電影|聊天|玩遊戲|運動|旅遊|工作|讀書`)},
	{"time", regexp.MustCompile(`今天|昨天|明天|週末|假日|早上|晚上|最近`)},
}

var (
	// 2-4 consecutive CJK ideographs, the common Chinese phrase length.
	phraseRegex = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]{2,4}`)
	// Maximal CJK runs, used by the fallback extractor.
	cjkRunRegex = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]+`)
)

var stopWords = map[string]struct{}{
	"的": {}, "是": {}, "在": {}, "了": {}, "和": {}, "有": {}, "我": {}, "你": {}, "他": {}, "她": {},
	"這": {}, "那": {}, "就": {}, "都": {}, "而": {}, "及": {}, "與": {}, "或": {}, "等": {}, "著": {},
	"很": {}, "不": {}, "也": {}, "要": {}, "會": {}, "可": {}, "能": {}, "到": {}, "為": {}, "但": {},
	"一": {}, "個": {}, "們": {}, "對": {}, "說": {}, "用": {}, "把": {}, "從": {}, "以": {}, "所": {},
}

// Extract derives up to limit unique keywords from text. Curated pattern
// buckets run first, then 2-4 character CJK phrases ranked by frequency fill
// the remainder. Insertion order is preserved; ties in the frequency ranking
// keep first-seen order. Empty text yields nil.
func Extract(text string, limit int) []string {
	if text == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	seen := make(map[string]struct{})
	var result []string
	add := func(word string) {
		if _, ok := seen[word]; ok {
			return
		}
		seen[word] = struct{}{}
		result = append(result, word)
	}

	for _, bucket := range patternBuckets {
		for _, match := range bucket.re.FindAllString(text, -1) {
			add(match)
		}
	}

	phrases := phraseRegex.FindAllString(text, -1)
	freq := make(map[string]int, len(phrases))
	firstSeen := make(map[string]int, len(phrases))
	order := make([]string, 0, len(phrases))
	for i, phrase := range phrases {
		if _, ok := freq[phrase]; !ok {
			firstSeen[phrase] = i
			order = append(order, phrase)
		}
		freq[phrase]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if freq[order[i]] != freq[order[j]] {
			return freq[order[i]] > freq[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	top := len(order)
	if top > limit {
		top = limit
	}
	for _, phrase := range order[:top] {
		add(phrase)
	}

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// ExtractFallback is the simpler variant used when a document carries no
// precomputed keyword list: maximal CJK runs of two or more characters,
// stop words dropped, deduplicated in first-occurrence order. No frequency
// ranking and no limit.
func ExtractFallback(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var result []string
	for _, word := range cjkRunRegex.FindAllString(text, -1) {
		if utf8.RuneCountInString(word) < 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		result = append(result, word)
	}
	return result
}

package generator

import "strings"

// WordsPerMinute is the reading speed behind Metrics.ReadingTime.
const WordsPerMinute = 200

// Analyze 统计字数、阅读时长和关键词覆盖，纯函数。
//
// Empty or whitespace-only content counts as zero words. Reading time never
// drops below one minute.
func Analyze(content string, keywords []string) Metrics {
	words := len(strings.Fields(content))
	return Metrics{
		WordCount:    words,
		ReadingTime:  readingTime(words),
		KeywordsUsed: countKeywords(content, keywords),
	}
}

func readingTime(words int) int {
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// countKeywords counts list entries found anywhere in content, ignoring case.
// Duplicate entries count once each.
func countKeywords(content string, keywords []string) int {
	if len(keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(content)
	used := 0
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if strings.Contains(lower, k) {
			used++
		}
	}
	return used
}

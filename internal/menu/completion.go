package menu

import (
	"strconv"
	"strings"
)

// Complete maps an answer onto candidates: a 1-based index, an exact
// case-insensitive match, or a unique case-insensitive prefix selects a
// candidate. Any other answer is returned unchanged as free text.
func Complete(answer string, candidates []string) string {
	trimmedAnswer := strings.TrimSpace(answer)
	if len(trimmedAnswer) == 0 {
		return ""
	}
	if candidate, found := candidateAtIndex(trimmedAnswer, candidates); found {
		return candidate
	}

	normalizedAnswer := strings.ToLower(trimmedAnswer)
	for _, candidate := range candidates {
		if strings.ToLower(candidate) == normalizedAnswer {
			return candidate
		}
	}

	matched := ""
	matchCount := 0
	for _, candidate := range candidates {
		if strings.HasPrefix(strings.ToLower(candidate), normalizedAnswer) {
			matched = candidate
			matchCount++
		}
	}
	if matchCount == 1 {
		return matched
	}
	return trimmedAnswer
}

func candidateAtIndex(answer string, candidates []string) (string, bool) {
	index, parseError := strconv.Atoi(answer)
	if parseError != nil || index < 1 || index > len(candidates) {
		return "", false
	}
	return candidates[index-1], true
}

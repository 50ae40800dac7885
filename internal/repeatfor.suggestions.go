package internal

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// FindSimilarStrings finds strings from candidates that are similar to target.
// Abbreviations matched by fuzzy subsequence search come first (best score
// first), followed by typos within a Levenshtein distance threshold. Returns
// at most maxSuggestions entries without duplicates.
func FindSimilarStrings(target string, candidates []string, maxSuggestions int) []string {
	if len(candidates) == 0 || maxSuggestions <= 0 || target == "" {
		return nil
	}

	result := make([]string, 0, maxSuggestions)
	seen := make(map[string]bool, len(candidates))
	add := func(s string) {
		if len(result) < maxSuggestions && !seen[s] && s != target {
			seen[s] = true
			result = append(result, s)
		}
	}

	for _, m := range fuzzy.Find(target, candidates) {
		add(m.Str)
	}

	// Maximum distance to consider a candidate as similar
	maxDistance := len(target) / 2
	if maxDistance < 2 {
		maxDistance = 2
	}

	type scored struct {
		str      string
		distance int
	}

	var similar []scored
	targetLower := strings.ToLower(target)
	for _, candidate := range candidates {
		dist := levenshteinDistance(targetLower, strings.ToLower(candidate))
		if dist <= maxDistance {
			similar = append(similar, scored{str: candidate, distance: dist})
		}
	}
	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].distance < similar[j].distance
	})
	for _, s := range similar {
		add(s.str)
	}

	return result
}

// levenshteinDistance calculates the minimum number of single-character edits
// required to change a into b.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// FormatSuggestions formats a list of suggestions as a human-readable string.
// Example output: ". Did you mean 'expr', 'type' or 'stmt'?"
func FormatSuggestions(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}

	if len(suggestions) == 1 {
		return ". Did you mean '" + suggestions[0] + "'?"
	}

	var sb strings.Builder
	sb.WriteString(". Did you mean ")
	for i, s := range suggestions {
		if i > 0 {
			if i == len(suggestions)-1 {
				sb.WriteString(" or ")
			} else {
				sb.WriteString(", ")
			}
		}
		sb.WriteByte('\'')
		sb.WriteString(s)
		sb.WriteByte('\'')
	}
	sb.WriteByte('?')
	return sb.String()
}

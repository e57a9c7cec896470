package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest ranks candidates by closeness to token and returns at most limit
// of them. Comparison ignores case and whitespace; candidates are returned as given.
func Suggest(token string, candidates []string, limit int) []string {
	key := strings.ToLower(StripWhitespace(token))
	if key == "" || limit <= 0 {
		return nil
	}
	type scored struct {
		val   string
		score float64
	}
	results := make([]scored, 0, len(candidates))
	seen := map[string]bool{}
	for _, cand := range candidates {
		if seen[cand] {
			continue
		}
		seen[cand] = true
		norm := strings.ToLower(StripWhitespace(cand))
		if norm == "" {
			continue
		}
		var score float64
		switch {
		case norm == key:
			score = 1.0
		case len(key) >= 2 && strings.HasPrefix(norm, key):
			score = 0.9
		case len(key) >= 3 && strings.Contains(norm, key):
			score = 0.8
		default:
			dist := levenshtein.ComputeDistance(key, norm)
			if dist > levenshteinLimit(len(norm)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		results = append(results, scored{val: cand, score: score})
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.val)
	}
	return out
}

// MatchingPrefix returns the options starting with prefix, ignoring case,
// in sorted order. An empty prefix matches everything.
func MatchingPrefix(prefix string, options []string) []string {
	prefix = strings.ToLower(prefix)
	out := make([]string, 0, len(options))
	for _, opt := range options {
		if strings.HasPrefix(strings.ToLower(opt), prefix) {
			out = append(out, opt)
		}
	}
	sort.Strings(out)
	return out
}

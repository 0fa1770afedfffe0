package search

import "github.com/sahilm/fuzzy"

// Result is a fuzzy match against one item of the searched list.
type Result struct {
	Index          int // position in the searched slice
	Text           string
	MatchedIndexes []int
	Score          int
}

// Fuzzy matches query against items and returns results sorted by score (best first).
// An empty query returns every item in its original order.
func Fuzzy(items []string, query string) []Result {
	if query == "" {
		results := make([]Result, len(items))
		for i, item := range items {
			results[i] = Result{Index: i, Text: item}
		}
		return results
	}

	matches := fuzzy.Find(query, items)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Index:          m.Index,
			Text:           m.Str,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

package search

import (
	"sort"
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Normalize trims, transliterates to ASCII and lowercases a query.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

// Similarity is 1 minus the edit distance over the longer length.
func Similarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// Rank orders results by how well their title matches the query. A title
// containing the query ranks above any fuzzy match; ties keep input order.
func Rank(results []Result, query string) []Result {
	q := Normalize(query)
	for i := range results {
		title := Normalize(results[i].Title)
		score := Similarity(q, title)
		if strings.Contains(title, q) {
			score += 1
		}
		results[i].score = score
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	return results
}

// Suggest returns the recent search closest to query, or "" when none is
// close enough or it equals the query.
func Suggest(query string, recent []string) string {
	if len(recent) == 0 {
		return ""
	}
	q := Normalize(query)

	candidates := make([]string, 0, len(recent))
	for _, r := range recent {
		if n := Normalize(r); n != "" && n != q {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	best := closestmatch.New(candidates, []int{2, 3}).Closest(q)
	if best == "" || Similarity(q, best) < 0.5 {
		return ""
	}
	return best
}

// PushRecent puts query first, drops earlier copies and caps the list.
func PushRecent(recent []string, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return recent
	}
	updated := make([]string, 0, MaxRecent)
	updated = append(updated, query)
	for _, r := range recent {
		if r != query {
			updated = append(updated, r)
		}
	}
	if len(updated) > MaxRecent {
		updated = updated[:MaxRecent]
	}
	return updated
}

// Truncate shortens a message for use as a subtitle.
func Truncate(message string) string {
	runes := []rune(message)
	if len(runes) > SubtitleLength {
		runes = runes[:SubtitleLength]
	}
	return string(runes) + "..."
}

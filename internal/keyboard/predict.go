package keyboard

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Predictor wraps an external word predictor. PredictWords uses the one
// it is given and falls back to FallbackPredictor when that is nil, so a
// real binding can be plugged in without touching call sites.
type Predictor interface {
	Predict(pastContext, partialWord string) []string
}

// fallbackDictionary is a small frequency-ranked word list used when no
// external predictor is wired in. Higher frequency sorts first.
var fallbackDictionary = []struct {
	word string
	freq int
}{
	{"the", 100}, {"to", 95}, {"and", 90}, {"a", 88}, {"of", 85},
	{"in", 80}, {"is", 75}, {"it", 72}, {"you", 70}, {"that", 68},
	{"for", 65}, {"on", 60}, {"with", 58}, {"as", 55}, {"are", 52},
	{"this", 50}, {"be", 48}, {"at", 45}, {"have", 44}, {"from", 42},
	{"or", 40}, {"not", 38}, {"but", 36}, {"what", 34}, {"all", 32},
	{"were", 30}, {"we", 29}, {"when", 28}, {"your", 27}, {"can", 26},
	{"said", 25}, {"there", 24}, {"use", 23}, {"an", 22}, {"each", 21},
	{"which", 20}, {"she", 19}, {"do", 18}, {"how", 17}, {"their", 16},
	{"if", 15}, {"will", 14}, {"up", 13}, {"other", 12}, {"about", 11},
	{"out", 10}, {"many", 9}, {"then", 8}, {"them", 7}, {"these", 6},
	{"so", 5}, {"some", 4}, {"her", 3}, {"would", 2}, {"make", 1},
}

var foldCase = cases.Fold()

// FallbackPredictor implements Predictor using the built-in frequency
// dictionary, per the fallback rules in the on-screen keyboard spec:
// prefix match first; for words of 2+ characters with fewer than 3
// prefix matches, supplement with fuzzy matches up to a length-scaled
// Levenshtein distance, sorted by distance then frequency.
type FallbackPredictor struct{}

// Predict ignores pastContext (the fallback dictionary carries no
// bigram/context model) and ranks candidates for partialWord.
func (FallbackPredictor) Predict(pastContext, partialWord string) []string {
	const maxCandidates = 3
	needle := foldCase.String(strings.TrimSpace(partialWord))
	if needle == "" {
		return nil
	}

	type scored struct {
		word     string
		distance int
		freq     int
	}

	var prefixMatches []scored
	for _, e := range fallbackDictionary {
		if strings.HasPrefix(e.word, needle) {
			prefixMatches = append(prefixMatches, scored{e.word, 0, e.freq})
		}
	}
	sort.Slice(prefixMatches, func(i, j int) bool {
		return prefixMatches[i].freq > prefixMatches[j].freq
	})

	if len(needle) < 2 || len(prefixMatches) >= maxCandidates {
		return topWords(prefixMatches, maxCandidates)
	}

	maxDist := levenshteinBudget(len(needle))
	seen := make(map[string]bool, len(prefixMatches))
	for _, m := range prefixMatches {
		seen[m.word] = true
	}

	var fuzzy []scored
	for _, e := range fallbackDictionary {
		if seen[e.word] {
			continue
		}
		d := levenshtein(needle, e.word)
		if d <= maxDist {
			fuzzy = append(fuzzy, scored{e.word, d, e.freq})
		}
	}
	sort.Slice(fuzzy, func(i, j int) bool {
		if fuzzy[i].distance != fuzzy[j].distance {
			return fuzzy[i].distance < fuzzy[j].distance
		}
		return fuzzy[i].freq > fuzzy[j].freq
	})

	combined := append(prefixMatches, fuzzy...)
	return topWords(combined, maxCandidates)
}

func topWords(matches []struct {
	word     string
	distance int
	freq     int
}, n int) []string {
	if len(matches) > n {
		matches = matches[:n]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.word
	}
	return out
}

// levenshteinBudget implements the spec's length-scaled fuzzy threshold:
// 1 for words of length <= 3, 2 for <= 6, 3 otherwise.
func levenshteinBudget(wordLen int) int {
	switch {
	case wordLen <= 3:
		return 1
	case wordLen <= 6:
		return 2
	default:
		return 3
	}
}

// levenshtein computes the classic edit distance between a and b.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			cur[j] = min3(del, ins, sub)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// PredictWords returns up to 3 candidates for partialWord given
// pastContext, using external if non-nil, falling back to the built-in
// dictionary otherwise.
func PredictWords(external Predictor, pastContext, partialWord string) []string {
	if external != nil {
		if out := external.Predict(pastContext, partialWord); out != nil {
			return out
		}
	}
	return FallbackPredictor{}.Predict(pastContext, partialWord)
}

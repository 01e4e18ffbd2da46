package diagnostics

// SuggestNames ranks candidates by edit distance to name, returning the
// closest max matches (used for no_matches hypotheses: "did you mean
// draw_circle?").
func SuggestNames(name string, candidates []string, max int) []string {
	type scored struct {
		name string
		dist int
	}
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, scored{name: c, dist: levenshtein(name, c)})
	}

	// Simple insertion sort by distance: candidate lists here are small
	// (alternatives at one call site), so O(n^2) is fine and keeps ties in
	// their original, deterministic order.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].dist < ranked[j-1].dist; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	if max > len(ranked) {
		max = len(ranked)
	}
	out := make([]string, max)
	for i := 0; i < max; i++ {
		out[i] = ranked[i].name
	}
	return out
}

// levenshtein computes the classic edit distance between a and b.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
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

package match

import "sort"

// DefaultThreshold is the minimum KeySimilarity a name needs to be suggested.
const DefaultThreshold = 0.6

// Candidate is a known name scored against an unknown one.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every known name against name, best first.
// Ties are broken alphabetically so output is deterministic.
func Rank(name string, known []string) []Candidate {
	candidates := make([]Candidate, 0, len(known))
	for _, k := range known {
		candidates = append(candidates, Candidate{Name: k, Score: KeySimilarity(name, k)})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}

		return candidates[i].Name < candidates[j].Name
	})

	return candidates
}

// Suggest returns up to limit known names that look like typos of name.
func Suggest(name string, known []string, limit int) []string {
	var out []string

	for _, c := range Rank(name, known) {
		if len(out) == limit || c.Score < DefaultThreshold {
			break
		}

		out = append(out, c.Name)
	}

	return out
}

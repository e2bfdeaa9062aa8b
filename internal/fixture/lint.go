package fixture

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/roach88/gildedrose/internal/inventory"
)

// maxLintDistance is the largest edit distance reported as a likely typo.
const maxLintDistance = 2

// Warning flags an item whose name is close to a keyword it does not match.
type Warning struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Keyword  string `json:"keyword"`
	Distance int    `json:"distance"`
}

func (w Warning) String() string {
	return fmt.Sprintf("items[%d] %q: looks like %q (edit distance %d) but does not match it",
		w.Index, w.Name, w.Keyword, w.Distance)
}

// Lint reports item names within a small edit distance of a category
// keyword that do not contain it, such as "Aged Bree". Such items classify
// as normal, which is rarely what the author meant.
// Returns an empty slice (not nil) when nothing is flagged.
func Lint(f *Fixture) []Warning {
	warnings := []Warning{}
	for i, spec := range f.Items {
		folded := inventory.Fold(spec.Name)
		for _, kw := range inventory.Keywords {
			if strings.Contains(folded, kw) {
				continue
			}
			d := nearestDistance(folded, kw)
			if d > 0 && d <= maxLintDistance {
				warnings = append(warnings, Warning{Index: i, Name: spec.Name, Keyword: kw, Distance: d})
			}
		}
	}
	return warnings
}

// nearestDistance is the smallest edit distance between kw and any run of
// s whose length is within maxLintDistance runes of kw's.
func nearestDistance(s, kw string) int {
	runes := []rune(s)
	n := len([]rune(kw))

	best := levenshtein.ComputeDistance(s, kw)
	for width := n - maxLintDistance; width <= n+maxLintDistance; width++ {
		if width <= 0 {
			continue
		}
		for start := 0; start+width <= len(runes); start++ {
			if d := levenshtein.ComputeDistance(string(runes[start:start+width]), kw); d < best {
				best = d
			}
		}
	}
	return best
}

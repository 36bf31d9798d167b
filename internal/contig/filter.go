// Package contig decides which FASTA records contribute to the counts.
package contig

import "sort"

// Skip reasons reported by Filter.Decide.
const (
	ReasonExcluded  = "excluded"
	ReasonNotListed = "not in include list"
)

// Filter gates contigs by exact, case-sensitive name. The zero value counts
// everything.
type Filter struct {
	exclude map[string]struct{}
	include map[string]struct{}
}

// New builds a filter from an exclusion list and an include list. Either may
// be empty; duplicate names are harmless and order is irrelevant.
func New(exclude, include []string) Filter {
	return Filter{exclude: toSet(exclude), include: toSet(include)}
}

func toSet(names []string) map[string]struct{} {
	if len(names) == 0 {
		return nil
	}
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// Decide reports whether positions on the named contig are counted, and if
// not, why.
func (f Filter) Decide(name string) (counted bool, reason string) {
	if _, ok := f.exclude[name]; ok {
		return false, ReasonExcluded
	}
	if len(f.include) > 0 {
		if _, ok := f.include[name]; !ok {
			return false, ReasonNotListed
		}
	}
	return true, ""
}

// Excluded returns the sorted exclusion list.
func (f Filter) Excluded() []string { return sortedKeys(f.exclude) }

// Included returns the sorted include list.
func (f Filter) Included() []string { return sortedKeys(f.include) }

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Package canon folds sequence contexts onto one strand so that a context and
// its reverse complement share a single key.
//
// Odd widths are anchored on a pyrimidine center base (C or T), the convention
// of SBS mutational-signature catalogs. Width 2 uses the ten reference
// dinucleotides of the DBS catalog: AC AT CC CG CT GC TA TC TG TT.
//
// Canonical keys are upper-case strings over ACGT. Every function here is pure.
package canon

import (
	"fmt"
	"sort"
)

// MaxWidth is the widest supported context.
const MaxWidth = 5

// Widths lists the supported context widths in ascending order.
var Widths = []int{2, 3, 5}

var names = map[int]string{
	2: "dinucleotide",
	3: "trinucleotide",
	5: "pentanucleotide",
}

// dbsReference holds the canonical member of every dinucleotide class.
var dbsReference = map[string]struct{}{
	"AC": {}, "AT": {}, "CC": {}, "CG": {}, "CT": {},
	"GC": {}, "TA": {}, "TC": {}, "TG": {}, "TT": {},
}

// Supported reports whether width is one of Widths.
func Supported(width int) bool {
	_, ok := names[width]
	return ok
}

// Name returns the human label for a width ("trinucleotide" for 3).
func Name(width int) string {
	if n, ok := names[width]; ok {
		return n
	}
	return fmt.Sprintf("%d-mer", width)
}

// IsCanonical reports whether an unambiguous, upper-case window is already
// in canonical orientation.
func IsCanonical(window []byte) bool {
	n := len(window)
	if n%2 == 1 {
		c := window[n/2]
		return c == 'C' || c == 'T'
	}
	if n == 2 {
		_, ok := dbsReference[string(window)]
		return ok
	}
	// other even widths: lexicographic minimum of the pair
	return string(window) <= string(ReverseComplement(window))
}

// Canonical returns the canonical key for window. ok is false when the window
// is empty or holds anything other than A, C, G, T (case-insensitive).
func Canonical(window []byte) (key string, ok bool) {
	if len(window) == 0 {
		return "", false
	}
	w := make([]byte, len(window))
	for i, b := range window {
		if !IsBase(b) {
			return "", false
		}
		w[i] = upper[b]
	}
	if IsCanonical(w) {
		return string(w), true
	}
	return string(ReverseComplement(w)), true
}

// Index maps packed 2-bit window codes of one width onto positions in the
// sorted canonical key space.
type Index struct {
	keys []string
	slot []int32
}

var indexes = map[int]*Index{}

func init() {
	for _, w := range Widths {
		indexes[w] = buildIndex(w)
	}
}

func buildIndex(width int) *Index {
	n := 1 << (2 * width)
	raw := make([]string, n)
	seen := make(map[string]struct{})
	var keys []string
	for c := 0; c < n; c++ {
		k, _ := Canonical(Decode(uint32(c), width))
		raw[c] = k
		if _, dup := seen[k]; !dup {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	pos := make(map[string]int32, len(keys))
	for i, k := range keys {
		pos[k] = int32(i)
	}
	slot := make([]int32, n)
	for c, k := range raw {
		slot[c] = pos[k]
	}
	return &Index{keys: keys, slot: slot}
}

// IndexFor returns the precomputed index of a supported width, or nil.
func IndexFor(width int) *Index { return indexes[width] }

// Len is the number of canonical keys.
func (ix *Index) Len() int { return len(ix.keys) }

// Keys returns the shared key slice; callers must not modify it.
func (ix *Index) Keys() []string { return ix.keys }

// Slot returns the key position for a packed window code. Bits above the
// window width are ignored.
func (ix *Index) Slot(code uint32) int32 {
	return ix.slot[code&(uint32(len(ix.slot))-1)]
}

// Encode packs an unambiguous window into its 2-bit code, first base in the
// highest bits.
func Encode(window []byte) (uint32, bool) {
	var c uint32
	for _, b := range window {
		v := code[b]
		if v < 0 {
			return 0, false
		}
		c = c<<2 | uint32(v)
	}
	return c, true
}

// Decode unpacks a 2-bit code into an upper-case window of the given width.
func Decode(c uint32, width int) []byte {
	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = "ACGT"[c&3]
		c >>= 2
	}
	return out
}

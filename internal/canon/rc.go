// internal/canon/rc.go
package canon

var (
	complement [256]byte
	upper      [256]byte
	code       [256]int8 // 2-bit base code, -1 for anything outside ACGT
)

func init() {
	pairs := []struct{ a, b byte }{
		{'A', 'T'}, {'C', 'G'},
		{'R', 'Y'}, {'S', 'S'}, {'W', 'W'},
		{'K', 'M'}, {'B', 'V'}, {'D', 'H'},
		{'N', 'N'},
	}
	for _, p := range pairs {
		complement[p.a], complement[p.b] = p.b, p.a
	}
	for i := range code {
		code[i] = -1
		upper[i] = byte(i)
	}
	for c := 'a'; c <= 'z'; c++ {
		upper[c] = byte(c - 'a' + 'A')
	}
	for i, b := range []byte("ACGT") {
		code[b] = int8(i)
		code[b+'a'-'A'] = int8(i)
	}
}

// Complement returns the Watson-Crick complement of b in upper case.
// IUPAC ambiguity codes map to their complementary code; anything else maps to 'N'.
func Complement(b byte) byte {
	if c := complement[upper[b]]; c != 0 {
		return c
	}
	return 'N'
}

// ReverseComplement returns a new upper-case slice holding the reverse
// complement of seq.
func ReverseComplement(seq []byte) []byte {
	n := len(seq)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = Complement(seq[n-1-i])
	}
	return out
}

// BaseCode returns the 2-bit code of b (A=0 C=1 G=2 T=3, any case) or -1 when
// b is not an unambiguous base.
func BaseCode(b byte) int8 { return code[b] }

// IsBase reports whether b is one of A, C, G, T in either case.
func IsBase(b byte) bool { return code[b] >= 0 }

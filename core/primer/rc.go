// core/primer/rc.go
package primer

var complement [256]byte

func init() {
	pairs := []struct{ a, b byte }{
		{'A', 'T'}, {'C', 'G'}, {'R', 'Y'}, {'S', 'S'},
		{'W', 'W'}, {'K', 'M'}, {'B', 'V'}, {'D', 'H'}, {'N', 'N'},
	}
	for _, p := range pairs {
		complement[p.a], complement[p.b] = p.b, p.a
		complement[p.a+('a'-'A')], complement[p.b+('a'-'A')] = p.b, p.a
	}
	complement['U'], complement['u'] = 'A', 'A'
}

// RevComp returns the upper-case reverse complement of an IUPAC sequence.
// Unknown bytes complement to N.
func RevComp(seq []byte) []byte {
	n := len(seq)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[seq[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return out
}

// RevCompString is RevComp for strings.
func RevCompString(s string) string { return string(RevComp([]byte(s))) }

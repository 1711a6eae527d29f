// core/primer/validate.go
package primer

import (
	"fmt"
	"strings"
	"unicode"
)

// Normalize removes whitespace/quotes and upper-cases symbols.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Validate returns a normalized sequence or an error if any symbol is non-IUPAC.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return s, fmt.Errorf("empty sequence")
	}
	for i := 0; i < len(s); i++ {
		if iupacMask[s[i]] == 0 {
			return "", fmt.Errorf("invalid base %q at %d; allowed: A C G T R Y S W K M B D H V N", s[i], i+1)
		}
	}
	return s, nil
}

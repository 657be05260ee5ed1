package football

import "strings"

// NormalizeName lowercases, maps '&' to "a", keeps alphanumerics, and
// collapses any run of other characters to a single trailing-stripped
// underscore. Idempotent: NormalizeName(NormalizeName(x)) == NormalizeName(x).
func NormalizeName(s string) string {
	var b strings.Builder
	pendingUnderscore := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingUnderscore && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingUnderscore = false
			b.WriteRune(r)
		case r == '&':
			if pendingUnderscore && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingUnderscore = false
			b.WriteByte('a')
		default:
			pendingUnderscore = true
		}
	}
	return b.String()
}

package helpers

import "strings"

// SanitizeFilename replaces every character outside [A-Za-z0-9] with an
// underscore, so names and admission numbers can be used in file names.
func SanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, s)
}

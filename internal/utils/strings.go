package utils

import "strings"

// NormalizeSpace collapses repeated whitespace into a single space and trims
// the ends. Extracted location names routinely arrive with doubled spaces.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

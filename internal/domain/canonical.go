package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CanonicalName normalizes a customer name for storage and display:
// surrounding whitespace is trimmed, interior runs of whitespace collapse
// to a single space, and the result is Unicode NFC normalized so the same
// name typed with combining characters compares equal.
func CanonicalName(s string) string {
	fields := strings.Fields(s)
	return norm.NFC.String(strings.Join(fields, " "))
}

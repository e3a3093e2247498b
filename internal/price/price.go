// Package price implements the fixed-format price codec used across the
// menu, cart and receipts: an integer amount followed by the escudo
// minor-unit marker, e.g. "800$00".
package price

import (
	"regexp"
	"strconv"
)

// Marker is the minor-unit suffix every price string carries.
const Marker = "$00"

var amountRe = regexp.MustCompile(`(\d+)\$00`)

// Parse extracts the amount from a price string. Malformed input yields 0
// rather than an error: legacy data must never crash a till.
func Parse(s string) int64 {
	m := amountRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Format renders an amount in the canonical form. Parse(Format(n)) == n for
// all n >= 0.
func Format(n int64) string {
	return strconv.FormatInt(n, 10) + Marker
}

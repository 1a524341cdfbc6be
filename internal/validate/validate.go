// Package validate holds the boundary field validators applied before
// records reach the stores.
package validate

import (
	"regexp"
	"strconv"

	"github.com/smallbiznis/facturador/internal/period"
)

// NIT format: digits, hyphen, one alphanumeric check character.
var nitPattern = regexp.MustCompile(`^\d+-[A-Z0-9]$`)

// Date reports whether s is a well-formed DD/MM/YYYY or DD/MM/YYYY HH:MM
// date with in-range components.
func Date(s string) bool {
	_, ok := period.Parse(s)
	return ok
}

// NIT reports whether s is a well-formed tax identifier.
func NIT(s string) bool {
	return nitPattern.MatchString(s)
}

// PositiveNumber reports whether s represents a number greater than zero.
func PositiveNumber(s string) bool {
	n, err := strconv.ParseFloat(s, 64)
	return err == nil && n > 0
}

// Package numstr classifies the numeric and range arguments accepted by the
// pipeline tools (addresses, selection ranges).
package numstr

import "regexp"

var (
	decimalRe      = regexp.MustCompile(`^[0-9]+$`)
	hexRe          = regexp.MustCompile(`^0x[0-9a-fA-F]+$`)
	decimalRangeRe = regexp.MustCompile(`^[0-9]+-[0-9]+$`)
	hexRangeRe     = regexp.MustCompile(`^0x[0-9a-fA-F]+-0x[0-9a-fA-F]+$`)
)

// IsDecimal reports whether s is an unsigned decimal number.
func IsDecimal(s string) bool {
	return decimalRe.MatchString(s)
}

// IsHexadecimal reports whether s is a 0x-prefixed hexadecimal number.
func IsHexadecimal(s string) bool {
	return hexRe.MatchString(s)
}

// IsNumber reports whether s is a decimal or hexadecimal number.
func IsNumber(s string) bool {
	return IsDecimal(s) || IsHexadecimal(s)
}

// IsDecimalRange reports whether s is a decimal range of the form N-M.
func IsDecimalRange(s string) bool {
	return decimalRangeRe.MatchString(s)
}

// IsHexadecimalRange reports whether s is a hexadecimal range of the form
// 0xN-0xM.
func IsHexadecimalRange(s string) bool {
	return hexRangeRe.MatchString(s)
}

// IsRange reports whether s is a decimal or hexadecimal range.
func IsRange(s string) bool {
	return IsDecimalRange(s) || IsHexadecimalRange(s)
}

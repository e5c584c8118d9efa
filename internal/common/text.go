package common

import (
	"strconv"
	"strings"
	"unicode"
)

// Space matches one whitespace rune, including NBSP, the ideographic space
// and the other Unicode separators that scraped text carries.
const Space = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

// Digit matches one decimal digit in any script.
const Digit = `\p{Nd}`

// Atoi parses a run of Unicode decimal digits, e.g. "２０２３" or "٢٠٢٣".
func Atoi(s string) (int, error) {
	var b strings.Builder
	for _, r := range s {
		d, ok := digitValue(r)
		if !ok {
			return 0, &strconv.NumError{Func: "Atoi", Num: s, Err: strconv.ErrSyntax}
		}
		b.WriteByte(byte('0' + d))
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, &strconv.NumError{Func: "Atoi", Num: s, Err: err.(*strconv.NumError).Err}
	}
	return n, nil
}

// Nd digits are laid out in contiguous zero-to-nine runs, so the offset from
// the start of the run gives the value.
func digitValue(r rune) (int, bool) {
	if r >= '0' && r <= '9' {
		return int(r - '0'), true
	}
	if !unicode.IsDigit(r) {
		return 0, false
	}
	n := 0
	for unicode.IsDigit(r - rune(n) - 1) {
		n++
	}
	return n % 10, true
}

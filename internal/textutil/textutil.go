package textutil

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Clean turns ideographic spaces into ASCII spaces, drops no-break spaces
// and trims the result.
func Clean(s string) string {
	s = strings.ReplaceAll(s, "\u3000", " ")
	s = strings.ReplaceAll(s, "\u00a0", "")
	return strings.TrimSpace(s)
}

// StripLabel removes a leading "label:" caption in any of the forms the
// portals use ("貸出館： x", "予約日:x", "予約数 x").
func StripLabel(s, label string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, label) {
		return s
	}
	s = strings.TrimPrefix(s, label)
	return strings.TrimLeft(s, ":： \u3000\t")
}

// LeadingInt parses the run of digits at the start of s, after folding
// full-width digits. "3件" and "１２" both parse.
func LeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(width.Narrow.String(s))
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsNumeric reports whether s is non-empty and all digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Lines splits a cell on newlines. An empty cell yields one empty line.
func Lines(s string) []string {
	return strings.Split(s, "\n")
}

// Package orderid recognizes order identifiers in free text: a standalone
// run of 7 to 10 digits.
package orderid

import (
	"regexp"
	"strings"
)

var pattern = regexp.MustCompile(`\b\d{7,10}\b`)

// Find returns the first order id in text.
func Find(text string) (string, bool) {
	id := pattern.FindString(text)
	return id, id != ""
}

func FindAll(text string) []string {
	return pattern.FindAllString(text, -1)
}

// Valid reports whether s is exactly one order id.
func Valid(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && pattern.FindString(s) == s
}

// Verbatim reports whether id is one of the order ids written in text.
func Verbatim(id string, text string) bool {
	if !Valid(id) {
		return false
	}
	for _, candidate := range FindAll(text) {
		if candidate == id {
			return true
		}
	}
	return false
}

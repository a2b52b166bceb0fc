// Package textutil holds small text-layout helpers for usage rendering.
package textutil

import "strings"

// Wrap breaks text into lines no wider than width, splitting on whitespace.
// A single word longer than width gets its own line rather than being cut.
func Wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteRune(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// PadRight extends s with spaces to the given width. Strings already at or
// past the width are returned unchanged.
func PadRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

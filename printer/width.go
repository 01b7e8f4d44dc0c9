package printer

import "github.com/rivo/uniseg"

// stringWidth returns the rendered display width of a single-line piece
// of text, accounting for multi-rune grapheme clusters and wide runes.
//
// Grounded on experimental/dom/layout.go's stringWidth, simplified since
// formatting-token text never itself contains tab characters (those are
// trivia, translated away before reaching the printer).
func stringWidth(text string) int {
	return uniseg.StringWidth(text)
}

package quiz

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

const lineWidth = 80

// wrap breaks text on whitespace so no line exceeds width runes.
// Words longer than width are split.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	var lines []string
	for _, line := range strings.Split(wordwrap.WrapString(text, uint(width)), "\n") {
		runes := []rune(line)
		for len(runes) > width {
			lines = append(lines, string(runes[:width]))
			runes = runes[width:]
		}
		lines = append(lines, string(runes))
	}
	return strings.Join(lines, "\n")
}

// wrapIndented wraps text after prefix, aligning continuation lines under the first.
func wrapIndented(prefix, text string, width int) string {
	indent := strings.Repeat(" ", len([]rune(prefix)))
	lines := strings.Split(wrap(text, width-len(indent)), "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
			continue
		}
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}

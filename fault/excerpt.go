package fault

import (
	"strings"
)

// Excerpt renders err followed by the source line it points at and a caret
// under the offending column. Errors without a position render as err alone.
func Excerpt(src string, err error) string {
	if err == nil {
		return ""
	}

	f, ok := As(err)
	if !ok || !f.pos.IsValid() {
		return err.Error()
	}

	lines := strings.Split(src, "\n")
	if f.pos.Line > len(lines) {
		return err.Error()
	}

	line := []rune(strings.TrimSuffix(lines[f.pos.Line-1], "\r"))
	col := max(0, min(f.pos.Column-1, len(line)))

	var b strings.Builder
	b.WriteString(err.Error())
	b.WriteString("\n  ")
	b.WriteString(string(line))
	b.WriteString("\n  ")
	for _, r := range line[:col] {
		// keep tabs so the caret lines up with the source
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
	}
	b.WriteRune('^')

	return b.String()
}

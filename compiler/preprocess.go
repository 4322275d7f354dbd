package compiler

import (
	"strings"
)

const (
	COMMENT_PREFIX    = "#" // Starts a comment running to the end of line.
	SUBROUTINE_PREFIX = ";" // ";name" is shorthand for "SBR name".
)

// Clean strips comments and surrounding whitespace from a source line, and
// rewrites the subroutine shorthand. A quoted '#' does not start a comment.
func Clean(text string) (line string) {
	line = text
	for at := 0; ; {
		n := strings.Index(line[at:], COMMENT_PREFIX)
		if n < 0 {
			break
		}
		n += at
		if n > 0 && n+1 < len(line) && line[n-1] == '\'' && line[n+1] == '\'' {
			at = n + 1
			continue
		}
		line = line[:n]
		break
	}
	line = strings.Join(strings.Fields(line), " ")

	name, ok := strings.CutPrefix(line, SUBROUTINE_PREFIX)
	if ok {
		line = "SBR " + strings.TrimSpace(name)
	}

	return
}

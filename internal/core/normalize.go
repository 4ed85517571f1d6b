package core

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a display name or filename stem into a matching
// key: lowercase, leading/trailing whitespace trimmed, internal runs of
// whitespace collapsed to a single space.
//
// The same rule is applied to recipient name-column values and to uploaded
// filename stems, so "Jane Doe", "  jane   doe " and "JANE DOE" all produce
// the key "jane doe". Total over all strings, including the empty string.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSpace := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace {
			b.WriteByte(' ')
			inSpace = false
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// BaseName strips the final extension segment from a filename.
// A "." only demarcates an extension when it is not the first character,
// so "report.v2.pdf" -> "report.v2", "README" -> "README" and
// ".gitignore" -> ".gitignore".
func BaseName(name string) string {
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return name
	}
	return name[:dot]
}

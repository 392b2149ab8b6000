// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hatena

import (
	"regexp"
	"strings"
)

var (
	// blankAfterRe matches a heading, "||<" or "<<" line together with its
	// line break and every blank line that follows it.
	blankAfterRe = regexp.MustCompile(`(?m)^(\*{1,3}[^\n]*|\|\|<|<<)$\n?(?:[ \t]*\n)*`)

	linkRe = regexp.MustCompile(
		`\[\[((?:https?|ftp)://[-_.!~*'()a-zA-Z0-9;/?:@&=+$,%#]+)\](?:\[([^\[\]]+)\])?\]`)
)

// PostProcess applies CollapseBlankLines and then RewriteLinks.
func PostProcess(text string) string {
	return RewriteLinks(CollapseBlankLines(text))
}

// CollapseBlankLines removes blank lines directly after headings and after
// the "||<" and "<<" closing markers, leaving each such line terminated by
// exactly one newline.
func CollapseBlankLines(text string) string {
	return blankAfterRe.ReplaceAllString(text, "$1\n")
}

// RewriteLinks turns [[URL]] into [URL:title] and [[URL][text]] into
// [URL:title=text].
func RewriteLinks(text string) string {
	return linkRe.ReplaceAllStringFunc(text, func(match string) string {
		m := linkRe.FindStringSubmatch(match)
		var b strings.Builder
		b.WriteString("[")
		b.WriteString(m[1])
		b.WriteString(":title")
		if m[2] != "" {
			b.WriteString("=")
			b.WriteString(m[2])
		}
		b.WriteString("]")
		return b.String()
	})
}

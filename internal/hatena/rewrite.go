// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hatena

import (
	"errors"
	"fmt"
	"strings"
)

// ErrListInvariant is returned when a line classified as a list item matches
// neither the ordered nor the unordered marker. It indicates a defect in the
// classifier, not bad input.
var ErrListInvariant = errors.New("list line matches no list marker")

// DefaultLanguageAliases renames org source languages to the names the Hatena
// highlighter expects.
var DefaultLanguageAliases = map[string]string{
	"emacs-lisp": "lisp",
}

const (
	preOpen   = ">||"
	preClose  = "||<"
	quoteOpen = ">>"
	quoteEnd  = "<<"
)

// rewriteCategoryCaption turns "* title :a:b:" into "*[a][b] title".
// Titles and tags containing spaces are not supported.
func rewriteCategoryCaption(block []string) ([]string, error) {
	m := captionRe.FindStringSubmatch(block[0])
	if m == nil {
		return block, nil
	}
	tags := strings.Split(strings.Trim(m[2], ":"), ":")
	return []string{"*[" + strings.Join(tags, "][") + "] " + m[1]}, nil
}

// rewriteList emits one Hatena list line per item. Depth comes from an
// indentation stack, so a child is any item indented further than the item
// above it.
func rewriteList(block []string) ([]string, error) {
	var indents []int
	out := make([]string, 0, len(block))
	for _, line := range block {
		indent := indentWidth(line)
		for len(indents) > 0 && indents[len(indents)-1] >= indent {
			indents = indents[:len(indents)-1]
		}
		indents = append(indents, indent)

		var mark string
		switch {
		case unorderedRe.MatchString(line):
			mark = "-"
		case orderedRe.MatchString(line):
			mark = "+"
		default:
			return nil, fmt.Errorf("%w: %q", ErrListInvariant, line)
		}
		out = append(out, strings.Repeat(mark, len(indents))+listMarkerRe.ReplaceAllString(line, ""))
	}
	return out, nil
}

// rewriteDefinitionList turns "- term :: definition" into ":term:definition".
func rewriteDefinitionList(block []string) ([]string, error) {
	out := make([]string, 0, len(block))
	for _, line := range block {
		m := defListPartRe.FindStringSubmatch(line)
		if m == nil {
			out = append(out, line)
			continue
		}
		out = append(out, ":"+strings.TrimSpace(m[1])+":"+strings.TrimSpace(m[2]))
	}
	return out, nil
}

// rewriteTable drops separator rows and marks the first remaining row as the
// header.
func rewriteTable(block []string) ([]string, error) {
	out := make([]string, 0, len(block))
	for _, line := range block {
		if !tableRuleRe.MatchString(line) {
			out = append(out, line)
		}
	}
	if len(out) > 0 {
		header := strings.ReplaceAll(out[0], "|", "|*")
		out[0] = lastCellRe.ReplaceAllString(header, "|")
	}
	return out, nil
}

func rewriteQuote(block []string) ([]string, error) {
	body := stripMarkers(block, endQuoteRe)
	out := make([]string, 0, len(body)+2)
	out = append(out, quoteOpen)
	out = append(out, body...)
	return append(out, quoteEnd), nil
}

func rewriteLineExample(block []string) ([]string, error) {
	out := make([]string, 0, len(block)+2)
	out = append(out, preOpen)
	for _, line := range block {
		if m := lineExampleRe.FindStringSubmatch(line); m != nil {
			line = m[1]
		}
		out = append(out, line)
	}
	return append(out, preClose), nil
}

func rewriteExample(block []string) ([]string, error) {
	return wrapPre(preOpen, RemoveCommonIndent(stripMarkers(block, endExampleRe))), nil
}

// rewriteSourceBlock emits a super-pre block tagged with the source language.
func (c *Converter) rewriteSourceBlock(block []string) ([]string, error) {
	lang := ""
	if m := srcLangRe.FindStringSubmatch(block[0]); m != nil {
		lang = m[1]
	}
	if alias, ok := c.aliases[lang]; ok {
		lang = alias
	}
	return wrapPre(">|"+lang+"|", RemoveCommonIndent(stripMarkers(block, endSrcRe))), nil
}

func rewriteReadMore(block []string) ([]string, error) {
	if superMoreRe.MatchString(block[0]) {
		return []string{"====="}, nil
	}
	return []string{"===="}, nil
}

func dropBlock([]string) ([]string, error) { return nil, nil }

func keepBlock(block []string) ([]string, error) { return block, nil }

// stripMarkers removes the begin line and, when present, the closing line
// matching end. Unterminated regions keep all their body lines.
func stripMarkers(block []string, end matcher) []string {
	body := block[1:]
	if n := len(body); n > 0 && end.MatchString(body[n-1]) {
		body = body[:n-1]
	}
	return body
}

type matcher interface {
	MatchString(s string) bool
}

func wrapPre(open string, body []string) []string {
	out := make([]string, 0, len(body)+2)
	out = append(out, open)
	out = append(out, body...)
	return append(out, preClose)
}

// RemoveCommonIndent strips the smallest leading-whitespace width shared by
// the non-blank lines, preserving relative indentation. Blank lines become
// empty.
func RemoveCommonIndent(lines []string) []string {
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if w := indentWidth(line); minIndent < 0 || w < minIndent {
			minIndent = w
		}
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out[i] = line[minIndent:]
	}
	return out
}

// indentWidth counts leading whitespace bytes.
func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t\v\f\r"))
}

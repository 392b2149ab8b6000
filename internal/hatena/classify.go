// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hatena

import (
	"regexp"
)

// Kind identifies the construct a run of source lines belongs to.
type Kind int

const (
	KindPlainText Kind = iota
	KindCategoryCaption
	KindDefinitionList
	KindList
	KindTable
	KindQuote
	KindLineExample
	KindExample
	KindSourceBlock
	KindReadMore
	KindComment
)

var kindNames = map[Kind]string{
	KindPlainText:       "plain-text",
	KindCategoryCaption: "category-caption",
	KindDefinitionList:  "definition-list",
	KindList:            "list",
	KindTable:           "table",
	KindQuote:           "quote",
	KindLineExample:     "line-example",
	KindExample:         "example",
	KindSourceBlock:     "source-block",
	KindReadMore:        "read-more",
	KindComment:         "comment",
}

// String returns the stable name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Source patterns. Compiled once; never mutated.
var (
	captionRe     = regexp.MustCompile(`^\*\s+(\S+)\s+(:(?:[^:]+:)+)`)
	defListRe     = regexp.MustCompile(`^\s*-.+::.+`)
	defListPartRe = regexp.MustCompile(`^\s*-(.+)::(.+)`)
	listRe        = regexp.MustCompile(`^\s*(?:-|\+|\d+(?:\.|\)))`)
	listMarkerRe  = regexp.MustCompile(`^\s*(?:-|\+|\d+(?:\.|\)))\s*`)
	unorderedRe   = regexp.MustCompile(`^\s*(?:-|\+)`)
	orderedRe     = regexp.MustCompile(`^\s*\d+(?:\.|\))`)
	tableRe       = regexp.MustCompile(`^\s*\|(?:[^|]*\|)+\s*$`)
	tableRuleRe   = regexp.MustCompile(`^\s*\|-`)
	lastCellRe    = regexp.MustCompile(`\|\*[^|]*$`)
	lineExampleRe = regexp.MustCompile(`^\s*:\s(.+)$`)
	commentRe     = regexp.MustCompile(`^#|^\s*#\+`)
	readMoreRe    = regexp.MustCompile(`^#====[^=]?\s*$`)
	superMoreRe   = regexp.MustCompile(`^#=====`)

	beginQuoteRe   = beginMarker("quote")
	endQuoteRe     = endMarker("quote")
	beginExampleRe = beginMarker("example")
	endExampleRe   = endMarker("example")
	beginSrcRe     = beginMarker("src")
	endSrcRe       = endMarker("src")
	srcLangRe      = regexp.MustCompile(`(?i)^\s*#\+BEGIN_SRC\s+(\S+)`)
)

// beginMarker matches a case-insensitive "#+BEGIN_<name>" line.
func beginMarker(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^\s*#\+BEGIN_` + regexp.QuoteMeta(name))
}

// endMarker matches a case-insensitive "#+END_<name>" line.
func endMarker(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^\s*#\+END_` + regexp.QuoteMeta(name))
}

// extractFunc detaches one block from the front of d. It must consume at
// least one line.
type extractFunc func(d *Document) []string

// rewriteFunc turns an extracted block into Hatena lines.
type rewriteFunc func(block []string) ([]string, error)

// rule is one row of the dispatch table: the first rule whose match accepts
// the front line decides how the block is extracted and rewritten.
type rule struct {
	kind    Kind
	match   func(line string) bool
	extract extractFunc
	rewrite rewriteFunc
}

// buildRules returns the dispatch table in priority order.
func (c *Converter) buildRules() []rule {
	rules := []rule{
		{KindCategoryCaption, captionRe.MatchString, takeLine, rewriteCategoryCaption},
		{KindDefinitionList, defListRe.MatchString, takeWhile(defListRe), rewriteDefinitionList},
		{KindList, listRe.MatchString, takeWhile(listRe), rewriteList},
		{KindTable, tableRe.MatchString, takeWhile(tableRe), rewriteTable},
		{KindQuote, beginQuoteRe.MatchString, takeRegion(endQuoteRe), rewriteQuote},
		{KindLineExample, lineExampleRe.MatchString, takeWhile(lineExampleRe), rewriteLineExample},
		{KindExample, beginExampleRe.MatchString, takeRegion(endExampleRe), rewriteExample},
		{KindSourceBlock, beginSrcRe.MatchString, takeRegion(endSrcRe), c.rewriteSourceBlock},
	}
	if c.readMore {
		rules = append(rules, rule{KindReadMore, isReadMore, takeLine, rewriteReadMore})
	}
	return append(rules,
		rule{KindComment, commentRe.MatchString, takeLine, dropBlock},
		rule{KindPlainText, func(string) bool { return true }, takeLine, keepBlock},
	)
}

// Classify returns the kind the converter would choose for line if it were
// at the front of the document.
func (c *Converter) Classify(line string) Kind {
	return c.match(line).kind
}

func (c *Converter) match(line string) rule {
	for _, r := range c.rules {
		if r.match(line) {
			return r
		}
	}
	// The plain-text rule accepts everything.
	return c.rules[len(c.rules)-1]
}

// takeLine consumes exactly one line.
func takeLine(d *Document) []string {
	return []string{d.Next()}
}

// takeWhile consumes lines for as long as they match re.
func takeWhile(re *regexp.Regexp) extractFunc {
	return func(d *Document) []string {
		block := []string{d.Next()}
		for !d.Empty() && re.MatchString(d.Peek()) {
			block = append(block, d.Next())
		}
		return block
	}
}

// takeRegion consumes the begin line and everything up to and including the
// first line matching end. An unterminated region runs to the end of d.
func takeRegion(end *regexp.Regexp) extractFunc {
	return func(d *Document) []string {
		block := []string{d.Next()}
		for !d.Empty() {
			line := d.Next()
			block = append(block, line)
			if end.MatchString(line) {
				break
			}
		}
		return block
	}
}

func isReadMore(line string) bool {
	return readMoreRe.MatchString(line) || superMoreRe.MatchString(line)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hatena

// Document is an ordered sequence of source lines consumed from the front.
// The underlying slice is never modified; consumption only advances a cursor.
type Document struct {
	lines []string
	pos   int
}

// NewDocument wraps lines in a Document positioned at the first line.
func NewDocument(lines []string) *Document {
	return &Document{lines: lines}
}

// Empty reports whether every line has been consumed.
func (d *Document) Empty() bool {
	return d.pos >= len(d.lines)
}

// Peek returns the line at the front without consuming it.
// It returns "" when the document is empty.
func (d *Document) Peek() string {
	if d.Empty() {
		return ""
	}
	return d.lines[d.pos]
}

// Next consumes and returns the line at the front.
func (d *Document) Next() string {
	line := d.Peek()
	if !d.Empty() {
		d.pos++
	}
	return line
}

// Len returns the number of lines not yet consumed.
func (d *Document) Len() int {
	return len(d.lines) - d.pos
}

// Consumed returns the number of lines already consumed.
func (d *Document) Consumed() int {
	return d.pos
}

// Remaining returns a copy of the lines not yet consumed.
func (d *Document) Remaining() []string {
	out := make([]string, d.Len())
	copy(out, d.lines[d.pos:])
	return out
}

// Package printer lays out fixed-width receipts and renders them for screen, image and PDF.
package printer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// DefaultWidth is the character width of an 80mm receipt roll.
const DefaultWidth = 40

// Line is one printed row of a Document.
type Line struct {
	Text  string
	Align int
	Bold  bool
}

// Document is a monospace receipt layout built line by line.
type Document struct {
	lines []Line
	width int // print width in characters
	align int
	bold  bool
}

// NewDocument creates an empty document with the given character width.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = DefaultWidth
	}
	return &Document{width: charWidth}
}

// Width returns the print width in characters.
func (d *Document) Width() int {
	return d.width
}

// Lines returns the laid out rows.
func (d *Document) Lines() []Line {
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// SetAlign sets alignment for the following lines: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.align = align
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	d.bold = on
	return d
}

// LineFeed adds an empty line.
func (d *Document) LineFeed() *Document {
	return d.FeedLines(1)
}

// FeedLines adds n empty lines.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.lines = append(d.lines, Line{Align: d.align})
	}
	return d
}

// Text writes a line of text, cut to the document width.
func (d *Document) Text(s string) *Document {
	d.lines = append(d.lines, Line{Text: truncate(s, d.width), Align: d.align, Bold: d.bold})
	return d
}

// TextF writes a formatted line of text.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator prints a full-width separator line (e.g. "----------------------------------------").
func (d *Document) Separator(char rune) *Document {
	d.lines = append(d.lines, Line{Text: strings.Repeat(string(char), d.width), Align: AlignLeft, Bold: d.bold})
	return d
}

// KeyValue prints a left-aligned key and right-aligned value on the same line.
// Example: "TOTAL:                          ¥1,300"
func (d *Document) KeyValue(key, value string) *Document {
	d.lines = append(d.lines, Line{Text: spread(key, value, d.width), Align: AlignLeft, Bold: d.bold})
	return d
}

// ItemLine prints a receipt item line: qty x name, then right-aligned total.
// Example: "2x Tonkotsu Ramen                ¥1,600"
func (d *Document) ItemLine(qty int, name, total string) *Document {
	return d.KeyValue(fmt.Sprintf("%dx %s", qty, name), total)
}

// String renders the document as plain text, padding aligned lines to the width.
func (d *Document) String() string {
	var b strings.Builder
	for _, l := range d.lines {
		b.WriteString(d.pad(l))
		b.WriteByte('\n')
	}
	return b.String()
}

// Bytes returns the plain text rendering.
func (d *Document) Bytes() []byte {
	return []byte(d.String())
}

// Offset returns the number of leading blank columns of l once aligned.
func (d *Document) Offset(l Line) int {
	free := d.width - utf8.RuneCountInString(l.Text)
	if free <= 0 {
		return 0
	}
	switch l.Align {
	case AlignCenter:
		return free / 2
	case AlignRight:
		return free
	default:
		return 0
	}
}

func (d *Document) pad(l Line) string {
	return strings.TrimRight(strings.Repeat(" ", d.Offset(l))+l.Text, " ")
}

// spread places key and value at opposite ends of a width-wide line.
// The key is cut when both do not fit.
func spread(key, value string, width int) string {
	vw := utf8.RuneCountInString(value)
	room := width - vw - 1
	if room < 1 {
		return truncate(value, width)
	}
	key = truncate(key, room)
	spaces := width - utf8.RuneCountInString(key) - vw
	return key + strings.Repeat(" ", spaces) + value
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 2 {
		return string([]rune(s)[:width])
	}
	return string([]rune(s)[:width-2]) + ".."
}

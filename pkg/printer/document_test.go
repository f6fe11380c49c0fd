package printer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	doc := NewDocument(DefaultWidth)
	doc.SetAlign(AlignCenter).
		SetBold(true).
		Text("InJapan Food").
		SetBold(false).
		Text("Shibuya, Tokyo").
		SetAlign(AlignLeft).
		Separator('-').
		KeyValue("Receipt No:", "A1B2C3").
		ItemLine(2, "Tonkotsu Ramen", Yen(1600)).
		Separator('-').
		SetBold(true).
		KeyValue("TOTAL:", Yen(1600)).
		SetBold(false).
		LineFeed()
	return doc
}

func TestYen(t *testing.T) {
	assert.Equal(t, "¥0", Yen(0))
	assert.Equal(t, "¥500", Yen(500))
	assert.Equal(t, "¥1,234,567", Yen(1234567))
	assert.Equal(t, "-¥1,200", Yen(-1200))
}

func TestDocument_String(t *testing.T) {
	doc := sampleDocument()
	lines := strings.Split(strings.TrimSuffix(doc.String(), "\n"), "\n")

	require.Len(t, lines, 8)
	assert.Equal(t, strings.Repeat(" ", 14)+"InJapan Food", lines[0])
	assert.Equal(t, strings.Repeat("-", 40), lines[2])
	assert.True(t, strings.HasPrefix(lines[4], "2x Tonkotsu Ramen"))
	assert.True(t, strings.HasSuffix(lines[4], "¥1,600"))
	assert.Equal(t, 40, utf8.RuneCountInString(lines[4]))
	assert.Equal(t, "", lines[7])
}

func TestDocument_BoldIsTracked(t *testing.T) {
	lines := sampleDocument().Lines()
	assert.True(t, lines[0].Bold)
	assert.False(t, lines[1].Bold)
	assert.True(t, lines[6].Bold)
}

func TestDocument_LongNamesAreCut(t *testing.T) {
	doc := NewDocument(20)
	doc.ItemLine(1, "Extra Large Seafood Tempura Bowl", Yen(2480))

	line := doc.Lines()[0].Text
	assert.Equal(t, 20, utf8.RuneCountInString(line))
	assert.True(t, strings.HasSuffix(line, "¥2,480"))
	assert.Contains(t, line, "..")
}

func TestDocument_Offset(t *testing.T) {
	doc := NewDocument(10)
	assert.Equal(t, 3, doc.Offset(Line{Text: "abcd", Align: AlignCenter}))
	assert.Equal(t, 6, doc.Offset(Line{Text: "abcd", Align: AlignRight}))
	assert.Equal(t, 0, doc.Offset(Line{Text: "abcd", Align: AlignLeft}))
	assert.Equal(t, 0, doc.Offset(Line{Text: strings.Repeat("x", 12), Align: AlignCenter}))
}

func TestNewDocument_DefaultWidth(t *testing.T) {
	assert.Equal(t, DefaultWidth, NewDocument(0).Width())
}

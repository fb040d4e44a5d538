package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textOf склеивает текст всех не-break сегментов
func textOf(segments []Segment) string {
	out := ""
	for _, seg := range segments {
		if !seg.IsBreak {
			out += seg.Text
		}
	}
	return out
}

func TestParse_StyledParagraph(t *testing.T) {
	segments := Parse("<p>Normal <strong>Bold</strong> <em>Italic</em></p>")

	assert.Equal(t, "Normal Bold Italic", textOf(segments))

	var bold, italic *Segment
	for i := range segments {
		switch segments[i].Text {
		case "Bold":
			bold = &segments[i]
		case "Italic":
			italic = &segments[i]
		}
	}
	require.NotNil(t, bold)
	require.NotNil(t, italic)

	assert.True(t, bold.Bold)
	assert.False(t, bold.Italic)
	assert.True(t, italic.Italic)
	assert.False(t, italic.Bold)
}

func TestParse_MarkCodeStrike(t *testing.T) {
	segments := Parse("<mark>hi</mark><code>x := 1</code><s>old</s>")
	require.Len(t, segments, 3)

	assert.True(t, segments[0].Highlight)
	assert.Equal(t, "hi", segments[0].Text)
	assert.True(t, segments[1].Code)
	assert.Equal(t, "x := 1", segments[1].Text)
	assert.True(t, segments[2].Strikethrough)
	assert.Equal(t, "old", segments[2].Text)
}

func TestParse_List(t *testing.T) {
	segments := Parse("<ul><li>One</li><li>Two</li></ul>")

	full := ""
	for _, seg := range segments {
		full += seg.Text
	}
	assert.Equal(t, "• One\n• Two\n\n", full)
}

func TestParse_UnknownTagSkipped(t *testing.T) {
	segments := Parse(`before <span class="x">inside</span> after`)

	assert.Equal(t, "before inside after", textOf(segments))
	for _, seg := range segments {
		assert.False(t, seg.Bold)
		assert.False(t, seg.Italic)
	}
}

func TestParse_UnterminatedTagTruncates(t *testing.T) {
	segments := Parse("kept text <strong unfinished")

	require.Len(t, segments, 1)
	assert.Equal(t, "kept text ", segments[0].Text)
}

func TestParse_UnmatchedClosingTag(t *testing.T) {
	// Непарный закрывающий тег просто гасит флаг, разбор продолжается
	segments := Parse("plain </strong> still plain")

	assert.Equal(t, "plain  still plain", textOf(segments))
	for _, seg := range segments {
		assert.False(t, seg.Bold)
	}
}

func TestParse_NestedStyles(t *testing.T) {
	segments := Parse("<strong><em>both</em></strong>")

	require.Len(t, segments, 1)
	assert.True(t, segments[0].Bold)
	assert.True(t, segments[0].Italic)
}

func TestParse_Entities(t *testing.T) {
	segments := Parse("a &amp; b &lt;tag&gt; &quot;q&quot; &nbsp;&#39;")

	assert.Equal(t, `a & b <tag> "q"  '`, textOf(segments))
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
}

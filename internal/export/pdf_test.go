package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-backend/internal/model"
)

// fakeCanvas записывает вызовы примитивов рисования
type fakeCanvas struct {
	pages     int
	texts     []string
	fillRects int
	lines     int
	textColor [3]int
	fillColor [3]int
}

func (c *fakeCanvas) AddPage()                        { c.pages++ }
func (c *fakeCanvas) SetFont(style string, _ float64) {}

// TextWidth фиксированная метрика: 6pt на символ
func (c *fakeCanvas) TextWidth(text string) float64 { return float64(len(text)) * 6 }

func (c *fakeCanvas) Text(_, _ float64, text string)  { c.texts = append(c.texts, text) }
func (c *fakeCanvas) FillRect(_, _, _, _ float64)     { c.fillRects++ }
func (c *fakeCanvas) Line(_, _, _, _ float64)         { c.lines++ }
func (c *fakeCanvas) SetTextColor(r, g, b int)        { c.textColor = [3]int{r, g, b} }
func (c *fakeCanvas) SetFillColor(r, g, b int)        { c.fillColor = [3]int{r, g, b} }
func (c *fakeCanvas) Bytes() ([]byte, error)          { return []byte("%PDF-fake"), nil }

func newFakeExporter() (*PDFExporter, *fakeCanvas) {
	canvas := &fakeCanvas{}
	exporter := NewPDFExporter(DefaultGeometry(), func() Canvas { return canvas })
	return exporter, canvas
}

func allText(c *fakeCanvas) string {
	return strings.Join(c.texts, "\n")
}

func TestNotePDF_SinglePage(t *testing.T) {
	exporter, canvas := newFakeExporter()

	note := model.Note{
		Title:     "Short note",
		Content:   "<p>one paragraph</p>",
		Tags:      []string{"quick"},
		CreatedAt: time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC),
	}

	out, err := exporter.NotePDF(note)
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	assert.Equal(t, 1, canvas.pages)
	assert.Contains(t, allText(canvas), "Short note")
	assert.Contains(t, allText(canvas), "Created: 2024-04-01 08:00")
	assert.Contains(t, allText(canvas), "one paragraph")
	assert.Contains(t, allText(canvas), "Tags: #quick")
}

func TestNotePDF_LongBodyPaginates(t *testing.T) {
	exporter, canvas := newFakeExporter()

	// Каждый <p> это текстовая строка плюс две пустых; на странице A4
	// с межстрочным 18pt помещается около 41 строки
	var sb strings.Builder
	for i := 0; i < 60; i++ {
		sb.WriteString("<p>line</p>")
	}

	_, err := exporter.NotePDF(model.Note{Title: "Long", Content: sb.String()})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, canvas.pages, 2)
}

func TestNotePDF_HighlightDrawsRect(t *testing.T) {
	exporter, canvas := newFakeExporter()

	_, err := exporter.NotePDF(model.Note{Title: "H", Content: "<mark>glow</mark>"})
	require.NoError(t, err)

	assert.Equal(t, 1, canvas.fillRects)
	assert.Equal(t, [3]int{255, 243, 141}, canvas.fillColor)
}

func TestNotePDF_StrikethroughDrawsLine(t *testing.T) {
	exporter, canvas := newFakeExporter()

	_, err := exporter.NotePDF(model.Note{Title: "S", Content: "<s>gone</s>"})
	require.NoError(t, err)

	assert.Equal(t, 1, canvas.lines)
}

func TestNotePDF_EmojiSanitized(t *testing.T) {
	exporter, canvas := newFakeExporter()

	_, err := exporter.NotePDF(model.Note{Title: "Party 🎉 time", Content: "<p>fun 🎈</p>"})
	require.NoError(t, err)

	text := allText(canvas)
	assert.Contains(t, text, "Party  time")
	assert.Contains(t, canvas.texts, "fun")
	assert.NotContains(t, text, "🎉")
	assert.NotContains(t, text, "🎈")
}

func TestNotePDF_BulletSurvivesSanitize(t *testing.T) {
	exporter, canvas := newFakeExporter()

	_, err := exporter.NotePDF(model.Note{Title: "L", Content: "<ul><li>item</li></ul>"})
	require.NoError(t, err)

	assert.Contains(t, canvas.texts, "•")
	assert.Contains(t, canvas.texts, "item")
}

func TestCollectionPDF_CoverAndSeparators(t *testing.T) {
	exporter, canvas := newFakeExporter()

	notes := []model.Note{
		{Title: "One", Content: "<p>a</p>"},
		{Title: "Two", Content: "<p>b</p>"},
	}

	_, err := exporter.CollectionPDF(notes, time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	text := allText(canvas)
	assert.Contains(t, text, "Notes Export (2 notes)")
	assert.Contains(t, text, "Exported: 2024-07-01 12:00")
	assert.Contains(t, text, "One")
	assert.Contains(t, text, "Two")

	// Один разделитель между двумя заметками
	assert.Equal(t, 1, canvas.lines)
}

package export

import (
	"fmt"
	"strings"
	"time"

	"notes-backend/internal/model"
	"notes-backend/internal/richtext"
)

// Canvas примитивы рисования, которые нужны раскладке страниц.
// Боевая реализация - обертка над fpdf, в тестах используется фейк.
type Canvas interface {
	AddPage()
	// SetFont выбирает вариант шрифта: "" обычный, "B", "I", "BI"
	SetFont(style string, size float64)
	// TextWidth возвращает ширину текста для текущего шрифта и размера
	TextWidth(text string) float64
	// Text рисует строку, (x, y) - базовая линия
	Text(x, y float64, text string)
	FillRect(x, y, w, h float64)
	Line(x1, y1, x2, y2 float64)
	SetTextColor(r, g, b int)
	SetFillColor(r, g, b int)
	Bytes() ([]byte, error)
}

// Geometry геометрия страницы и размеры шрифтов
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	LineHeight float64

	TitleFontSize float64
	BodyFontSize  float64
	MetaFontSize  float64
}

// DefaultGeometry страница A4 в пунктах с полями 50pt
func DefaultGeometry() Geometry {
	return Geometry{
		PageWidth:     595,
		PageHeight:    842,
		Margin:        50,
		LineHeight:    18,
		TitleFontSize: 18,
		BodyFontSize:  11,
		MetaFontSize:  9,
	}
}

// PDFExporter собирает многостраничный PDF документ из заметок
type PDFExporter struct {
	geom      Geometry
	newCanvas func() Canvas
}

// NewPDFExporter создает экспортер с фабрикой холстов.
// Фабрика вызывается на каждый экспортируемый документ.
func NewPDFExporter(geom Geometry, newCanvas func() Canvas) *PDFExporter {
	return &PDFExporter{geom: geom, newCanvas: newCanvas}
}

// NotePDF экспортирует одну заметку в PDF
func (e *PDFExporter) NotePDF(note model.Note) ([]byte, error) {
	l := newLayout(e.newCanvas(), e.geom)
	l.writeNote(note)
	return l.canvas.Bytes()
}

// CollectionPDF экспортирует набор заметок в один PDF:
// титульная строка с количеством и датой, далее заметки через разделитель
func (e *PDFExporter) CollectionPDF(notes []model.Note, exportDate time.Time) ([]byte, error) {
	l := newLayout(e.newCanvas(), e.geom)

	l.writeLine(fmt.Sprintf("Notes Export (%d notes)", len(notes)), "B", e.geom.TitleFontSize)
	l.writeLine("Exported: "+exportDate.Format(timeLayout), "", e.geom.MetaFontSize)
	l.advance(1)

	for i, note := range notes {
		if i > 0 {
			l.separator()
		}
		l.writeNote(note)
		l.advance(1)
	}

	return l.canvas.Bytes()
}

// layout состояние раскладки: текущая страница и вертикальный курсор.
// Курсор y - базовая линия текущей строки, растет вниз.
type layout struct {
	canvas Canvas
	geom   Geometry
	y      float64
}

func newLayout(canvas Canvas, geom Geometry) *layout {
	l := &layout{canvas: canvas, geom: geom}
	l.canvas.AddPage()
	l.y = geom.Margin + geom.LineHeight
	return l
}

// contentWidth ширина текстовой области страницы
func (l *layout) contentWidth() float64 {
	return l.geom.PageWidth - 2*l.geom.Margin
}

// ensureSpace открывает новую страницу, если курсор ушел за нижнее поле
func (l *layout) ensureSpace() {
	if l.y > l.geom.PageHeight-l.geom.Margin {
		l.canvas.AddPage()
		l.y = l.geom.Margin + l.geom.LineHeight
	}
}

// advance сдвигает курсор на n строк вниз
func (l *layout) advance(lines int) {
	l.y += l.geom.LineHeight * float64(lines)
}

// writeNote рисует заметку целиком: заголовок, дату создания,
// отформатированное содержимое и строку тегов
func (l *layout) writeNote(note model.Note) {
	l.writeLine(sanitize(note.Title), "B", l.geom.TitleFontSize)
	l.writeLine("Created: "+note.CreatedAt.Format(timeLayout), "", l.geom.MetaFontSize)
	l.advance(1)

	for _, seg := range richtext.Parse(note.Content) {
		l.writeSegment(seg)
	}

	if len(note.Tags) > 0 {
		l.advance(1)
		hashed := make([]string, 0, len(note.Tags))
		for _, tag := range note.Tags {
			hashed = append(hashed, "#"+tag)
		}
		l.writeLine("Tags: "+strings.Join(hashed, ", "), "I", l.geom.MetaFontSize)
	}
}

// writeLine рисует одну служебную строку (заголовок, метаданные)
func (l *layout) writeLine(text string, style string, size float64) {
	l.ensureSpace()
	l.canvas.SetFont(style, size)
	l.canvas.SetTextColor(0, 0, 0)
	l.canvas.Text(l.geom.Margin, l.y, sanitize(text))
	l.advance(1)
}

// writeSegment рисует один сегмент содержимого: маркер переноса двигает
// курсор, текстовый сегмент переносится по ширине и рисуется построчно
func (l *layout) writeSegment(seg richtext.Segment) {
	if seg.IsBreak {
		l.advance(strings.Count(seg.Text, "\n"))
		return
	}

	// Чистим текст до измерений: fallback-шрифт не умеет эмодзи
	// и большинство не-латинских символов
	seg.Text = sanitize(seg.Text)

	size := l.geom.BodyFontSize
	l.canvas.SetFont(fontStyle(seg), size)

	lines := richtext.Reflow(seg, l.contentWidth(), l.canvas.TextWidth)
	for _, line := range lines {
		l.ensureSpace()

		width := l.canvas.TextWidth(line.Text)

		// Сначала фон выделения, затем текст, затем зачеркивание
		if line.Highlight {
			l.canvas.SetFillColor(255, 243, 141)
			l.canvas.FillRect(l.geom.Margin, l.y-size, width, l.geom.LineHeight)
		}

		if line.Code {
			l.canvas.SetTextColor(127, 0, 85)
		} else {
			l.canvas.SetTextColor(0, 0, 0)
		}

		l.canvas.Text(l.geom.Margin, l.y, line.Text)

		if line.Strikethrough {
			mid := l.y - size*0.35
			l.canvas.Line(l.geom.Margin, mid, l.geom.Margin+width, mid)
		}

		l.advance(1)
	}
}

// separator горизонтальная линия между заметками в коллекции
func (l *layout) separator() {
	l.ensureSpace()
	l.canvas.Line(l.geom.Margin, l.y, l.geom.PageWidth-l.geom.Margin, l.y)
	l.advance(2)
}

// fontStyle выбирает вариант шрифта по флагам сегмента
func fontStyle(seg richtext.Segment) string {
	style := ""
	if seg.Bold {
		style += "B"
	}
	if seg.Italic {
		style += "I"
	}
	return style
}

// sanitize выбрасывает кодовые точки вне Latin-1 (эмодзи и прочие
// символы, которых нет в базовых шрифтах PDF). Маркер списка
// оставляем - в cp1252 он есть.
func sanitize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '•' || (r >= 32 && r <= 0xFF) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

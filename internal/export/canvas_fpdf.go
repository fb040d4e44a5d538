package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

var _ Canvas = (*fpdfCanvas)(nil)

// fpdfCanvas реализация Canvas поверх fpdf.
// GetStringWidth служит поставщиком метрик шрифта для переноса строк.
type fpdfCanvas struct {
	pdf    *fpdf.Fpdf
	family string
}

// NewFpdfCanvasFactory возвращает фабрику холстов fpdf для заданной
// геометрии и семейства базовых шрифтов (например "Helvetica")
func NewFpdfCanvasFactory(geom Geometry, family string) func() Canvas {
	if family == "" {
		family = "Helvetica"
	}
	return func() Canvas {
		pdf := fpdf.NewCustom(&fpdf.InitType{
			OrientationStr: "P",
			UnitStr:        "pt",
			Size:           fpdf.SizeType{Wd: geom.PageWidth, Ht: geom.PageHeight},
		})
		// Страницами управляет layout, автоперенос отключаем
		pdf.SetAutoPageBreak(false, 0)
		return &fpdfCanvas{pdf: pdf, family: family}
	}
}

func (c *fpdfCanvas) AddPage() {
	c.pdf.AddPage()
}

func (c *fpdfCanvas) SetFont(style string, size float64) {
	c.pdf.SetFont(c.family, style, size)
}

func (c *fpdfCanvas) TextWidth(text string) float64 {
	return c.pdf.GetStringWidth(text)
}

func (c *fpdfCanvas) Text(x, y float64, text string) {
	c.pdf.Text(x, y, text)
}

func (c *fpdfCanvas) FillRect(x, y, w, h float64) {
	c.pdf.Rect(x, y, w, h, "F")
}

func (c *fpdfCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *fpdfCanvas) SetTextColor(r, g, b int) {
	c.pdf.SetTextColor(r, g, b)
}

func (c *fpdfCanvas) SetFillColor(r, g, b int) {
	c.pdf.SetFillColor(r, g, b)
}

func (c *fpdfCanvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

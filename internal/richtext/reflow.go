package richtext

import "strings"

// MeasureFunc возвращает ширину отрисованного текста для текущего
// шрифта и размера. Метрики шрифта поставляет рендерер документа.
type MeasureFunc func(text string) float64

// Reflow жадно разбивает текстовый сегмент на строки, не превышающие
// maxWidth. Флаги стиля исходного сегмента сохраняются в каждой строке.
// Слово шире maxWidth не режется - оно уходит отдельной строкой как есть.
// Пустой сегмент дает ноль строк.
func Reflow(seg Segment, maxWidth float64, measure MeasureFunc) []Segment {
	words := strings.Fields(seg.Text)
	if len(words) == 0 {
		return nil
	}

	var lines []Segment
	current := words[0]

	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) > maxWidth {
			lines = append(lines, lineOf(seg, current))
			current = word
			continue
		}
		current = candidate
	}

	lines = append(lines, lineOf(seg, current))

	return lines
}

// lineOf копирует сегмент с подменой текста на готовую строку
func lineOf(seg Segment, text string) Segment {
	line := seg
	line.Text = text
	line.IsBreak = false
	return line
}

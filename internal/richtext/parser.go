// Package richtext разбирает HTML-подмножество содержимого заметок
// в последовательность стилизованных сегментов и переносов строк.
// Поддерживаемые теги: p, br, strong/b, em/i, mark, s/strike/del, code,
// ul/ol/li, h1-h6. Незнакомые теги молча пропускаются, их содержимое
// проходит как обычный текст. Парсер никогда не падает на битой разметке.
package richtext

import "strings"

// Segment единица разобранного текста: либо текстовый фрагмент
// с флагами стиля, либо маркер переноса строки (IsBreak)
type Segment struct {
	Text          string
	Bold          bool
	Italic        bool
	Highlight     bool
	Strikethrough bool
	Code          bool
	IsBreak       bool
}

// formatState активные флаги форматирования на текущей позиции сканера
type formatState struct {
	bold          bool
	italic        bool
	highlight     bool
	strikethrough bool
	code          bool
}

// parser посимвольный сканер разметки
type parser struct {
	input    string
	pos      int
	buf      strings.Builder
	state    formatState
	segments []Segment
}

// Parse разбирает строку с HTML-подмножеством в упорядоченную
// последовательность сегментов
func Parse(input string) []Segment {
	p := &parser{input: input}
	p.run()
	return p.segments
}

func (p *parser) run() {
	for p.pos < len(p.input) {
		ch := p.input[p.pos]

		if ch != '<' {
			p.buf.WriteByte(ch)
			p.pos++
			continue
		}

		// Ищем конец тега; тег без закрывающей '>' обрывает разбор
		end := strings.IndexByte(p.input[p.pos:], '>')
		if end < 0 {
			break
		}

		tag := p.input[p.pos+1 : p.pos+end]
		p.pos += end + 1
		p.handleTag(tag)
	}

	p.flush()
}

// handleTag обрабатывает содержимое одного тега (без угловых скобок)
func (p *parser) handleTag(raw string) {
	closing := strings.HasPrefix(raw, "/")
	name := strings.TrimPrefix(raw, "/")

	// Отрезаем атрибуты и самозакрывающий слэш
	if i := strings.IndexAny(name, " \t\n/"); i >= 0 {
		name = name[:i]
	}
	name = strings.ToLower(name)

	switch name {
	case "strong", "b":
		p.toggle(&p.state.bold, closing)
	case "em", "i":
		p.toggle(&p.state.italic, closing)
	case "mark":
		p.toggle(&p.state.highlight, closing)
	case "s", "strike", "del":
		p.toggle(&p.state.strikethrough, closing)
	case "code":
		p.toggle(&p.state.code, closing)
	case "p", "h1", "h2", "h3", "h4", "h5", "h6":
		// Блочные теги дают пустую строку и на открытии, и на закрытии
		p.flush()
		p.emitBreak("\n\n")
	case "li":
		p.flush()
		if closing {
			p.emitBreak("\n")
		} else {
			p.emitText("• ")
		}
	case "ul", "ol":
		if closing {
			p.flush()
			p.emitBreak("\n")
		}
	case "br":
		p.flush()
		p.emitBreak("\n")
	default:
		// Незнакомый тег: не трогаем ни буфер, ни форматирование
	}
}

// toggle включает флаг на открывающем теге и выключает на закрывающем.
// Непарный закрывающий тег просто гасит флаг (no-op если уже выключен).
func (p *parser) toggle(flag *bool, closing bool) {
	p.flush()
	*flag = !closing
}

// flush сбрасывает накопленный текст в сегмент с текущим форматированием
func (p *parser) flush() {
	if p.buf.Len() == 0 {
		return
	}
	text := DecodeEntities(p.buf.String())
	p.buf.Reset()
	p.segments = append(p.segments, Segment{
		Text:          text,
		Bold:          p.state.bold,
		Italic:        p.state.italic,
		Highlight:     p.state.highlight,
		Strikethrough: p.state.strikethrough,
		Code:          p.state.code,
	})
}

func (p *parser) emitText(text string) {
	p.segments = append(p.segments, Segment{
		Text:          text,
		Bold:          p.state.bold,
		Italic:        p.state.italic,
		Highlight:     p.state.highlight,
		Strikethrough: p.state.strikethrough,
		Code:          p.state.code,
	})
}

func (p *parser) emitBreak(text string) {
	p.segments = append(p.segments, Segment{Text: text, IsBreak: true})
}

// entityReplacer декодирует поддерживаемые HTML сущности.
// &amp; заменяется последним, чтобы не порождать новые сущности.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&#x27;", "'",
	"&apos;", "'",
	"&amp;", "&",
)

// DecodeEntities заменяет поддерживаемые HTML сущности на их символы
func DecodeEntities(s string) string {
	return entityReplacer.Replace(s)
}

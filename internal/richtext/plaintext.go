package richtext

import (
	"regexp"
	"strings"
)

var multiNewline = regexp.MustCompile(`\n{3,}`)

// StripHTML превращает HTML-подмножество в плоский текст без стилей:
// блочные теги становятся пустыми строками, li - маркером списка,
// ссылки сохраняют внутренний текст, картинки - alt в квадратных скобках,
// остальные теги отбрасываются. Серии из 3+ переносов схлопываются до двух.
func StripHTML(input string) string {
	var out strings.Builder

	pos := 0
	for pos < len(input) {
		ch := input[pos]

		if ch != '<' {
			out.WriteByte(ch)
			pos++
			continue
		}

		end := strings.IndexByte(input[pos:], '>')
		if end < 0 {
			break
		}

		raw := input[pos+1 : pos+end]
		pos += end + 1

		closing := strings.HasPrefix(raw, "/")
		name := strings.TrimPrefix(raw, "/")
		attrs := ""
		if i := strings.IndexAny(name, " \t\n"); i >= 0 {
			attrs = name[i:]
			name = name[:i]
		}
		name = strings.ToLower(strings.TrimSuffix(name, "/"))

		switch name {
		case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "blockquote":
			out.WriteString("\n\n")
		case "li":
			if closing {
				out.WriteString("\n")
			} else {
				out.WriteString("• ")
			}
		case "br":
			out.WriteString("\n")
		case "img":
			if alt := attrValue(attrs, "alt"); alt != "" {
				out.WriteString("[" + alt + "]")
			} else {
				out.WriteString("[Image]")
			}
		default:
			// Ссылки и прочие теги отбрасываются, внутренний текст остается
		}
	}

	text := DecodeEntities(out.String())
	text = multiNewline.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// attrValue достает значение атрибута из хвоста тега.
// Поддерживаются только значения в двойных кавычках - этого достаточно
// для разметки, которую сохраняет редактор заметок.
func attrValue(attrs, name string) string {
	marker := name + `="`
	i := strings.Index(strings.ToLower(attrs), marker)
	if i < 0 {
		return ""
	}
	rest := attrs[i+len(marker):]
	j := strings.IndexByte(rest, '"')
	if j < 0 {
		return ""
	}
	return rest[:j]
}

package session

import (
	"html"
	"regexp"
	"strings"
)

var (
	bulletMarker = regexp.MustCompile(`^[-•*]\s+`)
	numberMarker = regexp.MustCompile(`^\d+\.\s+`)
	boldSpan     = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// FormatExplanation converts explanation text into card markup. Lines
// starting with bullet or numbered-list markers render as a list with
// the markers stripped, anything else as one paragraph per line. Inline
// **bold** spans become <strong>; all other content is HTML-escaped.
func FormatExplanation(text string) string {
	if strings.TrimSpace(text) == "" {
		return "<p>No explanation available.</p>"
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	isList := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if bulletMarker.MatchString(trimmed) || numberMarker.MatchString(trimmed) {
			isList = true
			break
		}
	}

	var b strings.Builder
	if isList {
		b.WriteString("<ul>")
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			trimmed = bulletMarker.ReplaceAllString(trimmed, "")
			trimmed = numberMarker.ReplaceAllString(trimmed, "")
			b.WriteString("<li>")
			b.WriteString(renderInline(trimmed))
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
	} else {
		for _, line := range lines {
			b.WriteString("<p>")
			b.WriteString(renderInline(line))
			b.WriteString("</p>")
		}
	}
	return b.String()
}

// renderInline escapes a line while turning **bold** spans into
// <strong> elements. The bold content itself is escaped too, so no
// model output reaches the markup unescaped.
func renderInline(line string) string {
	var b strings.Builder
	last := 0
	for _, m := range boldSpan.FindAllStringSubmatchIndex(line, -1) {
		b.WriteString(html.EscapeString(line[last:m[0]]))
		b.WriteString("<strong>")
		b.WriteString(html.EscapeString(line[m[2]:m[3]]))
		b.WriteString("</strong>")
		last = m[1]
	}
	b.WriteString(html.EscapeString(line[last:]))
	return b.String()
}

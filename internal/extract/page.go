package extract

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// blockTags are the ancestors considered paragraph-level containers.
var blockTags = map[string]bool{
	"p": true, "div": true, "article": true, "section": true,
}

// lineBreakTags force a newline in rendered text, mirroring how a browser
// lays out block elements when reading innerText.
var lineBreakTags = map[string]bool{
	"p": true, "div": true, "article": true, "section": true,
	"br": true, "li": true, "tr": true, "blockquote": true, "pre": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "table": true, "header": true, "footer": true,
}

// skippedTags contribute no rendered text.
var skippedTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"head": true,
}

// Page is a parsed HTML document plus its metadata, ready for context
// extraction against one or more selections.
type Page struct {
	root   *html.Node
	title  string
	domain string
}

// ParsePage parses an HTML document. pageURL supplies the domain; an
// empty or unparseable URL yields the unknown-domain sentinel rather
// than an error, since extraction must never block the caller.
func ParsePage(r io.Reader, pageURL string) (*Page, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	p := &Page{root: root, domain: DomainUnknown}
	p.title = findTitle(root)
	if pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil && u.Hostname() != "" {
			p.domain = u.Hostname()
		}
	}
	return p, nil
}

// Title returns the document title, empty if none.
func (p *Page) Title() string { return p.title }

// Domain returns the page domain or the unknown sentinel.
func (p *Page) Domain() string { return p.domain }

// Context builds the SelectionContext for the given selected text. All
// failure paths degrade to fallback values: a selection that cannot be
// located in the document still produces a usable context with the
// selection as its own sentence.
func (p *Page) Context(selected string) SelectionContext {
	selected = strings.TrimSpace(selected)
	sc := SelectionContext{
		HighlightedText:    selected,
		ContainingSentence: selected,
		PageTitle:          p.title,
		Domain:             p.domain,
	}
	if selected == "" {
		return sc
	}

	container := deepestContaining(p.root, selected)
	if container == nil {
		return sc
	}

	containerText := RenderText(container)
	sc.ContainingSentence = sentenceWindow(containerText, selected)

	paragraph := container
	for paragraph != nil {
		if paragraph.Type == html.ElementNode && blockTags[strings.ToLower(paragraph.Data)] {
			break
		}
		paragraph = paragraph.Parent
	}
	if paragraph != nil {
		sc.PreviousParagraph, sc.NextParagraph = paragraphWindow(RenderText(paragraph), selected)
	}
	return sc
}

// deepestContaining returns the deepest element node whose rendered text
// contains selected. The first matching branch wins; duplicate occurrences
// elsewhere in the document are not disambiguated.
func deepestContaining(n *html.Node, selected string) *html.Node {
	if n.Type == html.ElementNode && skippedTags[strings.ToLower(n.Data)] {
		return nil
	}
	var match *html.Node
	if n.Type == html.ElementNode && strings.Contains(RenderText(n), selected) {
		match = n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := deepestContaining(c, selected); m != nil {
			return m
		}
	}
	return match
}

// RenderText flattens a node subtree into display text, skipping script
// and style content and inserting newlines at block boundaries.
func RenderText(n *html.Node) string {
	var b strings.Builder
	renderText(n, &b)
	return strings.TrimSpace(b.String())
}

func renderText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text != "" {
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
				b.WriteString(" ")
			}
			b.WriteString(text)
		}
		return
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if skippedTags[tag] {
			return
		}
		if tag == "br" {
			b.WriteString("\n")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderText(c, b)
		}
		if lineBreakTags[tag] && b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderText(c, b)
		}
	}
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && strings.ToLower(n.Data) == "title" {
		var b strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
		return strings.TrimSpace(b.String())
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

// Package extract derives a bounded selection context from a page and a
// highlighted text span. It is a fixed heuristic, not a parser: sentence
// boundaries are punctuation-based and paragraph windows come from the
// nearest block-level ancestor.
package extract

import "strings"

// DomainUnknown is the sentinel used when the page domain cannot be read.
const DomainUnknown = "unknown"

// SelectionContext captures a highlighted span plus its surroundings.
// Immutable once built; JSON tags match the relay wire format.
type SelectionContext struct {
	HighlightedText    string `json:"highlightedText"`
	ContainingSentence string `json:"containingSentence"`
	PreviousParagraph  string `json:"previousParagraph,omitempty"`
	NextParagraph      string `json:"nextParagraph,omitempty"`
	PageTitle          string `json:"pageTitle"`
	Domain             string `json:"domain"`
}

// Synthetic builds a minimal context from bare text, used when a caller
// has no page to extract from (relay requests carrying only "text").
func Synthetic(text string) SelectionContext {
	return SelectionContext{
		HighlightedText:    text,
		ContainingSentence: text,
		PageTitle:          "Unknown Page",
		Domain:             DomainUnknown,
	}
}

// FromText builds a context from a plain text container, applying the
// same sentence and paragraph heuristics as HTML extraction. domain may
// be empty, in which case the unknown sentinel is used.
func FromText(containerText, selected, pageTitle, domain string) SelectionContext {
	selected = strings.TrimSpace(selected)
	if domain == "" {
		domain = DomainUnknown
	}
	sc := SelectionContext{
		HighlightedText:    selected,
		ContainingSentence: selected,
		PageTitle:          pageTitle,
		Domain:             domain,
	}
	if selected == "" || containerText == "" {
		return sc
	}
	sc.ContainingSentence = sentenceWindow(containerText, selected)
	sc.PreviousParagraph, sc.NextParagraph = paragraphWindow(containerText, selected)
	return sc
}

// sentenceTerminators mark sentence boundaries when followed by a space.
var sentenceTerminators = []string{". ", "! ", "? "}

// sentenceWindow returns the sentence-level window around selected within
// containerText. Falls back to selected when the selection does not occur
// in the container or when no boundaries exist.
//
// The first occurrence of selected is used; repeated occurrences elsewhere
// in the container are not disambiguated (known limitation).
func sentenceWindow(containerText, selected string) string {
	idx := strings.Index(containerText, selected)
	if idx < 0 {
		return selected
	}
	before := containerText[:idx]
	after := containerText[idx+len(selected):]

	start := 0
	for _, term := range sentenceTerminators {
		if i := strings.LastIndex(before, term); i >= 0 && i+1 > start {
			start = i + 1
		}
	}

	end := len(containerText)
	for _, term := range sentenceTerminators {
		if i := strings.Index(after, term); i >= 0 {
			abs := idx + len(selected) + i
			if abs < end {
				end = abs
			}
		}
	}

	sentence := strings.TrimSpace(containerText[start:end])
	if sentence == "" {
		return selected
	}
	return sentence
}

// paragraphWindow splits paragraphText at the selection into the last line
// before it and the first line after it. Both are empty when the selection
// does not occur in the paragraph.
func paragraphWindow(paragraphText, selected string) (prev, next string) {
	idx := strings.Index(paragraphText, selected)
	if idx < 0 {
		return "", ""
	}
	before := strings.TrimSpace(paragraphText[:idx])
	after := strings.TrimSpace(paragraphText[idx+len(selected):])

	if before != "" {
		lines := strings.Split(before, "\n")
		prev = strings.TrimSpace(lines[len(lines)-1])
	}
	if after != "" {
		next = strings.TrimSpace(strings.SplitN(after, "\n", 2)[0])
	}
	return prev, next
}

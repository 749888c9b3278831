package extract

import (
	"strings"
	"testing"
)

func TestSynthetic(t *testing.T) {
	sc := Synthetic("raw selection")
	if sc.HighlightedText != "raw selection" {
		t.Errorf("HighlightedText = %q", sc.HighlightedText)
	}
	if sc.ContainingSentence != "raw selection" {
		t.Errorf("ContainingSentence = %q", sc.ContainingSentence)
	}
	if sc.Domain != DomainUnknown {
		t.Errorf("Domain = %q, want sentinel", sc.Domain)
	}
}

func TestFromTextSentenceWindow(t *testing.T) {
	container := "The market opened flat. Analysts expect volatility to rise this quarter. Traders are cautious."
	sc := FromText(container, "volatility to rise", "Market News", "news.example.com")

	if sc.ContainingSentence != "Analysts expect volatility to rise this quarter" {
		t.Errorf("ContainingSentence = %q", sc.ContainingSentence)
	}
	if !strings.Contains(sc.ContainingSentence, sc.HighlightedText) {
		t.Error("sentence does not contain the highlighted text")
	}
}

func TestFromTextNoBoundariesFallsBackToFullText(t *testing.T) {
	container := "a phrase with no terminators at all"
	sc := FromText(container, "no terminators", "T", "d")

	if !strings.Contains(sc.ContainingSentence, sc.HighlightedText) {
		t.Errorf("ContainingSentence = %q does not contain the selection", sc.ContainingSentence)
	}
}

func TestFromTextSelectionNotInContainer(t *testing.T) {
	sc := FromText("completely unrelated text.", "missing selection", "T", "d")
	if sc.ContainingSentence != "missing selection" {
		t.Errorf("ContainingSentence = %q, want the selection itself", sc.ContainingSentence)
	}
	if sc.PreviousParagraph != "" || sc.NextParagraph != "" {
		t.Error("paragraph windows should be empty when the selection is absent")
	}
}

func TestFromTextParagraphWindows(t *testing.T) {
	container := "Intro line one\nIntro line two\nthe selected span sits here\nOutro line one\nOutro line two"
	sc := FromText(container, "the selected span", "T", "d")

	if sc.PreviousParagraph != "Intro line two" {
		t.Errorf("PreviousParagraph = %q, want only the last line before", sc.PreviousParagraph)
	}
	if sc.NextParagraph != "sits here" {
		t.Errorf("NextParagraph = %q, want only the first line after", sc.NextParagraph)
	}
}

func TestFromTextDefaultsDomain(t *testing.T) {
	sc := FromText("text.", "text", "T", "")
	if sc.Domain != DomainUnknown {
		t.Errorf("Domain = %q, want sentinel for empty domain", sc.Domain)
	}
}

func TestFromTextExclamationAndQuestionBoundaries(t *testing.T) {
	container := "What a day! The launch succeeded beyond expectations. Right? Indeed."
	sc := FromText(container, "launch succeeded", "T", "d")
	if sc.ContainingSentence != "The launch succeeded beyond expectations" {
		t.Errorf("ContainingSentence = %q", sc.ContainingSentence)
	}
}

const samplePage = `<!DOCTYPE html>
<html>
<head>
<title>Quarterly Report</title>
<script>var tracking = "ignore me";</script>
<style>.hidden { display: none; }</style>
</head>
<body>
<article>
<h2>Results</h2>
<p>Revenue grew steadily through the period. Operating margins compressed due to input costs. The board remains optimistic.</p>
<p>Guidance for next year is unchanged.</p>
</article>
</body>
</html>`

func TestPageContext(t *testing.T) {
	p, err := ParsePage(strings.NewReader(samplePage), "https://investor.example.com/q3")
	if err != nil {
		t.Fatal(err)
	}

	if p.Title() != "Quarterly Report" {
		t.Errorf("Title = %q", p.Title())
	}
	if p.Domain() != "investor.example.com" {
		t.Errorf("Domain = %q", p.Domain())
	}

	sc := p.Context("margins compressed")
	if sc.PageTitle != "Quarterly Report" {
		t.Errorf("PageTitle = %q", sc.PageTitle)
	}
	if !strings.Contains(sc.ContainingSentence, "margins compressed") {
		t.Errorf("ContainingSentence = %q does not contain the selection", sc.ContainingSentence)
	}
	if strings.Contains(sc.ContainingSentence, "Revenue grew") {
		t.Errorf("ContainingSentence = %q spans past the sentence boundary", sc.ContainingSentence)
	}
}

func TestPageContextSkipsScriptAndStyle(t *testing.T) {
	p, err := ParsePage(strings.NewReader(samplePage), "")
	if err != nil {
		t.Fatal(err)
	}
	sc := p.Context("ignore me")
	// The text only exists inside a script tag, so extraction degrades.
	if sc.ContainingSentence != "ignore me" {
		t.Errorf("ContainingSentence = %q, want the selection fallback", sc.ContainingSentence)
	}
}

func TestPageContextUnknownDomain(t *testing.T) {
	p, err := ParsePage(strings.NewReader(samplePage), "not a url")
	if err != nil {
		t.Fatal(err)
	}
	if p.Domain() != DomainUnknown {
		t.Errorf("Domain = %q, want sentinel", p.Domain())
	}
}

func TestPageContextMissingSelectionDegrades(t *testing.T) {
	p, err := ParsePage(strings.NewReader(samplePage), "https://example.com")
	if err != nil {
		t.Fatal(err)
	}
	sc := p.Context("text that appears nowhere on the page")
	if sc.ContainingSentence != "text that appears nowhere on the page" {
		t.Errorf("ContainingSentence = %q, want the selection itself", sc.ContainingSentence)
	}
}

func TestRenderTextBlockBoundaries(t *testing.T) {
	p, err := ParsePage(strings.NewReader(
		`<html><body><div>First line.<br>Here sits the chosen span.<br>Last line.</div></body></html>`), "")
	if err != nil {
		t.Fatal(err)
	}
	sc := p.Context("the chosen span.")
	if sc.PreviousParagraph != "Here sits" {
		t.Errorf("PreviousParagraph = %q, want the last line before the selection", sc.PreviousParagraph)
	}
	if sc.NextParagraph != "Last line." {
		t.Errorf("NextParagraph = %q, want the first line after the selection", sc.NextParagraph)
	}
}

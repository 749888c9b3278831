package prompt

import (
	"strings"
	"testing"

	"github.com/exply-app/exply/internal/extract"
)

func sampleContext() extract.SelectionContext {
	return extract.SelectionContext{
		HighlightedText:    "quantitative easing",
		ContainingSentence: "The bank resumed quantitative easing last month.",
		PreviousParagraph:  "Markets had been volatile.",
		NextParagraph:      "Bond yields fell sharply.",
		PageTitle:          "Central Bank Watch",
		Domain:             "econ.example.com",
	}
}

func TestBuildDeterministic(t *testing.T) {
	ctx := sampleContext()
	a := Build(ctx, ModeExplain, "en")
	b := Build(ctx, ModeExplain, "en")
	if a != b {
		t.Error("identical inputs produced different prompts")
	}
}

func TestBuildIncludesContextFields(t *testing.T) {
	p := Build(sampleContext(), ModeExplain, "en")

	for _, want := range []string{
		"econ.example.com",
		"Central Bank Watch",
		`"quantitative easing"`,
		`"The bank resumed quantitative easing last month."`,
		`"Markets had been volatile."`,
		`"Bond yields fell sharply."`,
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %s", want)
		}
	}
}

func TestBuildOmitsEmptyWindows(t *testing.T) {
	ctx := sampleContext()
	ctx.PreviousParagraph = ""
	ctx.NextParagraph = ""
	p := Build(ctx, ModeExplain, "en")

	if strings.Contains(p, "Previous context") {
		t.Error("prompt includes an empty previous window")
	}
	if strings.Contains(p, "Following context") {
		t.Error("prompt includes an empty following window")
	}
}

func TestBuildModeVariants(t *testing.T) {
	ctx := sampleContext()

	explain := Build(ctx, ModeExplain, "en")
	if !strings.Contains(explain, "IN THIS SPECIFIC CONTEXT") {
		t.Error("explain variant missing its instruction block")
	}

	simplify := Build(ctx, ModeSimplify, "en")
	if !strings.Contains(simplify, "plain language") {
		t.Error("simplify variant missing its instruction block")
	}

	implication := Build(ctx, ModeImplication, "en")
	if !strings.Contains(implication, "why this matters") {
		t.Error("implication variant missing its instruction block")
	}
}

func TestBuildUnknownModeFallsBackToExplain(t *testing.T) {
	ctx := sampleContext()
	got := Build(ctx, Mode("summarize"), "en")
	want := Build(ctx, ModeExplain, "en")
	if got != want {
		t.Error("unrecognized mode did not fall back to the explain variant")
	}
}

func TestBuildLanguageDirective(t *testing.T) {
	p := Build(sampleContext(), ModeExplain, "ja")
	if strings.Count(p, "Japanese") < 2 {
		t.Error("prompt does not repeat the language constraint")
	}
}

func TestLanguageNameFallback(t *testing.T) {
	if got := LanguageName("xx"); got != "English" {
		t.Errorf("LanguageName(xx) = %q, want English", got)
	}
	if got := LanguageName("pt"); got != "Portuguese" {
		t.Errorf("LanguageName(pt) = %q", got)
	}
	for _, code := range LanguageCodes {
		if _, ok := LanguageNames[code]; !ok {
			t.Errorf("code %q listed but unnamed", code)
		}
	}
}

func TestBuildFollowUpWrapsBasePrompt(t *testing.T) {
	ctx := sampleContext()
	p := BuildFollowUp(ctx, "Does this affect mortgages?", ModeExplain, "en")

	if !strings.Contains(p, `"quantitative easing"`) {
		t.Error("follow-up prompt does not quote the highlighted text")
	}
	if !strings.Contains(p, "Does this affect mortgages?") {
		t.Error("follow-up prompt does not carry the question")
	}
	if !strings.Contains(p, Build(ctx, ModeExplain, "en")) {
		t.Error("follow-up prompt does not embed the base prompt")
	}
}

func TestRenderPrefixesSystemInstruction(t *testing.T) {
	ctx := sampleContext()

	p := Render(ctx, "", ModeExplain, "en")
	if !strings.HasPrefix(p, SystemInstruction) {
		t.Error("rendered prompt does not start with the system instruction")
	}
	if !strings.Contains(p, Build(ctx, ModeExplain, "en")) {
		t.Error("rendered prompt does not contain the base prompt")
	}

	f := Render(ctx, "why?", ModeExplain, "en")
	if !strings.Contains(f, "Follow-up question") {
		t.Error("rendered prompt did not switch to the follow-up variant")
	}
}

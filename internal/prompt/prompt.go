// Package prompt renders the instruction strings sent to the generative
// API. Rendering is pure and deterministic: the same context, mode, and
// language always produce a byte-identical prompt.
package prompt

import (
	"fmt"
	"strings"

	"github.com/exply-app/exply/internal/extract"
)

// Mode selects the explanation style.
type Mode string

const (
	ModeExplain     Mode = "explain"
	ModeSimplify    Mode = "simplify"
	ModeImplication Mode = "implication"
)

// Modes lists the recognized modes in display order.
var Modes = []Mode{ModeExplain, ModeSimplify, ModeImplication}

// Valid reports whether m is a recognized mode. Unrecognized modes are
// not an error anywhere in the pipeline; they fall back to explain.
func (m Mode) Valid() bool {
	switch m {
	case ModeExplain, ModeSimplify, ModeImplication:
		return true
	}
	return false
}

// SystemInstruction is prefixed to every prompt sent upstream.
const SystemInstruction = "You are a helpful assistant that explains text in context. Be concise, factual, and context-aware."

// LanguageNames maps supported response language codes to the
// human-readable names used inside prompts.
var LanguageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
	"ru": "Russian",
	"ar": "Arabic",
	"hi": "Hindi",
}

// LanguageCodes lists the supported codes in selector order.
var LanguageCodes = []string{"en", "es", "fr", "de", "it", "pt", "zh", "ja", "ko", "ru", "ar", "hi"}

// LanguageName resolves a code to its prompt label. Unknown codes fall
// back to English at prompt-build time; the request keeps the original
// code.
func LanguageName(code string) string {
	if name, ok := LanguageNames[code]; ok {
		return name
	}
	return "English"
}

// Build renders the explanation prompt for a context, mode, and response
// language. It never mutates ctx and performs no I/O.
func Build(ctx extract.SelectionContext, mode Mode, language string) string {
	responseLanguage := LanguageName(language)

	var context strings.Builder
	fmt.Fprintf(&context, "Context:\n- Domain: %s\n- Page: %s\n- Highlighted text: %q\n- Sentence containing it: %q",
		ctx.Domain, ctx.PageTitle, ctx.HighlightedText, ctx.ContainingSentence)
	if ctx.PreviousParagraph != "" {
		fmt.Fprintf(&context, "\n- Previous context: %q", ctx.PreviousParagraph)
	}
	if ctx.NextParagraph != "" {
		fmt.Fprintf(&context, "\n- Following context: %q", ctx.NextParagraph)
	}

	var instructions string
	switch mode {
	case ModeSimplify:
		instructions = fmt.Sprintf(`Rewrite the meaning in very plain language in %[1]s:
- Assume middle-school reading level
- Use short sentences, no jargon
- Make it easy to understand
- Keep it concise (3-5 bullet points)
- Respond entirely in %[1]s`, responseLanguage)
	case ModeImplication:
		instructions = fmt.Sprintf(`Explain why this matters and what it implies in %[1]s:
- What this suggests or implies
- What a reader should take away
- What to expect next
- Avoid speculation beyond the provided context
- Keep it concise (3-5 bullet points)
- Respond entirely in %[1]s`, responseLanguage)
	default:
		instructions = fmt.Sprintf(`Explain what this text means IN THIS SPECIFIC CONTEXT in %[1]s:
- Focus on intent and interpretation
- Avoid generic dictionary definitions
- Mention any ambiguity if present
- Stay neutral and factual
- Format as clean bullet points (3-6 points)
- Respond entirely in %[1]s`, responseLanguage)
	}

	return fmt.Sprintf(`You are helping a user understand text they've highlighted on a webpage. The user wants the response in %[1]s.

%[2]s

%[3]s

IMPORTANT: You MUST respond entirely in %[1]s. Do NOT use any other language, even if the input text is in a different language. If you mention original terms, keep them very short and immediately explain them in %[1]s.

Do NOT use phrases like "as an AI" or "I am". Respond entirely in %[1]s.`,
		responseLanguage, context.String(), instructions)
}

// BuildFollowUp wraps the explanation prompt with a follow-up question
// about the originally highlighted text, instructing a short answer
// scoped to the original context.
func BuildFollowUp(ctx extract.SelectionContext, question string, mode Mode, language string) string {
	return fmt.Sprintf("Follow-up question about the previously highlighted text %q: %s\n\nContext and language requirements:\n%s\n\nAnswer only this specific question briefly, staying within the original context. Respond entirely in %s.",
		ctx.HighlightedText, question, Build(ctx, mode, language), LanguageName(language))
}

// Render produces the full upstream prompt, choosing the follow-up
// variant when question is non-empty and prefixing the system
// instruction.
func Render(ctx extract.SelectionContext, question string, mode Mode, language string) string {
	if question != "" {
		return SystemInstruction + "\n\n" + BuildFollowUp(ctx, question, mode, language)
	}
	return SystemInstruction + "\n\n" + Build(ctx, mode, language)
}

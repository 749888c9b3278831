package session

import "github.com/exply-app/exply/internal/prompt"

// Labels holds the user-facing strings for one display language.
type Labels struct {
	Title               string
	Explain             string
	Simplify            string
	Implication         string
	Loading             string
	FollowUpPlaceholder string
	Ask                 string
	Close               string
	Trigger             string
}

// ModeLabel returns the button label for a mode.
func (l Labels) ModeLabel(m prompt.Mode) string {
	switch m {
	case prompt.ModeSimplify:
		return l.Simplify
	case prompt.ModeImplication:
		return l.Implication
	default:
		return l.Explain
	}
}

// LabelsFor returns the label set for a language code, falling back to
// English for unknown codes.
func LabelsFor(code string) Labels {
	if l, ok := uiTexts[code]; ok {
		return l
	}
	return uiTexts["en"]
}

var uiTexts = map[string]Labels{
	"en": {
		Title:               "What this means here",
		Explain:             "Explain",
		Simplify:            "Simplify",
		Implication:         "So what?",
		Loading:             "Analyzing...",
		FollowUpPlaceholder: "Ask a follow-up (optional)",
		Ask:                 "Ask",
		Close:               "×",
		Trigger:             "Exply's Explanation",
	},
	"es": {
		Title:               "Qué significa esto aquí",
		Explain:             "Explicar",
		Simplify:            "Simplificar",
		Implication:         "¿Y qué?",
		Loading:             "Analizando...",
		FollowUpPlaceholder: "Haz una pregunta de seguimiento (opcional)",
		Ask:                 "Preguntar",
		Close:               "×",
		Trigger:             "Explicación de Exply",
	},
	"fr": {
		Title:               "Ce que cela signifie ici",
		Explain:             "Expliquer",
		Simplify:            "Simplifier",
		Implication:         "Et alors?",
		Loading:             "Analyse en cours...",
		FollowUpPlaceholder: "Poser une question de suivi (optionnel)",
		Ask:                 "Demander",
		Close:               "×",
		Trigger:             "Explication d'Exply",
	},
	"de": {
		Title:               "Was das hier bedeutet",
		Explain:             "Erklären",
		Simplify:            "Vereinfachen",
		Implication:         "Na und?",
		Loading:             "Analysiere...",
		FollowUpPlaceholder: "Eine Nachfrage stellen (optional)",
		Ask:                 "Fragen",
		Close:               "×",
		Trigger:             "Explys Erklärung",
	},
	"it": {
		Title:               "Cosa significa qui",
		Explain:             "Spiegare",
		Simplify:            "Semplificare",
		Implication:         "E quindi?",
		Loading:             "Analisi in corso...",
		FollowUpPlaceholder: "Fai una domanda di follow-up (opzionale)",
		Ask:                 "Chiedi",
		Close:               "×",
		Trigger:             "Spiegazione di Exply",
	},
	"pt": {
		Title:               "O que isso significa aqui",
		Explain:             "Explicar",
		Simplify:            "Simplificar",
		Implication:         "E daí?",
		Loading:             "Analisando...",
		FollowUpPlaceholder: "Faça uma pergunta de acompanhamento (opcional)",
		Ask:                 "Perguntar",
		Close:               "×",
		Trigger:             "Explicação do Exply",
	},
	"zh": {
		Title:               "这里的意思",
		Explain:             "解释",
		Simplify:            "简化",
		Implication:         "那又怎样？",
		Loading:             "分析中...",
		FollowUpPlaceholder: "提出后续问题（可选）",
		Ask:                 "提问",
		Close:               "×",
		Trigger:             "Exply的解释",
	},
	"ja": {
		Title:               "ここでの意味",
		Explain:             "説明",
		Simplify:            "簡略化",
		Implication:         "だから何？",
		Loading:             "分析中...",
		FollowUpPlaceholder: "フォローアップの質問をする（オプション）",
		Ask:                 "質問",
		Close:               "×",
		Trigger:             "Explyの説明",
	},
	"ko": {
		Title:               "여기서의 의미",
		Explain:             "설명",
		Simplify:            "단순화",
		Implication:         "그래서 뭐?",
		Loading:             "분석 중...",
		FollowUpPlaceholder: "후속 질문하기 (선택사항)",
		Ask:                 "질문",
		Close:               "×",
		Trigger:             "Exply의 설명",
	},
	"ru": {
		Title:               "Что это здесь означает",
		Explain:             "Объяснить",
		Simplify:            "Упростить",
		Implication:         "И что?",
		Loading:             "Анализ...",
		FollowUpPlaceholder: "Задать уточняющий вопрос (необязательно)",
		Ask:                 "Спросить",
		Close:               "×",
		Trigger:             "Объяснение Exply",
	},
	"ar": {
		Title:               "ماذا يعني هذا هنا",
		Explain:             "شرح",
		Simplify:            "تبسيط",
		Implication:         "إذن ماذا؟",
		Loading:             "جارٍ التحليل...",
		FollowUpPlaceholder: "اطرح سؤالاً متابعة (اختياري)",
		Ask:                 "اسأل",
		Close:               "×",
		Trigger:             "شرح Exply",
	},
	"hi": {
		Title:               "यहाँ इसका क्या अर्थ है",
		Explain:             "समझाएँ",
		Simplify:            "सरल बनाएँ",
		Implication:         "तो क्या?",
		Loading:             "विश्लेषण कर रहे हैं...",
		FollowUpPlaceholder: "एक अनुवर्ती प्रश्न पूछें (वैकल्पिक)",
		Ask:                 "पूछें",
		Close:               "×",
		Trigger:             "Exply का स्पष्टीकरण",
	},
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/exply-app/exply/internal/auth"
	"github.com/exply-app/exply/internal/extract"
	"github.com/exply-app/exply/internal/llm"
	"github.com/exply-app/exply/internal/prompt"
)

// fallbackText mirrors the client-side placeholder for empty provider
// output.
const fallbackText = "No explanation provided."

// explainRequest is the wire format accepted by POST /explain.
type explainRequest struct {
	Text             string                    `json:"text"`
	Mode             string                    `json:"mode"`
	Context          *extract.SelectionContext `json:"context"`
	TargetLanguage   string                    `json:"target_language"`
	FollowUpQuestion string                    `json:"followUpQuestion"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, errName, message string) {
	writeJSON(w, status, map[string]string{"error": errName, "message": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":            "ok",
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
		"gemini_configured": s.provider.Configured(),
	})
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var req explainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	if req.Text == "" && (req.Context == nil || req.Context.HighlightedText == "") {
		writeError(w, http.StatusBadRequest, "Bad Request",
			"Missing required field: text or context.highlightedText")
		return
	}

	sc := extract.Synthetic(req.Text)
	if req.Context != nil && req.Context.HighlightedText != "" {
		sc = *req.Context
	}

	mode := prompt.Mode(req.Mode)
	if req.Mode == "" {
		mode = prompt.ModeExplain
	}
	language := req.TargetLanguage
	if language == "" {
		language = "en"
	}

	full := prompt.Render(sc, req.FollowUpQuestion, mode, language)

	result, err := s.provider.Generate(r.Context(), llm.GenerateRequest{Prompt: full})
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}

	if result.Truncated {
		log.Warn().Msg("explanation was truncated by the output token limit")
	}

	if userID := auth.UserID(r.Context()); userID != "" && s.meter != nil {
		// Metering records user id, mode, and token count only, never
		// the prompt or context text.
		if err := s.meter.Record(r.Context(), userID, string(mode), result.InputTokens+result.OutputTokens); err != nil {
			log.Error().Err(err).Msg("recording usage (non-fatal)")
		}
	}

	text := result.Text
	if strings.TrimSpace(text) == "" {
		text = fallbackText
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": text})
}

// writeUpstreamError maps generative-API failures onto relay statuses.
func (s *Server) writeUpstreamError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("upstream generation failed")

	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
			writeError(w, http.StatusUnauthorized, "Unauthorized", "Authentication error with AI service")
			return
		case apiErr.StatusCode == http.StatusTooManyRequests:
			writeError(w, http.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded. Please try again later.")
			return
		}
	}
	writeError(w, http.StatusInternalServerError, "Internal Server Error",
		"AI service is temporarily unavailable. Please try again later.")
}

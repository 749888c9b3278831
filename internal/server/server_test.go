package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/exply-app/exply/internal/auth"
	"github.com/exply-app/exply/internal/config"
	"github.com/exply-app/exply/internal/llm"
	"github.com/exply-app/exply/internal/usage"
)

type fakeProvider struct {
	result *llm.GenerateResult
	err    error
	prompt string
	noKey  bool
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Configured() bool { return !f.noKey }

func (f *fakeProvider) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResult, error) {
	f.prompt = req.Prompt
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type stubVerifier struct {
	userID string
	err    error
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.userID, nil
}

func openServer(t *testing.T, cfg config.ServerConfig, provider llm.Provider, verifier auth.Verifier, meter *usage.Store) *httptest.Server {
	t.Helper()
	srv := New(cfg, provider, verifier, meter)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func openCfg() config.ServerConfig {
	cfg := config.DefaultConfig().Server
	cfg.AuthPolicy = config.PolicyOpen
	return cfg
}

func postExplain(t *testing.T, url string, body map[string]any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	raw, _ := json.Marshal(body)
	req, err := http.NewRequest(http.MethodPost, url+"/explain", bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /explain: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestExplainMissingFields(t *testing.T) {
	ts := openServer(t, openCfg(), &fakeProvider{result: &llm.GenerateResult{Text: "x"}}, nil, nil)

	resp, body := postExplain(t, ts.URL, map[string]any{}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	msg, _ := body["message"].(string)
	if !strings.Contains(msg, "text or context.highlightedText") {
		t.Errorf("message = %q, want it to name the missing field", msg)
	}
}

func TestExplainWithTextOnly(t *testing.T) {
	provider := &fakeProvider{result: &llm.GenerateResult{Text: "the answer"}}
	ts := openServer(t, openCfg(), provider, nil, nil)

	resp, body := postExplain(t, ts.URL, map[string]any{"text": "some highlighted words"}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["result"] != "the answer" {
		t.Errorf("result = %v", body["result"])
	}
	// A missing context yields a synthetic one built from the text.
	if !strings.Contains(provider.prompt, "some highlighted words") {
		t.Error("prompt does not include the highlighted text")
	}
	if !strings.Contains(provider.prompt, "unknown") {
		t.Error("prompt does not include the synthetic domain sentinel")
	}
}

func TestExplainDefaultsAndLanguage(t *testing.T) {
	provider := &fakeProvider{result: &llm.GenerateResult{Text: "ok"}}
	ts := openServer(t, openCfg(), provider, nil, nil)

	postExplain(t, ts.URL, map[string]any{
		"text":            "highlighted phrase",
		"mode":            "simplify",
		"target_language": "fr",
	}, nil)
	if !strings.Contains(provider.prompt, "French") {
		t.Error("prompt does not carry the French response language")
	}
	if !strings.Contains(provider.prompt, "plain language") {
		t.Error("prompt does not carry the simplify instructions")
	}
}

func TestExplainEmptyOutputFallback(t *testing.T) {
	provider := &fakeProvider{result: &llm.GenerateResult{Text: "  "}}
	ts := openServer(t, openCfg(), provider, nil, nil)

	_, body := postExplain(t, ts.URL, map[string]any{"text": "highlighted phrase"}, nil)
	if body["result"] != fallbackText {
		t.Errorf("result = %v, want fallback text", body["result"])
	}
}

func TestExplainUpstreamErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"upstream auth", &llm.APIError{StatusCode: 403, Message: "bad key"}, http.StatusUnauthorized},
		{"rate limit", &llm.APIError{StatusCode: 429, Message: "quota"}, http.StatusTooManyRequests},
		{"server error", &llm.APIError{StatusCode: 500, Message: "boom"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := openServer(t, openCfg(), &fakeProvider{err: tt.err}, nil, nil)
			resp, body := postExplain(t, ts.URL, map[string]any{"text": "highlighted phrase"}, nil)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			if body["message"] == "" {
				t.Error("error response missing message")
			}
		})
	}
}

func TestExplainFailClosedWithoutVerifier(t *testing.T) {
	cfg := config.DefaultConfig().Server // auth_policy: required
	ts := openServer(t, cfg, &fakeProvider{result: &llm.GenerateResult{Text: "x"}}, nil, nil)

	resp, _ := postExplain(t, ts.URL, map[string]any{"text": "highlighted phrase"}, nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 under fail-closed policy", resp.StatusCode)
	}
}

func TestExplainAuthEnforcedAndMetered(t *testing.T) {
	meter, err := usage.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer meter.Close()

	cfg := config.DefaultConfig().Server
	provider := &fakeProvider{result: &llm.GenerateResult{Text: "ok", InputTokens: 30, OutputTokens: 12}}
	ts := openServer(t, cfg, provider, &stubVerifier{userID: "user-9"}, meter)

	// No token -> 401.
	resp, _ := postExplain(t, ts.URL, map[string]any{"text": "highlighted phrase"}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status without token = %d, want 401", resp.StatusCode)
	}

	// Valid token -> 200 and a usage row for the resolved user.
	resp, _ = postExplain(t, ts.URL, map[string]any{"text": "highlighted phrase", "mode": "implication"},
		map[string]string{"Authorization": "Bearer tok"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status with token = %d, want 200", resp.StatusCode)
	}

	totals, err := meter.UserTotals(context.Background(), "user-9")
	if err != nil {
		t.Fatal(err)
	}
	if totals["implication"] != 1 {
		t.Errorf("totals = %v, want implication:1", totals)
	}
}

func TestExplainInvalidTokenRejected(t *testing.T) {
	cfg := config.DefaultConfig().Server
	ts := openServer(t, cfg, &fakeProvider{result: &llm.GenerateResult{Text: "x"}}, &stubVerifier{err: auth.ErrInvalidToken}, nil)

	resp, body := postExplain(t, ts.URL, map[string]any{"text": "highlighted phrase"},
		map[string]string{"Authorization": "Bearer expired"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	msg, _ := body["message"].(string)
	if !strings.Contains(msg, "log in") {
		t.Errorf("message = %q, want actionable re-login message", msg)
	}
}

func TestHealth(t *testing.T) {
	ts := openServer(t, openCfg(), &fakeProvider{result: &llm.GenerateResult{Text: "x"}}, nil, nil)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["gemini_configured"] != true {
		t.Errorf("gemini_configured = %v, want true", body["gemini_configured"])
	}
	if ts, _ := body["timestamp"].(string); ts == "" {
		t.Error("timestamp missing")
	}
}

func TestHealthReportsMissingCredential(t *testing.T) {
	ts := openServer(t, openCfg(), &fakeProvider{noKey: true}, nil, nil)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	if body["gemini_configured"] != false {
		t.Errorf("gemini_configured = %v, want false without a credential", body["gemini_configured"])
	}
}

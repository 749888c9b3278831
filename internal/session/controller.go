// Package session drives the explanation UI: the floating trigger, the
// card, and the interaction sequence between them. All session state
// lives in one controller-owned object with a single reset path on
// close, and rendering goes through the Surface interface so the state
// machine carries no knowledge of how the host draws things.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gobwas/glob"

	"github.com/exply-app/exply/internal/explain"
	"github.com/exply-app/exply/internal/extract"
	"github.com/exply-app/exply/internal/prompt"
)

// MinSelectionLength is the smallest selection, in runes, that shows
// the trigger or issues a request.
const MinSelectionLength = 8

// Selection is one qualifying text selection together with the context
// extracted around it.
type Selection struct {
	Text    string
	Context extract.SelectionContext
}

// Preferences persists the user's response language across sessions.
type Preferences interface {
	Language() string
	SaveLanguage(code string) error
}

// State is the controller's observable position in the interaction
// sequence.
type State int

const (
	Idle State = iota
	TriggerVisible
	CardLoading
	CardRendered
)

// sessionData holds everything tied to the current selection lifecycle.
// It is created on the first qualifying selection and nulled as a unit
// when the card closes.
type sessionData struct {
	selection     *Selection
	cachedContext *extract.SelectionContext
	mode          prompt.Mode
}

// Controller owns at most one explanation session at a time.
type Controller struct {
	surface Surface
	client  explain.Client
	prefs   Preferences
	blocked []glob.Glob

	mu               sync.Mutex
	sess             *sessionData
	language         string
	triggerVisible   bool
	cardOpen         bool
	rendered         bool
	updatingLanguage bool
	gen              int // card generation; bumped on close so stale renders are discarded
	disposers        []func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithBlockedDomains suppresses the trigger on domains matching any of
// the glob patterns (dot-separated, e.g. "*.bank.com"). Patterns that
// fail to compile are skipped.
func WithBlockedDomains(patterns []string) Option {
	return func(c *Controller) {
		for _, p := range patterns {
			g, err := glob.Compile(p, '.')
			if err != nil {
				continue
			}
			c.blocked = append(c.blocked, g)
		}
	}
}

// New builds a controller. prefs may be nil, in which case the language
// defaults to English and changes are not persisted.
func New(surface Surface, client explain.Client, prefs Preferences, opts ...Option) *Controller {
	c := &Controller{
		surface:  surface,
		client:   client,
		prefs:    prefs,
		language: "en",
	}
	if prefs != nil {
		if lang := prefs.Language(); lang != "" {
			c.language = lang
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports the current interaction state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.cardOpen && c.rendered:
		return CardRendered
	case c.cardOpen:
		return CardLoading
	case c.triggerVisible:
		return TriggerVisible
	default:
		return Idle
	}
}

// Language returns the active response language code.
func (c *Controller) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// Mode returns the active mode, or the default when no session exists.
func (c *Controller) Mode() prompt.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess != nil {
		return c.sess.mode
	}
	return prompt.ModeExplain
}

// Select handles a selection-change event. A qualifying selection shows
// the trigger and replaces the cached selection; anything shorter hides
// the trigger without touching an already-open card.
func (c *Controller) Select(sel Selection) {
	c.mu.Lock()
	defer c.mu.Unlock()

	text := strings.TrimSpace(sel.Text)
	if utf8.RuneCountInString(text) < MinSelectionLength || c.domainBlocked(sel.Context.Domain) {
		c.hideTriggerLocked()
		return
	}

	sel.Text = text
	if c.sess == nil {
		c.sess = &sessionData{mode: prompt.ModeExplain}
	}
	c.sess.selection = &sel
	c.triggerVisible = true
	c.surface.ShowTrigger(LabelsFor(c.language).Trigger)
}

// ClearSelection handles a collapsed or vanished selection. The trigger
// hides; an open card stays open.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hideTriggerLocked()
}

// Activate handles the trigger click or keyboard shortcut. The live
// selection, when valid, replaces the cached one; otherwise the cached
// selection is used; with neither, this is a no-op. The card opens in
// the loading state and a request goes out with the session's mode.
func (c *Controller) Activate(live *Selection) {
	c.mu.Lock()

	var sel *Selection
	if live != nil {
		text := strings.TrimSpace(live.Text)
		if utf8.RuneCountInString(text) >= MinSelectionLength {
			fresh := *live
			fresh.Text = text
			if c.sess == nil {
				c.sess = &sessionData{mode: prompt.ModeExplain}
			}
			c.sess.selection = &fresh
			sel = &fresh
		}
	}
	if sel == nil && c.sess != nil {
		sel = c.sess.selection
	}
	if sel == nil {
		c.mu.Unlock()
		return
	}

	c.hideTriggerLocked()

	ctxRecord := sel.Context
	c.sess.cachedContext = &ctxRecord

	labels := LabelsFor(c.language)
	if !c.cardOpen {
		c.cardOpen = true
		c.surface.OpenCard(labels)
	}
	c.surface.SetActiveMode(c.sess.mode)
	c.rendered = false
	c.surface.SetLoading(labels.Loading)

	req := explain.Request{
		Context:  ctxRecord,
		Mode:     c.sess.mode,
		Language: c.language,
	}
	gen := c.gen
	c.mu.Unlock()

	go c.fetch(req, gen)
}

// SwitchMode handles a mode button press. Same mode or no cached
// context is a no-op; otherwise the mode takes effect and a fresh
// explanation is fetched with the cached context, no follow-up carried.
func (c *Controller) SwitchMode(mode prompt.Mode) {
	c.mu.Lock()

	if !c.cardOpen || c.sess == nil || c.sess.cachedContext == nil || mode == c.sess.mode {
		c.mu.Unlock()
		return
	}

	c.sess.mode = mode
	c.surface.SetActiveMode(mode)
	c.rendered = false
	c.surface.SetLoading(LabelsFor(c.language).Loading)

	req := explain.Request{
		Context:  *c.sess.cachedContext,
		Mode:     mode,
		Language: c.language,
	}
	gen := c.gen
	c.mu.Unlock()

	go c.fetch(req, gen)
}

// SwitchLanguage handles a language change. Identical language or an
// update already in flight is a no-op. Labels update synchronously, the
// preference persists, and only then the last request is re-issued in
// the new language. The in-flight guard always clears, whatever fails.
func (c *Controller) SwitchLanguage(code string) {
	c.mu.Lock()

	if code == c.language || c.updatingLanguage {
		c.mu.Unlock()
		return
	}

	c.updatingLanguage = true
	c.language = code
	labels := LabelsFor(code)
	if c.cardOpen {
		c.surface.SetLabels(labels)
	}
	gen := c.gen
	c.mu.Unlock()

	go func() {
		defer func() {
			c.mu.Lock()
			c.updatingLanguage = false
			c.mu.Unlock()
		}()

		if c.prefs != nil {
			// Ordering matters: the preference is on disk before the
			// refreshed explanation is requested.
			c.prefs.SaveLanguage(code)
		}

		c.mu.Lock()
		if gen != c.gen || !c.cardOpen || c.sess == nil || c.sess.cachedContext == nil {
			c.mu.Unlock()
			return
		}
		c.rendered = false
		c.surface.SetLoading(labels.Loading)
		req := explain.Request{
			Context:  *c.sess.cachedContext,
			Mode:     c.sess.mode,
			Language: code,
		}
		c.mu.Unlock()

		c.fetch(req, gen)
	}()
}

// AskFollowUp handles a follow-up submission. Empty questions are a
// no-op. The input disables for the duration and re-enables on both
// success and failure; the card stays open for further questions.
func (c *Controller) AskFollowUp(question string) {
	c.mu.Lock()

	question = strings.TrimSpace(question)
	if question == "" || !c.cardOpen || c.sess == nil || c.sess.cachedContext == nil {
		c.mu.Unlock()
		return
	}

	c.surface.SetFollowUpBusy(true)
	c.rendered = false
	c.surface.SetLoading(LabelsFor(c.language).Loading)

	req := explain.Request{
		Context:          *c.sess.cachedContext,
		Mode:             c.sess.mode,
		Language:         c.language,
		FollowUpQuestion: question,
	}
	gen := c.gen
	c.mu.Unlock()

	go func() {
		text, err := c.client.Explain(context.Background(), req)

		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.gen || !c.cardOpen {
			return
		}
		c.surface.SetFollowUpBusy(false)
		if err != nil {
			c.surface.SetError(userMessage(err))
		} else {
			c.surface.SetContent(FormatExplanation(text))
		}
		c.rendered = true
	}()
}

// OnClose registers a cleanup function tied to the current card. All
// registered functions run exactly once when the card closes.
func (c *Controller) OnClose(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposers = append(c.disposers, fn)
}

// Close handles the close button or an outside click: the card
// detaches, the whole session resets, and per-card resources release.
// In-flight requests are not cancelled; their results are discarded.
func (c *Controller) Close() {
	c.mu.Lock()

	disposers := c.disposers
	c.disposers = nil
	c.sess = nil
	c.cardOpen = false
	c.rendered = false
	c.gen++
	c.hideTriggerLocked()
	c.surface.CloseCard()
	c.mu.Unlock()

	for _, fn := range disposers {
		fn()
	}
}

// fetch performs one explanation request and renders the outcome,
// unless the card it was issued for has since closed.
func (c *Controller) fetch(req explain.Request, gen int) {
	text, err := c.client.Explain(context.Background(), req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || !c.cardOpen {
		return
	}
	if err != nil {
		c.surface.SetError(userMessage(err))
	} else {
		c.surface.SetContent(FormatExplanation(text))
	}
	c.rendered = true
}

func (c *Controller) hideTriggerLocked() {
	c.triggerVisible = false
	c.surface.HideTrigger()
}

func (c *Controller) domainBlocked(domain string) bool {
	for _, g := range c.blocked {
		if g.Match(domain) {
			return true
		}
	}
	return false
}

// userMessage extracts the classified human-readable message from an
// explanation error. Raw transport errors never reach the surface.
func userMessage(err error) string {
	var e *explain.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Something went wrong. Please try again."
}

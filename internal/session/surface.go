package session

import "github.com/exply-app/exply/internal/prompt"

// Surface is the render target the controller drives: the floating
// trigger and the explanation card, however the host environment draws
// them. Implementations must tolerate calls after the card has been
// detached by treating them as no-ops.
type Surface interface {
	// ShowTrigger displays the floating trigger with the given label.
	ShowTrigger(label string)
	// HideTrigger removes the floating trigger.
	HideTrigger()

	// OpenCard attaches the explanation card with the given label set.
	OpenCard(labels Labels)
	// CloseCard detaches the card.
	CloseCard()

	// SetLabels updates every language-dependent label on the open card.
	SetLabels(labels Labels)
	// SetActiveMode highlights the active mode button.
	SetActiveMode(mode prompt.Mode)
	// SetLoading replaces the card content with a loading indicator.
	SetLoading(message string)
	// SetContent replaces the card content with rendered markup.
	SetContent(markup string)
	// SetError renders an error message in place of the content.
	SetError(message string)
	// SetFollowUpBusy disables or re-enables the follow-up input and
	// submit control.
	SetFollowUpBusy(busy bool)
}

// Package flow holds the multi-step screens of the app as small state
// machines. Each method is one user action; the returned view is what the
// screen renders next and carries any one-shot effects of that action.
package flow

import (
	"errors"

	"github.com/tanmald/plate-check-mvp/pkg/navigation"
)

var (
	ErrInvalidTransition = errors.New("action not allowed at the current step")
	ErrFlowBusy          = errors.New("another action is still running")
)

type (
	Toast struct {
		Description string `json:"description"`
		Variant     string `json:"variant,omitempty"`
		DurationMs  int    `json:"durationMs,omitempty"`
	}

	// Effects happen once, on the action that produced them. Later views do
	// not repeat them.
	Effects struct {
		Toast    *Toast                 `json:"toast,omitempty"`
		Navigate *navigation.Navigation `json:"navigate,omitempty"`
	}
)

func successToast(description string) *Toast {
	return &Toast{Description: description, Variant: "success", DurationMs: 2000}
}

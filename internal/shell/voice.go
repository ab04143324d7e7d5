package shell

import (
	"log/slog"
	"slices"

	"github.com/starford/lifeos/internal/loop"
)

// Voice is the floating voice assistant panel.
type Voice struct {
	env *Env

	listening  bool
	expanded   bool
	muted      bool
	transcript string
	capture    *loop.Timer
}

// VoiceView is the rendered voice panel.
type VoiceView struct {
	Listening  bool     `json:"listening"`
	Expanded   bool     `json:"expanded"`
	Muted      bool     `json:"muted"`
	Transcript string   `json:"transcript"`
	Commands   []string `json:"commands,omitempty"`
}

func newVoice(env *Env) *Voice {
	return &Voice{env: env}
}

// Listening reports whether a capture is in progress.
func (v *Voice) Listening() bool { return v.listening }

// Expanded reports whether the panel is open.
func (v *Voice) Expanded() bool { return v.expanded }

// Muted reports whether spoken replies are muted.
func (v *Voice) Muted() bool { return v.muted }

// Transcript is the last captured command.
func (v *Voice) Transcript() string { return v.transcript }

// ToggleListening starts a capture, opening the panel, or cancels the
// capture in progress.
func (v *Voice) ToggleListening() bool {
	if v.listening {
		v.listening = false
		v.capture.Stop()
		v.capture = nil
		return false
	}
	v.listening = true
	v.expanded = true
	v.capture = v.env.Scope.After(v.env.Voice, v.captured)
	return true
}

func (v *Voice) captured() {
	v.capture = nil
	v.listening = false
	text, err := v.env.Speech.Transcribe(v.env.Ctx)
	if err != nil {
		v.env.Logger.Warn("voice capture failed", slog.String("error", err.Error()))
		return
	}
	v.transcript = text
	v.env.emit(EventVoiceTranscript, map[string]string{"transcript": text})
}

// ToggleMute flips the mute flag.
func (v *Voice) ToggleMute() bool {
	v.muted = !v.muted
	return v.muted
}

// Close collapses the panel. A capture in progress keeps running.
func (v *Voice) Close() { v.expanded = false }

// Render returns the panel view. Quick commands are only listed while the
// panel is expanded.
func (v *Voice) Render() VoiceView {
	view := VoiceView{
		Listening:  v.listening,
		Expanded:   v.expanded,
		Muted:      v.muted,
		Transcript: v.transcript,
	}
	if v.expanded {
		view.Commands = slices.Clone(v.env.Commands)
	}
	return view
}

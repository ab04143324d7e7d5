// Package collab defines the external services a LifeOS page would call in
// a real product, together with the fixed stand-ins used in their place.
//
// The stand-ins never fail and never do real work: replies are a template,
// transcripts are a fixed string and every vault authentication succeeds.
package collab

import (
	"context"
	"errors"
	"fmt"
)

// ErrRejected is returned by an Authenticator that refuses a credential.
var ErrRejected = errors.New("authentication rejected")

// ChatBackend answers a user message.
type ChatBackend interface {
	Send(ctx context.Context, text string) (string, error)
}

// SpeechService captures speech and returns the final transcript.
type SpeechService interface {
	Transcribe(ctx context.Context) (string, error)
}

// Authenticator checks a vault credential for the given method.
type Authenticator interface {
	Authenticate(ctx context.Context, method, credential string) error
}

// Set groups the collaborators handed to pages.
type Set struct {
	Chat   ChatBackend
	Speech SpeechService // ChatHub dictation
	Voice  SpeechService // floating voice panel
	Auth   Authenticator
}

// Simulated returns the stand-in collaborators.
func Simulated() Set {
	return Set{
		Chat:   EchoChat{},
		Speech: FixedSpeech{Transcript: ChatTranscript},
		Voice:  FixedSpeech{Transcript: VoiceTranscript},
		Auth:   OpenVault{},
	}
}

// Fixed transcripts written by the simulated speech service.
const (
	ChatTranscript  = "Voice message transcribed"
	VoiceTranscript = "Voice command captured"
)

// EchoChat replies with a template built from the user's text.
type EchoChat struct{}

// Send implements ChatBackend.
func (EchoChat) Send(_ context.Context, text string) (string, error) {
	return fmt.Sprintf("I understand you said: \"%s\". How can I assist you further?", text), nil
}

// FixedSpeech always "hears" the same transcript.
type FixedSpeech struct {
	Transcript string
}

// Transcribe implements SpeechService.
func (s FixedSpeech) Transcribe(context.Context) (string, error) {
	return s.Transcript, nil
}

// OpenVault accepts every credential.
type OpenVault struct{}

// Authenticate implements Authenticator.
func (OpenVault) Authenticate(context.Context, string, string) error {
	return nil
}

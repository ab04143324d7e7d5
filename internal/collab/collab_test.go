package collab

import (
	"context"
	"testing"
)

func TestEchoChatTemplate(t *testing.T) {
	got, err := EchoChat{}.Send(context.Background(), `say "hi"`)
	if err != nil {
		t.Fatal(err)
	}
	want := `I understand you said: "say "hi"". How can I assist you further?`
	if got != want {
		t.Errorf("reply = %q, want %q", got, want)
	}
}

func TestSimulatedSet(t *testing.T) {
	s := Simulated()
	ctx := context.Background()

	if got, _ := s.Speech.Transcribe(ctx); got != ChatTranscript {
		t.Errorf("chat transcript = %q", got)
	}
	if got, _ := s.Voice.Transcribe(ctx); got != VoiceTranscript {
		t.Errorf("voice transcript = %q", got)
	}
	if err := s.Auth.Authenticate(ctx, "pin", ""); err != nil {
		t.Errorf("simulated auth rejected: %v", err)
	}
}

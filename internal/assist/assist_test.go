package assist

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_IntentNormalization(t *testing.T) {
	tests := []struct {
		name   string
		intent string
		want   Intent
	}{
		{name: "nlu", intent: "nlu", want: IntentNLU},
		{name: "legacy log_food alias", intent: "log_food", want: IntentNLU},
		{name: "vision", intent: "vision", want: IntentVision},
		{name: "speech", intent: "speech", want: IntentSpeech},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &Envelope{Intent: tt.intent, Payload: "I ate 2 eggs"}

			if tt.want == IntentVision {
				env.Image = "aGVsbG8="
			}

			if tt.want == IntentSpeech {
				env.Audio = "aGVsbG8="
			}

			got, err := Validate(env)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("got intent %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		env       Envelope
		wantField string
	}{
		{
			name:      "missing intent",
			env:       Envelope{Payload: "hello"},
			wantField: "intent",
		},
		{
			name:      "unknown intent",
			env:       Envelope{Intent: "summarize", Payload: "hello"},
			wantField: "intent",
		},
		{
			name:      "missing payload",
			env:       Envelope{Intent: "nlu"},
			wantField: "payload",
		},
		{
			name:      "whitespace-only payload",
			env:       Envelope{Intent: "nlu", Payload: "   \n\t  "},
			wantField: "payload",
		},
		{
			name:      "payload over 2000 chars",
			env:       Envelope{Intent: "nlu", Payload: strings.Repeat("a", 2001)},
			wantField: "payload",
		},
		{
			name:      "vision without any image",
			env:       Envelope{Intent: "vision", Payload: "what is this"},
			wantField: "image",
		},
		{
			name:      "speech without audio",
			env:       Envelope{Intent: "speech", Payload: "transcribe"},
			wantField: "audio",
		},
		{
			name: "too many images",
			env: Envelope{
				Intent:  "vision",
				Payload: "what is this",
				Image:   "a",
				Images:  []string{"b", "c", "d"},
			},
			wantField: "images",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(&tt.env)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}

			if verr.Field != tt.wantField {
				t.Errorf("got field %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestValidate_TrimsPayloadInPlace(t *testing.T) {
	env := &Envelope{Intent: "nlu", Payload: "  I ate 2 eggs  "}

	if _, err := Validate(env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if env.Payload != "I ate 2 eggs" {
		t.Errorf("payload not trimmed: %q", env.Payload)
	}
}

func TestValidate_PayloadAtBounds(t *testing.T) {
	// exactly 2000 characters is allowed
	env := &Envelope{Intent: "nlu", Payload: strings.Repeat("a", 2000)}
	if _, err := Validate(env); err != nil {
		t.Errorf("2000-char payload rejected: %v", err)
	}

	// a single character is allowed
	env = &Envelope{Intent: "nlu", Payload: "a"}
	if _, err := Validate(env); err != nil {
		t.Errorf("1-char payload rejected: %v", err)
	}
}

func TestValidate_PayloadBoundCountsRunesNotBytes(t *testing.T) {
	// 2000 four-byte characters is 8000 bytes but still within the limit
	env := &Envelope{Intent: "nlu", Payload: strings.Repeat("🍌", 2000)}
	if _, err := Validate(env); err != nil {
		t.Errorf("2000-rune multi-byte payload rejected: %v", err)
	}

	env = &Envelope{Intent: "nlu", Payload: strings.Repeat("🍌", 2001)}
	if _, err := Validate(env); err == nil {
		t.Error("2001-rune payload should be rejected")
	}
}

func TestAllImages_MergesSingleAndList(t *testing.T) {
	tests := []struct {
		name string
		env  Envelope
		want int
	}{
		{name: "none", env: Envelope{}, want: 0},
		{name: "single only", env: Envelope{Image: "a"}, want: 1},
		{name: "list only", env: Envelope{Images: []string{"a", "b"}}, want: 2},
		{name: "both", env: Envelope{Image: "a", Images: []string{"b", "c"}}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.env.AllImages()); got != tt.want {
				t.Errorf("got %d images, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildUpstreamRequest_RejectsModalityViolations(t *testing.T) {
	// the builder revalidates: even a bug upstream of it must not produce
	// a provider call without the required media
	_, err := BuildUpstreamRequest(IntentVision, &Envelope{Payload: "x"})
	if err == nil {
		t.Error("vision without image should fail")
	}

	_, err = BuildUpstreamRequest(IntentSpeech, &Envelope{Payload: "x"})
	if err == nil {
		t.Error("speech without audio should fail")
	}

	_, err = BuildUpstreamRequest(Intent("bogus"), &Envelope{Payload: "x"})
	if err == nil {
		t.Error("unknown intent should fail")
	}
}

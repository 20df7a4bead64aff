package assist

import (
	"strings"
	"unicode/utf8"

	"codeberg.org/nutrio/server/internal/gemini"
)

// checks the envelope against the request schema, trims the payload in place,
// and returns the normalized intent. Validation is fully local: nothing here
// touches the network, so a malformed request never reaches the provider.
func Validate(env *Envelope) (Intent, error) {
	var intent Intent

	switch env.Intent {
	case string(IntentNLU), legacyIntentLogFood:
		intent = IntentNLU
	case string(IntentVision):
		intent = IntentVision
	case string(IntentSpeech):
		intent = IntentSpeech
	case "":
		return "", &ValidationError{Field: "intent", Reason: "is required"}
	default:
		return "", &ValidationError{Field: "intent", Reason: "must be one of nlu, vision, speech"}
	}

	env.Payload = strings.TrimSpace(env.Payload)
	if env.Payload == "" {
		return "", &ValidationError{Field: "payload", Reason: "is required"}
	}

	// the limit is in characters, not bytes: multi-byte text counts by rune
	if utf8.RuneCountInString(env.Payload) > payloadMaxLen {
		return "", &ValidationError{Field: "payload", Reason: "must be at most 2000 characters"}
	}

	if len(env.AllImages()) > maxImages {
		return "", &ValidationError{Field: "images", Reason: "at most 3 images are allowed"}
	}

	switch intent {
	case IntentVision:
		if len(env.AllImages()) == 0 {
			return "", &ValidationError{Field: "image", Reason: "vision requests require at least one image"}
		}
	case IntentSpeech:
		if env.Audio == "" {
			return "", &ValidationError{Field: "audio", Reason: "speech requests require audio"}
		}
	}

	return intent, nil
}

// builds the provider request for a validated envelope. Pure: the prompt text
// and generation parameters live in prompt.go as data, keyed by intent.
func BuildUpstreamRequest(intent Intent, env *Envelope) (gemini.GenerateContentRequest, error) {
	switch intent {
	case IntentNLU:
		return buildNLURequest(env.Payload), nil

	case IntentVision:
		images := env.AllImages()
		if len(images) == 0 {
			return gemini.GenerateContentRequest{}, &ValidationError{Field: "image", Reason: "vision requests require at least one image"}
		}

		return buildVisionRequest(env.Payload, images), nil

	case IntentSpeech:
		if env.Audio == "" {
			return gemini.GenerateContentRequest{}, &ValidationError{Field: "audio", Reason: "speech requests require audio"}
		}

		return buildSpeechRequest(env.Payload, env.Audio, env.AudioMimeType), nil

	default:
		return gemini.GenerateContentRequest{}, &ValidationError{Field: "intent", Reason: "must be one of nlu, vision, speech"}
	}
}

package assist

import "fmt"

// the request modality after alias normalization
type Intent string

const (
	IntentNLU    Intent = "nlu"
	IntentVision Intent = "vision"
	IntentSpeech Intent = "speech"
)

// accepted by older app builds; normalized to nlu
const legacyIntentLogFood = "log_food"

const (
	payloadMaxLen = 2000
	maxImages     = 3
)

// the transient per-call request body from the mobile app
type Envelope struct {
	Intent        string   `json:"intent"`
	Payload       string   `json:"payload"`
	Image         string   `json:"image,omitempty"`
	Images        []string `json:"images,omitempty"`
	Audio         string   `json:"audio,omitempty"`
	AudioMimeType string   `json:"audioMimeType,omitempty"`
}

// merges the single-image and image-list fields into one slice
func (e *Envelope) AllImages() []string {
	images := make([]string, 0, len(e.Images)+1)
	if e.Image != "" {
		images = append(images, e.Image)
	}

	images = append(images, e.Images...)

	return images
}

// a schema violation, carrying the offending field for the 400 details payload
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

package assist

import (
	"fmt"

	"codeberg.org/nutrio/server/internal/gemini"
)

// Prompt text and generation parameters are data, not scattered string
// concatenation. Extraction and transcription are deterministic tasks, so
// temperatures stay low.

const extractionPromptTemplate = `You are the intent extraction engine of a nutrition tracking app.

Analyze the user's message and extract every supported intent you find.

Supported intent types and their parameters:
- LOG_FOOD: { "description": string, "quantity": number|null, "unit": string|null, "meal": "breakfast"|"lunch"|"dinner"|"snack"|null }
- LOG_WORKOUT: { "activity": string, "duration_minutes": number|null, "intensity": "low"|"medium"|"high"|null }
- LOG_WEIGHT: { "weight": number, "unit": "kg"|"lb" }
- LOG_CYCLE: { "event": string, "date": string|null }
- ADD_PANTRY: { "item": string, "quantity": number|null, "unit": string|null }

Rules:
- Include a confidence score between 0 and 1 for each extracted intent.
- Omit intents you are not reasonably confident about.
- Respond with JSON only, no prose and no markdown fences.
- The response must match this exact shape:
{"intents": [{"type": string, "confidence": number, "parameters": {}}]}

User message: %s`

const defaultVisionInstruction = "Identify the food in the image and estimate its macros " +
	"(calories, protein, carbs, fat) per visible portion. Respond with your best estimate " +
	"even if uncertain, and note the uncertainty."

const defaultSpeechInstruction = "Transcribe the audio verbatim. Respond with the transcription " +
	"only, no commentary."

// fallback when the app does not report what it recorded with
const defaultAudioMimeType = "audio/mp4"

// cameras on the supported devices produce JPEG frames
const imageMimeType = "image/jpeg"

var (
	nluGeneration = gemini.GenerationConfig{
		Temperature:      0.1,
		MaxOutputTokens:  1024,
		ResponseMimeType: "application/json",
	}

	visionGeneration = gemini.GenerationConfig{
		Temperature:     0.2,
		MaxOutputTokens: 2048,
	}

	speechGeneration = gemini.GenerationConfig{
		Temperature:     0.1,
		MaxOutputTokens: 1024,
	}
)

// embeds the raw user payload in the extraction template
func buildNLURequest(payload string) gemini.GenerateContentRequest {
	cfg := nluGeneration

	return gemini.GenerateContentRequest{
		Contents: []gemini.Content{{
			Role: "user",
			Parts: []gemini.Part{{
				Text: fmt.Sprintf(extractionPromptTemplate, payload),
			}},
		}},
		GenerationConfig: &cfg,
	}
}

// attaches each image inline; the payload, when present, replaces the default instruction
func buildVisionRequest(payload string, images []string) gemini.GenerateContentRequest {
	instruction := payload
	if instruction == "" {
		instruction = defaultVisionInstruction
	}

	parts := make([]gemini.Part, 0, len(images)+1)
	parts = append(parts, gemini.Part{Text: instruction})

	for _, img := range images {
		parts = append(parts, gemini.Part{
			InlineData: &gemini.InlineData{
				MimeType: imageMimeType,
				Data:     img,
			},
		})
	}

	cfg := visionGeneration

	return gemini.GenerateContentRequest{
		Contents:         []gemini.Content{{Role: "user", Parts: parts}},
		GenerationConfig: &cfg,
	}
}

// attaches the audio inline with the caller's MIME type or the default
func buildSpeechRequest(payload, audio, mimeType string) gemini.GenerateContentRequest {
	instruction := payload
	if instruction == "" {
		instruction = defaultSpeechInstruction
	}

	if mimeType == "" {
		mimeType = defaultAudioMimeType
	}

	cfg := speechGeneration

	return gemini.GenerateContentRequest{
		Contents: []gemini.Content{{
			Role: "user",
			Parts: []gemini.Part{
				{Text: instruction},
				{InlineData: &gemini.InlineData{MimeType: mimeType, Data: audio}},
			},
		}},
		GenerationConfig: &cfg,
	}
}

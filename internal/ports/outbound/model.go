package outbound

import "context"

// ImageInput is an inline image passed to the vision model.
type ImageInput struct {
	Data     []byte
	MimeType string
}

// ModelClient is the opaque generative-model collaborator. The response
// is free-form text that may contain a JSON fragment, prose, or fenced
// code; callers run it through the AI response parser before use.
type ModelClient interface {
	GenerateText(ctx context.Context, prompt string, image *ImageInput) (string, error)
}

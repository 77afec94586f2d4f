// Package gemini provides the Google Gemini REST client implementing
// the ModelClient port.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tastevine/v1/internal/infrastructure/config"
	"github.com/tastevine/v1/internal/ports/outbound"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client calls the Gemini generateContent API.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a new Gemini client from configuration.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  cfg.AI.GeminiKey,
		model:   cfg.AI.GeminiModel,
		client: &http.Client{
			// Slightly above the service deadline so cancellation
			// comes from the request context, not the transport.
			Timeout: cfg.AITimeout() + 5*time.Second,
		},
		logger: logger.Named("gemini-client"),
	}
}

// Gemini API structures
type generateRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateText sends one prompt, with an optional inline image, and
// returns the model's text reply.
func (c *Client) GenerateText(ctx context.Context, prompt string, image *outbound.ImageInput) (string, error) {
	parts := []requestPart{{Text: prompt}}
	if image != nil {
		parts = append(parts, requestPart{
			InlineData: &inlineData{
				MimeType: image.MimeType,
				Data:     base64.StdEncoding.EncodeToString(image.Data),
			},
		})
	}

	body, err := json.Marshal(generateRequest{
		Contents: []requestContent{{Parts: parts}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var result generateResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := resp.Status
		if result.Error != nil {
			message = result.Error.Message
		}
		c.logger.Error("gemini request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("message", message))
		return "", fmt.Errorf("gemini request failed: %s", message)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	c.logger.Debug("gemini request completed",
		zap.String("model", c.model),
		zap.Duration("duration", time.Since(start)),
		zap.String("finish_reason", result.Candidates[0].FinishReason))

	var text bytes.Buffer
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}

var _ outbound.ModelClient = (*Client)(nil)

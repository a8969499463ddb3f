package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"medhub-backend/internal/llm"
)

const defaultModel = "gemini-1.5-flash"

// Client extracts structured data from document text via the Gemini API.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// New creates a Gemini-backed extraction client.
func New(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if modelName == "" {
		modelName = defaultModel
	}
	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	return &Client{client: client, model: model}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// ExtractMedicalData sends the document text with the extraction prompt
// and parses the JSON response.
func (c *Client) ExtractMedicalData(ctx context.Context, text string) (llm.Extraction, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(llm.ExtractionPrompt+text))
	if err != nil {
		return llm.Extraction{}, fmt.Errorf("%w: %v", llm.ErrExtraction, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return llm.Extraction{}, fmt.Errorf("%w: empty response", llm.ErrExtraction)
	}

	var raw strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			raw.WriteString(string(txt))
		}
	}

	return parseExtraction(raw.String())
}

func parseExtraction(raw string) (llm.Extraction, error) {
	var payload struct {
		DocumentType string         `json:"document_type"`
		Fields       map[string]any `json:"fields"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &payload); err != nil {
		return llm.Extraction{}, fmt.Errorf("%w: decode response: %v", llm.ErrExtraction, err)
	}
	if payload.DocumentType == "" {
		payload.DocumentType = "other"
	}
	return llm.Extraction{DocumentType: payload.DocumentType, Fields: payload.Fields}, nil
}

var _ llm.Client = (*Client)(nil)

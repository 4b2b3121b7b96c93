// Package suggest wraps the Gemini generateContent API for listing
// suggestions and banner image generation. The boundary is best effort:
// every failure (missing key, transport error, malformed payload) degrades
// to "no suggestion" and is never surfaced as a core error.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"reversa-auctions/internal/models"
	"reversa-auctions/utils"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"

	suggestionModel = "gemini-3-pro-preview"
	imageModel      = "gemini-2.5-flash-image"
)

// Client calls the Gemini API. A client with an empty API key is valid and
// always answers "no suggestion".
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API endpoint, for tests
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Gemini client
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire types for the generateContent request/response

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// rawSuggestion matches the camelCase schema requested from the model
type rawSuggestion struct {
	SuggestedTitle       string  `json:"suggestedTitle"`
	SuggestedDescription string  `json:"suggestedDescription"`
	EstimatedMarketPrice float64 `json:"estimatedMarketPrice"`
	Category             string  `json:"category"`
	ItemCount            int     `json:"itemCount"`
	Origin               string  `json:"origin"`
	Condition            string  `json:"condition"`
}

var suggestionSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"suggestedTitle": {"type": "STRING"},
		"suggestedDescription": {"type": "STRING"},
		"estimatedMarketPrice": {"type": "NUMBER"},
		"category": {"type": "STRING"},
		"itemCount": {"type": "INTEGER"},
		"origin": {"type": "STRING"},
		"condition": {"type": "STRING"}
	},
	"required": ["suggestedTitle", "suggestedDescription", "estimatedMarketPrice", "category", "itemCount", "origin", "condition"]
}`)

const suggestionPrompt = `You are the chief appraiser of a reverse-logistics auction house. Analyze the lot description below and extract or suggest the listing fields.
Lot description: %q

Business rules:
1. Title: must be catchy and include the approximate item count.
2. Suggested price: an opening bid of roughly 30%% to 40%% of the estimated market value when new.
3. Category: pick the best fit.
4. Condition: judge whether the lot is open box, as-is or new.`

// SuggestListing asks the model for structured listing fields based on a
// free-text lot description. It returns nil whenever no usable suggestion
// could be produced.
func (c *Client) SuggestListing(ctx context.Context, userInput string) *models.AISuggestion {
	if c.apiKey == "" || userInput == "" {
		return nil
	}

	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(suggestionPrompt, userInput)}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   suggestionSchema,
		},
	}

	resp, err := c.generate(ctx, suggestionModel, req)
	if err != nil {
		utils.Warn("suggest: listing suggestion failed", map[string]any{"error": err.Error()})
		return nil
	}

	text := firstText(resp)
	if text == "" {
		return nil
	}

	var raw rawSuggestion
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		utils.Warn("suggest: malformed suggestion payload", map[string]any{"error": err.Error()})
		return nil
	}

	return &models.AISuggestion{
		SuggestedTitle:       raw.SuggestedTitle,
		SuggestedDescription: raw.SuggestedDescription,
		EstimatedMarketPrice: raw.EstimatedMarketPrice,
		Category:             raw.Category,
		ItemCount:            raw.ItemCount,
		Origin:               raw.Origin,
		Condition:            raw.Condition,
	}
}

// GenerateBannerImage asks the image model for a site banner and returns it
// as a data URL, or empty when generation failed.
func (c *Client) GenerateBannerImage(ctx context.Context, theme string) string {
	if c.apiKey == "" || theme == "" {
		return ""
	}

	prompt := fmt.Sprintf("High-quality photorealistic corporate banner for a logistics and auction website. Theme: %s. Professional lighting, 16:9 aspect ratio, clean design without text.", theme)
	req := generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}

	resp, err := c.generate(ctx, imageModel, req)
	if err != nil {
		utils.Warn("suggest: banner image generation failed", map[string]any{"error": err.Error()})
		return ""
	}

	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				return "data:image/png;base64," + p.InlineData.Data
			}
		}
	}
	return ""
}

func (c *Client) generate(ctx context.Context, model string, payload generateRequest) (*generateResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call model %s: %w", model, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("call model %s: unexpected status %d", model, httpResp.StatusCode)
	}

	var resp generateResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}

func firstText(resp *generateResponse) string {
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"

// GeminiConfig configures the direct HTTP Gemini client.
type GeminiConfig struct {
	APIKey            string
	Model             string
	SystemInstruction string
	Tools             []FunctionDeclaration
	Temperature       *float64
	Endpoint          string // override for tests; empty means production
}

// GeminiClient is a direct HTTP client for the Google Gemini API.
type GeminiClient struct {
	cfg    GeminiConfig
	client *http.Client
}

// NewGeminiClient creates a new Gemini API client.
func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	return &GeminiClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// Name returns the provider name.
func (g *GeminiClient) Name() string {
	return "gemini"
}

// Generate sends a non-streaming generateContent request.
func (g *GeminiClient) Generate(ctx context.Context, history []Turn, userMessage string) (*Result, error) {
	body := g.buildRequestBody(history, userMessage)
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		g.cfg.Endpoint, g.cfg.Model, url.QueryEscape(g.cfg.APIKey))

	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result geminiAPIResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return toResult(&result), nil
}

func (g *GeminiClient) buildRequestBody(history []Turn, userMessage string) map[string]any {
	contents := make([]Turn, 0, len(history)+1)
	contents = append(contents, history...)
	contents = append(contents, UserTurn(userMessage))

	body := map[string]any{
		"contents": contents,
	}

	if g.cfg.SystemInstruction != "" {
		body["systemInstruction"] = map[string]any{
			"parts": []Part{{Text: g.cfg.SystemInstruction}},
		}
	}

	if len(g.cfg.Tools) > 0 {
		body["tools"] = []map[string]any{
			{"functionDeclarations": g.cfg.Tools},
		}
	}

	if g.cfg.Temperature != nil {
		body["generationConfig"] = map[string]any{
			"temperature": *g.cfg.Temperature,
		}
	}

	return body
}

func toResult(resp *geminiAPIResponse) *Result {
	var text strings.Builder
	var calls []FunctionCall

	if len(resp.Candidates) > 0 {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text != "" {
				text.WriteString(part.Text)
			}
			if part.FunctionCall != nil {
				calls = append(calls, FunctionCall{
					Name: part.FunctionCall.Name,
					Args: part.FunctionCall.Args,
				})
			}
		}
	}

	return &Result{
		Text:          text.String(),
		FunctionCalls: calls,
	}
}

// API response structures

type geminiAPIResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content struct {
		Parts []geminiPart `json:"parts"`
		Role  string       `json:"role"`
	} `json:"content"`
	FinishReason string `json:"finishReason"`
}

type geminiPart struct {
	Text         string `json:"text,omitempty"`
	FunctionCall *struct {
		Name string         `json:"name"`
		Args map[string]any `json:"args"`
	} `json:"functionCall,omitempty"`
}

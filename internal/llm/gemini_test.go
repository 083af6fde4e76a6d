package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	temp := 0.7
	return NewGeminiClient(GeminiConfig{
		APIKey:            "test-key",
		Model:             "gemini-test",
		SystemInstruction: "You are a helpful strategist.",
		Tools: []FunctionDeclaration{{
			Name: "bookEnquiry",
			Parameters: &Schema{
				Type: "object",
				Properties: map[string]Schema{
					"fullName":    {Type: "string"},
					"email":       {Type: "string"},
					"projectType": {Type: "string"},
					"details":     {Type: "string"},
				},
				Required: []string{"fullName", "email", "projectType", "details"},
			},
		}},
		Temperature: &temp,
		Endpoint:    srv.URL,
	})
}

func TestGeminiGenerate_RequestShape(t *testing.T) {
	var captured map[string]any
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Contains(t, r.URL.Path, "gemini-test:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "Welcome to Upliftr."}}}},
			},
		})
	})

	history := []Turn{UserTurn("Hi"), ModelTurn("Hello!")}
	result, err := client.Generate(context.Background(), history, "Tell me about your services")
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Upliftr.", result.Text)
	assert.Empty(t, result.FunctionCalls)

	// History plus the in-flight user message.
	contents := captured["contents"].([]any)
	require.Len(t, contents, 3)
	last := contents[2].(map[string]any)
	assert.Equal(t, "user", last["role"])

	sys := captured["systemInstruction"].(map[string]any)
	parts := sys["parts"].([]any)
	assert.Equal(t, "You are a helpful strategist.", parts[0].(map[string]any)["text"])

	tools := captured["tools"].([]any)
	require.Len(t, tools, 1)
	decls := tools[0].(map[string]any)["functionDeclarations"].([]any)
	require.Len(t, decls, 1)
	assert.Equal(t, "bookEnquiry", decls[0].(map[string]any)["name"])

	gen := captured["generationConfig"].(map[string]any)
	assert.InDelta(t, 0.7, gen["temperature"].(float64), 1e-9)
}

func TestGeminiGenerate_FunctionCall(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"functionCall": map[string]any{
						"name": "bookEnquiry",
						"args": map[string]any{
							"fullName":    "Jane Doe",
							"email":       "jane@x.com",
							"projectType": "Production Shoot",
							"details":     "Need a product video",
						},
					}},
				}}},
			},
		})
	})

	result, err := client.Generate(context.Background(), nil, "Book it")
	require.NoError(t, err)
	require.Len(t, result.FunctionCalls, 1)

	call := result.FunctionCalls[0]
	assert.Equal(t, "bookEnquiry", call.Name)
	assert.Equal(t, "Jane Doe", call.Args["fullName"])
	assert.Equal(t, "Production Shoot", call.Args["projectType"])
}

func TestGeminiGenerate_MixedTextAndCall(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"text": "Booking now."},
					{"functionCall": map[string]any{"name": "bookEnquiry", "args": map[string]any{}}},
				}}},
			},
		})
	})

	result, err := client.Generate(context.Background(), nil, "go")
	require.NoError(t, err)
	assert.Equal(t, "Booking now.", result.Text)
	assert.Len(t, result.FunctionCalls, 1)
}

func TestGeminiGenerate_APIError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom"}}`))
	})

	_, err := client.Generate(context.Background(), nil, "Hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (500)")
}

func TestGeminiGenerate_EmptyCandidates(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})

	result, err := client.Generate(context.Background(), nil, "Hi")
	require.NoError(t, err)
	assert.Empty(t, result.Text)
	assert.Empty(t, result.FunctionCalls)
}

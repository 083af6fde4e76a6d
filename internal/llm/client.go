// Package llm defines the language-model gateway used by the chat assistant.
//
// The gateway is stateless: every call carries the full conversation history,
// and the result is either free text or one or more function calls. Retry and
// backoff are deliberately the caller's problem — a failed call surfaces as a
// single error and nothing else.
package llm

import "context"

// Role constants for conversation turns, in the provider's exchange format.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Part is a single content fragment within a turn.
type Part struct {
	Text string `json:"text"`
}

// Turn is one entry in the gateway-facing conversation history.
type Turn struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// UserTurn builds a user-role turn from plain text.
func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Parts: []Part{{Text: text}}}
}

// ModelTurn builds a model-role turn from plain text.
func ModelTurn(text string) Turn {
	return Turn{Role: RoleModel, Parts: []Part{{Text: text}}}
}

// Schema is a JSON-schema fragment for function parameters.
type Schema struct {
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Properties  map[string]Schema `json:"properties,omitempty"`
	Required    []string          `json:"required,omitempty"`
}

// FunctionDeclaration describes a function the model may invoke.
type FunctionDeclaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// FunctionCall is a structured invocation emitted by the model.
type FunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// Result is the outcome of a single generate call: free text, function
// calls, or both. Either field may be empty.
type Result struct {
	Text          string
	FunctionCalls []FunctionCall
}

// Client is the interface the assistant talks to.
type Client interface {
	// Generate sends history plus one new user message and returns the
	// model's reply. The in-flight message is part of the call contents
	// only — the caller owns history bookkeeping.
	Generate(ctx context.Context, history []Turn, userMessage string) (*Result, error)

	// Name returns the provider name.
	Name() string
}

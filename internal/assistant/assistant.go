// Package assistant implements the conversational booking agent: a
// per-session dialogue state machine over the language-model gateway.
package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/upliftr/upliftr/internal/booking"
	"github.com/upliftr/upliftr/internal/llm"
	"github.com/upliftr/upliftr/internal/logging"
)

var (
	// ErrEmptyMessage rejects empty or whitespace-only input.
	ErrEmptyMessage = errors.New("empty message")

	// ErrBusy rejects input while a gateway call is outstanding.
	ErrBusy = errors.New("a reply is already pending")
)

// TurnResult is the outcome of one user turn.
type TurnResult struct {
	Replies   []Message `json:"replies"`         // bot messages produced this turn
	Booked    bool      `json:"booked"`          // session booking flag after the turn
	BookedNow bool      `json:"bookedNow"`       // a booking fired during this turn
}

// Assistant drives dialogue sessions. It is stateless across sessions;
// all conversation state lives on the Session passed to Send.
type Assistant struct {
	client llm.Client
	sink   *booking.Sink
	log    *logging.Logger
}

// New creates an assistant over the given gateway client and booking sink.
func New(client llm.Client, sink *booking.Sink, log *logging.Logger) *Assistant {
	return &Assistant{
		client: client,
		sink:   sink,
		log:    log.Sub("assistant"),
	}
}

// Send processes one user turn against the session state machine.
//
// Empty input and input while a call is outstanding are rejected with no
// state change. Once the session is booked, every turn gets a fixed
// courtesy reply without contacting the gateway; the booked flag is never
// cleared. A gateway failure degrades to a fixed apology and leaves the
// gateway-facing history untouched, so a retried message will not
// duplicate the failed exchange.
func (a *Assistant) Send(ctx context.Context, sess *Session, input string) (*TurnResult, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyMessage
	}

	sess.mu.Lock()
	if sess.awaiting {
		sess.mu.Unlock()
		return nil, ErrBusy
	}

	if sess.booked {
		reply := Message{Role: RoleBot, Text: bookedCourtesyReply}
		sess.messages = append(sess.messages, reply)
		sess.touch()
		sess.mu.Unlock()
		return &TurnResult{Replies: []Message{reply}, Booked: true}, nil
	}

	sess.messages = append(sess.messages, Message{Role: RoleUser, Text: input})
	sess.awaiting = true
	sess.touch()
	history := make([]llm.Turn, len(sess.history))
	copy(history, sess.history)
	sess.mu.Unlock()

	result, err := a.client.Generate(ctx, history, input)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.awaiting = false
	sess.touch()

	if err != nil {
		a.log.Error().Err(err).Str("session", sess.ID).Msg("gateway call failed")
		reply := Message{Role: RoleBot, Text: apologyReply}
		sess.messages = append(sess.messages, reply)
		// History deliberately untouched: the failed exchange is dropped
		// from gateway context.
		return &TurnResult{Replies: []Message{reply}}, nil
	}

	// The in-flight user message enters history only once a response is
	// obtained, keeping failed exchanges out of gateway context.
	sess.history = append(sess.history, llm.UserTurn(input))

	var replies []Message
	bookedNow := false

	if len(result.FunctionCalls) > 0 {
		for _, call := range result.FunctionCalls {
			switch call.Name {
			case bookEnquiryTool:
				req, err := booking.FromArgs(call.Args)
				if err != nil {
					a.log.Warn().Err(err).Str("session", sess.ID).Msg("rejecting malformed bookEnquiry call")
					continue
				}

				a.sink.Record(ctx, sess.ID, req)
				sess.booked = true
				bookedNow = true

				text := confirmationMessage(req.FullName, req.ProjectType, req.Email)
				reply := Message{Role: RoleBot, Text: text}
				sess.messages = append(sess.messages, reply)
				sess.history = append(sess.history, llm.ModelTurn(text))
				replies = append(replies, reply)
			default:
				// Unrecognized tool names are a forward-compatible no-op.
				a.log.Debug().Str("tool", call.Name).Msg("ignoring unrecognized tool call")
			}
		}
	} else {
		text := result.Text
		if text == "" {
			text = fallbackReply
		}
		reply := Message{Role: RoleBot, Text: text}
		sess.messages = append(sess.messages, reply)
		sess.history = append(sess.history, llm.ModelTurn(text))
		replies = append(replies, reply)
	}

	return &TurnResult{Replies: replies, Booked: sess.booked, BookedNow: bookedNow}, nil
}

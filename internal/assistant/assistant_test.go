package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upliftr/upliftr/internal/booking"
	"github.com/upliftr/upliftr/internal/llm"
	"github.com/upliftr/upliftr/internal/logging"
	"github.com/upliftr/upliftr/internal/store"
)

func silentLog() *logging.Logger {
	return logging.New(nil, "silent")
}

func testSink(t *testing.T) (*booking.Sink, *store.EnquiryStore) {
	t.Helper()
	db, err := store.Open(":memory:", silentLog())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	enquiries := store.NewEnquiryStore(db)
	return booking.NewSink(enquiries, nil, silentLog()), enquiries
}

func testAssistant(t *testing.T, mock llm.Client) (*Assistant, *store.EnquiryStore) {
	t.Helper()
	sink, enquiries := testSink(t)
	return New(mock, sink, silentLog()), enquiries
}

func bookingCall() llm.FunctionCall {
	return llm.FunctionCall{
		Name: "bookEnquiry",
		Args: map[string]any{
			"fullName":    "Jane Doe",
			"email":       "jane@x.com",
			"projectType": "Production Shoot",
			"details":     "Need a product video",
		},
	}
}

// --- Plain text exchange ---

func TestSend_PlainText(t *testing.T) {
	mock := &llm.MockClient{
		GenerateFunc: func(ctx context.Context, history []llm.Turn, msg string) (*llm.Result, error) {
			assert.Empty(t, history)
			assert.Equal(t, "Hi", msg)
			return &llm.Result{Text: "Welcome! How can we elevate your brand?"}, nil
		},
	}

	a, _ := testAssistant(t, mock)
	sess := NewSession()

	result, err := a.Send(context.Background(), sess, "Hi")
	require.NoError(t, err)
	require.Len(t, result.Replies, 1)
	assert.Equal(t, RoleBot, result.Replies[0].Role)
	assert.Equal(t, "Welcome! How can we elevate your brand?", result.Replies[0].Text)
	assert.False(t, result.Booked)

	// Visible log: welcome seed + user + bot.
	msgs := sess.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, RoleUser, msgs[1].Role)
	assert.Equal(t, "Hi", msgs[1].Text)

	// Gateway history grows by exactly two entries (user, model).
	history := sess.History()
	require.Len(t, history, 2)
	assert.Equal(t, llm.RoleUser, history[0].Role)
	assert.Equal(t, llm.RoleModel, history[1].Role)

	assert.False(t, sess.Awaiting())
	assert.False(t, sess.Booked())
}

func TestSend_HistoryParityAcrossTurns(t *testing.T) {
	turn := 0
	mock := &llm.MockClient{
		GenerateFunc: func(ctx context.Context, history []llm.Turn, msg string) (*llm.Result, error) {
			// Each completed exchange contributes two history entries.
			assert.Len(t, history, 2*turn)
			turn++
			return &llm.Result{Text: fmt.Sprintf("reply %d", turn)}, nil
		},
	}

	a, _ := testAssistant(t, mock)
	sess := NewSession()

	for i := 0; i < 3; i++ {
		_, err := a.Send(context.Background(), sess, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	assert.Len(t, sess.History(), 6)
}

func TestSend_FallbackWhenNoText(t *testing.T) {
	mock := &llm.MockClient{
		GenerateFunc: func(ctx context.Context, history []llm.Turn, msg string) (*llm.Result, error) {
			return &llm.Result{}, nil
		},
	}

	a, _ := testAssistant(t, mock)
	sess := NewSession()

	result, err := a.Send(context.Background(), sess, "Hello?")
	require.NoError(t, err)
	require.Len(t, result.Replies, 1)
	assert.Equal(t, fallbackReply, result.Replies[0].Text)

	// The fallback is what enters history too.
	history := sess.History()
	require.Len(t, history, 2)
	assert.Equal(t, fallbackReply, history[1].Parts[0].Text)
}

// --- Input rejection ---

func TestSend_EmptyInput(t *testing.T) {
	mock := &llm.MockClient{
		GenerateFunc: func(ctx context.Context, history []llm.Turn, msg string) (*llm.Result, error) {
			t.Fatal("gateway must not be called for empty input")
			return nil, nil
		},
	}

	a, _ := testAssistant(t, mock)
	sess := NewSession()

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := a.Send(context.Background(), sess, input)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}

	assert.Len(t, sess.Messages(), 1) // welcome seed only
	assert.Empty(t, sess.History())
	assert.False(t, sess.Booked())
}

func TestSend_RejectsWhileAwaiting(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	mock := &llm.MockClient{
		GenerateFunc: func(ctx context.Context, history []llm.Turn, msg string) (*llm.Result, error) {
			close(entered)
			<-release
			return &llm.Result{Text: "done"}, nil
		},
	}

	a, _ := testAssistant(t, mock)
	sess := NewSession()

	errs := make(chan error, 1)
	go func() {
		_, err := a.Send(context.Background(), sess, "first")
		errs <- err
	}()

	<-entered
	_, err := a.Send(context.Background(), sess, "second")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-errs)

	// Only the first exchange made it through.
	assert.Len(t, sess.History(), 2)
}

// --- Gateway failure ---

func TestSend_GatewayFailure(t *testing.T) {
	mock := &llm.MockClient{
		GenerateFunc: func(ctx context.Context, history []llm.Turn, msg string) (*llm.Result, error) {
			return nil, errors.New("network down")
		},
	}

	a, enquiries := testAssistant(t, mock)
	sess := NewSession()

	result, err := a.Send(context.Background(), sess, "Hi")
	require.NoError(t, err)
	require.Len(t, result.Replies, 1)
	assert.Equal(t, apologyReply, result.Replies[0].Text)
	assert.False(t, result.Booked)

	// The failed exchange is dropped from gateway context entirely.
	assert.Empty(t, sess.History())
	assert.False(t, sess.Awaiting())
	assert.False(t, sess.Booked())

	n, err := enquiries.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSend_RetryAfterFailureDoesNotDuplicate(t *testing.T) {
	fail := true
	mock := &llm.MockClient{
		GenerateFunc: func(ctx context.Context, history []llm.Turn, msg string) (*llm.Result, error) {
			if fail {
				fail = false
				return nil, errors.New("transient")
			}
			assert.Empty(t, history, "failed exchange must not appear in history")
			return &llm.Result{Text: "ok now"}, nil
		},
	}

	a, _ := testAssistant(t, mock)
	sess := NewSession()

	_, err := a.Send(context.Background(), sess, "Hi")
	require.NoError(t, err)
	_, err = a.Send(context.Background(), sess, "Hi")
	require.NoError(t, err)

	assert.Len(t, sess.History(), 2)
}

// --- Booking ---

func TestSend_BookingFlow(t *testing.T) {
	mock := &llm.MockClient{
		GenerateFunc: func(ctx context.Context, history []llm.Turn, msg string) (*llm.Result, error) {
			return &llm.Result{FunctionCalls: []llm.FunctionCall{bookingCall()}}, nil
		},
	}

	a, enquiries := testAssistant(t, mock)
	sess := NewSession()

	result, err := a.Send(context.Background(), sess, "Jane Doe, jane@x.com, production shoot, product video")
	require.NoError(t, err)
	assert.True(t, result.Booked)
	assert.True(t, result.BookedNow)
	require.Len(t, result.Replies, 1)
	assert.Contains(t, result.Replies[0].Text, "Jane Doe")
	assert.Contains(t, result.Replies[0].Text, "Production Shoot")
	assert.Contains(t, result.Replies[0].Text, "jane@x.com")

	all, err := enquiries.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, sess.ID, all[0].SessionID)
	assert.Equal(t, "Jane Doe", all[0].FullName)
	assert.False(t, all[0].CreatedAt.IsZero())

	// History gains the user turn plus the synthesized confirmation.
	history := sess.History()
	require.Len(t, history, 2)
	assert.Equal(t, llm.RoleModel, history[1].Role)
	assert.Contains(t, history[1].Parts[0].Text, "Jane Doe")

	assert.True(t, sess.Booked())
}

func TestSend_PostBookingShortCircuit(t *testing.T) {
	calls := 0
	mock := &llm.MockClient{
		GenerateFunc: func(ctx context.Context, history []llm.Turn, msg string) (*llm.Result, error) {
			calls++
			return &llm.Result{FunctionCalls: []llm.FunctionCall{bookingCall()}}, nil
		},
	}

	a, enquiries := testAssistant(t, mock)
	sess := NewSession()

	_, err := a.Send(context.Background(), sess, "book me in")
	require.NoError(t, err)
	require.True(t, sess.Booked())

	before := len(sess.Messages())
	result, err := a.Send(context.Background(), sess, "thanks!")
	require.NoError(t, err)

	// No gateway call, one fixed courtesy reply, booking log unchanged.
	assert.Equal(t, 1, calls)
	require.Len(t, result.Replies, 1)
	assert.Equal(t, bookedCourtesyReply, result.Replies[0].Text)
	assert.True(t, result.Booked)
	assert.False(t, result.BookedNow)
	assert.Len(t, sess.Messages(), before+1)

	n, err := enquiries.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSend_MultipleBookEnquiryCallsAllProcessed(t *testing.T) {
	second := bookingCall()
	second.Args["fullName"] = "John Roe"
	mock := &llm.MockClient{
		GenerateFunc: func(ctx context.Context, history []llm.Turn, msg string) (*llm.Result, error) {
			return &llm.Result{FunctionCalls: []llm.FunctionCall{bookingCall(), second}}, nil
		},
	}

	a, enquiries := testAssistant(t, mock)
	sess := NewSession()

	result, err := a.Send(context.Background(), sess, "book both")
	require.NoError(t, err)

	// Each call is persisted and produces its own confirmation.
	assert.Len(t, result.Replies, 2)
	all, err := enquiries.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Jane Doe", all[0].FullName)
	assert.Equal(t, "John Roe", all[1].FullName)

	// user turn + two confirmation turns
	assert.Len(t, sess.History(), 3)
}

func TestSend_UnrecognizedToolIgnored(t *testing.T) {
	mock := &llm.MockClient{
		GenerateFunc: func(ctx context.Context, history []llm.Turn, msg string) (*llm.Result, error) {
			return &llm.Result{FunctionCalls: []llm.FunctionCall{
				{Name: "cancelEnquiry", Args: map[string]any{}},
			}}, nil
		},
	}

	a, enquiries := testAssistant(t, mock)
	sess := NewSession()

	result, err := a.Send(context.Background(), sess, "cancel it")
	require.NoError(t, err)
	assert.Empty(t, result.Replies)
	assert.False(t, result.Booked)

	n, err := enquiries.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, sess.Booked())
}

func TestSend_MalformedBookingArgsSkipped(t *testing.T) {
	mock := &llm.MockClient{
		GenerateFunc: func(ctx context.Context, history []llm.Turn, msg string) (*llm.Result, error) {
			return &llm.Result{FunctionCalls: []llm.FunctionCall{
				{Name: "bookEnquiry", Args: map[string]any{"fullName": "Jane"}},
			}}, nil
		},
	}

	a, enquiries := testAssistant(t, mock)
	sess := NewSession()

	result, err := a.Send(context.Background(), sess, "book")
	require.NoError(t, err)
	assert.Empty(t, result.Replies)
	assert.False(t, sess.Booked())

	n, err := enquiries.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

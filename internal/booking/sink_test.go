package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upliftr/upliftr/internal/logging"
	"github.com/upliftr/upliftr/internal/sheets"
	"github.com/upliftr/upliftr/internal/store"
)

func testEnquiries(t *testing.T) *store.EnquiryStore {
	t.Helper()
	db, err := store.Open(":memory:", logging.New(nil, "silent"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store.NewEnquiryStore(db)
}

func validRequest() Request {
	return Request{
		FullName:    "Jane Doe",
		Email:       "jane@x.com",
		ProjectType: "Production Shoot",
		Details:     "Need a product video",
	}
}

// --- FromArgs tests ---

func TestFromArgs_Valid(t *testing.T) {
	req, err := FromArgs(map[string]any{
		"fullName":    "Jane Doe",
		"email":       "jane@x.com",
		"projectType": "Production Shoot",
		"details":     "Need a product video",
	})
	require.NoError(t, err)
	assert.Equal(t, validRequest(), req)
}

func TestFromArgs_MissingField(t *testing.T) {
	_, err := FromArgs(map[string]any{
		"fullName": "Jane Doe",
		"email":    "jane@x.com",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestFromArgs_NonStringArg(t *testing.T) {
	_, err := FromArgs(map[string]any{
		"fullName":    "Jane Doe",
		"email":       42,
		"projectType": "p",
		"details":     "d",
	})
	assert.ErrorIs(t, err, ErrMissingField)
}

// --- Sink tests ---

func TestSink_RecordPersistsLocally(t *testing.T) {
	enquiries := testEnquiries(t)
	sink := NewSink(enquiries, nil, logging.New(nil, "silent"))

	saved := sink.Record(context.Background(), "sess-1", validRequest())
	assert.NotZero(t, saved.ID)
	assert.Equal(t, "sess-1", saved.SessionID)

	all, err := enquiries.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Jane Doe", all[0].FullName)
	assert.False(t, all[0].CreatedAt.IsZero())
}

func TestSink_RecordMirrorsRow(t *testing.T) {
	enquiries := testEnquiries(t)

	rows := make(chan []any, 1)
	mirror := sheets.AppenderFunc(func(ctx context.Context, row []any) error {
		rows <- row
		return nil
	})

	sink := NewSink(enquiries, mirror, logging.New(nil, "silent"))
	sink.Record(context.Background(), "sess-1", validRequest())

	select {
	case row := <-rows:
		require.Len(t, row, 7)
		assert.Equal(t, "Jane Doe", row[1])
		assert.Equal(t, "jane@x.com", row[2])
		assert.Equal(t, "", row[3]) // phone
		assert.Equal(t, "Production Shoot", row[4])
		assert.Equal(t, "", row[5]) // budget
		assert.Equal(t, "Need a product video", row[6])
	case <-time.After(2 * time.Second):
		t.Fatal("mirror was never invoked")
	}
}

func TestSink_MirrorFailureIsolated(t *testing.T) {
	enquiries := testEnquiries(t)

	called := make(chan struct{}, 1)
	mirror := sheets.AppenderFunc(func(ctx context.Context, row []any) error {
		called <- struct{}{}
		return errors.New("sheet unavailable")
	})

	sink := NewSink(enquiries, mirror, logging.New(nil, "silent"))
	saved := sink.Record(context.Background(), "sess-1", validRequest())

	// The booking still succeeds locally regardless of the mirror.
	assert.NotZero(t, saved.ID)

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("mirror was never invoked")
	}

	all, err := enquiries.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSink_NilMirrorSkipsRemote(t *testing.T) {
	sink := NewSink(testEnquiries(t), nil, logging.New(nil, "silent"))
	saved := sink.Record(context.Background(), "", validRequest())
	assert.NotZero(t, saved.ID)
}

// Package booking records qualified leads produced by the chat assistant.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/upliftr/upliftr/internal/logging"
	"github.com/upliftr/upliftr/internal/sheets"
	"github.com/upliftr/upliftr/internal/store"
)

// mirrorTimeout bounds the best-effort spreadsheet append.
const mirrorTimeout = 15 * time.Second

// Request is the structured payload a bookEnquiry tool call must supply.
type Request struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	ProjectType string `json:"projectType"`
	Details     string `json:"details"`
}

// ErrMissingField reports a tool call that violated the required-field schema.
var ErrMissingField = errors.New("booking request missing required field")

// FromArgs builds a Request from tool call arguments. All four fields are
// required and must be non-empty; no further format validation is applied.
func FromArgs(args map[string]any) (Request, error) {
	req := Request{
		FullName:    stringArg(args, "fullName"),
		Email:       stringArg(args, "email"),
		ProjectType: stringArg(args, "projectType"),
		Details:     stringArg(args, "details"),
	}

	for name, val := range map[string]string{
		"fullName":    req.FullName,
		"email":       req.Email,
		"projectType": req.ProjectType,
		"details":     req.Details,
	} {
		if strings.TrimSpace(val) == "" {
			return req, fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}
	return req, nil
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// Sink durably records bookings and mirrors them to a spreadsheet.
//
// The mirror is best-effort, non-blocking, and failure-isolated: a booking
// confirmation shown to the user never depends on the mirror call's outcome.
type Sink struct {
	enquiries *store.EnquiryStore
	mirror    sheets.Appender // nil disables mirroring
	log       *logging.Logger
}

// NewSink creates a booking sink. A nil mirror disables the remote append.
func NewSink(enquiries *store.EnquiryStore, mirror sheets.Appender, log *logging.Logger) *Sink {
	return &Sink{
		enquiries: enquiries,
		mirror:    mirror,
		log:       log.Sub("booking"),
	}
}

// Record appends the booking to the local log and fires the remote mirror.
// Local failures are logged but do not interrupt the conversation; the
// mirror runs detached from the caller's context.
func (s *Sink) Record(ctx context.Context, sessionID string, req Request) store.Enquiry {
	enquiry := store.Enquiry{
		SessionID:   sessionID,
		FullName:    req.FullName,
		Email:       req.Email,
		ProjectType: req.ProjectType,
		Details:     req.Details,
	}

	saved, err := s.enquiries.Append(enquiry)
	if err != nil {
		s.log.Error().Err(err).Str("session", sessionID).Msg("failed to persist enquiry locally")
		saved = enquiry
	} else {
		s.log.Info().
			Int64("id", saved.ID).
			Str("session", sessionID).
			Str("projectType", req.ProjectType).
			Msg("enquiry booked")
	}

	if s.mirror != nil {
		go s.mirrorRow(saved)
	}

	return saved
}

// mirrorRow appends [timestamp, fullName, email, phone, projectType, budget,
// message] to the remote sheet. Chat bookings carry no phone or budget; the
// details field fills the message column. Errors are swallowed after logging.
func (s *Sink) mirrorRow(e store.Enquiry) {
	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	row := []any{
		e.CreatedAt.Format(time.RFC3339),
		e.FullName,
		e.Email,
		"", // phone
		e.ProjectType,
		"", // budget
		e.Details,
	}

	if err := s.mirror.AppendRow(ctx, row); err != nil {
		s.log.Warn().Err(err).Int64("id", e.ID).Msg("sheet mirror failed")
		return
	}
	s.log.Debug().Int64("id", e.ID).Msg("enquiry mirrored to sheet")
}

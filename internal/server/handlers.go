package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/upliftr/upliftr/internal/assistant"
	"github.com/upliftr/upliftr/internal/content"
	"github.com/upliftr/upliftr/internal/store"
	"github.com/upliftr/upliftr/internal/version"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": version.Version,
		"chat":    s.assistant != nil,
		"mirror":  s.mirror != nil,
	})
}

// enquiryPayload mirrors the widget's enquiry form fields. None of the
// fields are validated here; the spreadsheet row is appended as-is.
type enquiryPayload struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ProjectType string `json:"projectType"`
	Budget      string `json:"budget"`
	Message     string `json:"message"`
}

// handleSaveEnquiry appends one enquiry row to the configured spreadsheet.
// The response body is always {"ok": true|false}; failure details are only
// logged server-side.
func (s *Server) handleSaveEnquiry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]bool{"ok": false})
		return
	}

	var p enquiryPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.log.Error().Err(err).Msg("save-enquiry: bad request body")
		writeJSON(w, http.StatusInternalServerError, map[string]bool{"ok": false})
		return
	}

	if s.mirror == nil {
		s.log.Error().Msg("save-enquiry: no spreadsheet configured")
		writeJSON(w, http.StatusInternalServerError, map[string]bool{"ok": false})
		return
	}

	row := []any{
		time.Now().UTC().Format(time.RFC3339),
		p.FullName,
		p.Email,
		p.Phone,
		p.ProjectType,
		p.Budget,
		p.Message,
	}
	if err := s.mirror.AppendRow(r.Context(), row); err != nil {
		s.log.Error().Err(err).Msg("save-enquiry: append failed")
		writeJSON(w, http.StatusInternalServerError, map[string]bool{"ok": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type contactPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Service   string `json:"service"`
	Message   string `json:"message"`
}

func validateContact(p contactPayload) map[string]string {
	issues := make(map[string]string)
	if len(strings.TrimSpace(p.FirstName)) < 2 {
		issues["firstName"] = "first name must be at least 2 characters"
	}
	if len(strings.TrimSpace(p.LastName)) < 2 {
		issues["lastName"] = "last name must be at least 2 characters"
	}
	if !strings.Contains(p.Email, "@") {
		issues["email"] = "a valid email address is required"
	}
	if strings.TrimSpace(p.Service) == "" {
		issues["service"] = "please select a service"
	}
	if len(strings.TrimSpace(p.Message)) < 10 {
		issues["message"] = "message must be at least 10 characters"
	}
	if len(issues) == 0 {
		return nil
	}
	return issues
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if s.contacts == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "contact form unavailable"})
		return
	}

	var p contactPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if issues := validateContact(p); issues != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "validation failed", "fields": issues})
		return
	}

	sub, err := s.contacts.Append(store.ContactSubmission{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Email:     strings.TrimSpace(p.Email),
		Service:   p.Service,
		Message:   strings.TrimSpace(p.Message),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("contact: store append failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": sub.ID})
}

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string              `json:"sessionId"`
	Replies   []assistant.Message `json:"replies"`
	Booked    bool                `json:"booked"`
	BookedNow bool                `json:"bookedNow"`
}

// handleChat runs one assistant turn over plain HTTP. A request without a
// sessionId starts a new session; unknown (expired) sessions get 404 so the
// widget can start over.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.assistant == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "chat unavailable"})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	var sess *assistant.Session
	if req.SessionID == "" {
		sess = s.sessions.Create()
	} else {
		sess = s.sessions.Get(req.SessionID)
		if sess == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown session"})
			return
		}
	}

	result, err := s.assistant.Send(r.Context(), sess, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrEmptyMessage):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is empty"})
		case errors.Is(err, assistant.ErrBusy):
			writeJSON(w, http.StatusConflict, map[string]string{"error": "a reply is already in progress"})
		default:
			s.log.Error().Err(err).Str("session", sess.ID).Msg("chat turn failed")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: sess.ID,
		Replies:   result.Replies,
		Booked:    result.Booked,
		BookedNow: result.BookedNow,
	})
}

func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, content.Services())
}

func (s *Server) handleServiceDetail(w http.ResponseWriter, r *http.Request) {
	svc, ok := content.ServiceByID(r.PathValue("id"))
	if !ok {
		handleNotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, content.Portfolio())
}

func (s *Server) handleCaseStudy(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		handleNotFound(w, r)
		return
	}
	cs, ok := content.CaseStudyByID(id)
	if !ok {
		handleNotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

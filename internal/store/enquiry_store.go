package store

import (
	"fmt"
	"time"
)

// Enquiry is a persisted booking enquiry record.
type Enquiry struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"sessionId,omitempty"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	ProjectType string    `json:"projectType"`
	Details     string    `json:"details"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EnquiryStore is the append-only local booking log.
type EnquiryStore struct {
	db *DB
}

// NewEnquiryStore creates an enquiry store using the given database.
func NewEnquiryStore(db *DB) *EnquiryStore {
	return &EnquiryStore{db: db}
}

// Append records one enquiry. The timestamp is assigned here if unset.
func (s *EnquiryStore) Append(e Enquiry) (Enquiry, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.sql.Exec(
		`INSERT INTO enquiries (session_id, full_name, email, project_type, details, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.FullName, e.Email, e.ProjectType, e.Details,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return e, fmt.Errorf("inserting enquiry: %w", err)
	}

	e.ID, _ = res.LastInsertId()
	return e, nil
}

// List returns all enquiries in insertion order.
func (s *EnquiryStore) List() ([]Enquiry, error) {
	rows, err := s.db.sql.Query(
		`SELECT id, session_id, full_name, email, project_type, details, created_at
		 FROM enquiries ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying enquiries: %w", err)
	}
	defer rows.Close()

	var out []Enquiry
	for rows.Next() {
		var e Enquiry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.FullName, &e.Email, &e.ProjectType, &e.Details, &createdAt); err != nil {
			continue
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of recorded enquiries.
func (s *EnquiryStore) Count() (int, error) {
	var n int
	err := s.db.sql.QueryRow(`SELECT COUNT(*) FROM enquiries`).Scan(&n)
	return n, err
}

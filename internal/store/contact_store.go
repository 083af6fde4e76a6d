package store

import (
	"fmt"
	"time"
)

// ContactSubmission is a persisted contact-form submission.
type ContactSubmission struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactStore persists contact-form submissions.
type ContactStore struct {
	db *DB
}

// NewContactStore creates a contact store using the given database.
func NewContactStore(db *DB) *ContactStore {
	return &ContactStore{db: db}
}

// Append records one submission.
func (s *ContactStore) Append(c ContactSubmission) (ContactSubmission, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.sql.Exec(
		`INSERT INTO contact_submissions (first_name, last_name, email, service, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.FirstName, c.LastName, c.Email, c.Service, c.Message,
		c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return c, fmt.Errorf("inserting contact submission: %w", err)
	}

	c.ID, _ = res.LastInsertId()
	return c, nil
}

// List returns all submissions in insertion order.
func (s *ContactStore) List() ([]ContactSubmission, error) {
	rows, err := s.db.sql.Query(
		`SELECT id, first_name, last_name, email, service, message, created_at
		 FROM contact_submissions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying contact submissions: %w", err)
	}
	defer rows.Close()

	var out []ContactSubmission
	for rows.Next() {
		var c ContactSubmission
		var createdAt string
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Service, &c.Message, &createdAt); err != nil {
			continue
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create enquiries",
		SQL: `
			CREATE TABLE enquiries (
				id           INTEGER PRIMARY KEY AUTOINCREMENT,
				session_id   TEXT NOT NULL DEFAULT '',
				full_name    TEXT NOT NULL,
				email        TEXT NOT NULL,
				project_type TEXT NOT NULL,
				details      TEXT NOT NULL,
				created_at   TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE INDEX idx_enquiries_session ON enquiries (session_id, id);
		`,
	},
	{
		Version: 2,
		Name:    "create contact submissions",
		SQL: `
			CREATE TABLE contact_submissions (
				id         INTEGER PRIMARY KEY AUTOINCREMENT,
				first_name TEXT NOT NULL,
				last_name  TEXT NOT NULL,
				email      TEXT NOT NULL,
				service    TEXT NOT NULL,
				message    TEXT NOT NULL,
				created_at TEXT NOT NULL DEFAULT (datetime('now'))
			);
		`,
	},
}

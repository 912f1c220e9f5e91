package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema.
//
// Every table pairs an AUTOINCREMENT internal id with a unique public_id.
// AUTOINCREMENT keeps internal ids monotonic and prevents rowid reuse after
// deletion. Relationship columns reference internal ids only; with
// foreign_keys=ON a delete that would orphan a reference is rejected.
func (db *DB) RunMigrations() error {
	migration := `
-- Meetings table
CREATE TABLE meetings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    public_id TEXT NOT NULL UNIQUE,
    organisation_type TEXT NOT NULL,
    organisation_code TEXT NOT NULL,
    organisation_name TEXT NOT NULL,
    dossier_type TEXT NOT NULL,
    name TEXT NOT NULL,
    web_link TEXT NOT NULL DEFAULT '',
    start_time TEXT NOT NULL DEFAULT '',
    end_time TEXT NOT NULL DEFAULT '',
    parent_meeting_id INTEGER REFERENCES meetings(id),
    committee_id TEXT NOT NULL DEFAULT '',
    committee_name TEXT NOT NULL DEFAULT '',
    planned_start TEXT NOT NULL DEFAULT '',
    planned_end TEXT NOT NULL DEFAULT '',
    planned_date TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT '',
    note TEXT NOT NULL DEFAULT '',
    meeting_date TEXT NOT NULL DEFAULT '',
    meeting_type TEXT NOT NULL DEFAULT ''
);
CREATE INDEX idx_meetings_public ON meetings(public_id);
CREATE INDEX idx_meetings_parent ON meetings(parent_meeting_id);
CREATE INDEX idx_meetings_org_code ON meetings(organisation_code);

-- Agenda items table
CREATE TABLE agenda_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    public_id TEXT NOT NULL UNIQUE,
    organisation_type TEXT NOT NULL,
    organisation_code TEXT NOT NULL,
    organisation_name TEXT NOT NULL,
    dossier_type TEXT NOT NULL,
    name TEXT NOT NULL,
    web_link TEXT NOT NULL DEFAULT '',
    meeting_id INTEGER NOT NULL REFERENCES meetings(id),
    parent_item_id INTEGER REFERENCES agenda_items(id),
    description TEXT NOT NULL DEFAULT '',
    order_number TEXT NOT NULL DEFAULT '',
    heading TEXT NOT NULL DEFAULT '',
    misc TEXT NOT NULL DEFAULT '',
    start_time TEXT NOT NULL DEFAULT '',
    end_time TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    planned_order_number TEXT NOT NULL DEFAULT '',
    planned_start TEXT NOT NULL DEFAULT '',
    planned_end TEXT NOT NULL DEFAULT '',
    is_hammer_piece INTEGER,
    is_handled INTEGER,
    is_closed INTEGER
);
CREATE INDEX idx_agenda_items_public ON agenda_items(public_id);
CREATE INDEX idx_agenda_items_meeting ON agenda_items(meeting_id);
CREATE INDEX idx_agenda_items_parent ON agenda_items(parent_item_id);

-- Information objects table
CREATE TABLE information_objects (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    public_id TEXT NOT NULL UNIQUE,
    organisation_type TEXT NOT NULL,
    organisation_code TEXT NOT NULL,
    organisation_name TEXT NOT NULL,
    web_link TEXT NOT NULL,
    title TEXT NOT NULL,
    woo_category TEXT NOT NULL,
    date_submitted TEXT NOT NULL,
    external_id TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL DEFAULT '',
    source_organisation TEXT NOT NULL DEFAULT '',
    creation_date TEXT NOT NULL DEFAULT '',
    object_type TEXT NOT NULL DEFAULT '',
    format TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    language TEXT NOT NULL DEFAULT '',
    related_object_id INTEGER REFERENCES information_objects(id),
    related_role TEXT NOT NULL DEFAULT ''
);
CREATE INDEX idx_information_objects_public ON information_objects(public_id);
CREATE INDEX idx_information_objects_category ON information_objects(woo_category);

-- Links between agenda items and information objects
CREATE TABLE agenda_item_information_objects (
    agenda_item_id INTEGER NOT NULL REFERENCES agenda_items(id),
    information_object_id INTEGER NOT NULL REFERENCES information_objects(id),
    PRIMARY KEY (agenda_item_id, information_object_id)
);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

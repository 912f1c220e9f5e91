package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/openoverheid/ori/internal/domain/meeting"
	"github.com/openoverheid/ori/internal/repository"
)

// MeetingRepository implements meeting.Repository for SQLite
type MeetingRepository struct {
	db *DB
}

// NewMeetingRepository creates a new MeetingRepository
func NewMeetingRepository(db *DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

const meetingColumns = `
	m.id, m.public_id,
	m.organisation_type, m.organisation_code, m.organisation_name,
	m.dossier_type, m.name, m.web_link, m.start_time, m.end_time,
	m.parent_meeting_id, COALESCE(p.public_id, ''),
	m.committee_id, m.committee_name,
	m.planned_start, m.planned_end, m.planned_date,
	m.location, m.status, m.note, m.meeting_date, m.meeting_type
`

func scanMeeting(row interface{ Scan(...any) error }) (*meeting.Meeting, error) {
	var m meeting.Meeting
	err := row.Scan(
		&m.ID, &m.PublicID,
		&m.Organisation.Type, &m.Organisation.Code, &m.Organisation.Name,
		&m.DossierType, &m.Name, &m.WebLink, &m.Start, &m.End,
		&m.ParentMeetingID, &m.ParentPublicID,
		&m.CommitteeID, &m.CommitteeName,
		&m.PlannedStart, &m.PlannedEnd, &m.PlannedDate,
		&m.Location, &m.Status, &m.Note, &m.MeetingDate, &m.MeetingType,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new meeting and returns its internal identifier.
func (r *MeetingRepository) Create(ctx context.Context, m *meeting.Meeting) (int64, error) {
	query := `
		INSERT INTO meetings (
			public_id,
			organisation_type, organisation_code, organisation_name,
			dossier_type, name, web_link, start_time, end_time,
			parent_meeting_id, committee_id, committee_name,
			planned_start, planned_end, planned_date,
			location, status, note, meeting_date, meeting_type
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		m.PublicID,
		m.Organisation.Type, m.Organisation.Code, m.Organisation.Name,
		m.DossierType, m.Name, m.WebLink, m.Start, m.End,
		m.ParentMeetingID, m.CommitteeID, m.CommitteeName,
		m.PlannedStart, m.PlannedEnd, m.PlannedDate,
		m.Location, m.Status, m.Note, m.MeetingDate, m.MeetingType,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, repository.ErrForeignKeyViolation
		}
		return 0, fmt.Errorf("failed to create meeting: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read meeting id: %w", err)
	}
	return id, nil
}

// GetByPublicID retrieves a meeting by its public identifier.
func (r *MeetingRepository) GetByPublicID(ctx context.Context, publicID string) (*meeting.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + `
		FROM meetings m
		LEFT JOIN meetings p ON p.id = m.parent_meeting_id
		WHERE m.public_id = ?
	`

	m, err := scanMeeting(r.db.QueryRowContext(ctx, query, publicID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return m, nil
}

// ResolveID maps a meeting's public identifier to its internal identifier.
func (r *MeetingRepository) ResolveID(ctx context.Context, publicID string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM meetings WHERE public_id = ?`, publicID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve meeting id: %w", err)
	}
	return id, nil
}

// Replace overwrites all fields of the meeting identified by m.ID. The
// public_id column is never part of the SET clause.
func (r *MeetingRepository) Replace(ctx context.Context, m *meeting.Meeting) error {
	query := `
		UPDATE meetings
		SET organisation_type = ?, organisation_code = ?, organisation_name = ?,
		    dossier_type = ?, name = ?, web_link = ?, start_time = ?, end_time = ?,
		    parent_meeting_id = ?, committee_id = ?, committee_name = ?,
		    planned_start = ?, planned_end = ?, planned_date = ?,
		    location = ?, status = ?, note = ?, meeting_date = ?, meeting_type = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		m.Organisation.Type, m.Organisation.Code, m.Organisation.Name,
		m.DossierType, m.Name, m.WebLink, m.Start, m.End,
		m.ParentMeetingID, m.CommitteeID, m.CommitteeName,
		m.PlannedStart, m.PlannedEnd, m.PlannedDate,
		m.Location, m.Status, m.Note, m.MeetingDate, m.MeetingType,
		m.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to replace meeting: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the meeting with the given public identifier. Rejected while
// sub-meetings or agenda items still reference it.
func (r *MeetingRepository) Delete(ctx context.Context, publicID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM meetings WHERE public_id = ?`, publicID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrHasDependents
		}
		return fmt.Errorf("failed to delete meeting: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns meetings matching the filter plus the total match count.
// Ordered by internal identifier ascending so pages stay stable under
// concurrent inserts.
func (r *MeetingRepository) List(ctx context.Context, filter repository.MeetingFilter, limit, offset int) ([]meeting.Meeting, int, error) {
	conditions := []string{}
	args := []any{}

	if filter.ParentID != nil {
		conditions = append(conditions, "m.parent_meeting_id = ?")
		args = append(args, *filter.ParentID)
	}
	if filter.OrganisationCode != "" {
		conditions = append(conditions, "m.organisation_code = ?")
		args = append(args, filter.OrganisationCode)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM meetings m` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count meetings: %w", err)
	}

	query := `
		SELECT ` + meetingColumns + `
		FROM meetings m
		LEFT JOIN meetings p ON p.id = m.parent_meeting_id
	` + where + `
		ORDER BY m.id ASC
		LIMIT ? OFFSET ?
	`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meetings: %w", err)
	}
	defer rows.Close()

	var meetings []meeting.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan meeting: %w", err)
		}
		meetings = append(meetings, *m)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating meeting rows: %w", err)
	}

	return meetings, total, nil
}

// SubMeetingPublicIDs returns the public identifiers of direct sub-meetings,
// ordered by internal identifier.
func (r *MeetingRepository) SubMeetingPublicIDs(ctx context.Context, meetingID int64) ([]string, error) {
	query := `SELECT public_id FROM meetings WHERE parent_meeting_id = ? ORDER BY id ASC`
	return r.queryPublicIDs(ctx, query, meetingID)
}

// AgendaItemPublicIDs returns the public identifiers of the meeting's agenda
// items, ordered by internal identifier.
func (r *MeetingRepository) AgendaItemPublicIDs(ctx context.Context, meetingID int64) ([]string, error) {
	query := `SELECT public_id FROM agenda_items WHERE meeting_id = ? ORDER BY id ASC`
	return r.queryPublicIDs(ctx, query, meetingID)
}

// InformationObjectPublicIDs returns the public identifiers of information
// objects linked to the meeting through its agenda items.
func (r *MeetingRepository) InformationObjectPublicIDs(ctx context.Context, meetingID int64) ([]string, error) {
	query := `
		SELECT io.public_id
		FROM information_objects io
		WHERE io.id IN (
			SELECT l.information_object_id
			FROM agenda_item_information_objects l
			JOIN agenda_items ai ON ai.id = l.agenda_item_id
			WHERE ai.meeting_id = ?
		)
		ORDER BY io.id ASC
	`
	return r.queryPublicIDs(ctx, query, meetingID)
}

func (r *MeetingRepository) queryPublicIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query public ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan public id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating public id rows: %w", err)
	}
	return ids, nil
}

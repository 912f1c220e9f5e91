package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/openoverheid/ori/internal/domain/infoobject"
	"github.com/openoverheid/ori/internal/repository"
)

// InformationObjectRepository implements infoobject.Repository for SQLite
type InformationObjectRepository struct {
	db *DB
}

// NewInformationObjectRepository creates a new InformationObjectRepository
func NewInformationObjectRepository(db *DB) *InformationObjectRepository {
	return &InformationObjectRepository{db: db}
}

const infoObjectColumns = `
	io.id, io.public_id,
	io.organisation_type, io.organisation_code, io.organisation_name,
	io.web_link, io.title, io.woo_category, io.date_submitted,
	io.external_id, io.author, io.source_organisation, io.creation_date,
	io.object_type, io.format, io.description, io.language,
	io.related_object_id, COALESCE(rel.public_id, ''), io.related_role
`

func scanInfoObject(row interface{ Scan(...any) error }) (*infoobject.InformationObject, error) {
	var obj infoobject.InformationObject
	err := row.Scan(
		&obj.ID, &obj.PublicID,
		&obj.Organisation.Type, &obj.Organisation.Code, &obj.Organisation.Name,
		&obj.WebLink, &obj.Title, &obj.WooCategory, &obj.DateSubmitted,
		&obj.ExternalID, &obj.Author, &obj.SourceOrganisation, &obj.CreationDate,
		&obj.ObjectType, &obj.Format, &obj.Description, &obj.Language,
		&obj.RelatedObjectID, &obj.RelatedPublicID, &obj.RelatedRole,
	)
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

// Create inserts a new information object and its agenda item link rows in
// one transaction and returns the internal identifier. On any failure the
// transaction rolls back; no partial record is persisted.
func (r *InformationObjectRepository) Create(ctx context.Context, obj *infoobject.InformationObject, agendaItemIDs []int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO information_objects (
			public_id,
			organisation_type, organisation_code, organisation_name,
			web_link, title, woo_category, date_submitted,
			external_id, author, source_organisation, creation_date,
			object_type, format, description, language,
			related_object_id, related_role
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		obj.PublicID,
		obj.Organisation.Type, obj.Organisation.Code, obj.Organisation.Name,
		obj.WebLink, obj.Title, obj.WooCategory, obj.DateSubmitted,
		obj.ExternalID, obj.Author, obj.SourceOrganisation, obj.CreationDate,
		obj.ObjectType, obj.Format, obj.Description, obj.Language,
		obj.RelatedObjectID, obj.RelatedRole,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, repository.ErrForeignKeyViolation
		}
		return 0, fmt.Errorf("failed to create information object: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read information object id: %w", err)
	}

	if err := insertAgendaItemLinks(ctx, tx, id, agendaItemIDs); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return id, nil
}

// GetByPublicID retrieves an information object by its public identifier.
func (r *InformationObjectRepository) GetByPublicID(ctx context.Context, publicID string) (*infoobject.InformationObject, error) {
	query := `
		SELECT ` + infoObjectColumns + `
		FROM information_objects io
		LEFT JOIN information_objects rel ON rel.id = io.related_object_id
		WHERE io.public_id = ?
	`

	obj, err := scanInfoObject(r.db.QueryRowContext(ctx, query, publicID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get information object: %w", err)
	}
	return obj, nil
}

// ResolveID maps an information object's public identifier to its internal
// identifier.
func (r *InformationObjectRepository) ResolveID(ctx context.Context, publicID string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM information_objects WHERE public_id = ?`, publicID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve information object id: %w", err)
	}
	return id, nil
}

// Replace overwrites all fields of the object identified by obj.ID and
// rewrites its agenda item links, in one transaction.
func (r *InformationObjectRepository) Replace(ctx context.Context, obj *infoobject.InformationObject, agendaItemIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE information_objects
		SET organisation_type = ?, organisation_code = ?, organisation_name = ?,
		    web_link = ?, title = ?, woo_category = ?, date_submitted = ?,
		    external_id = ?, author = ?, source_organisation = ?, creation_date = ?,
		    object_type = ?, format = ?, description = ?, language = ?,
		    related_object_id = ?, related_role = ?
		WHERE id = ?
	`

	result, err := tx.ExecContext(ctx, query,
		obj.Organisation.Type, obj.Organisation.Code, obj.Organisation.Name,
		obj.WebLink, obj.Title, obj.WooCategory, obj.DateSubmitted,
		obj.ExternalID, obj.Author, obj.SourceOrganisation, obj.CreationDate,
		obj.ObjectType, obj.Format, obj.Description, obj.Language,
		obj.RelatedObjectID, obj.RelatedRole,
		obj.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to replace information object: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM agenda_item_information_objects WHERE information_object_id = ?`, obj.ID); err != nil {
		return fmt.Errorf("failed to clear agenda item links: %w", err)
	}
	if err := insertAgendaItemLinks(ctx, tx, obj.ID, agendaItemIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Delete removes the object and its link rows. Rejected while other objects
// still name it as their related object.
func (r *InformationObjectRepository) Delete(ctx context.Context, publicID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM information_objects WHERE public_id = ?`, publicID).Scan(&id)
	if err == sql.ErrNoRows {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to resolve information object: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM agenda_item_information_objects WHERE information_object_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete agenda item links: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM information_objects WHERE id = ?`, id); err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrHasDependents
		}
		return fmt.Errorf("failed to delete information object: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// List returns information objects matching the filter plus the total match
// count, ordered by internal identifier ascending.
func (r *InformationObjectRepository) List(ctx context.Context, filter repository.InformationObjectFilter, limit, offset int) ([]infoobject.InformationObject, int, error) {
	conditions := []string{}
	args := []any{}

	if filter.AgendaItemID != nil {
		conditions = append(conditions, `io.id IN (
			SELECT l.information_object_id FROM agenda_item_information_objects l
			WHERE l.agenda_item_id = ?
		)`)
		args = append(args, *filter.AgendaItemID)
	}
	if filter.Category != "" {
		conditions = append(conditions, "io.woo_category = ?")
		args = append(args, filter.Category)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM information_objects io` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count information objects: %w", err)
	}

	query := `
		SELECT ` + infoObjectColumns + `
		FROM information_objects io
		LEFT JOIN information_objects rel ON rel.id = io.related_object_id
	` + where + `
		ORDER BY io.id ASC
		LIMIT ? OFFSET ?
	`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list information objects: %w", err)
	}
	defer rows.Close()

	var objects []infoobject.InformationObject
	for rows.Next() {
		obj, err := scanInfoObject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan information object: %w", err)
		}
		objects = append(objects, *obj)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating information object rows: %w", err)
	}

	return objects, total, nil
}

// AgendaItemPublicIDs returns the public identifiers of linked agenda items,
// ordered by internal identifier.
func (r *InformationObjectRepository) AgendaItemPublicIDs(ctx context.Context, objectID int64) ([]string, error) {
	query := `
		SELECT ai.public_id
		FROM agenda_items ai
		JOIN agenda_item_information_objects l ON l.agenda_item_id = ai.id
		WHERE l.information_object_id = ?
		ORDER BY ai.id ASC
	`
	return r.queryPublicIDs(ctx, query, objectID)
}

// MeetingPublicIDs returns the public identifiers of the distinct meetings
// reached through the linked agenda items, ordered by internal identifier.
func (r *InformationObjectRepository) MeetingPublicIDs(ctx context.Context, objectID int64) ([]string, error) {
	query := `
		SELECT m.public_id
		FROM meetings m
		WHERE m.id IN (
			SELECT ai.meeting_id
			FROM agenda_items ai
			JOIN agenda_item_information_objects l ON l.agenda_item_id = ai.id
			WHERE l.information_object_id = ?
		)
		ORDER BY m.id ASC
	`
	return r.queryPublicIDs(ctx, query, objectID)
}

func (r *InformationObjectRepository) queryPublicIDs(ctx context.Context, query string, args ...any) ([]string, error) {
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

func insertAgendaItemLinks(ctx context.Context, tx *sql.Tx, objectID int64, agendaItemIDs []int64) error {
	for _, itemID := range agendaItemIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO agenda_item_information_objects (agenda_item_id, information_object_id) VALUES (?, ?)`,
			itemID, objectID,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return repository.ErrForeignKeyViolation
			}
			return fmt.Errorf("failed to link agenda item %d: %w", itemID, err)
		}
	}
	return nil
}

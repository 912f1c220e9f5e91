package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/openoverheid/ori/internal/domain/agendaitem"
	"github.com/openoverheid/ori/internal/repository"
)

// AgendaItemRepository implements agendaitem.Repository for SQLite
type AgendaItemRepository struct {
	db *DB
}

// NewAgendaItemRepository creates a new AgendaItemRepository
func NewAgendaItemRepository(db *DB) *AgendaItemRepository {
	return &AgendaItemRepository{db: db}
}

const agendaItemColumns = `
	a.id, a.public_id,
	a.organisation_type, a.organisation_code, a.organisation_name,
	a.dossier_type, a.name, a.web_link,
	a.meeting_id, m.public_id,
	a.parent_item_id, COALESCE(p.public_id, ''),
	a.description, a.order_number, a.heading, a.misc,
	a.start_time, a.end_time, a.location,
	a.planned_order_number, a.planned_start, a.planned_end,
	a.is_hammer_piece, a.is_handled, a.is_closed
`

func scanAgendaItem(row interface{ Scan(...any) error }) (*agendaitem.AgendaItem, error) {
	var item agendaitem.AgendaItem
	err := row.Scan(
		&item.ID, &item.PublicID,
		&item.Organisation.Type, &item.Organisation.Code, &item.Organisation.Name,
		&item.DossierType, &item.Name, &item.WebLink,
		&item.MeetingID, &item.MeetingPublicID,
		&item.ParentItemID, &item.ParentPublicID,
		&item.Description, &item.OrderNumber, &item.Heading, &item.Misc,
		&item.Start, &item.End, &item.Location,
		&item.PlannedOrderNumber, &item.PlannedStart, &item.PlannedEnd,
		&item.IsHammerPiece, &item.IsHandled, &item.IsClosed,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new agenda item and returns its internal identifier.
func (r *AgendaItemRepository) Create(ctx context.Context, item *agendaitem.AgendaItem) (int64, error) {
	query := `
		INSERT INTO agenda_items (
			public_id,
			organisation_type, organisation_code, organisation_name,
			dossier_type, name, web_link,
			meeting_id, parent_item_id,
			description, order_number, heading, misc,
			start_time, end_time, location,
			planned_order_number, planned_start, planned_end,
			is_hammer_piece, is_handled, is_closed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		item.PublicID,
		item.Organisation.Type, item.Organisation.Code, item.Organisation.Name,
		item.DossierType, item.Name, item.WebLink,
		item.MeetingID, item.ParentItemID,
		item.Description, item.OrderNumber, item.Heading, item.Misc,
		item.Start, item.End, item.Location,
		item.PlannedOrderNumber, item.PlannedStart, item.PlannedEnd,
		item.IsHammerPiece, item.IsHandled, item.IsClosed,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, repository.ErrForeignKeyViolation
		}
		return 0, fmt.Errorf("failed to create agenda item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read agenda item id: %w", err)
	}
	return id, nil
}

// GetByPublicID retrieves an agenda item by its public identifier.
func (r *AgendaItemRepository) GetByPublicID(ctx context.Context, publicID string) (*agendaitem.AgendaItem, error) {
	query := `
		SELECT ` + agendaItemColumns + `
		FROM agenda_items a
		JOIN meetings m ON m.id = a.meeting_id
		LEFT JOIN agenda_items p ON p.id = a.parent_item_id
		WHERE a.public_id = ?
	`

	item, err := scanAgendaItem(r.db.QueryRowContext(ctx, query, publicID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get agenda item: %w", err)
	}
	return item, nil
}

// ResolveID maps an agenda item's public identifier to its internal
// identifier.
func (r *AgendaItemRepository) ResolveID(ctx context.Context, publicID string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM agenda_items WHERE public_id = ?`, publicID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve agenda item id: %w", err)
	}
	return id, nil
}

// Replace overwrites all fields of the agenda item identified by item.ID.
func (r *AgendaItemRepository) Replace(ctx context.Context, item *agendaitem.AgendaItem) error {
	query := `
		UPDATE agenda_items
		SET organisation_type = ?, organisation_code = ?, organisation_name = ?,
		    dossier_type = ?, name = ?, web_link = ?,
		    meeting_id = ?, parent_item_id = ?,
		    description = ?, order_number = ?, heading = ?, misc = ?,
		    start_time = ?, end_time = ?, location = ?,
		    planned_order_number = ?, planned_start = ?, planned_end = ?,
		    is_hammer_piece = ?, is_handled = ?, is_closed = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		item.Organisation.Type, item.Organisation.Code, item.Organisation.Name,
		item.DossierType, item.Name, item.WebLink,
		item.MeetingID, item.ParentItemID,
		item.Description, item.OrderNumber, item.Heading, item.Misc,
		item.Start, item.End, item.Location,
		item.PlannedOrderNumber, item.PlannedStart, item.PlannedEnd,
		item.IsHammerPiece, item.IsHandled, item.IsClosed,
		item.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to replace agenda item: %w", err)
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

// Delete removes the agenda item with the given public identifier. Rejected
// while sub-items or information object links still reference it.
func (r *AgendaItemRepository) Delete(ctx context.Context, publicID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM agenda_items WHERE public_id = ?`, publicID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrHasDependents
		}
		return fmt.Errorf("failed to delete agenda item: %w", err)
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

// List returns agenda items matching the filter plus the total match count,
// ordered by internal identifier ascending.
func (r *AgendaItemRepository) List(ctx context.Context, filter repository.AgendaItemFilter, limit, offset int) ([]agendaitem.AgendaItem, int, error) {
	conditions := []string{}
	args := []any{}

	if filter.MeetingID != nil {
		conditions = append(conditions, "a.meeting_id = ?")
		args = append(args, *filter.MeetingID)
	}
	if filter.ParentID != nil {
		conditions = append(conditions, "a.parent_item_id = ?")
		args = append(args, *filter.ParentID)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM agenda_items a` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count agenda items: %w", err)
	}

	query := `
		SELECT ` + agendaItemColumns + `
		FROM agenda_items a
		JOIN meetings m ON m.id = a.meeting_id
		LEFT JOIN agenda_items p ON p.id = a.parent_item_id
	` + where + `
		ORDER BY a.id ASC
		LIMIT ? OFFSET ?
	`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list agenda items: %w", err)
	}
	defer rows.Close()

	var items []agendaitem.AgendaItem
	for rows.Next() {
		item, err := scanAgendaItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan agenda item: %w", err)
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating agenda item rows: %w", err)
	}

	return items, total, nil
}

// SubItemPublicIDs returns the public identifiers of direct sub-items,
// ordered by internal identifier.
func (r *AgendaItemRepository) SubItemPublicIDs(ctx context.Context, itemID int64) ([]string, error) {
	query := `SELECT public_id FROM agenda_items WHERE parent_item_id = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sub-items: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan sub-item id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sub-item rows: %w", err)
	}
	return ids, nil
}

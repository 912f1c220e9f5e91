package agendaitem

import (
	"context"

	"github.com/openoverheid/ori/internal/repository"
)

// Repository manages agenda item persistence.
type Repository interface {
	Create(ctx context.Context, item *AgendaItem) (int64, error)
	GetByPublicID(ctx context.Context, publicID string) (*AgendaItem, error)
	ResolveID(ctx context.Context, publicID string) (int64, error)
	Replace(ctx context.Context, item *AgendaItem) error
	Delete(ctx context.Context, publicID string) error
	List(ctx context.Context, filter repository.AgendaItemFilter, limit, offset int) ([]AgendaItem, int, error)

	// SubItemPublicIDs returns the public identifiers of direct sub-items,
	// ordered by internal identifier.
	SubItemPublicIDs(ctx context.Context, itemID int64) ([]string, error)
}

// MeetingResolver translates a meeting's public identifier into its internal
// identifier.
type MeetingResolver interface {
	ResolveID(ctx context.Context, publicID string) (int64, error)
}

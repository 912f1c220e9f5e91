package infoobject

import (
	"context"

	"github.com/openoverheid/ori/internal/repository"
)

// Repository manages information object persistence. Create and Replace write
// the object row and its agenda item link rows in one transaction.
type Repository interface {
	Create(ctx context.Context, obj *InformationObject, agendaItemIDs []int64) (int64, error)
	GetByPublicID(ctx context.Context, publicID string) (*InformationObject, error)
	ResolveID(ctx context.Context, publicID string) (int64, error)
	Replace(ctx context.Context, obj *InformationObject, agendaItemIDs []int64) error
	Delete(ctx context.Context, publicID string) error
	List(ctx context.Context, filter repository.InformationObjectFilter, limit, offset int) ([]InformationObject, int, error)

	// AgendaItemPublicIDs returns the linked agenda items, ordered by
	// internal identifier. MeetingPublicIDs returns the distinct meetings
	// reached through those agenda items, same ordering.
	AgendaItemPublicIDs(ctx context.Context, objectID int64) ([]string, error)
	MeetingPublicIDs(ctx context.Context, objectID int64) ([]string, error)
}

// AgendaItemResolver translates an agenda item's public identifier into its
// internal identifier.
type AgendaItemResolver interface {
	ResolveID(ctx context.Context, publicID string) (int64, error)
}

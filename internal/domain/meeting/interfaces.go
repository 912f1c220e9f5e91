package meeting

import (
	"context"

	"github.com/openoverheid/ori/internal/repository"
)

// Repository manages meeting persistence.
type Repository interface {
	Create(ctx context.Context, m *Meeting) (int64, error)
	GetByPublicID(ctx context.Context, publicID string) (*Meeting, error)
	ResolveID(ctx context.Context, publicID string) (int64, error)
	Replace(ctx context.Context, m *Meeting) error
	Delete(ctx context.Context, publicID string) error
	List(ctx context.Context, filter repository.MeetingFilter, limit, offset int) ([]Meeting, int, error)

	// Public identifiers of related records, ordered by internal identifier.
	SubMeetingPublicIDs(ctx context.Context, meetingID int64) ([]string, error)
	AgendaItemPublicIDs(ctx context.Context, meetingID int64) ([]string, error)
	InformationObjectPublicIDs(ctx context.Context, meetingID int64) ([]string, error)
}

package agendaitem

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/openoverheid/ori/internal/domain/organisation"
	"github.com/openoverheid/ori/internal/pagination"
	"github.com/openoverheid/ori/internal/reference"
	"github.com/openoverheid/ori/internal/repository"
)

// Service handles agenda item business logic.
type Service struct {
	items    Repository
	meetings MeetingResolver
	refs     *reference.Builder
	logger   *slog.Logger
}

// NewService creates a new agenda item service.
func NewService(items Repository, meetings MeetingResolver, refs *reference.Builder, logger *slog.Logger) *Service {
	return &Service{items: items, meetings: meetings, refs: refs, logger: logger}
}

// Filter narrows an agenda item listing by related public identifiers.
type Filter struct {
	Meeting    string
	ParentItem string
}

// Create assigns a fresh public identifier, resolves the meeting and optional
// parent item references and persists the item. Any resolution failure aborts
// the whole write; nothing is persisted.
func (s *Service) Create(ctx context.Context, input Input) (*View, error) {
	item := &AgendaItem{PublicID: uuid.NewString()}
	if err := s.applyInput(ctx, item, input); err != nil {
		return nil, err
	}

	id, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("creating agenda item: %w", err)
	}
	item.ID = id

	return s.render(ctx, item)
}

// Get returns the rendered agenda item with the given public identifier.
func (s *Service) Get(ctx context.Context, publicID string) (*View, error) {
	item, err := s.items.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, item)
}

// List returns one page of rendered agenda items ordered by internal
// identifier.
func (s *Service) List(ctx context.Context, filter Filter, page pagination.Request) (pagination.Page[View], error) {
	var repoFilter repository.AgendaItemFilter

	if filter.Meeting != "" {
		meetingID, err := s.meetings.ResolveID(ctx, filter.Meeting)
		if err != nil {
			return pagination.Page[View]{}, fmt.Errorf("resolving meeting filter: %w", err)
		}
		repoFilter.MeetingID = &meetingID
	}
	if filter.ParentItem != "" {
		parentID, err := s.items.ResolveID(ctx, filter.ParentItem)
		if err != nil {
			return pagination.Page[View]{}, fmt.Errorf("resolving parent item filter: %w", err)
		}
		repoFilter.ParentID = &parentID
	}

	items, total, err := s.items.List(ctx, repoFilter, page.Limit, page.Offset)
	if err != nil {
		return pagination.Page[View]{}, fmt.Errorf("listing agenda items: %w", err)
	}

	views := make([]View, 0, len(items))
	for i := range items {
		view, err := s.render(ctx, &items[i])
		if err != nil {
			return pagination.Page[View]{}, err
		}
		views = append(views, *view)
	}

	return pagination.New(views, s.refs.Collection(reference.KindAgendaItem), page, total), nil
}

// Replace overwrites every field of the agenda item while preserving its
// public and internal identifiers.
func (s *Service) Replace(ctx context.Context, publicID string, input Input) (*View, error) {
	existing, err := s.items.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	item := &AgendaItem{ID: existing.ID, PublicID: existing.PublicID}
	if err := s.applyInput(ctx, item, input); err != nil {
		return nil, err
	}

	if err := s.items.Replace(ctx, item); err != nil {
		return nil, fmt.Errorf("replacing agenda item: %w", err)
	}

	return s.render(ctx, item)
}

// Delete removes the agenda item. Deletion is rejected while sub-items or
// information object links still reference it.
func (s *Service) Delete(ctx context.Context, publicID string) error {
	return s.items.Delete(ctx, publicID)
}

// applyInput copies input fields onto the item, resolving relationship public
// identifiers. A parent reference resolving to the item itself is rejected.
func (s *Service) applyInput(ctx context.Context, item *AgendaItem, input Input) error {
	meetingID, err := s.meetings.ResolveID(ctx, input.Meeting)
	if err != nil {
		return fmt.Errorf("resolving meeting: %w", err)
	}
	item.MeetingID = meetingID
	item.MeetingPublicID = input.Meeting

	item.ParentItemID = nil
	item.ParentPublicID = ""
	if input.ParentItem != "" {
		parentID, err := s.items.ResolveID(ctx, input.ParentItem)
		if err != nil {
			return fmt.Errorf("resolving parent item: %w", err)
		}
		if item.ID != 0 && parentID == item.ID {
			return repository.ErrSelfReference
		}
		item.ParentItemID = &parentID
		item.ParentPublicID = input.ParentItem
	}

	item.Organisation = organisation.Encode(input.Organisation)
	item.DossierType = input.DossierType
	item.Name = input.Name
	item.WebLink = input.WebLink
	item.Description = input.Description
	item.OrderNumber = input.OrderNumber
	item.Heading = input.Heading
	item.Misc = input.Misc
	item.Start = input.Start
	item.End = input.End
	item.Location = input.Location
	item.PlannedOrderNumber = input.PlannedOrderNumber
	item.PlannedStart = input.PlannedStart
	item.PlannedEnd = input.PlannedEnd
	item.IsHammerPiece = input.IsHammerPiece
	item.IsHandled = input.IsHandled
	item.IsClosed = input.IsClosed
	return nil
}

func (s *Service) render(ctx context.Context, item *AgendaItem) (*View, error) {
	org, err := organisation.Decode(item.Organisation)
	if err != nil {
		s.logger.Error("corrupt organisation triplet",
			"agendaitem", item.PublicID, "type", string(item.Organisation.Type))
		return nil, fmt.Errorf("decoding organisation of agenda item %s: %w", item.PublicID, err)
	}

	subItems, err := s.items.SubItemPublicIDs(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("loading sub-items: %w", err)
	}

	view := &View{
		Reference:          s.refs.For(reference.KindAgendaItem, item.PublicID),
		Organisation:       org,
		DossierType:        item.DossierType,
		Name:               item.Name,
		WebLink:            item.WebLink,
		Meeting:            s.refs.For(reference.KindMeeting, item.MeetingPublicID),
		SubItems:           s.refs.ForAll(reference.KindAgendaItem, subItems),
		Description:        item.Description,
		OrderNumber:        item.OrderNumber,
		Heading:            item.Heading,
		Misc:               item.Misc,
		Start:              item.Start,
		End:                item.End,
		Location:           item.Location,
		PlannedOrderNumber: item.PlannedOrderNumber,
		PlannedStart:       item.PlannedStart,
		PlannedEnd:         item.PlannedEnd,
		IsHammerPiece:      item.IsHammerPiece,
		IsHandled:          item.IsHandled,
		IsClosed:           item.IsClosed,
	}
	if item.ParentPublicID != "" {
		view.ParentItem = s.refs.For(reference.KindAgendaItem, item.ParentPublicID)
	}
	return view, nil
}

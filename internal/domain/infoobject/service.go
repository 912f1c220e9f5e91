package infoobject

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

// Service handles information object business logic.
type Service struct {
	objects Repository
	items   AgendaItemResolver
	refs    *reference.Builder
	logger  *slog.Logger
}

// NewService creates a new information object service.
func NewService(objects Repository, items AgendaItemResolver, refs *reference.Builder, logger *slog.Logger) *Service {
	return &Service{objects: objects, items: items, refs: refs, logger: logger}
}

// Filter narrows an information object listing.
type Filter struct {
	AgendaItem  string
	WooCategory string
}

// Create assigns a fresh public identifier, resolves the related object and
// agenda item references and persists the object together with its link rows.
// Any resolution failure aborts the whole write.
func (s *Service) Create(ctx context.Context, input Input) (*View, error) {
	obj := &InformationObject{PublicID: uuid.NewString()}
	itemIDs, err := s.applyInput(ctx, obj, input)
	if err != nil {
		return nil, err
	}

	id, err := s.objects.Create(ctx, obj, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("creating information object: %w", err)
	}
	obj.ID = id

	return s.render(ctx, obj)
}

// Get returns the rendered information object with the given public
// identifier.
func (s *Service) Get(ctx context.Context, publicID string) (*View, error) {
	obj, err := s.objects.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, obj)
}

// List returns one page of rendered information objects ordered by internal
// identifier.
func (s *Service) List(ctx context.Context, filter Filter, page pagination.Request) (pagination.Page[View], error) {
	var repoFilter repository.InformationObjectFilter
	repoFilter.Category = filter.WooCategory

	if filter.AgendaItem != "" {
		itemID, err := s.items.ResolveID(ctx, filter.AgendaItem)
		if err != nil {
			return pagination.Page[View]{}, fmt.Errorf("resolving agenda item filter: %w", err)
		}
		repoFilter.AgendaItemID = &itemID
	}

	objects, total, err := s.objects.List(ctx, repoFilter, page.Limit, page.Offset)
	if err != nil {
		return pagination.Page[View]{}, fmt.Errorf("listing information objects: %w", err)
	}

	views := make([]View, 0, len(objects))
	for i := range objects {
		view, err := s.render(ctx, &objects[i])
		if err != nil {
			return pagination.Page[View]{}, err
		}
		views = append(views, *view)
	}

	return pagination.New(views, s.refs.Collection(reference.KindInformationObject), page, total), nil
}

// Replace overwrites every field and every agenda item link of the object
// while preserving its public and internal identifiers.
func (s *Service) Replace(ctx context.Context, publicID string, input Input) (*View, error) {
	existing, err := s.objects.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	obj := &InformationObject{ID: existing.ID, PublicID: existing.PublicID}
	itemIDs, err := s.applyInput(ctx, obj, input)
	if err != nil {
		return nil, err
	}

	if err := s.objects.Replace(ctx, obj, itemIDs); err != nil {
		return nil, fmt.Errorf("replacing information object: %w", err)
	}

	return s.render(ctx, obj)
}

// Delete removes the object and its link rows. Deletion is rejected while
// other information objects still name it as their related object.
func (s *Service) Delete(ctx context.Context, publicID string) error {
	return s.objects.Delete(ctx, publicID)
}

func (s *Service) applyInput(ctx context.Context, obj *InformationObject, input Input) ([]int64, error) {
	obj.RelatedObjectID = nil
	obj.RelatedPublicID = ""
	obj.RelatedRole = ""
	if input.RelatedObject != nil {
		relatedID, err := s.objects.ResolveID(ctx, input.RelatedObject.Object)
		if err != nil {
			return nil, fmt.Errorf("resolving related information object: %w", err)
		}
		if obj.ID != 0 && relatedID == obj.ID {
			return nil, repository.ErrSelfReference
		}
		obj.RelatedObjectID = &relatedID
		obj.RelatedPublicID = input.RelatedObject.Object
		obj.RelatedRole = input.RelatedObject.Role
	}

	itemIDs := make([]int64, 0, len(input.AgendaItems))
	for _, publicID := range input.AgendaItems {
		itemID, err := s.items.ResolveID(ctx, publicID)
		if err != nil {
			return nil, fmt.Errorf("resolving agenda item %s: %w", publicID, err)
		}
		itemIDs = append(itemIDs, itemID)
	}

	obj.Organisation = organisation.Encode(input.Organisation)
	obj.WebLink = input.WebLink
	obj.Title = input.Title
	obj.WooCategory = input.WooCategory
	obj.DateSubmitted = input.DateSubmitted
	obj.ExternalID = input.ExternalID
	obj.Author = input.Author
	obj.SourceOrganisation = input.SourceOrganisation
	obj.CreationDate = input.CreationDate
	obj.ObjectType = input.ObjectType
	obj.Format = input.Format
	obj.Description = input.Description
	obj.Language = input.Language
	return itemIDs, nil
}

func (s *Service) render(ctx context.Context, obj *InformationObject) (*View, error) {
	org, err := organisation.Decode(obj.Organisation)
	if err != nil {
		s.logger.Error("corrupt organisation triplet",
			"informationobject", obj.PublicID, "type", string(obj.Organisation.Type))
		return nil, fmt.Errorf("decoding organisation of information object %s: %w", obj.PublicID, err)
	}

	itemIDs, err := s.objects.AgendaItemPublicIDs(ctx, obj.ID)
	if err != nil {
		return nil, fmt.Errorf("loading agenda items: %w", err)
	}
	meetingIDs, err := s.objects.MeetingPublicIDs(ctx, obj.ID)
	if err != nil {
		return nil, fmt.Errorf("loading meetings: %w", err)
	}

	view := &View{
		Reference:          s.refs.For(reference.KindInformationObject, obj.PublicID),
		Organisation:       org,
		WebLink:            obj.WebLink,
		Title:              obj.Title,
		WooCategory:        obj.WooCategory,
		DateSubmitted:      obj.DateSubmitted,
		ExternalID:         obj.ExternalID,
		Author:             obj.Author,
		SourceOrganisation: obj.SourceOrganisation,
		CreationDate:       obj.CreationDate,
		ObjectType:         obj.ObjectType,
		Format:             obj.Format,
		Description:        obj.Description,
		Language:           obj.Language,
		AgendaItems:        s.refs.ForAll(reference.KindAgendaItem, itemIDs),
		Meetings:           s.refs.ForAll(reference.KindMeeting, meetingIDs),
	}
	if obj.RelatedPublicID != "" {
		view.RelatedObject = &RelatedObject{
			Object: s.refs.For(reference.KindInformationObject, obj.RelatedPublicID),
			Role:   obj.RelatedRole,
		}
	}
	return view, nil
}

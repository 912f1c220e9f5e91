package meeting

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

// Service handles meeting business logic: public identifier assignment,
// relationship resolution at the write boundary and reference rendering.
type Service struct {
	meetings Repository
	refs     *reference.Builder
	logger   *slog.Logger
}

// NewService creates a new meeting service.
func NewService(meetings Repository, refs *reference.Builder, logger *slog.Logger) *Service {
	return &Service{meetings: meetings, refs: refs, logger: logger}
}

// Filter narrows a meeting listing. Related resources are named by public
// identifier; translation to internal identifiers happens before querying.
type Filter struct {
	ParentMeeting    string
	OrganisationCode string
}

// Create assigns a fresh public identifier, resolves the parent reference and
// persists the meeting. A parent that does not resolve aborts the whole write.
func (s *Service) Create(ctx context.Context, input Input) (*View, error) {
	m := &Meeting{PublicID: uuid.NewString()}
	applyInput(m, input)

	if input.ParentMeeting != "" {
		parentID, err := s.meetings.ResolveID(ctx, input.ParentMeeting)
		if err != nil {
			return nil, fmt.Errorf("resolving parent meeting: %w", err)
		}
		m.ParentMeetingID = &parentID
		m.ParentPublicID = input.ParentMeeting
	}

	id, err := s.meetings.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("creating meeting: %w", err)
	}
	m.ID = id

	return s.render(ctx, m)
}

// Get returns the rendered meeting with the given public identifier.
func (s *Service) Get(ctx context.Context, publicID string) (*View, error) {
	m, err := s.meetings.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, m)
}

// List returns one page of rendered meetings ordered by internal identifier.
func (s *Service) List(ctx context.Context, filter Filter, page pagination.Request) (pagination.Page[View], error) {
	var repoFilter repository.MeetingFilter
	repoFilter.OrganisationCode = filter.OrganisationCode

	if filter.ParentMeeting != "" {
		parentID, err := s.meetings.ResolveID(ctx, filter.ParentMeeting)
		if err != nil {
			return pagination.Page[View]{}, fmt.Errorf("resolving parent meeting filter: %w", err)
		}
		repoFilter.ParentID = &parentID
	}

	meetings, total, err := s.meetings.List(ctx, repoFilter, page.Limit, page.Offset)
	if err != nil {
		return pagination.Page[View]{}, fmt.Errorf("listing meetings: %w", err)
	}

	views := make([]View, 0, len(meetings))
	for i := range meetings {
		view, err := s.render(ctx, &meetings[i])
		if err != nil {
			return pagination.Page[View]{}, err
		}
		views = append(views, *view)
	}

	return pagination.New(views, s.refs.Collection(reference.KindMeeting), page, total), nil
}

// Replace overwrites every field of the meeting while preserving its public
// and internal identifiers. The parent reference is re-resolved; pointing it
// at the meeting itself is rejected before anything is persisted.
func (s *Service) Replace(ctx context.Context, publicID string, input Input) (*View, error) {
	existing, err := s.meetings.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	m := &Meeting{ID: existing.ID, PublicID: existing.PublicID}
	applyInput(m, input)

	if input.ParentMeeting != "" {
		parentID, err := s.meetings.ResolveID(ctx, input.ParentMeeting)
		if err != nil {
			return nil, fmt.Errorf("resolving parent meeting: %w", err)
		}
		if parentID == m.ID {
			return nil, repository.ErrSelfReference
		}
		m.ParentMeetingID = &parentID
		m.ParentPublicID = input.ParentMeeting
	}

	if err := s.meetings.Replace(ctx, m); err != nil {
		return nil, fmt.Errorf("replacing meeting: %w", err)
	}

	return s.render(ctx, m)
}

// Delete removes the meeting. Deletion is rejected while sub-meetings or
// agenda items still reference it.
func (s *Service) Delete(ctx context.Context, publicID string) error {
	return s.meetings.Delete(ctx, publicID)
}

func applyInput(m *Meeting, input Input) {
	m.Organisation = organisation.Encode(input.Organisation)
	m.DossierType = input.DossierType
	m.Name = input.Name
	m.WebLink = input.WebLink
	m.Start = input.Start
	m.End = input.End
	m.ParentMeetingID = nil
	m.ParentPublicID = ""
	m.CommitteeID = input.CommitteeID
	m.CommitteeName = input.CommitteeName
	m.PlannedStart = input.PlannedStart
	m.PlannedEnd = input.PlannedEnd
	m.PlannedDate = input.PlannedDate
	m.Location = input.Location
	m.Status = input.Status
	m.Note = input.Note
	m.MeetingDate = input.MeetingDate
	m.MeetingType = input.MeetingType
}

func (s *Service) render(ctx context.Context, m *Meeting) (*View, error) {
	org, err := organisation.Decode(m.Organisation)
	if err != nil {
		s.logger.Error("corrupt organisation triplet",
			"meeting", m.PublicID, "type", string(m.Organisation.Type))
		return nil, fmt.Errorf("decoding organisation of meeting %s: %w", m.PublicID, err)
	}

	subMeetings, err := s.meetings.SubMeetingPublicIDs(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("loading sub-meetings: %w", err)
	}
	agendaItems, err := s.meetings.AgendaItemPublicIDs(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("loading agenda items: %w", err)
	}
	infoObjects, err := s.meetings.InformationObjectPublicIDs(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("loading information objects: %w", err)
	}

	view := &View{
		Reference:          s.refs.For(reference.KindMeeting, m.PublicID),
		Organisation:       org,
		DossierType:        m.DossierType,
		Name:               m.Name,
		WebLink:            m.WebLink,
		Start:              m.Start,
		End:                m.End,
		PlannedStart:       m.PlannedStart,
		PlannedEnd:         m.PlannedEnd,
		PlannedDate:        m.PlannedDate,
		Location:           m.Location,
		Status:             m.Status,
		Note:               m.Note,
		MeetingDate:        m.MeetingDate,
		MeetingType:        m.MeetingType,
		SubMeetings:        s.refs.ForAll(reference.KindMeeting, subMeetings),
		AgendaItems:        s.refs.ForAll(reference.KindAgendaItem, agendaItems),
		InformationObjects: s.refs.ForAll(reference.KindInformationObject, infoObjects),
	}
	if m.ParentPublicID != "" {
		view.ParentMeeting = s.refs.For(reference.KindMeeting, m.ParentPublicID)
	}
	if m.CommitteeID != "" && m.CommitteeName != "" {
		view.Committee = &Committee{Identifier: m.CommitteeID, Name: m.CommitteeName}
	}
	return view, nil
}

package transport

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openoverheid/ori/internal/domain/agendaitem"
	"github.com/openoverheid/ori/internal/domain/infoobject"
	"github.com/openoverheid/ori/internal/domain/meeting"
	"github.com/openoverheid/ori/internal/domain/organisation"
)

// orgPayload carries the organisation union over JSON. Exactly one of the
// three variant keys is present, mirroring the tagged form of the API:
// {"municipality": "gm0363", "name": "Gemeente Amsterdam"}.
type orgPayload struct {
	Org organisation.Organisation
}

func (p orgPayload) MarshalJSON() ([]byte, error) {
	switch v := p.Org.(type) {
	case organisation.Municipality:
		return json.Marshal(map[string]string{"municipality": v.JurisdictionCode, "name": v.DisplayName})
	case organisation.Province:
		return json.Marshal(map[string]string{"province": v.JurisdictionCode, "name": v.DisplayName})
	case organisation.WaterAuthority:
		return json.Marshal(map[string]string{"water_authority": v.JurisdictionCode, "name": v.DisplayName})
	default:
		return nil, fmt.Errorf("organisation is missing")
	}
}

func (p *orgPayload) UnmarshalJSON(data []byte) error {
	var raw struct {
		Municipality   *string `json:"municipality"`
		Province       *string `json:"province"`
		WaterAuthority *string `json:"water_authority"`
		Name           string  `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.Municipality != nil && raw.Province == nil && raw.WaterAuthority == nil:
		p.Org = organisation.Municipality{JurisdictionCode: *raw.Municipality, DisplayName: raw.Name}
	case raw.Province != nil && raw.Municipality == nil && raw.WaterAuthority == nil:
		p.Org = organisation.Province{JurisdictionCode: *raw.Province, DisplayName: raw.Name}
	case raw.WaterAuthority != nil && raw.Municipality == nil && raw.Province == nil:
		p.Org = organisation.WaterAuthority{JurisdictionCode: *raw.WaterAuthority, DisplayName: raw.Name}
	default:
		return fmt.Errorf("organisation must carry exactly one of municipality, province or water_authority")
	}
	return nil
}

// publicIDFromRef accepts either a bare public identifier or a full
// reference URL, with or without a trailing slash, and returns the public
// identifier. A reference that carries no identifier at all is returned
// unchanged so that resolution fails on it instead of the filter being
// silently dropped.
func publicIDFromRef(ref string) string {
	trimmed := strings.TrimRight(ref, "/")
	if trimmed == "" {
		return ref
	}
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// validateOrganisation rejects request bodies that omit the organisation
// entirely. When the key is absent the union decoder never runs, so the nil
// union has to be caught here before it reaches a service.
func validateOrganisation(p orgPayload) error {
	if p.Org == nil {
		return fmt.Errorf("organisation is required and must carry exactly one of municipality, province or water_authority")
	}
	return nil
}

// listEnvelope is the paginated collection response shape.
type listEnvelope[T any] struct {
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Meeting payloads

type meetingRequest struct {
	Organisation  orgPayload `json:"organisation"`
	DossierType   string     `json:"dossier_type"`
	Name          string     `json:"name"`
	WebLink       string     `json:"web_link,omitempty"`
	Start         string     `json:"start,omitempty"`
	End           string     `json:"end,omitempty"`
	ParentMeeting string     `json:"parent_meeting,omitempty"`
	Committee     *committee `json:"committee,omitempty"`
	PlannedStart  string     `json:"planned_start,omitempty"`
	PlannedEnd    string     `json:"planned_end,omitempty"`
	PlannedDate   string     `json:"planned_date,omitempty"`
	Location      string     `json:"location,omitempty"`
	Status        string     `json:"status,omitempty"`
	Note          string     `json:"note,omitempty"`
	MeetingDate   string     `json:"meeting_date,omitempty"`
	MeetingType   string     `json:"meeting_type,omitempty"`
}

type committee struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

func (r *meetingRequest) validate() error {
	return validateOrganisation(r.Organisation)
}

func (r meetingRequest) toInput() meeting.Input {
	input := meeting.Input{
		Organisation:  r.Organisation.Org,
		DossierType:   r.DossierType,
		Name:          r.Name,
		WebLink:       r.WebLink,
		Start:         r.Start,
		End:           r.End,
		ParentMeeting: "",
		PlannedStart:  r.PlannedStart,
		PlannedEnd:    r.PlannedEnd,
		PlannedDate:   r.PlannedDate,
		Location:      r.Location,
		Status:        r.Status,
		Note:          r.Note,
		MeetingDate:   r.MeetingDate,
		MeetingType:   r.MeetingType,
	}
	if r.ParentMeeting != "" {
		input.ParentMeeting = publicIDFromRef(r.ParentMeeting)
	}
	if r.Committee != nil {
		input.CommitteeID = r.Committee.Identifier
		input.CommitteeName = r.Committee.Name
	}
	return input
}

type meetingResponse struct {
	Reference          string     `json:"reference"`
	Organisation       orgPayload `json:"organisation"`
	DossierType        string     `json:"dossier_type"`
	Name               string     `json:"name"`
	WebLink            string     `json:"web_link,omitempty"`
	Start              string     `json:"start,omitempty"`
	End                string     `json:"end,omitempty"`
	ParentMeeting      string     `json:"parent_meeting,omitempty"`
	Committee          *committee `json:"committee,omitempty"`
	PlannedStart       string     `json:"planned_start,omitempty"`
	PlannedEnd         string     `json:"planned_end,omitempty"`
	PlannedDate        string     `json:"planned_date,omitempty"`
	Location           string     `json:"location,omitempty"`
	Status             string     `json:"status,omitempty"`
	Note               string     `json:"note,omitempty"`
	MeetingDate        string     `json:"meeting_date,omitempty"`
	MeetingType        string     `json:"meeting_type,omitempty"`
	SubMeetings        []string   `json:"sub_meetings"`
	AgendaItems        []string   `json:"agenda_items"`
	InformationObjects []string   `json:"information_objects"`
}

func renderMeeting(v *meeting.View) meetingResponse {
	resp := meetingResponse{
		Reference:          v.Reference,
		Organisation:       orgPayload{Org: v.Organisation},
		DossierType:        v.DossierType,
		Name:               v.Name,
		WebLink:            v.WebLink,
		Start:              v.Start,
		End:                v.End,
		ParentMeeting:      v.ParentMeeting,
		PlannedStart:       v.PlannedStart,
		PlannedEnd:         v.PlannedEnd,
		PlannedDate:        v.PlannedDate,
		Location:           v.Location,
		Status:             v.Status,
		Note:               v.Note,
		MeetingDate:        v.MeetingDate,
		MeetingType:        v.MeetingType,
		SubMeetings:        v.SubMeetings,
		AgendaItems:        v.AgendaItems,
		InformationObjects: v.InformationObjects,
	}
	if v.Committee != nil {
		resp.Committee = &committee{Identifier: v.Committee.Identifier, Name: v.Committee.Name}
	}
	return resp
}

// Agenda item payloads

type agendaItemRequest struct {
	Organisation       orgPayload `json:"organisation"`
	DossierType        string     `json:"dossier_type"`
	Name               string     `json:"name"`
	WebLink            string     `json:"web_link,omitempty"`
	Meeting            string     `json:"meeting"`
	ParentItem         string     `json:"parent_item,omitempty"`
	Description        string     `json:"description,omitempty"`
	OrderNumber        string     `json:"order_number,omitempty"`
	Heading            string     `json:"heading,omitempty"`
	Misc               string     `json:"misc,omitempty"`
	Start              string     `json:"start,omitempty"`
	End                string     `json:"end,omitempty"`
	Location           string     `json:"location,omitempty"`
	PlannedOrderNumber string     `json:"planned_order_number,omitempty"`
	PlannedStart       string     `json:"planned_start,omitempty"`
	PlannedEnd         string     `json:"planned_end,omitempty"`
	IsHammerPiece      *bool      `json:"is_hammer_piece,omitempty"`
	IsHandled          *bool      `json:"is_handled,omitempty"`
	IsClosed           *bool      `json:"is_closed,omitempty"`
}

func (r *agendaItemRequest) validate() error {
	return validateOrganisation(r.Organisation)
}

func (r agendaItemRequest) toInput() agendaitem.Input {
	input := agendaitem.Input{
		Organisation:       r.Organisation.Org,
		DossierType:        r.DossierType,
		Name:               r.Name,
		WebLink:            r.WebLink,
		Meeting:            publicIDFromRef(r.Meeting),
		Description:        r.Description,
		OrderNumber:        r.OrderNumber,
		Heading:            r.Heading,
		Misc:               r.Misc,
		Start:              r.Start,
		End:                r.End,
		Location:           r.Location,
		PlannedOrderNumber: r.PlannedOrderNumber,
		PlannedStart:       r.PlannedStart,
		PlannedEnd:         r.PlannedEnd,
		IsHammerPiece:      r.IsHammerPiece,
		IsHandled:          r.IsHandled,
		IsClosed:           r.IsClosed,
	}
	if r.ParentItem != "" {
		input.ParentItem = publicIDFromRef(r.ParentItem)
	}
	return input
}

type agendaItemResponse struct {
	Reference          string     `json:"reference"`
	Organisation       orgPayload `json:"organisation"`
	DossierType        string     `json:"dossier_type"`
	Name               string     `json:"name"`
	WebLink            string     `json:"web_link,omitempty"`
	Meeting            string     `json:"meeting"`
	ParentItem         string     `json:"parent_item,omitempty"`
	SubItems           []string   `json:"sub_items"`
	Description        string     `json:"description,omitempty"`
	OrderNumber        string     `json:"order_number,omitempty"`
	Heading            string     `json:"heading,omitempty"`
	Misc               string     `json:"misc,omitempty"`
	Start              string     `json:"start,omitempty"`
	End                string     `json:"end,omitempty"`
	Location           string     `json:"location,omitempty"`
	PlannedOrderNumber string     `json:"planned_order_number,omitempty"`
	PlannedStart       string     `json:"planned_start,omitempty"`
	PlannedEnd         string     `json:"planned_end,omitempty"`
	IsHammerPiece      *bool      `json:"is_hammer_piece,omitempty"`
	IsHandled          *bool      `json:"is_handled,omitempty"`
	IsClosed           *bool      `json:"is_closed,omitempty"`
}

func renderAgendaItem(v *agendaitem.View) agendaItemResponse {
	return agendaItemResponse{
		Reference:          v.Reference,
		Organisation:       orgPayload{Org: v.Organisation},
		DossierType:        v.DossierType,
		Name:               v.Name,
		WebLink:            v.WebLink,
		Meeting:            v.Meeting,
		ParentItem:         v.ParentItem,
		SubItems:           v.SubItems,
		Description:        v.Description,
		OrderNumber:        v.OrderNumber,
		Heading:            v.Heading,
		Misc:               v.Misc,
		Start:              v.Start,
		End:                v.End,
		Location:           v.Location,
		PlannedOrderNumber: v.PlannedOrderNumber,
		PlannedStart:       v.PlannedStart,
		PlannedEnd:         v.PlannedEnd,
		IsHammerPiece:      v.IsHammerPiece,
		IsHandled:          v.IsHandled,
		IsClosed:           v.IsClosed,
	}
}

// Information object payloads

type relatedObject struct {
	Object string `json:"object"`
	Role   string `json:"role"`
}

type infoObjectRequest struct {
	Organisation       orgPayload     `json:"organisation"`
	WebLink            string         `json:"web_link"`
	Title              string         `json:"title"`
	WooCategory        string         `json:"woo_category"`
	DateSubmitted      string         `json:"date_submitted"`
	ExternalID         string         `json:"external_id,omitempty"`
	Author             string         `json:"author,omitempty"`
	SourceOrganisation string         `json:"source_organisation,omitempty"`
	CreationDate       string         `json:"creation_date,omitempty"`
	ObjectType         string         `json:"object_type,omitempty"`
	Format             string         `json:"format,omitempty"`
	Description        string         `json:"description,omitempty"`
	Language           string         `json:"language,omitempty"`
	RelatedObject      *relatedObject `json:"related_object,omitempty"`
	AgendaItems        []string       `json:"agenda_items,omitempty"`
}

func (r *infoObjectRequest) validate() error {
	return validateOrganisation(r.Organisation)
}

func (r infoObjectRequest) toInput() infoobject.Input {
	input := infoobject.Input{
		Organisation:       r.Organisation.Org,
		WebLink:            r.WebLink,
		Title:              r.Title,
		WooCategory:        r.WooCategory,
		DateSubmitted:      r.DateSubmitted,
		ExternalID:         r.ExternalID,
		Author:             r.Author,
		SourceOrganisation: r.SourceOrganisation,
		CreationDate:       r.CreationDate,
		ObjectType:         r.ObjectType,
		Format:             r.Format,
		Description:        r.Description,
		Language:           r.Language,
	}
	if r.RelatedObject != nil {
		input.RelatedObject = &infoobject.RelatedObject{
			Object: publicIDFromRef(r.RelatedObject.Object),
			Role:   r.RelatedObject.Role,
		}
	}
	for _, ref := range r.AgendaItems {
		input.AgendaItems = append(input.AgendaItems, publicIDFromRef(ref))
	}
	return input
}

type infoObjectResponse struct {
	Reference          string         `json:"reference"`
	Organisation       orgPayload     `json:"organisation"`
	WebLink            string         `json:"web_link"`
	Title              string         `json:"title"`
	WooCategory        string         `json:"woo_category"`
	DateSubmitted      string         `json:"date_submitted"`
	ExternalID         string         `json:"external_id,omitempty"`
	Author             string         `json:"author,omitempty"`
	SourceOrganisation string         `json:"source_organisation,omitempty"`
	CreationDate       string         `json:"creation_date,omitempty"`
	ObjectType         string         `json:"object_type,omitempty"`
	Format             string         `json:"format,omitempty"`
	Description        string         `json:"description,omitempty"`
	Language           string         `json:"language,omitempty"`
	RelatedObject      *relatedObject `json:"related_object,omitempty"`
	AgendaItems        []string       `json:"agenda_items"`
	Meetings           []string       `json:"meetings"`
}

func renderInfoObject(v *infoobject.View) infoObjectResponse {
	resp := infoObjectResponse{
		Reference:          v.Reference,
		Organisation:       orgPayload{Org: v.Organisation},
		WebLink:            v.WebLink,
		Title:              v.Title,
		WooCategory:        v.WooCategory,
		DateSubmitted:      v.DateSubmitted,
		ExternalID:         v.ExternalID,
		Author:             v.Author,
		SourceOrganisation: v.SourceOrganisation,
		CreationDate:       v.CreationDate,
		ObjectType:         v.ObjectType,
		Format:             v.Format,
		Description:        v.Description,
		Language:           v.Language,
		AgendaItems:        v.AgendaItems,
		Meetings:           v.Meetings,
	}
	if v.RelatedObject != nil {
		resp.RelatedObject = &relatedObject{Object: v.RelatedObject.Object, Role: v.RelatedObject.Role}
	}
	return resp
}

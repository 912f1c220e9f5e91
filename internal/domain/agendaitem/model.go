package agendaitem

import "github.com/openoverheid/ori/internal/domain/organisation"

// AgendaItem is the stored form of an agenda item. Relationship columns hold
// internal identifiers; the *PublicID fields are read-model conveniences
// filled in by the repository for rendering.
type AgendaItem struct {
	ID       int64
	PublicID string

	Organisation organisation.Triplet

	DossierType string
	Name        string
	WebLink     string

	MeetingID       int64
	MeetingPublicID string

	ParentItemID   *int64
	ParentPublicID string

	Description string
	OrderNumber string
	Heading     string
	Misc        string

	Start    string
	End      string
	Location string

	PlannedOrderNumber string
	PlannedStart       string
	PlannedEnd         string

	IsHammerPiece *bool
	IsHandled     *bool
	IsClosed      *bool
}

// Input describes an agenda item as submitted by a caller. Meeting and
// ParentItem name related resources by public identifier; Meeting is
// required, ParentItem marks the item as a sub-item when set.
type Input struct {
	Organisation organisation.Organisation

	DossierType string
	Name        string
	WebLink     string

	Meeting    string
	ParentItem string

	Description string
	OrderNumber string
	Heading     string
	Misc        string

	Start    string
	End      string
	Location string

	PlannedOrderNumber string
	PlannedStart       string
	PlannedEnd         string

	IsHammerPiece *bool
	IsHandled     *bool
	IsClosed      *bool
}

// View is the rendered form of an agenda item.
type View struct {
	Reference    string
	Organisation organisation.Organisation

	DossierType string
	Name        string
	WebLink     string

	Meeting    string
	ParentItem string
	SubItems   []string

	Description string
	OrderNumber string
	Heading     string
	Misc        string

	Start    string
	End      string
	Location string

	PlannedOrderNumber string
	PlannedStart       string
	PlannedEnd         string

	IsHammerPiece *bool
	IsHandled     *bool
	IsClosed      *bool
}

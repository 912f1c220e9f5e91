package infoobject

import "github.com/openoverheid/ori/internal/domain/organisation"

// InformationObject is the stored form of an information object. The related
// object relationship is a self-referential internal foreign key plus a role;
// links to agenda items live in a separate link table keyed by internal
// identifiers.
type InformationObject struct {
	ID       int64
	PublicID string

	Organisation organisation.Triplet

	WebLink       string
	Title         string
	WooCategory   string
	DateSubmitted string

	ExternalID         string
	Author             string
	SourceOrganisation string
	CreationDate       string
	ObjectType         string
	Format             string
	Description        string
	Language           string

	RelatedObjectID *int64
	RelatedPublicID string
	RelatedRole     string
}

// RelatedObject points at another information object and names the role the
// target plays, e.g. an attachment or an earlier version.
type RelatedObject struct {
	Object string
	Role   string
}

// Input describes an information object as submitted by a caller. Related
// resources are named by public identifier.
type Input struct {
	Organisation organisation.Organisation

	WebLink       string
	Title         string
	WooCategory   string
	DateSubmitted string

	ExternalID         string
	Author             string
	SourceOrganisation string
	CreationDate       string
	ObjectType         string
	Format             string
	Description        string
	Language           string

	// RelatedObject links to another information object, optional.
	RelatedObject *RelatedObject

	// AgendaItems are the public identifiers of agenda items this object
	// belongs to.
	AgendaItems []string
}

// View is the rendered form of an information object. Meetings holds the
// references of the meetings reached through the linked agenda items.
type View struct {
	Reference    string
	Organisation organisation.Organisation

	WebLink       string
	Title         string
	WooCategory   string
	DateSubmitted string

	ExternalID         string
	Author             string
	SourceOrganisation string
	CreationDate       string
	ObjectType         string
	Format             string
	Description        string
	Language           string

	RelatedObject *RelatedObject

	AgendaItems []string
	Meetings    []string
}

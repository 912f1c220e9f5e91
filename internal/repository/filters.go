package repository

// Filters carry already-resolved internal identifiers. Translating a related
// resource's public identifier into its internal identifier happens in the
// domain services, before the store is queried; no public identifier ever
// reaches a repository filter.

// MeetingFilter narrows a meeting listing.
type MeetingFilter struct {
	ParentID         *int64
	OrganisationCode string
}

// AgendaItemFilter narrows an agenda item listing.
type AgendaItemFilter struct {
	MeetingID *int64
	ParentID  *int64
}

// InformationObjectFilter narrows an information object listing.
type InformationObjectFilter struct {
	AgendaItemID *int64
	Category     string
}

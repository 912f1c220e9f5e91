package meeting

import "github.com/openoverheid/ori/internal/domain/organisation"

// Meeting is the stored form of a meeting record.
//
// ID is the store-assigned internal identifier, PublicID the immutable
// external handle. Relationship columns hold internal identifiers only;
// ParentPublicID is a read-model convenience filled in by the repository so
// the parent reference can be rendered without a second lookup.
type Meeting struct {
	ID       int64
	PublicID string

	Organisation organisation.Triplet

	DossierType string
	Name        string
	WebLink     string
	Start       string
	End         string

	ParentMeetingID *int64
	ParentPublicID  string

	CommitteeID   string
	CommitteeName string

	PlannedStart string
	PlannedEnd   string
	PlannedDate  string
	Location     string
	Status       string
	Note         string
	MeetingDate  string
	MeetingType  string
}

// Input describes a meeting as submitted by a caller. Relationships name
// related resources by their public identifiers.
type Input struct {
	Organisation organisation.Organisation

	DossierType string
	Name        string
	WebLink     string
	Start       string
	End         string

	// ParentMeeting is the public identifier of the parent meeting, empty
	// when the meeting is not a sub-meeting.
	ParentMeeting string

	CommitteeID   string
	CommitteeName string

	PlannedStart string
	PlannedEnd   string
	PlannedDate  string
	Location     string
	Status       string
	Note         string
	MeetingDate  string
	MeetingType  string
}

// Committee is the body that organised the meeting. Present only when both
// fields are set.
type Committee struct {
	Identifier string
	Name       string
}

// View is the rendered form of a meeting: every relationship is an absolute
// reference string and internal identifiers do not appear.
type View struct {
	Reference    string
	Organisation organisation.Organisation

	DossierType string
	Name        string
	WebLink     string
	Start       string
	End         string

	ParentMeeting string
	Committee     *Committee

	PlannedStart string
	PlannedEnd   string
	PlannedDate  string
	Location     string
	Status       string
	Note         string
	MeetingDate  string
	MeetingType  string

	// One-to-many references, ordered by internal identifier. Always
	// non-nil: no agenda items renders as an empty sequence.
	SubMeetings        []string
	AgendaItems        []string
	InformationObjects []string
}

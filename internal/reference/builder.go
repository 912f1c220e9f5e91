package reference

import (
	"fmt"
	"net/url"
	"strings"
)

// Kind is the path segment of a resource collection.
type Kind string

const (
	KindMeeting           Kind = "meetings"
	KindAgendaItem        Kind = "agendaitems"
	KindInformationObject Kind = "informationobjects"
)

// Builder renders absolute references to resources from a configured base
// address. Construction validates the base once; rendering never fails.
type Builder struct {
	base string
}

// NewBuilder validates the base URL and returns a Builder. A malformed base
// is a configuration error and should be fatal at startup.
func NewBuilder(baseURL string) (*Builder, error) {
	trimmed := strings.TrimRight(baseURL, "/")
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	return &Builder{base: trimmed}, nil
}

// For renders the absolute reference of a single resource.
func (b *Builder) For(kind Kind, publicID string) string {
	return fmt.Sprintf("%s/%s/%s", b.base, kind, publicID)
}

// ForAll renders references for each public identifier, preserving order.
// Always returns a non-nil slice; empty input yields an empty sequence so
// one-to-many fields serialize as [] rather than null.
func (b *Builder) ForAll(kind Kind, publicIDs []string) []string {
	refs := make([]string, 0, len(publicIDs))
	for _, id := range publicIDs {
		refs = append(refs, b.For(kind, id))
	}
	return refs
}

// Collection renders the absolute reference of a resource collection.
func (b *Builder) Collection(kind Kind) string {
	return fmt.Sprintf("%s/%s", b.base, kind)
}

package pagination

import (
	"fmt"
	"net/url"
)

const (
	// DefaultLimit is the page size used when the caller does not ask for one.
	DefaultLimit = 20
	// MaxLimit caps the page size. Requests above it are clamped, not rejected.
	MaxLimit = 100
)

// Request is a normalized page request.
type Request struct {
	Limit  int
	Offset int
}

// NewRequest clamps raw limit/offset values into a valid page request.
func NewRequest(limit, offset int) Request {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Request{Limit: limit, Offset: offset}
}

// Page is one bounded slice of a collection plus navigation links.
type Page[T any] struct {
	Items    []T
	Next     *string
	Previous *string
}

// New assembles a page from an already-sliced result set. The underlying
// query must order by internal identifier ascending so that offsets are
// stable: records created between calls never shift earlier pages.
func New[T any](items []T, collectionURL string, req Request, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	page := Page[T]{Items: items}

	if req.Offset+req.Limit < total {
		next := pageLink(collectionURL, req.Limit, req.Offset+req.Limit)
		page.Next = &next
	}
	if req.Offset > 0 {
		prevOffset := req.Offset - req.Limit
		if prevOffset < 0 {
			prevOffset = 0
		}
		prev := pageLink(collectionURL, req.Limit, prevOffset)
		page.Previous = &prev
	}
	return page
}

func pageLink(collectionURL string, limit, offset int) string {
	values := url.Values{}
	values.Set("limit", fmt.Sprintf("%d", limit))
	values.Set("offset", fmt.Sprintf("%d", offset))
	return collectionURL + "?" + values.Encode()
}

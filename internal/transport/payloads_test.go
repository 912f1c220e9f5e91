package transport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublicIDFromRef(t *testing.T) {
	cases := []struct {
		ref  string
		want string
	}{
		{"abc", "abc"},
		{"http://localhost:8080/meetings/abc", "abc"},
		{"http://localhost:8080/meetings/abc/", "abc"},
		{"http://localhost:8080/meetings/abc//", "abc"},
		{"", ""},
		// A reference with no identifier stays unresolvable instead of
		// collapsing to an empty filter.
		{"/", "/"},
		{"//", "//"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, publicIDFromRef(tc.ref), "ref %q", tc.ref)
	}
}

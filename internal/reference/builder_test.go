package reference

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBuilderValidation(t *testing.T) {
	_, err := NewBuilder("http://localhost:8080")
	require.NoError(t, err)

	_, err = NewBuilder("localhost:8080/path")
	require.Error(t, err)

	_, err = NewBuilder("/relative/only")
	require.Error(t, err)
}

func TestFor(t *testing.T) {
	b, err := NewBuilder("http://localhost:8080/")
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8080/meetings/abc-123", b.For(KindMeeting, "abc-123"))
	require.Equal(t, "http://localhost:8080/agendaitems/x", b.For(KindAgendaItem, "x"))
}

func TestForAllPreservesOrder(t *testing.T) {
	b, err := NewBuilder("http://localhost:8080")
	require.NoError(t, err)

	refs := b.ForAll(KindInformationObject, []string{"a", "b", "c"})
	require.Equal(t, []string{
		"http://localhost:8080/informationobjects/a",
		"http://localhost:8080/informationobjects/b",
		"http://localhost:8080/informationobjects/c",
	}, refs)
}

func TestForAllEmptyIsNeverNil(t *testing.T) {
	b, err := NewBuilder("http://localhost:8080")
	require.NoError(t, err)

	refs := b.ForAll(KindMeeting, nil)
	require.NotNil(t, refs)
	require.Empty(t, refs)
}

func TestCollection(t *testing.T) {
	b, err := NewBuilder("http://localhost:8080")
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8080/meetings", b.Collection(KindMeeting))
}

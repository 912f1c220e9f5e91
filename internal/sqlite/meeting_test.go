package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openoverheid/ori/internal/domain/meeting"
	"github.com/openoverheid/ori/internal/domain/organisation"
	"github.com/openoverheid/ori/internal/repository"
)

func testMeeting(publicID string) *meeting.Meeting {
	return &meeting.Meeting{
		PublicID: publicID,
		Organisation: organisation.Triplet{
			Type: organisation.TypeMunicipality,
			Code: "gm0363",
			Name: "Gemeente Amsterdam",
		},
		DossierType: "meeting",
		Name:        "Council meeting",
	}
}

func TestMeetingRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewMeetingRepository(db)

	m := testMeeting("m-1")
	m.Location = "Town hall"
	id, err := repo.Create(ctx, m)
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	loaded, err := repo.GetByPublicID(ctx, "m-1")
	require.NoError(t, err)
	require.Equal(t, id, loaded.ID)
	require.Equal(t, "m-1", loaded.PublicID)
	require.Equal(t, "Council meeting", loaded.Name)
	require.Equal(t, "Town hall", loaded.Location)
	require.Equal(t, organisation.TypeMunicipality, loaded.Organisation.Type)
	require.Equal(t, "gm0363", loaded.Organisation.Code)

	_, err = repo.GetByPublicID(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMeetingRepository_ResolveID(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewMeetingRepository(db)

	id, err := repo.Create(ctx, testMeeting("m-1"))
	require.NoError(t, err)

	resolved, err := repo.ResolveID(ctx, "m-1")
	require.NoError(t, err)
	require.Equal(t, id, resolved)

	_, err = repo.ResolveID(ctx, "not-a-real-id")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMeetingRepository_ReplacePreservesIdentifiers(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewMeetingRepository(db)

	m := testMeeting("m-1")
	id, err := repo.Create(ctx, m)
	require.NoError(t, err)

	m.ID = id
	m.Name = "Budget session"
	m.Organisation = organisation.Triplet{
		Type: organisation.TypeProvince,
		Code: "pv27",
		Name: "Provincie Groningen",
	}
	require.NoError(t, repo.Replace(ctx, m))

	loaded, err := repo.GetByPublicID(ctx, "m-1")
	require.NoError(t, err)
	require.Equal(t, id, loaded.ID)
	require.Equal(t, "Budget session", loaded.Name)
	require.Equal(t, organisation.TypeProvince, loaded.Organisation.Type)

	m.ID = 9999
	require.ErrorIs(t, repo.Replace(ctx, m), repository.ErrNotFound)
}

func TestMeetingRepository_ParentPublicIDLoaded(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewMeetingRepository(db)

	parentID, err := repo.Create(ctx, testMeeting("parent"))
	require.NoError(t, err)

	child := testMeeting("child")
	child.ParentMeetingID = &parentID
	_, err = repo.Create(ctx, child)
	require.NoError(t, err)

	loaded, err := repo.GetByPublicID(ctx, "child")
	require.NoError(t, err)
	require.NotNil(t, loaded.ParentMeetingID)
	require.Equal(t, parentID, *loaded.ParentMeetingID)
	require.Equal(t, "parent", loaded.ParentPublicID)
}

func TestMeetingRepository_DeleteRejectsDependents(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewMeetingRepository(db)

	parentID, err := repo.Create(ctx, testMeeting("parent"))
	require.NoError(t, err)

	child := testMeeting("child")
	child.ParentMeetingID = &parentID
	_, err = repo.Create(ctx, child)
	require.NoError(t, err)

	require.ErrorIs(t, repo.Delete(ctx, "parent"), repository.ErrHasDependents)

	require.NoError(t, repo.Delete(ctx, "child"))
	require.NoError(t, repo.Delete(ctx, "parent"))

	require.ErrorIs(t, repo.Delete(ctx, "parent"), repository.ErrNotFound)
}

func TestMeetingRepository_InternalIDsNeverReused(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewMeetingRepository(db)

	_, err := repo.Create(ctx, testMeeting("m-1"))
	require.NoError(t, err)
	id2, err := repo.Create(ctx, testMeeting("m-2"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "m-2"))

	id3, err := repo.Create(ctx, testMeeting("m-3"))
	require.NoError(t, err)
	require.Greater(t, id3, id2, "internal identifiers must not be reused after deletion")
}

func TestMeetingRepository_ListOrderAndFilters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewMeetingRepository(db)

	parentID, err := repo.Create(ctx, testMeeting("parent"))
	require.NoError(t, err)

	child1 := testMeeting("child-1")
	child1.ParentMeetingID = &parentID
	_, err = repo.Create(ctx, child1)
	require.NoError(t, err)

	other := testMeeting("other")
	other.Organisation = organisation.Triplet{
		Type: organisation.TypeWaterAuthority,
		Code: "ws0654",
		Name: "Waterschap Aa en Maas",
	}
	_, err = repo.Create(ctx, other)
	require.NoError(t, err)

	all, total, err := repo.List(ctx, repository.MeetingFilter{}, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, []string{"parent", "child-1", "other"}, publicIDsOf(all))

	byParent, total, err := repo.List(ctx, repository.MeetingFilter{ParentID: &parentID}, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "child-1", byParent[0].PublicID)

	byOrg, total, err := repo.List(ctx, repository.MeetingFilter{OrganisationCode: "ws0654"}, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "other", byOrg[0].PublicID)
}

func TestMeetingRepository_ListPaging(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewMeetingRepository(db)

	for _, pid := range []string{"m-1", "m-2", "m-3", "m-4", "m-5"} {
		_, err := repo.Create(ctx, testMeeting(pid))
		require.NoError(t, err)
	}

	var seen []string
	for offset := 0; offset < 5; offset += 2 {
		page, total, err := repo.List(ctx, repository.MeetingFilter{}, 2, offset)
		require.NoError(t, err)
		require.Equal(t, 5, total)
		seen = append(seen, publicIDsOf(page)...)
	}
	require.Equal(t, []string{"m-1", "m-2", "m-3", "m-4", "m-5"}, seen)
}

func TestMeetingRepository_SubMeetingPublicIDs(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewMeetingRepository(db)

	parentID, err := repo.Create(ctx, testMeeting("parent"))
	require.NoError(t, err)

	for _, pid := range []string{"sub-1", "sub-2"} {
		sub := testMeeting(pid)
		sub.ParentMeetingID = &parentID
		_, err = repo.Create(ctx, sub)
		require.NoError(t, err)
	}

	subs, err := repo.SubMeetingPublicIDs(ctx, parentID)
	require.NoError(t, err)
	require.Equal(t, []string{"sub-1", "sub-2"}, subs)

	none, err := repo.SubMeetingPublicIDs(ctx, 9999)
	require.NoError(t, err)
	require.Empty(t, none)
}

func publicIDsOf(meetings []meeting.Meeting) []string {
	ids := make([]string, 0, len(meetings))
	for _, m := range meetings {
		ids = append(ids, m.PublicID)
	}
	return ids
}

package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openoverheid/ori/internal/domain/agendaitem"
	"github.com/openoverheid/ori/internal/domain/organisation"
	"github.com/openoverheid/ori/internal/repository"
)

func testAgendaItem(publicID string, meetingID int64) *agendaitem.AgendaItem {
	return &agendaitem.AgendaItem{
		PublicID: publicID,
		Organisation: organisation.Triplet{
			Type: organisation.TypeMunicipality,
			Code: "gm0363",
			Name: "Gemeente Amsterdam",
		},
		DossierType: "agendaitem",
		Name:        "Opening",
		MeetingID:   meetingID,
	}
}

func insertTestMeeting(t *testing.T, db *DB, publicID string) int64 {
	t.Helper()
	id, err := NewMeetingRepository(db).Create(context.Background(), testMeeting(publicID))
	require.NoError(t, err)
	return id
}

func TestAgendaItemRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewAgendaItemRepository(db)
	meetingID := insertTestMeeting(t, db, "m-1")

	item := testAgendaItem("a-1", meetingID)
	handled := true
	item.IsHandled = &handled
	id, err := repo.Create(ctx, item)
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	loaded, err := repo.GetByPublicID(ctx, "a-1")
	require.NoError(t, err)
	require.Equal(t, id, loaded.ID)
	require.Equal(t, meetingID, loaded.MeetingID)
	require.Equal(t, "m-1", loaded.MeetingPublicID)
	require.Nil(t, loaded.ParentItemID)
	require.NotNil(t, loaded.IsHandled)
	require.True(t, *loaded.IsHandled)
	require.Nil(t, loaded.IsClosed)

	_, err = repo.GetByPublicID(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAgendaItemRepository_CreateRejectsDanglingMeeting(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewAgendaItemRepository(db)

	_, err := repo.Create(ctx, testAgendaItem("a-1", 9999))
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)

	_, err = repo.GetByPublicID(ctx, "a-1")
	require.ErrorIs(t, err, repository.ErrNotFound, "nothing may be persisted on a failed write")
}

func TestAgendaItemRepository_ParentRelation(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewAgendaItemRepository(db)
	meetingID := insertTestMeeting(t, db, "m-1")

	parentID, err := repo.Create(ctx, testAgendaItem("main", meetingID))
	require.NoError(t, err)

	for _, pid := range []string{"sub-1", "sub-2"} {
		sub := testAgendaItem(pid, meetingID)
		sub.ParentItemID = &parentID
		_, err = repo.Create(ctx, sub)
		require.NoError(t, err)
	}

	loaded, err := repo.GetByPublicID(ctx, "sub-1")
	require.NoError(t, err)
	require.Equal(t, "main", loaded.ParentPublicID)

	subs, err := repo.SubItemPublicIDs(ctx, parentID)
	require.NoError(t, err)
	require.Equal(t, []string{"sub-1", "sub-2"}, subs)
}

func TestAgendaItemRepository_ListByMeeting(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewAgendaItemRepository(db)
	meeting1 := insertTestMeeting(t, db, "m-1")
	meeting2 := insertTestMeeting(t, db, "m-2")

	_, err := repo.Create(ctx, testAgendaItem("a-1", meeting1))
	require.NoError(t, err)
	_, err = repo.Create(ctx, testAgendaItem("a-2", meeting1))
	require.NoError(t, err)
	_, err = repo.Create(ctx, testAgendaItem("a-3", meeting2))
	require.NoError(t, err)

	items, total, err := repo.List(ctx, repository.AgendaItemFilter{MeetingID: &meeting1}, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, "a-1", items[0].PublicID)
	require.Equal(t, "a-2", items[1].PublicID)
}

func TestAgendaItemRepository_ReplaceAndDelete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewAgendaItemRepository(db)
	meetingID := insertTestMeeting(t, db, "m-1")

	item := testAgendaItem("a-1", meetingID)
	id, err := repo.Create(ctx, item)
	require.NoError(t, err)

	item.ID = id
	item.Name = "Closing remarks"
	require.NoError(t, repo.Replace(ctx, item))

	loaded, err := repo.GetByPublicID(ctx, "a-1")
	require.NoError(t, err)
	require.Equal(t, id, loaded.ID)
	require.Equal(t, "Closing remarks", loaded.Name)

	require.NoError(t, repo.Delete(ctx, "a-1"))
	require.ErrorIs(t, repo.Delete(ctx, "a-1"), repository.ErrNotFound)
}

func TestAgendaItemRepository_DeleteRejectsParentOfSubItems(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewAgendaItemRepository(db)
	meetingID := insertTestMeeting(t, db, "m-1")

	parentID, err := repo.Create(ctx, testAgendaItem("main", meetingID))
	require.NoError(t, err)

	sub := testAgendaItem("sub", meetingID)
	sub.ParentItemID = &parentID
	_, err = repo.Create(ctx, sub)
	require.NoError(t, err)

	require.ErrorIs(t, repo.Delete(ctx, "main"), repository.ErrHasDependents)
	require.NoError(t, repo.Delete(ctx, "sub"))
	require.NoError(t, repo.Delete(ctx, "main"))
}

func TestMeetingDeleteRejectedWhileAgendaItemsExist(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	meetings := NewMeetingRepository(db)
	items := NewAgendaItemRepository(db)
	meetingID := insertTestMeeting(t, db, "m-1")

	_, err := items.Create(ctx, testAgendaItem("a-1", meetingID))
	require.NoError(t, err)

	require.ErrorIs(t, meetings.Delete(ctx, "m-1"), repository.ErrHasDependents)

	itemIDs, err := meetings.AgendaItemPublicIDs(ctx, meetingID)
	require.NoError(t, err)
	require.Equal(t, []string{"a-1"}, itemIDs)

	require.NoError(t, items.Delete(ctx, "a-1"))
	require.NoError(t, meetings.Delete(ctx, "m-1"))
}

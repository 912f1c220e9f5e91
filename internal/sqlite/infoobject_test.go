package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openoverheid/ori/internal/domain/infoobject"
	"github.com/openoverheid/ori/internal/domain/organisation"
	"github.com/openoverheid/ori/internal/repository"
)

func testInfoObject(publicID string) *infoobject.InformationObject {
	return &infoobject.InformationObject{
		PublicID: publicID,
		Organisation: organisation.Triplet{
			Type: organisation.TypeMunicipality,
			Code: "gm0363",
			Name: "Gemeente Amsterdam",
		},
		WebLink:       "https://example.com/document.html",
		Title:         "Committee report",
		WooCategory:   "c_db4862c3",
		DateSubmitted: "2017-02-09",
	}
}

func TestInformationObjectRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewInformationObjectRepository(db)

	id, err := repo.Create(ctx, testInfoObject("io-1"), nil)
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	loaded, err := repo.GetByPublicID(ctx, "io-1")
	require.NoError(t, err)
	require.Equal(t, id, loaded.ID)
	require.Equal(t, "Committee report", loaded.Title)
	require.Equal(t, "c_db4862c3", loaded.WooCategory)
	require.Nil(t, loaded.RelatedObjectID)

	_, err = repo.GetByPublicID(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestInformationObjectRepository_AgendaItemLinks(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewInformationObjectRepository(db)
	items := NewAgendaItemRepository(db)
	meetingID := insertTestMeeting(t, db, "m-1")

	item1, err := items.Create(ctx, testAgendaItem("a-1", meetingID))
	require.NoError(t, err)
	item2, err := items.Create(ctx, testAgendaItem("a-2", meetingID))
	require.NoError(t, err)

	id, err := repo.Create(ctx, testInfoObject("io-1"), []int64{item1, item2})
	require.NoError(t, err)

	linked, err := repo.AgendaItemPublicIDs(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []string{"a-1", "a-2"}, linked)

	meetings, err := repo.MeetingPublicIDs(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []string{"m-1"}, meetings, "meetings reached twice appear once")
}

func TestInformationObjectRepository_CreateRollsBackOnBadLink(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewInformationObjectRepository(db)

	_, err := repo.Create(ctx, testInfoObject("io-1"), []int64{9999})
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)

	_, err = repo.GetByPublicID(ctx, "io-1")
	require.ErrorIs(t, err, repository.ErrNotFound, "failed create must not leave a partial record")
}

func TestInformationObjectRepository_ReplaceRewritesLinks(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewInformationObjectRepository(db)
	items := NewAgendaItemRepository(db)
	meetingID := insertTestMeeting(t, db, "m-1")

	item1, err := items.Create(ctx, testAgendaItem("a-1", meetingID))
	require.NoError(t, err)
	item2, err := items.Create(ctx, testAgendaItem("a-2", meetingID))
	require.NoError(t, err)

	obj := testInfoObject("io-1")
	id, err := repo.Create(ctx, obj, []int64{item1})
	require.NoError(t, err)

	obj.ID = id
	obj.Title = "Revised report"
	require.NoError(t, repo.Replace(ctx, obj, []int64{item2}))

	loaded, err := repo.GetByPublicID(ctx, "io-1")
	require.NoError(t, err)
	require.Equal(t, id, loaded.ID)
	require.Equal(t, "Revised report", loaded.Title)

	linked, err := repo.AgendaItemPublicIDs(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []string{"a-2"}, linked)
}

func TestInformationObjectRepository_RelatedObject(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewInformationObjectRepository(db)

	targetID, err := repo.Create(ctx, testInfoObject("target"), nil)
	require.NoError(t, err)

	source := testInfoObject("source")
	source.RelatedObjectID = &targetID
	source.RelatedRole = "attachment"
	_, err = repo.Create(ctx, source, nil)
	require.NoError(t, err)

	loaded, err := repo.GetByPublicID(ctx, "source")
	require.NoError(t, err)
	require.Equal(t, "target", loaded.RelatedPublicID)
	require.Equal(t, "attachment", loaded.RelatedRole)

	// The target is still referenced, so deleting it is rejected.
	require.ErrorIs(t, repo.Delete(ctx, "target"), repository.ErrHasDependents)
	require.NoError(t, repo.Delete(ctx, "source"))
	require.NoError(t, repo.Delete(ctx, "target"))
}

func TestInformationObjectRepository_DeleteRemovesLinks(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewInformationObjectRepository(db)
	items := NewAgendaItemRepository(db)
	meetingID := insertTestMeeting(t, db, "m-1")

	itemID, err := items.Create(ctx, testAgendaItem("a-1", meetingID))
	require.NoError(t, err)

	_, err = repo.Create(ctx, testInfoObject("io-1"), []int64{itemID})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "io-1"))
	require.ErrorIs(t, repo.Delete(ctx, "io-1"), repository.ErrNotFound)

	// Link rows are gone as well, so the agenda item can be deleted.
	require.NoError(t, items.Delete(ctx, "a-1"))
}

func TestInformationObjectRepository_ListFilters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewInformationObjectRepository(db)
	items := NewAgendaItemRepository(db)
	meetingID := insertTestMeeting(t, db, "m-1")

	itemID, err := items.Create(ctx, testAgendaItem("a-1", meetingID))
	require.NoError(t, err)

	_, err = repo.Create(ctx, testInfoObject("io-1"), []int64{itemID})
	require.NoError(t, err)

	other := testInfoObject("io-2")
	other.WooCategory = "c_other"
	_, err = repo.Create(ctx, other, nil)
	require.NoError(t, err)

	byItem, total, err := repo.List(ctx, repository.InformationObjectFilter{AgendaItemID: &itemID}, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "io-1", byItem[0].PublicID)

	byCategory, total, err := repo.List(ctx, repository.InformationObjectFilter{Category: "c_other"}, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "io-2", byCategory[0].PublicID)

	all, total, err := repo.List(ctx, repository.InformationObjectFilter{}, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, all, 2)
}

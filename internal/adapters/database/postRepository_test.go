package database

import (
	"context"
	"testing"
	"time"

	"yatube/internal/core/apperr"
	"yatube/internal/core/comment"
	"yatube/internal/core/follower"
	"yatube/internal/core/group"
	"yatube/internal/core/outbox"
	"yatube/internal/core/post"
	postPort "yatube/internal/ports/post"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_ListOrderAndFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepositoryDatabase(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	cats := createGroup(t, db, "cats")

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	first := createPost(t, db, alice, cats, base)
	second := createPost(t, db, bob, nil, base.Add(time.Minute))
	third := createPost(t, db, alice, nil, base.Add(2*time.Minute))

	all, err := repo.List(ctx, postPort.Filter{}, -1, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{third.ID, second.ID, first.ID}, []uint{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, "alice", all[0].Author.Username)

	byGroup, err := repo.List(ctx, postPort.Filter{GroupID: &cats.ID}, -1, 0)
	require.NoError(t, err)
	require.Len(t, byGroup, 1)
	require.NotNil(t, byGroup[0].Group)
	assert.Equal(t, "cats", byGroup[0].Group.Slug)

	count, err := repo.Count(ctx, postPort.Filter{AuthorID: &alice.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	page, err := repo.List(ctx, postPort.Filter{}, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, second.ID, page[0].ID)
}

func TestPostRepository_FollowingFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepositoryDatabase(db)
	ctx := context.Background()

	reader := createUser(t, db, "reader")
	followed := createUser(t, db, "followed")
	stranger := createUser(t, db, "stranger")

	now := time.Now().UTC()
	createPost(t, db, followed, nil, now)
	createPost(t, db, stranger, nil, now)

	empty, err := repo.Count(ctx, postPort.Filter{FollowerID: &reader.ID})
	require.NoError(t, err)
	assert.Zero(t, empty)

	require.NoError(t, db.Create(&follower.Follow{UserID: reader.ID, AuthorID: followed.ID}).Error)

	feed, err := repo.List(ctx, postPort.Filter{FollowerID: &reader.ID}, -1, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, followed.ID, feed[0].AuthorID)
}

func TestPostRepository_WritesRecordOutboxEvents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepositoryDatabase(db)
	ctx := context.Background()
	author := createUser(t, db, "author")

	p := &post.Post{Text: "hello", AuthorID: author.ID, Created: time.Now().UTC()}
	_, err := repo.Create(ctx, p, outbox.NewEvent(outbox.TypePostCreated, 0, author.ID))
	require.NoError(t, err)

	p.Text = "edited"
	require.NoError(t, repo.Update(ctx, p, outbox.NewEvent(outbox.TypePostUpdated, p.ID, author.ID)))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)

	var events []outbox.Event
	require.NoError(t, db.Order("created_at").Find(&events).Error)
	require.Len(t, events, 2)
	for _, ev := range events {
		assert.Equal(t, p.ID, ev.PostID)
		assert.Equal(t, outbox.StatusPending, ev.Status)
	}
}

func TestPostRepository_DeleteCascadesComments(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepositoryDatabase(db)
	ctx := context.Background()
	author := createUser(t, db, "author")
	p := createPost(t, db, author, nil, time.Now().UTC())

	c := &comment.Comment{PostID: p.ID, AuthorID: author.ID, Text: "nice", Created: time.Now().UTC()}
	_, err := NewCommentRepositoryDatabase(db).Create(ctx, c)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, p.ID, nil))

	var left int64
	require.NoError(t, db.Model(&comment.Comment{}).Count(&left).Error)
	assert.Zero(t, left)

	_, err = repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, p.ID, nil), apperr.ErrNotFound)
}

func TestGroupRepository_DeleteKeepsPosts(t *testing.T) {
	db := setupTestDB(t)
	groups := NewGroupRepositoryDatabase(db)
	ctx := context.Background()
	author := createUser(t, db, "author")
	g := createGroup(t, db, "temp")
	p := createPost(t, db, author, g, time.Now().UTC())

	require.NoError(t, groups.Delete(ctx, g.ID))

	got, err := NewPostRepositoryDatabase(db).FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.GroupID)
	assert.Nil(t, got.Group)

	_, err = groups.FindBySlug(ctx, "temp")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGroupRepository_DuplicateSlug(t *testing.T) {
	db := setupTestDB(t)
	groups := NewGroupRepositoryDatabase(db)
	ctx := context.Background()
	createGroup(t, db, "cats")

	_, err := groups.Create(ctx, &group.Group{Title: "Again", Slug: "cats", Description: "dup"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	list, err := groups.List(ctx, -1, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"yatube/internal/config"
	"yatube/internal/core/group"
	"yatube/internal/core/post"
	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := config.SQLiteDSN(filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { config.CloseDB(db) })
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *user.User {
	t.Helper()
	u := &user.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createGroup(t *testing.T, db *gorm.DB, slug string) *group.Group {
	t.Helper()
	g := &group.Group{Title: "Group " + slug, Slug: slug, Description: "about " + slug}
	require.NoError(t, db.Create(g).Error)
	return g
}

func createPost(t *testing.T, db *gorm.DB, author *user.User, g *group.Group, created time.Time) *post.Post {
	t.Helper()
	p := &post.Post{Text: "post by " + author.Username, AuthorID: author.ID, Created: created}
	if g != nil {
		p.GroupID = &g.ID
	}
	_, err := NewPostRepositoryDatabase(db).Create(context.Background(), p, nil)
	require.NoError(t, err)
	return p
}

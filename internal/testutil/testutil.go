// Package testutil opens throwaway databases and creates fixtures for tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"yatube/internal/adapters/database"
	"yatube/internal/config"
	"yatube/internal/core/group"
	"yatube/internal/core/post"
	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plain password of every user made by User.
const Password = "s3cret-pass"

// DB opens a migrated sqlite database in the test's temp dir.
func DB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := config.SQLiteDSN(filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { config.CloseDB(db) })
	return db
}

func User(t *testing.T, db *gorm.DB, username string) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &user.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func Group(t *testing.T, db *gorm.DB, slug string) *group.Group {
	t.Helper()
	g := &group.Group{Title: "Group " + slug, Slug: slug, Description: "about " + slug}
	require.NoError(t, db.Create(g).Error)
	return g
}

// Post stores a post created at the given time.
func Post(t *testing.T, db *gorm.DB, author *user.User, g *group.Group, text string, created time.Time) *post.Post {
	t.Helper()
	p := &post.Post{Text: text, AuthorID: author.ID, Created: created}
	if g != nil {
		p.GroupID = &g.ID
	}
	require.NoError(t, db.Omit("Author", "Group").Create(p).Error)
	return p
}

func Follow(t *testing.T, db *gorm.DB, follower, author *user.User) {
	t.Helper()
	require.NoError(t, db.Exec("INSERT INTO follows (user_id, author_id, created_at) VALUES (?, ?, ?)",
		follower.ID, author.ID, time.Now().UTC()).Error)
}

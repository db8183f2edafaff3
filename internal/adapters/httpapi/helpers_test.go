package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"yatube/internal/adapters/database"
	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/adapters/memcache"
	commentapp "yatube/internal/core/comment/service"
	feedapp "yatube/internal/core/feed/service"
	followerapp "yatube/internal/core/follower/service"
	groupapp "yatube/internal/core/group/service"
	postapp "yatube/internal/core/post/service"
	userapp "yatube/internal/core/user/service"
	"yatube/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	users  *userapp.UserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)

	userRepo := database.NewUserRepositoryDatabase(db)
	postRepo := database.NewPostRepositoryDatabase(db)
	groupRepo := database.NewGroupRepositoryDatabase(db)
	commentRepo := database.NewCommentRepositoryDatabase(db)
	followerRepo := database.NewFollowerRepositoryDatabase(db)
	cache := memcache.NewListingCache(16, time.Minute)

	users := userapp.NewUserService(userRepo, nil, []byte("test-secret"), time.Hour)
	uc := UseCases{
		Users:     users,
		Posts:     postapp.NewPostService(postRepo, groupRepo, nil, cache),
		Groups:    groupapp.NewGroupService(groupRepo, cache),
		Comments:  commentapp.NewCommentService(commentRepo, postRepo),
		Followers: followerapp.NewFollowerService(followerRepo, userRepo),
		Feed:      feedapp.NewFeedService(postRepo, groupRepo, userRepo, followerRepo, commentRepo, cache),
	}

	return &testServer{
		t:      t,
		db:     db,
		router: SetupRoutes(uc, Options{}),
		users:  users,
	}
}

// token logs a fixture user in.
func (s *testServer) token(username string) string {
	s.t.Helper()
	res, err := s.users.LoginUser(context.Background(), username, testutil.Password)
	require.NoError(s.t, err)
	return res.Token
}

// do sends body as JSON when it is not a string, as a urlencoded form
// otherwise.
func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
		contentType = gin.MIMEPOSTForm
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		r = strings.NewReader(string(raw))
		contentType = gin.MIMEJSON
	}

	req := httptest.NewRequest(method, path, r)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// browse sends a web request carrying the session cookie.
func (s *testServer) browse(method, path, token, form string) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	if form != "" || method == http.MethodPost {
		r = strings.NewReader(form)
	}
	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", gin.MIMEPOSTForm)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

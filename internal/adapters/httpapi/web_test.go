package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/comment"
	"yatube/internal/core/follower"
	"yatube/internal/core/post"
	"yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeb_Listings(t *testing.T) {
	s := newTestServer(t)
	leo := testutil.User(t, s.db, "leo")
	g := testutil.Group(t, s.db, "cats")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 13; i++ {
		testutil.Post(t, s.db, leo, g, fmt.Sprintf("post number %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	w := s.browse(http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "post number 12")
	assert.NotContains(t, w.Body.String(), "post number 2<")
	assert.Equal(t, 10, strings.Count(w.Body.String(), `class="post"`))

	w = s.browse(http.MethodGet, "/?page=99", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, strings.Count(w.Body.String(), `class="post"`))

	w = s.browse(http.MethodGet, "/group/cats/?page=2", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Group cats")
	assert.Equal(t, 3, strings.Count(w.Body.String(), `class="post"`))

	w = s.browse(http.MethodGet, "/group/nope/", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.browse(http.MethodGet, "/profile/leo/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Posts: 13")

	w = s.browse(http.MethodGet, "/profile/ghost/", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWeb_PostDetail(t *testing.T) {
	s := newTestServer(t)
	leo := testutil.User(t, s.db, "leo")
	testutil.User(t, s.db, "mia")
	p := testutil.Post(t, s.db, leo, nil, "detailed post", time.Now().UTC())
	path := fmt.Sprintf("/posts/%d/", p.ID)

	w := s.browse(http.MethodGet, path, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "detailed post")
	assert.NotContains(t, w.Body.String(), "Edit post")

	w = s.browse(http.MethodGet, path, s.token("leo"), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Edit post")

	w = s.browse(http.MethodGet, "/posts/999/", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWeb_LoginRequired(t *testing.T) {
	s := newTestServer(t)
	leo := testutil.User(t, s.db, "leo")
	p := testutil.Post(t, s.db, leo, nil, "post", time.Now().UTC())

	paths := []string{"/create/", "/follow/", "/profile/leo/follow/", fmt.Sprintf("/posts/%d/edit/", p.ID)}
	for _, path := range paths {
		w := s.browse(http.MethodGet, path, "", "")
		require.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/auth/login/?next="+url.QueryEscape(path), w.Header().Get("Location"))
	}
}

func TestWeb_CreatePost(t *testing.T) {
	s := newTestServer(t)
	testutil.User(t, s.db, "leo")
	g := testutil.Group(t, s.db, "cats")
	token := s.token("leo")

	w := s.browse(http.MethodGet, "/create/", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Group cats")

	w = s.browse(http.MethodPost, "/create/", token, "text=++&group=")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "may not be blank")

	w = s.browse(http.MethodPost, "/create/", token, fmt.Sprintf("text=fresh+post&group=%d", g.ID))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/leo/", w.Header().Get("Location"))

	var stored post.Post
	require.NoError(t, s.db.Where("text = ?", "fresh post").First(&stored).Error)
	require.NotNil(t, stored.GroupID)
	assert.Equal(t, g.ID, *stored.GroupID)

	w = s.browse(http.MethodGet, "/", "", "")
	assert.Contains(t, w.Body.String(), "fresh post")
}

func TestWeb_EditPost(t *testing.T) {
	s := newTestServer(t)
	leo := testutil.User(t, s.db, "leo")
	testutil.User(t, s.db, "mia")
	g := testutil.Group(t, s.db, "cats")
	p := testutil.Post(t, s.db, leo, g, "original", time.Now().UTC())
	editPath := fmt.Sprintf("/posts/%d/edit/", p.ID)
	detailPath := fmt.Sprintf("/posts/%d/", p.ID)

	w := s.browse(http.MethodGet, editPath, s.token("mia"), "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailPath, w.Header().Get("Location"))

	w = s.browse(http.MethodPost, editPath, s.token("mia"), "text=hijacked")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailPath, w.Header().Get("Location"))

	var stored post.Post
	require.NoError(t, s.db.First(&stored, p.ID).Error)
	assert.Equal(t, "original", stored.Text)

	w = s.browse(http.MethodGet, editPath, s.token("leo"), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "original")

	w = s.browse(http.MethodPost, editPath, s.token("leo"), "text=edited&group=")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailPath, w.Header().Get("Location"))

	require.NoError(t, s.db.First(&stored, p.ID).Error)
	assert.Equal(t, "edited", stored.Text)
	assert.Nil(t, stored.GroupID)
	assert.Equal(t, p.Created.Unix(), stored.Created.Unix())
}

func TestWeb_AddComment(t *testing.T) {
	s := newTestServer(t)
	leo := testutil.User(t, s.db, "leo")
	testutil.User(t, s.db, "mia")
	p := testutil.Post(t, s.db, leo, nil, "post", time.Now().UTC())
	path := fmt.Sprintf("/posts/%d/comment/", p.ID)

	w := s.browse(http.MethodPost, path, "", "text=anonymous")
	require.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/auth/login/"))

	w = s.browse(http.MethodPost, path, s.token("mia"), "text=")
	require.Equal(t, http.StatusFound, w.Code)

	w = s.browse(http.MethodPost, path, s.token("mia"), "text=great+post")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", p.ID), w.Header().Get("Location"))

	var count int64
	require.NoError(t, s.db.Model(&comment.Comment{}).Where("post_id = ?", p.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	w = s.browse(http.MethodGet, fmt.Sprintf("/posts/%d/", p.ID), "", "")
	assert.Contains(t, w.Body.String(), "great post")

	w = s.browse(http.MethodPost, "/posts/999/comment/", s.token("mia"), "text=lost")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWeb_FollowAndFeed(t *testing.T) {
	s := newTestServer(t)
	leo := testutil.User(t, s.db, "leo")
	mia := testutil.User(t, s.db, "mia")
	testutil.Post(t, s.db, leo, nil, "leo writes", time.Now().UTC())
	token := s.token("mia")

	countEdges := func() int64 {
		var n int64
		require.NoError(t, s.db.Model(&follower.Follow{}).Where("user_id = ?", mia.ID).Count(&n).Error)
		return n
	}

	w := s.browse(http.MethodGet, "/follow/", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "leo writes")

	for i := 0; i < 2; i++ {
		w = s.browse(http.MethodGet, "/profile/leo/follow/", token, "")
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/profile/leo/", w.Header().Get("Location"))
	}
	assert.Equal(t, int64(1), countEdges())

	w = s.browse(http.MethodGet, "/profile/mia/follow/", token, "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, int64(1), countEdges())

	w = s.browse(http.MethodGet, "/follow/", token, "")
	assert.Contains(t, w.Body.String(), "leo writes")

	w = s.browse(http.MethodGet, "/profile/leo/", token, "")
	assert.Contains(t, w.Body.String(), "/profile/leo/unfollow/")

	w = s.browse(http.MethodGet, "/profile/leo/unfollow/", token, "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, int64(0), countEdges())

	w = s.browse(http.MethodGet, "/follow/", token, "")
	assert.NotContains(t, w.Body.String(), "leo writes")

	w = s.browse(http.MethodGet, "/profile/ghost/follow/", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWeb_LoginAndLogout(t *testing.T) {
	s := newTestServer(t)
	testutil.User(t, s.db, "leo")

	w := s.browse(http.MethodPost, "/auth/login/", "", "username=leo&password=wrong")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Result().Cookies())

	form := url.Values{"username": {"leo"}, "password": {testutil.Password}, "next": {"/follow/"}}
	w = s.browse(http.MethodPost, "/auth/login/", "", form.Encode())
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/follow/", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	w = s.browse(http.MethodGet, "/follow/", cookies[0].Value, "")
	assert.Equal(t, http.StatusOK, w.Code)

	form.Set("next", "https://evil.example.com/")
	w = s.browse(http.MethodPost, "/auth/login/", "", form.Encode())
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = s.browse(http.MethodGet, "/auth/logout/", cookies[0].Value, "")
	require.Equal(t, http.StatusFound, w.Code)
	require.Len(t, w.Result().Cookies(), 1)
	assert.Empty(t, w.Result().Cookies()[0].Value)
}

func TestWeb_Signup(t *testing.T) {
	s := newTestServer(t)
	testutil.User(t, s.db, "taken")

	form := url.Values{"username": {"taken"}, "email": {"new@example.com"}, "password": {"long-enough-password"}}
	w := s.browse(http.MethodPost, "/auth/signup/", "", form.Encode())
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")

	form.Set("username", "fresh")
	w = s.browse(http.MethodPost, "/auth/signup/", "", form.Encode())
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	require.Len(t, w.Result().Cookies(), 1)

	w = s.browse(http.MethodGet, "/", w.Result().Cookies()[0].Value, "")
	assert.Contains(t, w.Body.String(), "/profile/fresh/")
}

func TestWeb_StaleSessionIsDropped(t *testing.T) {
	s := newTestServer(t)

	w := s.browse(http.MethodGet, "/", "expired-token", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, w.Result().Cookies(), 1)
	assert.Empty(t, w.Result().Cookies()[0].Value)
	assert.Contains(t, w.Body.String(), "/auth/login/")
}

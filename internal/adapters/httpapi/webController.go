package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/apperr"
	"yatube/internal/core/feed"
	"yatube/internal/core/pagination"
	userPort "yatube/internal/ports/user"

	"github.com/gin-gonic/gin"
)

// WebController serves the server-rendered pages.
type WebController struct {
	uc            UseCases
	secureCookies bool
}

func NewWebController(uc UseCases, secureCookies bool) *WebController {
	return &WebController{uc: uc, secureCookies: secureCookies}
}

// postForm is what the create/edit templates echo back.
type postForm struct {
	Text    string
	GroupID string
}

func (wc *WebController) Index(c *gin.Context) {
	listing, err := wc.uc.Feed.List(c.Request.Context(), feed.All(), c.Query("page"))
	if err != nil {
		webError(c, err)
		return
	}
	render(c, http.StatusOK, "posts/index.html", gin.H{"Listing": listing})
}

func (wc *WebController) GroupPosts(c *gin.Context) {
	gp, err := wc.uc.Feed.ListGroup(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		webError(c, err)
		return
	}
	render(c, http.StatusOK, "posts/group_list.html", gin.H{"Group": gp.Group, "Listing": gp.PageDTO})
}

func (wc *WebController) Profile(c *gin.Context) {
	username := c.Param("username")
	profile, err := wc.uc.Feed.Profile(c.Request.Context(), middleware.UserID(c), username, c.Query("page"))
	if err != nil {
		webError(c, err)
		return
	}
	render(c, http.StatusOK, "posts/profile.html", gin.H{
		"Profile": profile,
		"Listing": profile.PageDTO,
		"IsSelf":  middleware.Username(c) == profile.Author.Username,
	})
}

func (wc *WebController) PostDetail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		renderError(c, http.StatusNotFound, "Page not found")
		return
	}
	detail, err := wc.uc.Feed.PostDetail(c.Request.Context(), id)
	if err != nil {
		webError(c, err)
		return
	}
	userID := middleware.UserID(c)
	render(c, http.StatusOK, "posts/post_detail.html", gin.H{
		"Detail":  detail,
		"CanEdit": userID != "" && userID == detail.Post.AuthorID,
	})
}

func (wc *WebController) CreatePostForm(c *gin.Context) {
	wc.renderPostForm(c, http.StatusOK, 0, postForm{}, nil)
}

// CreatePost redirects to the author's profile on success.
func (wc *WebController) CreatePost(c *gin.Context) {
	in, err := bindPostInput(c, true)
	defer closeUpload(in)
	if err == nil {
		_, err = wc.uc.Posts.CreatePost(c.Request.Context(), middleware.UserID(c), in)
	}
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			wc.renderPostForm(c, http.StatusBadRequest, 0, submittedPostForm(c), formErrors(err))
			return
		}
		webError(c, err)
		return
	}
	c.Redirect(http.StatusFound, profilePath(middleware.Username(c)))
}

func (wc *WebController) EditPostForm(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		renderError(c, http.StatusNotFound, "Page not found")
		return
	}
	p, err := wc.uc.Posts.GetEditablePost(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		wc.editDenied(c, id, err)
		return
	}

	form := postForm{Text: p.Text}
	if p.GroupID != nil {
		form.GroupID = fmt.Sprint(*p.GroupID)
	}
	wc.renderPostForm(c, http.StatusOK, id, form, nil)
}

// EditPost sends a non-owner back to the post without touching it.
func (wc *WebController) EditPost(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		renderError(c, http.StatusNotFound, "Page not found")
		return
	}
	userID := middleware.UserID(c)
	if _, err := wc.uc.Posts.GetEditablePost(c.Request.Context(), userID, id); err != nil {
		wc.editDenied(c, id, err)
		return
	}

	in, err := bindPostInput(c, true)
	defer closeUpload(in)
	if err == nil {
		// An absent group on the form means "no group".
		in.SetGroup = true
		_, err = wc.uc.Posts.UpdatePost(c.Request.Context(), userID, id, in)
	}
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			wc.renderPostForm(c, http.StatusBadRequest, id, submittedPostForm(c), formErrors(err))
			return
		}
		wc.editDenied(c, id, err)
		return
	}
	c.Redirect(http.StatusFound, postPath(id))
}

func (wc *WebController) editDenied(c *gin.Context, id uint, err error) {
	if errors.Is(err, apperr.ErrForbidden) {
		c.Redirect(http.StatusFound, postPath(id))
		return
	}
	webError(c, err)
}

// AddComment ignores an invalid comment and always returns to the post.
func (wc *WebController) AddComment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		renderError(c, http.StatusNotFound, "Page not found")
		return
	}
	_, err := wc.uc.Comments.CreateComment(c.Request.Context(), middleware.UserID(c), id, c.PostForm("text"))
	if err != nil && !errors.Is(err, apperr.ErrValidation) {
		webError(c, err)
		return
	}
	c.Redirect(http.StatusFound, postPath(id))
}

func (wc *WebController) FollowIndex(c *gin.Context) {
	listing, err := wc.uc.Feed.FollowFeed(c.Request.Context(), middleware.UserID(c), c.Query("page"))
	if err != nil {
		webError(c, err)
		return
	}
	render(c, http.StatusOK, "posts/follow.html", gin.H{"Listing": listing})
}

func (wc *WebController) ProfileFollow(c *gin.Context) {
	username := c.Param("username")
	if err := wc.uc.Followers.FollowIfAbsent(c.Request.Context(), middleware.UserID(c), username); err != nil {
		webError(c, err)
		return
	}
	c.Redirect(http.StatusFound, profilePath(username))
}

func (wc *WebController) ProfileUnfollow(c *gin.Context) {
	username := c.Param("username")
	if err := wc.uc.Followers.UnfollowUser(c.Request.Context(), middleware.UserID(c), username); err != nil {
		webError(c, err)
		return
	}
	c.Redirect(http.StatusFound, profilePath(username))
}

func (wc *WebController) SignupForm(c *gin.Context) {
	render(c, http.StatusOK, "users/signup.html", gin.H{"Form": userPort.RegisterInput{}})
}

// Signup creates the account and logs the new user in.
func (wc *WebController) Signup(c *gin.Context) {
	in := userPort.RegisterInput{
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Username:  c.PostForm("username"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
	}
	if _, err := wc.uc.Users.RegisterUser(c.Request.Context(), in); err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			in.Password = ""
			render(c, http.StatusBadRequest, "users/signup.html", gin.H{"Form": in, "Errors": formErrors(err)})
			return
		}
		webError(c, err)
		return
	}

	res, err := wc.uc.Users.LoginUser(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		webError(c, err)
		return
	}
	wc.startSession(c, res)
	c.Redirect(http.StatusFound, "/")
}

func (wc *WebController) LoginForm(c *gin.Context) {
	render(c, http.StatusOK, "users/login.html", gin.H{"Next": safeNext(c.Query("next"))})
}

func (wc *WebController) Login(c *gin.Context) {
	username := c.PostForm("username")
	next := safeNext(c.PostForm("next"))

	res, err := wc.uc.Users.LoginUser(c.Request.Context(), username, c.PostForm("password"))
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthorized) {
			render(c, http.StatusBadRequest, "users/login.html", gin.H{
				"Next":     next,
				"Username": username,
				"Errors":   map[string]string{"form": "Please enter a correct username and password."},
			})
			return
		}
		webError(c, err)
		return
	}

	wc.startSession(c, res)
	if next == "" {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}

func (wc *WebController) Logout(c *gin.Context) {
	middleware.ClearSession(c)
	c.Redirect(http.StatusFound, "/")
}

func (wc *WebController) startSession(c *gin.Context, res *userPort.LoginResponse) {
	maxAge := int(time.Until(time.Unix(res.ExpiresAt, 0)).Seconds())
	middleware.StartSession(c, res.Token, maxAge, wc.secureCookies)
}

func (wc *WebController) renderPostForm(c *gin.Context, status int, postID uint, form postForm, errs map[string]string) {
	groups, _, err := wc.uc.Groups.ListGroups(c.Request.Context(), pagination.All)
	if err != nil {
		webError(c, err)
		return
	}
	render(c, status, "posts/create_post.html", gin.H{
		"Form":   form,
		"Errors": errs,
		"Groups": groups,
		"IsEdit": postID != 0,
		"PostID": postID,
	})
}

func submittedPostForm(c *gin.Context) postForm {
	return postForm{Text: c.PostForm("text"), GroupID: c.PostForm("group")}
}

// formErrors keys a validation error by field; field-less errors go under "form".
func formErrors(err error) map[string]string {
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		return map[string]string{"form": err.Error()}
	}
	field := ve.Field
	if field == "" {
		field = "form"
	}
	return map[string]string{field: ve.Message}
}

// safeNext only allows local absolute paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return next
}

func profilePath(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func postPath(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

package httpapi

import (
	"context"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/config"
	"yatube/internal/core/feed"
	"yatube/internal/core/pagination"
	commentPort "yatube/internal/ports/comment"
	feedPort "yatube/internal/ports/feed"
	followerPort "yatube/internal/ports/follower"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

// Inbound ports implemented by the core services.

type UserUseCase interface {
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, in userPort.RegisterInput) (*userPort.UserDTO, error)
	ParseToken(token string) (*userPort.Identity, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, userID string, in postPort.PostInput) (*postPort.PostDTO, error)
	GetPost(ctx context.Context, id uint) (*postPort.PostDTO, error)
	ListPosts(ctx context.Context, w pagination.Window) ([]*postPort.PostDTO, int64, error)
	GetEditablePost(ctx context.Context, userID string, id uint) (*postPort.PostDTO, error)
	UpdatePost(ctx context.Context, userID string, id uint, in postPort.PostInput) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, userID string, id uint) error
}

type GroupUseCase interface {
	ListGroups(ctx context.Context, w pagination.Window) ([]*groupPort.GroupDTO, int64, error)
	GetGroup(ctx context.Context, id uint) (*groupPort.GroupDTO, error)
}

type CommentUseCase interface {
	CreateComment(ctx context.Context, userID string, postID uint, text string) (*commentPort.CommentDTO, error)
	ListComments(ctx context.Context, postID uint, w pagination.Window) ([]*commentPort.CommentDTO, int64, error)
	GetComment(ctx context.Context, postID, commentID uint) (*commentPort.CommentDTO, error)
	UpdateComment(ctx context.Context, userID string, postID, commentID uint, text *string) (*commentPort.CommentDTO, error)
	DeleteComment(ctx context.Context, userID string, postID, commentID uint) error
}

type FollowerUseCase interface {
	FollowUser(ctx context.Context, userID, authorUsername string) (*followerPort.FollowDTO, error)
	FollowIfAbsent(ctx context.Context, userID, authorUsername string) error
	UnfollowUser(ctx context.Context, userID, authorUsername string) error
	IsFollowing(ctx context.Context, userID string, authorID uuid.UUID) (bool, error)
	ListFollowing(ctx context.Context, userID, search string, w pagination.Window) ([]*followerPort.FollowDTO, int64, error)
}

type FeedUseCase interface {
	List(ctx context.Context, scope feed.Scope, token string) (*postPort.PageDTO, error)
	ListGroup(ctx context.Context, slug, token string) (*feedPort.GroupPage, error)
	Profile(ctx context.Context, viewerID, username, token string) (*feedPort.ProfilePage, error)
	FollowFeed(ctx context.Context, userID, token string) (*postPort.PageDTO, error)
	PostDetail(ctx context.Context, id uint) (*feedPort.PostDetail, error)
}

type UseCases struct {
	Users     UserUseCase
	Posts     PostUseCase
	Groups    GroupUseCase
	Comments  CommentUseCase
	Followers FollowerUseCase
	Feed      FeedUseCase
}

type Options struct {
	// MediaRoot is served under /media/ when set.
	MediaRoot string
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
}

const loginPath = "/auth/login/"

// SetupRoutes wires the web UI and the /api/v1 REST API. Routing only: the
// use cases are injected.
func SetupRoutes(uc UseCases, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(config.Logger), gin.Recovery())
	r.SetHTMLTemplate(mustParseTemplates())

	if opts.MediaRoot != "" {
		r.Static("/media", opts.MediaRoot)
	}

	setupWebRoutes(r, uc, opts)
	setupAPIRoutes(r, uc)

	r.NoRoute(func(c *gin.Context) {
		renderError(c, 404, "Page not found")
	})
	return r
}

func setupWebRoutes(r *gin.Engine, uc UseCases, opts Options) {
	wc := NewWebController(uc, opts.SecureCookies)
	login := middleware.LoginRequired(loginPath)

	web := r.Group("/", middleware.SessionAuth(uc.Users))
	web.GET("/", wc.Index)
	web.GET("/group/:slug/", wc.GroupPosts)
	web.GET("/profile/:username/", wc.Profile)
	web.GET("/profile/:username/follow/", login, wc.ProfileFollow)
	web.GET("/profile/:username/unfollow/", login, wc.ProfileUnfollow)
	web.GET("/posts/:id/", wc.PostDetail)
	web.GET("/posts/:id/edit/", login, wc.EditPostForm)
	web.POST("/posts/:id/edit/", login, wc.EditPost)
	web.POST("/posts/:id/comment/", login, wc.AddComment)
	web.GET("/create/", login, wc.CreatePostForm)
	web.POST("/create/", login, wc.CreatePost)
	web.GET("/follow/", login, wc.FollowIndex)

	web.GET("/auth/signup/", wc.SignupForm)
	web.POST("/auth/signup/", wc.Signup)
	web.GET(loginPath, wc.LoginForm)
	web.POST(loginPath, wc.Login)
	web.GET("/auth/logout/", wc.Logout)
}

func setupAPIRoutes(r *gin.Engine, uc UseCases) {
	userCtl := NewUserController(uc.Users)
	postCtl := NewPostController(uc.Posts)
	groupCtl := NewGroupController(uc.Groups)
	commentCtl := NewCommentController(uc.Comments)
	followerCtl := NewFollowerController(uc.Followers)
	auth := middleware.JWTAuthMiddleware()

	api := r.Group("/api/v1", middleware.BearerAuth(uc.Users))

	api.POST("/auth/signup/", userCtl.RegisterUser)
	api.POST("/auth/token/", userCtl.LoginUser)

	api.GET("/posts/", postCtl.ListPosts)
	api.POST("/posts/", auth, postCtl.CreatePost)
	api.GET("/posts/:id/", postCtl.GetPost)
	api.PUT("/posts/:id/", auth, postCtl.UpdatePost)
	api.PATCH("/posts/:id/", auth, postCtl.PartialUpdatePost)
	api.DELETE("/posts/:id/", auth, postCtl.DeletePost)

	api.GET("/posts/:id/comments/", commentCtl.ListComments)
	api.POST("/posts/:id/comments/", auth, commentCtl.CreateComment)
	api.GET("/posts/:id/comments/:comment_id/", commentCtl.GetComment)
	api.PUT("/posts/:id/comments/:comment_id/", auth, commentCtl.UpdateComment)
	api.PATCH("/posts/:id/comments/:comment_id/", auth, commentCtl.PartialUpdateComment)
	api.DELETE("/posts/:id/comments/:comment_id/", auth, commentCtl.DeleteComment)

	api.GET("/groups/", groupCtl.ListGroups)
	api.GET("/groups/:id/", groupCtl.GetGroup)

	api.GET("/follow/", auth, followerCtl.ListFollowing)
	api.POST("/follow/", auth, followerCtl.FollowUser)
}

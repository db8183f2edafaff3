package main

import (
	"context"
	"fmt"

	"yatube/internal/adapters/database"
	"yatube/internal/adapters/httpapi"
	"yatube/internal/adapters/mail"
	"yatube/internal/adapters/media"
	"yatube/internal/adapters/memcache"
	redisadapter "yatube/internal/adapters/redis"
	"yatube/internal/config"
	commentapp "yatube/internal/core/comment/service"
	feedapp "yatube/internal/core/feed/service"
	followerapp "yatube/internal/core/follower/service"
	groupapp "yatube/internal/core/group/service"
	postapp "yatube/internal/core/post/service"
	userapp "yatube/internal/core/user/service"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app is the wired object graph shared by the subcommands.
type app struct {
	db          *gorm.DB
	redisClient *redis.Client
	cache       postPort.ListingCache

	userRepo   *database.UserRepositoryDatabase
	outboxRepo *database.OutboxRepositoryDatabase

	users     *userapp.UserService
	posts     *postapp.PostService
	groups    *groupapp.GroupService
	comments  *commentapp.CommentService
	followers *followerapp.FollowerService
	feed      *feedapp.FeedService
}

// newApp connects to the database and Redis (when configured) and migrates
// the schema.
func newApp(ctx context.Context, s *config.Settings) (*app, error) {
	db, err := config.OpenDB(s)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		config.CloseDB(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}

	redisClient, err := config.InitRedis(ctx, s)
	if err != nil {
		config.CloseDB(db)
		return nil, err
	}

	var cache postPort.ListingCache
	if redisClient != nil {
		cache = redisadapter.NewListingCacheRedis(redisClient, s.CacheTTL)
	} else {
		cache = memcache.NewListingCache(s.CacheSize, s.CacheTTL)
	}

	userRepo := database.NewUserRepositoryDatabase(db)
	postRepo := database.NewPostRepositoryDatabase(db)
	groupRepo := database.NewGroupRepositoryDatabase(db)
	commentRepo := database.NewCommentRepositoryDatabase(db)
	followerRepo := database.NewFollowerRepositoryDatabase(db)

	return &app{
		db:          db,
		redisClient: redisClient,
		cache:       cache,
		userRepo:    userRepo,
		outboxRepo:  database.NewOutboxRepositoryDatabase(db),
		users:       userapp.NewUserService(userRepo, newMailer(s), []byte(s.JWTSecret), s.TokenTTL),
		posts:       postapp.NewPostService(postRepo, groupRepo, media.NewFileStorage(s.MediaRoot), cache),
		groups:      groupapp.NewGroupService(groupRepo, cache),
		comments:    commentapp.NewCommentService(commentRepo, postRepo),
		followers:   followerapp.NewFollowerService(followerRepo, userRepo),
		feed:        feedapp.NewFeedService(postRepo, groupRepo, userRepo, followerRepo, commentRepo, cache),
	}, nil
}

func newMailer(s *config.Settings) userPort.Mailer {
	if s.MailBackend == "smtp" {
		return mail.NewSMTPMailer(mail.SMTPConfig{
			Addr:     s.SMTPAddr,
			Username: s.SMTPUsername,
			Password: s.SMTPPassword,
			From:     s.MailFrom,
		})
	}
	return mail.NewLogMailer(s.MailFrom, config.Logger)
}

func (a *app) useCases() httpapi.UseCases {
	return httpapi.UseCases{
		Users:     a.users,
		Posts:     a.posts,
		Groups:    a.groups,
		Comments:  a.comments,
		Followers: a.followers,
		Feed:      a.feed,
	}
}

// Close releases Redis and the database pool.
func (a *app) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			config.Logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
	config.CloseDB(a.db)
}

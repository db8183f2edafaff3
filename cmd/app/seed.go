package main

import (
	"context"
	"errors"
	"fmt"

	"yatube/internal/config"
	"yatube/internal/core/apperr"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const seedPassword = "yatube-demo-password"

// SeedCmd fills a development database with demo users, a group, follow
// edges and posts. Existing demo users and the demo group are reused.
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create demo data for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			numUsers, _ := cmd.Flags().GetInt("users")
			postsPerUser, _ := cmd.Flags().GetInt("posts")

			a, err := newApp(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer a.Close()

			return seed(cmd.Context(), a, numUsers, postsPerUser)
		},
	}
	cmd.Flags().Int("users", 5, "number of demo users")
	cmd.Flags().Int("posts", 3, "posts per demo user")
	return cmd
}

func seed(ctx context.Context, a *app, numUsers, postsPerUser int) error {
	logger := config.Logger
	logger.Info("Seeding demo data", zap.Int("users", numUsers), zap.Int("postsPerUser", postsPerUser))

	g, err := a.groups.GetGroupBySlug(ctx, "demo")
	if errors.Is(err, apperr.ErrNotFound) {
		g, err = a.groups.CreateGroup(ctx, "Demo", "demo", "Posts created by the seed command")
	}
	if err != nil {
		return fmt.Errorf("seed group: %w", err)
	}

	userIDs := make([]string, 0, numUsers)
	usernames := make([]string, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		username := fmt.Sprintf("demo%d", i)
		id, err := seedUser(ctx, a, username)
		if err != nil {
			return err
		}
		userIDs = append(userIDs, id)
		usernames = append(usernames, username)
	}

	// Everyone follows everyone else.
	follows := 0
	for _, followerID := range userIDs {
		for _, author := range usernames {
			if err := a.followers.FollowIfAbsent(ctx, followerID, author); err != nil {
				return fmt.Errorf("seed follow %s: %w", author, err)
			}
			follows++
		}
	}
	logger.Info("Follow setup completed", zap.Int("count", follows))

	posts := 0
	for i, uid := range userIDs {
		for p := 1; p <= postsPerUser; p++ {
			text := fmt.Sprintf("Post %d by %s", p, usernames[i])
			in := postPort.PostInput{Text: &text}
			if p%2 == 1 {
				in.GroupID = &g.ID
			}
			if _, err := a.posts.CreatePost(ctx, uid, in); err != nil {
				return fmt.Errorf("seed post: %w", err)
			}
			posts++
		}
	}

	logger.Info("Demo data created", zap.Int("users", len(userIDs)), zap.Int("posts", posts))
	return nil
}

// seedUser registers username or looks it up when it already exists.
func seedUser(ctx context.Context, a *app, username string) (string, error) {
	u, err := a.users.RegisterUser(ctx, userPort.RegisterInput{
		FirstName: "Demo",
		LastName:  username,
		Username:  username,
		Email:     username + "@example.com",
		Password:  seedPassword,
	})
	if err == nil {
		return u.ID, nil
	}
	if !errors.Is(err, apperr.ErrValidation) {
		return "", fmt.Errorf("seed user %s: %w", username, err)
	}

	existing, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("seed user %s: %w", username, err)
	}
	return existing.ID.String(), nil
}

package groupapp

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"yatube/internal/config"
	"yatube/internal/core/apperr"
	groupEntity "yatube/internal/core/group"
	"yatube/internal/core/pagination"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"

	"go.uber.org/zap"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

type GroupService struct {
	GroupRepository groupPort.GroupRepository
	// Cache is purged when a group goes away, since cached pages carry group titles.
	Cache postPort.ListingCache
}

func NewGroupService(repo groupPort.GroupRepository, cache postPort.ListingCache) *GroupService {
	return &GroupService{
		GroupRepository: repo,
		Cache:           cache,
	}
}

func (s *GroupService) CreateGroup(ctx context.Context, title, slug, description string) (*groupPort.GroupDTO, error) {
	title = strings.TrimSpace(title)
	slug = strings.TrimSpace(slug)

	switch {
	case title == "":
		return nil, apperr.Invalid("title", "this field is required")
	case utf8.RuneCountInString(title) > 200:
		return nil, apperr.Invalid("title", "ensure this field has no more than 200 characters")
	case slug == "":
		return nil, apperr.Invalid("slug", "this field is required")
	case len(slug) > 50:
		return nil, apperr.Invalid("slug", "ensure this field has no more than 50 characters")
	case !slugPattern.MatchString(slug):
		return nil, apperr.Invalid("slug", "enter a valid slug of letters, numbers, underscores or hyphens")
	}

	g, err := s.GroupRepository.Create(ctx, &groupEntity.Group{
		Title:       title,
		Slug:        slug,
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Invalid("slug", "group with this slug already exists")
		}
		return nil, err
	}

	config.Logger.Info("Group created", zap.String("slug", g.Slug))
	return groupPort.NewGroupDTO(g), nil
}

// DeleteGroup removes a group by slug. Its posts stay, without a group.
func (s *GroupService) DeleteGroup(ctx context.Context, slug string) error {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.GroupRepository.Delete(ctx, g.ID); err != nil {
		return err
	}
	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			config.Logger.Warn("Failed to invalidate listing cache", zap.Error(err))
		}
	}
	config.Logger.Info("Group deleted", zap.String("slug", slug))
	return nil
}

func (s *GroupService) ListGroups(ctx context.Context, w pagination.Window) ([]*groupPort.GroupDTO, int64, error) {
	count, err := s.GroupRepository.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	groups, err := s.GroupRepository.List(ctx, w.Limit, w.Offset)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]*groupPort.GroupDTO, 0, len(groups))
	for _, g := range groups {
		dtos = append(dtos, groupPort.NewGroupDTO(g))
	}
	return dtos, count, nil
}

func (s *GroupService) GetGroup(ctx context.Context, id uint) (*groupPort.GroupDTO, error) {
	g, err := s.GroupRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return groupPort.NewGroupDTO(g), nil
}

func (s *GroupService) GetGroupBySlug(ctx context.Context, slug string) (*groupPort.GroupDTO, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return groupPort.NewGroupDTO(g), nil
}

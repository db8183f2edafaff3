package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"yatube/internal/config"
	"yatube/internal/core/pagination"
	postPort "yatube/internal/ports/post"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	generationKey = "listing:all:gen"
	pageKeyFormat = "listing:all:%d:%d"
)

// ListingCacheRedis caches pages of the all-posts listing. Page keys embed a
// generation number; bumping it orphans every page at once and the orphans
// expire on their own.
type ListingCacheRedis struct {
	Client *redis.Client
	TTL    time.Duration
}

// cachedPost keeps the fields PostDTO hides from the API.
type cachedPost struct {
	postPort.PostDTO
	AuthorID   string `json:"author_id"`
	GroupSlug  string `json:"group_slug,omitempty"`
	GroupTitle string `json:"group_title,omitempty"`
}

type cachedPage struct {
	Posts []cachedPost    `json:"posts"`
	Page  pagination.Page `json:"page"`
}

func NewListingCacheRedis(client *redis.Client, ttl time.Duration) *ListingCacheRedis {
	return &ListingCacheRedis{
		Client: client,
		TTL:    ttl,
	}
}

func (r *ListingCacheRedis) Get(ctx context.Context, page int) (*postPort.PageDTO, uint64, bool, error) {
	gen, err := r.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	key := pageKey(gen, page)

	raw, err := r.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, err
	}

	var entry cachedPage
	if err := json.Unmarshal(raw, &entry); err != nil {
		config.Logger.Warn("Dropping undecodable cached page", zap.String("key", key), zap.Error(err))
		r.Client.Del(ctx, key)
		return nil, gen, false, nil
	}
	return fromCache(&entry), gen, true, nil
}

// Set writes under gen even when the generation has moved on since Get; such
// an entry is never read and just expires.
func (r *ListingCacheRedis) Set(ctx context.Context, page int, gen uint64, p *postPort.PageDTO) error {
	raw, err := json.Marshal(toCache(p))
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, pageKey(gen, page), raw, r.TTL).Err()
}

func (r *ListingCacheRedis) Invalidate(ctx context.Context) error {
	gen, err := r.Client.Incr(ctx, generationKey).Result()
	if err != nil {
		return err
	}
	config.Logger.Debug("Listing cache invalidated", zap.Int64("generation", gen))
	return nil
}

func (r *ListingCacheRedis) generation(ctx context.Context) (uint64, error) {
	gen, err := r.Client.Get(ctx, generationKey).Uint64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func pageKey(gen uint64, page int) string {
	return fmt.Sprintf(pageKeyFormat, gen, page)
}

func toCache(p *postPort.PageDTO) *cachedPage {
	entry := &cachedPage{Posts: make([]cachedPost, 0, len(p.Posts)), Page: p.Page}
	for _, dto := range p.Posts {
		entry.Posts = append(entry.Posts, cachedPost{
			PostDTO:    *dto,
			AuthorID:   dto.AuthorID,
			GroupSlug:  dto.GroupSlug,
			GroupTitle: dto.GroupTitle,
		})
	}
	return entry
}

func fromCache(entry *cachedPage) *postPort.PageDTO {
	p := &postPort.PageDTO{Posts: make([]*postPort.PostDTO, 0, len(entry.Posts)), Page: entry.Page}
	for _, cp := range entry.Posts {
		dto := cp.PostDTO
		dto.AuthorID = cp.AuthorID
		dto.GroupSlug = cp.GroupSlug
		dto.GroupTitle = cp.GroupTitle
		p.Posts = append(p.Posts, &dto)
	}
	return p
}

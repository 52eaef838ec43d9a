package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gamefeed/gamefeed/app/store"
	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// providerName prefixes every error the service returns.
const providerName = "wordpress"

// Service is a cached, read-only query facade over Client. Every
// operation consults the TTL cache first; entries past the TTL count as
// misses and trigger a refetch. Concurrent misses on the same key are not
// coordinated, the last fetch to finish wins the cache slot.
type Service struct {
	log   *slog.Logger
	cl    *Client
	cache cache.Cache[string, any]
}

// NewService creates new service with a TTL+LRU bounded cache.
func NewService(lg *slog.Logger, cl *Client, ttl time.Duration, maxKeys int) *Service {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if maxKeys <= 0 {
		maxKeys = 1000
	}

	return &Service{
		log: lg,
		cl:  cl,
		cache: cache.NewCache[string, any]().
			WithTTL(ttl).
			WithLRU().
			WithMaxKeys(maxKeys),
	}
}

// Games returns a page of games. At most min(limit, configured page size)
// posts are fetched.
func (s *Service) Games(ctx context.Context, page, limit int) ([]store.Game, error) {
	key := fmt.Sprintf("games:%d:%d", page, limit)
	if v, ok := s.cache.Get(key); ok {
		return v.([]store.Game), nil
	}

	games, err := s.fetchGames(ctx, PostsQuery{Page: page, PerPage: s.perPage(limit)})
	if err != nil {
		return nil, fmt.Errorf("[%s] get page %d: %w", providerName, page, err)
	}

	s.cache.Set(key, games, 0)
	return games, nil
}

// GameByID returns a single game, or nil when the upstream does not have
// it. Not-found outcomes are cached like any other.
func (s *Service) GameByID(ctx context.Context, id int) (*store.Game, error) {
	key := fmt.Sprintf("game:%d", id)
	if v, ok := s.cache.Get(key); ok {
		return v.(*store.Game), nil
	}

	p, err := s.cl.Post(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		s.log.DebugCtx(ctx, "game not found", slog.Int("id", id))
		s.cache.Set(key, (*store.Game)(nil), 0)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[%s] get game %d: %w", providerName, id, err)
	}

	g := GameFromPost(*p)
	s.cache.Set(key, &g, 0)
	return &g, nil
}

// Search performs a remote full-text search. An empty query returns an
// empty list without touching the network.
func (s *Service) Search(ctx context.Context, query string) ([]store.Game, error) {
	if query == "" {
		return []store.Game{}, nil
	}

	key := "search:" + query
	if v, ok := s.cache.Get(key); ok {
		return v.([]store.Game), nil
	}

	games, err := s.fetchGames(ctx, PostsQuery{Page: 1, PerPage: s.cl.PageSize(), Search: query})
	if err != nil {
		return nil, fmt.Errorf("[%s] search %q: %w", providerName, query, err)
	}

	s.cache.Set(key, games, 0)
	return games, nil
}

// GamesByCategory returns a page of games belonging to a category.
func (s *Service) GamesByCategory(ctx context.Context, categoryID, page, limit int) ([]store.Game, error) {
	key := fmt.Sprintf("category:%d:%d:%d", categoryID, page, limit)
	if v, ok := s.cache.Get(key); ok {
		return v.([]store.Game), nil
	}

	games, err := s.fetchGames(ctx, PostsQuery{Page: page, PerPage: s.perPage(limit), Category: categoryID})
	if err != nil {
		return nil, fmt.Errorf("[%s] get category %d page %d: %w", providerName, categoryID, page, err)
	}

	s.cache.Set(key, games, 0)
	return games, nil
}

// Categories returns the flat list of taxonomy terms.
func (s *Service) Categories(ctx context.Context) ([]store.Category, error) {
	const key = "categories"
	if v, ok := s.cache.Get(key); ok {
		return v.([]store.Category), nil
	}

	cats, err := s.cl.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("[%s] get categories: %w", providerName, err)
	}

	s.cache.Set(key, cats, 0)
	return cats, nil
}

// Page is a single fetched page with derived pagination metadata. Total
// and TotalPages are derived from the fetched page alone, not from an
// upstream total; HasNextPage is a full-page heuristic.
type Page struct {
	Data            []store.Game `json:"data"`
	Page            int          `json:"page"`
	Limit           int          `json:"limit"`
	Total           int          `json:"total"`
	TotalPages      int          `json:"total_pages"`
	HasNextPage     bool         `json:"has_next_page"`
	HasPreviousPage bool         `json:"has_previous_page"`
}

// GamesPaginated returns a page of games wrapped in pagination metadata.
func (s *Service) GamesPaginated(ctx context.Context, page, limit int) (Page, error) {
	games, err := s.Games(ctx, page, limit)
	if err != nil {
		return Page{}, err
	}

	totalPages := 0
	if limit > 0 {
		totalPages = (len(games) + limit - 1) / limit
	}

	return Page{
		Data:            games,
		Page:            page,
		Limit:           limit,
		Total:           len(games),
		TotalPages:      totalPages,
		HasNextPage:     len(games) == limit,
		HasPreviousPage: page > 1,
	}, nil
}

// HealthCheck reports whether a minimal one-item fetch completes without
// a transport error.
func (s *Service) HealthCheck(ctx context.Context) bool {
	if _, err := s.cl.Posts(ctx, PostsQuery{Page: 1, PerPage: 1}); err != nil {
		s.log.WarnCtx(ctx, "health check failed", slog.Any("err", err))
		return false
	}
	return true
}

// ClearCache drops every cached entry.
func (s *Service) ClearCache() { s.cache.Purge() }

// ClearCacheKey drops a single cached entry.
func (s *Service) ClearCacheKey(key string) { s.cache.Invalidate(key) }

// CacheStat returns cache statistics.
func (s *Service) CacheStat() cache.Stats { return s.cache.Stat() }

func (s *Service) fetchGames(ctx context.Context, q PostsQuery) ([]store.Game, error) {
	posts, err := s.cl.Posts(ctx, q)
	if err != nil {
		return nil, err
	}
	return lo.Map(posts, func(p Post, _ int) store.Game { return GameFromPost(p) }), nil
}

func (s *Service) perPage(limit int) int {
	if ps := s.cl.PageSize(); limit > ps {
		return ps
	}
	return limit
}

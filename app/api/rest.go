// Package api exposes the provider service over a read-only JSON HTTP
// surface. It carries no extraction or caching logic of its own.
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gamefeed/gamefeed/app/provider"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

// Rest is a JSON HTTP adapter over the provider service.
type Rest struct {
	Logger   *slog.Logger
	Service  *provider.Service
	PageSize int
	Version  string
}

// Router builds a gin engine with all consumer routes.
func (s *Rest) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	grp := r.Group("/api")
	grp.GET("/games", s.listGames)
	grp.GET("/games/:id", s.getGame)
	grp.GET("/paginated", s.listGamesPaginated)
	grp.GET("/search", s.search)
	grp.GET("/categories", s.listCategories)
	grp.GET("/categories/:id/games", s.listGamesByCategory)

	r.GET("/health", s.health)

	return r
}

func (s *Rest) listGames(c *gin.Context) {
	page, limit := s.pagination(c)

	games, err := s.Service.Games(c.Request.Context(), page, limit)
	if err != nil {
		s.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, games)
}

func (s *Rest) getGame(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be numeric"})
		return
	}

	game, err := s.Service.GameByID(c.Request.Context(), id)
	if err != nil {
		s.upstreamError(c, err)
		return
	}
	if game == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	c.JSON(http.StatusOK, game)
}

func (s *Rest) listGamesPaginated(c *gin.Context) {
	page, limit := s.pagination(c)

	result, err := s.Service.GamesPaginated(c.Request.Context(), page, limit)
	if err != nil {
		s.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Rest) search(c *gin.Context) {
	games, err := s.Service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		s.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, games)
}

func (s *Rest) listCategories(c *gin.Context) {
	cats, err := s.Service.Categories(c.Request.Context())
	if err != nil {
		s.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, cats)
}

func (s *Rest) listGamesByCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be numeric"})
		return
	}

	page, limit := s.pagination(c)

	games, err := s.Service.GamesByCategory(c.Request.Context(), id, page, limit)
	if err != nil {
		s.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, games)
}

func (s *Rest) health(c *gin.Context) {
	if !s.Service.HealthCheck(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": s.Version})
}

// pagination defaults and lower-bounds page/limit; the provider trusts
// its arguments, so the adapter is the place to sanitize them.
func (s *Rest) pagination(c *gin.Context) (page, limit int) {
	page = parseInt(c.Query("page"), 1)
	limit = parseInt(c.Query("limit"), s.PageSize)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = s.PageSize
	}
	return page, limit
}

func (s *Rest) upstreamError(c *gin.Context, err error) {
	s.Logger.ErrorCtx(c.Request.Context(), "upstream request failed", slog.Any("err", err))
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

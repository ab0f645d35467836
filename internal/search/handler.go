package search

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jeffbulltech/cosmere-api/internal/config"
	essearch "github.com/jeffbulltech/cosmere-api/internal/infrastructure/search"
	"github.com/jeffbulltech/cosmere-api/internal/shared/response"
	"github.com/jeffbulltech/cosmere-api/internal/shared/utils"
)

const minQueryLength = 2

type Handler struct {
	aggregator *Aggregator
	engine     *essearch.Engine
	pagination config.PaginationConfig
}

// NewHandler wires the fan-out aggregator and the optional full-text engine.
// engine may be nil when Elasticsearch is not configured.
func NewHandler(aggregator *Aggregator, engine *essearch.Engine, pagination config.PaginationConfig) *Handler {
	return &Handler{aggregator: aggregator, engine: engine, pagination: pagination}
}

// Search - GET /v1/search?q=&types=books,characters
func (h *Handler) Search(c *gin.Context) {
	term, ok := h.queryTerm(c)
	if !ok {
		return
	}

	var types []string
	if v := c.Query("types"); v != "" {
		types = strings.Split(v, ",")
	}

	res, err := h.aggregator.SearchAll(c.Request.Context(), term, types)
	if err != nil {
		h.searchError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// SearchType - GET /v1/search/:type?q=
func (h *Handler) SearchType(c *gin.Context) {
	term, ok := h.queryTerm(c)
	if !ok {
		return
	}

	res, err := h.aggregator.SearchType(c.Request.Context(), term, c.Param("type"))
	if err != nil {
		h.searchError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Suggestions - GET /v1/search/suggestions?q=&limit=
func (h *Handler) Suggestions(c *gin.Context) {
	term, ok := h.queryTerm(c)
	if !ok {
		return
	}

	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	names, err := h.aggregator.Suggestions(c.Request.Context(), term, limit)
	if err != nil {
		h.searchError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"suggestions": names,
		"search_term": term,
	})
}

// AdvancedRequest - POST /v1/search/advanced
type AdvancedRequest struct {
	Query   string                            `json:"query"`
	Filters map[string]map[string]interface{} `json:"filters"`
}

// Advanced - POST /v1/search/advanced
func (h *Handler) Advanced(c *gin.Context) {
	var req AdvancedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if len(strings.TrimSpace(req.Query)) < minQueryLength {
		response.BadRequest(c, "query must be at least 2 characters")
		return
	}

	res, err := h.aggregator.Advanced(c.Request.Context(), strings.TrimSpace(req.Query), req.Filters)
	if err != nil {
		h.searchError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Global - GET /v1/search/global?q=&skip=&limit=
// Ranked full-text search across all indices via the external engine.
func (h *Handler) Global(c *gin.Context) {
	if h.engine == nil {
		response.ErrorResponse(c, http.StatusServiceUnavailable, "SEARCH_UNAVAILABLE", "full-text search is not configured")
		return
	}

	term, ok := h.queryTerm(c)
	if !ok {
		return
	}
	skip, limit, err := utils.ParsePagination(c, h.pagination.DefaultLimit, h.pagination.MaxLimit)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid pagination", err)
		return
	}

	res, err := h.engine.GlobalSearch(c.Request.Context(), term, skip, limit)
	if err != nil {
		response.InternalServerError(c, "search engine query failed")
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) queryTerm(c *gin.Context) (string, bool) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		term = strings.TrimSpace(c.Query("search"))
	}
	if len(term) < minQueryLength {
		response.BadRequest(c, "q must be at least 2 characters")
		return "", false
	}
	return term, true
}

func (h *Handler) searchError(c *gin.Context, err error) {
	if errors.Is(err, ErrUnknownType) {
		response.BadRequest(c, "unknown search type; known types: "+strings.Join(h.aggregator.Types(), ", "))
		return
	}
	response.InternalServerError(c, "search failed")
}

package book

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jeffbulltech/cosmere-api/internal/config"
	"github.com/jeffbulltech/cosmere-api/internal/listing"
	"github.com/jeffbulltech/cosmere-api/internal/shared/response"
	"github.com/jeffbulltech/cosmere-api/internal/shared/utils"
)

type Handler struct {
	service    *Service
	pagination config.PaginationConfig
}

func NewHandler(svc *Service, pagination config.PaginationConfig) *Handler {
	return &Handler{service: svc, pagination: pagination}
}

// List - GET /v1/books?skip=&limit=&series_id=&world_id=&standalone=&search=
func (h *Handler) List(c *gin.Context) {
	skip, limit, err := utils.ParsePagination(c, h.pagination.DefaultLimit, h.pagination.MaxLimit)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid pagination", err)
		return
	}

	filters := map[string]interface{}{}
	if v := c.Query("series_id"); v != "" {
		filters["series_id"] = v
	}
	if v := c.Query("world_id"); v != "" {
		filters["world_id"] = v
	}
	if v := c.Query("standalone"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			filters["series_id"] = nil
		}
	}

	search := c.Query("search")
	if search == "" {
		search = c.Query("q")
	}

	page, err := h.service.List(c.Request.Context(), listing.Params{
		Skip:    skip,
		Limit:   limit,
		Search:  search,
		Filters: filters,
	})
	if err != nil {
		response.ServiceError(c, err, "Book")
		return
	}
	response.Success(c, http.StatusOK, page)
}

// GetByID - GET /v1/books/:id
func (h *Handler) GetByID(c *gin.Context) {
	b, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ServiceError(c, err, "Book")
		return
	}
	response.Success(c, http.StatusOK, b)
}

// GetByTitle - GET /v1/books/title/:title
func (h *Handler) GetByTitle(c *gin.Context) {
	b, err := h.service.GetByTitle(c.Request.Context(), c.Param("title"))
	if err != nil {
		response.ServiceError(c, err, "Book")
		return
	}
	response.Success(c, http.StatusOK, b)
}

// ListBySeries - GET /v1/series/:id/books
func (h *Handler) ListBySeries(c *gin.Context) {
	skip, limit, err := utils.ParsePagination(c, h.pagination.DefaultLimit, h.pagination.MaxLimit)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid pagination", err)
		return
	}

	page, err := h.service.ListBySeries(c.Request.Context(), c.Param("id"), listing.Params{
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		response.ServiceError(c, err, "Book")
		return
	}
	response.Success(c, http.StatusOK, page)
}

// ListByWorld - GET /v1/worlds/:id/books
func (h *Handler) ListByWorld(c *gin.Context) {
	skip, limit, err := utils.ParsePagination(c, h.pagination.DefaultLimit, h.pagination.MaxLimit)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid pagination", err)
		return
	}

	page, err := h.service.ListByWorld(c.Request.Context(), c.Param("id"), listing.Params{
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		response.ServiceError(c, err, "Book")
		return
	}
	response.Success(c, http.StatusOK, page)
}

// ListStandalone - GET /v1/books/standalone
func (h *Handler) ListStandalone(c *gin.Context) {
	skip, limit, err := utils.ParsePagination(c, h.pagination.DefaultLimit, h.pagination.MaxLimit)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid pagination", err)
		return
	}

	page, err := h.service.ListStandalone(c.Request.Context(), listing.Params{
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		response.ServiceError(c, err, "Book")
		return
	}
	response.Success(c, http.StatusOK, page)
}

// Create - POST /v1/books
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.ServiceError(c, err, "Book")
		return
	}
	response.Success(c, http.StatusCreated, b)
}

// Update - PUT /v1/books/:id
func (h *Handler) Update(c *gin.Context) {
	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", err)
		return
	}

	b, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.ServiceError(c, err, "Book")
		return
	}
	response.Success(c, http.StatusOK, b)
}

// Delete - DELETE /v1/books/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.ServiceError(c, err, "Book")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCharacters - GET /v1/books/:id/characters?pov=true
func (h *Handler) ListCharacters(c *gin.Context) {
	povOnly := false
	if v := c.Query("pov"); v != "" {
		povOnly, _ = strconv.ParseBool(v)
	}

	cast, err := h.service.Characters(c.Request.Context(), c.Param("id"), povOnly)
	if err != nil {
		response.ServiceError(c, err, "Book")
		return
	}
	response.Success(c, http.StatusOK, cast)
}

// AddCharacter - POST /v1/books/:id/characters
func (h *Handler) AddCharacter(c *gin.Context) {
	var req CreateAppearanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", err)
		return
	}

	a, err := h.service.AddCharacter(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.ServiceError(c, err, "Appearance")
		return
	}
	response.Success(c, http.StatusCreated, a)
}

// UpdateCharacter - PUT /v1/books/:id/characters/:character_id
func (h *Handler) UpdateCharacter(c *gin.Context) {
	var req UpdateAppearanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", err)
		return
	}

	a, err := h.service.UpdateCharacter(c.Request.Context(), c.Param("id"), c.Param("character_id"), &req)
	if err != nil {
		response.ServiceError(c, err, "Appearance")
		return
	}
	response.Success(c, http.StatusOK, a)
}

// RemoveCharacter - DELETE /v1/books/:id/characters/:character_id
func (h *Handler) RemoveCharacter(c *gin.Context) {
	if err := h.service.RemoveCharacter(c.Request.Context(), c.Param("id"), c.Param("character_id")); err != nil {
		response.ServiceError(c, err, "Appearance")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListByCharacter - GET /v1/characters/:id/books
func (h *Handler) ListByCharacter(c *gin.Context) {
	books, err := h.service.BooksOf(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ServiceError(c, err, "Book")
		return
	}
	response.Success(c, http.StatusOK, books)
}

// GetOverview - GET /v1/books/overview
func (h *Handler) GetOverview(c *gin.Context) {
	overview, err := h.service.GetOverview(c.Request.Context())
	if err != nil {
		response.ServiceError(c, err, "Book")
		return
	}
	response.Success(c, http.StatusOK, overview)
}

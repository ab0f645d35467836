package world

import (
	"net/http"

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

// List - GET /v1/worlds?skip=&limit=&system=&shard_id=&search=
func (h *Handler) List(c *gin.Context) {
	skip, limit, err := utils.ParsePagination(c, h.pagination.DefaultLimit, h.pagination.MaxLimit)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid pagination", err)
		return
	}

	filters := map[string]interface{}{}
	if v := c.Query("system"); v != "" {
		filters["system"] = v
	}
	if v := c.Query("shard_id"); v != "" {
		filters["shard_id"] = v
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
		response.ServiceError(c, err, "World")
		return
	}
	response.Success(c, http.StatusOK, page)
}

// GetByID - GET /v1/worlds/:id
func (h *Handler) GetByID(c *gin.Context) {
	w, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ServiceError(c, err, "World")
		return
	}
	response.Success(c, http.StatusOK, w)
}

// GetByName - GET /v1/worlds/name/:name
func (h *Handler) GetByName(c *gin.Context) {
	w, err := h.service.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.ServiceError(c, err, "World")
		return
	}
	response.Success(c, http.StatusOK, w)
}

// Create - POST /v1/worlds
func (h *Handler) Create(c *gin.Context) {
	var req CreateWorldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", err)
		return
	}

	w, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.ServiceError(c, err, "World")
		return
	}
	response.Success(c, http.StatusCreated, w)
}

// Update - PUT /v1/worlds/:id
func (h *Handler) Update(c *gin.Context) {
	var req UpdateWorldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", err)
		return
	}

	w, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.ServiceError(c, err, "World")
		return
	}
	response.Success(c, http.StatusOK, w)
}

// Delete - DELETE /v1/worlds/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.ServiceError(c, err, "World")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetOverview - GET /v1/worlds/overview
func (h *Handler) GetOverview(c *gin.Context) {
	overview, err := h.service.GetOverview(c.Request.Context())
	if err != nil {
		response.ServiceError(c, err, "World")
		return
	}
	response.Success(c, http.StatusOK, overview)
}

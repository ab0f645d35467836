package magicsystem

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

// List - GET /v1/magic-systems?skip=&limit=&world_id=&investiture_based=&search=
func (h *Handler) List(c *gin.Context) {
	skip, limit, err := utils.ParsePagination(c, h.pagination.DefaultLimit, h.pagination.MaxLimit)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid pagination", err)
		return
	}

	filters := map[string]interface{}{}
	if v := c.Query("world_id"); v != "" {
		filters["world_id"] = v
	}
	if v := c.Query("investiture_based"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filters["is_investiture_based"] = b
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
		response.ServiceError(c, err, "Magic system")
		return
	}
	response.Success(c, http.StatusOK, page)
}

// GetByID - GET /v1/magic-systems/:id
func (h *Handler) GetByID(c *gin.Context) {
	m, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ServiceError(c, err, "Magic system")
		return
	}
	response.Success(c, http.StatusOK, m)
}

// GetByName - GET /v1/magic-systems/name/:name
func (h *Handler) GetByName(c *gin.Context) {
	m, err := h.service.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.ServiceError(c, err, "Magic system")
		return
	}
	response.Success(c, http.StatusOK, m)
}

// ListByWorld - GET /v1/worlds/:id/magic-systems
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
		response.ServiceError(c, err, "Magic system")
		return
	}
	response.Success(c, http.StatusOK, page)
}

// Create - POST /v1/magic-systems
func (h *Handler) Create(c *gin.Context) {
	var req CreateMagicSystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", err)
		return
	}

	m, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.ServiceError(c, err, "Magic system")
		return
	}
	response.Success(c, http.StatusCreated, m)
}

// Update - PUT /v1/magic-systems/:id
func (h *Handler) Update(c *gin.Context) {
	var req UpdateMagicSystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", err)
		return
	}

	m, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.ServiceError(c, err, "Magic system")
		return
	}
	response.Success(c, http.StatusOK, m)
}

// Delete - DELETE /v1/magic-systems/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.ServiceError(c, err, "Magic system")
		return
	}
	c.Status(http.StatusNoContent)
}

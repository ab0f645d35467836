package shard

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

// List - GET /v1/shards?skip=&limit=&intent=&status=&world_location_id=&search=
func (h *Handler) List(c *gin.Context) {
	skip, limit, err := utils.ParsePagination(c, h.pagination.DefaultLimit, h.pagination.MaxLimit)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid pagination", err)
		return
	}

	filters := map[string]interface{}{}
	if v := c.Query("intent"); v != "" {
		filters["intent"] = v
	}
	if v := c.Query("status"); v != "" {
		filters["status"] = v
	}
	if v := c.Query("world_location_id"); v != "" {
		filters["world_location_id"] = v
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
		response.ServiceError(c, err, "Shard")
		return
	}
	response.Success(c, http.StatusOK, page)
}

// GetByID - GET /v1/shards/:id
func (h *Handler) GetByID(c *gin.Context) {
	sh, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ServiceError(c, err, "Shard")
		return
	}
	response.Success(c, http.StatusOK, sh)
}

// GetByName - GET /v1/shards/name/:name
func (h *Handler) GetByName(c *gin.Context) {
	sh, err := h.service.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.ServiceError(c, err, "Shard")
		return
	}
	response.Success(c, http.StatusOK, sh)
}

// ByVessel - GET /v1/shards/vessel/:name
func (h *Handler) ByVessel(c *gin.Context) {
	shards, err := h.service.ByVessel(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.ServiceError(c, err, "Shard")
		return
	}
	response.Success(c, http.StatusOK, shards)
}

// WorldsOf - GET /v1/shards/:id/worlds
func (h *Handler) WorldsOf(c *gin.Context) {
	worlds, err := h.service.WorldsOf(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ServiceError(c, err, "Shard")
		return
	}
	response.Success(c, http.StatusOK, worlds)
}

// Create - POST /v1/shards
func (h *Handler) Create(c *gin.Context) {
	var req CreateShardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", err)
		return
	}

	sh, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.ServiceError(c, err, "Shard")
		return
	}
	response.Success(c, http.StatusCreated, sh)
}

// Update - PUT /v1/shards/:id
func (h *Handler) Update(c *gin.Context) {
	var req UpdateShardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", err)
		return
	}

	sh, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.ServiceError(c, err, "Shard")
		return
	}
	response.Success(c, http.StatusOK, sh)
}

// Delete - DELETE /v1/shards/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.ServiceError(c, err, "Shard")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListVessels - GET /v1/shards/:id/vessels
func (h *Handler) ListVessels(c *gin.Context) {
	vessels, err := h.service.Vessels(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ServiceError(c, err, "Shard")
		return
	}
	response.Success(c, http.StatusOK, vessels)
}

// CreateVessel - POST /v1/shards/:id/vessels
func (h *Handler) CreateVessel(c *gin.Context) {
	var req CreateVesselRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", err)
		return
	}

	v, err := h.service.AddVessel(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.ServiceError(c, err, "Vessel")
		return
	}
	response.Success(c, http.StatusCreated, v)
}

// UpdateVessel - PUT /v1/shards/:id/vessels/:vessel_id
func (h *Handler) UpdateVessel(c *gin.Context) {
	var req UpdateVesselRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", err)
		return
	}

	v, err := h.service.UpdateVessel(c.Request.Context(), c.Param("id"), c.Param("vessel_id"), &req)
	if err != nil {
		response.ServiceError(c, err, "Vessel")
		return
	}
	response.Success(c, http.StatusOK, v)
}

// DeleteVessel - DELETE /v1/shards/:id/vessels/:vessel_id
func (h *Handler) DeleteVessel(c *gin.Context) {
	if err := h.service.DeleteVessel(c.Request.Context(), c.Param("id"), c.Param("vessel_id")); err != nil {
		response.ServiceError(c, err, "Vessel")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetOverview - GET /v1/shards/overview
func (h *Handler) GetOverview(c *gin.Context) {
	overview, err := h.service.GetOverview(c.Request.Context())
	if err != nil {
		response.ServiceError(c, err, "Shard")
		return
	}
	response.Success(c, http.StatusOK, overview)
}

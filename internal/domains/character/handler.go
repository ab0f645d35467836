package character

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

// List - GET /v1/characters?skip=&limit=&species=&status=&world_id=&search=
func (h *Handler) List(c *gin.Context) {
	skip, limit, err := utils.ParsePagination(c, h.pagination.DefaultLimit, h.pagination.MaxLimit)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid pagination", err)
		return
	}

	filters := map[string]interface{}{}
	if v := c.Query("species"); v != "" {
		filters["species"] = v
	}
	if v := c.Query("status"); v != "" {
		filters["status"] = v
	}
	if v := c.Query("world_id"); v != "" {
		filters["world_of_origin_id"] = v
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
		response.ServiceError(c, err, "Character")
		return
	}
	response.Success(c, http.StatusOK, page)
}

// GetByID - GET /v1/characters/:id
func (h *Handler) GetByID(c *gin.Context) {
	ch, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ServiceError(c, err, "Character")
		return
	}
	response.Success(c, http.StatusOK, ch)
}

// GetByName - GET /v1/characters/name/:name
func (h *Handler) GetByName(c *gin.Context) {
	ch, err := h.service.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.ServiceError(c, err, "Character")
		return
	}
	response.Success(c, http.StatusOK, ch)
}

// ListByWorld - GET /v1/worlds/:id/characters
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
		response.ServiceError(c, err, "Character")
		return
	}
	response.Success(c, http.StatusOK, page)
}

// Create - POST /v1/characters
func (h *Handler) Create(c *gin.Context) {
	var req CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", err)
		return
	}

	ch, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.ServiceError(c, err, "Character")
		return
	}
	response.Success(c, http.StatusCreated, ch)
}

// Update - PUT /v1/characters/:id
func (h *Handler) Update(c *gin.Context) {
	var req UpdateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", err)
		return
	}

	ch, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.ServiceError(c, err, "Character")
		return
	}
	response.Success(c, http.StatusOK, ch)
}

// Delete - DELETE /v1/characters/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.ServiceError(c, err, "Character")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListRelationships - GET /v1/characters/:id/relationships
func (h *Handler) ListRelationships(c *gin.Context) {
	rels, err := h.service.Relationships(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ServiceError(c, err, "Character")
		return
	}
	response.Success(c, http.StatusOK, rels)
}

// CreateRelationship - POST /v1/characters/:id/relationships
func (h *Handler) CreateRelationship(c *gin.Context) {
	var req CreateRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", err)
		return
	}

	rel, err := h.service.AddRelationship(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.ServiceError(c, err, "Relationship")
		return
	}
	response.Success(c, http.StatusCreated, rel)
}

// UpdateRelationship - PUT /v1/characters/:id/relationships/:relationship_id
func (h *Handler) UpdateRelationship(c *gin.Context) {
	var req UpdateRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", err)
		return
	}

	rel, err := h.service.UpdateRelationship(c.Request.Context(), c.Param("id"), c.Param("relationship_id"), &req)
	if err != nil {
		response.ServiceError(c, err, "Relationship")
		return
	}
	response.Success(c, http.StatusOK, rel)
}

// DeleteRelationship - DELETE /v1/characters/:id/relationships/:relationship_id
func (h *Handler) DeleteRelationship(c *gin.Context) {
	if err := h.service.DeleteRelationship(c.Request.Context(), c.Param("id"), c.Param("relationship_id")); err != nil {
		response.ServiceError(c, err, "Relationship")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMagicSystems - GET /v1/characters/:id/magic-systems
func (h *Handler) ListMagicSystems(c *gin.Context) {
	systems, err := h.service.MagicSystems(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ServiceError(c, err, "Character")
		return
	}
	response.Success(c, http.StatusOK, systems)
}

// CreateMagicSystem - POST /v1/characters/:id/magic-systems
func (h *Handler) CreateMagicSystem(c *gin.Context) {
	var req CreateMagicUseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", err)
		return
	}

	m, err := h.service.AddMagicSystem(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.ServiceError(c, err, "Magic use")
		return
	}
	response.Success(c, http.StatusCreated, m)
}

// UpdateMagicSystem - PUT /v1/characters/:id/magic-systems/:magic_system_id
func (h *Handler) UpdateMagicSystem(c *gin.Context) {
	var req UpdateMagicUseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	m, err := h.service.UpdateMagicSystem(c.Request.Context(), c.Param("id"), c.Param("magic_system_id"), &req)
	if err != nil {
		response.ServiceError(c, err, "Magic use")
		return
	}
	response.Success(c, http.StatusOK, m)
}

// DeleteMagicSystem - DELETE /v1/characters/:id/magic-systems/:magic_system_id
func (h *Handler) DeleteMagicSystem(c *gin.Context) {
	if err := h.service.RemoveMagicSystem(c.Request.Context(), c.Param("id"), c.Param("magic_system_id")); err != nil {
		response.ServiceError(c, err, "Magic use")
		return
	}
	c.Status(http.StatusNoContent)
}

// UsersOfMagicSystem - GET /v1/magic-systems/:id/users
func (h *Handler) UsersOfMagicSystem(c *gin.Context) {
	users, err := h.service.UsersOf(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ServiceError(c, err, "Magic system")
		return
	}
	response.Success(c, http.StatusOK, users)
}

// GetOverview - GET /v1/characters/overview
func (h *Handler) GetOverview(c *gin.Context) {
	overview, err := h.service.GetOverview(c.Request.Context())
	if err != nil {
		response.ServiceError(c, err, "Character")
		return
	}
	response.Success(c, http.StatusOK, overview)
}

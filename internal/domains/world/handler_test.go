package world

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffbulltech/cosmere-api/internal/config"
	"github.com/jeffbulltech/cosmere-api/internal/repository"
	"github.com/jeffbulltech/cosmere-api/internal/repository/repotest"
)

func newTestRouter(store *repotest.Store[World]) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(store, nil), config.PaginationConfig{DefaultLimit: 20, MaxLimit: 100})

	r := gin.New()
	r.GET("/worlds", h.List)
	r.GET("/worlds/:id", h.GetByID)
	r.POST("/worlds", h.Create)
	r.PUT("/worlds/:id", h.Update)
	r.DELETE("/worlds/:id", h.Delete)
	return r
}

func TestListEndpoint(t *testing.T) {
	store := &repotest.Store[World]{
		GetMultiFn: func(_ context.Context, q repository.Query) ([]World, error) {
			assert.Equal(t, "Rosharan", q.Filters["system"])
			return []World{{ID: "roshar", Name: "Roshar"}}, nil
		},
		CountFn: func(_ context.Context, _ map[string]interface{}) (int, error) {
			return 1, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/worlds?system=Rosharan", nil)
	newTestRouter(store).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Total int `json:"total"`
			Items []World
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Data.Total)
	assert.Len(t, body.Data.Items, 1)
}

func TestListEndpointRejectsBadPagination(t *testing.T) {
	store := &repotest.Store[World]{}

	for _, query := range []string{"?limit=0", "?limit=101", "?limit=abc", "?skip=-1"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/worlds"+query, nil)
		newTestRouter(store).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "query %s", query)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	}
}

func TestGetByIDEndpointNotFound(t *testing.T) {
	store := &repotest.Store[World]{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/worlds/nope", nil)
	newTestRouter(store).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "World not found")
}

func TestCreateEndpoint(t *testing.T) {
	store := &repotest.Store[World]{
		CreateFn: func(_ context.Context, wd *World) (*World, error) {
			return wd, nil
		},
	}

	payload, _ := json.Marshal(map[string]interface{}{"id": "roshar", "name": "Roshar"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/worlds", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(store).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateEndpointValidation(t *testing.T) {
	store := &repotest.Store[World]{}

	payload, _ := json.Marshal(map[string]interface{}{"system": "Rosharan"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/worlds", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(store).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestCreateEndpointDuplicate(t *testing.T) {
	store := &repotest.Store[World]{
		CreateFn: func(_ context.Context, _ *World) (*World, error) {
			return nil, repository.ErrDuplicate
		},
	}

	payload, _ := json.Marshal(map[string]interface{}{"name": "Roshar"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/worlds", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(store).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteEndpointReferenced(t *testing.T) {
	store := &repotest.Store[World]{
		DeleteFn: func(_ context.Context, _ string) (bool, error) {
			return false, repository.ErrReferenced
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/worlds/roshar", nil)
	newTestRouter(store).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteEndpointNoContent(t *testing.T) {
	store := &repotest.Store[World]{
		DeleteFn: func(_ context.Context, _ string) (bool, error) {
			return true, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/worlds/roshar", nil)
	newTestRouter(store).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

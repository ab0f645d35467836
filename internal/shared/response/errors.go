package response

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jeffbulltech/cosmere-api/internal/repository"
)

// ServiceError maps repository-layer sentinel errors onto HTTP statuses.
// Unexpected errors become a generic 500 with no internal detail leaked.
func ServiceError(c *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, entity+" not found")
	case errors.Is(err, repository.ErrDuplicate):
		Conflict(c, entity+" already exists")
	case errors.Is(err, repository.ErrReferenced):
		Conflict(c, entity+" is still referenced by other records")
	case errors.Is(err, repository.ErrMissingReference):
		BadRequest(c, "referenced record does not exist")
	default:
		InternalServerError(c, "unexpected error")
	}
}

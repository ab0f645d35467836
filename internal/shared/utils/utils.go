package utils

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ParsePagination reads skip/limit query params. Missing params fall back
// to the defaults; malformed or out-of-range values return field-level
// validation errors.
func ParsePagination(c *gin.Context, defaultLimit, maxLimit int) (int, int, error) {
	skip := 0
	limit := defaultLimit
	errs := validation.Errors{}

	if s := c.Query("skip"); s != "" {
		v, err := strconv.Atoi(s)
		switch {
		case err != nil:
			errs["skip"] = errors.New("must be an integer")
		case v < 0:
			errs["skip"] = errors.New("must be no less than 0")
		default:
			skip = v
		}
	}

	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		switch {
		case err != nil:
			errs["limit"] = errors.New("must be an integer")
		case v < 1 || v > maxLimit:
			errs["limit"] = fmt.Errorf("must be between 1 and %d", maxLimit)
		default:
			limit = v
		}
	}

	if len(errs) > 0 {
		return 0, 0, errs
	}
	return skip, limit, nil
}

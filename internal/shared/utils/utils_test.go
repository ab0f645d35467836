package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paginationContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/worlds"+query, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		wantSkip  int
		wantLimit int
	}{
		{"defaults", "", 0, 20},
		{"explicit values", "?skip=40&limit=10", 40, 10},
		{"limit at max", "?limit=100", 0, 100},
		{"zero skip", "?skip=0", 0, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			skip, limit, err := ParsePagination(paginationContext(t, tc.query), 20, 100)
			require.NoError(t, err)
			assert.Equal(t, tc.wantSkip, skip)
			assert.Equal(t, tc.wantLimit, limit)
		})
	}
}

func TestParsePaginationRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		query string
		field string
	}{
		{"non-numeric limit", "?limit=abc", "limit"},
		{"zero limit", "?limit=0", "limit"},
		{"limit over max", "?limit=101", "limit"},
		{"negative skip", "?skip=-1", "skip"},
		{"non-numeric skip", "?skip=x", "skip"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParsePagination(paginationContext(t, tc.query), 20, 100)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyDeterministic(t *testing.T) {
	a := Key("cosmere", "worlds", 0, 20, "roshar")
	b := Key("cosmere", "worlds", 0, 20, "roshar")
	assert.Equal(t, a, b)

	assert.True(t, strings.HasPrefix(a, "cosmere:worlds:"))

	// Different arguments produce different keys.
	c := Key("cosmere", "worlds", 20, 20, "roshar")
	assert.NotEqual(t, a, c)

	// Different names never collide even with equal arguments.
	d := Key("cosmere", "books", 0, 20, "roshar")
	assert.NotEqual(t, a, d)
}

func TestKeyFieldsOrderInsensitive(t *testing.T) {
	a := KeyFields("cosmere", "books", map[string]interface{}{
		"skip": 0, "limit": 20, "f.world_id": "roshar",
	})
	b := KeyFields("cosmere", "books", map[string]interface{}{
		"f.world_id": "roshar", "limit": 20, "skip": 0,
	})
	assert.Equal(t, a, b)

	c := KeyFields("cosmere", "books", map[string]interface{}{
		"skip": 0, "limit": 20, "f.world_id": "scadrial",
	})
	assert.NotEqual(t, a, c)
}

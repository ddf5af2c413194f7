package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSuccessResponse(t *testing.T) {
	body, err := json.Marshal(NewSuccessResponse([]int64{7}, "Documents uploaded"))
	require.NoError(t, err)

	assert.JSONEq(t, `{"success":true,"message":"Documents uploaded","data":[7]}`, string(body))
}

func TestNewErrorResponse(t *testing.T) {
	t.Run("omits data", func(t *testing.T) {
		body, err := json.Marshal(NewErrorResponse("NOT_FOUND", "Cannot GET /nope"))
		require.NoError(t, err)

		assert.JSONEq(t, `{
			"success": false,
			"message": "Cannot GET /nope",
			"error": {"code": "NOT_FOUND", "message": "Cannot GET /nope"}
		}`, string(body))
	})

	t.Run("with data", func(t *testing.T) {
		resp := NewErrorResponse("UNHEALTHY", "Service is degraded").WithData(map[string]string{"redis": "down"})

		assert.False(t, resp.Success)
		assert.Equal(t, "UNHEALTHY", resp.Error.Code)
		assert.Equal(t, map[string]string{"redis": "down"}, resp.Data)
	})
}

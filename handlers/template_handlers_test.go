package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canvaclone/api/models"
)

func TestGetTemplates(t *testing.T) {
	env := newTestEnv(t)
	rows := fmt.Sprintf(`[{"id":%q,"components":[{"type":"header"}],"image_url":"https://media/tpl.png"}]`,
		uuid.New())

	env.fake.on(http.MethodGet, "/rest/v1/templates", http.StatusOK, rows)

	resp := env.request(http.MethodGet, "/api/design/templates", nil, "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envlp := decodeEnvelope(t, resp)
	require.True(t, envlp.Success)

	var templates []models.Template
	require.NoError(t, json.Unmarshal(envlp.Data, &templates))
	require.Len(t, templates, 1)
	assert.Equal(t, "https://media/tpl.png", templates[0].ImageURL)

	lists := env.fake.calls(http.MethodGet, "/rest/v1/templates")
	require.Len(t, lists, 1)
	assert.Contains(t, lists[0].Query.Get("order"), "created_at.desc")
}

func TestGetTemplatesUpstreamFailure(t *testing.T) {
	env := newTestEnv(t)

	env.fake.on(http.MethodGet, "/rest/v1/templates", http.StatusInternalServerError,
		`{"message":"db down"}`)

	resp := env.request(http.MethodGet, "/api/design/templates", nil, "", true)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	envlp := decodeEnvelope(t, resp)
	assert.False(t, envlp.Success)
	// Upstream detail stays in the server log.
	assert.Equal(t, "Something went wrong", envlp.Message)
}

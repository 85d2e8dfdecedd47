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

func TestAddUserImage(t *testing.T) {
	env := newTestEnv(t)
	imageID := uuid.New()

	env.stubStorageUpload()
	env.fake.on(http.MethodPost, "/rest/v1/user_images", http.StatusCreated,
		fmt.Sprintf(`[{"id":%q,"user_id":%q,"image_url":"https://media/img.png"}]`, imageID, env.user.ID))

	body, contentType := designForm(t, "", true)
	resp := env.request(http.MethodPost, "/api/design/add-user-image", body, contentType, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	inserts := env.fake.calls(http.MethodPost, "/rest/v1/user_images")
	require.Len(t, inserts, 1)

	var inserted struct {
		UserID   string `json:"user_id"`
		ImageURL string `json:"image_url"`
	}
	require.NoError(t, json.Unmarshal(inserts[0].Body, &inserted))
	assert.Equal(t, env.user.ID.String(), inserted.UserID)
	assert.Contains(t, inserted.ImageURL, "/storage/v1/object/public/"+testBucket+"/")

	envlp := decodeEnvelope(t, resp)
	require.True(t, envlp.Success)

	var image models.UserImage
	require.NoError(t, json.Unmarshal(envlp.Data, &image))
	assert.Equal(t, imageID, image.ID)
	assert.NotEmpty(t, image.ImageURL)
}

func TestGetUserImagesScopedToCaller(t *testing.T) {
	env := newTestEnv(t)
	rows := fmt.Sprintf(`[{"id":%q,"user_id":%q,"image_url":"https://media/a.png"}]`,
		uuid.New(), env.user.ID)

	env.fake.on(http.MethodGet, "/rest/v1/user_images", http.StatusOK, rows)

	resp := env.request(http.MethodGet, "/api/design/get-user-image", nil, "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	lists := env.fake.calls(http.MethodGet, "/rest/v1/user_images")
	require.Len(t, lists, 1)
	assert.Equal(t, "eq."+env.user.ID.String(), lists[0].Query.Get("user_id"))
}

func TestStaticImageCatalogs(t *testing.T) {
	env := newTestEnv(t)
	rows := fmt.Sprintf(`[{"id":%q,"image_url":"https://media/static.png"}]`, uuid.New())

	env.fake.on(http.MethodGet, "/rest/v1/design_images", http.StatusOK, rows)
	env.fake.on(http.MethodGet, "/rest/v1/background_images", http.StatusOK, rows)

	for _, route := range []string{"/api/design/design-images", "/api/design/background-images"} {
		resp := env.request(http.MethodGet, route, nil, "", true)
		require.Equal(t, http.StatusOK, resp.StatusCode, route)

		envlp := decodeEnvelope(t, resp)
		assert.True(t, envlp.Success)

		var images []models.StaticImage
		require.NoError(t, json.Unmarshal(envlp.Data, &images))
		require.Len(t, images, 1)
		assert.Equal(t, "https://media/static.png", images[0].ImageURL)
	}
}

func TestImageRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/design/add-user-image"},
		{http.MethodGet, "/api/design/get-user-image"},
		{http.MethodGet, "/api/design/design-images"},
		{http.MethodGet, "/api/design/background-images"},
	}

	for _, rt := range routes {
		resp := env.request(rt.method, rt.path, nil, "", false)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, rt.path)
	}
}

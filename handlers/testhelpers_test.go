package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	supa "github.com/supabase-community/supabase-go"

	"canvaclone/api/internal/storage"
	"canvaclone/api/internal/token"
	"canvaclone/api/middleware"
	"canvaclone/api/models"
)

const testBucket = "design-assets"

type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

type fakeRoute struct {
	status int
	body   string
}

// fakeSupabase emulates the PostgREST and storage endpoints the handlers
// talk to. Routes are registered per method+path (prefix match for the
// uuid-suffixed storage uploads); every request is recorded so tests can
// assert on side effects and their absence.
type fakeSupabase struct {
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]fakeRoute
	server   *httptest.Server
}

func newFakeSupabase(t *testing.T) *fakeSupabase {
	t.Helper()
	f := &fakeSupabase{routes: map[string]fakeRoute{}}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeSupabase) on(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = fakeRoute{status: status, body: body}
}

func (f *fakeSupabase) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Body:   body,
	})

	key := r.Method + " " + r.URL.Path
	route, ok := f.routes[key]
	if !ok {
		for candidate, rt := range f.routes {
			if strings.HasPrefix(key, candidate) {
				route, ok = rt, true
				break
			}
		}
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no fake route"}`))
		return
	}
	w.WriteHeader(route.status)
	w.Write([]byte(route.body))
}

// calls returns the recorded requests matching method and path prefix.
func (f *fakeSupabase) calls(method, pathPrefix string) []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedRequest
	for _, req := range f.requests {
		if req.Method == method && strings.HasPrefix(req.Path, pathPrefix) {
			out = append(out, req)
		}
	}
	return out
}

type testEnv struct {
	t      *testing.T
	fake   *fakeSupabase
	app    *fiber.App
	tokens *token.Service
	user   models.User
	bearer string
}

// newTestEnv builds the full handler stack (routes wired as in main)
// against a fake Supabase, with one registered user whose bearer token is
// ready to use.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fake := newFakeSupabase(t)

	db, err := supa.NewClient(fake.server.URL, "test-key", nil)
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	tokens := token.NewService("test-secret")
	uploader := storage.NewUploader(db.Storage, testBucket)
	h := NewApplicationHandler(log, db, uploader, tokens, nil)
	requireAuth := middleware.RequireAuth(tokens, db, log)

	app := fiber.New()
	user := app.Group("/api/user")
	user.Post("/register", h.RegisterUser)
	user.Post("/login", h.LoginUser)
	user.Get("/user-details", requireAuth, h.GetUserDetails)

	design := app.Group("/api/design", requireAuth)
	design.Post("/create-user-design", h.CreateUserDesign)
	design.Get("/user-design/:design_id", h.GetUserDesign)
	design.Put("/update-user-design/:design_id", h.UpdateUserDesign)
	design.Get("/user-designs", h.GetUserDesigns)
	design.Put("/delete-user-image/:design_id", h.DeleteUserDesign)
	design.Post("/add-user-image", h.AddUserImage)
	design.Get("/get-user-image", h.GetUserImages)
	design.Get("/design-images", h.GetDesignImages)
	design.Get("/background-images", h.GetBackgroundImages)
	design.Get("/templates", h.GetTemplates)
	design.Get("/add-user-template/:template_id", h.AddUserTemplate)

	authUser := models.User{
		ID:        uuid.New(),
		Name:      "A",
		Email:     "a@x.com",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	rows, err := json.Marshal([]models.User{authUser})
	require.NoError(t, err)
	fake.on(http.MethodGet, "/rest/v1/users", http.StatusOK, string(rows))

	bearer, err := tokens.Issue(authUser.ID)
	require.NoError(t, err)

	return &testEnv{
		t:      t,
		fake:   fake,
		app:    app,
		tokens: tokens,
		user:   authUser,
		bearer: bearer,
	}
}

func (e *testEnv) request(method, target string, body io.Reader, contentType string, authed bool) *http.Response {
	e.t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.bearer)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	return resp
}

func (e *testEnv) jsonRequest(method, target, body string, authed bool) *http.Response {
	return e.request(method, target, strings.NewReader(body), fiber.MIMEApplicationJSON, authed)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

// designForm builds the multipart body the design endpoints accept: an
// "image" file plus a "design" JSON string field.
func designForm(t *testing.T, designJSON string, withImage bool) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if designJSON != "" {
		require.NoError(t, writer.WriteField("design", designJSON))
	}
	if withImage {
		part, err := writer.CreateFormFile("image", "preview.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

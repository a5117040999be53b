package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gdugdh24/cofounder-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/infrastructure/cache"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/gdugdh24/cofounder-backend/internal/repository/memory"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/interaction"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/listing"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/submission"
	"github.com/gin-gonic/gin"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(profiles repository.ProfileRepository, store *memory.Store) *gin.Engine {
	log, _ := logtest.NewNullLogger()
	noop := cache.Noop{}

	cofounder := NewCofounderHandler(
		submission.NewSubmissionUseCase(profiles, noop, log),
		listing.NewListingUseCase(profiles, noop, log),
		log,
	)
	interactions := NewInteractionHandler(
		interaction.NewInteractionUseCase(profiles, store.Interactions(), store.Transactor(), noop, log),
		log,
	)

	r := gin.New()
	r.POST("/submit", cofounder.Submit)
	r.GET("/profiles", cofounder.ListProfiles)
	r.GET("/check-email/:email", cofounder.CheckEmail)
	r.POST("/interact", middleware.Visitor(), interactions.Interact)
	r.GET("/interact", middleware.Visitor(), interactions.LikeStatus)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "1.2.3.4")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func submitBody(email string) map[string]any {
	return map[string]any{
		"firstName":  "Ada",
		"lastName":   "Lovelace",
		"email":      email,
		"linkedIn":   "https://linkedin.com/in/ada",
		"profilePic": "data:image/png;base64,AAAA",
		"role":       "technical",
		"stage":      "idea",
		"industries": []string{"AI"},
		"prompts": map[string]string{
			"superpower":     "a",
			"obsession":      "b",
			"cofounder_type": "c",
		},
	}
}

func TestSubmit(t *testing.T) {
	store := memory.NewStore()
	r := newEngine(store.Profiles(), store)

	w := do(t, r, http.MethodPost, "/submit", submitBody("ada@x.com"))
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Profile submitted successfully!", body["message"])
	assert.NotEmpty(t, body["profileId"])

	w = do(t, r, http.MethodPost, "/submit", submitBody("ADA@x.com "))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "A profile with this email already exists.", decode(t, w)["message"])
}

func TestSubmit_BadRequests(t *testing.T) {
	store := memory.NewStore()
	r := newEngine(store.Profiles(), store)

	missing := submitBody("a@x.com")
	delete(missing, "stage")

	fewPrompts := submitBody("b@x.com")
	fewPrompts["prompts"] = map[string]string{"superpower": "a"}

	invalid := submitBody("c@x.com")
	invalid["role"] = "ceo"

	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"malformed json", "{not json", "Invalid request body"},
		{"empty body", nil, "Missing required fields"},
		{"missing field", missing, "Missing required fields"},
		{"few prompts", fewPrompts, "Please answer at least 3 prompts"},
		{"invalid enum", invalid, "Role must be one of: technical, non-technical, design, hybrid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/submit", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

type brokenProfiles struct {
	repository.ProfileRepository
}

var errStorage = errors.New("storage down")

func (brokenProfiles) GetByEmail(context.Context, string) (*domain.Profile, error) {
	return nil, errStorage
}

func (brokenProfiles) ExistsByEmail(context.Context, string) (bool, error) {
	return false, errStorage
}

func (brokenProfiles) ListByStatus(context.Context, []domain.ProfileStatus) ([]*domain.Profile, error) {
	return nil, errStorage
}

func TestStorageFailures(t *testing.T) {
	store := memory.NewStore()
	r := newEngine(brokenProfiles{store.Profiles()}, store)

	tests := []struct {
		method, path string
		body         any
		message      string
	}{
		{http.MethodPost, "/submit", submitBody("a@x.com"), "Something went wrong. Please try again."},
		{http.MethodGet, "/profiles", nil, "Failed to fetch profiles"},
		{http.MethodGet, "/check-email/a@x.com", nil, "Failed to check email"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, tt.message, decode(t, w)["message"])
		})
	}
}

func TestListProfiles_HidesPrivateFields(t *testing.T) {
	store := memory.NewStore()
	r := newEngine(store.Profiles(), store)
	do(t, r, http.MethodPost, "/submit", submitBody("ada@x.com"))

	w := do(t, r, http.MethodGet, "/profiles", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(1), body["count"])
	profiles := body["profiles"].([]any)
	require.Len(t, profiles, 1)
	p := profiles[0].(map[string]any)
	assert.NotContains(t, p, "email")
	assert.NotContains(t, p, "status")
	assert.NotEmpty(t, p["_id"])
	assert.Equal(t, "Ada", p["firstName"])
}

func TestCheckEmail(t *testing.T) {
	store := memory.NewStore()
	r := newEngine(store.Profiles(), store)

	w := do(t, r, http.MethodGet, "/check-email/ada@x.com", nil)
	assert.Equal(t, false, decode(t, w)["exists"])

	do(t, r, http.MethodPost, "/submit", submitBody("ada@x.com"))

	w = do(t, r, http.MethodGet, "/check-email/ADA@X.COM", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["exists"])
}

func TestInteract(t *testing.T) {
	store := memory.NewStore()
	r := newEngine(store.Profiles(), store)
	id := decode(t, do(t, r, http.MethodPost, "/submit", submitBody("ada@x.com")))["profileId"].(string)

	w := do(t, r, http.MethodPost, "/interact", map[string]string{"profileId": id, "type": "like"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "liked", decode(t, w)["action"])

	w = do(t, r, http.MethodGet, "/interact?profileId="+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["hasLiked"])

	tests := []struct {
		name    string
		body    any
		status  int
		message string
	}{
		{"malformed json", "{", http.StatusBadRequest, "Invalid request body"},
		{"missing type", map[string]string{"profileId": id}, http.StatusBadRequest, "Invalid request"},
		{"bad type", map[string]string{"profileId": id, "type": "poke"}, http.StatusBadRequest, "Invalid request"},
		{"unknown profile", map[string]string{"profileId": "nope", "type": "view"}, http.StatusNotFound, "Profile not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/interact", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decode(t, w)["message"])
		})
	}
}

func TestLikeStatus_RequiresProfileID(t *testing.T) {
	store := memory.NewStore()
	r := newEngine(store.Profiles(), store)

	w := do(t, r, http.MethodGet, "/interact", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Profile ID required", decode(t, w)["message"])
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careers-portal-backend/internal/models"
	"careers-portal-backend/internal/services"
	"careers-portal-backend/internal/storage"
	"careers-portal-backend/internal/zoho"
)

func zohoFixture(t *testing.T, api http.HandlerFunc) (*gin.Engine, *services.SyncService, *stubSyncer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "t", "expires_in": 3600})
	}))
	t.Cleanup(tokenSrv.Close)

	client := zoho.NewClient(zoho.Config{Region: "eu", OrgID: "org"}, zoho.NewTokenCache())
	client.TokenURL = tokenSrv.URL
	if api != nil {
		apiSrv := httptest.NewServer(api)
		t.Cleanup(apiSrv.Close)
		client.APIBase = apiSrv.URL
	}

	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)
	syncer := newStubSyncer()
	syncService := services.NewSyncService(syncer, store)

	h := NewZohoHandler(client, syncService)
	r := gin.New()
	r.GET("/api/zoho/candidate-fields", h.CandidateFields)
	r.GET("/api/zoho/sync/status", h.SyncStatus)
	r.GET("/zoho/oauth/callback", h.OAuthCallback)
	return r, syncService, syncer
}

func TestSyncStatusEmptyThenTracksOutcome(t *testing.T) {
	r, syncService, syncer := zohoFixture(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/zoho/sync/status", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"last":null`)

	syncer.setCreateErr(errors.New("zoho: token refresh failed 400"))
	syncService.Run(&models.Application{ID: 3})

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/zoho/sync/status", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"synced":false`)
	assert.Contains(t, w.Body.String(), "token refresh failed")
}

func TestCandidateFieldsEndpoint(t *testing.T) {
	r, _, _ := zohoFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"fields":[{"api_name":"Email","data_type":"email","field_label":"Email","required":false}]}`))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/zoho/candidate-fields", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
	assert.Contains(t, w.Body.String(), `"api_name":"Email"`)
}

func TestOAuthCallbackRequiresCode(t *testing.T) {
	r, _, _ := zohoFixture(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/zoho/oauth/callback", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOAuthCallbackReturnsTokens(t *testing.T) {
	r, _, _ := zohoFixture(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/zoho/oauth/callback?code=abc", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"t"`)
}

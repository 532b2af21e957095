package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aihub/hubadmin/pkg/maintenance"
	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence/file"
	"github.com/aihub/hubadmin/pkg/web"
)

func setupTestApp(tempDir string) *fiber.App {
	api := NewAPI(APIConfig{
		Logger:      slog.Default(),
		Persistence: file.NewPersistence(tempDir),
	})

	return api.App()
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req
}

func closeBody(t *testing.T, resp *http.Response) {
	t.Helper()

	if err := resp.Body.Close(); err != nil {
		t.Logf("Failed to close response body: %v", err)
	}
}

func TestAPI_RootEndpoint(t *testing.T) {
	app := setupTestApp(t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Hub Admin API", string(body))
}

func TestAPI_Liveness(t *testing.T) {
	app := setupTestApp(t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_ProviderLifecycle(t *testing.T) {
	app := setupTestApp(t.TempDir())

	// Create
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/admin/providers", map[string]any{
		"type":    "oidc",
		"name":    map[string]string{"en": "Keycloak", "de": "Keycloak"},
		"config":  map[string]any{"issuer": "https://idp.example.com"},
		"enabled": true,
	}))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.AuthProvider

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created.ID)
	assert.True(t, created.Enabled)

	// List
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/admin/providers", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var providers []models.AuthProvider

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&providers))
	require.Len(t, providers, 1)

	// Partial update keeps untouched fields.
	resp, err = app.Test(jsonRequest(t, http.MethodPatch, "/admin/providers/"+created.ID, map[string]any{
		"name": map[string]string{"en": "Keycloak Prod"},
	}))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.AuthProvider

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "Keycloak Prod", updated.Name["en"])
	assert.Equal(t, "https://idp.example.com", updated.Config["issuer"])

	// Toggle
	resp, err = app.Test(jsonRequest(t, http.MethodPut, "/admin/providers/"+created.ID+"/enabled", map[string]any{
		"enabled": false,
	}))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var toggled models.AuthProvider

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&toggled))
	assert.False(t, toggled.Enabled)

	// Delete
	resp, err = app.Test(jsonRequest(t, http.MethodDelete, "/admin/providers/"+created.ID, nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/admin/providers/"+created.ID, nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_CreateProvider_MissingDefaultLocale(t *testing.T) {
	app := setupTestApp(t.TempDir())

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/admin/providers", map[string]any{
		"type": "oidc",
		"name": map[string]string{"de": "Nur Deutsch"},
	}))
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var problem map[string]any

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&problem))
	assert.Equal(t, float64(http.StatusBadRequest), problem["status"])
	assert.Equal(t, "validation_error", problem["type"])
}

func TestAPI_OAuthClient_SecretHandedOutOnce(t *testing.T) {
	app := setupTestApp(t.TempDir())

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/admin/oauth/clients", map[string]any{
		"name":        "Reporting App",
		"grant_types": []string{"client_credentials"},
	}))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created web.CreatedClientResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created.Secret)
	assert.Equal(t, models.MaskedSecret, created.Client.Secret)

	// Every later read masks the secret.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/admin/oauth/clients/"+created.Client.ID, nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched web.OAuthClientResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	assert.Equal(t, models.MaskedSecret, fetched.Secret)

	// Regeneration hands out a fresh plaintext.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/admin/oauth/clients/"+created.Client.ID+"/regenerate-secret", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var regenerated web.CreatedClientResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&regenerated))
	assert.NotEmpty(t, regenerated.Secret)
	assert.NotEqual(t, created.Secret, regenerated.Secret)
}

func TestAPI_DebugLogBuffer(t *testing.T) {
	app := setupTestApp(t.TempDir())

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/admin/auth/debug", map[string]any{
		"level":    "info",
		"provider": "keycloak",
		"event":    "login_started",
		"data":     map[string]any{"username": "alex"},
	}))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/admin/auth/debug", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []models.DebugLogEntry

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "login_started", entries[0].Event)

	// Provider filter
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/admin/auth/debug?provider=azure-ad", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	var filtered []models.DebugLogEntry

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&filtered))
	assert.Empty(t, filtered)

	// Clear
	resp, err = app.Test(jsonRequest(t, http.MethodDelete, "/admin/auth/debug", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/admin/auth/debug", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	var afterClear []models.DebugLogEntry

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&afterClear))
	assert.Empty(t, afterClear)
}

func TestAPI_UsageReport(t *testing.T) {
	app := setupTestApp(t.TempDir())

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/admin/usage", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report models.UsageReport

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Len(t, report.Counters, len(models.UsageMetrics()))
}

func TestAPI_UsageExportCSV(t *testing.T) {
	app := setupTestApp(t.TempDir())

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/admin/usage/export", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "metric,value")
}

func TestAPI_ConfigSections(t *testing.T) {
	app := setupTestApp(t.TempDir())

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/admin/config/logging", map[string]any{
		"level": "debug",
	}))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/admin/config", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var config models.PlatformConfig

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&config))
	assert.Equal(t, "debug", config.LogLevel)

	// Unknown level maps to 400.
	resp, err = app.Test(jsonRequest(t, http.MethodPut, "/admin/config/logging", map[string]any{
		"level": "verbose",
	}))
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_BearerAuth(t *testing.T) {
	signingKey := []byte("api-test-signing-key")

	api := NewAPI(APIConfig{
		Logger:      slog.Default(),
		Persistence: file.NewPersistence(t.TempDir()),
		SigningKey:  signingKey,
	})
	app := api.App()

	// No token.
	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/admin/providers", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Garbage token.
	req := jsonRequest(t, http.MethodGet, "/admin/providers", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err = app.Test(req)
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Valid token.
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ops@example.com",
		"iat": now.Unix(),
		"exp": now.Add(time.Minute).Unix(),
	})

	signed, err := token.SignedString(signingKey)
	require.NoError(t, err)

	req = jsonRequest(t, http.MethodGet, "/admin/providers", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err = app.Test(req)
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The public surface stays open.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_ShortLinks(t *testing.T) {
	tempDir := t.TempDir()
	store := file.NewPersistence(tempDir)

	require.NoError(t, store.ShortLinks().Save(t.Context(), &models.ShortLink{
		Code:   "abc123",
		Target: "app://document/42",
	}))

	app := setupTestApp(tempDir)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/admin/shortlinks/abc123/resolve", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var link models.ShortLink

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&link))
	assert.Equal(t, "app://document/42", link.Target)
	assert.Equal(t, int64(1), link.Hits)

	resp, err = app.Test(jsonRequest(t, http.MethodDelete, "/admin/shortlinks/abc123", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/admin/shortlinks/abc123/resolve", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_SourceSchemaEndpoint(t *testing.T) {
	app := setupTestApp(t.TempDir())

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/admin/sources/schema/filesystem", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var schema map[string]any

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&schema))
	assert.Equal(t, "object", schema["type"])

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/admin/sources/schema/carrier-pigeon", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_WorkflowImportExport(t *testing.T) {
	app := setupTestApp(t.TempDir())

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/admin/workflows", map[string]any{
		"name":        "Nightly Summary",
		"description": "Summarizes yesterday's documents",
	}))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Workflow

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/admin/workflows/"+created.ID+"/export", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

	exported, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin/workflows/import", bytes.NewReader(exported))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var imported models.Workflow

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&imported))
	assert.NotEqual(t, created.ID, imported.ID)
	assert.Equal(t, "Nightly Summary", imported.Name)
}

func TestAPI_RotateProviderSecrets(t *testing.T) {
	tempDir := t.TempDir()
	store := file.NewPersistence(tempDir)

	current, err := maintenance.NewSecretBox([]byte("old-master-key"))
	require.NoError(t, err)

	sealed, err := current.Encrypt("ldap-bind-password")
	require.NoError(t, err)

	now := time.Now().UTC()

	require.NoError(t, store.Providers().Save(t.Context(), &models.AuthProvider{
		ID:        "prov-1",
		Type:      models.ProviderTypeLDAP,
		Name:      models.LocalizedText{"en": "Directory"},
		Config:    map[string]any{"host": "ldap.example.com", "bind_password": sealed},
		CreatedAt: now,
		UpdatedAt: now,
	}))

	app := setupTestApp(tempDir)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/admin/system/rotate-secrets", map[string]any{
		"current_key": "old-master-key",
		"next_key":    "new-master-key",
	}))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]any

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, float64(1), result["rotated"])

	next, err := maintenance.NewSecretBox([]byte("new-master-key"))
	require.NoError(t, err)

	provider, err := store.Providers().GetByID(t.Context(), "prov-1")
	require.NoError(t, err)

	rotated, ok := provider.Config["bind_password"].(string)
	require.True(t, ok)
	assert.NotEqual(t, sealed, rotated)

	plaintext, err := next.Decrypt(rotated)
	require.NoError(t, err)
	assert.Equal(t, "ldap-bind-password", plaintext)

	// Missing keys fail validation.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/admin/system/rotate-secrets", map[string]any{
		"current_key": "old-master-key",
	}))
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_SystemVersion(t *testing.T) {
	app := setupTestApp(t.TempDir())

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/admin/system/version", nil))
	require.NoError(t, err)

	defer closeBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var version map[string]any

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&version))
	assert.NotEmpty(t, version["version"])
}

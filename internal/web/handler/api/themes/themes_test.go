package themes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/config"
	"github.com/quillpress/quillpress/internal/db/models"
)

const testAPIKey = "test-api-key"

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Theme{}))

	cfg := &config.Config{}
	cfg.Webserver.APIKey = testAPIKey

	app := fiber.New()
	svc := Service{}
	require.NoError(t, svc.Init(app, cfg, db))

	return app, db
}

func seedThemes(t *testing.T, db *gorm.DB) {
	t.Helper()

	themes := []models.Theme{
		{Name: "Default", Slug: "default", IsActive: true},
		{Name: "Midnight", Slug: "midnight"},
	}
	for i := range themes {
		require.NoError(t, db.Create(&themes[i]).Error)
	}
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body any, apiKey string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, "http://example.com"+target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if apiKey != "" {
		req.Header.Set(auth.HeaderAPIKey, apiKey)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, raw
}

func TestListActiveFirst(t *testing.T) {
	app, db := setupTestApp(t)
	seedThemes(t, db)

	// make the later theme the active one
	require.NoError(t, db.Model(&models.Theme{}).Where("id = ?", 1).Update("is_active", false).Error)
	require.NoError(t, db.Model(&models.Theme{}).Where("id = ?", 2).Update("is_active", true).Error)

	status, body := doRequest(t, app, fiber.MethodGet, Path, nil, "")
	require.Equal(t, fiber.StatusOK, status)

	var themes []models.Theme
	require.NoError(t, json.Unmarshal(body, &themes))
	require.Len(t, themes, 2)
	assert.Equal(t, "midnight", themes[0].Slug)
	assert.True(t, themes[0].IsActive)
}

func TestCreate(t *testing.T) {
	app, _ := setupTestApp(t)

	payload := fiber.Map{"name": "Solar Flare", "styles": "body{}"}

	status, _ := doRequest(t, app, fiber.MethodPost, Path, payload, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := doRequest(t, app, fiber.MethodPost, Path, payload, testAPIKey)
	require.Equal(t, fiber.StatusCreated, status)

	var created models.Theme
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "solar-flare", created.Slug)
	assert.False(t, created.IsActive)
}

func TestUpdate(t *testing.T) {
	app, db := setupTestApp(t)
	seedThemes(t, db)

	status, body := doRequest(t, app, fiber.MethodPut, Path+"/2",
		fiber.Map{"name": "Midnight Blue", "styles": "body{color:blue}"}, testAPIKey)
	require.Equal(t, fiber.StatusOK, status)

	var updated models.Theme
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "Midnight Blue", updated.Name)
	assert.Equal(t, "midnight", updated.Slug)
}

func TestUpdateRejectsSlugChange(t *testing.T) {
	app, db := setupTestApp(t)
	seedThemes(t, db)

	status, body := doRequest(t, app, fiber.MethodPut, Path+"/2",
		fiber.Map{"name": "Midnight Blue", "slug": "renamed"}, testAPIKey)
	require.Equal(t, fiber.StatusBadRequest, status)

	var errBody map[string]string
	require.NoError(t, json.Unmarshal(body, &errBody))
	assert.Contains(t, errBody["error"], "slug")

	// nothing was changed
	var stored models.Theme
	require.NoError(t, db.First(&stored, 2).Error)
	assert.Equal(t, "Midnight", stored.Name)
	assert.Equal(t, "midnight", stored.Slug)
}

func TestActivate(t *testing.T) {
	app, db := setupTestApp(t)
	seedThemes(t, db)

	status, _ := doRequest(t, app, fiber.MethodPost, Path+"/2/activate", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := doRequest(t, app, fiber.MethodPost, Path+"/2/activate", nil, testAPIKey)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"success": true}`, string(body))

	// exactly one active theme after the swap
	var count int64
	require.NoError(t, db.Model(&models.Theme{}).Where("is_active = ?", true).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var active models.Theme
	require.NoError(t, db.Where("is_active = ?", true).First(&active).Error)
	assert.Equal(t, "midnight", active.Slug)

	status, _ = doRequest(t, app, fiber.MethodPost, Path+"/999/activate", nil, testAPIKey)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDelete(t *testing.T) {
	app, db := setupTestApp(t)
	seedThemes(t, db)

	// the active theme cannot be deleted
	status, _ := doRequest(t, app, fiber.MethodDelete, Path+"/1", nil, testAPIKey)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body := doRequest(t, app, fiber.MethodDelete, Path+"/2", nil, testAPIKey)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"deleted": 2}`, string(body))

	var count int64
	require.NoError(t, db.Model(&models.Theme{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

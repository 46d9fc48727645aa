package pages

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
	require.NoError(t, db.AutoMigrate(&models.Page{}))

	cfg := &config.Config{}
	cfg.Webserver.APIKey = testAPIKey

	app := fiber.New()
	svc := Service{}
	require.NoError(t, svc.Init(app, cfg, db))

	return app, db
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

func TestCreateAndList(t *testing.T) {
	app, _ := setupTestApp(t)

	status, _ := doRequest(t, app, fiber.MethodPost, Path,
		fiber.Map{"title": "About", "content": "About this site."}, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := doRequest(t, app, fiber.MethodPost, Path,
		fiber.Map{"title": "About", "content": "About this site."}, testAPIKey)
	require.Equal(t, fiber.StatusCreated, status)

	var created models.Page
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "about", created.Slug)
	assert.Equal(t, models.StatusPublished, created.Status)

	status, body = doRequest(t, app, fiber.MethodGet, Path, nil, "")
	require.Equal(t, fiber.StatusOK, status)

	var pages []models.Page
	require.NoError(t, json.Unmarshal(body, &pages))
	assert.Len(t, pages, 1)
}

func TestCreateWithoutTitle(t *testing.T) {
	app, _ := setupTestApp(t)

	status, body := doRequest(t, app, fiber.MethodPost, Path,
		fiber.Map{"content": "body"}, testAPIKey)
	require.Equal(t, fiber.StatusBadRequest, status)

	var errBody map[string]string
	require.NoError(t, json.Unmarshal(body, &errBody))
	assert.Contains(t, errBody["error"], "title")
}

func TestCreateWithUnknownStatus(t *testing.T) {
	app, db := setupTestApp(t)

	status, body := doRequest(t, app, fiber.MethodPost, Path,
		fiber.Map{"title": "Bad", "content": "body", "status": "bogus"}, testAPIKey)
	require.Equal(t, fiber.StatusBadRequest, status)

	var errBody map[string]string
	require.NoError(t, json.Unmarshal(body, &errBody))
	assert.Contains(t, errBody["error"], "status")

	var count int64
	require.NoError(t, db.Model(&models.Page{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdate(t *testing.T) {
	app, db := setupTestApp(t)

	require.NoError(t, db.Create(&models.Page{
		Title: "About", Slug: "about", Content: "old", Status: models.StatusPublished,
	}).Error)

	status, body := doRequest(t, app, fiber.MethodPut, Path+"/1",
		fiber.Map{"content": "new"}, testAPIKey)
	require.Equal(t, fiber.StatusOK, status)

	var updated models.Page
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "new", updated.Content)
	// unspecified fields are unchanged
	assert.Equal(t, "About", updated.Title)

	status, _ = doRequest(t, app, fiber.MethodPut, Path+"/99",
		fiber.Map{"content": "new"}, testAPIKey)
	assert.Equal(t, fiber.StatusNotFound, status)

	// an unknown status is rejected and nothing is stored
	status, _ = doRequest(t, app, fiber.MethodPut, Path+"/1",
		fiber.Map{"status": "bogus"}, testAPIKey)
	assert.Equal(t, fiber.StatusBadRequest, status)

	var page models.Page
	require.NoError(t, db.First(&page, 1).Error)
	assert.Equal(t, models.StatusPublished, page.Status)
}

func TestDelete(t *testing.T) {
	app, db := setupTestApp(t)

	require.NoError(t, db.Create(&models.Page{
		Title: "About", Slug: "about", Content: "body", Status: models.StatusPublished,
	}).Error)

	status, _ := doRequest(t, app, fiber.MethodDelete, Path+"/1", nil, testAPIKey)
	require.Equal(t, fiber.StatusOK, status)

	var count int64
	require.NoError(t, db.Model(&models.Page{}).Count(&count).Error)
	assert.Zero(t, count)

	status, _ = doRequest(t, app, fiber.MethodDelete, Path+"/1", nil, testAPIKey)
	assert.Equal(t, fiber.StatusNotFound, status)
}

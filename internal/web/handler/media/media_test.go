package media

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/config"
	"github.com/quillpress/quillpress/internal/storage"
)

const testAPIKey = "test-api-key"

type fakeObject struct {
	data        []byte
	contentType string
}

// fakeStore is an in-memory ObjectStore.
type fakeStore struct {
	objects map[string]fakeObject
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string]fakeObject)}
}

func (f *fakeStore) Put(_ context.Context, key string, data []byte, contentType string) (string, error) {
	f.objects[key] = fakeObject{data: data, contentType: contentType}
	return "http://objects.local/test/" + key, nil
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, string, error) {
	obj, ok := f.objects[key]
	if !ok {
		return nil, "", storage.ErrObjectNotFound
	}

	return obj.data, obj.contentType, nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func setupTestApp(t *testing.T) (*fiber.App, *fakeStore) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Webserver.APIKey = testAPIKey

	store := newFakeStore()

	app := fiber.New()
	svc := Service{}
	require.NoError(t, svc.Init(app, cfg, store))

	return app, store
}

func TestPut(t *testing.T) {
	app, store := setupTestApp(t)

	req := httptest.NewRequest(fiber.MethodPut,
		"http://example.com/media/uploads/123-photo.jpg", bytes.NewReader([]byte("image bytes")))
	req.Header.Set(fiber.HeaderContentType, "image/jpeg")
	req.Header.Set(auth.HeaderAPIKey, testAPIKey)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	obj, ok := store.objects["uploads/123-photo.jpg"]
	require.True(t, ok)
	assert.Equal(t, []byte("image bytes"), obj.data)
	assert.Equal(t, "image/jpeg", obj.contentType)
}

func TestPutRequiresAPIKey(t *testing.T) {
	app, store := setupTestApp(t)

	req := httptest.NewRequest(fiber.MethodPut,
		"http://example.com/media/uploads/123-photo.jpg", bytes.NewReader([]byte("image bytes")))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, store.objects)
}

func TestGet(t *testing.T) {
	app, store := setupTestApp(t)
	store.objects["uploads/123-photo.jpg"] = fakeObject{
		data:        []byte("image bytes"),
		contentType: "image/jpeg",
	}

	// reads are public
	req := httptest.NewRequest(fiber.MethodGet,
		"http://example.com/media/uploads/123-photo.jpg", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get(fiber.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), body)
}

func TestGetMissingObject(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet,
		"http://example.com/media/uploads/no-such-key.png", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

package page

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Page{})
	require.NoError(t, err)

	return db
}

func seedPages(t *testing.T, db *gorm.DB) {
	t.Helper()

	pages := []models.Page{
		{Title: "About", Slug: "about", Content: "about body", Status: models.StatusPublished},
		{Title: "Contact", Slug: "contact", Content: "contact body", Status: models.StatusPublished},
	}
	for i := range pages {
		require.NoError(t, db.Create(&pages[i]).Error)
	}
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)
	seedPages(t, db)

	got, err := Get(db, 1)
	require.NoError(t, err)
	assert.Equal(t, "About", got.Title)

	_, err = Get(db, 999)
	assert.ErrorIs(t, err, ErrPageNotFound)

	_, err = Get(nil, 1)
	assert.ErrorIs(t, err, ErrDBNil)
}

func TestGetBySlug(t *testing.T) {
	db := setupTestDB(t)
	seedPages(t, db)

	got, err := GetBySlug(db, "contact")
	require.NoError(t, err)
	assert.Equal(t, "Contact", got.Title)

	_, err = GetBySlug(db, "missing")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestList(t *testing.T) {
	db := setupTestDB(t)
	seedPages(t, db)

	pages, err := List(db)
	require.NoError(t, err)
	assert.Len(t, pages, 2)
}

func TestListPublished(t *testing.T) {
	db := setupTestDB(t)
	seedPages(t, db)

	require.NoError(t, db.Create(&models.Page{
		Title: "Hidden", Slug: "hidden", Content: "body", Status: models.StatusDraft,
	}).Error)

	pages, err := ListPublished(db)
	require.NoError(t, err)
	assert.Len(t, pages, 2)

	count, err := CountPublished(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		in       CreateInput
		wantErr  error
		wantSlug string
	}{
		{
			name:     "derived slug and default status",
			in:       CreateInput{Title: "Privacy Policy", Content: "body"},
			wantSlug: "privacy-policy",
		},
		{
			name:    "empty title",
			in:      CreateInput{Content: "body"},
			wantErr: ErrTitleEmpty,
		},
		{
			name:    "empty content",
			in:      CreateInput{Title: "Empty"},
			wantErr: ErrContentEmpty,
		},
		{
			name:    "unknown status",
			in:      CreateInput{Title: "Bad Status", Content: "body", Status: "pending"},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)

			got, err := Create(db, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSlug, got.Slug)
			assert.Equal(t, models.StatusPublished, got.Status)
		})
	}
}

func TestCreateDuplicateSlug(t *testing.T) {
	db := setupTestDB(t)
	seedPages(t, db)

	_, err := Create(db, CreateInput{Title: "About", Content: "body"})
	assert.ErrorIs(t, err, ErrSlugExists)
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)
	seedPages(t, db)

	newContent := "updated body"
	got, err := Update(db, 1, UpdateInput{Content: &newContent})
	require.NoError(t, err)
	assert.Equal(t, newContent, got.Content)
	assert.Equal(t, "About", got.Title)

	_, err = Update(db, 999, UpdateInput{Content: &newContent})
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestUpdateInvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	seedPages(t, db)

	bad := models.Status("bogus")
	_, err := Update(db, 1, UpdateInput{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// the stored row keeps its valid status
	var page models.Page
	require.NoError(t, db.First(&page, 1).Error)
	assert.Equal(t, models.StatusPublished, page.Status)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	seedPages(t, db)

	require.NoError(t, Delete(db, 2))
	assert.ErrorIs(t, Delete(db, 2), ErrPageNotFound)
}

func TestCount(t *testing.T) {
	db := setupTestDB(t)
	seedPages(t, db)

	count, err := Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

package post

import (
	"testing"
	"time"

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

	err = db.AutoMigrate(&models.Post{})
	require.NoError(t, err)

	return db
}

func seedPosts(t *testing.T, db *gorm.DB) {
	t.Helper()

	now := time.Now()
	posts := []models.Post{
		{Title: "First Post", Slug: "first-post", Content: "first body", Status: models.StatusPublished, PublishedAt: &now},
		{Title: "Second Post", Slug: "second-post", Content: "second body", Status: models.StatusDraft},
	}
	for i := range posts {
		require.NoError(t, db.Create(&posts[i]).Error)
	}
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)
	seedPosts(t, db)

	tests := []struct {
		name    string
		db      *gorm.DB
		id      uint64
		wantErr error
	}{
		{name: "existing post", db: db, id: 1},
		{name: "missing post", db: db, id: 999, wantErr: ErrPostNotFound},
		{name: "nil db", db: nil, id: 1, wantErr: ErrDBNil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Get(tt.db, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.id, got.ID)
		})
	}
}

func TestGetBySlug(t *testing.T) {
	db := setupTestDB(t)
	seedPosts(t, db)

	got, err := GetBySlug(db, "first-post")
	require.NoError(t, err)
	assert.Equal(t, "First Post", got.Title)

	_, err = GetBySlug(db, "no-such-post")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestListAndListPublished(t *testing.T) {
	db := setupTestDB(t)
	seedPosts(t, db)

	all, err := List(db)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	published, err := ListPublished(db)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "first-post", published[0].Slug)
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		in       CreateInput
		wantErr  error
		wantSlug string
	}{
		{
			name:     "draft with derived slug",
			in:       CreateInput{Title: "Hello, World!", Content: "body", AuthorID: 1},
			wantSlug: "hello-world",
		},
		{
			name:     "explicit slug wins",
			in:       CreateInput{Title: "Another Title", Slug: "custom-slug", Content: "body"},
			wantSlug: "custom-slug",
		},
		{
			name:    "empty title",
			in:      CreateInput{Content: "body"},
			wantErr: ErrTitleEmpty,
		},
		{
			name:    "empty content",
			in:      CreateInput{Title: "No Body"},
			wantErr: ErrContentEmpty,
		},
		{
			name:    "unusable title",
			in:      CreateInput{Title: "!!!", Content: "body"},
			wantErr: ErrSlugEmpty,
		},
		{
			name:    "invalid status",
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
			assert.Equal(t, models.StatusDraft, got.Status)
			assert.Nil(t, got.PublishedAt)
		})
	}
}

func TestCreatePublishedStampsPublishedAt(t *testing.T) {
	db := setupTestDB(t)

	got, err := Create(db, CreateInput{
		Title:   "Live Post",
		Content: "body",
		Status:  models.StatusPublished,
	})
	require.NoError(t, err)
	require.NotNil(t, got.PublishedAt)
	assert.WithinDuration(t, time.Now(), *got.PublishedAt, time.Minute)
}

func TestCreateDuplicateSlug(t *testing.T) {
	db := setupTestDB(t)
	seedPosts(t, db)

	_, err := Create(db, CreateInput{Title: "First Post", Content: "body"})
	assert.ErrorIs(t, err, ErrSlugExists)
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)
	seedPosts(t, db)

	newTitle := "Second Post, Revised"
	got, err := Update(db, 2, UpdateInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, got.Title)
	// slug stays stable on title change
	assert.Equal(t, "second-post", got.Slug)

	_, err = Update(db, 999, UpdateInput{Title: &newTitle})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestUpdatePublishStampsOnce(t *testing.T) {
	db := setupTestDB(t)
	seedPosts(t, db)

	published := models.StatusPublished
	got, err := Update(db, 2, UpdateInput{Status: &published})
	require.NoError(t, err)
	require.NotNil(t, got.PublishedAt)
	firstPublish := *got.PublishedAt

	// revert to draft and publish again, the original timestamp is kept
	draft := models.StatusDraft
	got, err = Update(db, 2, UpdateInput{Status: &draft})
	require.NoError(t, err)
	require.NotNil(t, got.PublishedAt)

	got, err = Update(db, 2, UpdateInput{Status: &published})
	require.NoError(t, err)
	assert.Equal(t, firstPublish.Unix(), got.PublishedAt.Unix())
}

func TestUpdateSlugConflict(t *testing.T) {
	db := setupTestDB(t)
	seedPosts(t, db)

	taken := "first-post"
	_, err := Update(db, 2, UpdateInput{Slug: &taken})
	assert.ErrorIs(t, err, ErrSlugExists)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	seedPosts(t, db)

	err := Delete(db, 1)
	require.NoError(t, err)

	_, err = Get(db, 1)
	assert.ErrorIs(t, err, ErrPostNotFound)

	err = Delete(db, 1)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCount(t *testing.T) {
	db := setupTestDB(t)
	seedPosts(t, db)

	total, err := Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	published, err := CountPublished(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), published)
}

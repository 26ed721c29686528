package helpers

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/memecataloger/catalog-api/entity"
	"github.com/memecataloger/catalog-api/infra"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an in-memory sqlite database with the full schema.
// Each call gets its own database, so tests stay independent.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory database")
	require.NoError(t, infra.AutoMigrate(db), "failed to migrate schema")

	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()

	user := &entity.User{
		ID:       uuid.New(),
		Username: username,
	}
	require.NoError(t, db.Create(user).Error, "failed to seed user %s", username)
	return user
}

func CreateTag(t *testing.T, db *gorm.DB, owner *entity.User, name string) *entity.Tag {
	t.Helper()

	tag := &entity.Tag{
		ID:      uuid.New(),
		Name:    name,
		OwnerID: owner.ID,
	}
	require.NoError(t, db.Create(tag).Error, "failed to seed tag %s", name)
	return tag
}

// CreateImage seeds an image row and writes its blob into the media
// directory so the retrieval endpoint has real bytes to stream.
func CreateImage(t *testing.T, db *gorm.DB, mediaRoot string, owner *entity.User, source, description string, blob []byte) *entity.Image {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(mediaRoot, source), blob, 0644),
		"failed to write blob %s", source)

	metadata, err := json.Marshal(map[string]string{"original_name": source})
	require.NoError(t, err)

	image := &entity.Image{
		ID:          uuid.New(),
		Source:      source,
		OwnerID:     owner.ID,
		Description: description,
		ContentType: "image/png",
		Size:        int64(len(blob)),
		Metadata:    datatypes.JSON(metadata),
	}
	require.NoError(t, db.Create(image).Error, "failed to seed image %s", source)
	return image
}

func CreateImageTag(t *testing.T, db *gorm.DB, image *entity.Image, tag *entity.Tag) *entity.ImageTag {
	t.Helper()

	imageTag := &entity.ImageTag{
		ID:      uuid.New(),
		ImageID: image.ID,
		TagID:   tag.ID,
	}
	require.NoError(t, db.Create(imageTag).Error, "failed to seed image tag")
	return imageTag
}

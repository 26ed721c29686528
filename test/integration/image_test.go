package integration

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/memecataloger/catalog-api/entity"
	"github.com/memecataloger/catalog-api/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const imageUsageBody = "Requires POST request with data:" +
	"{" +
	"  user-id: uuid of resource owner," +
	"  image: file to store," +
	"  description: optional string describing the image " +
	"}"

func TestListImages(t *testing.T) {
	ts := helpers.NewTestServer(t)
	user := helpers.CreateUser(t, ts.DB, "test_user_1")
	image := helpers.CreateImage(t, ts.DB, ts.MediaRoot, user, "test.png", "this is the test image description", []byte("png-bytes"))

	res, body := ts.SendRequest(t, http.MethodGet, "/api/image/", "", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var payload []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	require.Len(t, payload, 1)
	assert.Equal(t, map[string]interface{}{
		"id":          image.ID.String(),
		"source":      helpers.MediaBaseURL + "/test.png",
		"owner":       user.ID.String(),
		"description": "this is the test image description",
	}, payload[0])
}

func TestGetImageStreamsBlob(t *testing.T) {
	ts := helpers.NewTestServer(t)
	user := helpers.CreateUser(t, ts.DB, "test_user_1")
	blob := []byte("these are the image bytes")
	image := helpers.CreateImage(t, ts.DB, ts.MediaRoot, user, "test.png", "", blob)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/image/"+image.ID.String(), "", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, string(blob), body)
	assert.Equal(t, "image/png", res.Header.Get("Content-Type"))
}

func TestGetImageRejectsUnknownID(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/image/31b4354d-9dcb-40bc-8230-8b83bd8ff863", "", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/image/not-a-uuid", "", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetImageRejectsMissingBlob(t *testing.T) {
	ts := helpers.NewTestServer(t)
	user := helpers.CreateUser(t, ts.DB, "test_user_1")
	image := helpers.CreateImage(t, ts.DB, ts.MediaRoot, user, "test.png", "", []byte("png-bytes"))

	require.NoError(t, os.Remove(filepath.Join(ts.MediaRoot, "test.png")))

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/image/"+image.ID.String(), "", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestExistingImageRejectsDisallowedMethods(t *testing.T) {
	ts := helpers.NewTestServer(t)
	user := helpers.CreateUser(t, ts.DB, "test_user_1")
	image := helpers.CreateImage(t, ts.DB, ts.MediaRoot, user, "test.png", "", []byte("png-bytes"))

	target := "/api/image/" + image.ID.String()
	expected := "This resource requires GET or DELETE method."

	res, body := ts.SendRequest(t, http.MethodPut, target, "application/json", `{"description": "nope"}`)
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	assert.Equal(t, expected, body)

	res, body = ts.SendRequest(t, http.MethodPatch, target, "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	assert.Equal(t, expected, body)
}

func TestNewImageRejectsDisallowedMethods(t *testing.T) {
	ts := helpers.NewTestServer(t)

	expected := "This resource requires GET or POST method."
	res, body := ts.SendRequest(t, http.MethodDelete, "/api/image/new", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	assert.Equal(t, expected, body)

	res, body = ts.SendRequest(t, http.MethodPatch, "/api/image/new", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	assert.Equal(t, expected, body)
}

func TestNewImageUsage(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/image/new", "", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, imageUsageBody, body)
}

func TestUploadImage(t *testing.T) {
	ts := helpers.NewTestServer(t)
	user := helpers.CreateUser(t, ts.DB, "test_user_1")
	blob := []byte("uploaded image bytes")

	res, body := ts.SendMultipart(t, "/api/image/new", "image", "meme.png", blob, map[string]string{
		"user-id":     user.ID.String(),
		"description": "a fresh upload",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))

	var stored entity.Image
	require.NoError(t, ts.DB.First(&stored).Error)
	assert.Equal(t, stored.ID.String(), payload["image-id"])
	assert.Equal(t, helpers.MediaBaseURL+"/"+stored.Source, payload["image-source"])
	assert.Equal(t, user.ID, stored.OwnerID)
	assert.Equal(t, "a fresh upload", stored.Description)
	assert.Equal(t, int64(len(blob)), stored.Size)
	assert.True(t, strings.HasSuffix(stored.Source, ".png"))

	// the blob landed in the media directory under the generated name
	written, err := os.ReadFile(filepath.Join(ts.MediaRoot, stored.Source))
	require.NoError(t, err)
	assert.Equal(t, blob, written)
}

func TestUploadImageRejectsMissingFile(t *testing.T) {
	ts := helpers.NewTestServer(t)
	user := helpers.CreateUser(t, ts.DB, "test_user_1")

	res, body := ts.SendMultipart(t, "/api/image/new", "", "", nil, map[string]string{
		"user-id": user.ID.String(),
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, imageUsageBody, body)

	var count int64
	require.NoError(t, ts.DB.Model(&entity.Image{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUploadImageRejectsUnknownOwner(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendMultipart(t, "/api/image/new", "image", "meme.png", []byte("bytes"), map[string]string{
		"user-id": "31b4354d-9dcb-40bc-8230-8b83bd8ff863",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, imageUsageBody, body)
}

func TestDeleteImage(t *testing.T) {
	ts := helpers.NewTestServer(t)
	user := helpers.CreateUser(t, ts.DB, "test_user_1")
	image := helpers.CreateImage(t, ts.DB, ts.MediaRoot, user, "test.png", "", []byte("png-bytes"))
	tag := helpers.CreateTag(t, ts.DB, user, "test_tag")
	helpers.CreateImageTag(t, ts.DB, image, tag)

	res, body := ts.SendRequest(t, http.MethodDelete, "/api/image/"+image.ID.String(), "", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, map[string]interface{}{"image-id": image.ID.String()}, payload)

	// row and its associations are gone
	err := ts.DB.Where("id = ?", image.ID).First(&entity.Image{}).Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	var count int64
	require.NoError(t, ts.DB.Model(&entity.ImageTag{}).Where("image_id = ?", image.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// without a broker the blob is removed inline
	_, err = os.Stat(filepath.Join(ts.MediaRoot, "test.png"))
	assert.True(t, os.IsNotExist(err))

	// the tag itself survives
	require.NoError(t, ts.DB.Where("id = ?", tag.ID).First(&entity.Tag{}).Error)
}

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/memecataloger/catalog-api/entity"
	"github.com/memecataloger/catalog-api/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	ts := helpers.NewTestServer(t)
	user := helpers.CreateUser(t, ts.DB, "test_user_1")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/user/", "", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var payload []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	require.Len(t, payload, 1)
	assert.Equal(t, user.ID.String(), payload[0]["id"])
	assert.Equal(t, "test_user_1", payload[0]["username"])

	// ids are real v4 UUIDs, never sequential integers
	parsed, err := uuid.Parse(payload[0]["id"].(string))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
	assert.NotEqual(t, "1", payload[0]["id"])
}

func TestCreateUser(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendForm(t, "/api/user/", url.Values{"username": {"fresh_user"}})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, "User created successfully.", payload["message"])

	var stored entity.User
	require.NoError(t, ts.DB.Where("username = ?", "fresh_user").First(&stored).Error)
	assert.Equal(t, uuid.Version(4), stored.ID.Version())
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, _ := ts.SendForm(t, "/api/user/", url.Values{"username": {"taken_name"}})
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendForm(t, "/api/user/", url.Values{"username": {"taken_name"}})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	var count int64
	require.NoError(t, ts.DB.Model(&entity.User{}).Where("username = ?", "taken_name").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateUserMissingUsername(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, _ := ts.SendForm(t, "/api/user/", url.Values{"other-field": {"whatever"}})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestUserViewPlaceholder(t *testing.T) {
	ts := helpers.NewTestServer(t)
	user := helpers.CreateUser(t, ts.DB, "test_user_1")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/user/"+user.ID.String(), "", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	expected := fmt.Sprintf(
		"<div>You landed on the user view!</div>"+
			"<div>The user id is: {'user_id': UUID('%s')}</div>"+
			"<div>This page hasn't really been implemented for anything yet.</div>",
		user.ID,
	)
	assert.Equal(t, expected, body)
}

func TestUserViewRejectsMalformedID(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/user/not-a-uuid", "", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

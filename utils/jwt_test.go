package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/memecataloger/catalog-api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnvConfig() *config.EnvConfig {
	cfg := &config.EnvConfig{}
	cfg.JWT.SecretKey = "test-secret"
	return cfg
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newTestContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c
}

func TestExtractTokenFromBearerHeader(t *testing.T) {
	c := newTestContext(t)
	c.Request.Header.Set("Authorization", "Bearer some-token")

	assert.Equal(t, "some-token", ExtractToken(c))
}

func TestExtractTokenFromCookie(t *testing.T) {
	c := newTestContext(t)
	c.Request.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})

	assert.Equal(t, "cookie-token", ExtractToken(c))
}

func TestExtractTokenMissing(t *testing.T) {
	c := newTestContext(t)

	assert.Equal(t, "", ExtractToken(c))
}

func TestParseTokenRoundTrip(t *testing.T) {
	cfg := testEnvConfig()
	userID := uuid.New().String()
	signed := signToken(t, cfg.JWT.SecretKey, jwt.MapClaims{"user_id": userID})

	token, err := ParseToken(signed, cfg)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, userID, claims["user_id"])
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	cfg := testEnvConfig()
	signed := signToken(t, "other-secret", jwt.MapClaims{"user_id": uuid.New().String()})

	_, err := ParseToken(signed, cfg)
	assert.Error(t, err)
}

func TestInjectClaimsToContext(t *testing.T) {
	c := newTestContext(t)
	userID := uuid.New()

	require.NoError(t, InjectClaimsToContext(c, jwt.MapClaims{"user_id": userID.String()}))

	got, ok := GetUserIDFromContext(c)
	require.True(t, ok)
	assert.Equal(t, userID, got)
}

func TestInjectClaimsRejectsMalformedUserID(t *testing.T) {
	c := newTestContext(t)

	assert.Error(t, InjectClaimsToContext(c, jwt.MapClaims{"user_id": "not-a-uuid"}))
	assert.Error(t, InjectClaimsToContext(c, jwt.MapClaims{"user_id": 42}))

	_, ok := GetUserIDFromContext(c)
	assert.False(t, ok)
}

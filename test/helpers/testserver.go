package helpers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/memecataloger/catalog-api/config"
	"github.com/memecataloger/catalog-api/http/controller"
	routes "github.com/memecataloger/catalog-api/http/route"
	"github.com/memecataloger/catalog-api/infra"
	"github.com/memecataloger/catalog-api/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MediaBaseURL is the base URL rendered into image listings under test.
const MediaBaseURL = "http://testserver/media"

type TestServer struct {
	Server    *httptest.Server
	DB        *gorm.DB
	MediaRoot string
}

// NewTestServer wires the real router over an in-memory database and a
// throwaway media directory. Redis and RabbitMQ stay nil, which the
// controllers treat as cache-off and inline blob cleanup.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := NewTestDB(t)
	mediaRoot := t.TempDir()

	cfg := config.NewConfig()
	cfg.EnvConfig.Media.Provider = "local"
	cfg.EnvConfig.Media.Root = mediaRoot
	cfg.EnvConfig.Media.BaseURL = MediaBaseURL
	cfg.EnvConfig.Media.CacheTTL = 0
	cfg.EnvConfig.Telemetry.OTLPEndpoint = ""

	storage, err := infra.NewLocalStorage(mediaRoot, MediaBaseURL)
	require.NoError(t, err, "failed to set up media storage")

	inf := &infra.Infra{
		Postgres: &infra.PostgresClient{DB: db},
		Logger:   infra.InitLoggerClient(cfg.EnvConfig),
		Storage:  storage,
	}
	repo := repository.InitRepository(inf)
	ctrl := controller.NewController(cfg, inf, repo)

	server := httptest.NewServer(routes.SetupRouter(ctrl))
	t.Cleanup(server.Close)

	return &TestServer{
		Server:    server,
		DB:        db,
		MediaRoot: mediaRoot,
	}
}

// SendRequest sends a request with an optional raw body. The content
// type matters for PUT bodies, which the handlers parse as JSON.
func (ts *TestServer) SendRequest(t *testing.T, method, path, contentType, body string) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err, "failed to build request")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return ts.do(t, req)
}

// SendForm posts url-encoded form fields, the shape the create
// endpoints expect.
func (ts *TestServer) SendForm(t *testing.T, path string, fields url.Values) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, strings.NewReader(fields.Encode()))
	require.NoError(t, err, "failed to build form request")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return ts.do(t, req)
}

// SendMultipart posts a multipart form with one file part plus extra
// fields, the shape of the image upload endpoint.
func (ts *TestServer) SendMultipart(t *testing.T, path, fileField, fileName string, fileBody []byte, fields map[string]string) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileBody)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, &buf)
	require.NoError(t, err, "failed to build multipart request")
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return ts.do(t, req)
}

func (ts *TestServer) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "request failed")

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err, "failed to read response body")
	defer res.Body.Close()

	return res, string(resBody)
}

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashtra/rashtra-api/api"
	"github.com/rashtra/rashtra-api/api/handlers"
	"github.com/rashtra/rashtra-api/config"
	"github.com/rashtra/rashtra-api/databases"
	"github.com/rashtra/rashtra-api/detection"
	"github.com/rashtra/rashtra-api/models"
	"github.com/rashtra/rashtra-api/storage"
)

const adminEmail = "admin@city.gov"

var jpeg = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00road photo")

type fixedDetector struct {
	result models.DetectionResult
	err    error
	calls  int
}

func (f *fixedDetector) Detect(context.Context, models.Image, float64, float64) (models.DetectionResult, error) {
	f.calls++
	return f.result, f.err
}

type testApp struct {
	*handlers.App
	pothole *fixedDetector
	damage  *fixedDetector
	user    string
	admin   string
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	pothole := &fixedDetector{}
	damage := &fixedDetector{}
	a := &handlers.App{
		Config:     config.Config{StoreBackend: config.StoreMemory, RequestTimeout: 5 * time.Second},
		Complaints: databases.NewMemoryComplaintDatabase(),
		AdminLogs:  databases.NewMemoryAdminLogDatabase(),
		Images:     storage.NewMemoryStore(""),
		Pothole:    pothole,
		Damage:     damage,
		Auth:       api.NewAuthenticator("test-secret", []string{adminEmail}),
	}
	a.Router = a.New()

	user, err := a.Auth.IssueToken("citizen-1", "citizen@mail.com", time.Hour)
	require.NoError(t, err)
	admin, err := a.Auth.IssueToken("admin-1", adminEmail, time.Hour)
	require.NoError(t, err)
	return testApp{App: a, pothole: pothole, damage: damage, user: user, admin: admin}
}

func (ta testApp) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	ta.Router.ServeHTTP(rr, req)
	return rr
}

func reportRequest(t *testing.T, image []byte, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if image != nil {
		part, err := w.CreateFormFile("file", "road.jpg")
		require.NoError(t, err)
		_, _ = part.Write(image)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func (ta testApp) submit(t *testing.T, fields map[string]string) models.Complaint {
	t.Helper()
	rr := ta.do(reportRequest(t, jpeg, fields), ta.user)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var c models.Complaint
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &c))
	return c
}

func TestHealthCheck(t *testing.T) {
	ta := newTestApp(t)

	rr := ta.do(httptest.NewRequest(http.MethodGet, "/health", nil), "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"alive":true,"store":"memory"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(api.RequestIDHeader))
}

func TestRoutesRequireAuth(t *testing.T) {
	ta := newTestApp(t)

	rr := ta.do(httptest.NewRequest(http.MethodGet, "/api/v1/reports/mine", nil), "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ta.do(httptest.NewRequest(http.MethodGet, "/api/v1/complaints", nil), ta.user)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ta.do(httptest.NewRequest(http.MethodGet, "/api/v1/complaints", nil), ta.admin)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestInitializeMemoryBackend(t *testing.T) {
	a := &handlers.App{Config: config.Config{
		StoreBackend: config.StoreMemory,
		JWTSecret:    "secret",
		DetectionURL: "http://127.0.0.1:1/detect",
	}}

	require.NoError(t, a.Initialize())
	assert.NotNil(t, a.Router)
	assert.IsType(t, &storage.MemoryStore{}, a.Images)
	assert.IsType(t, &detection.FallbackDetector{}, a.Pothole)
	assert.NoError(t, a.Close(context.Background()))
}

func TestInitializeRejectsBadConfig(t *testing.T) {
	a := &handlers.App{Config: config.Config{StoreBackend: "cassandra", JWTSecret: "secret"}}
	assert.Error(t, a.Initialize())

	a = &handlers.App{Config: config.Config{StoreBackend: config.StoreMemory}}
	assert.EqualError(t, a.Initialize(), "JWT_SECRET is not set")
}

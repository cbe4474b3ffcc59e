package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacktics/underbed/internal/config"
)

func testServer() *Server {
	cfg := config.Default()
	cfg.CORSOrigins = []string{"*"}
	return NewServer(cfg, nil)
}

func doRequest(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	srv := testServer()
	rec := doRequest(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "StackTics", body["app"])
}

func TestHandleRoot(t *testing.T) {
	srv := testServer()
	rec := doRequest(t, srv, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "StackTics", body["app"])
	assert.NotEmpty(t, body["version"])
}

func validOptimizeRequest() OptimizeRequest {
	return OptimizeRequest{
		Bed: ContainerDTO{Length: 100, Width: 80, Height: 30},
		Boxes: []BoxDTO{
			{ID: "a", Length: 20, Width: 20, Height: 10, Weight: 5, Priority: "must_fit"},
			{ID: "b", Length: 20, Width: 20, Height: 10, Weight: 3, Priority: "optional"},
		},
	}
}

func TestHandleOptimize_Success(t *testing.T) {
	srv := testServer()
	rec := doRequest(t, srv, http.MethodPost, "/optimize", validOptimizeRequest())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp OptimizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, 2, resp.Metrics.TotalBoxes)
	assert.NotEmpty(t, resp.Placements)
}

func TestHandleOptimize_ValidationFailureReturns422(t *testing.T) {
	srv := testServer()
	req := validOptimizeRequest()
	req.Bed.Length = 0 // violates required,gt=0
	rec := doRequest(t, srv, http.MethodPost, "/optimize", req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Details)
}

func TestHandleOptimize_DomainFailureReturns400(t *testing.T) {
	srv := testServer()
	req := validOptimizeRequest()
	req.Boxes = append(req.Boxes, BoxDTO{ID: "a", Length: 1, Width: 1, Height: 1})
	rec := doRequest(t, srv, http.MethodPost, "/optimize", req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "domain_error", resp.Error)
}

func TestHandleOptimize_DomainFailureCornerRadius(t *testing.T) {
	srv := testServer()
	req := validOptimizeRequest()
	req.Bed.CornerRadius = 1000
	rec := doRequest(t, srv, http.MethodPost, "/optimize", req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleOptimize_OmittedRotationFlagsDefaultToRotatable(t *testing.T) {
	srv := testServer()
	req := OptimizeRequest{
		Bed: ContainerDTO{Length: 100, Width: 80, Height: 30},
		Boxes: []BoxDTO{
			// Only fits if rotated about Z (length/width swapped).
			{ID: "a", Length: 70, Width: 90, Height: 10, Priority: "must_fit"},
		},
	}
	rec := doRequest(t, srv, http.MethodPost, "/optimize", req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp OptimizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.UnplacedBoxIDs, "a box rescuable by rotation should be placed when rotate flags are omitted")
	assert.Len(t, resp.Placements, 1)
}

func TestHandleOptimize_ExplicitRotationFalseIsHonored(t *testing.T) {
	srv := testServer()
	no := false
	req := OptimizeRequest{
		Bed: ContainerDTO{Length: 100, Width: 80, Height: 30},
		Boxes: []BoxDTO{
			// Fits only via the Z rotation this request explicitly disables,
			// so it should fail domain validation rather than be placed.
			{ID: "a", Length: 70, Width: 90, Height: 10, Priority: "must_fit", RotateZ: &no},
		},
	}
	rec := doRequest(t, srv, http.MethodPost, "/optimize", req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRenderSVG_CachedPlan(t *testing.T) {
	srv := testServer()
	optimizeRec := doRequest(t, srv, http.MethodPost, "/optimize", validOptimizeRequest())
	require.Equal(t, http.StatusOK, optimizeRec.Code)

	var resp OptimizeResponse
	require.NoError(t, json.Unmarshal(optimizeRec.Body.Bytes(), &resp))

	rec := doRequest(t, srv, http.MethodGet, "/optimize/render.svg?request="+resp.RequestID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")
}

func TestHandleRenderSVG_UnknownRequestReturns404(t *testing.T) {
	srv := testServer()
	rec := doRequest(t, srv, http.MethodGet, "/optimize/render.svg?request=does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleRenderSVG_MissingParameterReturns400(t *testing.T) {
	srv := testServer()
	rec := doRequest(t, srv, http.MethodGet, "/optimize/render.svg", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSMiddleware_SetsAllowOriginWhenWildcard(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_RestrictsToConfiguredOrigins(t *testing.T) {
	cfg := config.Default()
	cfg.CORSOrigins = []string{"https://allowed.example"}
	srv := NewServer(cfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://not-allowed.example")
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

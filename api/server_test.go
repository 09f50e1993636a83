package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coder26-cmd/anti-plagiarism/domain"
	"github.com/coder26-cmd/anti-plagiarism/service"
)

func newTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(service.NewComparisonService(nil, logger), logger)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Server"), "antiplag/"))
}

func TestCompareHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantScore  float64
		wantCode   string
	}{
		{
			name:       "renamed identifiers",
			body:       `{"source_a": "x = 1\ny = x + 2", "source_b": "a = 1\nb = a + 2"}`,
			wantStatus: http.StatusOK,
			wantScore:  1.0,
		},
		{
			name:       "both empty",
			body:       `{"source_a": "", "source_b": ""}`,
			wantStatus: http.StatusOK,
			wantScore:  1.0,
		},
		{
			name:       "parse error",
			body:       `{"source_a": "x = 1", "source_b": "def broken(:"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   domain.ErrCodeParseError,
		},
		{
			name:       "missing source",
			body:       `{"source_a": "x = 1"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   domain.ErrCodeInvalidInput,
		},
		{
			name:       "malformed json",
			body:       `{"source_a": `,
			wantStatus: http.StatusBadRequest,
			wantCode:   domain.ErrCodeInvalidInput,
		},
		{
			name:       "unknown field",
			body:       `{"source_a": "", "source_b": "", "mode": "fast"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   domain.ErrCodeInvalidInput,
		},
	}

	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/compare", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			if tt.wantStatus == http.StatusOK {
				var result domain.SourceComparison
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
				assert.Equal(t, tt.wantScore, result.Score)
				assert.Empty(t, result.CanonicalA)
				return
			}
			var errResp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.Equal(t, tt.wantCode, errResp.Code)
			assert.NotEmpty(t, errResp.Error)
		})
	}
}

func TestCompareHandler_IncludeCanonical(t *testing.T) {
	body := `{"source_a": "x = 1", "source_b": "y = 2", "include_canonical": true}`
	rec := do(t, newTestServer(), http.MethodPost, "/api/v1/compare", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.SourceComparison
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "n0 = 1", result.CanonicalA)
	assert.Equal(t, "n0 = 2", result.CanonicalB)
	assert.Equal(t, 1, result.Distance)
}

func TestCanonicalizeHandler(t *testing.T) {
	body := `{"source": "def f(v):\n    \"\"\"Doc.\"\"\"\n    return v + total\n"}`
	rec := do(t, newTestServer(), http.MethodPost, "/api/v1/canonicalize", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var form domain.CanonicalForm
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &form))
	assert.Equal(t, "def f(v):\n    return n0 + n1", form.Text)
	assert.Equal(t, 1, form.Docstrings)
	assert.Len(t, form.Identifiers, 2)
	assert.Empty(t, form.Tree)
}

func TestRequestTooLarge(t *testing.T) {
	s := newTestServer()
	s.SetMaxRequestBytes(16)

	body := `{"source_a": "` + strings.Repeat("x", 64) + `", "source_b": ""}`
	rec := do(t, s, http.MethodPost, "/api/v1/compare", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/compare", &bytes.Buffer{})
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

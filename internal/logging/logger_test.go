package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WithFieldsProductionJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, false).WithFields(map[string]any{"user_id": "u1"})

	logger.Info("details submitted", "stage", "dashboard")
	logger.Debug("dropped in production")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "details submitted", entry["msg"])
	assert.Equal(t, "u1", entry["user_id"])
	assert.Equal(t, "dashboard", entry["stage"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestLogger_DevelopmentIncludesDebug(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, true).Debug("visible")

	assert.Contains(t, buf.String(), "visible")
}

func TestNewFileLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")
	logger := NewFileLogger(false, FileOptions{Path: path})
	logger.Info("to file")

	assert.FileExists(t, path)
}

func TestRequestLogger_AttachesLoggerAndLogsStatus(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter(&buf, false)

	var fromCtx *Logger
	h := middleware.RequestID(RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetLoggerFromContext(r.Context())
		w.WriteHeader(http.StatusConflict)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/submit-details", nil))

	require.NotNil(t, fromCtx)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, buf.String(), `"status":409`)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"path":"/submit-details"`)
}

func TestGetLoggerFromContext_Fallback(t *testing.T) {
	assert.NotNil(t, GetLoggerFromContext(context.Background()))
}

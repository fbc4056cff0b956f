package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, "email already exists", CodeConflict, http.StatusConflict)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Error: "email already exists", Code: "CONFLICT"}, body)
}

func TestRespondInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondInternal(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error","code":"INTERNAL"}`, rec.Body.String())
}

func TestDecodeJSON_LimitsBodySize(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
	require.NoError(t, DecodeJSON(httptest.NewRecorder(), req, &dst))
	assert.Equal(t, "a", dst.Name)

	big := `{"name":"` + strings.Repeat("a", MaxJSONBodySize) + `"}`
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	err := DecodeJSON(httptest.NewRecorder(), req, &dst)

	var tooLarge *http.MaxBytesError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, int64(MaxJSONBodySize), tooLarge.Limit)
}

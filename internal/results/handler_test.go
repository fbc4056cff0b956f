package results

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/skill-assessment-api/internal/auth"
	"github.com/redmonkez12/skill-assessment-api/internal/httputil"
	"github.com/redmonkez12/skill-assessment-api/internal/progression"
	"github.com/redmonkez12/skill-assessment-api/internal/user"
)

func call(h http.HandlerFunc, method, body string, id uuid.UUID) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if id != uuid.Nil {
		req = req.WithContext(auth.WithUserID(req.Context(), id))
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandler_SubmitExam(t *testing.T) {
	store := user.NewMemoryStore()
	recorder, _ := newTestRecorder(store)
	h := NewHandler(recorder)
	u := seedUser(t, store, progression.StageIntermediateTest)

	rec := call(h.SubmitExam, http.MethodPost, `{"testName":"algebra","score":7,"totalQuestions":10,"answers":["a","c"]}`, u.ID)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp ResultResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "exam submitted", resp.Message)
	assert.Equal(t, progression.StagePendingReview, resp.Stage)
	assert.Equal(t, "pending-review", resp.Redirect)
	require.NotNil(t, resp.Result)
	assert.Equal(t, []string{"a", "c"}, resp.Result.Answers)
	assert.Contains(t, rec.Body.String(), `"date":"2024-05-01T10:00:01Z"`)

	rec = call(h.CompleteReview, http.MethodPost, "", u.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"stage":"dashboard","redirect":"dashboard"}`, rec.Body.String())

	rec = call(h.TestHistory, http.MethodGet, "", u.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	var history []user.TestResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "algebra", history[0].TestName)
}

func TestHandler_SaveScore(t *testing.T) {
	store := user.NewMemoryStore()
	recorder, _ := newTestRecorder(store)
	h := NewHandler(recorder)
	u := seedUser(t, store, progression.StageBeginnerTest)

	rec := call(h.SaveScore, http.MethodPost, `{"testName":"basics","score":3,"totalQuestions":5}`, u.ID)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"redirect":"dashboard"`)
	assert.Contains(t, rec.Body.String(), `"answers":[]`)
}

func TestHandler_Errors(t *testing.T) {
	store := user.NewMemoryStore()
	recorder, _ := newTestRecorder(store)
	h := NewHandler(recorder)
	u := seedUser(t, store, progression.StageBeginnerTest)

	rec := call(h.SubmitExam, http.MethodPost, `{"testName":"x","totalQuestions":5}`, u.ID)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, httputil.CodeBadRequest, body.Code)
	assert.Equal(t, ErrScoreRequired.Error(), body.Error)

	rec = call(h.SubmitExam, http.MethodPost, `{`, u.ID)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	oversized := `{"testName":"x","score":1,"totalQuestions":5,"answers":["` + strings.Repeat("a", httputil.MaxJSONBodySize) + `"]}`
	rec = call(h.SaveScore, http.MethodPost, oversized, u.ID)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(h.SubmitExam, http.MethodPost, `{"testName":"x","score":1,"totalQuestions":5}`, uuid.Nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(h.SubmitExam, http.MethodPost, `{"testName":"x","score":1,"totalQuestions":5}`, uuid.New())
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(h.CompleteReview, http.MethodPost, "", u.ID)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, httputil.CodeConflict, body.Code)

	rec = call(h.TestHistory, http.MethodGet, "", u.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

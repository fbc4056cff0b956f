package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/skill-assessment-api/internal/progression"
)

func TestObserveTransition(t *testing.T) {
	m := New()

	m.ObserveTransition(progression.SubmitDetails{SkillLevel: progression.SkillAdvanced},
		progression.Transition{From: progression.StageDetails, To: progression.StageIntermediateTest})
	m.ObserveTransition(progression.SubmitExam{},
		progression.Transition{From: progression.StageIntermediateTest, To: progression.StagePendingReview})
	m.ObserveTransition(progression.SaveScore{},
		progression.Transition{From: progression.StageDashboard, To: progression.StageDashboard})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("submit_details", "details", "intermediate-test")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResultsRecorded.WithLabelValues("submit_exam")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResultsRecorded.WithLabelValues("save_score")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.ResultsRecorded))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/test-history", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", m.Handler())

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test-history", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/test-history", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "unmatched", "404")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{endpoint="/test-history",method="GET",status="200"} 2`)
}

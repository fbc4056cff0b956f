package results

import (
	"errors"
	"net/http"

	"github.com/redmonkez12/skill-assessment-api/internal/auth"
	"github.com/redmonkez12/skill-assessment-api/internal/httputil"
	"github.com/redmonkez12/skill-assessment-api/internal/logging"
	"github.com/redmonkez12/skill-assessment-api/internal/progression"
	"github.com/redmonkez12/skill-assessment-api/internal/user"
)

type Handler struct {
	recorder *Recorder
}

func NewHandler(recorder *Recorder) *Handler {
	return &Handler{recorder: recorder}
}

// ResultRequest is a finished test. Score and totalQuestions are required.
type ResultRequest struct {
	TestName       string   `json:"testName"`
	Score          *float64 `json:"score"`
	TotalQuestions *int     `json:"totalQuestions"`
	Answers        []string `json:"answers"`
}

// ResultResponse confirms a stored result
type ResultResponse struct {
	Message  string            `json:"message"`
	Result   *user.TestResult  `json:"result"`
	Stage    progression.Stage `json:"stage"`
	Redirect string            `json:"redirect"`
}

// StageResponse reports the stage after a transition
type StageResponse struct {
	Stage    progression.Stage `json:"stage"`
	Redirect string            `json:"redirect"`
}

// SubmitExam records a test and holds the user for review
// @Summary      Submit exam
// @Description  Record a finished test. From a test stage the user moves to pending-review.
// @Tags         results
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ResultRequest true "Result"
// @Success      201 {object} ResultResponse
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /submit-exam [post]
func (h *Handler) SubmitExam(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, progression.SubmitExam{}, "exam submitted")
}

// SaveScore records a test and finishes onboarding
// @Summary      Save score
// @Description  Record a finished test. From a test stage or pending-review the user moves to the dashboard.
// @Tags         results
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ResultRequest true "Result"
// @Success      201 {object} ResultResponse
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /save-score [post]
func (h *Handler) SaveScore(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, progression.SaveScore{}, "score saved")
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request, policy progression.Event, message string) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "missing authentication", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}
	logger = logger.WithFields(map[string]any{
		"user_id": userID,
		"policy":  progression.EventName(policy),
	})

	var req ResultRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid result request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", httputil.CodeBadRequest, http.StatusBadRequest)
		return
	}

	result, transition, err := h.recorder.Record(r.Context(), userID, Submission{
		TestName:       req.TestName,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		Answers:        req.Answers,
	}, policy)
	if err != nil {
		switch {
		case errors.Is(err, ErrTestNameRequired),
			errors.Is(err, ErrScoreRequired),
			errors.Is(err, ErrTotalQuestionsRequired),
			errors.Is(err, ErrNegativeValue):
			logger.Warn("result rejected: validation error", "error", err.Error())
			httputil.RespondError(w, err.Error(), httputil.CodeBadRequest, http.StatusBadRequest)
		case errors.Is(err, user.ErrNotFound):
			logger.Warn("result rejected: user not found")
			httputil.RespondError(w, "user not found", httputil.CodeNotFound, http.StatusNotFound)
		case errors.Is(err, progression.ErrInvalidTransition):
			logger.Warn("result rejected: invalid transition", "error", err.Error())
			httputil.RespondError(w, err.Error(), httputil.CodeConflict, http.StatusConflict)
		default:
			logger.Error("failed to record result", "error", err.Error())
			httputil.RespondInternal(w)
		}
		return
	}

	logger.Info("result recorded", "result_id", result.ID, "from", transition.From, "to", transition.To)

	httputil.RespondJSON(w, ResultResponse{
		Message:  message,
		Result:   result,
		Stage:    transition.To,
		Redirect: transition.Redirect(),
	}, http.StatusCreated)
}

// CompleteReview ends the review step
// @Summary      Complete review
// @Description  Move from pending-review to the dashboard. A no-op when already on the dashboard.
// @Tags         results
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} StageResponse
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      409 {object} httputil.ErrorResponse "No review pending"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /complete-review [post]
func (h *Handler) CompleteReview(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "missing authentication", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	transition, err := h.recorder.CompleteReview(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, progression.ErrInvalidTransition):
			logger.Warn("complete review rejected", "user_id", userID, "error", err.Error())
			httputil.RespondError(w, "no review pending", httputil.CodeConflict, http.StatusConflict)
		case errors.Is(err, user.ErrNotFound):
			httputil.RespondError(w, "user not found", httputil.CodeNotFound, http.StatusNotFound)
		default:
			logger.Error("failed to complete review", "user_id", userID, "error", err.Error())
			httputil.RespondInternal(w)
		}
		return
	}

	httputil.RespondJSON(w, StageResponse{
		Stage:    transition.To,
		Redirect: transition.Redirect(),
	}, http.StatusOK)
}

// TestHistory lists the caller's results
// @Summary      Test history
// @Description  All recorded results of the authenticated user, newest first
// @Tags         results
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} user.TestResult
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /test-history [get]
func (h *Handler) TestHistory(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "missing authentication", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	history, err := h.recorder.List(r.Context(), userID)
	if err != nil {
		logger.Error("failed to list results", "user_id", userID, "error", err.Error())
		httputil.RespondInternal(w)
		return
	}

	httputil.RespondJSON(w, history, http.StatusOK)
}

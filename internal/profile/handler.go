package profile

import (
	"errors"
	"mime"
	"net/http"

	"github.com/redmonkez12/skill-assessment-api/internal/auth"
	"github.com/redmonkez12/skill-assessment-api/internal/httputil"
	"github.com/redmonkez12/skill-assessment-api/internal/logging"
	"github.com/redmonkez12/skill-assessment-api/internal/progression"
	"github.com/redmonkez12/skill-assessment-api/internal/user"
)

// multipartOverhead leaves room for the text fields next to the photo.
const multipartOverhead = 1 << 20

type Handler struct {
	service       *Service
	maxUploadSize int64
}

func NewHandler(service *Service, maxUploadSize int64) *Handler {
	return &Handler{service: service, maxUploadSize: maxUploadSize}
}

// DetailsRequest is the JSON form of a details submission
type DetailsRequest struct {
	DOB        string  `json:"dob"`
	Gender     string  `json:"gender"`
	Address    string  `json:"address"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	SkillLevel *string `json:"skillLevel"`
}

// DetailsResponse tells the client where to go next
type DetailsResponse struct {
	Success  bool              `json:"success"`
	Redirect string            `json:"redirect"`
	Stage    progression.Stage `json:"stage"`
}

// UserDetailsResponse is the stored user plus the derived progress flags
type UserDetailsResponse struct {
	*user.User
	DetailsCompleted bool `json:"detailsCompleted"`
	TestCompleted    bool `json:"testCompleted"`
}

// SubmitDetails handles the details form
// @Summary      Submit profile details
// @Description  Store the profile and route to the test matching the skill level. Accepts multipart/form-data (with an optional "photo" file) or JSON.
// @Tags         profile
// @Accept       multipart/form-data
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        dob        formData string true  "Date of birth"
// @Param        gender     formData string true  "Gender"
// @Param        address    formData string true  "Address"
// @Param        city       formData string true  "City"
// @Param        state      formData string true  "State"
// @Param        skillLevel formData string false "Beginner, Intermediate or Advanced"
// @Param        photo      formData file   false "Profile photo"
// @Success      200 {object} DetailsResponse
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      409 {object} httputil.ErrorResponse "Details already submitted"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /submit-details [post]
func (h *Handler) SubmitDetails(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "missing authentication", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}
	logger = logger.WithFields(map[string]any{"user_id": userID})

	details, err := h.parseDetails(w, r)
	if err != nil {
		logger.Warn("invalid details request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", httputil.CodeBadRequest, http.StatusBadRequest)
		return
	}

	transition, err := h.service.SubmitDetails(r.Context(), userID, details)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingField),
			errors.Is(err, ErrInvalidSkillLevel),
			errors.Is(err, ErrUnsupportedPhoto):
			logger.Warn("details rejected: validation error", "error", err.Error())
			httputil.RespondError(w, err.Error(), httputil.CodeBadRequest, http.StatusBadRequest)
		case errors.Is(err, progression.ErrInvalidTransition):
			logger.Warn("details rejected: invalid transition", "error", err.Error())
			httputil.RespondError(w, "details have already been submitted", httputil.CodeConflict, http.StatusConflict)
		case errors.Is(err, user.ErrNotFound):
			logger.Warn("details rejected: user not found")
			httputil.RespondError(w, "user not found", httputil.CodeNotFound, http.StatusNotFound)
		default:
			logger.Error("details failed: internal error", "error", err.Error())
			httputil.RespondInternal(w)
		}
		return
	}

	logger.Info("details submitted", "from", transition.From, "to", transition.To)

	httputil.RespondJSON(w, DetailsResponse{
		Success:  true,
		Redirect: transition.Redirect(),
		Stage:    transition.To,
	}, http.StatusOK)
}

func (h *Handler) parseDetails(w http.ResponseWriter, r *http.Request) (Details, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req DetailsRequest
		if err := httputil.DecodeJSON(w, r, &req); err != nil {
			return Details{}, err
		}
		return Details{
			DOB:        req.DOB,
			Gender:     req.Gender,
			Address:    req.Address,
			City:       req.City,
			State:      req.State,
			SkillLevel: req.SkillLevel,
		}, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		return Details{}, err
	}

	d := Details{
		DOB:     r.FormValue("dob"),
		Gender:  r.FormValue("gender"),
		Address: r.FormValue("address"),
		City:    r.FormValue("city"),
		State:   r.FormValue("state"),
	}
	if values, ok := r.MultipartForm.Value["skillLevel"]; ok && len(values) > 0 {
		d.SkillLevel = &values[0]
	}

	file, header, err := r.FormFile("photo")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return Details{}, err
	default:
		// The multipart form owns the file; it is removed with the request.
		d.Photo = &Photo{Filename: header.Filename, Size: header.Size, Body: file}
	}

	return d, nil
}

// GetUserDetails returns the caller's profile
// @Summary      Current user
// @Description  Profile of the authenticated user; the credential is never included
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} UserDetailsResponse
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /user-details [get]
func (h *Handler) GetUserDetails(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "missing authentication", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	u, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httputil.RespondError(w, "user not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to load user", "user_id", userID, "error", err.Error())
		httputil.RespondInternal(w)
		return
	}

	httputil.RespondJSON(w, UserDetailsResponse{
		User:             u,
		DetailsCompleted: u.Stage.DetailsCompleted(),
		TestCompleted:    u.Stage.TestCompleted(),
	}, http.StatusOK)
}

// GetProgress returns the caller's stage
// @Summary      Progress
// @Description  Current stage, derived completion flags and the page to show next
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} Progress
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /progress [get]
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "missing authentication", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	progress, err := h.service.GetProgress(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httputil.RespondError(w, "user not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to load progress", "user_id", userID, "error", err.Error())
		httputil.RespondInternal(w)
		return
	}

	httputil.RespondJSON(w, progress, http.StatusOK)
}

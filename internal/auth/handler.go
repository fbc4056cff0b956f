package auth

import (
	"errors"
	"net"
	"net/http"

	"github.com/redmonkez12/skill-assessment-api/internal/httputil"
	"github.com/redmonkez12/skill-assessment-api/internal/logging"
	"github.com/redmonkez12/skill-assessment-api/internal/progression"
	"github.com/redmonkez12/skill-assessment-api/internal/user"
)

// Handler contains HTTP handlers for the signup and login endpoints
type Handler struct {
	service     *Service
	rateLimiter RateLimiter
}

func NewHandler(service *Service, rateLimiter RateLimiter) *Handler {
	return &Handler{
		service:     service,
		rateLimiter: rateLimiter,
	}
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResponse is returned after a successful signup
type SignupResponse struct {
	Token  string            `json:"token"`
	UserID string            `json:"userId"`
	Stage  progression.Stage `json:"stage"`
}

// LoginResponse carries the token and where the user should resume
type LoginResponse struct {
	Token            string                 `json:"token"`
	Stage            progression.Stage      `json:"stage"`
	SkillLevel       progression.SkillLevel `json:"skillLevel,omitempty"`
	DetailsCompleted bool                   `json:"detailsCompleted"`
	Redirect         string                 `json:"redirect"`
}

// Signup handles account creation
// @Summary      Sign up
// @Description  Create an account. The new user starts at the details stage.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Signup form"
// @Success      201 {object} SignupResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request or validation error"
// @Failure      409 {object} httputil.ErrorResponse "Email or phone already registered"
// @Failure      429 {object} httputil.ErrorResponse "Too many requests"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if !h.allow(w, r, "signup") {
		return
	}

	var req SignupRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid signup request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", httputil.CodeBadRequest, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	session, err := h.service.Signup(r.Context(), SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrDuplicateEmail):
			logger.Warn("signup failed: email already exists")
			httputil.RespondError(w, "email already exists", httputil.CodeConflict, http.StatusConflict)
		case errors.Is(err, user.ErrDuplicatePhone):
			logger.Warn("signup failed: phone already exists")
			httputil.RespondError(w, "phone already exists", httputil.CodeConflict, http.StatusConflict)
		case errors.Is(err, ErrNameRequired),
			errors.Is(err, ErrEmailRequired),
			errors.Is(err, ErrPasswordRequired),
			errors.Is(err, ErrInvalidEmailFormat):
			logger.Warn("signup failed: validation error", "error", err.Error())
			httputil.RespondError(w, err.Error(), httputil.CodeBadRequest, http.StatusBadRequest)
		default:
			logger.Error("signup failed: internal error", "error", err.Error())
			httputil.RespondInternal(w)
		}
		return
	}

	logger.Info("user signed up", "user_id", session.UserID)

	httputil.RespondJSON(w, SignupResponse{
		Token:  session.Token,
		UserID: session.UserID,
		Stage:  session.Stage,
	}, http.StatusCreated)
}

// Login handles user login
// @Summary      Log in
// @Description  Authenticate and receive a bearer token together with the current stage
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} LoginResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request body"
// @Failure      401 {object} httputil.ErrorResponse "Invalid credentials"
// @Failure      429 {object} httputil.ErrorResponse "Too many requests"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if !h.allow(w, r, "login") {
		return
	}

	var req LoginRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", httputil.CodeBadRequest, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("login failed: invalid credentials")
			httputil.RespondError(w, "invalid email or password", httputil.CodeInvalidCredentials, http.StatusUnauthorized)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		httputil.RespondInternal(w)
		return
	}

	logger.Info("user logged in", "user_id", session.UserID, "stage", session.Stage)

	httputil.RespondJSON(w, LoginResponse{
		Token:            session.Token,
		Stage:            session.Stage,
		SkillLevel:       session.SkillLevel,
		DetailsCompleted: session.DetailsCompleted,
		Redirect:         session.Redirect,
	}, http.StatusOK)
}

// allow applies the per-IP limit for purpose. Limiter failures let the request through.
func (h *Handler) allow(w http.ResponseWriter, r *http.Request, purpose string) bool {
	if h.rateLimiter == nil {
		return true
	}

	logger := logging.GetLoggerFromContext(r.Context())
	ip := clientIP(r)

	allowed, err := h.rateLimiter.Allow(r.Context(), purpose+":"+ip)
	if err != nil {
		logger.Error("failed to check IP rate limit", "error", err.Error())
		return true
	}
	if !allowed {
		logger.Warn("IP rate limit exceeded", "ip", ip, "purpose", purpose)
		httputil.RespondError(w, "too many requests, please try again later", httputil.CodeTooManyRequests, http.StatusTooManyRequests)
		return false
	}

	return true
}

// clientIP relies on chi's RealIP middleware having rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

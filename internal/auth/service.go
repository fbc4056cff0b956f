package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/redmonkez12/skill-assessment-api/internal/logging"
	"github.com/redmonkez12/skill-assessment-api/internal/progression"
	"github.com/redmonkez12/skill-assessment-api/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidEmailFormat = errors.New("invalid email format")
)

// SignupInput is the registration form.
type SignupInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Session is a freshly issued token plus the user's position in the funnel.
type Session struct {
	Token            string
	UserID           string
	Stage            progression.Stage
	SkillLevel       progression.SkillLevel
	DetailsCompleted bool
	Redirect         string
}

// Service handles signup and login
type Service struct {
	users         user.Store
	tokens        TokenService
	observer      progression.Observer
	logger        *logging.Logger
	tokenDuration time.Duration
}

func NewService(
	users user.Store,
	tokens TokenService,
	observer progression.Observer,
	logger *logging.Logger,
	tokenDuration time.Duration,
) *Service {
	if observer == nil {
		observer = progression.NopObserver{}
	}
	return &Service{
		users:         users,
		tokens:        tokens,
		observer:      observer,
		logger:        logger,
		tokenDuration: tokenDuration,
	}
}

// Signup creates an account at the details stage and returns a session for it.
// It fails with user.ErrDuplicateEmail or user.ErrDuplicatePhone on conflicts.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	if in.Name == "" {
		return nil, ErrNameRequired
	}
	if in.Email == "" {
		return nil, ErrEmailRequired
	}
	if len(in.Email) > 254 {
		return nil, ErrInvalidEmailFormat
	}
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		return nil, ErrInvalidEmailFormat
	}
	if in.Password == "" {
		return nil, ErrPasswordRequired
	}

	event := progression.Signup{}
	transition, err := progression.Next(progression.StageSignup, event)
	if err != nil {
		return nil, err
	}

	passwordHash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &user.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: passwordHash,
		Stage:        transition.To,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) || errors.Is(err, user.ErrDuplicatePhone) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.observer.ObserveTransition(event, transition)

	return s.newSession(created)
}

// Login checks credentials and reports where the user left off.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	existingUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Burn the same work as a real comparison.
			VerifyPassword(dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !VerifyPassword(existingUser.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.newSession(existingUser)
}

func (s *Service) newSession(u *user.User) (*Session, error) {
	token, err := s.tokens.CreateToken(u.ID, s.tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	return &Session{
		Token:            token,
		UserID:           u.ID.String(),
		Stage:            u.Stage,
		SkillLevel:       u.SkillLevel,
		DetailsCompleted: u.Stage.DetailsCompleted(),
		Redirect:         string(u.Stage),
	}, nil
}

// dummyHash is a valid argon2id encoding of a random password.
const dummyHash = "$argon2id$v=19$m=65536,t=3,p=4$c29tZXNhbHRzb21lc2FsdA$4tq3dNKUDUQD7C2yMk3LWy1Tqvb4R5bOMHu9rXoRN1A"

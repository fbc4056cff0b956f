package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/redmonkez12/skill-assessment-api/internal/progression"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrDuplicatePhone = errors.New("phone already exists")

	// ErrStageChanged means another request moved the user after the
	// transition was computed. It matches progression.ErrInvalidTransition.
	ErrStageChanged = fmt.Errorf("%w: stage changed concurrently", progression.ErrInvalidTransition)
)

// Store persists users and their test results. It holds no business rules:
// callers decide the stage, the store only writes it.
//
// The stage-writing methods apply t only while the stored stage is still
// t.From or already t.To, and return ErrStageChanged otherwise.
type Store interface {
	// Create inserts u. It returns ErrDuplicateEmail or ErrDuplicatePhone on conflicts.
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// UpdateProfile writes the profile and t.To in a single update.
	UpdateProfile(ctx context.Context, id uuid.UUID, p Profile, t progression.Transition) error
	UpdateStage(ctx context.Context, id uuid.UUID, t progression.Transition) error
	// AppendResult inserts r and sets the owner's stage atomically.
	AppendResult(ctx context.Context, r *TestResult, t progression.Transition) error
	// ListResults returns the user's results, newest first.
	ListResults(ctx context.Context, userID uuid.UUID) ([]TestResult, error)
}

// Package results records completed assessments and moves users past the test
// stage according to the submission policy.
package results

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/skill-assessment-api/internal/progression"
	"github.com/redmonkez12/skill-assessment-api/internal/user"
)

var (
	ErrTestNameRequired       = errors.New("testName is required")
	ErrScoreRequired          = errors.New("score is required")
	ErrTotalQuestionsRequired = errors.New("totalQuestions is required")
	ErrNegativeValue          = errors.New("score and totalQuestions must be non-negative numbers")
)

// Submission is one finished test as sent by the client.
type Submission struct {
	TestName       string
	Score          *float64
	TotalQuestions *int
	Answers        []string
}

// Validate reports the first missing or out-of-range field.
func (s Submission) Validate() error {
	if strings.TrimSpace(s.TestName) == "" {
		return ErrTestNameRequired
	}
	if s.Score == nil {
		return ErrScoreRequired
	}
	if s.TotalQuestions == nil {
		return ErrTotalQuestionsRequired
	}
	if *s.Score < 0 || math.IsNaN(*s.Score) || math.IsInf(*s.Score, 0) || *s.TotalQuestions < 0 {
		return ErrNegativeValue
	}
	return nil
}

// Recorder appends results and applies stage transitions.
type Recorder struct {
	users    user.Store
	observer progression.Observer
	now      func() time.Time
}

func NewRecorder(users user.Store, observer progression.Observer) *Recorder {
	if observer == nil {
		observer = progression.NopObserver{}
	}
	return &Recorder{users: users, observer: observer, now: time.Now}
}

// Record stores sub for userID. policy is progression.SubmitExam or
// progression.SaveScore and decides the resulting stage. The result and the
// stage change are written atomically.
func (r *Recorder) Record(ctx context.Context, userID uuid.UUID, sub Submission, policy progression.Event) (*user.TestResult, progression.Transition, error) {
	switch policy.(type) {
	case progression.SubmitExam, progression.SaveScore:
	default:
		return nil, progression.Transition{}, fmt.Errorf("unsupported result policy %q", progression.EventName(policy))
	}

	if err := sub.Validate(); err != nil {
		return nil, progression.Transition{}, err
	}

	current, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return nil, progression.Transition{}, err
	}

	transition, err := progression.Next(current.Stage, policy)
	if err != nil {
		return nil, progression.Transition{}, err
	}

	answers := slices.Clone(sub.Answers)
	if answers == nil {
		answers = []string{}
	}

	result := &user.TestResult{
		UserID:         userID,
		TestName:       strings.TrimSpace(sub.TestName),
		Score:          *sub.Score,
		TotalQuestions: *sub.TotalQuestions,
		Answers:        answers,
		TakenAt:        r.now().UTC(),
	}

	if err := r.users.AppendResult(ctx, result, transition); err != nil {
		return nil, progression.Transition{}, err
	}

	r.observer.ObserveTransition(policy, transition)

	return result, transition, nil
}

// CompleteReview moves a user out of pending-review to the dashboard.
func (r *Recorder) CompleteReview(ctx context.Context, userID uuid.UUID) (progression.Transition, error) {
	current, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return progression.Transition{}, err
	}

	event := progression.CompleteReview{}
	transition, err := progression.Next(current.Stage, event)
	if err != nil {
		return progression.Transition{}, err
	}

	if transition.Changed() {
		if err := r.users.UpdateStage(ctx, userID, transition); err != nil {
			return progression.Transition{}, err
		}
		r.observer.ObserveTransition(event, transition)
	}

	return transition, nil
}

// List returns the user's results, newest first.
func (r *Recorder) List(ctx context.Context, userID uuid.UUID) ([]user.TestResult, error) {
	results, err := r.users.ListResults(ctx, userID)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []user.TestResult{}
	}
	return results, nil
}

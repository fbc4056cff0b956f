package progression

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when an event is not permitted from the current stage.
var ErrInvalidTransition = errors.New("invalid stage transition")

// Event is something a user does that may move them through the funnel.
type Event interface {
	eventName() string
}

// Signup creates the account.
type Signup struct{}

// SubmitDetails fills the profile. An empty SkillLevel routes to the dashboard.
type SubmitDetails struct {
	SkillLevel SkillLevel
}

// SubmitExam records a test and holds the user in pending-review until
// they explicitly finish reviewing their answers.
type SubmitExam struct{}

// SaveScore records a test and sends the user straight to the dashboard.
type SaveScore struct{}

// CompleteReview ends the review step that follows SubmitExam.
type CompleteReview struct{}

func (Signup) eventName() string         { return "signup" }
func (SubmitDetails) eventName() string  { return "submit_details" }
func (SubmitExam) eventName() string     { return "submit_exam" }
func (SaveScore) eventName() string      { return "save_score" }
func (CompleteReview) eventName() string { return "complete_review" }

// EventName returns a stable identifier for e, suitable for logs and metric labels.
func EventName(e Event) string {
	return e.eventName()
}

// Transition is the outcome of applying an event.
type Transition struct {
	From Stage
	To   Stage
}

// Changed reports whether the stage moved.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Redirect is the page the client should route to next.
func (t Transition) Redirect() string {
	return string(t.To)
}

// Next computes the transition for event e from stage current.
// It never returns a transition that lowers the stage rank.
func Next(current Stage, e Event) (Transition, error) {
	if current == "" {
		current = StageSignup
	}
	if !current.Valid() {
		return Transition{}, fmt.Errorf("%w: unknown stage %q", ErrInvalidTransition, current)
	}

	stay := Transition{From: current, To: current}

	switch ev := e.(type) {
	case Signup:
		if current != StageSignup {
			return Transition{}, fmt.Errorf("%w: already signed up", ErrInvalidTransition)
		}
		return Transition{From: current, To: StageDetails}, nil

	case SubmitDetails:
		target := RouteForSkill(ev.SkillLevel)
		if current.Rank() <= StageDetails.Rank() {
			return Transition{From: current, To: target}, nil
		}
		// Re-submitting the same routing is an idempotent replay.
		if current == target {
			return stay, nil
		}
		return Transition{}, fmt.Errorf("%w: details already submitted (stage %s)", ErrInvalidTransition, current)

	case SubmitExam:
		if current.IsTest() {
			return Transition{From: current, To: StagePendingReview}, nil
		}
		return stay, nil

	case SaveScore:
		if current.IsTest() || current == StagePendingReview {
			return Transition{From: current, To: StageDashboard}, nil
		}
		return stay, nil

	case CompleteReview:
		switch current {
		case StagePendingReview:
			return Transition{From: current, To: StageDashboard}, nil
		case StageDashboard:
			return stay, nil
		default:
			return Transition{}, fmt.Errorf("%w: no review pending (stage %s)", ErrInvalidTransition, current)
		}
	}

	return Transition{}, fmt.Errorf("%w: unsupported event", ErrInvalidTransition)
}

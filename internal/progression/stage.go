// Package progression implements the onboarding funnel state machine:
// signup -> details -> (beginner-test | intermediate-test) -> pending-review -> dashboard.
//
// Everything here is pure. Callers load the user, ask Next for a Transition
// and persist the result themselves.
package progression

import "strings"

// Stage is the single source of truth for a user's position in the funnel.
type Stage string

const (
	StageSignup           Stage = "signup"
	StageDetails          Stage = "details"
	StageBeginnerTest     Stage = "beginner-test"
	StageIntermediateTest Stage = "intermediate-test"
	StagePendingReview    Stage = "pending-review"
	StageDashboard        Stage = "dashboard"
)

// Both test stages share a rank so moving between them is never a regression.
var stageRank = map[Stage]int{
	StageSignup:           0,
	StageDetails:          1,
	StageBeginnerTest:     2,
	StageIntermediateTest: 2,
	StagePendingReview:    3,
	StageDashboard:        4,
}

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	_, ok := stageRank[s]
	return ok
}

// Rank returns the position of s in the funnel. Unknown stages rank as signup.
func (s Stage) Rank() int {
	return stageRank[s]
}

// IsTest reports whether the user has been assigned a test and not yet submitted it.
func (s Stage) IsTest() bool {
	return s == StageBeginnerTest || s == StageIntermediateTest
}

// DetailsCompleted is derived from the stage: every stage after details
// can only be reached through a details submission.
func (s Stage) DetailsCompleted() bool {
	return s.Rank() > StageDetails.Rank()
}

// TestCompleted is true once the user has left the test step, either by
// submitting a test or by being routed straight to the dashboard.
func (s Stage) TestCompleted() bool {
	return s.Rank() >= StagePendingReview.Rank()
}

func (s Stage) String() string {
	return string(s)
}

// SkillLevel controls which test is assigned after details are submitted.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
)

// ParseSkillLevel matches s case-insensitively against the known levels.
func ParseSkillLevel(s string) (SkillLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return SkillBeginner, true
	case "intermediate":
		return SkillIntermediate, true
	case "advanced":
		return SkillAdvanced, true
	default:
		return "", false
	}
}

// RouteForSkill returns the stage a user lands on after submitting details.
// Intermediate users take the beginner test and advanced users the
// intermediate one. Anything else goes straight to the dashboard.
func RouteForSkill(level SkillLevel) Stage {
	switch level {
	case SkillIntermediate:
		return StageBeginnerTest
	case SkillAdvanced:
		return StageIntermediateTest
	default:
		return StageDashboard
	}
}

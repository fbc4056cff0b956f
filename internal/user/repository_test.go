package user

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/redmonkez12/skill-assessment-api/internal/database"
	"github.com/redmonkez12/skill-assessment-api/internal/progression"
)

func TestMapUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "email constraint",
			err:  &pq.Error{Code: "23505", Constraint: "users_email_key"},
			want: ErrDuplicateEmail,
		},
		{
			name: "phone index",
			err:  fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "users_phone_key"}),
			want: ErrDuplicatePhone,
		},
		{
			name: "other pq error",
			err:  &pq.Error{Code: "23503"},
			want: nil,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mapUniqueViolation(tc.err)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}
}

func TestMapUserRoundTrip(t *testing.T) {
	u := &User{
		ID:         uuid.New(),
		Name:       "Ada",
		Email:      "Ada@Example.com",
		Phone:      "555",
		City:       "Pune",
		SkillLevel: progression.SkillIntermediate,
		Stage:      progression.StageBeginnerTest,
	}

	dbu := mapModelToDBUser(u)
	assert.Equal(t, "ada@example.com", dbu.Email)
	assert.Equal(t, "Intermediate", dbu.SkillLevel)
	assert.Equal(t, "beginner-test", dbu.Stage)

	back := mapDBUserToModel(dbu)
	assert.Equal(t, u.ID, back.ID)
	assert.Equal(t, progression.StageBeginnerTest, back.Stage)
	assert.Equal(t, progression.SkillIntermediate, back.SkillLevel)
}

func TestMapResultNormalizesAnswers(t *testing.T) {
	dbr := mapModelToDBResult(&TestResult{UserID: uuid.New(), TestName: "algebra", Score: 7, TotalQuestions: 10})
	assert.NotNil(t, dbr.Answers)
	assert.False(t, dbr.TakenAt.IsZero())

	back := mapDBResultToModel(&database.TestResult{TestName: "algebra", TakenAt: time.Now()})
	assert.NotNil(t, back.Answers)
	assert.Empty(t, back.Answers)
}

func TestTransitionStages(t *testing.T) {
	got := transitionStages(progression.Transition{From: progression.StageIntermediateTest, To: progression.StagePendingReview})
	assert.Equal(t, []string{"intermediate-test", "pending-review"}, got)

	// Rows written before a stage existed still accept the first transition.
	got = transitionStages(progression.Transition{From: progression.StageSignup, To: progression.StageDetails})
	assert.Equal(t, []string{"signup", "details", ""}, got)
}

package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/skill-assessment-api/internal/progression"
)

type User struct {
	ID           uuid.UUID              `json:"id"`
	Name         string                 `json:"name"`
	Email        string                 `json:"email"`
	Phone        string                 `json:"phone,omitempty"`
	PasswordHash string                 `json:"-"` // Never expose password hash in JSON
	DOB          string                 `json:"dob,omitempty"`
	Gender       string                 `json:"gender,omitempty"`
	Address      string                 `json:"address,omitempty"`
	City         string                 `json:"city,omitempty"`
	State        string                 `json:"state,omitempty"`
	Photo        string                 `json:"photo,omitempty"`
	SkillLevel   progression.SkillLevel `json:"skillLevel,omitempty"`
	Stage        progression.Stage      `json:"stage"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// ProfileComplete reports whether every required profile field is filled.
func (u *User) ProfileComplete() bool {
	return u.DOB != "" && u.Gender != "" && u.Address != "" && u.City != "" && u.State != ""
}

// Profile is a details submission. Nil pointer fields leave the stored value untouched.
type Profile struct {
	DOB        string
	Gender     string
	Address    string
	City       string
	State      string
	Photo      *string
	SkillLevel *progression.SkillLevel
}

// TestResult is one completed assessment attempt. It is never modified after insert.
type TestResult struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	TestName       string    `json:"testName"`
	Score          float64   `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Answers        []string  `json:"answers"`
	TakenAt        time.Time `json:"date"`
}

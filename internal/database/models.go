package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the bun model for the users table.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid"`
	Name         string    `bun:"name,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	Phone        string    `bun:"phone,notnull"`
	PasswordHash string    `bun:"password_hash,notnull"`
	DOB          string    `bun:"dob,notnull"`
	Gender       string    `bun:"gender,notnull"`
	Address      string    `bun:"address,notnull"`
	City         string    `bun:"city,notnull"`
	State        string    `bun:"state,notnull"`
	Photo        string    `bun:"photo,notnull"`
	SkillLevel   string    `bun:"skill_level,notnull"`
	Stage        string    `bun:"stage,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// TestResult is the bun model for the test_results table.
// Answers is stored as a JSON array.
type TestResult struct {
	bun.BaseModel `bun:"table:test_results,alias:tr"`

	ID             uuid.UUID `bun:"id,pk,type:uuid"`
	UserID         uuid.UUID `bun:"user_id,type:uuid,notnull"`
	TestName       string    `bun:"test_name,notnull"`
	Score          float64   `bun:"score,notnull"`
	TotalQuestions int       `bun:"total_questions,notnull"`
	Answers        []string  `bun:"answers,type:jsonb,notnull"`
	TakenAt        time.Time `bun:"taken_at,notnull"`
}

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/skill-assessment-api/internal/database"
	"github.com/redmonkez12/skill-assessment-api/internal/progression"
)

const (
	uniqueViolation     = "23505"
	phoneUniqueIndexKey = "users_phone_key"
)

var _ Store = (*Repository)(nil)

// Repository handles user data persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user into the database
func (r *Repository) Create(ctx context.Context, u *User) (*User, error) {
	dbUser := mapModelToDBUser(u)
	if dbUser.ID == uuid.Nil {
		dbUser.ID = uuid.New()
	}

	_, err := r.db.NewInsert().
		Model(dbUser).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByEmail retrieves a user by email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("email = ?", strings.ToLower(email)).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByID retrieves a user by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// UpdateProfile writes the submitted details and the new stage
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, p Profile, t progression.Transition) error {
	q := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("dob = ?", p.DOB).
		Set("gender = ?", p.Gender).
		Set("address = ?", p.Address).
		Set("city = ?", p.City).
		Set("state = ?", p.State).
		Set("stage = ?", string(t.To)).
		Set("updated_at = NOW()").
		Where("id = ?", id).
		Where("stage IN (?)", bun.In(transitionStages(t)))

	if p.Photo != nil {
		q = q.Set("photo = ?", *p.Photo)
	}
	if p.SkillLevel != nil {
		q = q.Set("skill_level = ?", string(*p.SkillLevel))
	}

	result, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return requireTransitionRow(ctx, r.db, id, result)
}

// UpdateStage moves the user along t
func (r *Repository) UpdateStage(ctx context.Context, id uuid.UUID, t progression.Transition) error {
	return updateStage(ctx, r.db, id, t)
}

// AppendResult stores a test result and the owner's new stage in one transaction
func (r *Repository) AppendResult(ctx context.Context, tr *TestResult, t progression.Transition) error {
	dbResult := mapModelToDBResult(tr)
	if dbResult.ID == uuid.Nil {
		dbResult.ID = uuid.New()
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// The conditional update locks the owner row; a concurrent writer
		// re-evaluates the stage condition after this commits.
		if err := updateStage(ctx, tx, tr.UserID, t); err != nil {
			return err
		}

		if _, err := tx.NewInsert().Model(dbResult).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert test result: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	tr.ID = dbResult.ID
	return nil
}

// ListResults returns a user's results, newest first
func (r *Repository) ListResults(ctx context.Context, userID uuid.UUID) ([]TestResult, error) {
	var rows []database.TestResult
	err := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("taken_at DESC", "seq DESC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list test results: %w", err)
	}

	results := make([]TestResult, 0, len(rows))
	for i := range rows {
		results = append(results, mapDBResultToModel(&rows[i]))
	}

	return results, nil
}

func updateStage(ctx context.Context, db bun.IDB, id uuid.UUID, t progression.Transition) error {
	result, err := db.NewUpdate().
		Model((*database.User)(nil)).
		Set("stage = ?", string(t.To)).
		Set("updated_at = NOW()").
		Where("id = ?", id).
		Where("stage IN (?)", bun.In(transitionStages(t))).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to update stage: %w", err)
	}

	return requireTransitionRow(ctx, db, id, result)
}

// transitionStages lists the stored stages t may still be applied to.
func transitionStages(t progression.Transition) []string {
	stages := []string{string(t.From), string(t.To)}
	if t.From == progression.StageSignup {
		stages = append(stages, "")
	}
	return stages
}

// requireTransitionRow tells a missing user apart from one whose stage moved.
func requireTransitionRow(ctx context.Context, db bun.IDB, id uuid.UUID, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	exists, err := db.NewSelect().
		Model((*database.User)(nil)).
		Where("id = ?", id).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	return ErrStageChanged
}

// mapUniqueViolation translates a Postgres unique violation into a domain error
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return nil
	}
	if pqErr.Constraint == phoneUniqueIndexKey {
		return ErrDuplicatePhone
	}
	return ErrDuplicateEmail
}

func mapModelToDBUser(u *User) *database.User {
	return &database.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        strings.ToLower(u.Email),
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		DOB:          u.DOB,
		Gender:       u.Gender,
		Address:      u.Address,
		City:         u.City,
		State:        u.State,
		Photo:        u.Photo,
		SkillLevel:   string(u.SkillLevel),
		Stage:        string(u.Stage),
	}
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	return &User{
		ID:           dbu.ID,
		Name:         dbu.Name,
		Email:        dbu.Email,
		Phone:        dbu.Phone,
		PasswordHash: dbu.PasswordHash,
		DOB:          dbu.DOB,
		Gender:       dbu.Gender,
		Address:      dbu.Address,
		City:         dbu.City,
		State:        dbu.State,
		Photo:        dbu.Photo,
		SkillLevel:   progression.SkillLevel(dbu.SkillLevel),
		Stage:        progression.Stage(dbu.Stage),
		CreatedAt:    dbu.CreatedAt,
		UpdatedAt:    dbu.UpdatedAt,
	}
}

func mapModelToDBResult(tr *TestResult) *database.TestResult {
	answers := tr.Answers
	if answers == nil {
		answers = []string{}
	}
	takenAt := tr.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now()
	}
	return &database.TestResult{
		ID:             tr.ID,
		UserID:         tr.UserID,
		TestName:       tr.TestName,
		Score:          tr.Score,
		TotalQuestions: tr.TotalQuestions,
		Answers:        answers,
		TakenAt:        takenAt,
	}
}

func mapDBResultToModel(dbr *database.TestResult) TestResult {
	answers := dbr.Answers
	if answers == nil {
		answers = []string{}
	}
	return TestResult{
		ID:             dbr.ID,
		UserID:         dbr.UserID,
		TestName:       dbr.TestName,
		Score:          dbr.Score,
		TotalQuestions: dbr.TotalQuestions,
		Answers:        answers,
		TakenAt:        dbr.TakenAt,
	}
}

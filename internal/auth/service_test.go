package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/skill-assessment-api/internal/logging"
	"github.com/redmonkez12/skill-assessment-api/internal/progression"
	"github.com/redmonkez12/skill-assessment-api/internal/user"
)

type recordingObserver struct {
	events []string
	trans  []progression.Transition
}

func (o *recordingObserver) ObserveTransition(e progression.Event, t progression.Transition) {
	o.events = append(o.events, progression.EventName(e))
	o.trans = append(o.trans, t)
}

func newTestService(t *testing.T) (*Service, *user.MemoryStore, *PasetoService, *recordingObserver) {
	t.Helper()

	tokens, err := NewPasetoService(testPasetoKey)
	require.NoError(t, err)

	store := user.NewMemoryStore()
	obs := &recordingObserver{}

	return NewService(store, tokens, obs, logging.NewLogger(false), time.Hour), store, tokens, obs
}

func TestService_Signup(t *testing.T) {
	ctx := context.Background()
	svc, store, tokens, obs := newTestService(t)

	session, err := svc.Signup(ctx, SignupInput{Name: "A", Email: " A@X.com ", Phone: "", Password: "p1"})
	require.NoError(t, err)
	assert.Equal(t, progression.StageDetails, session.Stage)
	assert.False(t, session.DetailsCompleted)

	claims, err := tokens.VerifyToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, claims.UserID.String())

	stored, err := store.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", stored.Email)
	assert.NotEqual(t, "p1", stored.PasswordHash)
	assert.True(t, VerifyPassword(stored.PasswordHash, "p1"))

	results, err := store.ListResults(ctx, stored.ID)
	require.NoError(t, err)
	assert.Empty(t, results)

	assert.Equal(t, []string{"signup"}, obs.events)
}

func TestService_SignupConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	_, err := svc.Signup(ctx, SignupInput{Name: "A", Email: "a@x.com", Phone: "555", Password: "p1"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupInput{Name: "B", Email: "a@x.com", Phone: "777", Password: "other"})
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)

	_, err = svc.Signup(ctx, SignupInput{Name: "C", Email: "c@x.com", Phone: "555", Password: "p1"})
	assert.ErrorIs(t, err, user.ErrDuplicatePhone)
}

func TestService_SignupValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	tests := []struct {
		name string
		in   SignupInput
		want error
	}{
		{"missing name", SignupInput{Email: "a@x.com", Password: "p"}, ErrNameRequired},
		{"missing email", SignupInput{Name: "A", Password: "p"}, ErrEmailRequired},
		{"bad email", SignupInput{Name: "A", Email: "not-an-email", Password: "p"}, ErrInvalidEmailFormat},
		{"display name email", SignupInput{Name: "A", Email: "A <a@x.com>", Password: "p"}, ErrInvalidEmailFormat},
		{"missing password", SignupInput{Name: "A", Email: "a@x.com"}, ErrPasswordRequired},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc, store, _, _ := newTestService(t)

	signed, err := svc.Signup(ctx, SignupInput{Name: "A", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	session, err := svc.Login(ctx, "A@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, progression.StageDetails, session.Stage)
	assert.Equal(t, "details", session.Redirect)
	assert.False(t, session.DetailsCompleted)
	assert.NotEmpty(t, session.Token)

	u, err := store.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	level := progression.SkillAdvanced
	require.NoError(t, store.UpdateProfile(ctx, u.ID, user.Profile{
		DOB: "2000-01-01", Gender: "f", Address: "a", City: "c", State: "s", SkillLevel: &level,
	}, progression.Transition{From: progression.StageDetails, To: progression.StageIntermediateTest}))

	session, err = svc.Login(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, signed.UserID, session.UserID)
	assert.Equal(t, progression.StageIntermediateTest, session.Stage)
	assert.Equal(t, progression.SkillAdvanced, session.SkillLevel)
	assert.True(t, session.DetailsCompleted)
	assert.Equal(t, "intermediate-test", session.Redirect)
}

func TestService_LoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	_, err := svc.Signup(ctx, SignupInput{Name: "A", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	for _, tc := range []struct{ email, password string }{
		{"a@x.com", "wrong"},
		{"nobody@x.com", "p1"},
		{"", "p1"},
		{"a@x.com", ""},
	} {
		_, err := svc.Login(ctx, tc.email, tc.password)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

type failingStore struct{ user.Store }

func (failingStore) GetByEmail(context.Context, string) (*user.User, error) {
	return nil, errors.New("connection reset")
}

func TestService_LoginStoreFailure(t *testing.T) {
	tokens, err := NewPasetoService(testPasetoKey)
	require.NoError(t, err)
	svc := NewService(failingStore{}, tokens, nil, logging.NewLogger(false), time.Hour)

	_, err = svc.Login(context.Background(), "a@x.com", "p1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

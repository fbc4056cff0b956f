// Package profile handles the details step of onboarding and the read-only
// views of a user's profile and progress.
package profile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/redmonkez12/skill-assessment-api/internal/logging"
	"github.com/redmonkez12/skill-assessment-api/internal/progression"
	"github.com/redmonkez12/skill-assessment-api/internal/storage"
	"github.com/redmonkez12/skill-assessment-api/internal/user"
)

var (
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidSkillLevel  = errors.New("skill level must be Beginner, Intermediate or Advanced")
	ErrUnsupportedPhoto   = errors.New("photo must be a JPEG, PNG, GIF or WebP image")
	ErrPhotoUploadFailure = errors.New("failed to store photo")
)

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Photo is an uploaded image waiting to be stored.
type Photo struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// Details is a details submission. A nil SkillLevel keeps the stored level,
// a nil Photo keeps the stored photo.
type Details struct {
	DOB        string
	Gender     string
	Address    string
	City       string
	State      string
	SkillLevel *string
	Photo      *Photo
}

// Progress is the user's position in the funnel.
type Progress struct {
	Stage            progression.Stage      `json:"stage"`
	SkillLevel       progression.SkillLevel `json:"skillLevel,omitempty"`
	DetailsCompleted bool                   `json:"detailsCompleted"`
	TestCompleted    bool                   `json:"testCompleted"`
	Redirect         string                 `json:"redirect"`
}

type Service struct {
	users    user.Store
	blobs    storage.BlobStore
	observer progression.Observer
	logger   *logging.Logger
}

func NewService(users user.Store, blobs storage.BlobStore, observer progression.Observer, logger *logging.Logger) *Service {
	if observer == nil {
		observer = progression.NopObserver{}
	}
	return &Service{users: users, blobs: blobs, observer: observer, logger: logger}
}

// SubmitDetails validates and stores the profile, uploads the photo and routes
// the user to the test matching their skill level.
func (s *Service) SubmitDetails(ctx context.Context, userID uuid.UUID, d Details) (progression.Transition, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"dob", &d.DOB},
		{"gender", &d.Gender},
		{"address", &d.Address},
		{"city", &d.City},
		{"state", &d.State},
	}
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return progression.Transition{}, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	var submitted *progression.SkillLevel
	if d.SkillLevel != nil && strings.TrimSpace(*d.SkillLevel) != "" {
		level, ok := progression.ParseSkillLevel(*d.SkillLevel)
		if !ok {
			return progression.Transition{}, ErrInvalidSkillLevel
		}
		submitted = &level
	}

	var photo *Photo
	var contentType string
	if d.Photo != nil {
		var err error
		photo, contentType, err = sniffPhoto(d.Photo)
		if err != nil {
			return progression.Transition{}, err
		}
	}

	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return progression.Transition{}, err
	}

	level := current.SkillLevel
	if submitted != nil {
		level = *submitted
	}

	event := progression.SubmitDetails{SkillLevel: level}
	transition, err := progression.Next(current.Stage, event)
	if err != nil {
		return progression.Transition{}, err
	}

	update := user.Profile{
		DOB:        d.DOB,
		Gender:     d.Gender,
		Address:    d.Address,
		City:       d.City,
		State:      d.State,
		SkillLevel: submitted,
	}

	var photoKey string
	if photo != nil {
		photoKey = storage.NewKey(photo.Filename)
		ref, err := s.blobs.Upload(ctx, photoKey, photo.Body, photo.Size, contentType)
		if err != nil {
			return progression.Transition{}, fmt.Errorf("%w: %w", ErrPhotoUploadFailure, err)
		}
		update.Photo = &ref
	}

	if err := s.users.UpdateProfile(ctx, userID, update, transition); err != nil {
		if photoKey != "" {
			if delErr := s.blobs.Delete(context.WithoutCancel(ctx), photoKey); delErr != nil {
				s.logger.Warn("failed to delete orphaned photo", "key", photoKey, "error", delErr)
			}
		}
		return progression.Transition{}, err
	}

	s.observer.ObserveTransition(event, transition)

	return transition, nil
}

// GetUser returns the stored user.
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

// GetProgress reports the current stage and the flags derived from it.
func (s *Service) GetProgress(ctx context.Context, userID uuid.UUID) (*Progress, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Progress{
		Stage:            u.Stage,
		SkillLevel:       u.SkillLevel,
		DetailsCompleted: u.Stage.DetailsCompleted(),
		TestCompleted:    u.Stage.TestCompleted(),
		Redirect:         string(u.Stage),
	}, nil
}

// sniffPhoto checks the leading bytes of the upload and returns a photo whose
// body yields the full content and supports seeking, which S3 uploads over
// plain HTTP require for payload signing.
func sniffPhoto(p *Photo) (*Photo, string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(p.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("failed to read photo: %w", err)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if !allowedPhotoTypes[contentType] {
		return nil, "", ErrUnsupportedPhoto
	}

	if rs, ok := p.Body.(io.ReadSeeker); ok {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, "", fmt.Errorf("failed to rewind photo: %w", err)
		}
		return &Photo{Filename: p.Filename, Size: p.Size, Body: rs}, contentType, nil
	}

	// Callers cap the body size before it reaches the service.
	data, err := io.ReadAll(io.MultiReader(bytes.NewReader(head), p.Body))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read photo: %w", err)
	}

	return &Photo{
		Filename: p.Filename,
		Size:     int64(len(data)),
		Body:     bytes.NewReader(data),
	}, contentType, nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"example.com/edunotes/internal/notes"
	"example.com/edunotes/internal/stringsx"
)

// NoteRepo is the persistence the service needs; notes.Repository satisfies it.
type NoteRepo interface {
	Create(ctx context.Context, n notes.Note) (notes.Note, error)
	Get(ctx context.Context, id string) (notes.Note, error)
	Update(ctx context.Context, id string, p notes.UpdateNoteRequest, at time.Time) (notes.Note, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f notes.Filter) (notes.Page, error)
	Subjects(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) ([]notes.SubjectCount, error)
}

// Service normalises and validates note input before it reaches storage.
// It implements notes.Store.
type Service struct {
	repo NoteRepo

	now   func() time.Time
	newID func() string
}

func New(repo NoteRepo) *Service {
	return &Service{
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		newID: func() string { return uuid.NewString() },
	}
}

var errRequired = fmt.Errorf("%w: title and content are required", notes.ErrInvalidInput)

// Create trims every field, rejects a blank title or content and falls back
// to the default subject.
func (s *Service) Create(ctx context.Context, req notes.CreateNoteRequest) (notes.Note, error) {
	if stringsx.IsEmpty(req.Title) || stringsx.IsEmpty(req.Content) {
		return notes.Note{}, errRequired
	}

	now := s.now()
	return s.repo.Create(ctx, notes.Note{
		ID:        s.newID(),
		Title:     strings.TrimSpace(req.Title),
		Content:   strings.TrimSpace(req.Content),
		Subject:   stringsx.OrDefault(req.Subject, notes.DefaultSubject),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) Get(ctx context.Context, id string) (notes.Note, error) {
	return s.repo.Get(ctx, id)
}

// Update applies a partial change. Supplied title and content must stay
// non-blank; a blank subject resets to the default.
func (s *Service) Update(ctx context.Context, id string, req notes.UpdateNoteRequest) (notes.Note, error) {
	if req.Empty() {
		return s.repo.Get(ctx, id)
	}

	if req.Title != nil {
		v := strings.TrimSpace(*req.Title)
		if v == "" {
			return notes.Note{}, errRequired
		}
		req.Title = &v
	}
	if req.Content != nil {
		v := strings.TrimSpace(*req.Content)
		if v == "" {
			return notes.Note{}, errRequired
		}
		req.Content = &v
	}
	if req.Subject != nil {
		v := stringsx.OrDefault(*req.Subject, notes.DefaultSubject)
		req.Subject = &v
	}

	return s.repo.Update(ctx, id, req, s.now())
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f notes.Filter) (notes.Page, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) Subjects(ctx context.Context) ([]string, error) {
	return s.repo.Subjects(ctx)
}

func (s *Service) Stats(ctx context.Context) ([]notes.SubjectCount, error) {
	return s.repo.Stats(ctx)
}

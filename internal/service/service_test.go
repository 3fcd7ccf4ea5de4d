package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/edunotes/internal/notes"
)

type stubRepo struct {
	createFn   func(context.Context, notes.Note) (notes.Note, error)
	getFn      func(context.Context, string) (notes.Note, error)
	updateFn   func(context.Context, string, notes.UpdateNoteRequest, time.Time) (notes.Note, error)
	deleteFn   func(context.Context, string) error
	listFn     func(context.Context, notes.Filter) (notes.Page, error)
	subjectsFn func(context.Context) ([]string, error)
	statsFn    func(context.Context) ([]notes.SubjectCount, error)
}

func (s stubRepo) Create(ctx context.Context, n notes.Note) (notes.Note, error) {
	return s.createFn(ctx, n)
}
func (s stubRepo) Get(ctx context.Context, id string) (notes.Note, error) { return s.getFn(ctx, id) }
func (s stubRepo) Update(ctx context.Context, id string, p notes.UpdateNoteRequest, at time.Time) (notes.Note, error) {
	return s.updateFn(ctx, id, p, at)
}
func (s stubRepo) Delete(ctx context.Context, id string) error { return s.deleteFn(ctx, id) }
func (s stubRepo) List(ctx context.Context, f notes.Filter) (notes.Page, error) {
	return s.listFn(ctx, f)
}
func (s stubRepo) Subjects(ctx context.Context) ([]string, error) { return s.subjectsFn(ctx) }
func (s stubRepo) Stats(ctx context.Context) ([]notes.SubjectCount, error) {
	return s.statsFn(ctx)
}

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestService(repo NoteRepo) *Service {
	svc := New(repo)
	svc.now = func() time.Time { return fixedNow }
	svc.newID = func() string { return "6f1c2a52-9a43-4c3e-8a6e-0d1f6b1f0c11" }
	return svc
}

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

func TestService_Create(t *testing.T) {
	t.Run("blank title or content is rejected without persisting", func(t *testing.T) {
		svc := newTestService(stubRepo{
			createFn: func(context.Context, notes.Note) (notes.Note, error) {
				t.Fatal("repository must not be called")
				return notes.Note{}, nil
			},
		})

		for _, req := range []notes.CreateNoteRequest{
			{Title: "", Content: "x"},
			{Title: "x", Content: ""},
			{Title: "   ", Content: "x"},
			{Title: "x", Content: "\n\t "},
		} {
			_, err := svc.Create(context.Background(), req)
			require.ErrorIs(t, err, notes.ErrInvalidInput)
		}
	})

	t.Run("trims fields and defaults subject", func(t *testing.T) {
		var stored notes.Note
		svc := newTestService(stubRepo{
			createFn: func(_ context.Context, n notes.Note) (notes.Note, error) {
				stored = n
				return n, nil
			},
		})

		n, err := svc.Create(context.Background(), notes.CreateNoteRequest{Title: " A ", Content: " B ", Subject: "   "})
		require.NoError(t, err)
		require.Equal(t, "A", stored.Title)
		require.Equal(t, "B", stored.Content)
		require.Equal(t, notes.DefaultSubject, stored.Subject)
		require.False(t, stored.Archived)
		require.Equal(t, fixedNow, stored.CreatedAt)
		require.Equal(t, fixedNow, stored.UpdatedAt)
		require.Equal(t, "6f1c2a52-9a43-4c3e-8a6e-0d1f6b1f0c11", n.ID)
	})

	t.Run("keeps a given subject", func(t *testing.T) {
		svc := newTestService(stubRepo{
			createFn: func(_ context.Context, n notes.Note) (notes.Note, error) { return n, nil },
		})
		n, err := svc.Create(context.Background(), notes.CreateNoteRequest{Title: "A", Content: "B", Subject: " Math "})
		require.NoError(t, err)
		require.Equal(t, "Math", n.Subject)
	})

	t.Run("repo error is returned", func(t *testing.T) {
		boom := errors.New("boom")
		svc := newTestService(stubRepo{
			createFn: func(context.Context, notes.Note) (notes.Note, error) { return notes.Note{}, boom },
		})
		_, err := svc.Create(context.Background(), notes.CreateNoteRequest{Title: "A", Content: "B"})
		require.ErrorIs(t, err, boom)
	})
}

func TestService_New_GeneratesIDsAndUTCTime(t *testing.T) {
	svc := New(stubRepo{
		createFn: func(_ context.Context, n notes.Note) (notes.Note, error) { return n, nil },
	})

	a, err := svc.Create(context.Background(), notes.CreateNoteRequest{Title: "A", Content: "B"})
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), notes.CreateNoteRequest{Title: "A", Content: "B"})
	require.NoError(t, err)

	require.NotEqual(t, a.ID, b.ID)
	require.Len(t, a.ID, 36)
	require.Equal(t, time.UTC, a.CreatedAt.Location())
}

func TestService_Update(t *testing.T) {
	const id = "6f1c2a52-9a43-4c3e-8a6e-0d1f6b1f0c11"

	t.Run("empty patch returns current note", func(t *testing.T) {
		current := notes.Note{ID: id, Title: "t"}
		svc := newTestService(stubRepo{
			getFn: func(_ context.Context, got string) (notes.Note, error) {
				require.Equal(t, id, got)
				return current, nil
			},
			updateFn: func(context.Context, string, notes.UpdateNoteRequest, time.Time) (notes.Note, error) {
				t.Fatal("update must not be called")
				return notes.Note{}, nil
			},
		})
		n, err := svc.Update(context.Background(), id, notes.UpdateNoteRequest{})
		require.NoError(t, err)
		require.Equal(t, current, n)
	})

	t.Run("blank title or content is rejected", func(t *testing.T) {
		svc := newTestService(stubRepo{})
		_, err := svc.Update(context.Background(), id, notes.UpdateNoteRequest{Title: strp("  ")})
		require.ErrorIs(t, err, notes.ErrInvalidInput)
		_, err = svc.Update(context.Background(), id, notes.UpdateNoteRequest{Content: strp("")})
		require.ErrorIs(t, err, notes.ErrInvalidInput)
	})

	t.Run("normalises supplied fields only", func(t *testing.T) {
		svc := newTestService(stubRepo{
			updateFn: func(_ context.Context, got string, p notes.UpdateNoteRequest, at time.Time) (notes.Note, error) {
				require.Equal(t, id, got)
				require.Equal(t, "T", *p.Title)
				require.Nil(t, p.Content)
				require.Equal(t, notes.DefaultSubject, *p.Subject)
				require.True(t, *p.Archived)
				require.Equal(t, fixedNow, at)
				return notes.Note{ID: id, Title: "T", Subject: notes.DefaultSubject, Archived: true}, nil
			},
		})
		n, err := svc.Update(context.Background(), id, notes.UpdateNoteRequest{
			Title:    strp(" T "),
			Subject:  strp(" "),
			Archived: boolp(true),
		})
		require.NoError(t, err)
		require.True(t, n.Archived)
	})

	t.Run("not found passes through", func(t *testing.T) {
		svc := newTestService(stubRepo{
			updateFn: func(context.Context, string, notes.UpdateNoteRequest, time.Time) (notes.Note, error) {
				return notes.Note{}, notes.ErrNotFound
			},
		})
		_, err := svc.Update(context.Background(), id, notes.UpdateNoteRequest{Archived: boolp(false)})
		require.ErrorIs(t, err, notes.ErrNotFound)
	})
}

func TestService_PassThroughReads(t *testing.T) {
	svc := newTestService(stubRepo{
		listFn: func(_ context.Context, f notes.Filter) (notes.Page, error) {
			require.Equal(t, "math", f.Subject)
			return notes.Page{Page: 1, Limit: 10, Total: 0, Items: []notes.Note{}}, nil
		},
		subjectsFn: func(context.Context) ([]string, error) { return []string{"Math"}, nil },
		statsFn: func(context.Context) ([]notes.SubjectCount, error) {
			return []notes.SubjectCount{{Subject: "Math", Count: 1}}, nil
		},
		deleteFn: func(context.Context, string) error { return notes.ErrNotFound },
	})

	p, err := svc.List(context.Background(), notes.Filter{Subject: "math"})
	require.NoError(t, err)
	require.Equal(t, 0, p.Total)

	subjects, err := svc.Subjects(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Math"}, subjects)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, []notes.SubjectCount{{Subject: "Math", Count: 1}}, stats)

	require.ErrorIs(t, svc.Delete(context.Background(), "x"), notes.ErrNotFound)
}

package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"example.com/edunotes/internal/db"
	"example.com/edunotes/internal/mathx"
)

type Repository struct {
	db      *sql.DB
	dialect db.Dialect

	stmtGet    *sql.Stmt
	stmtInsert *sql.Stmt
	stmtUpdate *sql.Stmt
	stmtDelete *sql.Stmt
}

func NewRepository(ctx context.Context, conn *sql.DB, dialect db.Dialect) (*Repository, error) {
	r := &Repository{db: conn, dialect: dialect}

	prepare := func(query string) (*sql.Stmt, error) {
		return conn.PrepareContext(ctx, dialect.Rebind(query))
	}

	var err error
	if r.stmtGet, err = prepare(`
		SELECT ` + noteCols + `
		FROM notes
		WHERE id = ?
	`); err != nil {
		return nil, fmt.Errorf("prepare get: %w", err)
	}

	if r.stmtInsert, err = prepare(`
		INSERT INTO notes (` + noteCols + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`); err != nil {
		r.Close()
		return nil, fmt.Errorf("prepare insert: %w", err)
	}

	// Nil arguments keep the stored value.
	if r.stmtUpdate, err = prepare(`
		UPDATE notes
		SET title = COALESCE(?, title),
		    content = COALESCE(?, content),
		    subject = COALESCE(?, subject),
		    archived = COALESCE(?, archived),
		    updated_at = ?
		WHERE id = ?
	`); err != nil {
		r.Close()
		return nil, fmt.Errorf("prepare update: %w", err)
	}

	if r.stmtDelete, err = prepare(`DELETE FROM notes WHERE id = ?`); err != nil {
		r.Close()
		return nil, fmt.Errorf("prepare delete: %w", err)
	}

	return r, nil
}

func (r *Repository) Close() error {
	var errs []error
	for _, s := range []*sql.Stmt{r.stmtGet, r.stmtInsert, r.stmtUpdate, r.stmtDelete} {
		if s != nil {
			errs = append(errs, s.Close())
		}
	}
	return errors.Join(errs...)
}

// Create stores n as given; the caller assigns the id and timestamps.
func (r *Repository) Create(ctx context.Context, n Note) (Note, error) {
	_, err := r.stmtInsert.ExecContext(ctx,
		n.ID, n.Title, n.Content, n.Subject, n.Archived, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return Note{}, fmt.Errorf("insert note: %w", err)
	}
	return n, nil
}

func (r *Repository) Get(ctx context.Context, id string) (Note, error) {
	n, err := scanNote(r.stmtGet.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, ErrNotFound
	}
	if err != nil {
		return Note{}, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

// Update applies the non-nil fields of p and stamps updated_at with at.
func (r *Repository) Update(ctx context.Context, id string, p UpdateNoteRequest, at time.Time) (Note, error) {
	res, err := r.stmtUpdate.ExecContext(ctx, p.Title, p.Content, p.Subject, p.Archived, at, id)
	if err != nil {
		return Note{}, fmt.Errorf("update note: %w", err)
	}
	a, err := res.RowsAffected()
	if err != nil {
		return Note{}, fmt.Errorf("update note: %w", err)
	}
	if a == 0 {
		return Note{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.stmtDelete.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	a, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if a == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of notes matching f, newest first, together with
// the total number of matches. Count and fetch run concurrently and are not
// taken from a single snapshot.
func (r *Repository) List(ctx context.Context, f Filter) (Page, error) {
	f = f.normalized()
	q := buildListQuery(r.dialect, f)

	var (
		items []Note
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := r.db.QueryContext(gctx, q.Select, q.SelectArgs...)
		if err != nil {
			return fmt.Errorf("select: %w", err)
		}
		defer rows.Close()
		items, err = scanNotes(rows)
		return err
	})
	g.Go(func() error {
		if err := r.db.QueryRowContext(gctx, q.Count, q.CountArgs...).Scan(&total); err != nil {
			return fmt.Errorf("count: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Page{}, fmt.Errorf("list notes: %w", err)
	}

	return Page{
		Items: items,
		Page:  f.Page,
		Limit: f.Limit,
		Total: total,
		Pages: mathx.CeilDiv(total, f.Limit),
	}, nil
}

// Subjects returns the distinct subjects in byte order.
func (r *Repository) Subjects(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT subject
		FROM notes
		GROUP BY subject
		ORDER BY subject`+r.dialect.ByteOrder())
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0, 16)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Stats counts notes per subject, ordered like Subjects.
func (r *Repository) Stats(ctx context.Context) ([]SubjectCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT subject, COUNT(*)
		FROM notes
		GROUP BY subject
		ORDER BY subject`+r.dialect.ByteOrder())
	if err != nil {
		return nil, fmt.Errorf("subject stats: %w", err)
	}
	defer rows.Close()

	out := make([]SubjectCount, 0, 16)
	for rows.Next() {
		var sc SubjectCount
		if err := rows.Scan(&sc.Subject, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func scanNote(scanner interface{ Scan(...any) error }) (Note, error) {
	var n Note
	err := scanner.Scan(&n.ID, &n.Title, &n.Content, &n.Subject, &n.Archived, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return Note{}, err
	}
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = n.UpdatedAt.UTC()
	return n, nil
}

func scanNotes(rows *sql.Rows) ([]Note, error) {
	out := make([]Note, 0, 32)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

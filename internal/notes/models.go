package notes

import (
	"errors"
	"time"
)

// DefaultSubject is stored when a note is created without a subject.
const DefaultSubject = "General"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Note struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Subject   string    `json:"subject"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Subject string `json:"subject"`
}

// UpdateNoteRequest is a partial update; nil fields are left unchanged.
type UpdateNoteRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Subject  *string `json:"subject,omitempty"`
	Archived *bool   `json:"archived,omitempty"`
}

func (u UpdateNoteRequest) Empty() bool {
	return u.Title == nil && u.Content == nil && u.Subject == nil && u.Archived == nil
}

// Page is the paginated list envelope.
type Page struct {
	Items []Note `json:"items"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Total int    `json:"total"`
	Pages int    `json:"pages"`
}

type SubjectCount struct {
	Subject string `json:"_id"`
	Count   int    `json:"count"`
}

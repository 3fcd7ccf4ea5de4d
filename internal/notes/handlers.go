package notes

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type Handlers struct {
	store Store
	db    Pinger
	log   *slog.Logger
}

// Store is what the HTTP layer needs from the note service.
// It allows unit-testing handlers without a real database.
type Store interface {
	Create(ctx context.Context, req CreateNoteRequest) (Note, error)
	Get(ctx context.Context, id string) (Note, error)
	Update(ctx context.Context, id string, req UpdateNoteRequest) (Note, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) (Page, error)
	Subjects(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) ([]SubjectCount, error)
}

// Pinger reports database liveness; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

func NewHandlers(store Store, db Pinger, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{store: store, db: db, log: logger}
}

// Routes builds the router. Extra middleware runs after request id and
// real-ip resolution and before panic recovery.
func (h *Handlers) Routes(mw ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	r.Use(mw...)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/api/notes", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/stats", h.stats)
		r.Get("/subjects", h.subjects)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.get)
			r.Put("/", h.update)
			r.Delete("/", h.delete)
		})
	})

	return r
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.log.WarnContext(r.Context(), "health check failed", "err", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) list(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFilter(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page, err := h.store.List(r.Context(), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if page.Items == nil {
		page.Items = []Note{}
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json")
		return
	}

	n, err := h.store.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (h *Handlers) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if stats == nil {
		stats = []SubjectCount{}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) subjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.store.Subjects(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if subjects == nil {
		subjects = []string{}
	}
	writeJSON(w, http.StatusOK, subjects)
}

func (h *Handlers) get(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	n, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *Handlers) update(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json")
		return
	}

	n, err := h.store.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *Handlers) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// noteID reads the {id} path parameter in canonical form.
func noteID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return "", false
	}
	return id.String(), true
}

// fail maps err onto a status code. Unexpected errors are logged and
// reported without detail.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

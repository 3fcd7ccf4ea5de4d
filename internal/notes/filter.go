package notes

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

const dateLayout = "2006-01-02"

// Filter is the typed form of the list query string.
type Filter struct {
	Page    int
	Limit   int
	Subject string
	// Archived is nil when the list is not filtered on the flag.
	Archived *bool
	// From and To bound created_at; both days are inclusive.
	From *time.Time
	To   *time.Time
}

// ParseFilter validates list query parameters. Malformed numbers and dates
// are rejected with ErrInvalidInput; an archived value other than "true" or
// "false" is ignored.
func ParseFilter(q url.Values) (Filter, error) {
	f := Filter{Page: DefaultPage, Limit: DefaultLimit}

	var err error
	if f.Page, err = positiveInt(q.Get("page"), DefaultPage); err != nil {
		return Filter{}, fmt.Errorf("%w: page %v", ErrInvalidInput, err)
	}
	if f.Limit, err = positiveInt(q.Get("limit"), DefaultLimit); err != nil {
		return Filter{}, fmt.Errorf("%w: limit %v", ErrInvalidInput, err)
	}

	f.Subject = strings.TrimSpace(q.Get("subject"))

	switch q.Get("archived") {
	case "true":
		v := true
		f.Archived = &v
	case "false":
		v := false
		f.Archived = &v
	}

	if f.From, err = parseDate(q.Get("from")); err != nil {
		return Filter{}, fmt.Errorf("%w: from %v", ErrInvalidInput, err)
	}
	if f.To, err = parseDate(q.Get("to")); err != nil {
		return Filter{}, fmt.Errorf("%w: to %v", ErrInvalidInput, err)
	}

	return f, nil
}

// normalized fills in defaults for zero values so a hand-built Filter
// behaves like a parsed one.
func (f Filter) normalized() Filter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	return f
}

func positiveInt(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("must be an integer")
	}
	if v < 1 {
		return 0, fmt.Errorf("must be positive")
	}
	return v, nil
}

// parseDate accepts a calendar date (UTC midnight) or an RFC 3339 timestamp.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("must be a date like 2006-01-02")
	}
	t = t.UTC()
	return &t, nil
}

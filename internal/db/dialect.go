package db

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects the SQL flavour spoken by the configured store.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", s)
	}
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

// Rebind rewrites ? placeholders into the dialect's bind syntax.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// ILike is the case-insensitive pattern operator. On SQLite it is only
// case-insensitive when both sides go through Fold.
func (d Dialect) ILike() string {
	if d == Postgres {
		return "ILIKE"
	}
	return "LIKE"
}

// Fold wraps a SQL expression so that comparisons ignore Unicode case.
// PostgreSQL's ILIKE does this itself.
func (d Dialect) Fold(expr string) string {
	if d == Postgres {
		return expr
	}
	return foldFunc + "(" + expr + ")"
}

// ByteOrder returns the collation suffix that sorts text by byte value.
func (d Dialect) ByteOrder() string {
	if d == Postgres {
		return ` COLLATE "C"`
	}
	return ""
}

func (d Dialect) gooseDialect() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite3"
}

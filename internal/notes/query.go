package notes

import (
	"strings"

	"example.com/edunotes/internal/db"
	"example.com/edunotes/internal/mathx"
	"example.com/edunotes/internal/stringsx"
)

const noteCols = `id, title, content, subject, archived, created_at, updated_at`

// listQuery holds the SQL for one page of notes and for the matching total.
type listQuery struct {
	Select     string
	SelectArgs []any
	Count      string
	CountArgs  []any
}

// where renders the filter as a WHERE clause with ? placeholders.
// The end of the date range is exclusive at midnight after To.
func where(d db.Dialect, f Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if f.Subject != "" {
		conds = append(conds, d.Fold("subject")+" "+d.ILike()+" "+d.Fold("?")+` ESCAPE '\'`)
		args = append(args, "%"+stringsx.EscapeLike(f.Subject)+"%")
	}
	if f.Archived != nil {
		conds = append(conds, `archived = ?`)
		args = append(args, *f.Archived)
	}
	if f.From != nil {
		conds = append(conds, `created_at >= ?`)
		args = append(args, f.From.UTC())
	}
	if f.To != nil {
		conds = append(conds, `created_at < ?`)
		args = append(args, f.To.UTC().AddDate(0, 0, 1))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func buildListQuery(d db.Dialect, f Filter) listQuery {
	f = f.normalized()
	clause, args := where(d, f)

	sel := `SELECT ` + noteCols + ` FROM notes` + clause +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

	selArgs := make([]any, 0, len(args)+2)
	selArgs = append(selArgs, args...)
	selArgs = append(selArgs, f.Limit, mathx.Offset(f.Page, f.Limit))

	return listQuery{
		Select:     d.Rebind(sel),
		SelectArgs: selArgs,
		Count:      d.Rebind(`SELECT COUNT(*) FROM notes` + clause),
		CountArgs:  args,
	}
}

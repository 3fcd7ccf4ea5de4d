package stringsx

import "strings"

// Normalize trims spaces and converts a string to lower case.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsEmpty reports whether s is empty after trimming spaces.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// OrDefault returns s trimmed, or def when that leaves nothing.
func OrDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes the LIKE wildcards in s using backslash,
// so the result matches literally under ESCAPE '\'.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// SplitList splits a comma separated list, dropping blank items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

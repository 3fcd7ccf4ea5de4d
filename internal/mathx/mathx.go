// Package mathx holds the small integer arithmetic used for pagination.
package mathx

// Offset returns how many rows precede a 1-based page of the given size.
// Pages below 1 are treated as the first page.
func Offset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	return (page - 1) * limit
}

// CeilDiv returns ceil(a / b). It returns 0 when b is not positive.
func CeilDiv(a, b int) int {
	if b <= 0 || a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

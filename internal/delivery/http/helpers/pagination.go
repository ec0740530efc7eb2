package helpers

import (
	"net/http"
	"strconv"
)

// ParsePageIndex reads the zero-based page_index query parameter. Invalid or
// missing values fall back to 0; the roster page size itself is fixed.
func ParsePageIndex(r *http.Request) int {
	if s := r.URL.Query().Get("page_index"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			return v
		}
	}
	return 0
}

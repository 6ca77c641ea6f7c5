package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 500
)

var (
	cronStatuses   = []string{"success", "error", "warning"}
	iconTypes      = []string{"coming_soon", "available", "default"}
	itemTypes      = []string{"calendar_event", "action_item", "both"}
	itemPriorities = []string{"low", "medium", "high"}
	itemStatuses   = []string{"pending", "completed", "cancelled"}
)

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func enumError(field string, allowed []string) string {
	return fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", "))
}

type pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

// clampPage parses limit/offset query params. Limit defaults to 100 and is
// clamped to 1..500; offset is never negative.
func clampPage(r *http.Request) (limit, offset int) {
	limit = defaultPageLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}

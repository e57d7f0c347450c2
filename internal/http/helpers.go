package http

import (
	"errors"
	"net/http"
	"strings"

	"fintrack/internal/services"
)

// sanitizeInput removes control characters except tab and newlines, then trims.
func sanitizeInput(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// statusForError maps service failure kinds to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrPersist), errors.Is(err, services.ErrLoad):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

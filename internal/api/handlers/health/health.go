// Package health serves the liveness endpoint.
package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/5w1tchy/course-library-api/internal/api/httpx"
)

// Check reports whether one dependency is usable.
type Check func(ctx context.Context) error

type Handler struct {
	Checks  map[string]Check
	Timeout time.Duration
}

type report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ServeHTTP runs every check under one timeout. Any failure turns the
// response into a 503.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	rep := report{Status: "ok"}
	status := http.StatusOK
	for _, name := range names {
		if rep.Checks == nil {
			rep.Checks = make(map[string]string, len(names))
		}
		if err := h.Checks[name](ctx); err != nil {
			rep.Checks[name] = err.Error()
			rep.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		rep.Checks[name] = "ok"
	}
	httpx.WriteJSON(w, status, rep)
}

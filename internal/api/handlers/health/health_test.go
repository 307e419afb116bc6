package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/5w1tchy/course-library-api/internal/api/handlers/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: connection refused") }

	cases := []struct {
		name   string
		checks map[string]health.Check
		code   int
		status string
	}{
		{"no checks", nil, http.StatusOK, "ok"},
		{"all up", map[string]health.Check{"postgres": ok, "redis": ok}, http.StatusOK, "ok"},
		{"redis down", map[string]health.Check{"postgres": ok, "redis": down}, http.StatusServiceUnavailable, "unavailable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			health.Handler{Checks: tc.checks}.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))

			assert.Equal(t, tc.code, rr.Code)
			var body struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tc.status, body.Status)
			assert.Len(t, body.Checks, len(tc.checks))
		})
	}
}

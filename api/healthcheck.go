package api

import (
	"net/http"
	"time"
)

// healthCheckHandler reports the build version, the uptime and how many
// evaluations this process served.
func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJson(w, http.StatusOK, apiResponse{ //nolint:errcheck
		Success: true,
		Message: "OK",
		Data: map[string]any{
			"version":        Version,
			"uptime_seconds": int64(time.Since(s.startedAt) / time.Second),
			"evaluations": map[string]int64{
				"total":  s.evals.Load(),
				"failed": s.faults.Load(),
			},
		},
	}, nil)
}

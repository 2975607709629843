package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

type healthResponse struct {
	Checks map[string]checkResult `json:"checks,omitempty"`
	Status string                 `json:"status"`
}

type checkResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// liveness reports that the process is serving requests.
func liveness(w http.ResponseWriter, r *http.Request) {
	writeHealth(w, r, http.StatusOK, healthResponse{Status: statusHealthy})
}

// readiness runs every check in parallel under one timeout and answers 503 if
// any of them fails.
func (a *api) readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), a.opts.checkTimeout)
	defer cancel()

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		resp = healthResponse{Status: statusHealthy, Checks: make(map[string]checkResult, len(a.opts.checks))}
	)
	for name, check := range a.opts.checks {
		wg.Go(func() {
			res := checkResult{Status: statusHealthy}
			if err := check(ctx); err != nil {
				res = checkResult{Status: statusUnhealthy, Error: err.Error()}
				a.opts.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			defer mu.Unlock()
			resp.Checks[name] = res
			if res.Status == statusUnhealthy {
				resp.Status = statusUnhealthy
			}
		})
	}
	wg.Wait()

	code := http.StatusOK
	if resp.Status == statusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	writeHealth(w, r, code, resp)
}

func writeHealth(w http.ResponseWriter, r *http.Request, code int, resp healthResponse) {
	if wantsJSON(r) {
		writeJSON(w, code, resp)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	if code == http.StatusOK {
		_, _ = w.Write([]byte("OK"))
		return
	}
	_, _ = w.Write([]byte("Service Unavailable"))
}

func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/thisisjab/exprzilla/fault"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

func (s *Server) requestLoggerMiddleware(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info("handled request", "method", r.Method, "path", r.RequestURI, "remote-addr", r.RemoteAddr, "status", rec.status, "elapsed", time.Since(start))
	}

	return http.HandlerFunc(fn)
}

// corsMiddleware lets trusted browser origins call the JSON endpoints.
// Preflight requests from those origins are answered here.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Add("Vary", "Origin")
		h.Add("Vary", "Access-Control-Request-Method")

		origin := r.Header.Get("Origin")
		if origin == "" || !slices.Contains(s.cfg.CORS.TrustedOrigins, origin) {
			next.ServeHTTP(w, r)
			return
		}

		h.Set("Access-Control-Allow-Origin", origin)

		isPreflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
		if !isPreflight {
			next.ServeHTTP(w, r)
			return
		}

		h.Set("Access-Control-Allow-Methods", "OPTIONS, GET, POST")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusOK)
	})
}

// recoverPanicMiddleware turns a panic in a handler into an internal fault
// carrying the route, so the client still gets a JSON 500.
func (s *Server) recoverPanicMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			w.Header().Set("Connection", "close")
			s.internalServerError(w, r, fault.Newf(fault.InternalCode, "panic while serving %s %s: %v", r.Method, r.URL.Path, rec))
		}()
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// responseRecorder is a custom ResponseWriter that holds back plain text
// error bodies so they can be re-sent as JSON
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	captured   bool
	body       strings.Builder
}

func isJSON(h http.Header) bool {
	return strings.HasPrefix(h.Get("Content-Type"), "application/json")
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	if statusCode >= 400 && !isJSON(r.Header()) {
		r.captured = true
		r.Header().Set("Content-Type", "application/json")
		r.Header().Del("Content-Length")
		r.Header().Del("X-Content-Type-Options")
	}
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.captured {
		return r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

// ErrorHandler turns panics and plain text error responses into JSON
// error bodies.
func ErrorHandler(logger *zap.Logger, next http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic while serving request",
					zap.Any("panic", err), zap.String("path", r.URL.Path))
				rec.Header().Set("Content-Type", "application/json")
				rec.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal Server Error"})
				return
			}
			if rec.captured {
				json.NewEncoder(w).Encode(ErrorResponse{Error: strings.TrimSpace(rec.body.String())})
			}
		}()

		next.ServeHTTP(rec, r)
	})
}

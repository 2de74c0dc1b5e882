package middleware

import (
	"net/http"
	"time"

	"travel-booking/pkg/utils"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// Logger writes one access log line per request. Server errors log at
// Error and client errors at Warn.
func Logger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			level := zapcore.InfoLevel
			switch {
			case rw.statusCode >= http.StatusInternalServerError:
				level = zapcore.ErrorLevel
			case rw.statusCode >= http.StatusBadRequest:
				level = zapcore.WarnLevel
			}

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", rw.statusCode),
				zap.Int("bytes", rw.bytesWritten),
				zap.Duration("duration", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
			}
			if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
				fields = append(fields, zap.String("user_id", userID.String()))
			}

			logger.Log(level, "HTTP request", fields...)
		})
	}
}

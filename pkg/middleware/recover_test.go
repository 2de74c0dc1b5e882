package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecover(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	handler := Recover(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/hotels", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Status)
	assert.Equal(t, 1, logs.FilterMessage("PANIC recovered").Len())
}

func TestLogger_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		code  int
		level zapcore.Level
	}{
		{http.StatusOK, zapcore.InfoLevel},
		{http.StatusNotFound, zapcore.WarnLevel},
		{http.StatusServiceUnavailable, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		core, logs := observer.New(zapcore.DebugLevel)
		userID := uuid.New()
		handler := Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.code)
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/hotels?city=lisbon", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), userID, "user"))
		handler.ServeHTTP(httptest.NewRecorder(), req)

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, tt.level, entries[0].Level)
		fields := entries[0].ContextMap()
		assert.Equal(t, int64(tt.code), fields["status"])
		assert.Equal(t, "city=lisbon", fields["query"])
		assert.Equal(t, userID.String(), fields["user_id"])
	}
}

func TestCORS_Preflight(t *testing.T) {
	handler := CORS()(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/hotel-bookings", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/happythoughts/apiserver/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureLevel(t *testing.T) {
	var buf bytes.Buffer

	Configure(&buf, config.LogConfig{Level: "WARN", Format: "json"})
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	Configure(&buf, config.LogConfig{Level: "nonsense", Format: "json"})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, config.LogConfig{Level: "info", Format: "json"})

	handler := middleware.RequestID(RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false}`))
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/thoughts?category=sad", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/thoughts", entry["path"])
	assert.EqualValues(t, 404, entry["status"])
	assert.EqualValues(t, len(`{"success":false}`), entry["bytes"])
	assert.NotEmpty(t, entry["request_id"])
}

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/dbostatement/internal/logger"
	"github.com/rs/zerolog"
)

func TestRequestLogger_LevelByStatus(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "ok", status: http.StatusOK, wantLevel: "info"},
		{name: "client error", status: http.StatusUnprocessableEntity, wantLevel: "warn"},
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger.SetOutput(&buf, zerolog.DebugLevel)
			t.Cleanup(logger.Init)

			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(RequestID(), RequestLogger())
			r.GET("/statements/:id", func(c *gin.Context) { c.Status(tc.status) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/statements/42", nil))

			var line map[string]any
			if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
				t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
			}
			if line["level"] != tc.wantLevel {
				t.Fatalf("level=%v want %s", line["level"], tc.wantLevel)
			}
			if line["route"] != "/statements/:id" || line["component"] != "http" {
				t.Fatalf("unexpected fields %v", line)
			}
			if line["request_id"] != w.Header().Get(RequestIDHeader) {
				t.Fatalf("request_id=%v header=%s", line["request_id"], w.Header().Get(RequestIDHeader))
			}
		})
	}
}

func TestRequestLogger_UnmatchedRouteUsesPath(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf, zerolog.DebugLevel)
	t.Cleanup(logger.Init)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if line["route"] != "/missing" || line["status"] != float64(http.StatusNotFound) {
		t.Fatalf("unexpected fields %v", line)
	}
}

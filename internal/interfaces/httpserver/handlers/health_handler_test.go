package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"feasibility-bot/chat-api/internal/interfaces/httpserver/handlers"
)

func TestHealthHandler_Check(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/api/health", handlers.NewHealthHandler("chat-api").Check)

	var previous time.Time
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
		}

		var payload struct {
			Status    string `json:"status"`
			Timestamp string `json:"timestamp"`
			Service   string `json:"service"`
			Version   string `json:"version"`
		}
		if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}

		if payload.Status != "ok" {
			t.Errorf("status = %q, want ok", payload.Status)
		}
		if payload.Service != "chat-api" {
			t.Errorf("service = %q, want chat-api", payload.Service)
		}
		if payload.Version == "" {
			t.Error("version must be set")
		}

		ts, err := time.Parse(time.RFC3339, payload.Timestamp)
		if err != nil {
			t.Fatalf("timestamp %q is not RFC3339: %v", payload.Timestamp, err)
		}
		if ts.Before(previous) {
			t.Errorf("timestamp went backwards: %v < %v", ts, previous)
		}
		previous = ts
	}
}

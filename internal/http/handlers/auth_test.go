package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/torkelwestby/christmas-rebus/internal/auth"
)

func newAuthEngine(t *testing.T) func(*gin.Engine) {
	t.Helper()
	t.Setenv("APP_ADMIN_USERNAME", "torkel")
	t.Setenv("APP_ADMIN_PASSWORD", "hemmelig1")
	t.Setenv("APP_BASIC_USERNAME", "gjest")
	t.Setenv("APP_BASIC_PASSWORD", "hemmelig2")

	log := newTestLogger(t)
	svc, err := auth.NewService(log)
	if err != nil {
		t.Fatalf("auth.NewService: %v", err)
	}
	h := NewAuthHandler(log, svc)
	return func(r *gin.Engine) {
		r.POST("/api/auth/login", h.Login)
	}
}

func TestLoginHandler(t *testing.T) {
	register := newAuthEngine(t)

	tests := []struct {
		name       string
		body       gin.H
		wantStatus int
		wantRole   string
	}{
		{name: "admin", body: gin.H{"username": "torkel", "password": "hemmelig1"}, wantStatus: http.StatusOK, wantRole: "admin"},
		{name: "basic", body: gin.H{"username": "gjest", "password": "hemmelig2"}, wantStatus: http.StatusOK, wantRole: "basic"},
		{name: "wrong password", body: gin.H{"username": "torkel", "password": "feil"}, wantStatus: http.StatusUnauthorized},
		{name: "missing fields", body: gin.H{"username": "torkel"}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, register, http.MethodPost, "/api/auth/login", tt.body)
			requireStatus(t, w, tt.wantStatus)

			body := decodeBody(t, w)
			if tt.wantStatus != http.StatusOK {
				if body["ok"] != false {
					t.Fatalf("body = %v", body)
				}
				return
			}
			if body["ok"] != true || body["role"] != tt.wantRole {
				t.Fatalf("body = %v", body)
			}
			if body["username"] != tt.body["username"] {
				t.Fatalf("username = %v", body["username"])
			}
		})
	}
}

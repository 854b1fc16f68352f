package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/torkelwestby/christmas-rebus/internal/http/handlers"
	"github.com/torkelwestby/christmas-rebus/internal/platform/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRouterHealthcheck(t *testing.T) {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	r := NewRouter(RouterConfig{
		Log:           log,
		HealthHandler: handlers.NewHealthHandler(),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID header")
	}
}

// Nil handlers leave their routes unregistered instead of panicking.
func TestRouterSkipsNilHandlers(t *testing.T) {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	r := NewRouter(RouterConfig{Log: log})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/check-rebus", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

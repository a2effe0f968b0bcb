package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitOnlyThrottlesGenerateGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	groupFor := func(c *gin.Context) string {
		if c.Request.Method == http.MethodPost && strings.HasSuffix(c.FullPath(), "/recommendations") {
			return "GENERATE"
		}
		return ""
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "guest:test-guest")
		c.Next()
	})
	r.Use(RateLimit(RateLimitConfig{
		GroupFor: groupFor,
		Limiter:  limiter,
		Rules: map[string]RateLimitRule{
			"GENERATE": {Rate: 1, Burst: 2},
		},
	}))

	r.POST("/api/v1/decisions/:id/recommendations", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/api/v1/decisions/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/decisions/dec-1/recommendations", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("generate request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/decisions/dec-1/recommendations", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("generate request 3 expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["error"] != "rate_limited" {
		t.Fatal("expected error=rate_limited")
	}

	// Reads are never rate limited.
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/decisions/dec-1", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("read request %d expected 200, got %d", i+1, resp.Code)
		}
	}
}

func TestRateLimitIsPerPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	rule := RateLimitRule{Rate: 1, Burst: 1}
	if allowed, _ := limiter.Allow("user-a|GENERATE", rule); !allowed {
		t.Fatal("first request for user-a should pass")
	}
	if allowed, _ := limiter.Allow("user-a|GENERATE", rule); allowed {
		t.Fatal("second request for user-a should be throttled")
	}
	if allowed, _ := limiter.Allow("user-b|GENERATE", rule); !allowed {
		t.Fatal("user-b has an independent bucket")
	}
}

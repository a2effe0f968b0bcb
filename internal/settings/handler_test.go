package settings

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "guest:test-guest")
		c.Next()
	})
	api := r.Group("/api/v1")
	NewHandler(NewService()).RegisterRoutes(api)
	return r
}

func TestPutProfileRejectsOutOfRangeWeight(t *testing.T) {
	r := setupRouter(t)

	body, _ := json.Marshal(map[string]float64{
		"supportWeight":    1.5,
		"criteriaWeight":   0.3,
		"sentimentWeight":  0.1,
		"historicalWeight": 0.1,
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings/recommendation", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestPutProfileAllowsSumAboveOne(t *testing.T) {
	r := setupRouter(t)

	body, _ := json.Marshal(map[string]float64{
		"supportWeight":    1,
		"criteriaWeight":   1,
		"sentimentWeight":  1,
		"historicalWeight": 1,
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings/recommendation", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for weights summing above 1, got %d: %s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/settings/recommendation", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.SupportWeight != 1 || profile.HistoricalWeight != 1 {
		t.Fatalf("expected stored weights, got %+v", profile)
	}
}

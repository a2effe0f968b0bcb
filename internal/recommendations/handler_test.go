package recommendations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"decision-backend/internal/decisions"
	"decision-backend/internal/settings"
)

func setupRouter(t *testing.T) (*gin.Engine, *Service, *decisions.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	decisionSvc := &decisions.Service{Repo: decisions.NewMemoryRepo()}
	svc := NewService(NewMemoryRepo(), decisionSvc, settings.NewService(), nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "guest:test-guest")
		c.Next()
	})
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return r, svc, decisionSvc
}

func TestGenerateEndpointCreatesRecommendation(t *testing.T) {
	r, _, decisionSvc := setupRouter(t)
	decision := seedDecision(t, decisionSvc, []string{"Lisbon", "Prague"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/decisions/"+decision.ID+"/recommendations", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var rec Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rec.DecisionID != decision.ID {
		t.Fatalf("expected decisionId %q, got %q", decision.ID, rec.DecisionID)
	}
	if rec.RecommendedOptionID == "" {
		t.Fatal("expected a recommended option")
	}
	if len(rec.Details) != 2 {
		t.Fatalf("expected 2 option scores, got %d", len(rec.Details))
	}
}

func TestGenerateEndpointUnknownDecision(t *testing.T) {
	r, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/decisions/missing/recommendations", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "not_found" {
		t.Fatalf("expected not_found code, got %q", body.Error.Code)
	}
}

func TestLatestEndpoint(t *testing.T) {
	r, svc, decisionSvc := setupRouter(t)
	decision := seedDecision(t, decisionSvc, []string{"Build", "Buy"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/decisions/"+decision.ID+"/recommendations/latest", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before any generation, got %d", resp.Code)
	}

	generated, err := svc.Generate(context.Background(), decision.ID, "guest:test-guest")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/decisions/"+decision.ID+"/recommendations/latest", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var rec Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rec.ID != generated.ID {
		t.Fatalf("expected latest %q, got %q", generated.ID, rec.ID)
	}
}

func TestListEndpointNewestFirst(t *testing.T) {
	r, svc, decisionSvc := setupRouter(t)
	decision := seedDecision(t, decisionSvc, []string{"Build", "Buy"})

	ctx := context.Background()
	if _, err := svc.Generate(ctx, decision.ID, "guest:test-guest"); err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	second, err := svc.Generate(ctx, decision.ID, "guest:test-guest")
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/decisions/"+decision.ID+"/recommendations", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var list []Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(list))
	}
	if list[0].ID != second.ID {
		t.Fatalf("expected newest first, got %q", list[0].ID)
	}
}

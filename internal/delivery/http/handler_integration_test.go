package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogarmory/backend/config"
	"github.com/ogarmory/backend/internal/domain"
	"github.com/ogarmory/backend/internal/infrastructure/cache"
	"github.com/ogarmory/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	exitCode := m.Run()

	os.Exit(exitCode)
}

// setupTestRouter creates a test router backed by a real catalog
// service with default rules and an in-memory snapshot store
func setupTestRouter() *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}

	service := usecase.NewCatalogService(usecase.CatalogServiceConfig{
		MaxDisplayImages: 7,
		MatchThreshold:   0.5,
		Rules:            config.DefaultRules(),
	}, cache.NewSnapshotStore(1*time.Minute), nil)

	handler := NewHandler(service)
	if handler == nil {
		panic("setupTestRouter: NewHandler returned nil")
	}

	router := SetupRouter(cfg, handler)
	if router == nil {
		panic("setupTestRouter: SetupRouter returned nil *gin.Engine")
	}

	return router
}

// postJSON marshals the body and issues a POST against the router
func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}

	req, _ := http.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)
	return w
}

// TestHealthCheckEndpoint tests the health check endpoint
func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		router := setupTestRouter()

		req, _ := http.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		if err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if response["status"] != "healthy" {
			t.Errorf("status = %v, want healthy", response["status"])
		}
		if response["service"] != "armory-backend" {
			t.Errorf("service = %v, want armory-backend", response["service"])
		}
		version, ok := response["version"].(string)
		if !ok || strings.TrimSpace(version) == "" {
			t.Errorf("version = %v, want non-empty string", response["version"])
		}
	})
}

// TestBuildCatalogEndpoint tests the catalog build endpoint
func TestBuildCatalogEndpoint(t *testing.T) {
	t.Run("builds a catalog from grouped listings", func(t *testing.T) {
		router := setupTestRouter()

		w := postJSON(t, router, "/api/v1/catalog/build", map[string]interface{}{
			"category": "teeshirt",
			"products": []domain.Listing{
				{
					ProductKey: "rebel_kid",
					Children: map[string][]string{
						"blue":  {"back.jpg", "front.jpg"},
						"black": {"back.jpg"},
					},
				},
			},
		})

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
		}

		var result usecase.BuildResult
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if len(result.Products) != 1 {
			t.Fatalf("Products = %d, want 1", len(result.Products))
		}
		product := result.Products[0]
		if product.Key != "rebel_kid" {
			t.Errorf("Key = %q, want rebel_kid", product.Key)
		}
		if !strings.Contains(product.Title, "Rebel Kid") {
			t.Errorf("Title = %q, want Rebel Kid prefix", product.Title)
		}
		if len(product.Colors) != 2 {
			t.Errorf("Colors = %v, want 2 entries", product.Colors)
		}
		if !strings.Contains(product.Display.Primary, "back") {
			t.Errorf("Primary = %q, want a back image", product.Display.Primary)
		}
	})

	t.Run("rejects a payload without category", func(t *testing.T) {
		router := setupTestRouter()

		w := postJSON(t, router, "/api/v1/catalog/build", map[string]interface{}{
			"products": []domain.Listing{{ProductKey: "rebel_kid"}},
		})

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		router := setupTestRouter()

		req, _ := http.NewRequest("POST", "/api/v1/catalog/build", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("reports unknown category per product", func(t *testing.T) {
		router := setupTestRouter()

		w := postJSON(t, router, "/api/v1/catalog/build", map[string]interface{}{
			"category": "gadgets",
			"products": []domain.Listing{
				{ProductKey: "rebel_kid", Flat: []string{"back.jpg"}},
			},
		})

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var result usecase.BuildResult
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(result.Products) != 0 {
			t.Errorf("Products = %d, want 0", len(result.Products))
		}
		if len(result.Errors) != 1 {
			t.Fatalf("Errors = %d, want 1", len(result.Errors))
		}
		if result.Errors[0].ProductKey != "rebel_kid" {
			t.Errorf("Errors[0].ProductKey = %q", result.Errors[0].ProductKey)
		}
	})
}

// TestReconcileEndpoint tests the catalog reconcile endpoint
func TestReconcileEndpoint(t *testing.T) {
	t.Run("merges a rebuilt batch into the snapshot", func(t *testing.T) {
		router := setupTestRouter()

		build := map[string]interface{}{
			"category": "teeshirt",
			"products": []domain.Listing{
				{ProductKey: "ocean_waves", Flat: []string{"back.jpg", "front.jpg"}},
			},
		}

		// First build seeds the snapshot store
		if w := postJSON(t, router, "/api/v1/catalog/build", build); w.Code != http.StatusOK {
			t.Fatalf("seed build status = %d, body: %s", w.Code, w.Body.String())
		}

		// Same product under a slightly different key should merge, not duplicate
		w := postJSON(t, router, "/api/v1/catalog/reconcile", map[string]interface{}{
			"category": "teeshirt",
			"products": []domain.Listing{
				{ProductKey: "Ocean_Waves-Blue", Flat: []string{"back.jpg", "side.jpg"}},
			},
		})

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
		}

		var result usecase.BuildResult
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(result.Products) != 1 {
			t.Fatalf("Products = %d, want 1 merged product, got %+v", len(result.Products), result.Products)
		}
		if result.Products[0].Key != "ocean_waves" {
			t.Errorf("Key = %q, want the existing key to win", result.Products[0].Key)
		}
	})

	t.Run("rejects a payload without products", func(t *testing.T) {
		router := setupTestRouter()

		w := postJSON(t, router, "/api/v1/catalog/reconcile", map[string]interface{}{
			"category": "teeshirt",
		})

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/printlab/printerm/internal/entity"
	"github.com/printlab/printerm/internal/repository"
	"github.com/printlab/printerm/internal/service"
	"github.com/printlab/printerm/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupHandlerTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	services := service.NewServices(repository.NewRepositories(db), db, zap.NewNop())
	handlers := NewHandlers(services, zap.NewNop())

	router := testutil.SetupRouter()
	RegisterRoutes(router, handlers)
	return db, router
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestPlateCreateEndpoint(t *testing.T) {
	db, router := setupHandlerTest(t)

	user := testutil.SeedUser(t, db, "alice")
	material := testutil.SeedMaterial(t, db, "PLA", 0.05, 1000)
	project := testutil.SeedProject(t, db, user.ID, "RC Car")

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/plates", map[string]interface{}{
		"project_id":  project.ID,
		"material_id": material.ID,
		"grams_used":  120,
		"print_time":  2,
		"price_sold":  12.5,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var remaining entity.Material
	if err := db.First(&remaining, material.ID).Error; err != nil {
		t.Fatalf("Failed to load material: %v", err)
	}
	if remaining.QuantityRemaining != 880 {
		t.Errorf("Expected 880g remaining, got %v", remaining.QuantityRemaining)
	}
}

func TestPlateCreateRejectsMissingFields(t *testing.T) {
	_, router := setupHandlerTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/plates", map[string]interface{}{
		"grams_used": 120,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing ids, got %d", w.Code)
	}
}

func TestPlateQuoteEndpoint(t *testing.T) {
	db, router := setupHandlerTest(t)

	user := testutil.SeedUser(t, db, "alice")
	material := testutil.SeedMaterial(t, db, "PLA", 0.05, 1000)
	project := testutil.SeedProject(t, db, user.ID, "RC Car")
	project.PricingMethod = "markup"
	if err := db.Save(project).Error; err != nil {
		t.Fatalf("Failed to update project: %v", err)
	}

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/plates/quote", map[string]interface{}{
		"project_id":  project.ID,
		"material_id": material.ID,
		"grams_used":  120,
		"print_time":  2,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected data object, got %v", resp["data"])
	}
	if got := data["selling_price"].(float64); got != 9.00 {
		t.Errorf("Expected selling price 9.00, got %v", got)
	}
	if got := data["material_cost"].(float64); got != 6.00 {
		t.Errorf("Expected material cost 6.00, got %v", got)
	}
}

func TestPlateQuoteUnknownMaterial(t *testing.T) {
	db, router := setupHandlerTest(t)

	user := testutil.SeedUser(t, db, "alice")
	project := testutil.SeedProject(t, db, user.ID, "RC Car")

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/plates/quote", map[string]interface{}{
		"project_id":  project.ID,
		"material_id": 9999,
		"grams_used":  120,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown material, got %d", w.Code)
	}
}

func TestPlateListFilters(t *testing.T) {
	db, router := setupHandlerTest(t)

	alice := testutil.SeedUser(t, db, "alice")
	bob := testutil.SeedUser(t, db, "bob")
	material := testutil.SeedMaterial(t, db, "PLA", 0.05, 1000)
	rcCar := testutil.SeedProject(t, db, alice.ID, "RC Car")
	art := testutil.SeedProject(t, db, bob.ID, "Art Sculptures")
	testutil.SeedPlate(t, db, rcCar.ID, material.ID, 100, 1, 10)
	testutil.SeedPlate(t, db, art.ID, material.ID, 50, 1, 5)

	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/plates", nil)
	resp := testutil.ParseResponse(w)
	if rows := resp["data"].([]interface{}); len(rows) != 2 {
		t.Errorf("Expected 2 plates unfiltered, got %d", len(rows))
	}

	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/plates?user_id="+itoa(alice.ID), nil)
	resp = testutil.ParseResponse(w)
	if rows := resp["data"].([]interface{}); len(rows) != 1 {
		t.Errorf("Expected 1 plate for alice, got %d", len(rows))
	}

	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/plates?start=bogus", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad date, got %d", w.Code)
	}
}

func TestMaterialAlertsEndpoint(t *testing.T) {
	db, router := setupHandlerTest(t)

	testutil.SeedMaterial(t, db, "PLA", 0.05, 1000)
	testutil.SeedMaterial(t, db, "PETG", 0.06, 80)
	testutil.SeedMaterial(t, db, "ABS", 0.07, 100) // exactly at the threshold, not low

	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/materials/alerts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	rows := resp["data"].([]interface{})
	if len(rows) != 1 {
		t.Errorf("Expected 1 low-stock material below 100g, got %d", len(rows))
	}
}

func TestSettingsEndpoints(t *testing.T) {
	_, router := setupHandlerTest(t)

	w := testutil.DoRequest(router, http.MethodPut, "/api/v1/settings/cost_model", map[string]string{"value": "max"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, http.MethodPut, "/api/v1/settings/cost_model", map[string]string{"value": "volume"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid cost model, got %d", w.Code)
	}

	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/settings", nil)
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["cost_model"] != "max" {
		t.Errorf("Expected stored cost_model max, got %v", data["cost_model"])
	}
}

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printlab/printerm/internal/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter int64

// SetupTestDB opens an isolated in-memory database and migrates the
// schema. Each test gets its own database that disappears with the
// connection.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.Exec("PRAGMA foreign_keys = ON")

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Material{},
		&entity.Project{},
		&entity.Plate{},
		&entity.Setting{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})

	return db
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a handler.Response-like map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedUser creates a test user
func SeedUser(t *testing.T, db *gorm.DB, name string) *entity.User {
	t.Helper()
	user := &entity.User{Name: name, Email: name + "@test.local"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed test user: %v", err)
	}
	return user
}

// SeedMaterial creates a test material
func SeedMaterial(t *testing.T, db *gorm.DB, name string, costPerGram, quantity float64) *entity.Material {
	t.Helper()
	material := &entity.Material{
		Name:              name,
		Color:             "Black",
		CostPerGram:       costPerGram,
		QuantityRemaining: quantity,
	}
	if err := db.Create(material).Error; err != nil {
		t.Fatalf("Failed to seed test material: %v", err)
	}
	return material
}

// SeedProject creates a test project with default pricing
func SeedProject(t *testing.T, db *gorm.DB, userID uint, name string) *entity.Project {
	t.Helper()
	project := &entity.Project{
		UserID:           userID,
		Name:             name,
		PricingMethod:    "none",
		MarkupPercentage: entity.DefaultMarkupPercentage,
		PricePerGram:     entity.DefaultPricePerGram,
		PricePerHour:     entity.DefaultPricePerHour,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("Failed to seed test project: %v", err)
	}
	return project
}

// SeedPlate creates a test plate dated now
func SeedPlate(t *testing.T, db *gorm.DB, projectID, materialID uint, grams, printTime, priceSold float64) *entity.Plate {
	t.Helper()
	plate := &entity.Plate{
		ProjectID:  projectID,
		MaterialID: materialID,
		GramsUsed:  grams,
		PrintTime:  printTime,
		PriceSold:  priceSold,
		Date:       time.Now(),
	}
	if err := db.Create(plate).Error; err != nil {
		t.Fatalf("Failed to seed test plate: %v", err)
	}
	return plate
}

// SeedSetting stores one setting
func SeedSetting(t *testing.T, db *gorm.DB, key, value string) {
	t.Helper()
	if err := db.Save(&entity.Setting{Key: key, Value: value}).Error; err != nil {
		t.Fatalf("Failed to seed setting: %v", err)
	}
}

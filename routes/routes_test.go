package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"franchises-backend/models"
	"franchises-backend/repositories"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestSetupRoutes mounts the full route table and checks that public reads
// answer while mutations demand credentials.
func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-for-routes")
	defer os.Unsetenv("JWT_SECRET")

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.User{},
		&models.Franchise{},
		&models.Branch{},
		&models.Product{},
		&models.StockMutation{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	r := gin.New()
	SetupRoutes(r, db, repositories.DefaultPageLimits)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/v1/franchises", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected public list to answer 200, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/v1/franchises", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected unauthenticated mutation to answer 401, got %d", w.Code)
	}
}

package repositories

import (
	"context"
	"os"
	"testing"

	"franchises-backend/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	var err error
	testDB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	// Limit to 1 open connection to prevent SQLite concurrent access issues
	// with in-memory databases.
	sqlDB, _ := testDB.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := testDB.AutoMigrate(
		&models.Franchise{},
		&models.Branch{},
		&models.Product{},
		&models.StockMutation{},
	); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	os.Exit(m.Run())
}

// freshDB returns a clean database for each test by deleting all rows.
func freshDB() *gorm.DB {
	testDB.Exec("DELETE FROM stock_mutations")
	testDB.Exec("DELETE FROM products")
	testDB.Exec("DELETE FROM branches")
	testDB.Exec("DELETE FROM franchises")
	return testDB
}

func seedFranchise(t *testing.T, db *gorm.DB, name string) models.Franchise {
	t.Helper()
	f := models.Franchise{Name: name}
	if err := db.Create(&f).Error; err != nil {
		t.Fatalf("failed to seed franchise: %v", err)
	}
	return f
}

func seedBranch(t *testing.T, db *gorm.DB, franchiseID uuid.UUID, name string) models.Branch {
	t.Helper()
	b := models.Branch{FranchiseID: franchiseID, Name: name}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("failed to seed branch: %v", err)
	}
	return b
}

// createProduct goes through the repository so derived keys are computed the
// way production writes compute them.
func createProduct(t *testing.T, repo *ProductRepository, franchiseID, branchID uuid.UUID, name string, stock int) models.Product {
	t.Helper()
	p := models.Product{
		FranchiseID: franchiseID,
		BranchID:    branchID,
		Name:        name,
		Stock:       stock,
	}
	if err := repo.Create(context.Background(), &p); err != nil {
		t.Fatalf("failed to create product %q: %v", name, err)
	}
	return p
}

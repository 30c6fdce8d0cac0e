package handler

import (
	"testing"

	"github.com/bruno-duarte/afinpe-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// a single connection keeps every query on the same :memory: database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Person{},
		&models.User{},
		&models.Color{},
		&models.Icon{},
		&models.Currency{},
		&models.Category{},
		&models.Subcategory{},
		&models.BankAccount{},
		&models.Planning{},
		&models.Budget{},
		&models.Transaction{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

package database

import (
	"fmt"

	"github.com/bruno-duarte/afinpe-api/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Person{},
		&models.User{},
		&models.Color{},
		&models.Icon{},
		&models.Bank{},
		&models.Currency{},
		&models.BankAccount{},
		&models.BankAccountLimit{},
		&models.CreditCardFlag{},
		&models.CreditCard{},
		&models.Invoice{},
		&models.Category{},
		&models.Subcategory{},
		&models.Planning{},
		&models.Budget{},
		&models.Loan{},
		&models.Transaction{},
		&models.Goal{},
		&models.GoalTransaction{},
		&models.Alert{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"homebudget/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestUserID returns a unique user id for the current test.
func TestUserID() string {
	return fmt.Sprintf("user-%d", nextID())
}

// CreateTestTransaction creates a transaction of the given category, amount and date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, typeID uint, amount string, date models.Date) *models.Transaction {
	t.Helper()

	hash := fmt.Sprintf("test-hash-%d", nextID())
	tx := &models.Transaction{
		UserID:      userID,
		TypeID:      typeID,
		Amount:      decimal.RequireFromString(amount),
		Description: fmt.Sprintf("Test transaction %d", nextID()),
		Date:        date,
		ImportHash:  &hash,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget stores an explicit budget for (monthDate, typeID).
func CreateTestBudget(t *testing.T, db *gorm.DB, monthDate models.Date, typeID uint, amount string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		MonthDate: monthDate,
		TypeID:    typeID,
		Amount:    decimal.RequireFromString(amount),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

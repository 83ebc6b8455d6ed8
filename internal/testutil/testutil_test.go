package testutil_test

import (
	"testing"

	"homebudget/internal/errors"
	"homebudget/internal/models"
	"homebudget/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"transaction_types", "budgets", "transactions", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}

	if err := db.Model(&models.TransactionType{}).Count(&count).Error; err != nil {
		t.Fatalf("count transaction types: %v", err)
	}
	if count != int64(len(models.DefaultTransactionTypes())) {
		t.Errorf("expected %d seeded types, got %d", len(models.DefaultTransactionTypes()), count)
	}
}

func TestSetupTestDBIsolation(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestBudget(t, first, "2025-01-01", 1, "100")

	var count int64
	second.Model(&models.Budget{}).Count(&count)
	if count != 0 {
		t.Errorf("expected an empty second database, got %d budgets", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	userID := testutil.TestUserID()
	tx := testutil.CreateTestTransaction(t, db, userID, 1, "12.50", "2025-01-15")
	if tx.ID == "" {
		t.Fatal("transaction should have an ID")
	}
	if tx.Amount.String() != "12.5" {
		t.Errorf("expected amount 12.5, got %s", tx.Amount)
	}
	if tx.UserID != userID {
		t.Errorf("expected user %s, got %s", userID, tx.UserID)
	}

	budget := testutil.CreateTestBudget(t, db, "2025-01-01", 2, "500")
	if budget.Amount.String() != "500" {
		t.Errorf("expected budget amount 500, got %s", budget.Amount)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrTransactionNotFound, "custom message")
	testutil.AssertAppError(t, err, "NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}

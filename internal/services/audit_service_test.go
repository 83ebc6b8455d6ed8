package services

import (
	"testing"

	"homebudget/internal/logger"
	"homebudget/internal/models"
	"homebudget/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	logger.Init("test")
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	svc.Log("u1", ActionUpsertBudget, "budget", "2025-01-01/1", "127.0.0.1", map[string]any{"amount": "100"})

	var entries []models.AuditLog
	if err := db.Find(&entries).Error; err != nil {
		t.Fatalf("failed to read audit log: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.UserID != "u1" || e.Action != ActionUpsertBudget || e.ResourceID != "2025-01-01/1" {
		t.Errorf("unexpected entry %+v", e)
	}
	if e.Changes != `{"amount":"100"}` {
		t.Errorf("unexpected changes %s", e.Changes)
	}
}

package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"homebudget/internal/models"
	"homebudget/internal/progress"
	"homebudget/internal/testutil"
)

func findItem(t *testing.T, report *MonthlyReport, code string) ReportItem {
	t.Helper()
	for _, item := range report.Summary {
		if item.TypeCode == code {
			return item
		}
	}
	t.Fatalf("category %s missing from report", code)
	return ReportItem{}
}

func TestGetMonthlyReport(t *testing.T) {
	ctx := context.Background()

	t.Run("pads_every_category_with_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		report, err := svc.GetMonthlyReport(ctx, "2025-01")
		testutil.AssertNoError(t, err)

		if report.Month != "2025-01" {
			t.Errorf("expected month 2025-01, got %s", report.Month)
		}
		if len(report.Summary) != len(models.DefaultTransactionTypes()) {
			t.Fatalf("expected %d items, got %d", len(models.DefaultTransactionTypes()), len(report.Summary))
		}
		for i, item := range report.Summary {
			if !item.Spend.IsZero() || item.TransactionsCount != 0 || len(item.Shares) != 0 {
				t.Errorf("expected empty item, got %+v", item)
			}
			if !item.Budget.Equal(DefaultBudgetFor(item.TypeCode)) {
				t.Errorf("%s: expected default budget %s, got %s", item.TypeCode, DefaultBudgetFor(item.TypeCode), item.Budget)
			}
			if i > 0 && report.Summary[i-1].TypeID > item.TypeID {
				t.Error("expected items in position order")
			}
		}
		if !findItem(t, report, models.TypeHome).Budget.Equal(decimal.NewFromInt(500)) {
			t.Error("expected HOME default of 500")
		}
	})

	t.Run("warn_at_eighty_percent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		testutil.CreateTestBudget(t, db, "2025-01-01", 1, "1000")
		testutil.CreateTestTransaction(t, db, "u1", 1, "500", "2025-01-03")
		testutil.CreateTestTransaction(t, db, "u2", 1, "300", "2025-01-31")
		testutil.CreateTestTransaction(t, db, "u2", 1, "999", "2025-02-01")

		report, err := svc.GetMonthlyReport(ctx, "2025-01")
		testutil.AssertNoError(t, err)

		item := findItem(t, report, models.TypeGrocery)
		if !item.Spend.Equal(decimal.NewFromInt(800)) {
			t.Errorf("expected spend 800, got %s", item.Spend)
		}
		if item.TransactionsCount != 2 {
			t.Errorf("expected 2 transactions, got %d", item.TransactionsCount)
		}
		if !item.Percent.Equal(decimal.NewFromInt(80)) || item.Status != progress.StatusWarn {
			t.Errorf("expected 80%% warn, got %s %s", item.Percent, item.Status)
		}
		if len(item.Shares) != 2 || item.Shares[0].UserID != "u1" {
			t.Fatalf("expected u1 to lead the shares, got %+v", item.Shares)
		}
		if !item.Shares[1].Spend.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected u2 share of 300, got %s", item.Shares[1].Spend)
		}
	})

	t.Run("explicit_zero_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		testutil.CreateTestBudget(t, db, "2025-01-01", 4, "0")
		testutil.CreateTestTransaction(t, db, "u1", 4, "120", "2025-01-10")

		report, err := svc.GetMonthlyReport(ctx, "2025-01")
		testutil.AssertNoError(t, err)

		item := findItem(t, report, models.TypeCar)
		if !item.Budget.IsZero() {
			t.Errorf("expected explicit zero budget, got %s", item.Budget)
		}
		if !item.Percent.IsZero() || item.Status != progress.StatusOK {
			t.Errorf("expected 0%% ok for a zero budget, got %s %s", item.Percent, item.Status)
		}
		if !item.OverAmount.Equal(decimal.NewFromInt(120)) {
			t.Errorf("expected over amount 120, got %s", item.OverAmount)
		}
	})

	t.Run("totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		testutil.CreateTestTransaction(t, db, "u1", 1, "10.10", "2025-01-03")
		testutil.CreateTestTransaction(t, db, "u1", 2, "20.20", "2025-01-04")

		report, err := svc.GetMonthlyReport(ctx, "2025-01")
		testutil.AssertNoError(t, err)

		wantBudget := decimal.Zero
		for _, tt := range models.DefaultTransactionTypes() {
			wantBudget = wantBudget.Add(DefaultBudgetFor(tt.Code))
		}
		if !report.Totals.Budget.Equal(wantBudget) {
			t.Errorf("expected total budget %s, got %s", wantBudget, report.Totals.Budget)
		}
		if !report.Totals.Spend.Equal(decimal.RequireFromString("30.30")) {
			t.Errorf("expected total spend 30.30, got %s", report.Totals.Spend)
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		_, err := svc.GetMonthlyReport(ctx, "2025-13")
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})
}

func TestSortShares(t *testing.T) {
	shares := []ReportShare{
		{UserID: "b", Spend: decimal.NewFromInt(10)},
		{UserID: "c", Spend: decimal.NewFromInt(30)},
		{UserID: "a", Spend: decimal.NewFromInt(10)},
	}
	sortShares(shares)

	want := []string{"c", "a", "b"}
	for i, id := range want {
		if shares[i].UserID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, shares[i].UserID)
		}
	}
}

package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"homebudget/internal/models"
	"homebudget/internal/month"
	"homebudget/internal/pagination"
	"homebudget/internal/progress"
	"homebudget/internal/services"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newReport(lines ...services.ReportItem) *services.MonthlyReport {
	return &services.MonthlyReport{Month: "2026-01", Summary: lines}
}

func line(typeID uint, name, budget, spend string, shares ...services.ReportShare) services.ReportItem {
	return services.ReportItem{
		TypeID: typeID, TypeName: name,
		Budget: dec(budget), Spend: dec(spend),
		Shares: shares,
	}
}

func floatPtr(f float64) *float64 { return &f }

func TestChartItems(t *testing.T) {
	t.Run("maps every summary line in order", func(t *testing.T) {
		items := ChartItems(newReport(
			line(1, "Groceries", "1000", "500"),
			line(2, "Home", "500", "300"),
		), nil)

		if len(items) != 2 || items[0].TypeID != 1 || items[1].TypeID != 2 {
			t.Fatalf("unexpected items %+v", items)
		}
		if items[0].TypeName != "Groceries" || !items[0].Spend.Equal(dec("500")) {
			t.Errorf("unexpected first item %+v", items[0])
		}
	})

	t.Run("explicit budget wins over the report budget", func(t *testing.T) {
		budgets := BudgetMap([]models.Budget{{MonthDate: "2026-01-01", TypeID: 1, Amount: dec("2000")}})
		items := ChartItems(newReport(line(1, "Groceries", "1000", "500")), budgets)

		if !items[0].Budget.Equal(dec("2000")) {
			t.Errorf("expected 2000, got %s", items[0].Budget)
		}
		if !items[0].Percent.Equal(dec("25")) || items[0].Status != progress.StatusOK {
			t.Errorf("unexpected progress %+v", items[0].Progress)
		}
	})

	t.Run("nil override falls back to the report budget", func(t *testing.T) {
		items := ChartItems(newReport(line(1, "Groceries", "1000", "500")), map[uint]*decimal.Decimal{1: nil})

		if !items[0].Budget.Equal(dec("1000")) {
			t.Errorf("expected 1000, got %s", items[0].Budget)
		}
	})

	t.Run("status bands", func(t *testing.T) {
		items := ChartItems(newReport(
			line(1, "a", "1000", "799"),
			line(2, "b", "1000", "800"),
			line(3, "c", "1000", "1000"),
			line(4, "d", "1000", "1001"),
			line(5, "e", "0", "50"),
		), nil)

		want := []progress.Status{progress.StatusOK, progress.StatusWarn, progress.StatusWarn, progress.StatusOver, progress.StatusOK}
		for i, w := range want {
			if items[i].Status != w {
				t.Errorf("item %d: expected %s, got %s", i, w, items[i].Status)
			}
		}
		if !items[3].OverAmount.Equal(dec("1")) {
			t.Errorf("expected over amount 1, got %s", items[3].OverAmount)
		}
		if !items[4].Percent.IsZero() || !items[4].OverAmount.Equal(dec("50")) {
			t.Errorf("zero budget should give 0%% and the whole spend over, got %+v", items[4].Progress)
		}
	})

	t.Run("shares drop zero spend and sort descending", func(t *testing.T) {
		items := ChartItems(newReport(line(1, "Groceries", "1000", "500",
			services.ReportShare{UserID: "u-1", Spend: dec("100")},
			services.ReportShare{UserID: "u-2", Spend: dec("0")},
			services.ReportShare{UserID: "u-3", Spend: dec("400")},
		)), nil)

		shares := items[0].Shares
		if len(shares) != 2 || shares[0].UserID != "u-3" || shares[1].UserID != "u-1" {
			t.Errorf("unexpected shares %+v", shares)
		}
	})
}

func TestTotal(t *testing.T) {
	report := newReport()
	report.Totals = services.ReportTotals{Budget: dec("1000"), Spend: dec("850")}

	total := Total(report)
	if !total.Percent.Equal(dec("85")) || total.Status != progress.StatusWarn {
		t.Errorf("unexpected total %+v", total)
	}

	report.Totals = services.ReportTotals{Budget: dec("0"), Spend: dec("10")}
	if total := Total(report); total.Status != progress.StatusOK || !total.Percent.IsZero() {
		t.Errorf("zero budget should be ok at 0%%, got %+v", total)
	}
}

func TestLevelFor(t *testing.T) {
	cases := []struct {
		in   *float64
		want ConfidenceLevel
	}{
		{nil, ConfidenceLow},
		{floatPtr(0.95), ConfidenceHigh},
		{floatPtr(0.8), ConfidenceHigh},
		{floatPtr(0.79), ConfidenceMedium},
		{floatPtr(0.5), ConfidenceMedium},
		{floatPtr(0.49), ConfidenceLow},
		{floatPtr(0), ConfidenceLow},
	}
	for _, tc := range cases {
		if got := LevelFor(tc.in); got != tc.want {
			t.Errorf("LevelFor(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestTransactionItemFor(t *testing.T) {
	types := models.DefaultTransactionTypes()

	t.Run("maps a categorized row", func(t *testing.T) {
		status := models.AIStatusSuccess
		tx := models.Transaction{
			Base:   models.Base{ID: "tx-1"},
			TypeID: 1, Amount: dec("150"), Description: "Shopping", Date: "2026-01-15",
			AIStatus: &status, AIConfidence: floatPtr(0.95),
		}

		item := TransactionItemFor(tx, types)
		if item.ID != "tx-1" || item.Type.Code != models.TypeGrocery || item.Date != "2026-01-15" {
			t.Errorf("unexpected item %+v", item)
		}
		if item.AI.Status != models.AIStatusSuccess || item.AI.Level != ConfidenceHigh || item.IsManual {
			t.Errorf("unexpected AI info %+v", item.AI)
		}
	})

	t.Run("missing status reads as error", func(t *testing.T) {
		item := TransactionItemFor(models.Transaction{TypeID: 1, IsManualOverride: true}, types)
		if item.AI.Status != models.AIStatusError || item.AI.Level != ConfidenceLow || !item.IsManual {
			t.Errorf("unexpected item %+v", item)
		}
	})

	t.Run("unknown type gets a placeholder", func(t *testing.T) {
		item := TransactionItemFor(models.Transaction{TypeID: 99}, types)
		if item.Type.ID != 99 || item.Type.Code != "unknown" || item.Type.Name != unknownTypeName {
			t.Errorf("unexpected placeholder %+v", item.Type)
		}
	})

	t.Run("page keeps cursor and count", func(t *testing.T) {
		next := "abc"
		page := TransactionPage(&pagination.CursorPage[models.Transaction]{
			Data:       []models.Transaction{{TypeID: 1}, {TypeID: 2}},
			Count:      7,
			NextCursor: &next,
		}, types)
		if len(page.Data) != 2 || page.Count != 7 || page.NextCursor == nil || *page.NextCursor != "abc" {
			t.Errorf("unexpected page %+v", page)
		}
	})
}

func TestOptimisticBudgetHelpers(t *testing.T) {
	chart := ChartItems(newReport(line(1, "Groceries", "1000", "900"), line(2, "Home", "500", "100")), nil)

	next := WithBudget(chart, models.Budget{TypeID: 1, Amount: dec("2000")})
	if !next[0].Budget.Equal(dec("2000")) || next[0].Status != progress.StatusOK {
		t.Errorf("expected the new budget applied, got %+v", next[0])
	}
	if !chart[0].Budget.Equal(dec("1000")) {
		t.Error("the input chart must not change")
	}
	if !next[1].Budget.Equal(dec("500")) {
		t.Error("other lines must be kept")
	}

	budgets := ReplaceBudget([]models.Budget{{TypeID: 1, Amount: dec("1")}, {TypeID: 2, Amount: dec("2")}},
		models.Budget{TypeID: 1, Amount: dec("3")})
	if len(budgets) != 2 || budgets[1].TypeID != 1 || !budgets[1].Amount.Equal(dec("3")) {
		t.Errorf("unexpected budgets %+v", budgets)
	}
}

func TestFormatting(t *testing.T) {
	if got := FormatCurrency(dec("150.5"), 2); got != "150,50 zł" {
		t.Errorf("FormatCurrency = %q", got)
	}
	if got := FormatCurrency(dec("99.999"), 0); got != "100 zł" {
		t.Errorf("FormatCurrency without decimals = %q", got)
	}
	if got := FormatCurrency(dec("1234567.5"), 2); !strings.HasSuffix(got, ",50 zł") || !strings.HasPrefix(got, "1") {
		t.Errorf("FormatCurrency large = %q", got)
	}
	if got := FormatPercent(dec("80.456"), 0); got != "80%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatPercent(dec("80.456"), 1); got != "80.5%" {
		t.Errorf("FormatPercent one decimal = %q", got)
	}
}

func TestMonthOptions(t *testing.T) {
	now := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
	opts := MonthOptions(month.Options(now, 3))

	if len(opts) != 3 {
		t.Fatalf("expected 3 options, got %d", len(opts))
	}
	if opts[0].Value != "2026-01" || opts[0].Label != "Styczeń 2026" || opts[0].IsReadonly {
		t.Errorf("unexpected current month %+v", opts[0])
	}
	if opts[1].Label != "Grudzień 2025" || opts[1].IsReadonly {
		t.Errorf("previous month should be editable, got %+v", opts[1])
	}
	if !opts[2].IsReadonly {
		t.Errorf("older months are read-only, got %+v", opts[2])
	}
}

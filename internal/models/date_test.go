package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != "2024-02-29" {
		t.Errorf("expected 2024-02-29, got %s", d)
	}

	for _, bad := range []string{"2023-02-29", "2024-13-01", "2024-1-01", "", "01/02/2024"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestDate_Scan(t *testing.T) {
	t.Run("time value", func(t *testing.T) {
		var d Date
		if err := d.Scan(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d != "2025-03-07" {
			t.Errorf("expected 2025-03-07, got %s", d)
		}
	})

	t.Run("timestamp text", func(t *testing.T) {
		var d Date
		if err := d.Scan([]byte("2025-03-07T00:00:00Z")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d != "2025-03-07" {
			t.Errorf("expected 2025-03-07, got %s", d)
		}
	})

	t.Run("nil", func(t *testing.T) {
		d := Date("2025-01-01")
		if err := d.Scan(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d != "" {
			t.Errorf("expected empty date, got %s", d)
		}
	})

	t.Run("unsupported type", func(t *testing.T) {
		var d Date
		if err := d.Scan(42); err == nil {
			t.Error("expected error for int")
		}
	})
}

func TestDate_Value(t *testing.T) {
	v, err := Date("2025-01-31").Value()
	if err != nil || v != "2025-01-31" {
		t.Errorf("expected 2025-01-31, got %v (%v)", v, err)
	}
	v, _ = Date("").Value()
	if v != nil {
		t.Errorf("expected nil for empty date, got %v", v)
	}
}

func TestDecimalJSONIsNumber(t *testing.T) {
	b := Budget{MonthDate: "2025-01-01", TypeID: 1, Amount: decimal.RequireFromString("1000.50")}
	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["amount"] != 1000.5 {
		t.Errorf("expected numeric amount 1000.5, got %#v", out["amount"])
	}
	if out["month_date"] != "2025-01-01" {
		t.Errorf("expected month_date 2025-01-01, got %v", out["month_date"])
	}
}

func TestIsTransactionColumn(t *testing.T) {
	if !IsTransactionColumn("amount") {
		t.Error("amount should be projectable")
	}
	if IsTransactionColumn("password") {
		t.Error("password must not be projectable")
	}
}

package uuid

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	id := New()
	if !IsValid(id) {
		t.Fatalf("expected valid uuid, got %q", id)
	}
	if id[14] != '7' {
		t.Errorf("expected version 7, got %q", id)
	}

	other := New()
	if id == other {
		t.Error("expected unique ids")
	}
	if strings.Compare(id[:8], other[:8]) > 0 {
		t.Errorf("expected time-ordered prefixes, got %s then %s", id, other)
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("0190C5A2-7B1E-7CDE-8F00-000000000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0190c5a2-7b1e-7cde-8f00-000000000001" {
		t.Errorf("expected canonical lowercase form, got %s", got)
	}

	if _, err := Parse("not-a-uuid"); err == nil {
		t.Error("expected error for invalid uuid")
	}
	if IsValid("123") {
		t.Error("expected 123 to be invalid")
	}
}

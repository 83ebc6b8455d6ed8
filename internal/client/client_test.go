package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestListTransactions_SendsFilterAndToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/transactions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("missing or wrong bearer token: %q", r.Header.Get("Authorization"))
		}
		q := r.URL.Query()
		if q.Get("month") != "2026-01" || q.Get("type_id") != "3" || q.Get("limit") != "2" || q.Get("cursor") != "abc" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if q.Has("q") || q.Has("order") {
			t.Errorf("zero filters must be omitted: %s", r.URL.RawQuery)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":[
			{"id":"tx-1","type_id":3,"amount":12.5,"description":"Soap","date":"2026-01-05","user_id":"u-1","is_manual_override":false,"ai_status":null,"ai_confidence":null,"import_hash":"h"},
			{"id":"tx-2","type_id":3,"amount":7,"description":"Shampoo","date":"2026-01-04","user_id":"u-2","is_manual_override":true,"ai_status":"success","ai_confidence":0.9,"import_hash":null}
		],"count":5,"next_cursor":"def"}`)
	}))
	defer server.Close()

	c := New(server.URL+"/", "test-token", server.Client())
	page, err := c.ListTransactions(context.Background(), TransactionFilter{Month: "2026-01", TypeID: 3, Limit: 2, Cursor: "abc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Data) != 2 || page.Count != 5 || page.NextCursor == nil || *page.NextCursor != "def" {
		t.Fatalf("unexpected page: %+v", page)
	}
	if !page.Data[0].Amount.Equal(decimal.RequireFromString("12.5")) || page.Data[0].Date != "2026-01-05" {
		t.Errorf("first row mismatch: %+v", page.Data[0])
	}
	if page.Data[1].AIStatus == nil || *page.Data[1].AIStatus != "success" || !page.Data[1].IsManualOverride {
		t.Errorf("second row mismatch: %+v", page.Data[1])
	}
}

func TestUpsertBudget_PostsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/budgets" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("missing content type")
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if body["month_date"] != "2026-01-01" || body["type_id"].(float64) != 2 || body["amount"].(float64) != 450.5 {
			t.Errorf("unexpected body: %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"month_date":"2026-01-01","type_id":2,"amount":450.5}`)
	}))
	defer server.Close()

	c := New(server.URL, "", server.Client())
	budget, err := c.UpsertBudget(context.Background(), UpsertBudgetInput{
		MonthDate: "2026-01-01", TypeID: 2, Amount: decimal.RequireFromString("450.5"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if budget.TypeID != 2 || !budget.Amount.Equal(decimal.RequireFromString("450.5")) {
		t.Errorf("unexpected budget: %+v", budget)
	}
}

func TestDecodeErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":"VALIDATION_ERROR","message":"Invalid request","details":{"month":["Must be a month in YYYY-MM format"]}}}`)
	}))
	defer server.Close()

	c := New(server.URL, "", server.Client())
	_, err := c.GetMonthlyReport(context.Background(), "bad")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Code != "VALIDATION_ERROR" || len(apiErr.Details["month"]) != 1 {
		t.Errorf("unexpected API error: %+v", apiErr)
	}
	if !strings.Contains(err.Error(), "fetching monthly report") {
		t.Errorf("error %q should name the operation", err.Error())
	}
}

func TestDecodeError_NoEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream down")
	}))
	defer server.Close()

	c := New(server.URL, "", server.Client())
	err := c.DeleteTransaction(context.Background(), "tx-1")

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadGateway {
		t.Fatalf("expected a 502 API error, got %v", err)
	}
	if want := "unexpected status 502"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q should contain %q", err.Error(), want)
	}
}

func TestDeleteTransaction_NoBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/transactions/tx-1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer server.Close()

	c := New(server.URL, "", server.Client())
	if err := c.DeleteTransaction(context.Background(), "tx-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(server.URL, "", server.Client())
	if _, err := c.ListTransactionTypes(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

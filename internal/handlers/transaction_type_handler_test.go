package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "homebudget/internal/errors"
	"homebudget/internal/models"
	"homebudget/internal/services"
)

type mockTransactionTypeService struct {
	listFn func(ctx context.Context, filter services.TransactionTypeFilter) ([]models.TransactionType, error)
	getFn  func(ctx context.Context, id uint) (*models.TransactionType, error)
}

func (m *mockTransactionTypeService) ListTransactionTypes(ctx context.Context, filter services.TransactionTypeFilter) ([]models.TransactionType, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return models.DefaultTransactionTypes(), nil
}

func (m *mockTransactionTypeService) GetTransactionType(ctx context.Context, id uint) (*models.TransactionType, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &models.TransactionType{ID: id, Code: models.TypeGrocery, Name: "Groceries"}, nil
}

var _ services.TransactionTypeServicer = (*mockTransactionTypeService)(nil)

func setupTransactionTypeRouter(handler *TransactionTypeHandler) *gin.Engine {
	r := gin.New()
	r.GET("/transaction-types", handler.ListTransactionTypes)
	r.GET("/transaction-types/:id", handler.GetTransactionType)
	return r
}

func TestTransactionTypeHandler_List(t *testing.T) {
	t.Run("returns a bare array", func(t *testing.T) {
		handler := NewTransactionTypeHandler(&mockTransactionTypeService{})
		r := setupTransactionTypeRouter(handler)

		rec := doRequest(r, "GET", "/transaction-types", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rows := parseJSONArray(t, rec); len(rows) != len(models.DefaultTransactionTypes()) {
			t.Errorf("expected %d types, got %d", len(models.DefaultTransactionTypes()), len(rows))
		}
	})

	t.Run("passes q and order", func(t *testing.T) {
		var got services.TransactionTypeFilter
		svc := &mockTransactionTypeService{listFn: func(_ context.Context, f services.TransactionTypeFilter) ([]models.TransactionType, error) {
			got = f
			return []models.TransactionType{}, nil
		}}
		handler := NewTransactionTypeHandler(svc)
		r := setupTransactionTypeRouter(handler)

		rec := doRequest(r, "GET", "/transaction-types?q=car&order=position.desc", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.Q != "car" || got.Order != "position.desc" {
			t.Errorf("unexpected filter %+v", got)
		}
	})

	t.Run("returns 400 on invalid order", func(t *testing.T) {
		handler := NewTransactionTypeHandler(&mockTransactionTypeService{})
		r := setupTransactionTypeRouter(handler)

		rec := doRequest(r, "GET", "/transaction-types?order=name.asc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorDetail(t, parseJSON(t, rec), "order")
	})
}

func TestTransactionTypeHandler_Get(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewTransactionTypeHandler(&mockTransactionTypeService{})
		r := setupTransactionTypeRouter(handler)

		rec := doRequest(r, "GET", "/transaction-types/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["code"] != models.TypeGrocery {
			t.Error("expected GROCERY")
		}
	})

	t.Run("returns 400 on non-positive id", func(t *testing.T) {
		handler := NewTransactionTypeHandler(&mockTransactionTypeService{})
		r := setupTransactionTypeRouter(handler)

		for _, path := range []string{"/transaction-types/0", "/transaction-types/abc"} {
			rec := doRequest(r, "GET", path, "")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", path, rec.Code)
			}
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockTransactionTypeService{getFn: func(context.Context, uint) (*models.TransactionType, error) {
			return nil, apperrors.ErrTransactionTypeNotFound
		}}
		handler := NewTransactionTypeHandler(svc)
		r := setupTransactionTypeRouter(handler)

		rec := doRequest(r, "GET", "/transaction-types/99", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

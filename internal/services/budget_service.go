package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "homebudget/internal/errors"
	"homebudget/internal/models"
	"homebudget/internal/month"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

var budgetOrders = map[string]string{
	"month_date.asc":  "month_date ASC",
	"month_date.desc": "month_date DESC",
	"type_id.asc":     "type_id ASC",
	"type_id.desc":    "type_id DESC",
	"created_at.asc":  "created_at ASC",
	"created_at.desc": "created_at DESC",
}

// ListBudgets returns the explicit budget rows of one month.
func (s *budgetService) ListBudgets(ctx context.Context, filter BudgetFilter) ([]models.Budget, error) {
	monthDate, err := normalizeMonthDate(filter.MonthDate)
	if err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Where("month_date = ?", monthDate)
	if filter.TypeID != nil {
		q = q.Where("type_id = ?", *filter.TypeID)
	}

	order, ok := budgetOrders[filter.Order]
	if !ok {
		order = budgetOrders["type_id.asc"]
	}

	budgets := []models.Budget{}
	if err := q.Order(order).Order("type_id ASC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetBudget returns the budget stored under (month, category).
func (s *budgetService) GetBudget(ctx context.Context, monthDate models.Date, typeID uint) (*models.Budget, error) {
	monthDate, err := normalizeMonthDate(monthDate)
	if err != nil {
		return nil, err
	}
	return s.find(s.db.WithContext(ctx), monthDate, typeID)
}

// UpsertBudget creates or overwrites the budget for (month, category). The
// created flag reports whether the key was new.
func (s *budgetService) UpsertBudget(ctx context.Context, in UpsertBudgetInput) (*models.Budget, bool, error) {
	monthDate, err := normalizeMonthDate(in.MonthDate)
	if err != nil {
		return nil, false, err
	}

	db := s.db.WithContext(ctx)
	if err := ensureTypeExists(db, in.TypeID); err != nil {
		return nil, false, err
	}

	var existing int64
	if err := db.Model(&models.Budget{}).
		Where("month_date = ? AND type_id = ?", monthDate, in.TypeID).
		Count(&existing).Error; err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	budget := &models.Budget{MonthDate: monthDate, TypeID: in.TypeID, Amount: in.Amount}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "month_date"}, {Name: "type_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(budget).Error; err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	saved, err := s.find(db, monthDate, in.TypeID)
	if err != nil {
		return nil, false, err
	}
	return saved, existing == 0, nil
}

// UpdateBudget changes the amount of an existing budget.
func (s *budgetService) UpdateBudget(ctx context.Context, monthDate models.Date, typeID uint, amount decimal.Decimal) (*models.Budget, error) {
	monthDate, err := normalizeMonthDate(monthDate)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := ensureTypeExists(db, typeID); err != nil {
		return nil, err
	}

	result := db.Model(&models.Budget{}).
		Where("month_date = ? AND type_id = ?", monthDate, typeID).
		Updates(map[string]any{"amount": amount, "updated_at": time.Now()})
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrBudgetNotFound
	}

	return s.find(db, monthDate, typeID)
}

// DeleteBudget removes the explicit row; the category falls back to its default.
func (s *budgetService) DeleteBudget(ctx context.Context, monthDate models.Date, typeID uint) error {
	monthDate, err := normalizeMonthDate(monthDate)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("month_date = ? AND type_id = ?", monthDate, typeID).
		Delete(&models.Budget{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

func (s *budgetService) find(db *gorm.DB, monthDate models.Date, typeID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := db.Where("month_date = ? AND type_id = ?", monthDate, typeID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

func normalizeMonthDate(d models.Date) (models.Date, error) {
	normalized, err := month.NormalizeDate(string(d))
	if err != nil {
		return "", apperrors.FieldError("month_date", "must be a valid date in YYYY-MM-DD format")
	}
	return normalized, nil
}

package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "homebudget/internal/errors"
	"homebudget/internal/models"
)

// transactionTypeService serves the category reference data.
type transactionTypeService struct {
	db *gorm.DB
}

// NewTransactionTypeService creates a new TransactionTypeServicer.
func NewTransactionTypeService(db *gorm.DB) TransactionTypeServicer {
	return &transactionTypeService{db: db}
}

// ListTransactionTypes returns categories in display order, optionally
// filtered by a case-insensitive match on name or code.
func (s *transactionTypeService) ListTransactionTypes(ctx context.Context, filter TransactionTypeFilter) ([]models.TransactionType, error) {
	q := s.db.WithContext(ctx).Model(&models.TransactionType{})

	if term := strings.TrimSpace(filter.Q); term != "" {
		pattern := likePattern(term)
		q = q.Where("LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(code) LIKE ? ESCAPE '\\'", pattern, pattern)
	}

	if filter.Order == "position.desc" {
		q = q.Order("position DESC").Order("id DESC")
	} else {
		q = q.Order("position ASC").Order("id ASC")
	}

	types := []models.TransactionType{}
	if err := q.Find(&types).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return types, nil
}

// GetTransactionType returns a single category.
func (s *transactionTypeService) GetTransactionType(ctx context.Context, id uint) (*models.TransactionType, error) {
	var t models.TransactionType
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionTypeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &t, nil
}

// ensureTypeExists fails with a validation error when the category is unknown.
func ensureTypeExists(db *gorm.DB, typeID uint) error {
	var count int64
	if err := db.Model(&models.TransactionType{}).Where("id = ?", typeID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrUnknownTransactionType
	}
	return nil
}

// likePattern lower-cases term, escapes LIKE wildcards and wraps it for a
// substring match.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

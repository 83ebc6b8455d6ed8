package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "homebudget/internal/errors"
	"homebudget/internal/logger"
	"homebudget/internal/models"
	"homebudget/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// ListTransactions returns one window of the household's transactions.
// A cursor selects keyset mode; otherwise page/pageSize select offset mode.
// Count always reflects the filters alone.
func (s *transactionService) ListTransactions(ctx context.Context, q TransactionQuery) (*pagination.CursorPage[models.Transaction], error) {
	db := s.db.WithContext(ctx)
	direction := sortDirection(q.Order)
	limit := pagination.ClampLimit(q.Limit)

	var count int64
	if err := applyTransactionFilters(db.Model(&models.Transaction{}), q).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	rows := applyTransactionFilters(db.Model(&models.Transaction{}), q)
	if cols := projection(q.Fields); cols != nil {
		rows = rows.Select(cols)
	}
	rows = orderByKey(rows, direction)

	window := limit
	switch {
	case q.Cursor != nil:
		rows = afterCursor(rows, *q.Cursor, direction).Limit(limit)
	case q.Page.IsSet():
		page := q.Page
		page.Defaults(limit)
		window = page.PageSize
		rows = rows.Scopes(pagination.Paginate(page))
	default:
		rows = rows.Limit(limit)
	}

	transactions := []models.Transaction{}
	if err := rows.Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	page := pagination.NewCursorPage(transactions, count, window, transactionKey)
	return &page, nil
}

// GetTransaction retrieves a transaction owned by userID.
func (s *transactionService) GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error) {
	return s.find(s.db.WithContext(ctx), userID, id)
}

// CreateTransaction records a single expense. A transaction whose import
// hash is already stored is rejected with a conflict.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, in CreateTransactionInput) (*models.Transaction, error) {
	db := s.db.WithContext(ctx)

	if err := ensureTypeExists(db, in.TypeID); err != nil {
		return nil, err
	}

	in.Description = strings.TrimSpace(in.Description)
	hash := resolveImportHash(in)

	var existing int64
	if err := db.Model(&models.Transaction{}).Where("import_hash = ?", hash).Count(&existing).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if existing > 0 {
		return nil, apperrors.ErrDuplicateImport
	}

	transaction := &models.Transaction{
		TypeID:           in.TypeID,
		Amount:           in.Amount,
		Description:      in.Description,
		Date:             in.Date,
		UserID:           userID,
		IsManualOverride: in.IsManualOverride,
		ImportHash:       &hash,
	}
	if err := db.Create(transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateImport
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// CreateTransactionsBatch creates items in order. Each item succeeds or
// fails on its own: duplicates are skipped, other failures are reported
// and the remaining items still run.
func (s *transactionService) CreateTransactionsBatch(ctx context.Context, userID string, items []CreateTransactionInput) (*BatchResult, error) {
	result := &BatchResult{Results: make([]BatchItemResult, 0, len(items))}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		created, err := s.CreateTransaction(ctx, userID, item)
		switch {
		case err == nil:
			result.Results = append(result.Results, BatchItemResult{Status: BatchCreated, Data: created})
			result.Summary.Created++
		case errors.Is(err, apperrors.ErrDuplicateImport):
			item.Description = strings.TrimSpace(item.Description)
			result.Results = append(result.Results, BatchItemResult{
				Status:     BatchSkipped,
				Reason:     "duplicate",
				ImportHash: resolveImportHash(item),
			})
			result.Summary.Skipped++
		default:
			logger.Get().Warnw("batch item failed", "user_id", userID, "error", err)
			result.Results = append(result.Results, BatchItemResult{Status: BatchError, Error: err.Error()})
			result.Summary.Errors++
		}
	}

	return result, nil
}

// ReplaceTransaction overwrites every mutable column of a transaction.
// Omitted nullable columns become null and the override flag becomes false.
func (s *transactionService) ReplaceTransaction(ctx context.Context, userID, id string, in ReplaceTransactionInput) (*models.Transaction, error) {
	if ShouldRejectAIUpdate(in.IsManualOverride, in.TouchesAI) {
		return nil, apperrors.ErrAIFieldsLocked
	}

	db := s.db.WithContext(ctx)
	if err := ensureTypeExists(db, in.TypeID); err != nil {
		return nil, err
	}

	return s.update(db, userID, id, in.updates())
}

// PatchTransaction changes only the columns present in patch. AI fields may
// change when the patch sets the override or the row already has it.
func (s *transactionService) PatchTransaction(ctx context.Context, userID, id string, patch TransactionPatch) (*models.Transaction, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ErrEmptyPatch
	}

	db := s.db.WithContext(ctx)

	if ShouldRejectAIUpdate(patch.IsManualOverride, patch.TouchesAI()) {
		current, err := s.find(db, userID, id)
		if err != nil {
			return nil, err
		}
		if !current.IsManualOverride {
			return nil, apperrors.ErrAIFieldsLocked
		}
	}

	if patch.TypeID != nil {
		if err := ensureTypeExists(db, *patch.TypeID); err != nil {
			return nil, err
		}
	}

	return s.update(db, userID, id, patch.updates())
}

// DeleteTransaction removes a transaction owned by userID.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, id string) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

func (s *transactionService) update(db *gorm.DB, userID, id string, updates map[string]any) (*models.Transaction, error) {
	result := db.Model(&models.Transaction{}).Where("id = ? AND user_id = ?", id, userID).Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateImport
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrTransactionNotFound
	}
	return s.find(db, userID, id)
}

func (s *transactionService) find(db *gorm.DB, userID, id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

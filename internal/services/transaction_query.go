package services

import (
	"strings"

	"gorm.io/gorm"

	"homebudget/internal/models"
	"homebudget/internal/pagination"
)

// sortDirection resolves the requested order to ASC or DESC. Rows are always
// keyed by (date, id); amount orders keep their direction but sort by date
// until amount keyset pagination exists.
func sortDirection(order string) string {
	if strings.HasSuffix(order, ".asc") {
		return "ASC"
	}
	return "DESC"
}

// applyTransactionFilters narrows q to the rows matching every filter. The
// cursor boundary is not part of it so the count covers the whole result.
func applyTransactionFilters(q *gorm.DB, f TransactionQuery) *gorm.DB {
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}
	if f.TypeID != nil {
		q = q.Where("type_id = ?", *f.TypeID)
	}
	if f.MinAmount != nil {
		q = q.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("amount <= ?", *f.MaxAmount)
	}
	if term := strings.TrimSpace(f.Q); term != "" {
		q = q.Where("LOWER(description) LIKE ? ESCAPE '\\'", likePattern(term))
	}
	if f.IsManualOverride != nil {
		q = q.Where("is_manual_override = ?", *f.IsManualOverride)
	}
	if f.ImportHash != "" {
		q = q.Where("import_hash = ?", f.ImportHash)
	}
	return q
}

// afterCursor keeps rows strictly past the boundary in the sort direction.
func afterCursor(q *gorm.DB, c pagination.Cursor, direction string) *gorm.DB {
	op := "<"
	if direction == "ASC" {
		op = ">"
	}
	return q.Where("(date "+op+" ?) OR (date = ? AND id "+op+" ?)", c.Date, c.Date, c.ID)
}

// orderByKey sorts by the stable (date, id) key.
func orderByKey(q *gorm.DB, direction string) *gorm.DB {
	return q.Order("date " + direction).Order("id " + direction)
}

// projection returns the columns to select: the requested ones plus the
// sort key, which the next cursor is built from.
func projection(fields []string) []string {
	if len(fields) == 0 {
		return nil
	}
	cols := []string{"id", "date"}
	for _, f := range fields {
		if !models.IsTransactionColumn(f) || f == "id" || f == "date" {
			continue
		}
		cols = append(cols, f)
	}
	return cols
}

func transactionKey(t models.Transaction) pagination.Cursor {
	return pagination.Cursor{Date: string(t.Date), ID: t.ID}
}

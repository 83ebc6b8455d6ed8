package models

import "github.com/shopspring/decimal"

// AIStatus records how the category of a transaction was assigned.
type AIStatus string

const (
	AIStatusSuccess  AIStatus = "success"
	AIStatusFallback AIStatus = "fallback"
	AIStatusError    AIStatus = "error"
)

// Transaction is a single dated expense against a category.
type Transaction struct {
	Base
	TypeID           uint            `gorm:"not null;index" json:"type_id"`
	Amount           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Description      string          `gorm:"size:255;not null" json:"description"`
	Date             Date            `gorm:"type:date;not null;index" json:"date"`
	UserID           string          `gorm:"not null;index" json:"user_id"`
	IsManualOverride bool            `gorm:"not null;default:false" json:"is_manual_override"`
	AIStatus         *AIStatus       `gorm:"type:varchar(16)" json:"ai_status"`
	AIConfidence     *float64        `json:"ai_confidence"`
	ImportHash       *string         `gorm:"uniqueIndex" json:"import_hash"`

	Type *TransactionType `gorm:"foreignKey:TypeID" json:"-"`
}

// TransactionColumns is the allow-list of columns a client may project.
var TransactionColumns = []string{
	"id", "user_id", "type_id", "amount", "description", "date",
	"ai_status", "ai_confidence", "is_manual_override", "import_hash",
	"created_at", "updated_at",
}

// IsTransactionColumn reports whether name is on the projection allow-list.
func IsTransactionColumn(name string) bool {
	for _, c := range TransactionColumns {
		if c == name {
			return true
		}
	}
	return false
}

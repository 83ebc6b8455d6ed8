package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is the planned spend for one category in one month. MonthDate is
// always the first day of the month.
type Budget struct {
	MonthDate Date            `gorm:"primaryKey;type:date" json:"month_date"`
	TypeID    uint            `gorm:"primaryKey;autoIncrement:false" json:"type_id"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Type *TransactionType `gorm:"foreignKey:TypeID" json:"-"`
}

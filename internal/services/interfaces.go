package services

import (
	"context"

	"github.com/shopspring/decimal"

	"homebudget/internal/models"
	"homebudget/internal/pagination"
)

// TransactionTypeFilter holds optional parameters for listing categories.
type TransactionTypeFilter struct {
	Q     string
	Order string // position.asc (default) or position.desc
}

// TransactionTypeServicer defines the contract for category reference data.
type TransactionTypeServicer interface {
	ListTransactionTypes(ctx context.Context, filter TransactionTypeFilter) ([]models.TransactionType, error)
	GetTransactionType(ctx context.Context, id uint) (*models.TransactionType, error)
}

// BudgetFilter holds optional parameters for listing budgets of one month.
type BudgetFilter struct {
	MonthDate models.Date
	TypeID    *uint
	Order     string
}

// UpsertBudgetInput is the payload of a create-or-update.
type UpsertBudgetInput struct {
	MonthDate models.Date
	TypeID    uint
	Amount    decimal.Decimal
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	ListBudgets(ctx context.Context, filter BudgetFilter) ([]models.Budget, error)
	GetBudget(ctx context.Context, monthDate models.Date, typeID uint) (*models.Budget, error)
	UpsertBudget(ctx context.Context, in UpsertBudgetInput) (budget *models.Budget, created bool, err error)
	UpdateBudget(ctx context.Context, monthDate models.Date, typeID uint, amount decimal.Decimal) (*models.Budget, error)
	DeleteBudget(ctx context.Context, monthDate models.Date, typeID uint) error
}

// TransactionQuery is a validated list request. Cursor, when set, takes
// precedence over Page.
type TransactionQuery struct {
	From             *models.Date
	To               *models.Date
	TypeID           *uint
	MinAmount        *decimal.Decimal
	MaxAmount        *decimal.Decimal
	Q                string
	IsManualOverride *bool
	ImportHash       string
	Order            string
	Limit            int
	Cursor           *pagination.Cursor
	Page             pagination.PageRequest
	Fields           []string
}

// CreateTransactionInput is the payload of a single create or one batch item.
type CreateTransactionInput struct {
	TypeID           uint
	Amount           decimal.Decimal
	Description      string
	Date             models.Date
	ImportHash       *string
	IsManualOverride bool
}

// ReplaceTransactionInput is a full replacement. TouchesAI is true when the
// request named ai_status or ai_confidence at all, null included.
type ReplaceTransactionInput struct {
	TypeID           uint
	Amount           decimal.Decimal
	Description      string
	Date             models.Date
	IsManualOverride *bool
	AIStatus         *models.AIStatus
	AIConfidence     *float64
	ImportHash       *string
	TouchesAI        bool
}

// TransactionPatch is a partial update. Nil pointers leave a column alone;
// the Set flags distinguish "set to null" from "absent" for nullable columns.
type TransactionPatch struct {
	TypeID           *uint
	Amount           *decimal.Decimal
	Description      *string
	Date             *models.Date
	IsManualOverride *bool
	AIStatus         *models.AIStatus
	SetAIStatus      bool
	AIConfidence     *float64
	SetAIConfidence  bool
	ImportHash       *string
	SetImportHash    bool
}

// BatchStatus is the outcome of one batch item.
type BatchStatus string

const (
	BatchCreated BatchStatus = "created"
	BatchSkipped BatchStatus = "skipped"
	BatchError   BatchStatus = "error"
)

// BatchItemResult reports what happened to one batch item.
type BatchItemResult struct {
	Status     BatchStatus         `json:"status"`
	Data       *models.Transaction `json:"data,omitempty"`
	Reason     string              `json:"reason,omitempty"`
	ImportHash string              `json:"import_hash,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// BatchSummary counts outcomes of a batch.
type BatchSummary struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// BatchResult is the multi-status body of a batch import.
type BatchResult struct {
	Results []BatchItemResult `json:"results"`
	Summary BatchSummary      `json:"summary"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	ListTransactions(ctx context.Context, q TransactionQuery) (*pagination.CursorPage[models.Transaction], error)
	GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error)
	CreateTransaction(ctx context.Context, userID string, in CreateTransactionInput) (*models.Transaction, error)
	CreateTransactionsBatch(ctx context.Context, userID string, items []CreateTransactionInput) (*BatchResult, error)
	ReplaceTransaction(ctx context.Context, userID, id string, in ReplaceTransactionInput) (*models.Transaction, error)
	PatchTransaction(ctx context.Context, userID, id string, patch TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
}

// ReportServicer builds the household monthly report.
type ReportServicer interface {
	GetMonthlyReport(ctx context.Context, month string) (*MonthlyReport, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}

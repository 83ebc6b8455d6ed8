// Package dashboard maps API payloads into display-ready view models: chart
// lines with progress bands, the month total and transaction list items.
package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"

	"homebudget/internal/models"
	"homebudget/internal/month"
	"homebudget/internal/pagination"
	"homebudget/internal/progress"
	"homebudget/internal/services"
)

// ConfidenceLevel buckets the AI confidence of a categorization.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

const unknownTypeName = "Nieznana kategoria"

// Share is one member's spend within a chart line.
type Share struct {
	UserID string          `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

// ChartItem is one category bar. Budget is the explicit budget of the month
// when one exists, else the amount the report applied.
type ChartItem struct {
	TypeID   uint             `json:"type_id"`
	TypeName string           `json:"type_name"`
	Budget   *decimal.Decimal `json:"budget"`
	Spend    decimal.Decimal  `json:"spend"`
	progress.Progress
	Shares []Share `json:"shares"`
}

// TotalProgress is the month-wide progress bar.
type TotalProgress struct {
	Budget decimal.Decimal `json:"budget"`
	Spend  decimal.Decimal `json:"spend"`
	progress.Progress
}

// Confidence describes how a transaction was categorized.
type Confidence struct {
	Status     models.AIStatus `json:"status"`
	Confidence *float64        `json:"confidence"`
	Level      ConfidenceLevel `json:"level"`
}

// TransactionItem is a row of the transaction list.
type TransactionItem struct {
	ID          string                 `json:"id"`
	Type        models.TransactionType `json:"type"`
	Amount      decimal.Decimal        `json:"amount"`
	Description string                 `json:"description"`
	Date        models.Date            `json:"date"`
	AI          Confidence             `json:"ai"`
	IsManual    bool                   `json:"is_manual"`
}

// Data is everything the dashboard renders for one month.
type Data struct {
	Month        string                                 `json:"month"`
	Readonly     month.ReadonlyFlags                    `json:"readonly"`
	Chart        []ChartItem                            `json:"chart"`
	Total        TotalProgress                          `json:"total"`
	Transactions pagination.CursorPage[TransactionItem] `json:"transactions"`
	Types        []models.TransactionType               `json:"types"`
	Budgets      []models.Budget                        `json:"budgets"`
}

// BudgetMap indexes explicit budgets by category.
func BudgetMap(budgets []models.Budget) map[uint]*decimal.Decimal {
	m := make(map[uint]*decimal.Decimal, len(budgets))
	for i := range budgets {
		amount := budgets[i].Amount
		m[budgets[i].TypeID] = &amount
	}
	return m
}

// ChartItems maps the report summary into chart lines. An entry of budgets
// overrides the report budget; a nil entry does not.
func ChartItems(report *services.MonthlyReport, budgets map[uint]*decimal.Decimal) []ChartItem {
	items := make([]ChartItem, 0, len(report.Summary))
	for _, line := range report.Summary {
		budget := budgets[line.TypeID]
		if budget == nil {
			b := line.Budget
			budget = &b
		}

		shares := make([]Share, 0, len(line.Shares))
		for _, s := range line.Shares {
			if s.Spend.IsPositive() {
				shares = append(shares, Share{UserID: s.UserID, Amount: s.Spend})
			}
		}
		sort.SliceStable(shares, func(i, j int) bool {
			return shares[i].Amount.GreaterThan(shares[j].Amount)
		})

		items = append(items, ChartItem{
			TypeID:   line.TypeID,
			TypeName: line.TypeName,
			Budget:   budget,
			Spend:    line.Spend,
			Progress: progress.Compute(line.Spend, budget),
			Shares:   shares,
		})
	}
	return items
}

// Total maps the report totals into the month-wide progress.
func Total(report *services.MonthlyReport) TotalProgress {
	return TotalProgress{
		Budget:   report.Totals.Budget,
		Spend:    report.Totals.Spend,
		Progress: progress.ComputeAmount(report.Totals.Spend, report.Totals.Budget),
	}
}

// LevelFor buckets an AI confidence: 0.8 and above is high, 0.5 and above
// medium, anything else (including no score) low.
func LevelFor(confidence *float64) ConfidenceLevel {
	switch {
	case confidence == nil:
		return ConfidenceLow
	case *confidence >= 0.8:
		return ConfidenceHigh
	case *confidence >= 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// TransactionItemFor maps a transaction row. A missing AI status reads as an
// error; a type not in types gets a placeholder.
func TransactionItemFor(tx models.Transaction, types []models.TransactionType) TransactionItem {
	txType := models.TransactionType{ID: tx.TypeID, Code: "unknown", Name: unknownTypeName}
	for _, t := range types {
		if t.ID == tx.TypeID {
			txType = t
			break
		}
	}

	status := models.AIStatusError
	if tx.AIStatus != nil {
		status = *tx.AIStatus
	}

	return TransactionItem{
		ID:          tx.ID,
		Type:        txType,
		Amount:      tx.Amount,
		Description: tx.Description,
		Date:        tx.Date,
		AI: Confidence{
			Status:     status,
			Confidence: tx.AIConfidence,
			Level:      LevelFor(tx.AIConfidence),
		},
		IsManual: tx.IsManualOverride,
	}
}

// TransactionPage maps a page of transactions, keeping its cursor and count.
func TransactionPage(page *pagination.CursorPage[models.Transaction], types []models.TransactionType) pagination.CursorPage[TransactionItem] {
	out := pagination.CursorPage[TransactionItem]{Data: make([]TransactionItem, 0, len(page.Data))}
	for _, tx := range page.Data {
		out.Data = append(out.Data, TransactionItemFor(tx, types))
	}
	out.Count = page.Count
	out.NextCursor = page.NextCursor
	return out
}

// WithBudget returns a copy of chart with budget applied to its category,
// recomputing that line's progress. Lines of other categories are kept.
func WithBudget(chart []ChartItem, budget models.Budget) []ChartItem {
	out := make([]ChartItem, len(chart))
	copy(out, chart)
	for i := range out {
		if out[i].TypeID != budget.TypeID {
			continue
		}
		amount := budget.Amount
		out[i].Budget = &amount
		out[i].Progress = progress.Compute(out[i].Spend, &amount)
	}
	return out
}

// ReplaceBudget returns budgets with the row of budget's category swapped
// for budget, appending it when absent.
func ReplaceBudget(budgets []models.Budget, budget models.Budget) []models.Budget {
	out := make([]models.Budget, 0, len(budgets)+1)
	for _, b := range budgets {
		if b.TypeID != budget.TypeID {
			out = append(out, b)
		}
	}
	return append(out, budget)
}

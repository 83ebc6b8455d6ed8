package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "homebudget/internal/errors"
	"homebudget/internal/models"
	"homebudget/internal/month"
	"homebudget/internal/progress"
)

// FallbackBudget applies to categories without an explicit row or a default.
var FallbackBudget = decimal.NewFromInt(1000)

// DefaultBudgets are the per-category amounts used when a month has no
// explicit budget row.
var DefaultBudgets = map[string]decimal.Decimal{
	models.TypeGrocery:       decimal.NewFromInt(1000),
	models.TypeHome:          decimal.NewFromInt(500),
	models.TypeHealthBeauty:  decimal.NewFromInt(300),
	models.TypeCar:           decimal.NewFromInt(800),
	models.TypeFashion:       decimal.NewFromInt(200),
	models.TypeEntertainment: decimal.NewFromInt(500),
	models.TypeBills:         decimal.NewFromInt(1000),
	models.TypeFixed:         decimal.NewFromInt(1000),
	models.TypeUnplanned:     decimal.NewFromInt(200),
	models.TypeInvest:        decimal.NewFromInt(1000),
	models.TypeOther:         decimal.NewFromInt(500),
}

// DefaultBudgetFor returns the default amount of a category code.
func DefaultBudgetFor(code string) decimal.Decimal {
	if b, ok := DefaultBudgets[code]; ok {
		return b
	}
	return FallbackBudget
}

// ReportShare is one member's part of a category's spend.
type ReportShare struct {
	UserID            string          `json:"user_id"`
	Spend             decimal.Decimal `json:"spend"`
	TransactionsCount int64           `json:"transactions_count"`
}

// ReportItem is one category line of the monthly report.
type ReportItem struct {
	TypeID            uint            `json:"type_id"`
	TypeCode          string          `json:"type_code"`
	TypeName          string          `json:"type_name"`
	Budget            decimal.Decimal `json:"budget"`
	Spend             decimal.Decimal `json:"spend"`
	TransactionsCount int64           `json:"transactions_count"`
	progress.Progress
	Shares []ReportShare `json:"shares"`
}

// ReportTotals sums the report over every category.
type ReportTotals struct {
	Budget decimal.Decimal `json:"budget"`
	Spend  decimal.Decimal `json:"spend"`
	progress.Progress
}

// MonthlyReport is the household view of one month.
type MonthlyReport struct {
	Month   string       `json:"month"`
	Summary []ReportItem `json:"summary"`
	Totals  ReportTotals `json:"totals"`
}

// reportService aggregates budgets and spend per category.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

type spendRow struct {
	TypeID uint
	UserID string
	Spend  decimal.Decimal
	Count  int64
}

// GetMonthlyReport returns one line per category in display order, padded
// with zero spend where the month has no transactions.
func (s *reportService) GetMonthlyReport(ctx context.Context, raw string) (*MonthlyReport, error) {
	m, err := month.Parse(raw)
	if err != nil {
		return nil, apperrors.FieldError("month", "must be in YYYY-MM format")
	}
	from, to := m.Window()

	var (
		types   []models.TransactionType
		budgets []models.Budget
		spends  []spendRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Order("position ASC").Order("id ASC").Find(&types).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Where("month_date = ?", m.FirstDay()).Find(&budgets).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Transaction{}).
			Select("type_id, user_id, SUM(amount) AS spend, COUNT(*) AS count").
			Where("date >= ? AND date < ?", from, to).
			Group("type_id, user_id").
			Scan(&spends).Error
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return buildReport(m.String(), types, budgets, spends), nil
}

func buildReport(label string, types []models.TransactionType, budgets []models.Budget, spends []spendRow) *MonthlyReport {
	explicit := make(map[uint]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		explicit[b.TypeID] = b.Amount
	}

	shares := make(map[uint][]ReportShare)
	for _, r := range spends {
		spend := r.Spend.Round(2)
		if spend.IsZero() {
			continue
		}
		shares[r.TypeID] = append(shares[r.TypeID], ReportShare{UserID: r.UserID, Spend: spend, TransactionsCount: r.Count})
	}

	report := &MonthlyReport{Month: label, Summary: make([]ReportItem, 0, len(types))}
	for _, t := range types {
		budget, ok := explicit[t.ID]
		if !ok {
			budget = DefaultBudgetFor(t.Code)
		}

		item := ReportItem{
			TypeID:   t.ID,
			TypeCode: t.Code,
			TypeName: t.Name,
			Budget:   budget,
			Spend:    decimal.Zero,
			Shares:   shares[t.ID],
		}
		if item.Shares == nil {
			item.Shares = []ReportShare{}
		}
		sortShares(item.Shares)
		for _, sh := range item.Shares {
			item.Spend = item.Spend.Add(sh.Spend)
			item.TransactionsCount += sh.TransactionsCount
		}
		item.Progress = progress.ComputeAmount(item.Spend, item.Budget)

		report.Totals.Budget = report.Totals.Budget.Add(item.Budget)
		report.Totals.Spend = report.Totals.Spend.Add(item.Spend)
		report.Summary = append(report.Summary, item)
	}
	report.Totals.Progress = progress.ComputeAmount(report.Totals.Spend, report.Totals.Budget)

	return report
}

func sortShares(shares []ReportShare) {
	sort.Slice(shares, func(i, j int) bool {
		if c := shares[i].Spend.Cmp(shares[j].Spend); c != 0 {
			return c > 0
		}
		return shares[i].UserID < shares[j].UserID
	})
}

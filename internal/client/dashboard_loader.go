package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"homebudget/internal/dashboard"
	"homebudget/internal/models"
	"homebudget/internal/month"
	"homebudget/internal/pagination"
	"homebudget/internal/services"
)

// ErrSuperseded is returned by a load that a later load replaced.
var ErrSuperseded = errors.New("dashboard load superseded")

const defaultPageSize = 30

// DashboardAPI is the part of the API the dashboard reads. *Client satisfies it.
type DashboardAPI interface {
	GetMonthlyReport(ctx context.Context, month string) (*services.MonthlyReport, error)
	ListBudgets(ctx context.Context, month string) ([]models.Budget, error)
	ListTransactionTypes(ctx context.Context) ([]models.TransactionType, error)
	ListTransactions(ctx context.Context, f TransactionFilter) (*pagination.CursorPage[models.Transaction], error)
}

// DashboardLoader fetches everything a month view needs. Starting a load
// cancels the one in flight, so a slow answer for an old month or filter
// never replaces a newer one.
type DashboardLoader struct {
	api DashboardAPI
	now func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
	report *services.MonthlyReport
	data   *dashboard.Data
}

// NewDashboardLoader creates a loader reading through api.
func NewDashboardLoader(api DashboardAPI) *DashboardLoader {
	return &DashboardLoader{api: api, now: time.Now}
}

// Load resolves rawMonth (invalid or future values fall back to the current
// month) and fetches the report, budgets, types and the first page of
// transactions concurrently.
func (l *DashboardLoader) Load(ctx context.Context, rawMonth string, filter TransactionFilter) (*dashboard.Data, error) {
	now := l.now()
	m := month.NormalizeParam(rawMonth, now)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.cancel = cancel
	l.gen++
	gen := l.gen
	l.mu.Unlock()

	filter.Month = m.String()
	filter.Cursor = ""
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Order == "" {
		filter.Order = "date.desc"
	}

	var (
		report  *services.MonthlyReport
		budgets []models.Budget
		types   []models.TransactionType
		page    *pagination.CursorPage[models.Transaction]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		report, err = l.api.GetMonthlyReport(gctx, m.String())
		return err
	})
	g.Go(func() (err error) {
		budgets, err = l.api.ListBudgets(gctx, m.String())
		return err
	})
	g.Go(func() (err error) {
		types, err = l.api.ListTransactionTypes(gctx)
		return err
	})
	g.Go(func() (err error) {
		page, err = l.api.ListTransactions(gctx, filter)
		return err
	})
	err := g.Wait()

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return nil, ErrSuperseded
	}
	l.cancel = nil
	if err != nil {
		return nil, err
	}

	data := &dashboard.Data{
		Month:        m.String(),
		Readonly:     month.Flags(m, now),
		Chart:        dashboard.ChartItems(report, dashboard.BudgetMap(budgets)),
		Total:        dashboard.Total(report),
		Transactions: dashboard.TransactionPage(page, types),
		Types:        types,
		Budgets:      budgets,
	}
	l.report = report
	l.data = data
	return data, nil
}

// Data returns the last loaded view, nil before the first successful load.
func (l *DashboardLoader) Data() *dashboard.Data {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.data
}

// ApplyBudget shows budget in the current view. It is the OnOptimistic
// callback of a BudgetMutator.
func (l *DashboardLoader) ApplyBudget(budget models.Budget) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.data == nil {
		return
	}
	l.setBudgets(dashboard.ReplaceBudget(l.data.Budgets, budget))
}

// RollbackBudget restores the budget a category had before a failed edit;
// nil means it had none and the report amount applies again.
func (l *DashboardLoader) RollbackBudget(typeID uint, previous *models.Budget) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.data == nil {
		return
	}
	budgets := make([]models.Budget, 0, len(l.data.Budgets))
	for _, b := range l.data.Budgets {
		if b.TypeID != typeID {
			budgets = append(budgets, b)
		}
	}
	if previous != nil {
		budgets = append(budgets, *previous)
	}
	l.setBudgets(budgets)
}

func (l *DashboardLoader) setBudgets(budgets []models.Budget) {
	next := *l.data
	next.Budgets = budgets
	next.Chart = dashboard.ChartItems(l.report, dashboard.BudgetMap(budgets))
	l.data = &next
}

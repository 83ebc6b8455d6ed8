package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"homebudget/internal/models"
)

const defaultSaveError = "Nie udało się zapisać budżetu."

// BudgetUpserter saves a budget. *Client satisfies it.
type BudgetUpserter interface {
	UpsertBudget(ctx context.Context, in UpsertBudgetInput) (*models.Budget, error)
}

// UpsertArgs describe one optimistic budget edit.
type UpsertArgs struct {
	MonthDate models.Date
	TypeID    uint
	Amount    decimal.Decimal
	// Previous is the row shown before the edit, nil when there was none.
	Previous *models.Budget

	OnOptimistic func(next models.Budget)
	OnRollback   func(previous *models.Budget)
	OnSuccess    func(saved models.Budget)
}

// BudgetMutator applies budget edits to the view before the server confirms
// them. Only the response to the most recent edit is applied; answers to
// older edits are dropped.
type BudgetMutator struct {
	api BudgetUpserter
	now func() time.Time
	seq atomic.Uint64

	mu     sync.Mutex
	saving bool
	err    string
}

// NewBudgetMutator creates a mutator saving through api.
func NewBudgetMutator(api BudgetUpserter) *BudgetMutator {
	return &BudgetMutator{api: api, now: time.Now}
}

// Saving reports whether the latest edit is still in flight.
func (m *BudgetMutator) Saving() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saving
}

// Err returns the message of the latest failed edit, or "".
func (m *BudgetMutator) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// UpsertOptimistic shows the edited budget right away, then saves it. On
// success the saved row replaces the optimistic one; on failure the previous
// row is restored and the error recorded.
func (m *BudgetMutator) UpsertOptimistic(ctx context.Context, args UpsertArgs) {
	id := m.seq.Add(1)

	m.mu.Lock()
	m.saving = true
	m.err = ""
	m.mu.Unlock()

	now := m.now().UTC()
	createdAt := now
	if args.Previous != nil {
		createdAt = args.Previous.CreatedAt
	}
	if args.OnOptimistic != nil {
		args.OnOptimistic(models.Budget{
			MonthDate: args.MonthDate,
			TypeID:    args.TypeID,
			Amount:    args.Amount,
			CreatedAt: createdAt,
			UpdatedAt: now,
		})
	}

	saved, err := m.api.UpsertBudget(ctx, UpsertBudgetInput{
		MonthDate: args.MonthDate,
		TypeID:    args.TypeID,
		Amount:    args.Amount,
	})

	m.mu.Lock()
	if id != m.seq.Load() {
		m.mu.Unlock()
		return
	}
	m.saving = false
	if err != nil {
		m.err = errorMessage(err)
	}
	m.mu.Unlock()

	if err != nil {
		if args.OnRollback != nil {
			args.OnRollback(args.Previous)
		}
		return
	}
	if args.OnOptimistic != nil {
		args.OnOptimistic(*saved)
	}
	if args.OnSuccess != nil {
		args.OnSuccess(*saved)
	}
}

// errorMessage prefers the server's message over transport detail.
func errorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return defaultSaveError
}

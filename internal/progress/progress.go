// Package progress computes spend-vs-budget progress and its status band.
package progress

import "github.com/shopspring/decimal"

// Status is the band a spend-to-budget ratio falls in.
type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusOver Status = "over"
)

var (
	hundred       = decimal.NewFromInt(100)
	warnThreshold = decimal.NewFromInt(80)
)

// StatusFor maps a percentage to its band: below 80 is ok, 80 to 100
// inclusive is warn, anything above is over.
func StatusFor(percent decimal.Decimal) Status {
	switch {
	case percent.LessThan(warnThreshold):
		return StatusOK
	case percent.LessThanOrEqual(hundred):
		return StatusWarn
	default:
		return StatusOver
	}
}

// Progress is the derived view of one spend/budget pair.
type Progress struct {
	Percent    decimal.Decimal `json:"percent"`
	Status     Status          `json:"status"`
	OverAmount decimal.Decimal `json:"over_amount"`
}

// Compute derives percent, status and over-amount. A missing or
// non-positive budget yields 0% and ok regardless of spend; the over-amount
// then treats the budget as 0.
func Compute(spend decimal.Decimal, budget *decimal.Decimal) Progress {
	effective := decimal.Zero
	if budget != nil {
		effective = *budget
	}

	over := spend.Sub(effective)
	if over.IsNegative() {
		over = decimal.Zero
	}

	if !effective.IsPositive() {
		return Progress{Percent: decimal.Zero, Status: StatusOK, OverAmount: over}
	}

	percent := spend.Mul(hundred).Div(effective)
	return Progress{
		Percent:    percent.Round(2),
		Status:     StatusFor(percent),
		OverAmount: over,
	}
}

// ComputeAmount is Compute for a budget that is always present.
func ComputeAmount(spend, budget decimal.Decimal) Progress {
	return Compute(spend, &budget)
}

// Package month models calendar months in UTC: parsing of "YYYY-MM" values,
// the half-open date window a month covers, and the editable-month rule.
package month

import (
	"fmt"
	"regexp"
	"time"

	"homebudget/internal/models"
)

var monthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Month is a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// Parse parses a "YYYY-MM" value.
func Parse(s string) (Month, error) {
	if !monthRegex.MatchString(s) {
		return Month{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return Of(t), nil
}

// Of returns the month containing t, evaluated in UTC.
func Of(t time.Time) Month {
	t = t.UTC()
	return Month{Year: t.Year(), Month: t.Month()}
}

// Start returns midnight UTC on the first day of the month.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Add returns the month n months away.
func (m Month) Add(n int) Month {
	return Of(m.Start().AddDate(0, n, 0))
}

func (m Month) String() string {
	return m.Start().Format("2006-01")
}

// FirstDay is the month_date key used by budgets.
func (m Month) FirstDay() models.Date {
	return models.DateOf(m.Start())
}

// LastDay is the last calendar day of the month.
func (m Month) LastDay() models.Date {
	return models.DateOf(m.Add(1).Start().AddDate(0, 0, -1))
}

// Window returns the half-open range [first day, first day of next month).
func (m Month) Window() (from, to models.Date) {
	return m.FirstDay(), m.Add(1).FirstDay()
}

// Contains reports whether d falls inside the month.
func (m Month) Contains(d models.Date) bool {
	from, to := m.Window()
	return d >= from && d < to
}

func (m Month) key() int {
	return m.Year*12 + int(m.Month) - 1
}

// Before reports whether m is strictly earlier than o.
func (m Month) Before(o Month) bool { return m.key() < o.key() }

// After reports whether m is strictly later than o.
func (m Month) After(o Month) bool { return m.key() > o.key() }

// NormalizeDate validates a "YYYY-MM-DD" value and returns the first day of
// its month.
func NormalizeDate(s string) (models.Date, error) {
	d, err := models.ParseDate(s)
	if err != nil {
		return "", err
	}
	return Of(d.Time()).FirstDay(), nil
}

// NormalizeParam resolves a user-supplied month, falling back to the current
// month for missing, malformed or future values.
func NormalizeParam(raw string, now time.Time) Month {
	current := Of(now)
	m, err := Parse(raw)
	if err != nil || m.After(current) {
		return current
	}
	return m
}

// ReadonlyFlags tells the UI which edits a month allows.
type ReadonlyFlags struct {
	IsReadonly          bool `json:"is_readonly"`
	CanEditBudgets      bool `json:"can_edit_budgets"`
	CanEditTransactions bool `json:"can_edit_transactions"`
}

// Flags returns the edit permissions for m. Only the current and the
// previous month are editable.
func Flags(m Month, now time.Time) ReadonlyFlags {
	current := Of(now)
	canEdit := m == current || m == current.Add(-1)
	return ReadonlyFlags{
		IsReadonly:          !canEdit,
		CanEditBudgets:      canEdit,
		CanEditTransactions: canEdit,
	}
}

// Option is an entry of the month selector.
type Option struct {
	Value      string `json:"value"`
	IsReadonly bool   `json:"is_readonly"`
}

// Options lists count months going back from the current one.
func Options(now time.Time, count int) []Option {
	current := Of(now)
	opts := make([]Option, 0, count)
	for i := 0; i < count; i++ {
		m := current.Add(-i)
		opts = append(opts, Option{Value: m.String(), IsReadonly: Flags(m, now).IsReadonly})
	}
	return opts
}

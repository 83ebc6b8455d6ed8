package dashboard

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"homebudget/internal/month"
)

var printer = message.NewPrinter(language.Polish)

var monthNames = [...]string{
	"Styczeń", "Luty", "Marzec", "Kwiecień", "Maj", "Czerwiec",
	"Lipiec", "Sierpień", "Wrzesień", "Październik", "Listopad", "Grudzień",
}

// FormatCurrency renders amount in złoty with Polish separators, e.g.
// "150,50 zł".
func FormatCurrency(amount decimal.Decimal, decimals int) string {
	f, _ := amount.Round(int32(decimals)).Float64()
	return printer.Sprintf("%v zł", number.Decimal(f, number.Scale(decimals)))
}

// FormatPercent renders a percentage with a fixed number of decimals.
func FormatPercent(percent decimal.Decimal, decimals int) string {
	return percent.StringFixed(int32(decimals)) + "%"
}

// MonthLabel renders m for the month selector, e.g. "Styczeń 2026".
func MonthLabel(m month.Month) string {
	return fmt.Sprintf("%s %d", monthNames[m.Month-1], m.Year)
}

// MonthOption is a month selector entry with its label.
type MonthOption struct {
	month.Option
	Label string `json:"label"`
}

// MonthOptions lists the selector entries, newest first.
func MonthOptions(opts []month.Option) []MonthOption {
	out := make([]MonthOption, 0, len(opts))
	for _, o := range opts {
		m, err := month.Parse(o.Value)
		if err != nil {
			continue
		}
		out = append(out, MonthOption{Option: o, Label: MonthLabel(m)})
	}
	return out
}

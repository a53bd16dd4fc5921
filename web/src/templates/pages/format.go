package pages

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatMetric renders a headline number with thousands separators. Whole
// numbers are shown without decimals, everything else with two.
func FormatMetric(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprintf("%.2f", v)
}

// FormatAverage always shows two decimals, with thousands separators.
func FormatAverage(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// FormatCurrency renders a prediction as "<symbol> <value>" with two decimals.
func FormatCurrency(symbol string, v float64) string {
	if symbol == "" {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%s %.2f", symbol, v)
}

package dashboard

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotApplicable is rendered wherever a value cannot be computed.
const NotApplicable = "N/A"

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

var amountPrinter = message.NewPrinter(language.AmericanEnglish)

// Utilization returns current as a percentage of limit. ok is false when the
// limit is zero or the ratio is not finite.
func Utilization(current, limit float64) (float64, bool) {
	if limit == 0 {
		return 0, false
	}
	pct := current / limit * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, false
	}
	return pct, true
}

// FormatCurrency renders a whole-unit amount with en-US grouping, e.g.
// "$2,450,000,000". Amounts outside the int64 range are rendered ungrouped.
func FormatCurrency(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = "USD"
	}
	prefix, ok := currencySymbols[code]
	if !ok {
		prefix = code + " "
	}
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	abs := rounded.Abs()
	var digits string
	if abs.LessThanOrEqual(decimal.NewFromInt(math.MaxInt64)) {
		digits = amountPrinter.Sprintf("%d", abs.IntPart())
	} else {
		digits = abs.StringFixed(0)
	}
	return sign + prefix + digits
}

// roundHalfUp rounds to the nearest integer with halves going up.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// FormatProgressPercent renders a whole-number percentage for progress bars.
func FormatProgressPercent(v float64) string {
	return strconv.FormatFloat(roundHalfUp(v), 'f', 0, 64) + "%"
}

// FormatTablePercent renders a one-decimal percentage for table cells.
func FormatTablePercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// FormatSignedPercent is FormatTablePercent with an explicit plus sign.
func FormatSignedPercent(v float64) string {
	if v > 0 {
		return "+" + FormatTablePercent(v)
	}
	return FormatTablePercent(v)
}

// FormatNumber renders the shortest representation of v.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatFixed renders v with a fixed number of decimals.
func FormatFixed(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}

// FormatThousands renders a count in thousands, e.g. 450000 -> "450K".
func FormatThousands(n int64) string {
	return strconv.FormatFloat(roundHalfUp(float64(n)/1000), 'f', 0, 64) + "K"
}

// WithUnit appends unit to value unless value already carries it.
func WithUnit(value, unit string) string {
	if unit == "" || strings.HasSuffix(value, unit) {
		return value
	}
	return value + unit
}

// UtilizationLabel renders a progress label, or N/A when the limit is zero.
func UtilizationLabel(current, limit float64) string {
	pct, ok := Utilization(current, limit)
	if !ok {
		return NotApplicable
	}
	return FormatProgressPercent(pct)
}

package listing

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"realty-client/internal/models"
)

// Defaults matching the marketplace's home market.
const (
	DefaultLocale   = "ru"
	DefaultCurrency = "сум"
)

// PriceFormatter renders prices with locale digit grouping and a fixed
// currency suffix.
type PriceFormatter struct {
	printer *message.Printer
	suffix  string
}

// NewPriceFormatter builds a formatter for a BCP 47 locale. An invalid
// locale falls back to DefaultLocale.
func NewPriceFormatter(locale, suffix string) *PriceFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Russian
	}
	return &PriceFormatter{printer: message.NewPrinter(tag), suffix: suffix}
}

var defaultFormatter = NewPriceFormatter(DefaultLocale, DefaultCurrency)

// FormatNumber groups digits per locale. Fractions are kept to two places
// and only when present.
func (f *PriceFormatter) FormatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return f.printer.Sprintf("%d", int64(v))
	}
	return f.printer.Sprintf("%.2f", v)
}

// FormatAmount is FormatNumber followed by the currency suffix.
func (f *PriceFormatter) FormatAmount(v float64) string {
	if f.suffix == "" {
		return f.FormatNumber(v)
	}
	return f.FormatNumber(v) + " " + f.suffix
}

// FormatPrice prefers the server's precomputed label and falls back to
// formatting the raw price for records that lack one.
func (f *PriceFormatter) FormatPrice(p *models.Property) string {
	if p == nil {
		return ""
	}
	if p.PriceDisplay != nil && strings.TrimSpace(p.PriceDisplay.Formatted) != "" {
		return p.PriceDisplay.Formatted
	}
	return f.FormatAmount(p.Price.Float())
}

// FormatPrice formats with the default locale and currency.
func FormatPrice(p *models.Property) string {
	return defaultFormatter.FormatPrice(p)
}

// FormatAmount formats with the default locale and currency.
func FormatAmount(v float64) string {
	return defaultFormatter.FormatAmount(v)
}

// MinimumRentalLabel describes the minimum rental term, or "" when the
// listing has none.
func MinimumRentalLabel(p *models.Property) string {
	if p == nil || p.PriceDisplay == nil || p.PriceDisplay.MinRentalDays == nil || *p.PriceDisplay.MinRentalDays <= 0 {
		return ""
	}

	unit := "мес"
	if p.PriceDisplay.Period != nil && *p.PriceDisplay.Period == "day" {
		unit = "сут"
	}
	return fmt.Sprintf("Минимум %d %s", *p.PriceDisplay.MinRentalDays, unit)
}

var typeLabels = map[models.PropertyType]string{
	models.PropertySale:      "Продажа",
	models.PropertyRent:      "Аренда",
	models.PropertyDailyRent: "Посуточно",
}

// TypeLabel is the display name of a listing type; unknown types are
// shown as sent.
func TypeLabel(t models.PropertyType) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

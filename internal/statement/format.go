package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Locale holds the few conventions a statement needs from a locale.
type Locale struct {
	Tag        string
	DateLayout string // short date form
	Lakh       bool   // group digits as 12,34,567 instead of 1,234,567
}

var locales = map[string]Locale{
	"en-IN": {Tag: "en-IN", DateLayout: "2/1/2006", Lakh: true},
	"en-US": {Tag: "en-US", DateLayout: "1/2/2006"},
	"en-GB": {Tag: "en-GB", DateLayout: "02/01/2006"},
}

func LookupLocale(tag string) (Locale, error) {
	l, ok := locales[tag]
	if !ok {
		return Locale{}, fmt.Errorf("statement: unsupported locale %q", tag)
	}
	return l, nil
}

// Formatter renders dates and money for one locale and currency.
type Formatter struct {
	locale   Locale
	currency *money.Currency
}

func NewFormatter(localeTag, currencyCode string) (*Formatter, error) {
	locale, err := LookupLocale(localeTag)
	if err != nil {
		return nil, err
	}
	cur := money.GetCurrency(currencyCode)
	if cur == nil {
		return nil, fmt.Errorf("statement: unknown currency %q", currencyCode)
	}
	return &Formatter{locale: locale, currency: cur}, nil
}

func (f *Formatter) Locale() Locale          { return f.locale }
func (f *Formatter) CurrencyCode() string    { return f.currency.Code }
func (f *Formatter) Date(t time.Time) string { return t.Format(f.locale.DateLayout) }

// Money formats amount as a currency string, e.g. ₹1,52,000.00 for en-IN/INR.
func (f *Formatter) Money(amount decimal.Decimal) string {
	if !f.locale.Lakh {
		minor := amount.Shift(int32(f.currency.Fraction)).Round(0).IntPart()
		return f.currency.Formatter().Format(minor)
	}

	fixed := amount.Abs().StringFixed(int32(f.currency.Fraction))
	whole, frac, _ := strings.Cut(fixed, ".")
	digits := groupLakh(whole, f.currency.Thousand)
	if frac != "" {
		digits += f.currency.Decimal + frac
	}

	result := strings.Replace(f.currency.Template, "1", digits, 1)
	result = strings.Replace(result, "$", f.currency.Grapheme, 1)
	if amount.IsNegative() {
		result = "-" + result
	}
	return result
}

// Amount is Money for debit and credit cells, where zero prints as "-".
func (f *Formatter) Amount(amount decimal.Decimal) string {
	if amount.IsZero() {
		return "-"
	}
	return f.Money(amount)
}

// groupLakh groups the last three digits, then every two: 1,52,000.
func groupLakh(whole, sep string) string {
	if len(whole) <= 3 {
		return whole
	}
	head, tail := whole[:len(whole)-3], whole[len(whole)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(append(groups, tail), sep)
}

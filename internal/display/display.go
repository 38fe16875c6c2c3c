// Package display renders balance sheets for humans.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mmynk/splitbook/internal/models"
)

// Formatter prints amounts rounded to cents with locale digit grouping.
type Formatter struct {
	p *message.Printer
}

// NewFormatter returns a Formatter for the given language.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{p: message.NewPrinter(tag)}
}

// ParseLanguage parses a BCP 47 tag such as "en" or "de-CH".
func ParseLanguage(s string) (language.Tag, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid display language %q: %w", s, err)
	}
	return tag, nil
}

// Amount rounds v half away from zero to two decimals and formats it.
func (f *Formatter) Amount(v float64) string {
	rounded := decimal.NewFromFloat(v).Round(2)
	if rounded.IsZero() {
		// avoid "-0.00"
		rounded = decimal.Zero
	}
	return f.p.Sprintf("%.2f", rounded.InexactFloat64())
}

// Signed formats v like Amount with an explicit sign for non-zero values.
func (f *Formatter) Signed(v float64) string {
	rounded := decimal.NewFromFloat(v).Round(2)
	switch rounded.Sign() {
	case 1:
		return "+" + f.Amount(v)
	case -1:
		return "-" + f.Amount(-v)
	default:
		return f.Amount(0)
	}
}

// WriteSheet prints the totals of a sheet followed by one line per
// counterparty. nameOf maps a user ID to a display name; IDs are printed
// when it is nil or returns "".
func (f *Formatter) WriteSheet(w io.Writer, snap models.SheetSnapshot, nameOf func(string) string) error {
	name := func(id string) string {
		if nameOf != nil {
			if n := nameOf(id); n != "" {
				return n
			}
		}
		return id
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Balance sheet of %s\n", name(snap.UserID))
	for _, line := range []struct {
		label string
		value float64
	}{
		{"Total paid:", snap.TotalPaid},
		{"Own expense:", snap.TotalOwnExpense},
		{"Total you owe:", snap.TotalYouOwe},
		{"Total you get back:", snap.TotalYouGetBack},
	} {
		fmt.Fprintf(&b, "  %-20s%s\n", line.label, f.Amount(line.value))
	}

	for _, bal := range snap.Balances {
		fmt.Fprintf(&b, "  %s: you owe %s, owes you %s (net %s)\n",
			name(bal.CounterpartyID),
			f.Amount(bal.OwedByMe),
			f.Amount(bal.OwedToMe),
			f.Signed(bal.Net()),
		)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

package conversation

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.Vietnamese)

// FormatAmount renders an amount in đồng with grouping separators,
// e.g. -60000 -> "-60.000 ₫".
func FormatAmount(v int64) string {
	return amountPrinter.Sprintf("%d ₫", v)
}

// FormatDate renders an ISO date (optionally with a time part) as DD/MM/YYYY.
// Unparseable input is returned unchanged so the transcript never loses data.
func FormatDate(s string) string {
	t, err := time.Parse("2006-01-02", dateOnly(s))
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}

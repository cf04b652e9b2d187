package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var dollarPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatDollars renders a whole-dollar amount with US digit grouping, e.g. $1,234,567.
func FormatDollars(amount int64) string {
	if amount < 0 {
		return dollarPrinter.Sprintf("-$%d", -amount)
	}
	return dollarPrinter.Sprintf("$%d", amount)
}

// undecided is shown for a month whose winner is not known yet.
const undecided = "TBD"

func winnerLabel(title string) string {
	if title == "" {
		return undecided
	}
	return title
}

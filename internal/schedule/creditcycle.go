package schedule

import "time"

// DueDateGraceDays is the fixed offset between the nominal due day of a
// credit card statement and the date the payment is actually due.
// Inherited billing convention, confirmed with the product owner before
// changing.
const DueDateGraceDays = 1

// CreditDueDate maps a transaction date to the date the charge falls
// due on a credit payment type with the given closing and due days.
//
// A transaction on or before this month's closing day belongs to this
// month's statement, later transactions to the next one. When the due
// day is before the closing day, payment happens in the month after the
// statement closes. Days outside the target month follow the standard
// calendar rollover of time.Date.
func CreditDueDate(transactionDate time.Time, closingDay, dueDay int) time.Time {
	t := AtNoon(transactionDate)
	year, month, day := t.Date()

	closing := time.Date(year, month, closingDay, 12, 0, 0, 0, t.Location())
	if day > closingDay {
		closing = time.Date(year, month+1, closingDay, 12, 0, 0, 0, t.Location())
	}

	dueMonth := closing.Month()
	dueYear := closing.Year()
	if dueDay < closingDay {
		next := time.Date(dueYear, dueMonth+1, 1, 12, 0, 0, 0, t.Location())
		dueYear, dueMonth = next.Year(), next.Month()
	}

	due := time.Date(dueYear, dueMonth, dueDay, 12, 0, 0, 0, t.Location())
	return due.AddDate(0, 0, DueDateGraceDays)
}

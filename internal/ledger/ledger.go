// Package ledger turns bookings and transfers into a dated stream of signed
// amounts and computes running balances over it.
package ledger

import (
	"sort"
	"time"

	"github.com/Freeeeeet/lesson_scheduler/internal/model"
	"github.com/shopspring/decimal"
)

// PaymentReference labels every payment entry.
const PaymentReference = "Payment"

// Entry is one line of a student's transaction history. Charges are negative.
type Entry struct {
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
	StudentID int64           `json:"student_id"`
	BookingID int64           `json:"booking_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// ChargeFor bills a booking's total price on its effective start date.
// The booking must have its term loaded when it has no explicit start date.
func ChargeFor(booking *model.LessonBooking, rate decimal.Decimal) Entry {
	return Entry{
		Date:      booking.EffectiveStartDate(),
		Amount:    booking.TotalPrice(rate).Neg(),
		Reference: booking.InvoiceNumber(),
		StudentID: booking.StudentID,
		BookingID: booking.ID,
	}
}

// PaymentFor credits a transfer on the day it was made.
func PaymentFor(transfer *model.Transfer) Entry {
	return Entry{
		Date:      transfer.Date,
		Amount:    transfer.Amount,
		Reference: PaymentReference,
		StudentID: transfer.StudentID,
		BookingID: transfer.LessonBookingID,
	}
}

// BalanceAt sums every entry dated on or before asOf.
func BalanceAt(entries []Entry, asOf time.Time) decimal.Decimal {
	sorted := SortByDate(entries)

	total := decimal.Zero
	for _, e := range sorted {
		if e.Date.After(asOf) {
			break
		}
		total = total.Add(e.Amount)
	}
	return total
}

// AssignRunningBalances returns a copy of entries, in the same order, with
// each Balance set to BalanceAt(entries, entry.Date). Entries sharing a date
// therefore share the same balance, inclusive of each other.
func AssignRunningBalances(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		e.Balance = BalanceAt(entries, e.Date)
		out[i] = e
	}
	return out
}

// SortByDate returns a copy sorted oldest first; equal dates keep input order.
func SortByDate(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// SortByDateDesc returns a copy sorted newest first; equal dates keep input order.
func SortByDateDesc(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

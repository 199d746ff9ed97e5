package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/lesson_scheduler/internal/calendar"
	"github.com/Freeeeeet/lesson_scheduler/internal/ledger"
	"github.com/Freeeeeet/lesson_scheduler/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balances(entries []ledger.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Reference + " " + e.Balance.StringFixed(2)
	}
	return out
}

// ledgerFixture books two lessons for parent and child and records one
// payment of 7.50 from the parent before term.
func ledgerFixture(t *testing.T) (*fixture, *LedgerService) {
	t.Helper()

	f, _ := bookedFixture(t)
	ctx := context.Background()

	childReq := f.addRequest(childID)
	in := mondayInput(1)
	in.Day = model.Tuesday
	_, err := f.bookingService().Book(ctx, childReq.ID, adminID, in)
	require.NoError(t, err)

	_, err = f.transferService().Register(ctx, TransferInput{
		InvoiceNumber: "0001-001",
		Date:          calendar.Date(2022, 7, 30),
		Amount:        decimal.RequireFromString("7.50"),
	})
	require.NoError(t, err)

	svc := NewLedgerService(f.bookings, f.transfers, f.users, decimal.NewFromInt(5), "GBP", f.logger)
	return f, svc
}

func TestLedgerService_StudentTransactions(t *testing.T) {
	_, svc := ledgerFixture(t)
	ctx := context.Background()

	entries, err := svc.StudentTransactions(ctx, parentID)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001-001 -2.50", "Payment 7.50"}, balances(entries))
	assert.Equal(t, calendar.Date(2022, 9, 1), entries[0].Date)

	child, err := svc.StudentTransactions(ctx, childID)
	require.NoError(t, err)
	assert.Equal(t, []string{"0002-002 -10.00"}, balances(child))

	_, err = svc.StudentTransactions(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLedgerService_AllTransactions(t *testing.T) {
	_, svc := ledgerFixture(t)

	entries, err := svc.AllTransactions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"0001-001 -12.50",
		"0002-002 -12.50",
		"Payment 7.50",
	}, balances(entries))
}

func TestLedgerService_OutstandingBalances(t *testing.T) {
	_, svc := ledgerFixture(t)

	debtors, err := svc.OutstandingBalances(context.Background())
	require.NoError(t, err)
	require.Len(t, debtors, 2)

	assert.Equal(t, parentID, debtors[0].StudentID)
	assert.Equal(t, "-2.50 GBP", svc.Format(debtors[0].Balance))
	assert.Equal(t, childID, debtors[1].StudentID)
	assert.Equal(t, "-10.00 GBP", svc.Format(debtors[1].Balance))
}

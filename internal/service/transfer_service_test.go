package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/lesson_scheduler/internal/calendar"
	"github.com/Freeeeeet/lesson_scheduler/internal/model"
	"github.com/Freeeeeet/lesson_scheduler/internal/scheduling"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bookedFixture holds one booking for parentID: invoice 0001-001.
func bookedFixture(t *testing.T) (*fixture, *model.LessonBooking) {
	t.Helper()

	f := newFixture()
	term := f.addAutumnTerm()
	req := f.addRequest(parentID)

	booking, err := f.bookingService().Book(context.Background(), req.ID, adminID, mondayInput(term.ID))
	require.NoError(t, err)
	return f, booking
}

func TestTransferService_Register(t *testing.T) {
	f, booking := bookedFixture(t)

	transfer, err := f.transferService().Register(context.Background(), TransferInput{
		InvoiceNumber: "0001-001",
		Date:          calendar.Date(2022, 7, 30),
		Amount:        decimal.RequireFromString("7.5"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, transfer.Reference)
	assert.Equal(t, booking.ID, transfer.LessonBookingID)
	assert.Equal(t, parentID, transfer.StudentID)
	assert.Equal(t, "7.50", transfer.Amount.StringFixed(2))
	require.Len(t, f.transfers.transfers, 1)
}

func TestTransferService_RegisterKeepsExactAmount(t *testing.T) {
	f, _ := bookedFixture(t)

	for _, raw := range []string{"999999.99", "10.500"} {
		amount := decimal.RequireFromString(raw)
		transfer, err := f.transferService().Register(context.Background(), TransferInput{
			InvoiceNumber: "0001-001",
			Date:          calendar.Date(2022, 8, 1),
			Amount:        amount,
		})
		require.NoError(t, err, raw)
		assert.True(t, amount.Equal(transfer.Amount), raw)
	}
}

func TestTransferService_RegisterViolations(t *testing.T) {
	tests := []struct {
		name     string
		in       TransferInput
		expected []string
	}{
		{
			name: "future date",
			in: TransferInput{
				InvoiceNumber: "0001-001",
				Date:          calendar.Date(2022, 8, 2),
				Amount:        decimal.NewFromInt(10),
			},
			expected: []string{"date"},
		},
		{
			name: "amount below minimum",
			in: TransferInput{
				InvoiceNumber: "0001-001",
				Date:          calendar.Date(2022, 8, 1),
				Amount:        decimal.Zero,
			},
			expected: []string{"balance"},
		},
		{
			name: "amount too large",
			in: TransferInput{
				InvoiceNumber: "0001-001",
				Date:          calendar.Date(2022, 8, 1),
				Amount:        decimal.NewFromInt(1_000_000),
			},
			expected: []string{"balance"},
		},
		{
			name: "more than two decimal places",
			in: TransferInput{
				InvoiceNumber: "0001-001",
				Date:          calendar.Date(2022, 8, 1),
				Amount:        decimal.RequireFromString("10.005"),
			},
			expected: []string{"balance"},
		},
		{
			name: "sub-penny amount",
			in: TransferInput{
				InvoiceNumber: "0001-001",
				Date:          calendar.Date(2022, 8, 1),
				Amount:        decimal.RequireFromString("0.0149"),
			},
			expected: []string{"balance"},
		},
		{
			name: "would round up to the limit",
			in: TransferInput{
				InvoiceNumber: "0001-001",
				Date:          calendar.Date(2022, 8, 1),
				Amount:        decimal.RequireFromString("999999.995"),
			},
			expected: []string{"balance"},
		},
		{
			name: "unknown invoice",
			in: TransferInput{
				InvoiceNumber: "0002-001",
				Date:          calendar.Date(2022, 8, 1),
				Amount:        decimal.NewFromInt(10),
			},
			expected: []string{"invoice_ref_no"},
		},
		{
			name:     "everything wrong",
			in:       TransferInput{Date: calendar.Date(2022, 9, 1), Amount: decimal.NewFromInt(-5)},
			expected: []string{"invoice_ref_no", "date", "balance"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := bookedFixture(t)

			transfer, err := f.transferService().Register(context.Background(), tt.in)
			assert.Nil(t, transfer)

			violations, ok := scheduling.AsViolations(err)
			require.True(t, ok)
			assert.Equal(t, tt.expected, violations.Fields())
			assert.Empty(t, f.transfers.transfers)
		})
	}
}

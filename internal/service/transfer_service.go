package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/lesson_scheduler/internal/calendar"
	"github.com/Freeeeeet/lesson_scheduler/internal/model"
	"github.com/Freeeeeet/lesson_scheduler/internal/scheduling"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransferService struct {
	transfers TransferStore
	bookings  BookingStore
	validator *validator.Validate
	now       scheduling.Clock
	logger    *zap.Logger
}

func NewTransferService(transfers TransferStore, bookings BookingStore, now scheduling.Clock, logger *zap.Logger) *TransferService {
	if now == nil {
		now = time.Now
	}
	return &TransferService{
		transfers: transfers,
		bookings:  bookings,
		validator: newValidator(),
		now:       now,
		logger:    logger,
	}
}

// Register сохраняет банковский перевод по номеру счёта бронирования
func (s *TransferService) Register(ctx context.Context, in TransferInput) (*model.Transfer, error) {
	violations := validateInput(s.validator, in)

	date := calendar.DateOf(in.Date)
	if !in.Date.IsZero() && date.After(calendar.Today(s.now())) {
		violations.Add("date", "The transfer date must not be in the future")
	}

	// Сумма хранится как есть, поэтому лишние знаки после запятой отклоняются
	if !in.Amount.Equal(in.Amount.Truncate(transferAmountPlaces)) {
		violations.Add("balance", "Ensure that there are no more than 2 decimal places")
	} else if in.Amount.LessThan(minTransferAmount) {
		violations.Add("balance", "Ensure this value is greater than or equal to 0.01")
	} else if !in.Amount.LessThan(maxTransferAmount) {
		violations.Add("balance", "Ensure this value is less than 1000000")
	}

	var booking *model.LessonBooking
	if in.InvoiceNumber != "" {
		found, err := findByInvoice(ctx, s.bookings, in.InvoiceNumber)
		switch {
		case errors.Is(err, ErrNotFound):
			violations.Add("invoice_ref_no", "No invoice associated with that reference number")
		case err != nil:
			return nil, err
		default:
			booking = found
		}
	}

	if len(violations) > 0 {
		return nil, violations
	}

	transfer := &model.Transfer{
		Reference:       uuid.New(),
		Date:            date,
		Amount:          in.Amount,
		LessonBookingID: booking.ID,
		StudentID:       booking.StudentID,
	}

	if err := s.transfers.Create(ctx, transfer); err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}

	s.logger.Info("Transfer registered",
		zap.Int64("transfer_id", transfer.ID),
		zap.String("reference", transfer.Reference.String()),
		zap.String("invoice", booking.InvoiceNumber()),
		zap.String("amount", transfer.Amount.StringFixed(2)),
	)

	return transfer, nil
}

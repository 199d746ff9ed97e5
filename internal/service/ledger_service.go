package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/Freeeeeet/lesson_scheduler/internal/ledger"
	"github.com/Freeeeeet/lesson_scheduler/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StudentBalance итоговый баланс студента
type StudentBalance struct {
	StudentID int64
	Balance   decimal.Decimal
}

type LedgerService struct {
	bookings  BookingStore
	transfers TransferStore
	users     UserStore
	rate      decimal.Decimal
	currency  string
	logger    *zap.Logger
}

func NewLedgerService(
	bookings BookingStore,
	transfers TransferStore,
	users UserStore,
	rate decimal.Decimal,
	currency string,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		bookings:  bookings,
		transfers: transfers,
		users:     users,
		rate:      rate,
		currency:  currency,
		logger:    logger,
	}
}

// StudentTransactions возвращает счета и платежи студента с балансом, новые сверху
func (s *LedgerService) StudentTransactions(ctx context.Context, studentID int64) ([]ledger.Entry, error) {
	student, err := s.users.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, notFound("student", studentID)
	}

	ids := []int64{studentID}
	bookings, err := s.bookings.GetByStudentIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}
	transfers, err := s.transfers.GetByStudentIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get transfers: %w", err)
	}

	return s.history(bookings, transfers), nil
}

// AllTransactions возвращает историю всей школы, новые сверху
func (s *LedgerService) AllTransactions(ctx context.Context) ([]ledger.Entry, error) {
	bookings, transfers, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.history(bookings, transfers), nil
}

// OutstandingBalances возвращает студентов с отрицательным балансом
func (s *LedgerService) OutstandingBalances(ctx context.Context) ([]StudentBalance, error) {
	bookings, transfers, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[int64]decimal.Decimal)
	for _, e := range s.entries(bookings, transfers) {
		totals[e.StudentID] = totals[e.StudentID].Add(e.Amount)
	}

	var debtors []StudentBalance
	for studentID, balance := range totals {
		if balance.IsNegative() {
			debtors = append(debtors, StudentBalance{StudentID: studentID, Balance: balance})
		}
	}
	sort.Slice(debtors, func(i, j int) bool {
		return debtors[i].StudentID < debtors[j].StudentID
	})

	return debtors, nil
}

// Format форматирует сумму в валюте школы
func (s *LedgerService) Format(amount decimal.Decimal) string {
	return ledger.FormatCurrency(amount, s.currency)
}

func (s *LedgerService) loadAll(ctx context.Context) ([]*model.LessonBooking, []*model.Transfer, error) {
	bookings, err := s.bookings.GetAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("get bookings: %w", err)
	}
	transfers, err := s.transfers.GetAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("get transfers: %w", err)
	}
	return bookings, transfers, nil
}

func (s *LedgerService) entries(bookings []*model.LessonBooking, transfers []*model.Transfer) []ledger.Entry {
	entries := make([]ledger.Entry, 0, len(bookings)+len(transfers))
	for _, t := range transfers {
		entries = append(entries, ledger.PaymentFor(t))
	}
	for _, b := range bookings {
		entries = append(entries, ledger.ChargeFor(b, s.rate))
	}
	return entries
}

func (s *LedgerService) history(bookings []*model.LessonBooking, transfers []*model.Transfer) []ledger.Entry {
	return ledger.SortByDateDesc(ledger.AssignRunningBalances(s.entries(bookings, transfers)))
}

package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/lesson_scheduler/internal/model"
	"github.com/Freeeeeet/lesson_scheduler/internal/repository/base"
	"github.com/Freeeeeet/lesson_scheduler/internal/scheduling"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type BookingService struct {
	tx        TxManager
	bookings  BookingStore
	requests  RequestStore
	terms     TermStore
	users     UserStore
	rules     *scheduling.BookingValidator
	validator *validator.Validate
	logger    *zap.Logger
}

func NewBookingService(
	tx TxManager,
	bookings BookingStore,
	requests RequestStore,
	terms TermStore,
	users UserStore,
	now scheduling.Clock,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		tx:        tx,
		bookings:  bookings,
		requests:  requests,
		terms:     terms,
		users:     users,
		rules:     scheduling.NewBookingValidator(now),
		validator: newValidator(),
		logger:    logger,
	}
}

// Book создаёт бронирование по запросу. Проверка занятости учителя и запись
// выполняются в одной транзакции под блокировкой строки учителя.
func (s *BookingService) Book(ctx context.Context, requestID, adminID int64, in BookingInput) (*model.LessonBooking, error) {
	if violations := validateInput(s.validator, in); len(violations) > 0 {
		return nil, violations
	}

	var booking *model.LessonBooking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		req, err := s.requests.GetByID(ctx, requestID)
		if err != nil {
			return fmt.Errorf("get lesson request: %w", err)
		}
		if req == nil {
			return notFound("lesson request", requestID)
		}
		if req.IsFulfilled() {
			return ErrAlreadyBooked
		}

		admin, err := s.users.GetAdminByID(ctx, adminID)
		if err != nil {
			return fmt.Errorf("get admin: %w", err)
		}
		if admin == nil {
			return notFound("admin", adminID)
		}

		candidate, existing, err := s.prepare(ctx, in)
		if err != nil {
			return err
		}
		candidate.AdminID = &admin.ID

		booking, err = s.rules.Validate(candidate, req, existing)
		if err != nil {
			return err
		}

		if err := s.bookings.Create(ctx, booking); err != nil {
			if base.IsUniqueViolation(err) {
				return ErrAlreadyBooked
			}
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Lesson booked",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("request_id", requestID),
		zap.Int64("teacher_id", booking.TeacherID),
		zap.Int64("admin_id", adminID),
		zap.String("day", string(booking.Day)),
		zap.String("start_time", booking.StartTime.String()),
		zap.String("invoice", booking.InvoiceNumber()),
	)

	return booking, nil
}

// Update перепроверяет и сохраняет изменённое бронирование. Само бронирование
// исключается из проверки занятости учителя.
func (s *BookingService) Update(ctx context.Context, bookingID int64, in BookingInput) (*model.LessonBooking, error) {
	if violations := validateInput(s.validator, in); len(violations) > 0 {
		return nil, violations
	}

	var updated *model.LessonBooking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("get booking: %w", err)
		}
		if current == nil {
			return notFound("lesson booking", bookingID)
		}

		req, err := s.requests.GetByID(ctx, current.LessonRequestID)
		if err != nil {
			return fmt.Errorf("get lesson request: %w", err)
		}
		if req == nil {
			return notFound("lesson request", current.LessonRequestID)
		}

		candidate, existing, err := s.prepare(ctx, in)
		if err != nil {
			return err
		}
		candidate.AdminID = current.AdminID

		updated, err = s.rules.Validate(candidate, req, scheduling.ExcludeBooking(existing, bookingID))
		if err != nil {
			return err
		}
		updated.ID = current.ID
		updated.CreatedAt = current.CreatedAt

		if err := s.bookings.Update(ctx, updated); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Lesson booking updated",
		zap.Int64("booking_id", updated.ID),
		zap.Int64("teacher_id", updated.TeacherID),
	)

	return updated, nil
}

// prepare загружает семестр, блокирует учителя и читает его бронирования
func (s *BookingService) prepare(ctx context.Context, in BookingInput) (scheduling.Candidate, []*model.LessonBooking, error) {
	term, err := s.terms.GetByID(ctx, in.TermID)
	if err != nil {
		return scheduling.Candidate{}, nil, fmt.Errorf("get term: %w", err)
	}
	if term == nil {
		return scheduling.Candidate{}, nil, notFound("school term", in.TermID)
	}

	teacher, err := s.users.LockTeacher(ctx, in.TeacherID)
	if err != nil {
		return scheduling.Candidate{}, nil, fmt.Errorf("lock teacher: %w", err)
	}
	if teacher == nil {
		return scheduling.Candidate{}, nil, notFound("teacher", in.TeacherID)
	}

	existing, err := s.bookings.GetByTeacherID(ctx, teacher.ID)
	if err != nil {
		return scheduling.Candidate{}, nil, fmt.Errorf("get teacher bookings: %w", err)
	}

	candidate := scheduling.Candidate{
		Term:      term,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		TeacherID: teacher.ID,
		Day:       in.Day,
		StartTime: in.StartTime,
		Duration:  in.Duration,
		Quantity:  in.Quantity,
		Interval:  in.Interval,
	}
	return candidate, existing, nil
}

// Delete удаляет бронирование; запрос снова можно бронировать
func (s *BookingService) Delete(ctx context.Context, bookingID int64) error {
	if _, err := s.Get(ctx, bookingID); err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	s.logger.Info("Lesson booking deleted", zap.Int64("booking_id", bookingID))
	return nil
}

// Get получает бронирование по ID
func (s *BookingService) Get(ctx context.Context, bookingID int64) (*model.LessonBooking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, notFound("lesson booking", bookingID)
	}
	return booking, nil
}

// ListForTeacher получает расписание учителя
func (s *BookingService) ListForTeacher(ctx context.Context, teacherID int64) ([]*model.LessonBooking, error) {
	teacher, err := s.users.GetTeacherByID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return nil, notFound("teacher", teacherID)
	}
	return s.bookings.GetByTeacherID(ctx, teacherID)
}

// ListForStudent получает бронирования студента и его детей
func (s *BookingService) ListForStudent(ctx context.Context, studentID int64) ([]*model.LessonBooking, error) {
	ids, err := familyIDs(ctx, s.users, studentID)
	if err != nil {
		return nil, err
	}
	return s.bookings.GetByStudentIDs(ctx, ids)
}

// ListAll получает все бронирования школы
func (s *BookingService) ListAll(ctx context.Context) ([]*model.LessonBooking, error) {
	return s.bookings.GetAll(ctx)
}

// FindByInvoiceNumber находит бронирование по номеру счёта вида "0007-012"
func (s *BookingService) FindByInvoiceNumber(ctx context.Context, invoice string) (*model.LessonBooking, error) {
	return findByInvoice(ctx, s.bookings, invoice)
}

func findByInvoice(ctx context.Context, bookings BookingStore, invoice string) (*model.LessonBooking, error) {
	invoice = strings.TrimSpace(invoice)
	_, bookingPart, ok := strings.Cut(invoice, "-")
	if !ok {
		return nil, fmt.Errorf("invoice %q: %w", invoice, ErrNotFound)
	}
	bookingID, err := strconv.ParseInt(bookingPart, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invoice %q: %w", invoice, ErrNotFound)
	}

	booking, err := bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	// Номер счёта должен совпасть полностью, включая ID студента
	if booking == nil || booking.InvoiceNumber() != invoice {
		return nil, fmt.Errorf("invoice %q: %w", invoice, ErrNotFound)
	}
	return booking, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/lesson_scheduler/internal/calendar"
	"github.com/Freeeeeet/lesson_scheduler/internal/model"
	"github.com/Freeeeeet/lesson_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(b *base.Repository) *BookingRepository {
	return &BookingRepository{Repository: b}
}

// Бронирование всегда читается вместе с семестром и студентом запроса:
// без них нельзя вычислить фактические даты и номер счёта
const bookingSelect = `
	SELECT b.id, b.lesson_request_id, b.term_id, b.teacher_id, b.admin_id, b.start_date, b.end_date,
	       b.start_hour, b.start_minute, b.day, b.duration, b.quantity, b.interval_weeks,
	       b.created_at, b.updated_at,
	       t.id, t.label, t.start_date, t.end_date,
	       r.student_id
	FROM lesson_bookings b
	JOIN school_terms t ON t.id = b.term_id
	JOIN lesson_requests r ON r.id = b.lesson_request_id
`

func scanBooking(row pgx.Row) (*model.LessonBooking, error) {
	var (
		booking      model.LessonBooking
		term         model.SchoolTerm
		hour, minute int
	)
	err := row.Scan(
		&booking.ID,
		&booking.LessonRequestID,
		&booking.TermID,
		&booking.TeacherID,
		&booking.AdminID,
		&booking.StartDate,
		&booking.EndDate,
		&hour,
		&minute,
		&booking.Day,
		&booking.Duration,
		&booking.Quantity,
		&booking.Interval,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&term.ID,
		&term.Label,
		&term.StartDate,
		&term.EndDate,
		&booking.StudentID,
	)
	if err != nil {
		return nil, err
	}

	booking.StartTime = calendar.Clock(hour, minute)
	booking.Term = &term
	return &booking, nil
}

// Create создаёт новое бронирование
func (r *BookingRepository) Create(ctx context.Context, booking *model.LessonBooking) error {
	query := `
		INSERT INTO lesson_bookings (lesson_request_id, term_id, teacher_id, admin_id, start_date, end_date,
			start_hour, start_minute, day, duration, quantity, interval_weeks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		booking.LessonRequestID,
		booking.TermID,
		booking.TeacherID,
		booking.AdminID,
		booking.StartDate,
		booking.EndDate,
		booking.StartTime.Hour(),
		booking.StartTime.Minute(),
		booking.Day,
		booking.Duration,
		booking.Quantity,
		booking.Interval,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create lesson booking: %w", err)
	}

	return nil
}

// Update обновляет бронирование. Запрос и автор бронирования не меняются.
func (r *BookingRepository) Update(ctx context.Context, booking *model.LessonBooking) error {
	query := `
		UPDATE lesson_bookings
		SET term_id = $2, teacher_id = $3, start_date = $4, end_date = $5, start_hour = $6,
			start_minute = $7, day = $8, duration = $9, quantity = $10, interval_weeks = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.QueryRow(
		ctx, query,
		booking.ID,
		booking.TermID,
		booking.TeacherID,
		booking.StartDate,
		booking.EndDate,
		booking.StartTime.Hour(),
		booking.StartTime.Minute(),
		booking.Day,
		booking.Duration,
		booking.Quantity,
		booking.Interval,
	).Scan(&booking.UpdatedAt)

	if err != nil {
		return fmt.Errorf("update lesson booking: %w", err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.LessonBooking, error) {
	booking, err := scanBooking(r.QueryRow(ctx, bookingSelect+` WHERE b.id = $1`, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson booking by id: %w", err)
	}

	return booking, nil
}

// GetByRequestID получает бронирование, созданное по запросу
func (r *BookingRepository) GetByRequestID(ctx context.Context, requestID int64) (*model.LessonBooking, error) {
	booking, err := scanBooking(r.QueryRow(ctx, bookingSelect+` WHERE b.lesson_request_id = $1`, requestID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson booking by request: %w", err)
	}

	return booking, nil
}

// GetByTeacherID получает все бронирования учителя
func (r *BookingRepository) GetByTeacherID(ctx context.Context, teacherID int64) ([]*model.LessonBooking, error) {
	return r.list(ctx, bookingSelect+` WHERE b.teacher_id = $1 ORDER BY b.day, b.start_hour, b.start_minute`, teacherID)
}

// GetByStudentIDs получает все бронирования студентов
func (r *BookingRepository) GetByStudentIDs(ctx context.Context, studentIDs []int64) ([]*model.LessonBooking, error) {
	return r.list(ctx, bookingSelect+` WHERE r.student_id = ANY($1) ORDER BY b.created_at DESC`, studentIDs)
}

// GetAll получает все бронирования школы
func (r *BookingRepository) GetAll(ctx context.Context) ([]*model.LessonBooking, error) {
	return r.list(ctx, bookingSelect+` ORDER BY b.created_at DESC`)
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]*model.LessonBooking, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lesson bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*model.LessonBooking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

// Delete удаляет бронирование; запрос снова становится свободным
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM lesson_bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lesson booking: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("booking not found")
	}

	return nil
}

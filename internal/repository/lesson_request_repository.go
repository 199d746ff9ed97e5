package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/lesson_scheduler/internal/model"
	"github.com/Freeeeeet/lesson_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

type LessonRequestRepository struct {
	*base.Repository
}

func NewLessonRequestRepository(b *base.Repository) *LessonRequestRepository {
	return &LessonRequestRepository{Repository: b}
}

// lesson_bookings.lesson_request_id уникален, поэтому JOIN даёт не больше одной строки
const requestSelect = `
	SELECT r.id, r.student_id, r.duration, r.quantity, r.interval_weeks, r.availability, r.notes,
	       r.previous_booking_id, r.created_at, b.id
	FROM lesson_requests r
	LEFT JOIN lesson_bookings b ON b.lesson_request_id = r.id
`

func scanRequest(row pgx.Row) (*model.LessonRequest, error) {
	var (
		req          model.LessonRequest
		availability string
	)
	err := row.Scan(
		&req.ID,
		&req.StudentID,
		&req.Duration,
		&req.Quantity,
		&req.Interval,
		&availability,
		&req.Notes,
		&req.PreviousBookingID,
		&req.CreatedAt,
		&req.BookingID,
	)
	if err != nil {
		return nil, err
	}

	req.Availability, err = model.ParseWeekdays(availability)
	if err != nil {
		return nil, fmt.Errorf("parse availability of request %d: %w", req.ID, err)
	}

	return &req, nil
}

// Create создаёт новый запрос на уроки
func (r *LessonRequestRepository) Create(ctx context.Context, req *model.LessonRequest) error {
	query := `
		INSERT INTO lesson_requests (student_id, duration, quantity, interval_weeks, availability, notes, previous_booking_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		req.StudentID,
		req.Duration,
		req.Quantity,
		req.Interval,
		model.JoinWeekdays(req.Availability),
		req.Notes,
		req.PreviousBookingID,
	).Scan(&req.ID, &req.CreatedAt)

	if err != nil {
		return fmt.Errorf("create lesson request: %w", err)
	}

	return nil
}

// GetByID получает запрос по ID
func (r *LessonRequestRepository) GetByID(ctx context.Context, id int64) (*model.LessonRequest, error) {
	req, err := scanRequest(r.QueryRow(ctx, requestSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson request by id: %w", err)
	}

	return req, nil
}

// GetByStudentIDs получает запросы студентов (например, родителя и его детей)
func (r *LessonRequestRepository) GetByStudentIDs(ctx context.Context, studentIDs []int64) ([]*model.LessonRequest, error) {
	return r.list(ctx, requestSelect+` WHERE r.student_id = ANY($1) ORDER BY r.created_at DESC`, studentIDs)
}

// GetAll получает все запросы
func (r *LessonRequestRepository) GetAll(ctx context.Context) ([]*model.LessonRequest, error) {
	return r.list(ctx, requestSelect+` ORDER BY r.created_at DESC`)
}

func (r *LessonRequestRepository) list(ctx context.Context, query string, args ...any) ([]*model.LessonRequest, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lesson requests: %w", err)
	}
	defer rows.Close()

	var requests []*model.LessonRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// Update обновляет параметры запроса
func (r *LessonRequestRepository) Update(ctx context.Context, req *model.LessonRequest) error {
	query := `
		UPDATE lesson_requests
		SET duration = $2, quantity = $3, interval_weeks = $4, availability = $5, notes = $6
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query,
		req.ID,
		req.Duration,
		req.Quantity,
		req.Interval,
		model.JoinWeekdays(req.Availability),
		req.Notes,
	)
	if err != nil {
		return fmt.Errorf("update lesson request: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lesson request not found")
	}

	return nil
}

// Delete удаляет запрос
func (r *LessonRequestRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM lesson_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lesson request: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lesson request not found")
	}

	return nil
}

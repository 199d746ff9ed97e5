package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/lesson_scheduler/internal/model"
	"github.com/Freeeeeet/lesson_scheduler/internal/repository/base"
)

type TransferRepository struct {
	*base.Repository
}

func NewTransferRepository(b *base.Repository) *TransferRepository {
	return &TransferRepository{Repository: b}
}

const transferSelect = `
	SELECT tr.id, tr.reference, tr.date, tr.amount, tr.lesson_booking_id, tr.created_at, r.student_id
	FROM transfers tr
	JOIN lesson_bookings b ON b.id = tr.lesson_booking_id
	JOIN lesson_requests r ON r.id = b.lesson_request_id
`

// Create сохраняет перевод
func (r *TransferRepository) Create(ctx context.Context, transfer *model.Transfer) error {
	query := `
		INSERT INTO transfers (reference, date, amount, lesson_booking_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query,
		transfer.Reference,
		transfer.Date,
		transfer.Amount,
		transfer.LessonBookingID,
	).Scan(&transfer.ID, &transfer.CreatedAt)

	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}

	return nil
}

// GetByStudentIDs получает переводы по бронированиям студентов
func (r *TransferRepository) GetByStudentIDs(ctx context.Context, studentIDs []int64) ([]*model.Transfer, error) {
	return r.list(ctx, transferSelect+` WHERE r.student_id = ANY($1) ORDER BY tr.date`, studentIDs)
}

// GetAll получает все переводы школы
func (r *TransferRepository) GetAll(ctx context.Context) ([]*model.Transfer, error) {
	return r.list(ctx, transferSelect+` ORDER BY tr.date`)
}

func (r *TransferRepository) list(ctx context.Context, query string, args ...any) ([]*model.Transfer, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []*model.Transfer
	for rows.Next() {
		var transfer model.Transfer
		err := rows.Scan(
			&transfer.ID,
			&transfer.Reference,
			&transfer.Date,
			&transfer.Amount,
			&transfer.LessonBookingID,
			&transfer.CreatedAt,
			&transfer.StudentID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		transfers = append(transfers, &transfer)
	}

	return transfers, rows.Err()
}

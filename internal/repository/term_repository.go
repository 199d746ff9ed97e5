package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/lesson_scheduler/internal/model"
	"github.com/Freeeeeet/lesson_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

type TermRepository struct {
	*base.Repository
}

func NewTermRepository(b *base.Repository) *TermRepository {
	return &TermRepository{Repository: b}
}

const termColumns = `id, label, start_date, end_date`

func scanTerm(row pgx.Row) (*model.SchoolTerm, error) {
	var term model.SchoolTerm
	err := row.Scan(&term.ID, &term.Label, &term.StartDate, &term.EndDate)
	if err != nil {
		return nil, err
	}
	return &term, nil
}

// Create создаёт новый семестр
func (r *TermRepository) Create(ctx context.Context, term *model.SchoolTerm) error {
	query := `
		INSERT INTO school_terms (label, start_date, end_date)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.QueryRow(ctx, query, term.Label, term.StartDate, term.EndDate).Scan(&term.ID)
	if err != nil {
		return fmt.Errorf("create school term: %w", err)
	}

	return nil
}

// GetByID получает семестр по ID
func (r *TermRepository) GetByID(ctx context.Context, id int64) (*model.SchoolTerm, error) {
	query := `SELECT ` + termColumns + ` FROM school_terms WHERE id = $1`

	term, err := scanTerm(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get school term by id: %w", err)
	}

	return term, nil
}

// List получает все семестры по дате начала
func (r *TermRepository) List(ctx context.Context) ([]*model.SchoolTerm, error) {
	query := `SELECT ` + termColumns + ` FROM school_terms ORDER BY start_date`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list school terms: %w", err)
	}
	defer rows.Close()

	var terms []*model.SchoolTerm
	for rows.Next() {
		term, err := scanTerm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan school term: %w", err)
		}
		terms = append(terms, term)
	}

	return terms, rows.Err()
}

// Update обновляет семестр
func (r *TermRepository) Update(ctx context.Context, term *model.SchoolTerm) error {
	query := `
		UPDATE school_terms
		SET label = $2, start_date = $3, end_date = $4
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query, term.ID, term.Label, term.StartDate, term.EndDate)
	if err != nil {
		return fmt.Errorf("update school term: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("school term not found")
	}

	return nil
}

// Delete удаляет семестр (бронирования удалятся каскадом)
func (r *TermRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM school_terms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete school term: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("school term not found")
	}

	return nil
}

// LockAll блокирует таблицу семестров на запись до конца транзакции
func (r *TermRepository) LockAll(ctx context.Context) error {
	_, err := r.ExecAffected(ctx, `LOCK TABLE school_terms IN SHARE ROW EXCLUSIVE MODE`)
	if err != nil {
		return fmt.Errorf("lock school terms: %w", err)
	}
	return nil
}

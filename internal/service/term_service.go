package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/lesson_scheduler/internal/calendar"
	"github.com/Freeeeeet/lesson_scheduler/internal/model"
	"github.com/Freeeeeet/lesson_scheduler/internal/repository/base"
	"github.com/Freeeeeet/lesson_scheduler/internal/scheduling"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type TermService struct {
	tx        TxManager
	terms     TermStore
	validator *validator.Validate
	now       scheduling.Clock
	logger    *zap.Logger
}

func NewTermService(tx TxManager, terms TermStore, now scheduling.Clock, logger *zap.Logger) *TermService {
	if now == nil {
		now = time.Now
	}
	return &TermService{
		tx:        tx,
		terms:     terms,
		validator: newValidator(),
		now:       now,
		logger:    logger,
	}
}

// Register создаёт семестр, если он не пересекается с существующими
func (s *TermService) Register(ctx context.Context, in TermInput) (*model.SchoolTerm, error) {
	if violations := validateInput(s.validator, in); len(violations) > 0 {
		return nil, violations
	}

	term := &model.SchoolTerm{
		Label:     in.Label,
		StartDate: calendar.DateOf(in.StartDate),
		EndDate:   calendar.DateOf(in.EndDate),
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		others, err := s.lockAndList(ctx)
		if err != nil {
			return err
		}

		if err := scheduling.CheckForClash(term.StartDate, term.EndDate, others); err != nil {
			return err
		}

		if err := s.terms.Create(ctx, term); err != nil {
			return labelTaken(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("School term registered",
		zap.Int64("term_id", term.ID),
		zap.String("label", term.Label),
		zap.Time("start_date", term.StartDate),
		zap.Time("end_date", term.EndDate),
	)

	return term, nil
}

// Update изменяет семестр; пересечение проверяется со всеми остальными семестрами
func (s *TermService) Update(ctx context.Context, id int64, in TermInput) (*model.SchoolTerm, error) {
	if violations := validateInput(s.validator, in); len(violations) > 0 {
		return nil, violations
	}

	var term *model.SchoolTerm
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		others, err := s.lockAndList(ctx)
		if err != nil {
			return err
		}

		for _, t := range others {
			if t.ID == id {
				term = t
			}
		}
		if term == nil {
			return notFound("school term", id)
		}

		term.Label = in.Label
		term.StartDate = calendar.DateOf(in.StartDate)
		term.EndDate = calendar.DateOf(in.EndDate)

		if err := scheduling.CheckForClash(term.StartDate, term.EndDate, scheduling.ExcludeTerm(others, id)); err != nil {
			return err
		}

		if err := s.terms.Update(ctx, term); err != nil {
			return labelTaken(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("School term updated",
		zap.Int64("term_id", term.ID),
		zap.String("label", term.Label),
	)

	return term, nil
}

// lockAndList блокирует семестры, чтобы две параллельные регистрации не
// прошли проверку пересечения одновременно
func (s *TermService) lockAndList(ctx context.Context) ([]*model.SchoolTerm, error) {
	if err := s.terms.LockAll(ctx); err != nil {
		return nil, err
	}
	terms, err := s.terms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	return terms, nil
}

func labelTaken(err error) error {
	if base.IsUniqueViolation(err) {
		return scheduling.Violations{{Field: "label", Message: "A term with this label already exists"}}
	}
	return err
}

// Get получает семестр по ID
func (s *TermService) Get(ctx context.Context, id int64) (*model.SchoolTerm, error) {
	term, err := s.terms.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get term: %w", err)
	}
	if term == nil {
		return nil, notFound("school term", id)
	}
	return term, nil
}

// List получает все семестры по дате начала
func (s *TermService) List(ctx context.Context) ([]*model.SchoolTerm, error) {
	return s.terms.List(ctx)
}

// Delete удаляет семестр вместе с его бронированиями
func (s *TermService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.terms.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete term: %w", err)
	}

	s.logger.Info("School term deleted", zap.Int64("term_id", id))
	return nil
}

// DefaultTermForBookings подбирает семестр, предлагаемый по умолчанию в форме бронирования
func (s *TermService) DefaultTermForBookings(ctx context.Context) (*model.SchoolTerm, error) {
	terms, err := s.terms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	return scheduling.DefaultTerm(terms, calendar.Today(s.now())), nil
}

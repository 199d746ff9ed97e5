package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/lesson_scheduler/internal/model"
	"github.com/Freeeeeet/lesson_scheduler/internal/repository/base"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type RequestService struct {
	requests  RequestStore
	bookings  BookingStore
	users     UserStore
	validator *validator.Validate
	logger    *zap.Logger
}

func NewRequestService(requests RequestStore, bookings BookingStore, users UserStore, logger *zap.Logger) *RequestService {
	return &RequestService{
		requests:  requests,
		bookings:  bookings,
		users:     users,
		validator: newValidator(),
		logger:    logger,
	}
}

// Create создаёт запрос на уроки для студента
func (s *RequestService) Create(ctx context.Context, in RequestInput) (*model.LessonRequest, error) {
	return s.create(ctx, in, nil)
}

// RequestRepeat создаёт новый запрос с параметрами, продолжающими существующее бронирование
func (s *RequestService) RequestRepeat(ctx context.Context, bookingID int64, in RequestInput) (*model.LessonRequest, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, notFound("lesson booking", bookingID)
	}

	return s.create(ctx, in, &booking.ID)
}

// RepeatDefaults заполняет форму повторного запроса параметрами бронирования
func (s *RequestService) RepeatDefaults(ctx context.Context, bookingID int64) (RequestInput, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return RequestInput{}, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return RequestInput{}, notFound("lesson booking", bookingID)
	}

	return RequestInput{
		StudentID:    booking.StudentID,
		Duration:     booking.Duration,
		Quantity:     booking.Quantity,
		Interval:     booking.Interval,
		Availability: []model.Weekday{booking.Day},
	}, nil
}

func (s *RequestService) create(ctx context.Context, in RequestInput, previousBookingID *int64) (*model.LessonRequest, error) {
	if violations := validateInput(s.validator, in); len(violations) > 0 {
		return nil, violations
	}

	student, err := s.users.GetStudentByID(ctx, in.StudentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, notFound("student", in.StudentID)
	}

	req := &model.LessonRequest{
		StudentID:         student.ID,
		Duration:          in.Duration,
		Quantity:          in.Quantity,
		Interval:          in.Interval,
		Availability:      in.Availability,
		Notes:             in.Notes,
		PreviousBookingID: previousBookingID,
	}

	if err := s.requests.Create(ctx, req); err != nil {
		if previousBookingID != nil && base.IsUniqueViolation(err) {
			return nil, ErrAlreadyRepeated
		}
		return nil, fmt.Errorf("create lesson request: %w", err)
	}

	s.logger.Info("Lesson request created",
		zap.Int64("request_id", req.ID),
		zap.Int64("student_id", req.StudentID),
		zap.Int("quantity", req.Quantity),
		zap.Int("duration", req.Duration),
		zap.Bool("repeat", previousBookingID != nil),
	)

	return req, nil
}

// Get получает запрос по ID
func (s *RequestService) Get(ctx context.Context, id int64) (*model.LessonRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lesson request: %w", err)
	}
	if req == nil {
		return nil, notFound("lesson request", id)
	}
	return req, nil
}

// Update изменяет запрос, пока по нему нет бронирования
func (s *RequestService) Update(ctx context.Context, id int64, in RequestInput) (*model.LessonRequest, error) {
	req, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.IsFulfilled() {
		return nil, ErrRequestFulfilled
	}

	// Студент запроса не меняется
	in.StudentID = req.StudentID
	if violations := validateInput(s.validator, in); len(violations) > 0 {
		return nil, violations
	}

	req.Duration = in.Duration
	req.Quantity = in.Quantity
	req.Interval = in.Interval
	req.Availability = in.Availability
	req.Notes = in.Notes

	if err := s.requests.Update(ctx, req); err != nil {
		return nil, fmt.Errorf("update lesson request: %w", err)
	}

	s.logger.Info("Lesson request updated", zap.Int64("request_id", id))
	return req, nil
}

// Delete удаляет запрос, пока по нему нет бронирования
func (s *RequestService) Delete(ctx context.Context, id int64) error {
	req, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if req.IsFulfilled() {
		return ErrRequestFulfilled
	}

	if err := s.requests.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete lesson request: %w", err)
	}

	s.logger.Info("Lesson request deleted", zap.Int64("request_id", id))
	return nil
}

// ListForStudent получает запросы студента и его детей
func (s *RequestService) ListForStudent(ctx context.Context, studentID int64) ([]*model.LessonRequest, error) {
	ids, err := familyIDs(ctx, s.users, studentID)
	if err != nil {
		return nil, err
	}
	return s.requests.GetByStudentIDs(ctx, ids)
}

// ListAll получает все запросы школы
func (s *RequestService) ListAll(ctx context.Context) ([]*model.LessonRequest, error) {
	return s.requests.GetAll(ctx)
}

// familyIDs возвращает ID студента и его детей
func familyIDs(ctx context.Context, users UserStore, studentID int64) ([]int64, error) {
	student, err := users.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, notFound("student", studentID)
	}

	children, err := users.GetChildIDs(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get children: %w", err)
	}

	return append([]int64{studentID}, children...), nil
}

package service

import (
	"context"

	"github.com/Freeeeeet/lesson_scheduler/internal/model"
)

// Интерфейсы хранилищ, которые используют сервисы. Реализации лежат в
// internal/repository; в тестах подставляются in-memory версии.

// TxManager выполняет функцию в одной транзакции
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type TermStore interface {
	Create(ctx context.Context, term *model.SchoolTerm) error
	GetByID(ctx context.Context, id int64) (*model.SchoolTerm, error)
	List(ctx context.Context) ([]*model.SchoolTerm, error)
	Update(ctx context.Context, term *model.SchoolTerm) error
	Delete(ctx context.Context, id int64) error
	LockAll(ctx context.Context) error
}

type RequestStore interface {
	Create(ctx context.Context, req *model.LessonRequest) error
	GetByID(ctx context.Context, id int64) (*model.LessonRequest, error)
	GetByStudentIDs(ctx context.Context, studentIDs []int64) ([]*model.LessonRequest, error)
	GetAll(ctx context.Context) ([]*model.LessonRequest, error)
	Update(ctx context.Context, req *model.LessonRequest) error
	Delete(ctx context.Context, id int64) error
}

type BookingStore interface {
	Create(ctx context.Context, booking *model.LessonBooking) error
	Update(ctx context.Context, booking *model.LessonBooking) error
	GetByID(ctx context.Context, id int64) (*model.LessonBooking, error)
	GetByRequestID(ctx context.Context, requestID int64) (*model.LessonBooking, error)
	GetByTeacherID(ctx context.Context, teacherID int64) ([]*model.LessonBooking, error)
	GetByStudentIDs(ctx context.Context, studentIDs []int64) ([]*model.LessonBooking, error)
	GetAll(ctx context.Context) ([]*model.LessonBooking, error)
	Delete(ctx context.Context, id int64) error
}

type TransferStore interface {
	Create(ctx context.Context, transfer *model.Transfer) error
	GetByStudentIDs(ctx context.Context, studentIDs []int64) ([]*model.Transfer, error)
	GetAll(ctx context.Context) ([]*model.Transfer, error)
}

type UserStore interface {
	GetStudentByID(ctx context.Context, id int64) (*model.StudentProfile, error)
	GetChildIDs(ctx context.Context, parentID int64) ([]int64, error)
	GetTeacherByID(ctx context.Context, id int64) (*model.TeacherProfile, error)
	LockTeacher(ctx context.Context, id int64) (*model.TeacherProfile, error)
	GetAdminByID(ctx context.Context, id int64) (*model.AdminProfile, error)
}

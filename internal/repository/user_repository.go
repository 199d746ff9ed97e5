package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/lesson_scheduler/internal/model"
	"github.com/Freeeeeet/lesson_scheduler/internal/repository/base"
)

// UserRepository читает пользователей и их профили. Создание аккаунтов
// выполняется административным интерфейсом и здесь не реализовано.
type UserRepository struct {
	*base.Repository
}

func NewUserRepository(b *base.Repository) *UserRepository {
	return &UserRepository{Repository: b}
}

const userColumns = `u.id, u.email, u.first_name, u.last_name, u.type, u.created_at`

// GetStudentByID получает профиль студента вместе с пользователем
func (r *UserRepository) GetStudentByID(ctx context.Context, id int64) (*model.StudentProfile, error) {
	query := `
		SELECT p.id, p.user_id, p.parent_id, ` + userColumns + `
		FROM student_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`

	var (
		profile model.StudentProfile
		user    model.User
	)
	err := r.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.ParentID,
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Type,
		&user.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by id: %w", err)
	}

	profile.User = &user
	return &profile, nil
}

// GetChildIDs получает ID профилей детей студента
func (r *UserRepository) GetChildIDs(ctx context.Context, parentID int64) ([]int64, error) {
	rows, err := r.Query(ctx, `SELECT id FROM student_profiles WHERE parent_id = $1 ORDER BY id`, parentID)
	if err != nil {
		return nil, fmt.Errorf("get child ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan child id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// GetTeacherByID получает профиль учителя
func (r *UserRepository) GetTeacherByID(ctx context.Context, id int64) (*model.TeacherProfile, error) {
	return r.getTeacher(ctx, `SELECT id, user_id FROM teacher_profiles WHERE id = $1`, id)
}

// LockTeacher блокирует строку учителя до конца транзакции, чтобы проверка
// занятости и запись бронирования не пересекались с параллельной записью
func (r *UserRepository) LockTeacher(ctx context.Context, id int64) (*model.TeacherProfile, error) {
	return r.getTeacher(ctx, `SELECT id, user_id FROM teacher_profiles WHERE id = $1 FOR UPDATE`, id)
}

func (r *UserRepository) getTeacher(ctx context.Context, query string, id int64) (*model.TeacherProfile, error) {
	var profile model.TeacherProfile
	err := r.QueryRow(ctx, query, id).Scan(&profile.ID, &profile.UserID)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher by id: %w", err)
	}

	return &profile, nil
}

// GetAdminByID получает профиль администратора
func (r *UserRepository) GetAdminByID(ctx context.Context, id int64) (*model.AdminProfile, error) {
	var profile model.AdminProfile
	err := r.QueryRow(ctx, `SELECT id, user_id FROM admin_profiles WHERE id = $1`, id).Scan(&profile.ID, &profile.UserID)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by id: %w", err)
	}

	return &profile, nil
}

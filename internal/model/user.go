package model

import "time"

type UserType string

const (
	UserTypeStudent  UserType = "STUDENT"
	UserTypeAdmin    UserType = "ADMIN"
	UserTypeTeacher  UserType = "TEACHER"
	UserTypeDirector UserType = "DIRECTOR"
)

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Type      UserType  `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns "First Last"
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// StudentProfile owns lesson requests. A child profile points at its parent's profile.
type StudentProfile struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	ParentID *int64 `json:"parent_id"`

	User *User `json:"user,omitempty"`
}

// IsChild checks if profile belongs to a child of another student
func (p *StudentProfile) IsChild() bool {
	return p.ParentID != nil
}

type TeacherProfile struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`

	User *User `json:"user,omitempty"`
}

// AdminProfile is held by admins and directors; it authorises bookings.
type AdminProfile struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`

	User *User `json:"user,omitempty"`
}

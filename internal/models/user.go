package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `db:"id"`
	FullName  string    `db:"full_name"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Profile holds the applicant data used to personalize chat answers
type Profile struct {
	UserID         uuid.UUID `db:"user_id"`
	FullName       string    `db:"full_name"`
	GradeLevel     string    `db:"grade_level"`
	GPA            float64   `db:"gpa"`
	IntendedMajor  string    `db:"intended_major"`
	GraduationYear int       `db:"graduation_year"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// SchoolEntry is one school on a student's application list
type SchoolEntry struct {
	ID              uuid.UUID `db:"id"`
	UserID          uuid.UUID `db:"user_id"`
	Name            string    `db:"name"`
	Status          string    `db:"status"`
	ApplicationType string    `db:"application_type"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// UserContext is the optional personalization payload attached to a chat
// request when the caller presents a valid token
type UserContext struct {
	Profile *Profile
	Schools []*SchoolEntry
}

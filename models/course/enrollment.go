package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment status values. carted -> enrolled -> completed.
const (
	EnrollmentCarted    = "CARTED"
	EnrollmentEnrolled  = "ENROLLED"
	EnrollmentCompleted = "COMPLETED"
)

// Enrollment tracks a user's lifecycle in a course, unique per (user, course)
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID    uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	Status      string     `json:"status" gorm:"type:varchar(20);default:'CARTED'"`
	Progress    float64    `json:"progress" gorm:"default:0"` // recomputed by the progress scheduler
	CartedAt    time.Time  `json:"carted_at"`
	EnrolledAt  *time.Time `json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false" json:"-"`
}

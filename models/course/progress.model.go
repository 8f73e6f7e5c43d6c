package course

import (
	"time"

	"gorm.io/gorm"
)

// Progress status values.
// Lessons move NOT_STARTED -> COMPLETED, modules NOT_STARTED -> STARTED ->
// COMPLETED, quizzes NOT_STARTED -> SUBMITTED -> COMPLETED.
const (
	ProgressNotStarted = "NOT_STARTED"
	ProgressStarted    = "STARTED"
	ProgressSubmitted  = "SUBMITTED"
	ProgressCompleted  = "COMPLETED"
)

// ModuleProgress tracks a student's progress in one module
type ModuleProgress struct {
	gorm.Model
	ModuleID    uint       `json:"module_id" gorm:"index;not null"`
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	Status      string     `json:"status" gorm:"type:varchar(20);default:'NOT_STARTED'"`
	IsEnrolled  bool       `json:"is_enrolled" gorm:"default:false"`
	Progress    float64    `json:"progress" gorm:"default:0"` // recomputed by the progress scheduler
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false" json:"-"`
}

// LessonProgress tracks a student's progress in one lesson
type LessonProgress struct {
	gorm.Model
	LessonID    uint       `json:"lesson_id" gorm:"index;not null"`
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	Status      string     `json:"status" gorm:"type:varchar(20);default:'NOT_STARTED'"`
	IsEnrolled  bool       `json:"is_enrolled" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false" json:"-"`
}

// QuizProgress tracks a student's progress in one quiz
type QuizProgress struct {
	gorm.Model
	QuizID      uint       `json:"quiz_id" gorm:"index;not null"`
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	Status      string     `json:"status" gorm:"type:varchar(20);default:'NOT_STARTED'"`
	TryCount    int        `json:"try_count" gorm:"default:0"`
	IsEnrolled  bool       `json:"is_enrolled" gorm:"default:false"`
	IsSubmitted bool       `json:"is_submitted" gorm:"default:false"`
	IsCorrect   bool       `json:"is_correct" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false" json:"-"`
}

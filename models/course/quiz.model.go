package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz belongs to exactly one module
type Quiz struct {
	gorm.Model
	ModuleID    uint   `json:"module_id" gorm:"uniqueIndex;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	WithAI      bool   `json:"with_ai" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false" json:"-"`
}

// Question is an ordered quiz question with its answer options
type Question struct {
	gorm.Model
	QuizID     uint   `json:"quiz_id" gorm:"index;not null"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	Text       string `json:"text"`
	IsDeleted  bool   `gorm:"default:false" json:"-"`
}

// Answer is an ordered (text, correctness) option of a question
type Answer struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	IsDeleted  bool   `gorm:"default:false" json:"-"`
}

// QuizAttempt records each submission a student makes against a quiz
type QuizAttempt struct {
	gorm.Model
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	Submitted     datatypes.JSON `json:"submitted"` // snapshot of the submitted questions
	IsCorrect     bool           `json:"is_correct" gorm:"default:false"`
	AttemptNumber int            `json:"attempt_number" gorm:"default:1"`
	IsDeleted     bool           `gorm:"default:false" json:"-"`
}

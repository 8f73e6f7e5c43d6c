package course

import "gorm.io/gorm"

// Module represents a section within a course. Its quiz, if any, points back
// via Quiz.ModuleID (unique), so a module has at most one.
type Module struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status" gorm:"type:varchar(20);default:'DRAFT'"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // caller-assigned at creation
	WithAI      bool   `json:"with_ai" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false" json:"-"`
}

package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course status values. Archive is reachable from any status.
const (
	CourseStatusDraft     = "DRAFT"
	CourseStatusPublished = "PUBLISHED"
	CourseStatusArchived  = "ARCHIVED"
)

// Course represents a learning course owned by a mentor
type Course struct {
	gorm.Model
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Level        string         `json:"level"`
	Duration     string         `json:"duration"`
	Category     string         `json:"category"`
	Requirements datatypes.JSON `json:"requirements"` // array of strings
	Objectives   datatypes.JSON `json:"objectives"`   // array of strings
	ThumbnailURL string         `json:"thumbnail_url"`
	WithAI       bool           `json:"with_ai" gorm:"default:false"`
	Price        uint64         `json:"price" gorm:"not null;default:0"` // minor units
	Status       string         `json:"status" gorm:"type:varchar(20);default:'DRAFT'"`
	MentorID     uint           `json:"mentor_id" gorm:"index;not null"`
	IsDeleted    bool           `gorm:"default:false" json:"-"`
}

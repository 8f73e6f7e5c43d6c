package course

import "gorm.io/gorm"

// Lesson represents a single lesson within a module. OrderIndex values form a
// dense zero-based sequence per module and are reindexed on deletion.
type Lesson struct {
	gorm.Model
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	Article     string `json:"article"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	WithAI      bool   `json:"with_ai" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false" json:"-"`
}

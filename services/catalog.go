package services

import (
	"fmt"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// CreateCourseInput carries the caller-supplied course fields. CreatedAt is
// optional and taken verbatim when provided.
type CreateCourseInput struct {
	Title        string
	Description  string
	Level        string
	Duration     string
	Category     string
	Requirements []byte // JSON array of strings
	Objectives   []byte // JSON array of strings
	ThumbnailURL string
	WithAI       bool
	Price        uint64
	CreatedAt    *time.Time
}

// CreateCourse creates a new draft course owned by the mentor
func CreateCourse(db *gorm.DB, mentorID uint, in CreateCourseInput) (*courseModels.Course, error) {
	var mentor models.User
	if err := db.Where("id = ? AND is_deleted = ?", mentorID, false).First(&mentor).Error; err != nil {
		return nil, fmt.Errorf("mentor: %w", ErrNotFound)
	}

	newCourse := courseModels.Course{
		Title:        in.Title,
		Description:  in.Description,
		Level:        in.Level,
		Duration:     in.Duration,
		Category:     in.Category,
		Requirements: in.Requirements,
		Objectives:   in.Objectives,
		ThumbnailURL: in.ThumbnailURL,
		WithAI:       in.WithAI,
		Price:        in.Price,
		Status:       courseModels.CourseStatusDraft,
		MentorID:     mentorID,
	}
	if in.CreatedAt != nil {
		newCourse.CreatedAt = *in.CreatedAt
	}

	if err := db.Create(&newCourse).Error; err != nil {
		return nil, err
	}

	// A user becomes a mentor by creating their first course
	if mentor.Role == "USER" {
		if err := db.Model(&mentor).Update("role", "MENTOR").Error; err != nil {
			return nil, err
		}
	}

	return &newCourse, nil
}

// UpdateCourseInput carries the editable course fields
type UpdateCourseInput struct {
	Title       string
	Description string
	Price       *uint64
	Category    string
}

// UpdateCourseDetails updates title/description/price/category. Owner only.
func UpdateCourseDetails(db *gorm.DB, userID, courseID uint, in UpdateCourseInput) (*courseModels.Course, error) {
	crs, err := getCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	if crs.MentorID != userID {
		return nil, fmt.Errorf("only the course mentor can update the course: %w", ErrUnauthorized)
	}

	if in.Title != "" {
		crs.Title = in.Title
	}
	if in.Description != "" {
		crs.Description = in.Description
	}
	if in.Price != nil {
		crs.Price = *in.Price
	}
	if in.Category != "" {
		crs.Category = in.Category
	}

	if err := db.Save(crs).Error; err != nil {
		return nil, err
	}
	return crs, nil
}

// UpdateCoursePrice sets a course price. Admin only.
func UpdateCoursePrice(db *gorm.DB, adminID, courseID uint, price uint64) error {
	if err := requireAdmin(db, adminID); err != nil {
		return err
	}
	crs, err := getCourse(db, courseID)
	if err != nil {
		return err
	}
	return db.Model(crs).Update("price", price).Error
}

// PublishCourse moves a course to PUBLISHED. Idempotent; mentor or admin.
func PublishCourse(db *gorm.DB, userID, courseID uint) error {
	return setCourseStatus(db, userID, courseID, courseModels.CourseStatusPublished)
}

// ArchiveCourse moves a course to ARCHIVED from any status. Idempotent;
// mentor or admin.
func ArchiveCourse(db *gorm.DB, userID, courseID uint) error {
	return setCourseStatus(db, userID, courseID, courseModels.CourseStatusArchived)
}

func setCourseStatus(db *gorm.DB, userID, courseID uint, status string) error {
	crs, err := getCourse(db, courseID)
	if err != nil {
		return err
	}
	if crs.MentorID != userID && !isAdmin(db, userID) {
		return fmt.Errorf("only the course mentor or admin can change course status: %w", ErrUnauthorized)
	}
	return db.Model(crs).Update("status", status).Error
}

// CreateModuleInput carries the caller-supplied module fields
type CreateModuleInput struct {
	Title       string
	Description string
	Status      string
	OrderIndex  int // caller-assigned
	WithAI      bool
	CreatedAt   *time.Time
}

// CreateModule creates a module inside a course. Owner only.
func CreateModule(db *gorm.DB, userID, courseID uint, in CreateModuleInput) (*courseModels.Module, error) {
	crs, err := getCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	if crs.MentorID != userID && !isAdmin(db, userID) {
		return nil, fmt.Errorf("only the course mentor can create modules: %w", ErrUnauthorized)
	}

	module := courseModels.Module{
		CourseID:    courseID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		OrderIndex:  in.OrderIndex,
		WithAI:      in.WithAI,
	}
	if in.CreatedAt != nil {
		module.CreatedAt = *in.CreatedAt
	}

	if err := db.Create(&module).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

// UpdateModule updates module title/description. Owner only.
func UpdateModule(db *gorm.DB, userID, moduleID uint, title, description string) (*courseModels.Module, error) {
	module, err := getModule(db, moduleID)
	if err != nil {
		return nil, err
	}
	if err := requireCourseOwner(db, module.CourseID, userID); err != nil {
		return nil, err
	}

	if title != "" {
		module.Title = title
	}
	if description != "" {
		module.Description = description
	}

	if err := db.Save(module).Error; err != nil {
		return nil, err
	}
	return module, nil
}

// CreateLessonInput carries the caller-supplied lesson fields
type CreateLessonInput struct {
	Title       string
	Description string
	VideoURL    string
	Article     string
	OrderIndex  int // caller-assigned
	WithAI      bool
	CreatedAt   *time.Time
}

// CreateLesson creates a lesson inside a module. Owner only.
func CreateLesson(db *gorm.DB, userID, moduleID uint, in CreateLessonInput) (*courseModels.Lesson, error) {
	module, err := getModule(db, moduleID)
	if err != nil {
		return nil, err
	}
	if err := requireCourseOwner(db, module.CourseID, userID); err != nil {
		return nil, err
	}

	lesson := courseModels.Lesson{
		ModuleID:    moduleID,
		Title:       in.Title,
		Description: in.Description,
		VideoURL:    in.VideoURL,
		Article:     in.Article,
		OrderIndex:  in.OrderIndex,
		WithAI:      in.WithAI,
	}
	if in.CreatedAt != nil {
		lesson.CreatedAt = *in.CreatedAt
	}

	if err := db.Create(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// UpdateLessonDetails updates lesson title/description. Owner only.
func UpdateLessonDetails(db *gorm.DB, userID, lessonID uint, title, description string) (*courseModels.Lesson, error) {
	lesson, module, err := getLessonWithModule(db, lessonID)
	if err != nil {
		return nil, err
	}
	if err := requireCourseOwner(db, module.CourseID, userID); err != nil {
		return nil, err
	}

	if title != "" {
		lesson.Title = title
	}
	if description != "" {
		lesson.Description = description
	}

	if err := db.Save(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

// AddVideoToLesson sets the lesson video URL. Owner only.
func AddVideoToLesson(db *gorm.DB, userID, lessonID uint, videoURL string) error {
	lesson, module, err := getLessonWithModule(db, lessonID)
	if err != nil {
		return err
	}
	if err := requireCourseOwner(db, module.CourseID, userID); err != nil {
		return err
	}
	return db.Model(lesson).Update("video_url", videoURL).Error
}

// AddArticleToLesson sets the lesson article body. Owner only.
func AddArticleToLesson(db *gorm.DB, userID, lessonID uint, article string) error {
	lesson, module, err := getLessonWithModule(db, lessonID)
	if err != nil {
		return err
	}
	if err := requireCourseOwner(db, module.CourseID, userID); err != nil {
		return err
	}
	return db.Model(lesson).Update("article", article).Error
}

// DeleteLesson removes a lesson and closes the order gap: every sibling with
// a higher order index is decremented by one, keeping orders dense and
// zero-based. Progress rows referencing the lesson are left untouched.
func DeleteLesson(db *gorm.DB, userID, lessonID uint) error {
	lesson, module, err := getLessonWithModule(db, lessonID)
	if err != nil {
		return err
	}
	if err := requireCourseOwner(db, module.CourseID, userID); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&courseModels.Lesson{}).
			Where("module_id = ? AND is_deleted = ? AND order_index > ?", module.ID, false, lesson.OrderIndex).
			Update("order_index", gorm.Expr("order_index - 1")).Error; err != nil {
			return err
		}
		return tx.Model(lesson).Update("is_deleted", true).Error
	})
}

// CreateQuizInput carries the caller-supplied quiz fields
type CreateQuizInput struct {
	Title       string
	Description string
	CreatedAt   *time.Time
}

// CreateQuiz creates the quiz of a module. A module has at most one quiz.
func CreateQuiz(db *gorm.DB, userID, moduleID uint, in CreateQuizInput) (*courseModels.Quiz, error) {
	module, err := getModule(db, moduleID)
	if err != nil {
		return nil, err
	}
	if err := requireCourseOwner(db, module.CourseID, userID); err != nil {
		return nil, err
	}

	var existing courseModels.Quiz
	if err := db.Where("module_id = ? AND is_deleted = ?", moduleID, false).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("module already has a quiz: %w", ErrConflict)
	}

	quiz := courseModels.Quiz{
		ModuleID:    moduleID,
		Title:       in.Title,
		Description: in.Description,
	}
	if in.CreatedAt != nil {
		quiz.CreatedAt = *in.CreatedAt
	}

	if err := db.Create(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

// QuestionInput is one canonical question with its ordered answer options
type QuestionInput struct {
	Text    string        `json:"text"`
	Answers []AnswerInput `json:"answers"`
}

// AnswerInput is one (text, correctness) answer option
type AnswerInput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// SaveQuizQuestions replaces the question set of a quiz. Owner only.
func SaveQuizQuestions(db *gorm.DB, userID, quizID uint, withAI bool, questions []QuestionInput) error {
	quiz, err := getQuiz(db, quizID)
	if err != nil {
		return err
	}
	module, err := getModule(db, quiz.ModuleID)
	if err != nil {
		return err
	}
	if err := requireCourseOwner(db, module.CourseID, userID); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// Drop the previous question set
		var oldQuestions []courseModels.Question
		if err := tx.Where("quiz_id = ? AND is_deleted = ?", quizID, false).Find(&oldQuestions).Error; err != nil {
			return err
		}
		for _, q := range oldQuestions {
			if err := tx.Model(&courseModels.Answer{}).Where("question_id = ?", q.ID).Update("is_deleted", true).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&courseModels.Question{}).Where("quiz_id = ?", quizID).Update("is_deleted", true).Error; err != nil {
			return err
		}

		for i, q := range questions {
			question := courseModels.Question{
				QuizID:     quizID,
				OrderIndex: i,
				Text:       q.Text,
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
			for j, a := range q.Answers {
				answer := courseModels.Answer{
					QuestionID: question.ID,
					OrderIndex: j,
					Text:       a.Text,
					IsCorrect:  a.IsCorrect,
				}
				if err := tx.Create(&answer).Error; err != nil {
					return err
				}
			}
		}

		return tx.Model(quiz).Update("with_ai", withAI).Error
	})
}

// --- shared lookups ---

func getCourse(db *gorm.DB, courseID uint) (*courseModels.Course, error) {
	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return nil, fmt.Errorf("course: %w", ErrNotFound)
	}
	return &crs, nil
}

func getModule(db *gorm.DB, moduleID uint) (*courseModels.Module, error) {
	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return nil, fmt.Errorf("module: %w", ErrNotFound)
	}
	return &module, nil
}

func getLessonWithModule(db *gorm.DB, lessonID uint) (*courseModels.Lesson, *courseModels.Module, error) {
	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return nil, nil, fmt.Errorf("lesson: %w", ErrNotFound)
	}
	module, err := getModule(db, lesson.ModuleID)
	if err != nil {
		return nil, nil, err
	}
	return &lesson, module, nil
}

func getQuiz(db *gorm.DB, quizID uint) (*courseModels.Quiz, error) {
	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return nil, fmt.Errorf("quiz: %w", ErrNotFound)
	}
	return &quiz, nil
}

func requireCourseOwner(db *gorm.DB, courseID, userID uint) error {
	crs, err := getCourse(db, courseID)
	if err != nil {
		return err
	}
	if crs.MentorID != userID {
		return fmt.Errorf("only the course mentor can do this: %w", ErrUnauthorized)
	}
	return nil
}

func isAdmin(db *gorm.DB, userID uint) bool {
	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return false
	}
	return user.Role == "ADMIN"
}

func requireAdmin(db *gorm.DB, userID uint) error {
	if !isAdmin(db, userID) {
		return fmt.Errorf("admin only: %w", ErrUnauthorized)
	}
	return nil
}

package services

import (
	"errors"
	"fmt"

	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// Read-side aggregation views. Everything here is recomputed per call from
// the catalog and progress tables; nothing is cached.

// FullLesson is a lesson node of the catalog tree
type FullLesson struct {
	courseModels.Lesson
}

// FullQuiz is a quiz node with its canonical questions
type FullQuiz struct {
	courseModels.Quiz
	Questions []QuestionInput `json:"questions"`
}

// FullModule is a module with its ordered lessons and optional quiz
type FullModule struct {
	courseModels.Module
	Lessons []FullLesson `json:"lessons"`
	Quiz    *FullQuiz    `json:"quiz,omitempty"`
}

// FullCourse is the complete catalog tree of one course
type FullCourse struct {
	courseModels.Course
	Mentor  models.User  `json:"mentor"`
	Modules []FullModule `json:"modules"`
}

// BuildFullCourse assembles the catalog tree: course -> modules (in order)
// -> lessons (in order) plus the optional quiz per module. Progress is not
// joined here; this is the catalog-only view.
func BuildFullCourse(db *gorm.DB, courseID uint) (*FullCourse, error) {
	crs, err := getCourse(db, courseID)
	if err != nil {
		return nil, err
	}

	var mentor models.User
	if err := db.Where("id = ? AND is_deleted = ?", crs.MentorID, false).First(&mentor).Error; err != nil {
		return nil, fmt.Errorf("course mentor missing: %w", ErrIntegrity)
	}

	view := &FullCourse{Course: *crs, Mentor: mentor}

	var modules []courseModels.Module
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return nil, err
	}

	for _, module := range modules {
		fullModule := FullModule{Module: module}

		var lessons []courseModels.Lesson
		if err := db.Where("module_id = ? AND is_deleted = ?", module.ID, false).
			Order("order_index asc").Find(&lessons).Error; err != nil {
			return nil, err
		}
		for _, lesson := range lessons {
			fullModule.Lessons = append(fullModule.Lessons, FullLesson{Lesson: lesson})
		}

		var quiz courseModels.Quiz
		quizErr := db.Where("module_id = ? AND is_deleted = ?", module.ID, false).First(&quiz).Error
		if quizErr == nil {
			questions, err := loadQuizQuestions(db, quiz.ID)
			if err != nil {
				return nil, err
			}
			fullModule.Quiz = &FullQuiz{Quiz: quiz, Questions: questions}
		} else if !errors.Is(quizErr, gorm.ErrRecordNotFound) {
			return nil, quizErr
		}

		view.Modules = append(view.Modules, fullModule)
	}

	return view, nil
}

// FullLessonProgress joins a lesson with the student's progress row
type FullLessonProgress struct {
	Lesson   courseModels.Lesson         `json:"lesson"`
	Progress courseModels.LessonProgress `json:"progress"`
}

// FullQuizProgress joins a quiz with the student's progress row
type FullQuizProgress struct {
	Quiz     courseModels.Quiz         `json:"quiz"`
	Progress courseModels.QuizProgress `json:"progress"`
}

// FullModuleProgress joins a module subtree with the student's progress rows
type FullModuleProgress struct {
	Module   courseModels.Module         `json:"module"`
	Progress courseModels.ModuleProgress `json:"progress"`
	Lessons  []FullLessonProgress        `json:"lessons"`
	Quiz     *FullQuizProgress           `json:"quiz,omitempty"`
}

// FullEnrollment is the student-scoped view of one enrollment
type FullEnrollment struct {
	Enrollment courseModels.Enrollment `json:"enrollment"`
	Course     courseModels.Course     `json:"course"`
	Modules    []FullModuleProgress    `json:"modules"`
}

// BuildFullEnrollment assembles the student-scoped tree. Unlike the catalog
// view, a missing progress row here is a data-consistency violation and is
// surfaced, not skipped: fan-out created one row per item at checkout.
func BuildFullEnrollment(db *gorm.DB, userID, courseID uint) (*FullEnrollment, error) {
	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		return nil, fmt.Errorf("enrollment: %w", ErrNotFound)
	}
	if enrollment.Status == courseModels.EnrollmentCarted {
		return nil, fmt.Errorf("course is carted, not enrolled: %w", ErrConflict)
	}

	crs, err := getCourse(db, courseID)
	if err != nil {
		return nil, err
	}

	view := &FullEnrollment{Enrollment: enrollment, Course: *crs}

	var modules []courseModels.Module
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return nil, err
	}

	for _, module := range modules {
		moduleProgress, err := getModuleProgress(db, module.ID, userID)
		if err != nil {
			return nil, err
		}
		node := FullModuleProgress{Module: module, Progress: *moduleProgress}

		var lessons []courseModels.Lesson
		if err := db.Where("module_id = ? AND is_deleted = ?", module.ID, false).
			Order("order_index asc").Find(&lessons).Error; err != nil {
			return nil, err
		}
		for _, lesson := range lessons {
			var lp courseModels.LessonProgress
			if err := db.Where("lesson_id = ? AND user_id = ? AND is_deleted = ?", lesson.ID, userID, false).
				First(&lp).Error; err != nil {
				return nil, fmt.Errorf("lesson progress missing for enrolled student: %w", ErrIntegrity)
			}
			node.Lessons = append(node.Lessons, FullLessonProgress{Lesson: lesson, Progress: lp})
		}

		var quiz courseModels.Quiz
		quizErr := db.Where("module_id = ? AND is_deleted = ?", module.ID, false).First(&quiz).Error
		if quizErr == nil {
			quizProgress, err := getQuizProgress(db, quiz.ID, userID)
			if err != nil {
				return nil, err
			}
			node.Quiz = &FullQuizProgress{Quiz: quiz, Progress: *quizProgress}
		} else if !errors.Is(quizErr, gorm.ErrRecordNotFound) {
			return nil, quizErr
		}

		view.Modules = append(view.Modules, node)
	}

	return view, nil
}

// CoursesByStatus lists courses with the given status
func CoursesByStatus(db *gorm.DB, status string) ([]courseModels.Course, error) {
	var courses []courseModels.Course
	err := db.Where("status = ? AND is_deleted = ?", status, false).Order("id asc").Find(&courses).Error
	return courses, err
}

// MentorCourses lists the courses a mentor created
func MentorCourses(db *gorm.DB, mentorID uint) ([]courseModels.Course, error) {
	var courses []courseModels.Course
	err := db.Where("mentor_id = ? AND is_deleted = ?", mentorID, false).Order("id asc").Find(&courses).Error
	return courses, err
}

// StudentEnrollments lists a student's enrollments in every state
func StudentEnrollments(db *gorm.DB, userID uint) ([]courseModels.Enrollment, error) {
	var enrollments []courseModels.Enrollment
	err := db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("id asc").Find(&enrollments).Error
	return enrollments, err
}

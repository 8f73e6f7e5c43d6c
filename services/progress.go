package services

import (
	"errors"
	"fmt"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// CompleteLesson marks a lesson completed for the student and propagates the
// result upward. A repeat call fails without re-triggering the cascade.
func CompleteLesson(db *gorm.DB, userID, lessonID uint) error {
	_, module, err := getLessonWithModule(db, lessonID)
	if err != nil {
		return err
	}

	var lessonProgress courseModels.LessonProgress
	if err := db.Where("lesson_id = ? AND user_id = ? AND is_deleted = ?", lessonID, userID, false).
		First(&lessonProgress).Error; err != nil {
		return fmt.Errorf("student is not enrolled in the lesson course: %w", ErrUnauthorized)
	}
	if !lessonProgress.IsEnrolled {
		return fmt.Errorf("student is not enrolled in the lesson course: %w", ErrUnauthorized)
	}
	if lessonProgress.Status == courseModels.ProgressCompleted {
		return fmt.Errorf("lesson already completed: %w", ErrAlreadyCompleted)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		ts := now()
		lessonProgress.Status = courseModels.ProgressCompleted
		lessonProgress.CompletedAt = &ts
		if err := tx.Save(&lessonProgress).Error; err != nil {
			return err
		}

		// First completed lesson in the module starts it
		moduleProgress, err := getModuleProgress(tx, module.ID, userID)
		if err != nil {
			return err
		}
		if moduleProgress.Status == courseModels.ProgressNotStarted {
			if err := tx.Model(moduleProgress).Update("status", courseModels.ProgressStarted).Error; err != nil {
				return err
			}
		}

		return ReevaluateModuleAndCourse(tx, module.ID, userID)
	})
}

// ReevaluateModuleAndCourse re-derives module and enrollment completion from
// the current progress state. It is idempotent and commutative with respect
// to completion order, and is the single cascade used by both the lesson
// completion and quiz grading paths.
func ReevaluateModuleAndCourse(tx *gorm.DB, moduleID, userID uint) error {
	module, err := getModule(tx, moduleID)
	if err != nil {
		return err
	}

	moduleDone, err := moduleComplete(tx, module, userID)
	if err != nil {
		return err
	}
	if moduleDone {
		moduleProgress, err := getModuleProgress(tx, moduleID, userID)
		if err != nil {
			return err
		}
		if moduleProgress.Status != courseModels.ProgressCompleted {
			ts := now()
			moduleProgress.Status = courseModels.ProgressCompleted
			moduleProgress.CompletedAt = &ts
			if err := tx.Save(moduleProgress).Error; err != nil {
				return err
			}
		}
	}

	// Course level: every module of the course must be completed
	var modules []courseModels.Module
	if err := tx.Where("course_id = ? AND is_deleted = ?", module.CourseID, false).Find(&modules).Error; err != nil {
		return err
	}
	allModulesDone := true
	for _, m := range modules {
		mp, err := getModuleProgress(tx, m.ID, userID)
		if err != nil {
			return err
		}
		if mp.Status != courseModels.ProgressCompleted {
			allModulesDone = false
			break
		}
	}
	if !allModulesDone {
		return nil
	}

	var enrollment courseModels.Enrollment
	if err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, module.CourseID, false).
		First(&enrollment).Error; err != nil {
		return fmt.Errorf("enrollment missing for completed course: %w", ErrIntegrity)
	}
	if enrollment.Status != courseModels.EnrollmentCompleted {
		ts := now()
		enrollment.Status = courseModels.EnrollmentCompleted
		enrollment.CompletedAt = &ts
		if err := tx.Save(&enrollment).Error; err != nil {
			return err
		}
	}
	return nil
}

// moduleComplete reports whether every lesson of the module is completed and
// the module quiz, if one exists, is completed too
func moduleComplete(tx *gorm.DB, module *courseModels.Module, userID uint) (bool, error) {
	var quiz courseModels.Quiz
	quizErr := tx.Where("module_id = ? AND is_deleted = ?", module.ID, false).First(&quiz).Error
	if quizErr == nil {
		quizProgress, err := getQuizProgress(tx, quiz.ID, userID)
		if err != nil {
			return false, err
		}
		if quizProgress.Status != courseModels.ProgressCompleted {
			return false, nil
		}
	} else if !errors.Is(quizErr, gorm.ErrRecordNotFound) {
		// Only a confirmed absence means "no quiz"; a failed lookup must
		// not grade the module complete
		return false, quizErr
	}

	var lessons []courseModels.Lesson
	if err := tx.Where("module_id = ? AND is_deleted = ?", module.ID, false).Find(&lessons).Error; err != nil {
		return false, err
	}
	for _, lesson := range lessons {
		var lp courseModels.LessonProgress
		if err := tx.Where("lesson_id = ? AND user_id = ? AND is_deleted = ?", lesson.ID, userID, false).
			First(&lp).Error; err != nil {
			return false, fmt.Errorf("lesson progress missing for enrolled student: %w", ErrIntegrity)
		}
		if lp.Status != courseModels.ProgressCompleted {
			return false, nil
		}
	}
	return true, nil
}

func getModuleProgress(tx *gorm.DB, moduleID, userID uint) (*courseModels.ModuleProgress, error) {
	var mp courseModels.ModuleProgress
	if err := tx.Where("module_id = ? AND user_id = ? AND is_deleted = ?", moduleID, userID, false).
		First(&mp).Error; err != nil {
		return nil, fmt.Errorf("module progress missing for enrolled student: %w", ErrIntegrity)
	}
	return &mp, nil
}

func getQuizProgress(tx *gorm.DB, quizID, userID uint) (*courseModels.QuizProgress, error) {
	var qp courseModels.QuizProgress
	if err := tx.Where("quiz_id = ? AND user_id = ? AND is_deleted = ?", quizID, userID, false).
		First(&qp).Error; err != nil {
		return nil, fmt.Errorf("quiz progress missing for enrolled student: %w", ErrIntegrity)
	}
	return &qp, nil
}

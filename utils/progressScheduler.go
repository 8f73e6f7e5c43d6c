package utils

import (
	"log"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/robfig/cron/v3"
)

// InitializeProgressScheduler sets up the progress recomputation scheduler
func InitializeProgressScheduler() {
	log.Println("[PROGRESS-SCHEDULER] Initializing progress scheduler...")

	c := cron.New()

	// Run daily at 3 AM to refresh percentage snapshots
	c.AddFunc("0 3 * * *", func() {
		log.Println("[PROGRESS-SCHEDULER] Running daily progress recomputation...")
		RecomputeProgress()
	})

	c.Start()
	log.Println("[PROGRESS-SCHEDULER] Progress scheduler started - runs daily at 3 AM")
}

// RecomputeProgress refreshes the stored percentage on active enrollments and
// their module progress rows from the unit-level completion counts. The
// percentages are display snapshots only; completion itself is driven by the
// lesson/quiz state machine.
func RecomputeProgress() {
	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.
		Where("status = ? AND is_deleted = ?", courseModels.EnrollmentEnrolled, false).
		Find(&enrollments).Error; err != nil {
		log.Printf("[PROGRESS-SCHEDULER] Error fetching enrollments: %v", err)
		return
	}

	log.Printf("[PROGRESS-SCHEDULER] Recomputing progress for %d enrollments", len(enrollments))

	for _, enrollment := range enrollments {
		var modules []courseModels.Module
		if err := db.
			Where("course_id = ? AND is_deleted = ?", enrollment.CourseID, false).
			Find(&modules).Error; err != nil {
			log.Printf("[PROGRESS-SCHEDULER] Error fetching modules for course %d: %v", enrollment.CourseID, err)
			continue
		}

		totalUnits := 0
		doneUnits := 0

		for _, module := range modules {
			moduleTotal, moduleDone := moduleUnitCounts(module.ID, enrollment.UserID)
			totalUnits += moduleTotal
			doneUnits += moduleDone

			modulePct := 0.0
			if moduleTotal > 0 {
				modulePct = float64(moduleDone) / float64(moduleTotal) * 100
			}
			db.Model(&courseModels.ModuleProgress{}).
				Where("module_id = ? AND user_id = ? AND is_deleted = ?", module.ID, enrollment.UserID, false).
				Update("progress", modulePct)
		}

		enrollmentPct := 0.0
		if totalUnits > 0 {
			enrollmentPct = float64(doneUnits) / float64(totalUnits) * 100
		}
		if err := db.Model(&enrollment).Update("progress", enrollmentPct).Error; err != nil {
			log.Printf("[PROGRESS-SCHEDULER] Error updating enrollment %d: %v", enrollment.ID, err)
		}
	}
}

// moduleUnitCounts returns (total, completed) units for one user's module.
// Units are the module's lessons plus its quiz when one exists.
func moduleUnitCounts(moduleID, userID uint) (int, int) {
	db := database.Database.Db

	var lessonTotal int64
	db.Model(&courseModels.Lesson{}).
		Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Count(&lessonTotal)

	var lessonDone int64
	db.Model(&courseModels.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Where("lessons.module_id = ? AND lessons.is_deleted = ?", moduleID, false).
		Where("lesson_progresses.user_id = ? AND lesson_progresses.status = ? AND lesson_progresses.is_deleted = ?",
			userID, courseModels.ProgressCompleted, false).
		Count(&lessonDone)

	total := int(lessonTotal)
	done := int(lessonDone)

	var quiz courseModels.Quiz
	if err := db.Where("module_id = ? AND is_deleted = ?", moduleID, false).First(&quiz).Error; err == nil {
		total++
		var quizDone int64
		db.Model(&courseModels.QuizProgress{}).
			Where("quiz_id = ? AND user_id = ? AND status = ? AND is_deleted = ?",
				quiz.ID, userID, courseModels.ProgressCompleted, false).
			Count(&quizDone)
		if quizDone > 0 {
			done++
		}
	}

	return total, done
}

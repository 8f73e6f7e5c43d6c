package services

import (
	"fmt"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// SaveCourseToCart creates a CARTED enrollment for the student. CartedAt is
// accepted verbatim when supplied, otherwise the server clock is used.
func SaveCourseToCart(db *gorm.DB, userID, courseID uint, cartedAt *time.Time) (*courseModels.Enrollment, error) {
	crs, err := getCourse(db, courseID)
	if err != nil {
		return nil, err
	}

	var student models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&student).Error; err != nil {
		return nil, fmt.Errorf("student: %w", ErrNotFound)
	}

	if crs.MentorID == userID {
		return nil, fmt.Errorf("mentor cannot cart their own course: %w", ErrConflict)
	}
	if crs.Status != courseModels.CourseStatusPublished {
		return nil, fmt.Errorf("course is not published: %w", ErrConflict)
	}

	// An enrollment in any state blocks a second one for the same pair
	var existing courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error; err == nil {
		switch existing.Status {
		case courseModels.EnrollmentCarted:
			return nil, fmt.Errorf("course is already carted: %w", ErrConflict)
		case courseModels.EnrollmentEnrolled:
			return nil, fmt.Errorf("student is already enrolled: %w", ErrConflict)
		default:
			return nil, fmt.Errorf("course is already completed: %w", ErrConflict)
		}
	}

	ts := now()
	if cartedAt != nil {
		ts = *cartedAt
	}

	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   courseModels.EnrollmentCarted,
		CartedAt: ts,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// RemoveCourseFromCart deletes a still-carted enrollment. The row is removed
// outright: the (user, course) pair carries a unique index, and a dangling
// row would block carting the same course again later.
func RemoveCourseFromCart(db *gorm.DB, userID, courseID uint) error {
	if _, err := getCourse(db, courseID); err != nil {
		return err
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
		userID, courseID, courseModels.EnrollmentCarted, false).First(&enrollment).Error; err != nil {
		return fmt.Errorf("course is not carted: %w", ErrNotFound)
	}

	return db.Unscoped().Delete(&enrollment).Error
}

// CartedEnrollments returns the student's CARTED enrollments
func CartedEnrollments(db *gorm.DB, userID uint) ([]courseModels.Enrollment, error) {
	var enrollments []courseModels.Enrollment
	err := db.Where("user_id = ? AND status = ? AND is_deleted = ?",
		userID, courseModels.EnrollmentCarted, false).Order("id asc").Find(&enrollments).Error
	return enrollments, err
}

// CartTotal returns the carted courses and the required payment including
// the platform fee on each course.
func CartTotal(db *gorm.DB, userID uint) ([]courseModels.Course, uint64, error) {
	enrollments, err := CartedEnrollments(db, userID)
	if err != nil {
		return nil, 0, err
	}

	var courses []courseModels.Course
	var total uint64
	for _, e := range enrollments {
		crs, err := getCourse(db, e.CourseID)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, *crs)
		total += crs.Price + CourseFee(crs.Price)
	}
	return courses, total, nil
}

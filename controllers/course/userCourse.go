package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// GetPublishedCourses lists all published courses
func GetPublishedCourses(c *fiber.Ctx) error {
	courses, err := services.CoursesByStatus(database.Database.Db, courseModels.CourseStatusPublished)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetArchivedCourses lists archived courses. Admin only.
func GetArchivedCourses(c *fiber.Ctx) error {
	courses, err := services.CoursesByStatus(database.Database.Db, courseModels.CourseStatusArchived)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetCourseDetails returns the full catalog tree of one course
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	view, err := services.BuildFullCourse(database.Database.Db, courseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", view)
}

// CartCourse saves a course to the caller's cart
func CartCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	enrollment, err := services.SaveCourseToCart(database.Database.Db, userID, courseID, nil)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course added to cart!", enrollment)
}

// RemoveFromCart removes a still-carted course from the caller's cart
func RemoveFromCart(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	if err := services.RemoveCourseFromCart(database.Database.Db, userID, courseID); err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course removed from cart!", nil)
}

// GetCart returns the carted courses and the required payment with fees
func GetCart(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courses, total, err := services.CartTotal(database.Database.Db, userID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart fetched successfully!", fiber.Map{
		"courses":          courses,
		"required_payment": total,
	})
}

// Checkout enrolls the caller in every carted course in one atomic operation
func Checkout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCheckout").(*struct {
		Amount uint64 `json:"amount"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := services.Checkout(database.Database.Db, userID, reqData.Amount)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	// Confirmation email; checkout already succeeded so failures only log
	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err == nil {
		go func(email, name string, count int) {
			if err := utils.SendEnrollmentConfirmation(email, name, count); err != nil {
				log.Printf("Failed to send enrollment confirmation to %s: %v", email, err)
			}
		}(user.Email, user.Name, len(result.Enrollments))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout completed successfully!", result)
}

// GetEnrollments lists the caller's enrollments in every state
func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollments, err := services.StudentEnrollments(database.Database.Db, userID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
	})
}

// GetEnrollmentView returns the caller's full progress tree for one course
func GetEnrollmentView(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	view, err := services.BuildFullEnrollment(database.Database.Db, userID, courseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", view)
}

// CompleteLesson marks a lesson completed for the caller
func CompleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(uint)

	if err := services.CompleteLesson(database.Database.Db, userID, lessonID); err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson completed!", nil)
}

// SubmitQuiz grades the caller's quiz submission
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(uint)

	reqData, ok := c.Locals("validatedSubmission").(*struct {
		Questions []services.QuestionInput `json:"questions"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := services.SubmitQuiz(database.Database.Db, userID, quizID, reqData.Questions)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", result)
}

package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the student-facing catalog, cart, checkout and
// progress routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Catalog
	userGroup.Get("/list", middleware.JWTMiddleware, controllers.GetPublishedCourses)
	userGroup.Get("/:courseId", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)

	// Cart and checkout
	userGroup.Post("/:courseId/cart", middleware.JWTMiddleware, validators.CourseID(), controllers.CartCourse)
	userGroup.Delete("/:courseId/cart", middleware.JWTMiddleware, validators.CourseID(), controllers.RemoveFromCart)

	cartGroup := app.Group("/cart")
	cartGroup.Get("/", middleware.JWTMiddleware, controllers.GetCart)
	cartGroup.Post("/checkout", validators.Checkout(), middleware.JWTMiddleware, controllers.Checkout)

	// Enrollments and progress
	enrollGroup := app.Group("/enrollment")
	enrollGroup.Get("/list", middleware.JWTMiddleware, controllers.GetEnrollments)
	enrollGroup.Get("/:courseId", middleware.JWTMiddleware, validators.CourseID(), controllers.GetEnrollmentView)

	userGroup.Post("/lesson/:lessonId/complete", middleware.JWTMiddleware, validators.LessonID(), controllers.CompleteLesson)
	userGroup.Post("/quiz/:quizId/submit", validators.SubmitQuiz(), middleware.JWTMiddleware, validators.QuizID(), controllers.SubmitQuiz)
}

package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupMentorCourseRoutes sets up the authoring routes for mentors and the
// admin-only price override
func SetupMentorCourseRoutes(app *fiber.App) {
	mentorGroup := app.Group("/mentor/course")

	// Course authoring
	mentorGroup.Post("/create", validators.CreateCourse(), middleware.JWTMiddleware, controllers.CreateCourse)
	mentorGroup.Get("/list", middleware.JWTMiddleware, controllers.GetMentorCourses)
	mentorGroup.Put("/:courseId", validators.UpdateCourse(), middleware.JWTMiddleware, validators.CourseID(), controllers.UpdateCourseDetails)
	mentorGroup.Post("/:courseId/publish", middleware.JWTMiddleware, validators.CourseID(), controllers.PublishCourse)
	mentorGroup.Post("/:courseId/archive", middleware.JWTMiddleware, validators.CourseID(), controllers.ArchiveCourse)

	// Module authoring
	mentorGroup.Post("/:courseId/module", validators.CreateModule(), middleware.JWTMiddleware, validators.CourseID(), controllers.CreateModule)

	moduleGroup := app.Group("/mentor/module")
	moduleGroup.Put("/:moduleId", validators.UpdateModule(), middleware.JWTMiddleware, validators.ModuleID(), controllers.UpdateModule)
	moduleGroup.Post("/:moduleId/lesson", validators.CreateLesson(), middleware.JWTMiddleware, validators.ModuleID(), controllers.CreateLesson)
	moduleGroup.Post("/:moduleId/quiz", validators.CreateQuiz(), middleware.JWTMiddleware, validators.ModuleID(), controllers.CreateQuiz)

	// Lesson authoring
	lessonGroup := app.Group("/mentor/lesson")
	lessonGroup.Put("/:lessonId", validators.UpdateLesson(), middleware.JWTMiddleware, validators.LessonID(), controllers.UpdateLessonDetails)
	lessonGroup.Post("/:lessonId/video", validators.AddVideo(), middleware.JWTMiddleware, validators.LessonID(), controllers.AddVideoToLesson)
	lessonGroup.Post("/:lessonId/article", validators.AddArticle(), middleware.JWTMiddleware, validators.LessonID(), controllers.AddArticleToLesson)
	lessonGroup.Delete("/:lessonId", middleware.JWTMiddleware, validators.LessonID(), controllers.DeleteLesson)

	// Quiz authoring
	quizGroup := app.Group("/mentor/quiz")
	quizGroup.Put("/:quizId/questions", validators.SaveQuestions(), middleware.JWTMiddleware, validators.QuizID(), controllers.SaveQuizQuestions)

	// Admin surface
	adminGroup := app.Group("/admin/course")
	adminGroup.Get("/archived", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), controllers.GetArchivedCourses)
	adminGroup.Put("/:courseId/price", validators.UpdatePrice(), middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), validators.CourseID(), controllers.AdminUpdateCoursePrice)
}

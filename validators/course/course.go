package courseValidator

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"lms/middleware"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// paramID parses the named route parameter and stores it in Locals as uint
func paramID(param, localKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params(param)
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
		}
		c.Locals(localKey, uint(id))
		return c.Next()
	}
}

func CourseID() fiber.Handler {
	return paramID("courseId", "courseID")
}

func ModuleID() fiber.Handler {
	return paramID("moduleId", "moduleID")
}

func LessonID() fiber.Handler {
	return paramID("lessonId", "lessonID")
}

func QuizID() fiber.Handler {
	return paramID("quizId", "quizID")
}

// parseCreatedAt converts an optional unix-seconds timestamp from the request
func parseCreatedAt(unix *int64) *time.Time {
	if unix == nil {
		return nil
	}
	t := time.Unix(*unix, 0).UTC()
	return &t
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string   `json:"title"`
			Description  string   `json:"description"`
			Level        string   `json:"level"`
			Duration     string   `json:"duration"`
			Category     string   `json:"category"`
			Requirements []string `json:"requirements"`
			Objectives   []string `json:"objectives"`
			ThumbnailURL string   `json:"thumbnail_url"`
			WithAI       bool     `json:"with_ai"`
			Price        uint64   `json:"price"`
			CreatedAt    *int64   `json:"created_at"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		requirements, _ := json.Marshal(reqData.Requirements)
		objectives, _ := json.Marshal(reqData.Objectives)

		c.Locals("validatedCourse", &services.CreateCourseInput{
			Title:        reqData.Title,
			Description:  reqData.Description,
			Level:        reqData.Level,
			Duration:     reqData.Duration,
			Category:     reqData.Category,
			Requirements: requirements,
			Objectives:   objectives,
			ThumbnailURL: reqData.ThumbnailURL,
			WithAI:       reqData.WithAI,
			Price:        reqData.Price,
			CreatedAt:    parseCreatedAt(reqData.CreatedAt),
		})
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string  `json:"title"`
			Description string  `json:"description"`
			Price       *uint64 `json:"price"`
			Category    string  `json:"category"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedCourseUpdate", &services.UpdateCourseInput{
			Title:       reqData.Title,
			Description: reqData.Description,
			Price:       reqData.Price,
			Category:    reqData.Category,
		})
		return c.Next()
	}
}

func UpdatePrice() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Price uint64 `json:"price"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedPrice", reqData)
		return c.Next()
	}
}

func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Status      string `json:"status"`
			OrderIndex  int    `json:"order_index"`
			WithAI      bool   `json:"with_ai"`
			CreatedAt   *int64 `json:"created_at"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", &services.CreateModuleInput{
			Title:       reqData.Title,
			Description: reqData.Description,
			Status:      reqData.Status,
			OrderIndex:  reqData.OrderIndex,
			WithAI:      reqData.WithAI,
			CreatedAt:   parseCreatedAt(reqData.CreatedAt),
		})
		return c.Next()
	}
}

func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			VideoURL    string `json:"video_url"`
			Article     string `json:"article"`
			OrderIndex  int    `json:"order_index"`
			WithAI      bool   `json:"with_ai"`
			CreatedAt   *int64 `json:"created_at"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", &services.CreateLessonInput{
			Title:       reqData.Title,
			Description: reqData.Description,
			VideoURL:    reqData.VideoURL,
			Article:     reqData.Article,
			OrderIndex:  reqData.OrderIndex,
			WithAI:      reqData.WithAI,
			CreatedAt:   parseCreatedAt(reqData.CreatedAt),
		})
		return c.Next()
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

func AddVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			VideoURL string `json:"video_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.VideoURL) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"video_url": "Video URL is required!",
			})
		}

		c.Locals("validatedVideo", reqData)
		return c.Next()
	}
}

func AddArticle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Article string `json:"article"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Article) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"article": "Article body is required!",
			})
		}

		c.Locals("validatedArticle", reqData)
		return c.Next()
	}
}

func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			CreatedAt   *int64 `json:"created_at"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Title) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"title": "Title is required!",
			})
		}

		c.Locals("validatedQuiz", &services.CreateQuizInput{
			Title:       reqData.Title,
			Description: reqData.Description,
			CreatedAt:   parseCreatedAt(reqData.CreatedAt),
		})
		return c.Next()
	}
}

func SaveQuestions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			WithAI    bool                     `json:"with_ai"`
			Questions []services.QuestionInput `json:"questions"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Questions) == 0 {
			errors["questions"] = "At least one question is required!"
		}
		for i, q := range reqData.Questions {
			if strings.TrimSpace(q.Text) == "" {
				errors["questions"] = "Question " + strconv.Itoa(i+1) + " has no text!"
				break
			}
			if len(q.Answers) < 2 {
				errors["questions"] = "Question " + strconv.Itoa(i+1) + " needs at least two answers!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestions", reqData)
		return c.Next()
	}
}

func Checkout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Amount uint64 `json:"amount"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Amount == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"amount": "Amount is required!",
			})
		}

		c.Locals("validatedCheckout", reqData)
		return c.Next()
	}
}

func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Questions []services.QuestionInput `json:"questions"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Questions) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"questions": "Submission must contain the answered questions!",
			})
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}

package services

import (
	"fmt"
	"testing"
	"time"

	"lms/config"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database for one test. The DSN is named
// after the test so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.WalletTransaction{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.Quiz{},
		&courseModels.Question{},
		&courseModels.Answer{},
		&courseModels.QuizAttempt{},
		&courseModels.Enrollment{},
		&courseModels.ModuleProgress{},
		&courseModels.LessonProgress{},
		&courseModels.QuizProgress{},
	))

	config.AppConfig = &config.Config{
		SaltRound:       10,
		PlatformAccount: "platform@test.local",
	}

	return db
}

// overrideNow pins the service clock for the duration of the test
func overrideNow(t *testing.T, fixed time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = prev })
}

func createUser(t *testing.T, db *gorm.DB, email, role string, balance uint64) *models.User {
	t.Helper()
	user := models.User{
		Name:        "Test " + email,
		Username:    email,
		Email:       email,
		Role:        role,
		Password:    "hashed",
		MainBalance: balance,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createPlatformAccount(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, config.AppConfig.PlatformAccount, "ADMIN", 0)
}

func createPublishedCourse(t *testing.T, db *gorm.DB, mentorID uint, price uint64) *courseModels.Course {
	t.Helper()
	crs, err := CreateCourse(db, mentorID, CreateCourseInput{
		Title:       fmt.Sprintf("Course %d", price),
		Description: "A test course",
		Price:       price,
	})
	require.NoError(t, err)
	require.NoError(t, PublishCourse(db, mentorID, crs.ID))
	crs.Status = courseModels.CourseStatusPublished
	return crs
}

func createModule(t *testing.T, db *gorm.DB, mentorID, courseID uint, orderIndex int) *courseModels.Module {
	t.Helper()
	module, err := CreateModule(db, mentorID, courseID, CreateModuleInput{
		Title:      fmt.Sprintf("Module %d", orderIndex),
		OrderIndex: orderIndex,
	})
	require.NoError(t, err)
	return module
}

func createLesson(t *testing.T, db *gorm.DB, mentorID, moduleID uint, orderIndex int) *courseModels.Lesson {
	t.Helper()
	lesson, err := CreateLesson(db, mentorID, moduleID, CreateLessonInput{
		Title:      fmt.Sprintf("Lesson %d", orderIndex),
		OrderIndex: orderIndex,
	})
	require.NoError(t, err)
	return lesson
}

// sampleQuestions is a two-question canonical set used by the quiz tests
func sampleQuestions() []QuestionInput {
	return []QuestionInput{
		{
			Text: "What is 2 + 2?",
			Answers: []AnswerInput{
				{Text: "3", IsCorrect: false},
				{Text: "4", IsCorrect: true},
			},
		},
		{
			Text: "Is the sky blue?",
			Answers: []AnswerInput{
				{Text: "Yes", IsCorrect: true},
				{Text: "No", IsCorrect: false},
			},
		},
	}
}

func createQuizWithQuestions(t *testing.T, db *gorm.DB, mentorID, moduleID uint) *courseModels.Quiz {
	t.Helper()
	quiz, err := CreateQuiz(db, mentorID, moduleID, CreateQuizInput{Title: "Module quiz"})
	require.NoError(t, err)
	require.NoError(t, SaveQuizQuestions(db, mentorID, quiz.ID, false, sampleQuestions()))
	return quiz
}

// enrollStudent carts the course and runs a fully funded checkout
func enrollStudent(t *testing.T, db *gorm.DB, student *models.User, crs *courseModels.Course) {
	t.Helper()
	_, err := SaveCourseToCart(db, student.ID, crs.ID, nil)
	require.NoError(t, err)

	required := crs.Price + CourseFee(crs.Price)
	require.NoError(t, db.Model(student).Update("main_balance", student.MainBalance+required).Error)
	student.MainBalance += required

	_, err = Checkout(db, student.ID, required)
	require.NoError(t, err)
	student.MainBalance -= required
}

func userBalance(t *testing.T, db *gorm.DB, userID uint) uint64 {
	t.Helper()
	var user models.User
	require.NoError(t, db.Where("id = ?", userID).First(&user).Error)
	return user.MainBalance
}

package services

import (
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCoursePromotesUserToMentor(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "newbie@test.local", "USER", 0)

	crs, err := CreateCourse(db, user.ID, CreateCourseInput{Title: "First course", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, courseModels.CourseStatusDraft, crs.Status)
	assert.Equal(t, user.ID, crs.MentorID)

	var reloaded models.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&reloaded).Error)
	assert.Equal(t, "MENTOR", reloaded.Role)
}

func TestPublishCourseIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)
	crs, err := CreateCourse(db, mentor.ID, CreateCourseInput{Title: "c", Description: "d"})
	require.NoError(t, err)

	require.NoError(t, PublishCourse(db, mentor.ID, crs.ID))
	require.NoError(t, PublishCourse(db, mentor.ID, crs.ID))

	reloaded, err := getCourse(db, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.CourseStatusPublished, reloaded.Status)
}

func TestArchiveCourseFromAnyStatus(t *testing.T) {
	db := newTestDB(t)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)

	draft, err := CreateCourse(db, mentor.ID, CreateCourseInput{Title: "draft", Description: "d"})
	require.NoError(t, err)
	require.NoError(t, ArchiveCourse(db, mentor.ID, draft.ID))

	published := createPublishedCourse(t, db, mentor.ID, 100)
	require.NoError(t, ArchiveCourse(db, mentor.ID, published.ID))
	require.NoError(t, ArchiveCourse(db, mentor.ID, published.ID))

	reloaded, err := getCourse(db, published.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.CourseStatusArchived, reloaded.Status)
}

func TestCourseStatusChangeRequiresOwnerOrAdmin(t *testing.T) {
	db := newTestDB(t)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)
	stranger := createUser(t, db, "stranger@test.local", "USER", 0)
	admin := createUser(t, db, "admin@test.local", "ADMIN", 0)

	crs, err := CreateCourse(db, mentor.ID, CreateCourseInput{Title: "c", Description: "d"})
	require.NoError(t, err)

	err = PublishCourse(db, stranger.ID, crs.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.NoError(t, PublishCourse(db, admin.ID, crs.ID))
}

func TestUpdateCoursePriceAdminOnly(t *testing.T) {
	db := newTestDB(t)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)
	admin := createUser(t, db, "admin@test.local", "ADMIN", 0)
	crs := createPublishedCourse(t, db, mentor.ID, 100)

	err := UpdateCoursePrice(db, mentor.ID, crs.ID, 200)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, UpdateCoursePrice(db, admin.ID, crs.ID, 200))
	reloaded, err := getCourse(db, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(200), reloaded.Price)
}

func TestDeleteLessonClosesOrderGap(t *testing.T) {
	db := newTestDB(t)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)
	crs := createPublishedCourse(t, db, mentor.ID, 100)
	module := createModule(t, db, mentor.ID, crs.ID, 0)

	lessons := make([]*courseModels.Lesson, 4)
	for i := 0; i < 4; i++ {
		lessons[i] = createLesson(t, db, mentor.ID, module.ID, i)
	}

	// Remove the second lesson; the two behind it shift down
	require.NoError(t, DeleteLesson(db, mentor.ID, lessons[1].ID))

	var remaining []courseModels.Lesson
	require.NoError(t, db.Where("module_id = ? AND is_deleted = ?", module.ID, false).
		Order("order_index asc").Find(&remaining).Error)

	require.Len(t, remaining, 3)
	assert.Equal(t, []uint{lessons[0].ID, lessons[2].ID, lessons[3].ID},
		[]uint{remaining[0].ID, remaining[1].ID, remaining[2].ID})
	for i, lesson := range remaining {
		assert.Equal(t, i, lesson.OrderIndex)
	}
}

func TestDeleteLessonRequiresOwner(t *testing.T) {
	db := newTestDB(t)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)
	stranger := createUser(t, db, "stranger@test.local", "USER", 0)
	crs := createPublishedCourse(t, db, mentor.ID, 100)
	module := createModule(t, db, mentor.ID, crs.ID, 0)
	lesson := createLesson(t, db, mentor.ID, module.ID, 0)

	err := DeleteLesson(db, stranger.ID, lesson.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateQuizOnePerModule(t *testing.T) {
	db := newTestDB(t)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)
	crs := createPublishedCourse(t, db, mentor.ID, 100)
	module := createModule(t, db, mentor.ID, crs.ID, 0)

	_, err := CreateQuiz(db, mentor.ID, module.ID, CreateQuizInput{Title: "first"})
	require.NoError(t, err)

	_, err = CreateQuiz(db, mentor.ID, module.ID, CreateQuizInput{Title: "second"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSaveQuizQuestionsReplacesPreviousSet(t *testing.T) {
	db := newTestDB(t)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)
	crs := createPublishedCourse(t, db, mentor.ID, 100)
	module := createModule(t, db, mentor.ID, crs.ID, 0)
	quiz := createQuizWithQuestions(t, db, mentor.ID, module.ID)

	replacement := []QuestionInput{
		{
			Text: "Only question now?",
			Answers: []AnswerInput{
				{Text: "Yes", IsCorrect: true},
				{Text: "No", IsCorrect: false},
			},
		},
	}
	require.NoError(t, SaveQuizQuestions(db, mentor.ID, quiz.ID, false, replacement))

	canonical, err := loadQuizQuestions(db, quiz.ID)
	require.NoError(t, err)
	require.Len(t, canonical, 1)
	assert.Equal(t, "Only question now?", canonical[0].Text)
	assert.Len(t, canonical[0].Answers, 2)
}

package services

import (
	"testing"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseFee(t *testing.T) {
	assert.Equal(t, uint64(10), CourseFee(100))
	assert.Equal(t, uint64(9), CourseFee(99)) // floors
	assert.Equal(t, uint64(0), CourseFee(9))
	assert.Equal(t, uint64(0), CourseFee(0))
}

func TestSaveCourseToCartRules(t *testing.T) {
	db := newTestDB(t)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)
	student := createUser(t, db, "student@test.local", "USER", 0)

	draft, err := CreateCourse(db, mentor.ID, CreateCourseInput{Title: "draft", Description: "d"})
	require.NoError(t, err)
	published := createPublishedCourse(t, db, mentor.ID, 100)

	// Unpublished courses cannot be carted
	_, err = SaveCourseToCart(db, student.ID, draft.ID, nil)
	assert.ErrorIs(t, err, ErrConflict)

	// Mentors cannot cart their own course
	_, err = SaveCourseToCart(db, mentor.ID, published.ID, nil)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = SaveCourseToCart(db, student.ID, published.ID, nil)
	require.NoError(t, err)

	// A second cart of the same course is rejected
	_, err = SaveCourseToCart(db, student.ID, published.ID, nil)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRemoveCourseFromCart(t *testing.T) {
	db := newTestDB(t)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)
	student := createUser(t, db, "student@test.local", "USER", 0)
	crs := createPublishedCourse(t, db, mentor.ID, 100)

	_, err := SaveCourseToCart(db, student.ID, crs.ID, nil)
	require.NoError(t, err)
	require.NoError(t, RemoveCourseFromCart(db, student.ID, crs.ID))

	carted, err := CartedEnrollments(db, student.ID)
	require.NoError(t, err)
	assert.Empty(t, carted)

	// Removing again fails, nothing is carted anymore
	err = RemoveCourseFromCart(db, student.ID, crs.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecartAfterRemoval(t *testing.T) {
	db := newTestDB(t)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)
	student := createUser(t, db, "student@test.local", "USER", 0)
	crs := createPublishedCourse(t, db, mentor.ID, 100)

	// cart -> remove -> cart again must land on a fresh CARTED row despite
	// the unique (user, course) index
	_, err := SaveCourseToCart(db, student.ID, crs.ID, nil)
	require.NoError(t, err)
	require.NoError(t, RemoveCourseFromCart(db, student.ID, crs.ID))

	enrollment, err := SaveCourseToCart(db, student.ID, crs.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, courseModels.EnrollmentCarted, enrollment.Status)

	carted, err := CartedEnrollments(db, student.ID)
	require.NoError(t, err)
	require.Len(t, carted, 1)
	assert.Equal(t, enrollment.ID, carted[0].ID)
}

func TestCheckoutSurfacesQuizLookupFailure(t *testing.T) {
	db := newTestDB(t)
	createPlatformAccount(t, db)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)
	student := createUser(t, db, "student@test.local", "USER", 200)
	crs := createPublishedCourse(t, db, mentor.ID, 100)
	createModule(t, db, mentor.ID, crs.ID, 0)

	_, err := SaveCourseToCart(db, student.ID, crs.ID, nil)
	require.NoError(t, err)

	// A broken quiz lookup must abort the checkout, not fan out a module
	// without its quiz row
	require.NoError(t, db.Migrator().DropTable(&courseModels.Quiz{}))

	_, err = Checkout(db, student.ID, 110)
	require.Error(t, err)

	carted, err := CartedEnrollments(db, student.ID)
	require.NoError(t, err)
	assert.Len(t, carted, 1)
	assert.Equal(t, uint64(200), userBalance(t, db, student.ID))
}

func TestCartTotalIncludesFees(t *testing.T) {
	db := newTestDB(t)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)
	student := createUser(t, db, "student@test.local", "USER", 0)
	first := createPublishedCourse(t, db, mentor.ID, 100)
	second := createPublishedCourse(t, db, mentor.ID, 50)

	_, err := SaveCourseToCart(db, student.ID, first.ID, nil)
	require.NoError(t, err)
	_, err = SaveCourseToCart(db, student.ID, second.ID, nil)
	require.NoError(t, err)

	courses, total, err := CartTotal(db, student.ID)
	require.NoError(t, err)
	assert.Len(t, courses, 2)
	assert.Equal(t, uint64(110+55), total)
}

func TestCheckoutHappyPath(t *testing.T) {
	db := newTestDB(t)
	enrolledAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	overrideNow(t, enrolledAt)

	platform := createPlatformAccount(t, db)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)
	student := createUser(t, db, "student@test.local", "USER", 200)

	crs := createPublishedCourse(t, db, mentor.ID, 100)
	module := createModule(t, db, mentor.ID, crs.ID, 0)
	createLesson(t, db, mentor.ID, module.ID, 0)
	createLesson(t, db, mentor.ID, module.ID, 1)
	createQuizWithQuestions(t, db, mentor.ID, module.ID)

	_, err := SaveCourseToCart(db, student.ID, crs.ID, nil)
	require.NoError(t, err)

	result, err := Checkout(db, student.ID, 110)
	require.NoError(t, err)

	require.Len(t, result.Enrollments, 1)
	enrollment := result.Enrollments[0]
	assert.Equal(t, courseModels.EnrollmentEnrolled, enrollment.Status)
	require.NotNil(t, enrollment.EnrolledAt)
	assert.True(t, enrollment.EnrolledAt.Equal(enrolledAt))

	assert.Equal(t, uint64(110), result.AmountCharged)
	assert.Equal(t, uint64(110), result.RequiredAmount)
	assert.Equal(t, 1, result.ModuleCount)
	assert.Equal(t, 2, result.LessonCount)
	assert.Equal(t, 1, result.QuizCount)

	// Money trail: student pays full amount, mentor gets the base price,
	// the platform keeps the fee
	assert.Equal(t, uint64(90), userBalance(t, db, student.ID))
	assert.Equal(t, uint64(100), userBalance(t, db, mentor.ID))
	assert.Equal(t, uint64(10), userBalance(t, db, platform.ID))

	// Fan-out created one progress row per item
	var moduleRows, lessonRows, quizRows int64
	db.Model(&courseModels.ModuleProgress{}).Where("user_id = ?", student.ID).Count(&moduleRows)
	db.Model(&courseModels.LessonProgress{}).Where("user_id = ?", student.ID).Count(&lessonRows)
	db.Model(&courseModels.QuizProgress{}).Where("user_id = ?", student.ID).Count(&quizRows)
	assert.Equal(t, int64(1), moduleRows)
	assert.Equal(t, int64(2), lessonRows)
	assert.Equal(t, int64(1), quizRows)
}

func TestCheckoutMultipleCoursesPaysEachMentor(t *testing.T) {
	db := newTestDB(t)
	createPlatformAccount(t, db)
	firstMentor := createUser(t, db, "mentor1@test.local", "MENTOR", 0)
	secondMentor := createUser(t, db, "mentor2@test.local", "MENTOR", 0)
	student := createUser(t, db, "student@test.local", "USER", 500)

	first := createPublishedCourse(t, db, firstMentor.ID, 100)
	second := createPublishedCourse(t, db, secondMentor.ID, 50)

	_, err := SaveCourseToCart(db, student.ID, first.ID, nil)
	require.NoError(t, err)
	_, err = SaveCourseToCart(db, student.ID, second.ID, nil)
	require.NoError(t, err)

	result, err := Checkout(db, student.ID, 165)
	require.NoError(t, err)
	assert.Len(t, result.Enrollments, 2)

	assert.Equal(t, uint64(100), userBalance(t, db, firstMentor.ID))
	assert.Equal(t, uint64(50), userBalance(t, db, secondMentor.ID))
	assert.Equal(t, uint64(500-165), userBalance(t, db, student.ID))
}

func TestCheckoutSurplusGoesToPlatform(t *testing.T) {
	db := newTestDB(t)
	platform := createPlatformAccount(t, db)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)
	student := createUser(t, db, "student@test.local", "USER", 300)
	crs := createPublishedCourse(t, db, mentor.ID, 100)

	_, err := SaveCourseToCart(db, student.ID, crs.ID, nil)
	require.NoError(t, err)

	// Attach more than the required 110; the extra stays with the platform
	_, err = Checkout(db, student.ID, 130)
	require.NoError(t, err)

	assert.Equal(t, uint64(100), userBalance(t, db, mentor.ID))
	assert.Equal(t, uint64(30), userBalance(t, db, platform.ID))
	assert.Equal(t, uint64(170), userBalance(t, db, student.ID))
}

func TestCheckoutInsufficientAttachedWritesNothing(t *testing.T) {
	db := newTestDB(t)
	createPlatformAccount(t, db)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)
	student := createUser(t, db, "student@test.local", "USER", 500)
	crs := createPublishedCourse(t, db, mentor.ID, 100)

	_, err := SaveCourseToCart(db, student.ID, crs.ID, nil)
	require.NoError(t, err)

	_, err = Checkout(db, student.ID, 109)
	assert.ErrorIs(t, err, ErrInsufficientPayment)

	// The cart, the wallets and the progress tables are untouched
	carted, err := CartedEnrollments(db, student.ID)
	require.NoError(t, err)
	assert.Len(t, carted, 1)
	assert.Equal(t, uint64(500), userBalance(t, db, student.ID))
	assert.Equal(t, uint64(0), userBalance(t, db, mentor.ID))

	var progressRows int64
	db.Model(&courseModels.ModuleProgress{}).Where("user_id = ?", student.ID).Count(&progressRows)
	assert.Zero(t, progressRows)
}

func TestCheckoutWalletBelowAttached(t *testing.T) {
	db := newTestDB(t)
	createPlatformAccount(t, db)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)
	student := createUser(t, db, "student@test.local", "USER", 100)
	crs := createPublishedCourse(t, db, mentor.ID, 100)

	_, err := SaveCourseToCart(db, student.ID, crs.ID, nil)
	require.NoError(t, err)

	_, err = Checkout(db, student.ID, 110)
	assert.ErrorIs(t, err, ErrInsufficientPayment)
	assert.Equal(t, uint64(100), userBalance(t, db, student.ID))
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	student := createUser(t, db, "student@test.local", "USER", 100)

	_, err := Checkout(db, student.ID, 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckoutBooksLedgerRows(t *testing.T) {
	db := newTestDB(t)
	createPlatformAccount(t, db)
	mentor := createUser(t, db, "mentor@test.local", "MENTOR", 0)
	student := createUser(t, db, "student@test.local", "USER", 200)
	crs := createPublishedCourse(t, db, mentor.ID, 100)

	_, err := SaveCourseToCart(db, student.ID, crs.ID, nil)
	require.NoError(t, err)
	_, err = Checkout(db, student.ID, 110)
	require.NoError(t, err)

	var purchase models.WalletTransaction
	require.NoError(t, db.Where("user_id = ? AND transaction_type = ?",
		student.ID, models.TransactionTypeCoursePurchase).First(&purchase).Error)
	assert.Equal(t, uint64(110), purchase.Amount)
	assert.NotEmpty(t, purchase.ReferenceNo)

	var payout models.WalletTransaction
	require.NoError(t, db.Where("user_id = ? AND transaction_type = ?",
		mentor.ID, models.TransactionTypeMentorPayout).First(&payout).Error)
	assert.Equal(t, uint64(100), payout.Amount)
	assert.Equal(t, crs.ID, payout.ReferenceID)
}

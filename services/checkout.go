package services

import (
	"errors"
	"fmt"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// feePercent is the platform cut added on top of each course price at
// checkout. The fee is retained by the platform account; mentors are paid
// the base price only.
const feePercent = 10

// CourseFee returns floor(price * feePercent / 100) in minor units
func CourseFee(price uint64) uint64 {
	return price * feePercent / 100
}

// CheckoutResult reports what a successful checkout did
type CheckoutResult struct {
	Enrollments    []courseModels.Enrollment `json:"enrollments"`
	AmountCharged  uint64                    `json:"amount_charged"`
	RequiredAmount uint64                    `json:"required_amount"`
	ModuleCount    int                       `json:"module_count"`
	LessonCount    int                       `json:"lesson_count"`
	QuizCount      int                       `json:"quiz_count"`
}

// Checkout enrolls the student in every carted course in one atomic
// transaction: validates the attached amount against the carted prices plus
// fees, flips the enrollments to ENROLLED, fans out one progress row per
// module/lesson/quiz that exists in each course at this moment, debits the
// buyer wallet by the attached amount, pays each mentor the base price and
// books the remainder to the platform account. If validation fails nothing
// is written.
func Checkout(db *gorm.DB, userID uint, attached uint64) (*CheckoutResult, error) {
	var student models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&student).Error; err != nil {
		return nil, fmt.Errorf("student: %w", ErrNotFound)
	}

	carted, err := CartedEnrollments(db, userID)
	if err != nil {
		return nil, err
	}
	if len(carted) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", ErrNotFound)
	}

	_, required, err := CartTotal(db, userID)
	if err != nil {
		return nil, err
	}
	if attached < required {
		return nil, fmt.Errorf("attached %d, required %d: %w", attached, required, ErrInsufficientPayment)
	}
	if student.MainBalance < attached {
		return nil, fmt.Errorf("wallet balance %d below attached %d: %w", student.MainBalance, attached, ErrInsufficientPayment)
	}

	enrolledAt := now()
	result := &CheckoutResult{AmountCharged: attached, RequiredAmount: required}

	err = db.Transaction(func(tx *gorm.DB) error {
		var basePriceTotal uint64

		for i := range carted {
			enrollment := &carted[i]
			crs, err := getCourse(tx, enrollment.CourseID)
			if err != nil {
				return err
			}

			enrollment.Status = courseModels.EnrollmentEnrolled
			ts := enrolledAt
			enrollment.EnrolledAt = &ts
			if err := tx.Save(enrollment).Error; err != nil {
				return err
			}

			counts, err := fanOutProgress(tx, userID, crs.ID)
			if err != nil {
				return err
			}
			result.ModuleCount += counts.modules
			result.LessonCount += counts.lessons
			result.QuizCount += counts.quizzes

			// Mentor gets the base price; the fee never reaches them
			if err := creditWallet(tx, crs.MentorID, crs.Price, models.TransactionTypeMentorPayout,
				"Course sale: "+crs.Title, crs.ID, crs.Title); err != nil {
				return err
			}
			basePriceTotal += crs.Price

			result.Enrollments = append(result.Enrollments, *enrollment)
		}

		if err := debitWallet(tx, userID, attached, models.TransactionTypeCoursePurchase,
			fmt.Sprintf("Checkout of %d course(s)", len(carted))); err != nil {
			return err
		}

		// Fees plus any over-attachment stay with the platform
		if surplus := attached - basePriceTotal; surplus > 0 {
			if err := creditPlatform(tx, surplus); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type fanOutCounts struct {
	modules int
	lessons int
	quizzes int
}

// fanOutProgress creates one progress row per module, lesson and quiz that
// exists in the course right now. Rows are created exactly once, at checkout.
func fanOutProgress(tx *gorm.DB, userID, courseID uint) (fanOutCounts, error) {
	var counts fanOutCounts

	var modules []courseModels.Module
	if err := tx.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return counts, err
	}

	for _, module := range modules {
		moduleProgress := courseModels.ModuleProgress{
			ModuleID:   module.ID,
			UserID:     userID,
			Status:     courseModels.ProgressNotStarted,
			IsEnrolled: true,
		}
		if err := tx.Create(&moduleProgress).Error; err != nil {
			return counts, err
		}
		counts.modules++

		var quiz courseModels.Quiz
		quizErr := tx.Where("module_id = ? AND is_deleted = ?", module.ID, false).First(&quiz).Error
		if quizErr == nil {
			quizProgress := courseModels.QuizProgress{
				QuizID:     quiz.ID,
				UserID:     userID,
				Status:     courseModels.ProgressNotStarted,
				IsEnrolled: true,
			}
			if err := tx.Create(&quizProgress).Error; err != nil {
				return counts, err
			}
			counts.quizzes++
		} else if !errors.Is(quizErr, gorm.ErrRecordNotFound) {
			return counts, quizErr
		}

		var lessons []courseModels.Lesson
		if err := tx.Where("module_id = ? AND is_deleted = ?", module.ID, false).
			Order("order_index asc").Find(&lessons).Error; err != nil {
			return counts, err
		}
		for _, lesson := range lessons {
			lessonProgress := courseModels.LessonProgress{
				LessonID:   lesson.ID,
				UserID:     userID,
				Status:     courseModels.ProgressNotStarted,
				IsEnrolled: true,
			}
			if err := tx.Create(&lessonProgress).Error; err != nil {
				return counts, err
			}
			counts.lessons++
		}
	}

	return counts, nil
}

// creditWallet credits a user's balance and books a ledger row
func creditWallet(tx *gorm.DB, userID uint, amount uint64, txType models.TransactionType, description string, refID uint, refName string) error {
	var user models.User
	if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return fmt.Errorf("transfer destination: %w", ErrIntegrity)
	}

	before := user.MainBalance
	after := before + amount

	entry := models.WalletTransaction{
		UserID:          userID,
		TransactionType: txType,
		Amount:          amount,
		BalanceBefore:   before,
		BalanceAfter:    after,
		Status:          models.TransactionStatusCompleted,
		Description:     description,
		ReferenceNo:     uuid.NewString(),
		ReferenceType:   "course",
		ReferenceID:     refID,
		ReferenceName:   refName,
		TransactionDate: now(),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}
	return tx.Model(&user).Update("main_balance", after).Error
}

// debitWallet debits a user's balance and books a ledger row
func debitWallet(tx *gorm.DB, userID uint, amount uint64, txType models.TransactionType, description string) error {
	var user models.User
	if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return fmt.Errorf("wallet owner: %w", ErrIntegrity)
	}
	if user.MainBalance < amount {
		return fmt.Errorf("wallet balance too low: %w", ErrInsufficientPayment)
	}

	before := user.MainBalance
	after := before - amount

	entry := models.WalletTransaction{
		UserID:          userID,
		TransactionType: txType,
		Amount:          amount,
		BalanceBefore:   before,
		BalanceAfter:    after,
		Status:          models.TransactionStatusCompleted,
		Description:     description,
		ReferenceNo:     uuid.NewString(),
		TransactionDate: now(),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}
	return tx.Model(&user).Update("main_balance", after).Error
}

// creditPlatform books checkout fees to the configured platform account.
// The account is looked up by email; if it does not exist the fee is still
// recorded as an orphan ledger row so the money trail survives.
func creditPlatform(tx *gorm.DB, amount uint64) error {
	platform, err := platformAccount(tx)
	if err != nil {
		entry := models.WalletTransaction{
			TransactionType: models.TransactionTypePlatformFee,
			Amount:          amount,
			Status:          models.TransactionStatusCompleted,
			Description:     "Checkout fee (platform account missing)",
			ReferenceNo:     uuid.NewString(),
			TransactionDate: now(),
		}
		return tx.Create(&entry).Error
	}
	return creditWallet(tx, platform.ID, amount, models.TransactionTypePlatformFee, "Checkout fee", 0, "")
}

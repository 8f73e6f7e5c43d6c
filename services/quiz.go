package services

import (
	"encoding/json"
	"fmt"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// SubmitQuizResult reports the outcome of one grading attempt
type SubmitQuizResult struct {
	IsCorrect bool `json:"is_correct"`
	TryCount  int  `json:"try_count"`
}

// SubmitQuiz grades a submission against the canonical questions. Grading is
// positional: the submitted list must have the same length as the stored one
// (anything shorter or longer is an arity error), and text plus correctness
// flags must match exactly at every index. A passed quiz cannot be
// resubmitted; a failed one can be retried without limit.
func SubmitQuiz(db *gorm.DB, userID, quizID uint, submitted []QuestionInput) (*SubmitQuizResult, error) {
	quiz, err := getQuiz(db, quizID)
	if err != nil {
		return nil, err
	}

	var quizProgress courseModels.QuizProgress
	if err := db.Where("quiz_id = ? AND user_id = ? AND is_deleted = ?", quizID, userID, false).
		First(&quizProgress).Error; err != nil {
		return nil, fmt.Errorf("student is not enrolled in the quiz: %w", ErrUnauthorized)
	}
	if !quizProgress.IsEnrolled {
		return nil, fmt.Errorf("student is not enrolled in the quiz: %w", ErrUnauthorized)
	}
	if quizProgress.IsCorrect {
		return nil, fmt.Errorf("quiz already completed correctly: %w", ErrAlreadyCompleted)
	}

	canonical, err := loadQuizQuestions(db, quizID)
	if err != nil {
		return nil, err
	}
	if len(submitted) != len(canonical) {
		return nil, fmt.Errorf("submitted %d questions, quiz has %d: %w", len(submitted), len(canonical), ErrArityMismatch)
	}

	correct := true
	for i, q := range canonical {
		if !questionsEqual(q, submitted[i]) {
			correct = false
			break
		}
	}

	result := &SubmitQuizResult{IsCorrect: correct}

	err = db.Transaction(func(tx *gorm.DB) error {
		quizProgress.TryCount++
		quizProgress.IsSubmitted = true
		quizProgress.IsCorrect = correct
		if correct {
			ts := now()
			quizProgress.Status = courseModels.ProgressCompleted
			quizProgress.CompletedAt = &ts
		} else {
			quizProgress.Status = courseModels.ProgressSubmitted
		}
		if err := tx.Save(&quizProgress).Error; err != nil {
			return err
		}

		snapshot, _ := json.Marshal(submitted)
		attempt := courseModels.QuizAttempt{
			QuizID:        quizID,
			UserID:        userID,
			Submitted:     snapshot,
			IsCorrect:     correct,
			AttemptNumber: quizProgress.TryCount,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		if correct {
			return ReevaluateModuleAndCourse(tx, quiz.ModuleID, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.TryCount = quizProgress.TryCount
	return result, nil
}

// loadQuizQuestions returns the canonical questions with ordered answers
func loadQuizQuestions(db *gorm.DB, quizID uint) ([]QuestionInput, error) {
	var questions []courseModels.Question
	if err := db.Where("quiz_id = ? AND is_deleted = ?", quizID, false).
		Order("order_index asc").Find(&questions).Error; err != nil {
		return nil, err
	}

	out := make([]QuestionInput, 0, len(questions))
	for _, q := range questions {
		var answers []courseModels.Answer
		if err := db.Where("question_id = ? AND is_deleted = ?", q.ID, false).
			Order("order_index asc").Find(&answers).Error; err != nil {
			return nil, err
		}
		in := QuestionInput{Text: q.Text}
		for _, a := range answers {
			in.Answers = append(in.Answers, AnswerInput{Text: a.Text, IsCorrect: a.IsCorrect})
		}
		out = append(out, in)
	}
	return out, nil
}

// questionsEqual compares a canonical question with a submitted one,
// position by position
func questionsEqual(canonical, submitted QuestionInput) bool {
	if canonical.Text != submitted.Text {
		return false
	}
	if len(canonical.Answers) != len(submitted.Answers) {
		return false
	}
	for i, a := range canonical.Answers {
		if a.Text != submitted.Answers[i].Text || a.IsCorrect != submitted.Answers[i].IsCorrect {
			return false
		}
	}
	return true
}

package services

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wrongAnswers() []QuestionInput {
	submission := sampleQuestions()
	// Flip the correctness flags of the first question
	submission[0].Answers[0].IsCorrect = true
	submission[0].Answers[1].IsCorrect = false
	return submission
}

func TestSubmitQuizCorrect(t *testing.T) {
	f := newProgressFixture(t)

	result, err := SubmitQuiz(f.db, f.student.ID, f.quiz.ID, sampleQuestions())
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 1, result.TryCount)

	qp, err := getQuizProgress(f.db, f.quiz.ID, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.ProgressCompleted, qp.Status)
	assert.True(t, qp.IsSubmitted)
	assert.NotNil(t, qp.CompletedAt)
}

func TestSubmitQuizIncorrectThenRetry(t *testing.T) {
	f := newProgressFixture(t)

	result, err := SubmitQuiz(f.db, f.student.ID, f.quiz.ID, wrongAnswers())
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
	assert.Equal(t, 1, result.TryCount)

	qp, err := getQuizProgress(f.db, f.quiz.ID, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.ProgressSubmitted, qp.Status)
	assert.False(t, qp.IsCorrect)
	assert.Nil(t, qp.CompletedAt)

	// A failed quiz can be retried without limit
	result, err = SubmitQuiz(f.db, f.student.ID, f.quiz.ID, sampleQuestions())
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 2, result.TryCount)
}

func TestSubmitQuizAfterPassFails(t *testing.T) {
	f := newProgressFixture(t)
	f.passQuiz(t)

	_, err := SubmitQuiz(f.db, f.student.ID, f.quiz.ID, sampleQuestions())
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	// The rejected call did not bump the try count
	qp, err := getQuizProgress(f.db, f.quiz.ID, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, qp.TryCount)
}

func TestSubmitQuizArityMismatch(t *testing.T) {
	f := newProgressFixture(t)

	short := sampleQuestions()[:1]
	_, err := SubmitQuiz(f.db, f.student.ID, f.quiz.ID, short)
	assert.ErrorIs(t, err, ErrArityMismatch)

	long := append(sampleQuestions(), QuestionInput{Text: "extra"})
	_, err = SubmitQuiz(f.db, f.student.ID, f.quiz.ID, long)
	assert.ErrorIs(t, err, ErrArityMismatch)

	// Arity failures never count as attempts
	qp, err := getQuizProgress(f.db, f.quiz.ID, f.student.ID)
	require.NoError(t, err)
	assert.Zero(t, qp.TryCount)
	assert.False(t, qp.IsSubmitted)
}

func TestSubmitQuizWithoutEnrollment(t *testing.T) {
	f := newProgressFixture(t)
	outsider := createUser(t, f.db, "outsider@test.local", "USER", 0)

	_, err := SubmitQuiz(f.db, outsider.ID, f.quiz.ID, sampleQuestions())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSubmitQuizRecordsAttempts(t *testing.T) {
	f := newProgressFixture(t)

	_, err := SubmitQuiz(f.db, f.student.ID, f.quiz.ID, wrongAnswers())
	require.NoError(t, err)
	_, err = SubmitQuiz(f.db, f.student.ID, f.quiz.ID, sampleQuestions())
	require.NoError(t, err)

	var attempts []courseModels.QuizAttempt
	require.NoError(t, f.db.Where("quiz_id = ? AND user_id = ?", f.quiz.ID, f.student.ID).
		Order("attempt_number asc").Find(&attempts).Error)
	require.Len(t, attempts, 2)
	assert.False(t, attempts[0].IsCorrect)
	assert.True(t, attempts[1].IsCorrect)
	assert.Equal(t, 1, attempts[0].AttemptNumber)
	assert.Equal(t, 2, attempts[1].AttemptNumber)
}

func TestSubmitQuizAnswerTextMustMatch(t *testing.T) {
	f := newProgressFixture(t)

	submission := sampleQuestions()
	submission[1].Answers[0].Text = "Yes!"

	result, err := SubmitQuiz(f.db, f.student.ID, f.quiz.ID, submission)
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
}

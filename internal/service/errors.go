package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCategory  = errors.New("unknown category")
	ErrInvalidAnswerKey = errors.New("invalid answer key")
)

// InvalidAnswerKeyError reports a correct-answer letter that does not point
// at any answer of its question.
type InvalidAnswerKeyError struct {
	QuestionIndex int    // zero-based position of the record in its category
	Letter        string // letter as found in the record
	Choices       int    // number of answers of the record
}

func (e *InvalidAnswerKeyError) Error() string {
	return fmt.Sprintf("%s: question %d: letter %q does not match any of %d answers",
		ErrInvalidAnswerKey, e.QuestionIndex+1, e.Letter, e.Choices)
}

func (e *InvalidAnswerKeyError) Unwrap() error {
	return ErrInvalidAnswerKey
}

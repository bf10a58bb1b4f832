package service

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/lfca-quiz-bot/internal/domain/entities"
)

// TransformQuestion converts a raw record at position index into a Question.
// Ids are derived from the position: "q{index+1}" and "q{index+1}c{choice+1}".
func TransformQuestion(raw entities.RawQuestion, index int) (entities.Question, error) {
	correct := make([]int, 0, len(raw.CorrectResponse))
	for _, letter := range raw.CorrectResponse {
		pos, ok := letterToIndex(letter)
		if !ok || pos >= len(raw.Answers) {
			return entities.Question{}, &InvalidAnswerKeyError{
				QuestionIndex: index,
				Letter:        letter,
				Choices:       len(raw.Answers),
			}
		}
		correct = append(correct, pos)
	}

	if len(correct) == 0 {
		return entities.Question{}, &InvalidAnswerKeyError{QuestionIndex: index, Choices: len(raw.Answers)}
	}

	choices := make([]entities.Choice, len(raw.Answers))
	for i, answer := range raw.Answers {
		choices[i] = entities.Choice{
			ID:   fmt.Sprintf("q%dc%d", index+1, i+1),
			Text: answer,
		}
	}

	return entities.Question{
		ID:             fmt.Sprintf("q%d", index+1),
		Text:           raw.Question,
		Choices:        choices,
		CorrectIndices: correct,
		Multiple:       len(correct) > 1,
		Explanation:    raw.Explanation,
	}, nil
}

// letterToIndex maps "a" (or " A ") to 0, "b" to 1 and so on.
// Only the first character counts.
func letterToIndex(letter string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(letter))
	if s == "" {
		return 0, false
	}

	c := s[0]
	if c < 'a' || c > 'z' {
		return 0, false
	}

	return int(c - 'a'), true
}

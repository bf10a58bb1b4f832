// Package entities contains domain entities used across the application.
package entities

// Choice is one selectable answer option of a question.
type Choice struct {
	ID   string `json:"id"`   // stable id, e.g. "q3c2"
	Text string `json:"text"` // answer text shown to the user
}

// Question is a canonical quiz question derived once from a RawQuestion.
// CorrectIndices is never empty and every index points into Choices.
type Question struct {
	ID             string   `json:"id"`
	Text           string   `json:"text"`
	Choices        []Choice `json:"choices"`
	CorrectIndices []int    `json:"correct_indices"`
	Multiple       bool     `json:"multiple"` // more than one correct choice
	Explanation    string   `json:"explanation,omitempty"`
}

// IsCorrect reports whether the choice at index i belongs to the answer key.
func (q Question) IsCorrect(i int) bool {
	for _, c := range q.CorrectIndices {
		if c == i {
			return true
		}
	}
	return false
}

// RawQuestion is a question record as it is stored in the bundled category files.
type RawQuestion struct {
	Question        string   `json:"question" validate:"required"`
	Answers         []string `json:"answers" validate:"min=2,dive,required"`
	Explanation     string   `json:"explanation"`
	CorrectResponse []string `json:"correct_response" validate:"min=1,dive,required"` // letters: "a", "b", ...
}

// CategoryData is the top-level shape of a category file.
type CategoryData struct {
	Questions []RawQuestion `json:"questions" validate:"dive"`
}

package entities

import "sort"

// Feedback classifies a submitted answer.
type Feedback string

const (
	FeedbackCorrect          Feedback = "correct"
	FeedbackPartiallyCorrect Feedback = "partially_correct"
	FeedbackIncorrect        Feedback = "incorrect"
)

// Evaluation is the result of checking a selection against a question's answer key.
type Evaluation struct {
	Feedback Feedback
	Matched  int // selected choices that are correct
	Total    int // correct choices of the question
}

// AnswerState is the transient per-question answer of the question on screen.
// Selected is kept sorted and free of duplicates.
type AnswerState struct {
	Selected  []int
	Submitted bool
}

// IsSelected reports whether choice i is currently selected.
func (a AnswerState) IsSelected(i int) bool {
	for _, s := range a.Selected {
		if s == i {
			return true
		}
	}
	return false
}

// Select applies a choice to the selection: single-answer questions replace the
// selection, multiple-answer questions toggle membership.
func (a *AnswerState) Select(i int, multiple bool) {
	if !multiple {
		a.Selected = []int{i}
		return
	}

	for pos, s := range a.Selected {
		if s == i {
			a.Selected = append(a.Selected[:pos:pos], a.Selected[pos+1:]...)
			return
		}
	}

	a.Selected = append(a.Selected, i)
	sort.Ints(a.Selected)
}

// Clone returns a copy that shares no memory with a.
func (a AnswerState) Clone() AnswerState {
	out := AnswerState{Submitted: a.Submitted}
	if len(a.Selected) > 0 {
		out.Selected = append([]int(nil), a.Selected...)
	}
	return out
}

// Evaluate compares selected choice indices with the correct ones.
//
// Correct means the selected set equals the correct set. PartiallyCorrect means a
// non-empty strict subset of the correct set with no wrong choice. Anything else,
// including an empty selection, is Incorrect.
func Evaluate(correct, selected []int) Evaluation {
	correctSet := make(map[int]struct{}, len(correct))
	for _, c := range correct {
		correctSet[c] = struct{}{}
	}

	seen := make(map[int]struct{}, len(selected))
	matched, wrong := 0, 0
	for _, s := range selected {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}

		if _, ok := correctSet[s]; ok {
			matched++
		} else {
			wrong++
		}
	}

	ev := Evaluation{Matched: matched, Total: len(correctSet)}
	switch {
	case wrong == 0 && matched == len(correctSet) && matched > 0:
		ev.Feedback = FeedbackCorrect
	case wrong == 0 && matched > 0:
		ev.Feedback = FeedbackPartiallyCorrect
	default:
		ev.Feedback = FeedbackIncorrect
	}

	return ev
}

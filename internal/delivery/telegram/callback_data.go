package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionCategory   = "cat"
	actionCategories = "cats"
	actionNav        = "nav"
	actionPick       = "pick"
	actionSubmit     = "submit"
	actionNoop       = "noop"
)

// Navigation sub-actions.
const (
	navFirst = "first"
	navPrev  = "prev"
	navNext  = "next"
	navLast  = "last"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or "" when it is absent.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func buildCategoryCallback(categoryID string) string {
	return callbackData{
		Action: actionCategory,
		Params: []string{categoryID},
	}.encode()
}

func buildCategoriesCallback() string {
	return actionCategories
}

func buildNavCallback(direction string) string {
	return callbackData{
		Action: actionNav,
		Params: []string{direction},
	}.encode()
}

// buildPickCallback toggles choiceIndex of the one-based question.
func buildPickCallback(question, choiceIndex int) string {
	return callbackData{
		Action: actionPick,
		Params: []string{strconv.Itoa(question), strconv.Itoa(choiceIndex)},
	}.encode()
}

func buildSubmitCallback(question int) string {
	return callbackData{
		Action: actionSubmit,
		Params: []string{strconv.Itoa(question)},
	}.encode()
}

func buildNoopCallback() string {
	return actionNoop
}

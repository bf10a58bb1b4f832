package telegram

import (
	"strconv"
	"strings"
)

// Deep links carry the quiz location as a /start payload "<category>_<n>".
// Telegram allows only [A-Za-z0-9_-] in payloads, so the category keeps its
// own underscores and the question number follows the last one.

func encodeStartPayload(category string, question int) string {
	if question < 1 {
		return category
	}
	return category + "_" + strconv.Itoa(question)
}

// decodeStartPayload splits a /start payload into category and question
// number. question is 0 when the payload carries none.
func decodeStartPayload(payload string) (category string, question int, ok bool) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return "", 0, false
	}

	if i := strings.LastIndex(payload, "_"); i > 0 {
		if n, err := strconv.Atoi(payload[i+1:]); err == nil {
			return payload[:i], n, true
		}
	}

	return payload, 0, true
}

func buildDeepLink(botUserName, category string, question int) string {
	return "https://t.me/" + botUserName + "?start=" + encodeStartPayload(category, question)
}

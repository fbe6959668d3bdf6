package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// UniquePrefix marks telebot's "\f<unique>|<payload>" callback encoding.
const UniquePrefix = "\f"

// ParseCallbackData splits callback data into routing key and payload.
// Plain data is the key verbatim, with no trimming or splitting. Data in
// telebot's unique encoding yields "\f<unique>" as the key, so it never
// collides with a plain key.
func ParseCallbackData(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return UniquePrefix + cb.Unique, cb.Data
	}
	rest, encoded := strings.CutPrefix(cb.Data, UniquePrefix)
	if !encoded {
		return cb.Data, ""
	}
	unique, payload, _ := strings.Cut(rest, "|")
	return UniquePrefix + unique, payload
}

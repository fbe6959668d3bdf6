package router

import (
	"log/slog"
	"strings"

	tg "github.com/nomarddesk/moenry-bot/core/telegram"
	"github.com/nomarddesk/moenry-bot/core/telegram/callbacks"

	tele "gopkg.in/telebot.v4"
)

// CallbackRoute returns the single OnCallback route that dispatches button
// presses through the registry. Every callback is answered first so the
// client stops its loading indicator, even when the key is unknown.
func CallbackRoute(reg *tg.Registry) tg.Route {
	handler := func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil {
			return nil
		}

		key, _ := callbacks.ParseCallbackData(cb)
		name := "callback." + normalizeHandlerName(strings.TrimPrefix(key, callbacks.UniquePrefix))
		_ = c.Respond()

		h, ok := reg.GetCallback(key)
		if !ok || h == nil {
			fallback := reg.CallbackNotFound()
			return handleWithSummary(c, name, "skip", func() error {
				if fallback == nil {
					return nil
				}
				return fallback(c)
			}, slog.String("cb_key", key), slog.String("cause", "not_found"))
		}
		return handleWithSummary(c, name, "", func() error {
			return h(c)
		}, slog.String("cb_key", key))
	}
	return tg.Route{Endpoint: tele.OnCallback, Handler: handler}
}

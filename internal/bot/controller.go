// Package bot adapts the menu catalog to the Telegram transport.
package bot

import (
	"context"
	"log/slog"
	"time"

	"github.com/nomarddesk/moenry-bot/core/logger"
	tghelpers "github.com/nomarddesk/moenry-bot/core/telegram/helpers"
	"github.com/nomarddesk/moenry-bot/core/telegram/keyboard"
	"github.com/nomarddesk/moenry-bot/internal/journal"
	"github.com/nomarddesk/moenry-bot/internal/menu"

	tele "gopkg.in/telebot.v4"
)

const recordTimeout = 2 * time.Second

// Controller answers /start and navigation buttons. It keeps no
// per-conversation state: each update is served from the catalog alone.
type Controller struct {
	catalog *menu.Catalog
	journal journal.Recorder
}

// NewController returns a controller over catalog. A nil recorder disables the journal.
func NewController(catalog *menu.Catalog, rec journal.Recorder) *Controller {
	if rec == nil {
		rec = journal.Nop{}
	}
	return &Controller{catalog: catalog, journal: rec}
}

// OnStart sends the Start screen as a new message.
func (ctl *Controller) OnStart(c tele.Context) error {
	s := ctl.catalog.Start()
	err := tghelpers.SendMD(c, s.Text, Markup(s))
	ctl.record(c, journal.KindCommand, "start", s.ID, err)
	return err
}

// OnButton returns the handler for a, which edits the pressed message in
// place with the target screen.
func (ctl *Controller) OnButton(a menu.Action) tele.HandlerFunc {
	return func(c tele.Context) error {
		s, ok := ctl.catalog.Resolve(a)
		if !ok {
			return nil
		}
		err := tghelpers.EditMD(c, s.Text, Markup(s))
		ctl.record(c, journal.KindCallback, a.ID(), s.ID, err)
		return err
	}
}

// OnCallback routes a button press by its exact callback data. Data that
// is not an action id is ignored.
func (ctl *Controller) OnCallback(c tele.Context) error {
	cb := c.Callback()
	if cb == nil {
		return nil
	}
	a, ok := menu.ParseAction(cb.Data)
	if !ok {
		return ctl.OnUnknown(c)
	}
	return ctl.OnButton(a)(c)
}

// OnUnknown ignores callbacks whose payload maps to no action.
func (ctl *Controller) OnUnknown(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	var data string
	if cb := c.Callback(); cb != nil {
		data = cb.Data
	}
	logger.LogEvent(ctx, logger.TG, slog.LevelDebug, "callback.ignored",
		slog.String("status", "skip"),
		slog.String("payload", logger.SanitizeLimit(data, 64)),
	)
	return nil
}

func (ctl *Controller) record(c tele.Context, kind journal.Kind, action string, screen menu.ScreenID, err error) {
	if _, off := ctl.journal.(journal.Nop); off {
		return
	}
	base := tghelpers.BuildContext(c)
	ctx, cancel := context.WithTimeout(base, recordTimeout)
	defer cancel()

	recErr := ctl.journal.Record(ctx, journal.Event{
		UpdateID: c.Update().ID,
		Kind:     kind,
		Action:   action,
		Screen:   screen.String(),
		Status:   logger.Status(err),
	})
	if recErr != nil {
		logger.Warn(base, "journal", "journal.record_failed",
			slog.String("status", "fail"),
			slog.String("err", logger.SanitizeLimit(recErr.Error(), 256)),
		)
	}
}

// Markup converts the screen keyboard to an inline reply markup.
func Markup(s menu.Screen) *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, len(s.Rows))
	for _, row := range s.Rows {
		btns := make([]keyboard.InlineBtn, 0, len(row))
		for _, b := range row {
			if b.IsLink() {
				btns = append(btns, keyboard.InlineBtn{Text: b.Label, URL: b.URL})
				continue
			}
			btns = append(btns, keyboard.InlineBtn{Text: b.Label, Data: b.Action.ID()})
		}
		rows = append(rows, btns)
	}
	return keyboard.InlineButtonsRows(rows...)
}

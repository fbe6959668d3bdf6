package bot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/nomarddesk/moenry-bot/core/telegram/router"
	"github.com/nomarddesk/moenry-bot/core/telegram/teletest"
	"github.com/nomarddesk/moenry-bot/internal/journal"
	"github.com/nomarddesk/moenry-bot/internal/menu"

	tele "gopkg.in/telebot.v4"
)

type fakeRecorder struct {
	mu     sync.Mutex
	events []journal.Event
	err    error
}

func (f *fakeRecorder) Record(_ context.Context, e journal.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return f.err
}

func labels(m *tele.ReplyMarkup) []string {
	if m == nil {
		return nil
	}
	var out []string
	for _, row := range m.InlineKeyboard {
		for _, b := range row {
			out = append(out, b.Text)
		}
	}
	return out
}

func TestOnStartSendsStartScreen(t *testing.T) {
	cat := menu.NewCatalog(menu.DefaultLinks())
	ctl := NewController(cat, nil)

	for i := 0; i < 2; i++ {
		c := teletest.NewCommand(i+1, 7, "/start")
		if err := ctl.OnStart(c); err != nil {
			t.Fatalf("OnStart: %v", err)
		}
		sent := c.Sent()
		if len(sent) != 1 {
			t.Fatalf("sent = %d, want 1", len(sent))
		}
		if sent[0].Text() != cat.Start().Text {
			t.Errorf("start text differs on call %d", i+1)
		}
		if opts := sent[0].Options(); opts == nil || opts.ParseMode != tele.ModeMarkdown {
			t.Errorf("parse mode not markdown: %+v", opts)
		}
		want := []string{"📚 Learn More", "🌐 Visit Website", "📱 Join Channel"}
		if got := labels(sent[0].Markup()); strings.Join(got, "|") != strings.Join(want, "|") {
			t.Errorf("buttons = %v, want %v", got, want)
		}
		if len(c.Edited()) != 0 {
			t.Error("OnStart must not edit")
		}
	}
}

func TestCallbackEditsInPlace(t *testing.T) {
	app, err := NewApp(testConfig(), nil)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	route := router.CallbackRoute(app.Registry())
	cat := menu.NewCatalog(menu.DefaultLinks())

	tests := []struct {
		payload string
		screen  menu.ScreenID
		buttons []string
	}{
		{"learn_more", menu.ScreenLearnMore, []string{"🚀 Join Waitlist", "📢 Updates", "← Back"}},
		{"waitlist", menu.ScreenWaitlist, []string{"🌐 Register Online", "← Back"}},
		{"back", menu.ScreenStart, []string{"📚 Learn More", "🌐 Visit Website", "📱 Join Channel"}},
		{"back_to_start", menu.ScreenStart, []string{"📚 Learn More", "🌐 Visit Website", "📱 Join Channel"}},
	}
	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			c := teletest.NewCallback(10, 7, tt.payload)
			if err := route.Handler(c); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if len(c.Sent()) != 0 {
				t.Error("callbacks must edit, not send")
			}
			edited := c.Edited()
			if len(edited) != 1 {
				t.Fatalf("edits = %d, want 1", len(edited))
			}
			want, _ := cat.Screen(tt.screen)
			if edited[0].Text() != want.Text {
				t.Errorf("text mismatch for %s", tt.payload)
			}
			if got := labels(edited[0].Markup()); strings.Join(got, "|") != strings.Join(tt.buttons, "|") {
				t.Errorf("buttons = %v, want %v", got, tt.buttons)
			}
			if c.Responses() != 1 {
				t.Errorf("responses = %d, want 1", c.Responses())
			}
		})
	}
}

func TestCallbackDataMatchesRegistry(t *testing.T) {
	app, err := NewApp(testConfig(), nil)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	cat := menu.NewCatalog(menu.DefaultLinks())
	for _, id := range []menu.ScreenID{menu.ScreenStart, menu.ScreenLearnMore, menu.ScreenWaitlist} {
		s, _ := cat.Screen(id)
		for _, row := range Markup(s).InlineKeyboard {
			for _, b := range row {
				if b.URL != "" {
					if b.Data != "" {
						t.Errorf("%s: link %q carries data", id, b.Text)
					}
					continue
				}
				if _, ok := app.Registry().GetCallback(b.Data); !ok {
					t.Errorf("%s: button %q data %q not registered", id, b.Text, b.Data)
				}
			}
		}
	}
}

func TestStartLearnMoreBackRoundTrip(t *testing.T) {
	app, err := NewApp(testConfig(), nil)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	route := router.CallbackRoute(app.Registry())
	ctl := app.controller

	start := teletest.NewCommand(1, 7, "/start")
	if err := ctl.OnStart(start); err != nil {
		t.Fatalf("OnStart: %v", err)
	}
	learn := teletest.NewCallback(2, 7, "learn_more")
	if err := route.Handler(learn); err != nil {
		t.Fatalf("learn_more: %v", err)
	}
	back := teletest.NewCallback(3, 7, "back")
	if err := route.Handler(back); err != nil {
		t.Fatalf("back: %v", err)
	}
	if got, want := back.Edited()[0].Text(), start.Sent()[0].Text(); got != want {
		t.Errorf("back text differs from /start text")
	}
}

func TestUnknownPayloadIsNoop(t *testing.T) {
	app, err := NewApp(testConfig(), nil)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	route := router.CallbackRoute(app.Registry())

	for _, payload := range []string{"buy_now", "", "\fmenu|learn_more", "LEARN_MORE", "learn_more|junk", "\fwaitlist", "\fback|x", " learn_more "} {
		c := teletest.NewCallback(5, 7, payload)
		if err := route.Handler(c); err != nil {
			t.Errorf("%q: err = %v", payload, err)
		}
		if len(c.Edited()) != 0 || len(c.Sent()) != 0 {
			t.Errorf("%q: unexpected transport calls", payload)
		}
		if c.Responses() != 1 {
			t.Errorf("%q: callback not answered", payload)
		}
	}
}

func TestTransportErrorsReturnedWithoutRetry(t *testing.T) {
	ctl := NewController(menu.NewCatalog(menu.DefaultLinks()), nil)
	boom := errors.New("telegram: 502")

	c := teletest.NewCallback(1, 7, "waitlist")
	c.EditErr = boom
	if err := ctl.OnButton(menu.ActionWaitlist)(c); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	if len(c.Sent()) != 0 {
		t.Error("failure must not send a message")
	}

	s := teletest.NewCommand(2, 7, "/start")
	s.SendErr = boom
	if err := ctl.OnStart(s); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestJournalRecordsInteractions(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	ctl := NewController(menu.NewCatalog(menu.DefaultLinks()), rec)

	if err := ctl.OnStart(teletest.NewCommand(1, 7, "/start")); err != nil {
		t.Fatalf("OnStart: %v", err)
	}
	failing := teletest.NewCallback(2, 7, "learn_more")
	failing.EditErr = errors.New("bad request")
	_ = ctl.OnButton(menu.ActionLearnMore)(failing)

	if len(rec.events) != 2 {
		t.Fatalf("events = %d, want 2", len(rec.events))
	}
	first, second := rec.events[0], rec.events[1]
	if first.Kind != journal.KindCommand || first.Screen != "start" || first.Status != "ok" || first.UpdateID != 1 {
		t.Errorf("first = %+v", first)
	}
	if second.Kind != journal.KindCallback || second.Action != "learn_more" || second.Screen != "learn_more" || second.Status != "fail" {
		t.Errorf("second = %+v", second)
	}
}

func TestRunOptions(t *testing.T) {
	app, err := NewApp(testConfig(), nil)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	opts, err := app.TelegramRunOptions()
	if err != nil {
		t.Fatalf("TelegramRunOptions: %v", err)
	}
	var hasStart, hasCallback bool
	for _, r := range opts.Routes {
		switch r.Endpoint {
		case "/start":
			hasStart = true
		case tele.OnCallback:
			hasCallback = true
		}
	}
	if !hasStart || !hasCallback {
		t.Errorf("routes missing: start=%v callback=%v", hasStart, hasCallback)
	}
	if cmds := opts.Registry.ListCommands(); len(cmds) != 1 || cmds[0].Text != "start" {
		t.Errorf("commands = %+v", cmds)
	}
	if len(opts.Middlewares) == 0 {
		t.Error("no middlewares")
	}
}

func TestOnCallbackExactMatch(t *testing.T) {
	ctl := NewController(menu.NewCatalog(menu.DefaultLinks()), nil)

	tests := []struct {
		data  string
		edits int
	}{
		{data: "learn_more", edits: 1},
		{data: "back_to_start", edits: 1},
		{data: "learn_more|junk", edits: 0},
		{data: " learn_more ", edits: 0},
		{data: "\fwaitlist", edits: 0},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			c := teletest.NewCallback(1, 7, tt.data)
			if err := ctl.OnCallback(c); err != nil {
				t.Fatalf("OnCallback: %v", err)
			}
			if got := len(c.Edited()); got != tt.edits {
				t.Errorf("edits = %d, want %d", got, tt.edits)
			}
		})
	}
}

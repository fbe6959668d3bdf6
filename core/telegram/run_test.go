package telegram

import (
	"errors"
	"testing"

	coreconfig "github.com/nomarddesk/moenry-bot/core/config"
	"github.com/nomarddesk/moenry-bot/core/telegram/commands"
	"github.com/nomarddesk/moenry-bot/core/telegram/teletest"

	tele "gopkg.in/telebot.v4"
)

func TestNewBotRequiresToken(t *testing.T) {
	tests := []struct {
		name string
		cfg  *coreconfig.Config
	}{
		{name: "nil config", cfg: nil},
		{name: "empty token", cfg: &coreconfig.Config{}},
		{name: "blank token", cfg: &coreconfig.Config{Telegram: coreconfig.TelegramConfig{Token: "  "}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			_, err := NewBot(RunOptions{
				Config:   tt.cfg,
				Settings: func(*tele.Settings) { created = true },
			})
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.cfg != nil && !errors.Is(err, coreconfig.ErrMissingToken) {
				t.Errorf("err = %v, want ErrMissingToken", err)
			}
			if created {
				t.Error("transport settings built without a token")
			}
		})
	}
}

func TestErrorReporterDropsErrors(t *testing.T) {
	var got []error
	report := errorReporter(func(err error, _ tele.Context) { got = append(got, err) })

	c := teletest.NewCallback(9, 3, "learn_more")
	report(errors.New("edit failed"), c)
	report(errors.New("poll failed"), nil)
	report(nil, c)

	if len(got) != 2 {
		t.Fatalf("forwarded = %d, want 2", len(got))
	}
	if len(c.Sent()) != 0 || len(c.Edited()) != 0 {
		t.Error("errors must not reach the user")
	}
}

func TestBuildPoller(t *testing.T) {
	lp, ok := BuildPoller(PollerOptions{}).(*tele.LongPoller)
	if !ok || lp.Timeout != defaultLongPollTimeout {
		t.Fatalf("default poller = %#v", lp)
	}
	wh, ok := BuildPoller(PollerOptions{
		RunMode: "Webhook",
		Webhook: WebhookOptions{Listen: "0.0.0.0", Port: 8443, URL: "https://bot.example.org/hook"},
	}).(*tele.Webhook)
	if !ok {
		t.Fatal("expected webhook poller")
	}
	if wh.Listen != "0.0.0.0:8443" || wh.Endpoint.PublicURL != "https://bot.example.org/hook" {
		t.Errorf("webhook = %+v", wh)
	}
}

func TestRegistryCommands(t *testing.T) {
	reg := NewRegistry()
	h := func(tele.Context) error { return nil }
	if err := reg.RegisterCommand("start", commands.Command{Handler: h, Description: "Show the launch announcement"}); err == nil {
		t.Error("expected error for missing slash")
	}
	if err := reg.RegisterCommand("/start", commands.Command{Handler: h, Description: "Show the launch announcement"}); err != nil {
		t.Fatalf("RegisterCommand: %v", err)
	}
	if err := reg.RegisterCommand("/start", commands.Command{Handler: h, Description: "Show the launch announcement"}); err == nil {
		t.Error("expected duplicate error")
	}
	list := reg.ListCommands()
	if len(list) != 1 || list[0].Text != "start" {
		t.Errorf("ListCommands = %+v", list)
	}
	if err := reg.RegisterCallback("learn_more", h); err != nil {
		t.Fatalf("RegisterCallback: %v", err)
	}
	if _, ok := reg.GetCallback("learn_more"); !ok {
		t.Error("callback not found")
	}
	if err := reg.CallbackNotFound()(teletest.NewCallback(1, 1, "x")); err != nil {
		t.Errorf("default not-found handler: %v", err)
	}
}

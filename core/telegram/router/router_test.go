package router

import (
	"errors"
	"testing"

	tg "github.com/nomarddesk/moenry-bot/core/telegram"
	"github.com/nomarddesk/moenry-bot/core/telegram/commands"
	"github.com/nomarddesk/moenry-bot/core/telegram/teletest"

	tele "gopkg.in/telebot.v4"
)

type customErr struct{}

func (*customErr) Error() string { return "custom" }

func TestDeriveErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "api", err: tele.NewError(400, "telegram: message is not modified", "Bad Request: message is not modified"), want: "TG_400"},
		{name: "typed", err: &customErr{}, want: "CUSTOMERR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriveErrorCode(tt.err); got != tt.want {
				t.Errorf("deriveErrorCode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeHandlerName(t *testing.T) {
	tests := map[string]string{"/Start": "start", "": "unknown", " learn more ": "learn_more"}
	for in, want := range tests {
		if got := normalizeHandlerName(in); got != want {
			t.Errorf("normalizeHandlerName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCommandRoutes(t *testing.T) {
	reg := tg.NewRegistry()
	calls := 0
	_ = reg.RegisterCommand("/start", commands.Command{
		Handler:     func(tele.Context) error { calls++; return nil },
		Description: "start",
	})
	routes := CommandRoutes(reg)
	if len(routes) != 1 || routes[0].Endpoint != "/start" {
		t.Fatalf("routes = %+v", routes)
	}
	if err := routes[0].Handler(teletest.NewCommand(1, 1, "/start")); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d", calls)
	}
}

func TestCallbackRouteExactKey(t *testing.T) {
	reg := tg.NewRegistry()
	hits, misses := 0, 0
	_ = reg.RegisterCallback("learn_more", func(tele.Context) error { hits++; return nil })
	reg.SetCallbackNotFound(func(tele.Context) error { misses++; return nil })
	route := CallbackRoute(reg)

	for _, data := range []string{"learn_more|x", " learn_more ", "\flearn_more", "\flearn_more|x", "learn_more"} {
		c := teletest.NewCallback(1, 1, data)
		if err := route.Handler(c); err != nil {
			t.Fatalf("%q: %v", data, err)
		}
		if c.Responses() != 1 {
			t.Errorf("%q: responses = %d, want 1", data, c.Responses())
		}
	}
	if hits != 1 || misses != 4 {
		t.Errorf("hits = %d, misses = %d, want 1 and 4", hits, misses)
	}
}

func TestCallbackRoutePropagatesErrors(t *testing.T) {
	reg := tg.NewRegistry()
	boom := errors.New("boom")
	_ = reg.RegisterCallback("waitlist", func(tele.Context) error { return boom })

	c := teletest.NewCallback(1, 1, "waitlist")
	if err := CallbackRoute(reg).Handler(c); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if c.Responses() != 1 {
		t.Errorf("responses = %d, want 1", c.Responses())
	}
}

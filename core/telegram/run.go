package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	coreconfig "github.com/nomarddesk/moenry-bot/core/config"
	"github.com/nomarddesk/moenry-bot/core/logger"
	tghelpers "github.com/nomarddesk/moenry-bot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// Middleware describes a global bot middleware to be registered via bot.Use.
type Middleware struct {
	Name string
	Use  func(next tele.HandlerFunc) tele.HandlerFunc
}

// Route declares a single bot handler bound to an arbitrary endpoint.
// Endpoint values are passed directly to tele.Bot.Handle.
type Route struct {
	Endpoint any
	Handler  tele.HandlerFunc
}

// RunOptions controls the behaviour of NewBot and RunTelegram.
type RunOptions struct {
	Config   *coreconfig.Config
	Registry *Registry

	Middlewares []Middleware
	Routes      []Route

	DisableWebhookCleanup bool
	DisableCommandMenu    bool

	// Settings, when set, adjusts the transport settings before the bot is created.
	Settings func(*tele.Settings)

	// OnError receives handler errors after they are logged. Errors never
	// propagate past the transport.
	OnError func(err error, c tele.Context)

	OnStart func(ctx context.Context, rt Runtime) error
	OnStop  func(ctx context.Context, rt Runtime) error
}

// Runtime exposes runtime components to lifecycle hooks.
type Runtime struct {
	Bot      *tele.Bot
	Registry *Registry
}

// NewBot validates opts, creates the transport and registers the
// middlewares and routes. No transport is created without a token.
func NewBot(opts RunOptions) (*tele.Bot, error) {
	if opts.Config == nil {
		return nil, errors.New("telegram: nil config provided")
	}
	cfg := opts.Config
	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		return nil, coreconfig.ErrMissingToken
	}

	pollerOpts := PollerOptionsFrom(cfg)
	poller := BuildPoller(pollerOpts)

	pollTimeout := defaultLongPollTimeout
	if lp, ok := poller.(*tele.LongPoller); ok {
		pollTimeout = lp.Timeout
	}

	settings := tele.Settings{
		Token:   cfg.Telegram.Token,
		Poller:  poller,
		Client:  BuildHTTPClient(pollTimeout),
		OnError: errorReporter(opts.OnError),
	}
	if opts.Settings != nil {
		opts.Settings(&settings)
	}

	start := time.Now()
	bot, err := tele.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("telegram: bot initialization failed: %w", err)
	}
	logMode(poller, logger.Took(start))

	Wire(bot, opts.Middlewares, opts.Routes)
	return bot, nil
}

// Wire registers middlewares, then routes, on bot.
func Wire(bot *tele.Bot, mws []Middleware, routes []Route) {
	names := make([]string, 0, len(mws))
	for _, mw := range mws {
		if mw.Use == nil {
			continue
		}
		bot.Use(mw.Use)
		names = append(names, mw.Name)
	}

	handled := 0
	for _, route := range routes {
		if route.Endpoint == nil || route.Handler == nil {
			continue
		}
		bot.Handle(route.Endpoint, route.Handler)
		handled++
	}

	logger.TWire.Debug("tg.wire",
		slog.String("event", "routes"),
		slog.String("middlewares", strings.Join(names, ",")),
		slog.Int("routes", handled),
	)
}

// RunTelegram composes and runs a Telegram bot until ctx is done.
func RunTelegram(ctx context.Context, opts RunOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reg := opts.Registry
	if reg == nil {
		reg = NewRegistry()
	}

	bot, err := NewBot(opts)
	if err != nil {
		return err
	}

	if _, polling := bot.Poller.(*tele.LongPoller); polling && !opts.DisableWebhookCleanup {
		if err := bot.RemoveWebhook(false); err != nil {
			logger.TG.Warn("failed to delete webhook",
				slog.String("event", "delete_webhook"),
				slog.String("mode", "polling"),
				slog.String("err", err.Error()),
			)
		} else {
			logger.TG.Info("webhook deleted",
				slog.String("event", "delete_webhook"),
				slog.String("mode", "polling"),
			)
		}
	}

	if !opts.DisableCommandMenu {
		InitBotCommands(bot, reg)
	}

	rt := Runtime{Bot: bot, Registry: reg}
	if opts.OnStart != nil {
		if err := opts.OnStart(ctx, rt); err != nil {
			return err
		}
	}

	runDone := make(chan struct{})
	go func() {
		bot.Start()
		close(runDone)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		bot.Stop()
		<-runDone
		runErr = ctx.Err()
	case <-runDone:
	}

	if opts.OnStop != nil {
		if err := opts.OnStop(context.WithoutCancel(ctx), rt); err != nil {
			return err
		}
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

// errorReporter logs a handler or poller error with the update identity and
// drops it. next, when set, is called afterwards.
func errorReporter(next func(error, tele.Context)) func(error, tele.Context) {
	return func(err error, c tele.Context) {
		if err == nil {
			return
		}
		ctx := logger.Background()
		attrs := []slog.Attr{
			slog.String("status", "fail"),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		}
		if c != nil {
			ctx = tghelpers.BuildContext(c)
			updateID, chatID, _ := tghelpers.UpdateIDs(c)
			attrs = append(attrs,
				slog.Int("update_id", updateID),
				slog.Int64("chat_id", chatID),
			)
		}
		logger.LogEvent(ctx, logger.TG, slog.LevelError, "update.failed", attrs...)
		if next != nil {
			next(err, c)
		}
	}
}

func logMode(poller tele.Poller, took time.Duration) {
	switch p := poller.(type) {
	case *tele.Webhook:
		logger.TG.Info("webhook mode",
			slog.String("event", "mode"),
			slog.String("mode", coreconfig.RunModeWebhook),
			slog.String("listen", p.Listen),
			slog.String("public_url", p.Endpoint.PublicURL),
			slog.Duration("duration", logger.RoundMS(took)),
		)
	case *tele.LongPoller:
		logger.TG.Info("polling mode",
			slog.String("event", "mode"),
			slog.String("mode", "polling"),
			slog.Int("timeout_seconds", int(p.Timeout/time.Second)),
			slog.Duration("duration", logger.RoundMS(took)),
		)
	}
}

package bot

import (
	"fmt"

	coreconfig "github.com/nomarddesk/moenry-bot/core/config"
	tg "github.com/nomarddesk/moenry-bot/core/telegram"
	"github.com/nomarddesk/moenry-bot/core/telegram/commands"
	"github.com/nomarddesk/moenry-bot/core/telegram/router"
	"github.com/nomarddesk/moenry-bot/internal/journal"
	"github.com/nomarddesk/moenry-bot/internal/menu"

	tele "gopkg.in/telebot.v4"
)

// App holds the wired bot ready to be run.
type App struct {
	cfg        *coreconfig.Config
	controller *Controller
	registry   *tg.Registry
}

// NewApp builds the catalog from cfg links and registers every handler.
func NewApp(cfg *coreconfig.Config, rec journal.Recorder) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bot: nil config")
	}
	catalog := menu.NewCatalog(LinksFrom(cfg.Links))
	ctl := NewController(catalog, rec)

	reg := tg.NewRegistry()
	if err := reg.RegisterCommand("/start", commands.Command{
		Handler:     ctl.OnStart,
		Description: "Show the launch announcement",
	}); err != nil {
		return nil, fmt.Errorf("bot: %w", err)
	}
	for _, a := range menu.Actions() {
		for _, key := range append([]string{a.ID()}, a.Aliases()...) {
			if err := reg.RegisterCallback(key, ctl.OnCallback); err != nil {
				return nil, fmt.Errorf("bot: %w", err)
			}
		}
	}
	reg.SetCallbackNotFound(ctl.OnUnknown)

	return &App{cfg: cfg, controller: ctl, registry: reg}, nil
}

// LinksFrom maps the links config section onto menu links.
func LinksFrom(l coreconfig.LinksConfig) menu.Links {
	return menu.Links{
		WebsiteURL:    l.WebsiteURL,
		ChannelURL:    l.ChannelURL,
		UpdatesURL:    l.UpdatesURL,
		WaitlistURL:   l.WaitlistURL,
		WaitlistEmail: l.WaitlistEmail,
	}
}

// Registry returns the command and callback registry.
func (a *App) Registry() *tg.Registry {
	return a.registry
}

// TelegramRunOptions implements cmd.TelegramApp.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	routes := router.CommandRoutes(a.registry)
	routes = append(routes, router.CallbackRoute(a.registry))
	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(a.cfg, onLimited),
		Routes:      routes,
	}, nil
}

// onLimited clears the button spinner of a throttled callback.
func onLimited(c tele.Context) error {
	if c.Callback() != nil {
		return c.Respond()
	}
	return nil
}

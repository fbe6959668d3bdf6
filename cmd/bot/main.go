package main

import (
	"log/slog"
	"os"

	"github.com/nomarddesk/moenry-bot/core/bootstrap"
	corecmd "github.com/nomarddesk/moenry-bot/core/cmd"
	coreconfig "github.com/nomarddesk/moenry-bot/core/config"
	"github.com/nomarddesk/moenry-bot/core/logger"
	"github.com/nomarddesk/moenry-bot/internal/bot"
	"github.com/nomarddesk/moenry-bot/internal/journal"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string, optional bool) (corecmd.ConfigCarrier, error) {
			return coreconfig.Load(path, optional)
		},
		Bootstrap: build,
	})
	if err != nil {
		logger.L.With("component", "app").Error("bot stopped",
			slog.String("event", "exit"),
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		_ = logger.Shutdown()
		os.Exit(1)
	}
}

func build(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, func() error, error) {
	cfg := carrier.CoreConfig()
	res, err := bootstrap.Run(bootstrap.Options{
		Config:  cfg,
		Migrate: journal.Migrate,
	})
	if err != nil {
		return nil, nil, err
	}

	var rec journal.Recorder = journal.Nop{}
	if res.DB != nil {
		rec = journal.New(res.DB)
	}

	app, err := bot.NewApp(cfg, rec)
	if err != nil {
		_ = res.Close()
		return nil, nil, err
	}
	return app, res.Close, nil
}

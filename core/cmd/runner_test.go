package cmd

import (
	"context"
	"errors"
	"testing"

	coreconfig "github.com/nomarddesk/moenry-bot/core/config"
	coretelegram "github.com/nomarddesk/moenry-bot/core/telegram"
)

type fakeApp struct{ opts coretelegram.RunOptions }

func (a fakeApp) TelegramRunOptions() (coretelegram.RunOptions, error) { return a.opts, nil }

func loadFrom(cfg *coreconfig.Config, err error) func(string, bool) (ConfigCarrier, error) {
	return func(string, bool) (ConfigCarrier, error) {
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}
}

func TestRunStopsOnConfigError(t *testing.T) {
	bootstrapped, ran := false, false
	err := Run(Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig:        loadFrom(nil, coreconfig.ErrMissingToken),
		Bootstrap: func(ConfigCarrier) (TelegramApp, func() error, error) {
			bootstrapped = true
			return fakeApp{}, nil, nil
		},
		ShutdownLogger: func() error { return nil },
		RunTelegram: func(context.Context, coretelegram.RunOptions) error {
			ran = true
			return nil
		},
	})
	if !errors.Is(err, coreconfig.ErrMissingToken) {
		t.Fatalf("err = %v, want ErrMissingToken", err)
	}
	if bootstrapped || ran {
		t.Errorf("bootstrap=%v run=%v, want neither", bootstrapped, ran)
	}
}

func TestRunConfigPathSelection(t *testing.T) {
	tests := []struct {
		name         string
		env          string
		wantPath     string
		wantOptional bool
	}{
		{name: "default", env: "", wantPath: "config.yaml", wantOptional: true},
		{name: "explicit", env: "/etc/bot.yaml", wantPath: "/etc/bot.yaml", wantOptional: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_PATH", tt.env)
			var gotPath string
			var gotOptional bool
			_ = Run(Options{
				DefaultConfigPath: "config.yaml",
				LoadConfig: func(path string, optional bool) (ConfigCarrier, error) {
					gotPath, gotOptional = path, optional
					return nil, errors.New("stop")
				},
				Bootstrap: func(ConfigCarrier) (TelegramApp, func() error, error) { return fakeApp{}, nil, nil },
			})
			if gotPath != tt.wantPath || gotOptional != tt.wantOptional {
				t.Errorf("LoadConfig(%q, %v), want (%q, %v)", gotPath, gotOptional, tt.wantPath, tt.wantOptional)
			}
		})
	}
}

func TestRunWiresLifecycle(t *testing.T) {
	cfg := &coreconfig.Config{Telegram: coreconfig.TelegramConfig{Token: "t"}}
	closed, shut := false, false
	var hooked bool

	err := Run(Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig:        loadFrom(cfg, nil),
		Bootstrap: func(ConfigCarrier) (TelegramApp, func() error, error) {
			closer := func() error {
				closed = true
				return nil
			}
			return fakeApp{opts: coretelegram.RunOptions{Config: cfg}}, closer, nil
		},
		ShutdownLogger: func() error { shut = true; return nil },
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			if opts.Config != cfg {
				t.Error("run options config not passed through")
			}
			if err := opts.OnStart(ctx, coretelegram.Runtime{}); err != nil {
				return err
			}
			hooked = true
			return opts.OnStop(ctx, coretelegram.Runtime{})
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !hooked || !closed || !shut {
		t.Errorf("hooked=%v closed=%v shut=%v", hooked, closed, shut)
	}
}

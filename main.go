package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"pixview/internal/config"
	"pixview/internal/domain"
	"pixview/internal/eventbus"
	"pixview/internal/imageio"
	"pixview/internal/navigation"
	"pixview/internal/render"
	"pixview/internal/ui"
	"pixview/internal/viewport"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            "pixview",
		Usage:           "view pixel art in the terminal",
		ArgsUsage:       "[IMAGE]",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (TOML)"},
			&cli.BoolFlag{Name: "dark", Usage: "start with the dark background"},
			&cli.StringSliceFlag{Name: "ext", Usage: "image `EXTENSION`s to step through, overrides the configuration"},
			&cli.StringFlag{Name: "sort", Usage: "sibling `ORDER`: name or natural"},
		},
		Action: run,
	}

	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pixview: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	configSvc := config.NewConfigService(cmd.String("config"))
	_, statErr := os.Stat(configSvc.Path())
	hasConfig := statErr == nil

	fileCfg, err := configSvc.Load()
	if err != nil {
		return fmt.Errorf("unable to prepare configuration: %w", err)
	}
	cfg, err := applyFlags(*fileCfg, cmd)
	if err != nil {
		return err
	}

	log, err := cfg.Logging.Prepare()
	if err != nil {
		return fmt.Errorf("unable to prepare logs: %w", err)
	}
	defer func() { _ = log.Sync() }()
	restoreStdLog := zap.RedirectStdLog(log)
	defer restoreStdLog()

	log.Info("Program started", zap.Strings("args", os.Args), zap.String("config", configSvc.Path()), zap.Bool("existing", hasConfig))

	bus := eventbus.New(log)
	defer bus.Close()
	configSvc = config.NewConfigServiceWithBus(configSvc.Path(), bus)

	background := domain.BackgroundLight
	if cfg.Background.DarkDefault {
		background = domain.BackgroundDark
	}
	surface, err := render.NewSurface(render.Options{
		Light:       cfg.Background.Light,
		Dark:        cfg.Background.Dark,
		Background:  background,
		ScrollUnitX: cfg.Viewport.ScrollUnitX,
		ScrollUnitY: cfg.Viewport.ScrollUnitY,
	})
	if err != nil {
		return err
	}

	nav := navigation.NewService(navigation.NewDirLister(cfg.Extensions, navigation.Order(cfg.Sort)), log)
	viewer := viewport.NewState(imageio.NewLoader(log), surface, nav, viewport.Options{
		ZoomStep:    cfg.Viewport.ZoomStep,
		ScrollUnitX: cfg.Viewport.ScrollUnitX,
		ScrollUnitY: cfg.Viewport.ScrollUnitY,
	})

	initial := cmd.Args().First()
	if initial != "" {
		if abs, err := filepath.Abs(initial); err == nil {
			initial = abs
		}
	}

	model := ui.NewModel(bus, log, viewer, surface, initial)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	model.SetProgram(p)

	subscribeLogging(bus, log)
	persister := config.PersistBackground(bus, configSvc, fileCfg, log)
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	})
	bus.Publish(eventbus.AppReadyEvent{HasExistingConfig: hasConfig, InitialPath: initial})

	if os.Getenv("PIXVIEW_E2E_TEST") != "" {
		fmt.Println("__READY__")
	}

	_, runErr := p.Run()

	// The UI is done; write the last background choice before the bus
	// drops whatever is still queued
	if err := persister.Stop(surface.Background(), model.BackgroundSeq()); err != nil {
		log.Error("Unable to save background on exit", zap.Error(err))
	}

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		log.Error("Program ended with error", zap.Error(runErr))
		return fmt.Errorf("error running program: %w", runErr)
	}
	log.Info("Program ended")
	return nil
}

// applyFlags returns a copy of cfg with command line overrides applied
func applyFlags(cfg config.Config, cmd *cli.Command) (*config.Config, error) {
	if cmd.IsSet("dark") {
		cfg.Background.DarkDefault = cmd.Bool("dark")
	}
	if exts := cmd.StringSlice("ext"); len(exts) > 0 {
		cfg.Extensions = config.NormalizeExtensions(exts)
	}
	if cmd.IsSet("sort") {
		cfg.Sort = cmd.String("sort")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command line: %w", err)
	}
	return &cfg, nil
}

// subscribeLogging records viewer activity in the log file
func subscribeLogging(bus eventbus.EventBus, log *zap.Logger) {
	bus.Subscribe(eventbus.EventAppReady, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.AppReadyEvent); ok {
			log.Debug("Viewer ready", zap.Bool("existing config", event.HasExistingConfig), zap.String("initial", event.InitialPath))
		}
	})
	bus.Subscribe(eventbus.EventImageLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ImageLoadedEvent); ok {
			log.Info("Image loaded", zap.String("path", event.Path), zap.String("format", event.Format),
				zap.Int("width", event.Width), zap.Int("height", event.Height))
		}
	})
	bus.Subscribe(eventbus.EventImageLoadFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ImageLoadFailedEvent); ok {
			log.Warn("Image load failed", zap.String("path", event.Path), zap.Error(event.Err))
		}
	})
	bus.Subscribe(eventbus.EventNavigated, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.NavigatedEvent); ok {
			log.Debug("Navigated", zap.String("from", event.From), zap.String("to", event.To), zap.String("direction", string(event.Direction)))
		}
	})
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigSavedEvent); ok {
			log.Debug("Config written", zap.String("path", event.Path))
		}
	})
}

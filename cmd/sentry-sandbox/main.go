// Command sentry-sandbox runs a scenario in the terminal and shows turrets acquiring and tracking targets
//
// Keys: q/Esc quit, space pause, s step while paused, t toggle turrets, arrows scroll
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/sentry/audio"
	"github.com/lixenwraith/sentry/config"
	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/engine"
	"github.com/lixenwraith/sentry/logging"
	"github.com/lixenwraith/sentry/manifest"
	"github.com/lixenwraith/sentry/registry"
	"github.com/lixenwraith/sentry/render"
	"github.com/lixenwraith/sentry/scenario"
	"github.com/lixenwraith/sentry/script"
	"github.com/lixenwraith/sentry/service"
	"github.com/lixenwraith/sentry/status"
	"github.com/lixenwraith/sentry/system"
	"go.uber.org/zap"
)

const defaultConfigPath = "sentry.toml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "TOML configuration file")
	scenarioPath := flag.String("scenario", "", "Scenario file, overrides content.scenario")
	filterPath := flag.String("filter", "", "JS target filter, overrides content.filter_script")
	mute := flag.Bool("mute", false, "Disable audio")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *scenarioPath != "" {
		cfg.Content.Scenario = *scenarioPath
	}
	if *filterPath != "" {
		cfg.Content.FilterScript = *filterPath
	}
	if *mute {
		cfg.Audio.Enabled = false
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig falls back to defaults only when the default path is absent
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil && path == defaultConfigPath && errors.Is(err, fs.ErrNotExist) {
		return config.Defaults(), nil
	}
	return cfg, err
}

type sandbox struct {
	logger   *zap.Logger
	metrics  *status.Registry
	world    *engine.World
	turrets  *system.TurretSystem
	eventLog *system.EventLog
	renderer *render.Renderer
	name     string
	paused   bool

	tpsWindow time.Time
	tpsTicks  int64
}

func run(cfg *config.Config) error {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()

	catalog, err := registry.LoadCatalog(cfg.Content.Weapons)
	if err != nil {
		return err
	}
	scn, err := scenario.Load(cfg.Content.Scenario)
	if err != nil {
		return err
	}
	world, placement, err := scn.Build(catalog)
	if err != nil {
		return fmt.Errorf("scenario %s: %w", cfg.Content.Scenario, err)
	}
	logger.Info("scenario loaded",
		zap.String("name", scn.Name),
		zap.Int("width", world.Width()),
		zap.Int("height", world.Height()),
		zap.Int("turrets", len(placement.Turrets)),
		zap.Int("weapons", catalog.WeaponCount()))

	turretCfg := system.TurretConfig{
		Seed:              cfg.Simulation.Seed,
		BiasChance:        cfg.Targeting.BiasStructureChance,
		RecentAttackTicks: cfg.Targeting.RecentAttackTicks,
		MaxSearchDistance: cfg.Targeting.MaxSearchDistance,
	}
	if cfg.Content.FilterScript != "" {
		filter, err := script.Load(cfg.Content.FilterScript,
			script.WithLogger(logger.Named("script")),
			script.WithFactionNames(world.Factions.Name))
		if err != nil {
			return err
		}
		turretCfg.Filter = filter.Func()
	}

	manifest.RegisterSystems()
	deps := &manifest.Deps{
		World:   world,
		Weapons: catalog,
		Logger:  logger,
		Turret:  turretCfg,
	}
	systems, err := manifest.BuildSystems(deps)
	if err != nil {
		return err
	}

	metrics := status.NewRegistry()
	sb := &sandbox{
		logger:    logger,
		metrics:   metrics,
		world:     world,
		eventLog:  system.NewEventLog(logger.Named("events"), metrics),
		name:      scn.Name,
		tpsWindow: time.Now(),
	}
	for _, s := range systems {
		if ts, ok := s.(*system.TurretSystem); ok {
			sb.turrets = ts
			metrics.Flag(status.MetricTurretsEnabled).Store(ts.Enabled())
		}
	}
	deps.Router.Register(sb.eventLog)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	core.SetCrashCleanup(screen.Fini)
	defer screen.Fini()

	hub := service.NewHub()
	audioSvc, err := manifest.RegisterServices(hub, cfg, logger)
	if err != nil {
		return err
	}
	if err := hub.Register(newClockService(screen), cfg.Simulation.TickRate); err != nil {
		return err
	}
	if err := hub.InitAll(); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	defer func() {
		if err := hub.StopAll(); err != nil {
			logger.Warn("service shutdown", zap.Error(err))
		}
	}()
	if player := audioSvc.Player(); player != nil {
		deps.Router.Register(audio.NewCueHandler(player))
	}

	sb.renderer = render.NewRenderer(screen, world)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	sb.loop(screen)
	return nil
}

func (sb *sandbox) loop(screen tcell.Screen) {
	sb.draw()
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventInterrupt:
			if !sb.paused {
				sb.world.Update()
			}
			sb.measure()
			sb.draw()
		case *tcell.EventResize:
			screen.Sync()
			sb.draw()
		case *tcell.EventKey:
			if !sb.handleKey(ev) {
				return
			}
			sb.draw()
		}
	}
}

// handleKey returns false when the sandbox should exit
func (sb *sandbox) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		sb.renderer.Scroll(0, -1)
	case tcell.KeyDown:
		sb.renderer.Scroll(0, 1)
	case tcell.KeyLeft:
		sb.renderer.Scroll(-1, 0)
	case tcell.KeyRight:
		sb.renderer.Scroll(1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case ' ':
			sb.paused = !sb.paused
			sb.logger.Debug("pause toggled", zap.Bool("paused", sb.paused))
		case 's':
			if sb.paused {
				sb.world.Update()
			}
		case 't':
			if sb.turrets != nil {
				enabled := !sb.turrets.Enabled()
				sb.turrets.SetEnabled(enabled)
				sb.metrics.Flag(status.MetricTurretsEnabled).Store(enabled)
				sb.logger.Info("turrets toggled", zap.Bool("enabled", enabled))
			}
		}
	}
	return true
}

// measure updates the ticks per second gauge once a second
func (sb *sandbox) measure() {
	elapsed := time.Since(sb.tpsWindow)
	if elapsed < time.Second {
		return
	}
	tick := sb.world.Tick()
	sb.metrics.Gauge(status.MetricTicksPerSecond).Smooth(float64(tick-sb.tpsTicks)/elapsed.Seconds(), 0.5)
	sb.tpsTicks = tick
	sb.tpsWindow = time.Now()
}

func (sb *sandbox) draw() {
	msg := sb.eventLog.Last()
	if !sb.metrics.Flag(status.MetricTurretsEnabled).Load() {
		msg = "turrets disabled"
	}
	sb.renderer.RenderFrame(render.Status{
		Scenario: sb.name,
		Paused:   sb.paused,
		Message:  msg,
		Metrics:  sb.metrics,
	})
}

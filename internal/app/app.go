package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/switchboard/internal/binder"
	"github.com/five82/switchboard/internal/config"
	"github.com/five82/switchboard/internal/engine"
	"github.com/five82/switchboard/internal/logging"
	"github.com/five82/switchboard/internal/prefs"
	"github.com/five82/switchboard/internal/remote"
	"github.com/five82/switchboard/internal/section"
	"github.com/five82/switchboard/internal/ui"
)

// Options configure a switchboard session. Non-zero fields override the
// config file.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses ~/.config/switchboard/prefs.toml
	RegistryPath string
	PollInterval time.Duration // zero uses config, then /meta
	LogLevel     string
	Headless     bool // run without the TUI even on a terminal
}

// drainTimeout bounds how long shutdown waits for in-flight requests.
const drainTimeout = ui.DrainTimeout

// Session is the validated setup shared by Run and the CLI subcommands.
type Session struct {
	Config   config.Config
	Registry *section.Registry
	Client   *remote.Client
}

// Prepare loads the config and section registry and builds the remote
// client. Every error it returns is fatal.
func Prepare(opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.PollInterval > 0 {
		cfg.PollInterval = opts.PollInterval
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if path := strings.TrimSpace(opts.RegistryPath); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return nil, fmt.Errorf("registry path: %w", err)
		}
		cfg.RegistryPath = expanded
	}

	reg := section.Default()
	if cfg.RegistryPath != "" {
		reg, err = section.Load(cfg.RegistryPath)
		if err != nil {
			return nil, fmt.Errorf("load registry: %w", err)
		}
	}

	client, err := remote.NewClient(cfg.APIBase, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("init remote client: %w", err)
	}
	return &Session{Config: cfg, Registry: reg, Client: client}, nil
}

// Interactive reports whether the TUI should run: both stdin and stdout must
// be terminals and headless mode must not be forced.
func Interactive(opts Options) bool {
	if opts.Headless {
		return false
	}
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Run starts a session and blocks until ctx is cancelled or the operator
// quits the TUI.
func Run(ctx context.Context, opts Options) error {
	sess, err := Prepare(opts)
	if err != nil {
		return err
	}

	interactive := Interactive(opts)
	logFile := ""
	if interactive {
		// The terminal belongs to the TUI.
		logFile = sess.Config.LogFile
	}
	if err := logging.Initialize(logging.Options{Level: sess.Config.LogLevel, File: logFile}); err != nil {
		return err
	}
	defer logging.Sync()

	logging.Info("switchboard starting",
		zap.String("api", sess.Client.BaseURL()),
		zap.Int("sections", sess.Registry.Len()),
		zap.Bool("interactive", interactive),
	)

	if interactive {
		if !logging.Enabled() {
			logFile = ""
		}
		return runTUI(ctx, sess, opts, logFile)
	}
	return runHeadless(ctx, sess)
}

// poll boots the engine and polls until ctx is done. A configured interval
// wins over the one /meta reports.
func poll(ctx context.Context, eng *engine.Engine, override time.Duration) error {
	interval := eng.Boot(ctx)
	if override > 0 {
		interval = override
	}
	return eng.Poll(ctx, interval)
}

func runTUI(ctx context.Context, sess *Session, opts Options, logFile string) error {
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logging.Warn("using default preferences", zap.Error(err))
	}

	controls := ui.NewControls(sess.Registry)
	dispatcher := ui.NewDispatcher()
	eng, err := engine.New(engine.Options{
		// Writes must survive the operator quitting so the final flush lands.
		Context:    context.WithoutCancel(ctx),
		Registry:   sess.Registry,
		API:        sess.Client,
		Controls:   controls,
		Dispatcher: dispatcher,
		Debounce:   sess.Config.Debounce,
	})
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		// Quitting the TUI ends the session.
		defer cancel()
		return ui.Run(ui.Options{
			Context:    gctx,
			Engine:     eng,
			Controls:   controls,
			Dispatcher: dispatcher,
			Prefs:      userPrefs,
			PrefsPath:  prefsPath,
			LogFile:    logFile,
		})
	})
	g.Go(func() error {
		return poll(gctx, eng, sess.Config.PollInterval)
	})

	err = g.Wait()
	if !dispatcher.Drain(drainTimeout) {
		logging.Warn("shutdown: requests still in flight", zap.Duration("waited", drainTimeout))
	}
	return err
}

func runHeadless(ctx context.Context, sess *Session) error {
	loop := engine.NewLoop()
	watch := newConnectivityWatch(logging.Named("connectivity"))

	var eng *engine.Engine
	eng, err := engine.New(engine.Options{
		Context:    context.WithoutCancel(ctx),
		Registry:   sess.Registry,
		API:        sess.Client,
		Controls:   binder.NewMemory(sess.Registry),
		Dispatcher: loop,
		Debounce:   sess.Config.Debounce,
		OnChange: func() {
			watch.observe(eng.Connectivity())
		},
	})
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(gctx)
	})
	g.Go(func() error {
		return poll(gctx, eng, sess.Config.PollInterval)
	})

	err = g.Wait()
	// The loop has stopped; nothing else touches the engine now.
	eng.Flush()
	if !loop.Drain(drainTimeout) {
		logging.Warn("shutdown: requests still in flight", zap.Duration("waited", drainTimeout))
	}
	logging.Info("switchboard stopped")
	return err
}

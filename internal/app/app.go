// Package app wires the console components into a runnable terminal.
//
// An Application owns one terminal session, the keyboard pipeline feeding
// it, and the link the session talks to. The link is a serial port when one
// is configured, an io.ReadWriter supplied by the caller, or a loopback that
// echoes typed bytes back into the session.
//
// Two front ends exist. The default draws the session with tcell and turns
// host key events into keyboard reports. Stdio mode leaves drawing to the
// host terminal: bytes from the link are copied to stdout and raw bytes read
// from stdin become console input.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vtconsole/internal/bell"
	"github.com/dshills/vtconsole/internal/config"
	"github.com/dshills/vtconsole/internal/console"
	"github.com/dshills/vtconsole/internal/host"
	"github.com/dshills/vtconsole/internal/keyboard"
	"github.com/dshills/vtconsole/internal/logging"
	"github.com/dshills/vtconsole/internal/serial"
	"github.com/dshills/vtconsole/internal/terminal"
)

// QuitByte ends a stdio session when read from stdin (Ctrl+]).
const QuitByte = 0x1d

// shutdownTimeout bounds how long Shutdown waits for the link reader.
const shutdownTimeout = 2 * time.Second

// Options configures application startup.
type Options struct {
	// ConfigPath is the TOML or YAML config file. Empty uses defaults.
	ConfigPath string

	// LogLevel overrides logging.level when set.
	LogLevel string

	// Port overrides serial.port when set.
	Port string

	// Stdio selects the stdin/stdout front end instead of tcell.
	Stdio bool

	// Mute disables the audible bell.
	Mute bool

	// Watch reloads ConfigPath when it changes.
	Watch bool

	// Link replaces the serial port. The application does not close it.
	Link io.ReadWriter

	// Screen replaces the tcell screen (tests use a simulation screen).
	Screen tcell.Screen

	// Stdin and Stdout are the stdio front end streams.
	Stdin  io.Reader
	Stdout io.Writer

	// LogOutput receives log lines. When nil, logging.file is used, else
	// stderr in stdio mode, else logs are discarded.
	LogOutput io.Writer
}

// Application is a running console.
type Application struct {
	opts Options

	mu  sync.RWMutex
	cfg *config.Config

	log     *logging.Logger
	logFile *os.File

	keys    *keyboard.Pipeline
	runner  *keyboard.Runner
	bell    *bell.Bell
	console *console.Console
	screen  *host.Screen
	stdin   *console.ReaderSource
	stdout  io.Writer

	link       io.ReadWriter
	linkCloser io.Closer
	watcher    *config.Watcher

	ctx      context.Context
	cancel   context.CancelFunc
	quit     chan struct{}
	quitOnce sync.Once

	running  bool
	shutdown bool
	wg       sync.WaitGroup
}

// New creates the application and all of its components. Nothing is drawn
// and no goroutine besides the stdin reader is started until Run.
func New(opts Options) (*Application, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &Application{
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
		quit:   make(chan struct{}),
	}
	if err := app.bootstrap(); err != nil {
		app.cancel()
		app.release()
		return nil, err
	}
	return app, nil
}

func (app *Application) bootstrap() error {
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.overrides(cfg)
	app.cfg = cfg

	if err := app.initLogging(cfg); err != nil {
		return &InitError{Component: "logging", Err: err}
	}

	layout, err := keyboard.LayoutByName(cfg.Keyboard.Layout)
	if err != nil {
		return &InitError{Component: "keyboard", Err: err}
	}
	app.keys = keyboard.NewPipeline(
		keyboard.WithLogger(app.log),
		keyboard.WithLayout(layout),
		keyboard.WithRepeatTiming(cfg.Keyboard.RepeatDelay.Std(), cfg.Keyboard.RepeatInterval.Std()),
	)
	app.runner = keyboard.NewRunner(app.keys, cfg.Keyboard.TickInterval.Std())

	ring := func() {}
	if cfg.Bell.Enabled && !app.opts.Mute {
		app.bell = bell.New(bellConfig(cfg), app.log)
		if err := app.bell.Init(); err != nil {
			app.log.Warn("audio unavailable, bell is silent: %v", err)
		}
		ring = app.bell.Ring
	}

	var consoleOpts []console.Option
	consoleOpts = append(consoleOpts, console.WithLogger(app.log))
	if app.opts.Stdio {
		app.stdout = app.opts.Stdout
		if app.stdout == nil {
			app.stdout = os.Stdout
		}
		in := app.opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		app.stdin = console.NewReaderSource(app.ctx, in, app.log)
		consoleOpts = append(consoleOpts, console.WithSource(console.SourceFunc(app.readStdin)))
	}

	newSession := func(so ...terminal.Option) (*terminal.Session, error) {
		so = append(so,
			terminal.WithLogger(app.log),
			terminal.WithBell(ring),
			terminal.WithAnswerback(cfg.Terminal.Answerback),
			terminal.WithCharsetSubstitution(cfg.Terminal.SubstituteCharsets),
			terminal.WithStripBit7(cfg.Terminal.StripBit7),
			terminal.WithTabInterval(cfg.Terminal.TabInterval),
		)
		return terminal.NewSession(cfg.Display.Width, cfg.Display.Height, so...)
	}
	app.console, err = console.New(app.keys, newSession, consoleOpts...)
	if err != nil {
		return &InitError{Component: "terminal", Err: err}
	}

	if err := app.initLink(cfg); err != nil {
		return &InitError{Component: "serial", Err: err}
	}

	if !app.opts.Stdio {
		app.screen, err = host.NewScreen(app.console.Session(),
			host.WithLogger(app.log),
			host.WithScreen(app.opts.Screen),
		)
		if err != nil {
			return &InitError{Component: "screen", Err: err}
		}
	}

	if app.opts.Watch && app.opts.ConfigPath != "" {
		app.watcher, err = config.NewWatcher(app.opts.ConfigPath, app.reload,
			config.WithWatcherLogger(app.log))
		if err != nil {
			app.log.Warn("config watch disabled: %v", err)
		}
	}

	w, h := app.console.Session().Size()
	app.log.Info("console %dx%d ready, session %s", w, h, app.console.Session().ID())
	return nil
}

// overrides applies command line settings on top of the loaded config.
func (app *Application) overrides(cfg *config.Config) {
	if app.opts.LogLevel != "" {
		cfg.Logging.Level = app.opts.LogLevel
	}
	if app.opts.Port != "" {
		cfg.Serial.Port = app.opts.Port
	}
}

func (app *Application) initLogging(cfg *config.Config) error {
	out := app.opts.LogOutput
	if out == nil {
		switch {
		case cfg.Logging.File != "":
			f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return err
			}
			app.logFile = f
			out = f
		case app.opts.Stdio:
			out = os.Stderr
		default:
			out = io.Discard
		}
	}
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(cfg.Logging.Level)
	lc.Output = out
	app.log = logging.New(lc)
	return nil
}

func (app *Application) initLink(cfg *config.Config) error {
	if app.opts.Link != nil {
		app.link = app.opts.Link
		return nil
	}
	if cfg.Serial.Port == "" {
		app.log.Info("no serial port configured, using loopback")
		return nil
	}
	port, err := serial.Open(serial.Options{
		Port:     cfg.Serial.Port,
		BaudRate: cfg.Serial.BaudRate,
		DataBits: cfg.Serial.DataBits,
		StopBits: cfg.Serial.StopBits,
		Parity:   cfg.Serial.Parity,
	})
	if err != nil {
		return err
	}
	app.link = port
	app.linkCloser = port
	app.log.Info("opened %s at %d baud", cfg.Serial.Port, cfg.Serial.BaudRate)
	return nil
}

func bellConfig(cfg *config.Config) bell.Config {
	return bell.Config{
		Frequency:  cfg.Bell.Frequency,
		Duration:   cfg.Bell.Duration.Std(),
		Volume:     cfg.Bell.Volume,
		SampleRate: cfg.Bell.SampleRate,
	}
}

// Config returns the configuration currently in effect.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cfg
}

// Console returns the console.
func (app *Application) Console() *console.Console {
	return app.console
}

// Keyboard returns the keyboard pipeline.
func (app *Application) Keyboard() *keyboard.Pipeline {
	return app.keys
}

// IsRunning reports whether Run is in progress.
func (app *Application) IsRunning() bool {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.running
}

// Run drives the console until the quit key, Shutdown, or the end of stdin.
// It returns ErrQuit when the user quit.
func (app *Application) Run() error {
	app.mu.Lock()
	if app.shutdown {
		app.mu.Unlock()
		return ErrShutdown
	}
	if app.running {
		app.mu.Unlock()
		return ErrAlreadyRunning
	}
	app.running = true
	app.mu.Unlock()

	defer func() {
		app.mu.Lock()
		app.running = false
		app.mu.Unlock()
	}()

	ctx, cancel := context.WithCancel(app.ctx)
	defer cancel()

	if err := app.runner.Start(ctx); err != nil {
		return err
	}
	defer app.runner.Stop()

	if app.link != nil {
		app.wg.Add(1)
		go app.readLink(ctx)
	}
	var input sync.WaitGroup
	input.Add(1)
	go func() {
		defer input.Done()
		app.writeLink(ctx)
	}()
	defer input.Wait()
	defer cancel()

	if app.screen != nil {
		return app.runScreen(ctx)
	}
	return app.runStdio(ctx)
}

func (app *Application) runScreen(ctx context.Context) error {
	if err := app.screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer app.screen.Fini()

	err := app.screen.Run(ctx, app.runner)
	switch {
	case err == nil:
		return ErrQuit
	case errors.Is(err, context.Canceled):
		return nil
	default:
		return err
	}
}

func (app *Application) runStdio(ctx context.Context) error {
	if err := app.runner.Mount(ctx, host.Device, keyboard.ProtocolKeyboard); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return nil
	case <-app.quit:
		return ErrQuit
	case <-app.stdin.Done():
		if err := app.stdin.Err(); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
}

// readStdin is the console source for stdio mode. The quit byte is consumed.
func (app *Application) readStdin() (byte, bool) {
	b, ok := app.stdin.TryRead()
	if ok && b == QuitByte {
		app.quitOnce.Do(func() { close(app.quit) })
		return 0, false
	}
	return b, ok
}

// readLink feeds link output to the session. It runs until the link fails or
// is closed, which may outlive Run.
func (app *Application) readLink(ctx context.Context) {
	defer app.wg.Done()

	buf := make([]byte, 512)
	for {
		n, err := app.link.Read(buf)
		if n > 0 {
			app.output(buf[:n])
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				app.log.Warn("link read: %v", err)
			}
			return
		}
	}
}

// writeLink sends console input to the link, or back into the session when
// there is no link.
func (app *Application) writeLink(ctx context.Context) {
	var one [1]byte
	for {
		b, err := app.console.Get(ctx)
		if err != nil {
			return
		}
		if app.link == nil {
			app.output([]byte{b})
			continue
		}
		one[0] = b
		if _, err := app.link.Write(one[:]); err != nil {
			app.log.Warn("link write: %v", err)
			return
		}
	}
}

func (app *Application) output(p []byte) {
	_, _ = app.console.Write(p)
	if app.stdout != nil {
		if _, err := app.stdout.Write(p); err != nil {
			app.log.Debug("stdout: %v", err)
		}
	}
}

// reload applies a changed config file. Display size, layout and the link
// are fixed for the life of the session; the rest takes effect immediately.
func (app *Application) reload(cfg *config.Config, err error) {
	if err != nil {
		app.log.Warn("config reload failed, keeping previous settings: %v", err)
		return
	}
	app.overrides(cfg)

	app.mu.Lock()
	app.cfg = cfg
	app.mu.Unlock()

	app.log.SetLevel(logging.ParseLevel(cfg.Logging.Level))
	app.keys.SetRepeatTiming(cfg.Keyboard.RepeatDelay.Std(), cfg.Keyboard.RepeatInterval.Std())
	if app.bell != nil {
		app.bell.SetConfig(bellConfig(cfg))
	}
	app.log.Info("configuration reloaded")
}

// Shutdown stops Run and releases every component. It is safe to call more
// than once.
func (app *Application) Shutdown() {
	app.mu.Lock()
	if app.shutdown {
		app.mu.Unlock()
		return
	}
	app.shutdown = true
	app.mu.Unlock()

	app.cancel()
	app.release()
}

func (app *Application) release() {
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.log.Debug("closing watcher: %v", err)
		}
	}
	if app.console != nil {
		_ = app.console.Close()
	}
	if app.linkCloser != nil {
		if err := app.linkCloser.Close(); err != nil {
			app.log.Warn("closing link: %v", err)
		}
	}
	if app.bell != nil {
		app.bell.Close()
	}

	done := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		app.log.Warn("link reader still blocked after %v", shutdownTimeout)
	}

	if app.logFile != nil {
		_ = app.logFile.Close()
	}
}

// Command kestrel is a modal, Vim-compatible terminal text editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/kestrel/internal/app"
	"github.com/dshills/kestrel/internal/config"
)

// Version information, set with -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
)

type flags struct {
	configPath string
	root       string
	debug      bool
	logLevel   string
	readOnly   bool
	version    bool
	files      []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}
	if f.version {
		fmt.Fprintf(stderr, "kestrel %s (%s)\n", version, commit)
		return 0
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintf(stderr, "kestrel: %v\n", app.ErrNotTerminal)
		return 1
	}

	var opts []config.Option
	if f.configPath != "" {
		opts = append(opts, config.WithPath(f.configPath))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		fmt.Fprintf(stderr, "kestrel: %v\n", app.NewComponentError("config", "load", err))
		return 1
	}

	logger, closeLog := setupLogging(cfg, f, stderr)
	defer closeLog()
	if cfg.Source != "" {
		logger.Info("config loaded", "path", cfg.Source)
	}
	for _, k := range cfg.Unknown {
		logger.Warn("unknown config key", "key", k)
	}

	a, err := app.New(app.Options{
		Config:   cfg,
		Files:    f.files,
		ReadOnly: f.readOnly,
		Root:     f.root,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(stderr, "kestrel: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	err = a.Run(ctx)
	var perr *app.RecoveredPanicError
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return 0
	case errors.As(err, &perr):
		fmt.Fprintf(stderr, "kestrel: %v\n%s", perr, perr.Stack)
		return 3
	default:
		fmt.Fprintf(stderr, "kestrel: %v\n", err)
		return 1
	}
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("kestrel", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.configPath, "config", "", "configuration file")
	fs.StringVar(&f.configPath, "c", "", "configuration file (shorthand)")
	fs.StringVar(&f.root, "workspace", "", "directory the file finder lists (default: current directory)")
	fs.StringVar(&f.root, "w", "", "finder directory (shorthand)")
	fs.BoolVar(&f.debug, "debug", false, "log at debug level")
	fs.BoolVar(&f.debug, "d", false, "log at debug level (shorthand)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error or off (default: from config)")
	fs.BoolVar(&f.readOnly, "readonly", false, "open files read-only")
	fs.BoolVar(&f.readOnly, "R", false, "open files read-only (shorthand)")
	fs.BoolVar(&f.version, "version", false, "print the version and exit")
	fs.BoolVar(&f.version, "v", false, "print the version and exit (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: kestrel [options] [file...]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if f.logLevel != "" && !slices.Contains(config.LogLevels, strings.ToLower(f.logLevel)) {
		fmt.Fprintf(stderr, "kestrel: invalid log level %q\n", f.logLevel)
		return f, fmt.Errorf("invalid log level %q", f.logLevel)
	}
	f.files = fs.Args()
	return f, nil
}

// setupLogging opens the log file. Logging problems never stop the editor:
// they are reported on stderr before the screen is taken over.
func setupLogging(cfg *config.Config, f flags, stderr io.Writer) (*app.Logger, func()) {
	levelName := cfg.Log.Level
	if f.logLevel != "" {
		levelName = f.logLevel
	}
	if f.debug {
		levelName = "debug"
	}
	level := app.ParseLogLevel(levelName)
	if level == app.LogLevelOff {
		return app.NullLogger, func() {}
	}

	file, err := app.OpenLogFile(cfg.LogFile())
	if err != nil {
		fmt.Fprintf(stderr, "kestrel: logging disabled: %v\n", err)
		return app.NullLogger, func() {}
	}
	logger := app.NewLogger(app.LoggerConfig{Level: level, Output: file, Prefix: "kestrel"})
	return logger, func() { _ = file.Close() }
}

// Package app runs the editor against a display. It owns the event loop:
// key and resize events from the backend, finder walk results and file
// change notifications all arrive on channels and are applied one at a
// time, so only the loop goroutine touches the editor.
package app

import (
	"context"
	"errors"
	"runtime/debug"

	"github.com/dshills/kestrel/internal/config"
	"github.com/dshills/kestrel/internal/editor"
	"github.com/dshills/kestrel/internal/input/fuzzy"
	"github.com/dshills/kestrel/internal/project/vfs"
	"github.com/dshills/kestrel/internal/project/walker"
	"github.com/dshills/kestrel/internal/project/watcher"
	"github.com/dshills/kestrel/internal/register"
	"github.com/dshills/kestrel/internal/renderer"
	"github.com/dshills/kestrel/internal/renderer/backend"
)

// Options configures an App.
type Options struct {
	// Config supplies the initial settings. Nil uses config.Default.
	Config *config.Config

	// Files are opened at startup; the last one is shown.
	Files []string

	// ReadOnly marks the files opened at startup read-only.
	ReadOnly bool

	// Backend is the display. Nil opens the terminal.
	Backend backend.Backend

	// FS is the file system. Nil uses the OS.
	FS vfs.FS

	// Root is the directory the finder lists. Empty is ".".
	Root string

	// Clipboard backs the + and * registers. Nil uses the system
	// clipboard when one is available.
	Clipboard register.Clipboard

	Logger *Logger
}

// App is a running editor session.
type App struct {
	opts   Options
	cfg    *config.Config
	log    *Logger
	fs     vfs.FS
	root   string
	editor *editor.Editor

	backend  backend.Backend
	renderer *renderer.Renderer
	done     chan struct{}

	watcher *watcher.Watcher

	// walk is the finder's directory walk in progress. batches is nil
	// when no walk runs.
	cancelWalk context.CancelFunc
	batches    <-chan walker.Batch
}

// New creates the editor and opens the startup files. The display is not
// touched until Run.
func New(opts Options) (*App, error) {
	a := &App{
		opts: opts,
		cfg:  opts.Config,
		log:  opts.Logger,
		fs:   opts.FS,
		root: opts.Root,
	}
	if a.cfg == nil {
		a.cfg = config.Default()
	}
	if a.log == nil {
		a.log = NullLogger
	}
	if a.fs == nil {
		a.fs = vfs.NewOSFS()
	}
	if a.root == "" {
		a.root = "."
	}

	scorer, err := fuzzy.NewScorer(a.cfg.Finder.Algorithm)
	if err != nil {
		return nil, NewComponentError("config", "finder.algorithm", err)
	}

	if a.cfg.Watcher.Enabled {
		w, err := watcher.New(watcher.WithDebounce(a.cfg.Watcher.Debounce))
		if err != nil {
			// Editing works without change detection.
			a.log.Warn("file watcher unavailable", "error", err)
		} else {
			a.watcher = w
		}
	}

	edOpts := []editor.Option{
		editor.WithFS(a.fs),
		editor.WithLogger(a.log.WithComponent("editor")),
		editor.WithOptions(editorOptions(a.cfg.Editor)),
		editor.WithScorer(scorer),
		editor.WithMaxResults(a.cfg.Finder.MaxResults),
		editor.WithRoot(a.root),
		editor.WithHooks(editor.Hooks{
			FinderOpened: a.startWalk,
			FinderClosed: a.stopWalk,
			FileOpened:   a.watch,
			FileClosed:   a.unwatch,
		}),
	}
	if cb := a.clipboard(); cb != nil {
		edOpts = append(edOpts, editor.WithClipboard(cb, a.cfg.Editor.Clipboard != ""))
	}
	if opts.Backend != nil {
		w, h := opts.Backend.Size()
		edOpts = append(edOpts, editor.WithSize(w, h))
	}
	a.editor = editor.New(edOpts...)

	for _, f := range opts.Files {
		if err := a.editor.Open(f); err != nil {
			// Shown in the status line; the session still starts.
			a.log.Warn("open failed", "path", f, "error", err)
			continue
		}
		if opts.ReadOnly {
			a.editor.SetReadOnly(true)
		}
	}
	return a, nil
}

func editorOptions(c config.EditorConfig) editor.Options {
	return editor.Options{
		TabStop:    c.TabStop,
		ExpandTab:  c.ExpandTab,
		ShiftWidth: c.ShiftWidth,
		IgnoreCase: c.IgnoreCase,
		SmartCase:  c.SmartCase,
		ScrollOff:  c.ScrollOff,
		Number:     c.Number,
	}
}

func (a *App) clipboard() register.Clipboard {
	if a.opts.Clipboard != nil {
		return a.opts.Clipboard
	}
	if register.SystemClipboardAvailable() {
		return register.SystemClipboard{}
	}
	if a.cfg.Editor.Clipboard != "" {
		a.log.Warn("no system clipboard, clipboard setting ignored", "clipboard", a.cfg.Editor.Clipboard)
	}
	return nil
}

// Editor returns the editing session.
func (a *App) Editor() *editor.Editor {
	return a.editor
}

// Run drives the session until the editor quits or ctx ends. A panic in
// the loop restores the display before it is returned as a
// RecoveredPanicError.
func (a *App) Run(ctx context.Context) (err error) {
	b := a.opts.Backend
	if b == nil {
		t, terr := backend.NewTerminal()
		if terr != nil {
			return NewComponentError("terminal", "create", terr)
		}
		b = t
	}
	if err := b.Init(); err != nil {
		return NewComponentError("terminal", "init", err)
	}
	a.backend = b
	a.renderer = renderer.New(b)
	a.done = make(chan struct{})
	defer a.close()
	defer a.recoverPanic(&err)

	a.editor.Resize(b.Size())
	a.log.Info("session started", "root", a.root, "files", len(a.opts.Files))
	return a.loop(ctx, a.poll())
}

// recoverPanic turns a panic into a RecoveredPanicError. The display is
// restored first so the message is readable.
func (a *App) recoverPanic(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if a.backend != nil {
		a.backend.Fini()
	}
	perr := NewRecoveredPanicError(r, string(debug.Stack()))
	a.log.Error("panic in event loop", "value", r, "stack", perr.Stack)
	*err = perr
}

// close releases the display, the watcher and any walk in progress.
func (a *App) close() {
	a.stopWalk()
	if a.done != nil {
		close(a.done)
		a.done = nil
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("closing watcher", "error", err)
		}
	}
	if a.backend != nil {
		a.backend.Fini()
	}
	a.log.Info("session ended")
}

// poll reads display events on its own goroutine. The channel closes when
// the backend is finalized or the session ends.
func (a *App) poll() <-chan backend.Event {
	events := make(chan backend.Event, 64)
	go func() {
		defer close(events)
		for {
			ev, ok := a.backend.PollEvent()
			if !ok {
				return
			}
			select {
			case events <- ev:
			case <-a.done:
				return
			}
		}
	}()
	return events
}

// loop applies events until the editor quits.
func (a *App) loop(ctx context.Context, input <-chan backend.Event) error {
	var fileEvents <-chan watcher.Event
	var fileErrors <-chan error
	if a.watcher != nil {
		fileEvents, fileErrors = a.watcher.Events(), a.watcher.Errors()
	}

	a.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-input:
			if !ok {
				return nil
			}
			a.handleInput(ev)

		case b, ok := <-a.batches:
			if !ok {
				a.batches = nil
				continue
			}
			a.handleBatch(b)

		case ev := <-fileEvents:
			a.handleFileEvent(ev)

		case err := <-fileErrors:
			a.log.Warn("watcher error", "error", err)
			continue
		}

		if a.editor.Quitting() {
			return nil
		}
		a.draw()
	}
}

func (a *App) draw() {
	if a.renderer != nil {
		a.renderer.Draw(a.editor.Frame())
	}
}

func (a *App) handleInput(ev backend.Event) {
	switch ev.Type {
	case backend.EventKey:
		a.editor.HandleKey(ev.Key)
	case backend.EventResize:
		a.editor.Resize(ev.Width, ev.Height)
	}
}

func (a *App) handleBatch(b walker.Batch) {
	if b.Err != nil {
		a.log.Warn("finder walk failed", "root", a.root, "error", b.Err)
		a.editor.SetError(b.Err)
	}
	a.editor.AddFinderCandidates(b.Paths, b.Done)
	if b.Done {
		a.batches = nil
	}
}

func (a *App) handleFileEvent(ev watcher.Event) {
	a.log.Debug("file event", "event", ev.String())
	a.editor.FileChanged(ev.Path, ev.Op.Gone())
}

// startWalk begins listing the finder root for a newly opened finder.
func (a *App) startWalk() {
	a.stopWalk()
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelWalk = cancel
	a.batches = walker.Start(ctx, a.fs, a.root, walker.Options{Ignore: a.cfg.Finder.Ignore})
	a.log.Debug("finder walk started", "root", a.root)
}

// stopWalk cancels a walk still running.
func (a *App) stopWalk() {
	if a.cancelWalk != nil {
		a.cancelWalk()
		a.cancelWalk = nil
	}
	a.batches = nil
}

func (a *App) watch(abs string) {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Add(abs); err != nil {
		a.log.Debug("not watching file", "path", abs, "error", err)
	}
}

func (a *App) unwatch(abs string) {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Remove(abs); err != nil && !errors.Is(err, watcher.ErrNotTracked) {
		a.log.Debug("unwatch failed", "path", abs, "error", err)
	}
}

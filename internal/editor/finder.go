package editor

import (
	"github.com/dshills/kestrel/internal/input/mode"
	"github.com/dshills/kestrel/internal/input/vim"
)

// FinderRoot returns the directory the finder lists.
func (e *Editor) FinderRoot() string {
	return e.root
}

// FinderActive reports whether the finder is open.
func (e *Editor) FinderActive() bool {
	return e.modes.Mode() == mode.Finder
}

// openFinder starts a finder session. Candidates arrive later through
// AddFinderCandidates while the walk runs.
func (e *Editor) openFinder() error {
	if err := e.modes.Switch(mode.Finder); err != nil {
		return err
	}
	e.finder.Reset()
	if e.hooks.FinderOpened != nil {
		e.finder.SetLoading(true)
		e.hooks.FinderOpened()
	}
	e.log.Info("finder opened", "root", e.root)
	return nil
}

// AddFinderCandidates adds walked paths, relative to the finder root, to
// an open finder. done marks the end of the walk. Batches arriving after
// the finder closed are dropped.
func (e *Editor) AddFinderCandidates(paths []string, done bool) {
	if !e.FinderActive() {
		return
	}
	e.finder.AddCandidates(paths)
	if done {
		e.finder.SetLoading(false)
		e.log.Debug("finder walk complete", "candidates", e.finder.Candidates())
	}
}

// SetFinderCandidates replaces the candidates of an open finder.
func (e *Editor) SetFinderCandidates(paths []string) {
	if !e.FinderActive() {
		return
	}
	e.finder.SetCandidates(paths)
	e.finder.SetLoading(false)
}

func (e *Editor) finderInput(a vim.FinderInput) error {
	switch a.Op {
	case vim.FinderType:
		e.finder.Type(a.Rune)
	case vim.FinderBackspace:
		e.finder.Backspace()
	case vim.FinderClear:
		e.finder.Clear()
	case vim.FinderNext:
		e.finder.Next()
	case vim.FinderPrev:
		e.finder.Prev()
	case vim.FinderClose:
		e.closeFinder()
	case vim.FinderAccept:
		return e.acceptFinder()
	}
	return nil
}

func (e *Editor) closeFinder() {
	e.modes.Reset()
	e.finder.Reset()
	if e.hooks.FinderClosed != nil {
		e.hooks.FinderClosed()
	}
}

// acceptFinder opens the selected path with :e semantics: a dirty buffer
// refuses to be abandoned.
func (e *Editor) acceptFinder() error {
	res, ok := e.finder.Selected()
	e.closeFinder()
	if !ok {
		return nil
	}
	if e.BufferDirty() {
		return ErrUnsavedChanges
	}
	path := e.fs.Join(e.root, res.Item.Text)
	e.log.Info("finder accepted", "path", path)
	return e.EditFile(path)
}

package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/kestrel/internal/input/key"
	"github.com/dshills/kestrel/internal/input/vim"
	"github.com/dshills/kestrel/internal/register"
)

// Limits on macros that play themselves: nesting depth, and keys typed by
// one top-level playback.
const (
	maxMacroDepth = 100
	maxMacroKeys  = 10000
)

var (
	errNoPreviousMacro = errors.New("no previously used register")
	errMacroDepth      = errors.New("macro nested too deeply")
	errMacroTooLong    = errors.New("macro played too many keys")
)

// startRecording is q{register}: typed keys are collected until q.
func (e *Editor) startRecording(reg rune) {
	e.recorded = e.recorded[:0]
	e.modes.SetRecording(reg)
	e.log.Debug("recording", "register", string(reg))
}

// stopRecording stores the recorded keys, minus the q that ended the
// recording, in key notation. An uppercase register appends.
func (e *Editor) stopRecording() error {
	reg := e.modes.Recording()
	e.modes.SetRecording(0)
	keys := e.recorded
	if n := len(keys); n > 0 && keys[n-1].Is('q') {
		keys = keys[:n-1]
	}
	e.recorded = e.recorded[:0]
	return e.regs.Set(reg, register.Content{Text: key.FormatKeys(keys)})
}

// playMacro is @{register}: the register's keys are typed count times.
// Playback stops at the first failed action.
func (e *Editor) playMacro(a vim.PlayMacro) error {
	reg := a.Register
	if reg == '@' {
		if e.lastMacro == 0 {
			return errNoPreviousMacro
		}
		reg = e.lastMacro
	}
	content, err := e.regs.Get(reg)
	if err != nil {
		return err
	}
	if content.IsEmpty() {
		return fmt.Errorf("%w: %c", register.ErrEmpty, reg)
	}
	text := content.Text
	if content.Kind == register.LineWise {
		text = strings.ReplaceAll(text, "\n", "<CR>")
	}
	events, err := key.ParseKeys(text)
	if err != nil {
		return err
	}
	if e.macroDepth >= maxMacroDepth {
		return errMacroDepth
	}

	e.lastMacro = reg
	if e.macroDepth == 0 {
		e.macroKeys = 0
	}
	e.macroDepth++
	defer func() { e.macroDepth-- }()

	failures := e.failures
	for range max(a.Count, 1) {
		for _, ev := range events {
			if e.macroKeys++; e.macroKeys > maxMacroKeys {
				return errMacroTooLong
			}
			e.HandleKey(ev)
			if e.failures != failures {
				return nil
			}
		}
	}
	return nil
}

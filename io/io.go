// Package argvio provides terminal-aware output for programs built on argv:
// an IOManager that knows about TTYs, widths and color support, a leveled
// Logger and a Reporter suitable as a parser's usage reporter.
package argvio

import (
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IOManager centralizes IO and terminal capabilities
type IOManager struct {
	in  io.Reader
	out io.Writer
	err io.Writer

	forceColor     bool
	noColor        bool
	forcedProfile  termenv.Profile
	hasForcedLevel bool
	getenv         func(string) string
}

// New returns a manager bound to process stdio
func New() *IOManager {
	return &IOManager{in: os.Stdin, out: os.Stdout, err: os.Stderr, getenv: os.Getenv}
}

// WithIn sets the input reader used by the manager and returns the manager for chaining.
func (m *IOManager) WithIn(r io.Reader) *IOManager { m.in = r; return m }

// WithOut sets the standard output writer and returns the manager for chaining.
func (m *IOManager) WithOut(w io.Writer) *IOManager { m.out = w; return m }

// WithErr sets the standard error writer and returns the manager for chaining.
func (m *IOManager) WithErr(w io.Writer) *IOManager { m.err = w; return m }

// ForceColor forces color output on, regardless of environment.
func (m *IOManager) ForceColor() *IOManager {
	m.forceColor, m.noColor, m.hasForcedLevel = true, false, false
	return m
}

// NoColor disables color output, regardless of environment.
func (m *IOManager) NoColor() *IOManager {
	m.noColor, m.forceColor, m.hasForcedLevel = true, false, false
	return m
}

// ColorAuto uses environment heuristics to determine color support.
func (m *IOManager) ColorAuto() *IOManager {
	m.noColor = false
	m.forceColor = false
	m.hasForcedLevel = false
	return m
}

// ForceColorLevel forces a specific color level (0=none, 1=16, 2=256, 3=truecolor).
// It overrides an earlier ForceColor or NoColor.
func (m *IOManager) ForceColorLevel(level int) *IOManager {
	m.forcedProfile = profileForLevel(level)
	m.hasForcedLevel = true
	m.forceColor = false
	m.noColor = false
	return m
}

// In returns the configured input reader.
func (m *IOManager) In() io.Reader { return m.in }

// Out returns the configured standard output writer.
func (m *IOManager) Out() io.Writer { return m.out }

// Err returns the configured standard error writer.
func (m *IOManager) Err() io.Writer { return m.err }

// IsTTY reports whether the output writer is a terminal.
func (m *IOManager) IsTTY() bool { return isTerminal(m.out) }

func (m *IOManager) IsInteractive() bool { return isTerminal(m.in) && m.getenv("CI") == "" }

func (m *IOManager) IsPiped() bool      { return !isTerminal(m.in) }
func (m *IOManager) IsRedirected() bool { return !isTerminal(m.out) }

// Width returns the terminal width, then $COLUMNS, then 80.
func (m *IOManager) Width() int {
	if w, _, ok := termSize(m.out); ok && w > 0 {
		return w
	}
	if w := envInt(m.getenv, "COLUMNS"); w > 0 {
		return w
	}
	return 80
}

// Height returns the terminal height, then $LINES, then 24.
func (m *IOManager) Height() int {
	if _, h, ok := termSize(m.out); ok && h > 0 {
		return h
	}
	if h := envInt(m.getenv, "LINES"); h > 0 {
		return h
	}
	return 24
}

// SupportsColor reports whether ANSI styling should be emitted. NO_COLOR
// wins over FORCE_COLOR. The last of NoColor, ForceColor and ForceColorLevel
// wins over both, and SupportsColor always agrees with ColorLevel() > 0.
func (m *IOManager) SupportsColor() bool {
	if m.noColor {
		return false
	}
	if m.forceColor {
		return true
	}
	if m.hasForcedLevel {
		return m.forcedProfile != termenv.Ascii
	}
	if m.getenv("NO_COLOR") != "" {
		return false
	}
	if m.getenv("FORCE_COLOR") != "" {
		return true
	}
	if !m.IsTTY() {
		return false
	}
	t := m.getenv("TERM")
	return t != "" && t != "dumb"
}

// Profile returns the termenv color profile used for rendering.
func (m *IOManager) Profile() termenv.Profile {
	if m.hasForcedLevel && !m.noColor {
		return m.forcedProfile
	}
	if !m.SupportsColor() {
		return termenv.Ascii
	}
	out := termenv.NewOutput(m.out, termenv.WithTTY(true), termenv.WithEnvironment(envFunc(m.getenv)))
	if p := out.ColorProfile(); p != termenv.Ascii {
		return p
	}
	return termenv.ANSI
}

// ColorLevel returns 0 for none, 1 for basic, 2 for 256 colors, and 3 for truecolor.
func (m *IOManager) ColorLevel() int {
	switch m.Profile() {
	case termenv.TrueColor:
		return 3
	case termenv.ANSI256:
		return 2
	case termenv.ANSI:
		return 1
	default:
		return 0
	}
}

// Renderer returns a lipgloss renderer bound to the output writer and the
// current color profile.
func (m *IOManager) Renderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(m.out)
	r.SetColorProfile(m.Profile())
	return r
}

// Bold returns s in bold when color is supported; otherwise s unchanged.
func (m *IOManager) Bold(s string) string {
	return m.render(s, func(st lipgloss.Style) lipgloss.Style { return st.Bold(true) })
}

// Faint returns s in faint intensity when supported; otherwise s unchanged.
func (m *IOManager) Faint(s string) string {
	return m.render(s, func(st lipgloss.Style) lipgloss.Style { return st.Faint(true) })
}

// Underline returns s underlined when supported; otherwise s unchanged.
func (m *IOManager) Underline(s string) string {
	return m.render(s, func(st lipgloss.Style) lipgloss.Style { return st.Underline(true) })
}

// Colorize renders s in the given foreground color.
func (m *IOManager) Colorize(s string, c lipgloss.TerminalColor) string {
	return m.render(s, func(st lipgloss.Style) lipgloss.Style { return st.Foreground(c) })
}

func (m *IOManager) render(s string, apply func(lipgloss.Style) lipgloss.Style) string {
	if !m.SupportsColor() {
		return s
	}
	return apply(m.Renderer().NewStyle()).Render(s)
}

type fdWriter interface {
	Fd() uintptr
}

func isTerminal(v any) bool {
	f, ok := v.(fdWriter)
	return ok && term.IsTerminal(int(f.Fd()))
}

func termSize(v any) (width, height int, ok bool) {
	f, isFile := v.(fdWriter)
	if !isFile || !term.IsTerminal(int(f.Fd())) {
		return 0, 0, false
	}
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, false
	}
	return w, h, true
}

func envInt(getenv func(string) string, key string) int {
	n, err := strconv.Atoi(getenv(key))
	if err != nil {
		return 0
	}
	return n
}

func profileForLevel(level int) termenv.Profile {
	switch {
	case level >= 3:
		return termenv.TrueColor
	case level == 2:
		return termenv.ANSI256
	case level == 1:
		return termenv.ANSI
	default:
		return termenv.Ascii
	}
}

// envFunc adapts a getenv function to termenv.Environ.
type envFunc func(string) string

func (f envFunc) Getenv(key string) string { return f(key) }

func (f envFunc) Environ() []string { return nil }

// Package output renders command results in one of four modes: auto,
// text, markdown, or json. Auto resolves to text on a terminal and
// markdown otherwise, so piped output stays clean.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// OutputMode selects how results are rendered.
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode parses a mode string. Unknown values fall back to auto.
func Mode(s string) OutputMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	default:
		return ModeAuto
	}
}

// Renderer writes command output. It is TTY-aware: colors and table
// borders only appear on interactive terminals.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	styles Styles
}

// NewRenderer creates a renderer, detecting TTY state from out.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return NewRendererWithTTY(out, errOut, isTTY, mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
// Tests use this to pin rendering behavior.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	styles := plainStyles()
	if isTTY && termenv.EnvColorProfile() != termenv.Ascii {
		styles = colorStyles()
	}
	return &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY, styles: styles}
}

// EffectiveMode resolves auto to a concrete mode: text on a TTY,
// markdown otherwise.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto && r.mode != "" {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to an interactive terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Writer returns the stdout writer for callers that stream their own
// output (JSON encoders, table writers).
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the stderr writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Styles returns the TTY-appropriate style set.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Println writes one line to stdout.
func (r *Renderer) Println(text string) {
	fmt.Fprintln(r.out, text)
}

// Printf writes formatted text to stdout.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Header writes a section header appropriate to the effective mode.
func (r *Renderer) Header(level int, text string) {
	switch r.EffectiveMode() {
	case ModeJSON:
		return
	case ModeMarkdown:
		r.Println(FormatHeader(level, text))
		r.Println("")
	default:
		if level <= 1 {
			r.Println(r.styles.Header1.Render(text))
		} else {
			r.Println(r.styles.Header2.Render(text))
		}
	}
}

// Warning writes a warning line to stderr so it never corrupts piped
// stdout.
func (r *Renderer) Warning(text string) {
	fmt.Fprintln(r.errOut, r.styles.Warning.Render("warning: "+text))
}

// Success writes a success line to stdout.
func (r *Renderer) Success(text string) {
	r.Println(r.styles.Success.Render(text))
}

// JSON writes v to stdout as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wiresketch/wiresketch/pkg/dataset"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleHighlight marks addresses and names the user should notice.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleDim is used for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue renders paths and values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
	// StyleNumber renders counts.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleWarning renders warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed    = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(10)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Console
// =============================================================================

// console prints the human-facing summary of a command. Logs go to the
// logger's writer; the console writes to the command's standard output.
type console struct {
	w io.Writer
}

func (c console) line(s string) {
	fmt.Fprintln(c.w, s)
}

func (c console) success(format string, args ...any) {
	c.line(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func (c console) warning(format string, args ...any) {
	c.line(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (c console) info(format string, args ...any) {
	c.line(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

func (c console) detail(format string, args ...any) {
	c.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints an output path under the preceding status line.
func (c console) file(path string) {
	c.line("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func (c console) keyValue(key, value string) {
	c.line("  " + styleKey.Render(key) + " " + StyleValue.Render(value))
}

func (c console) nextStep(description, cmd string) {
	c.line(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// statLine holds the counts shown by console.stats. Zero counts are omitted.
type statLine struct {
	boxes      int
	merged     int
	components int
	wires      int
	symbols    int
}

func (s statLine) parts() []string {
	var parts []string
	for _, f := range []struct {
		n         int
		one, many string
	}{
		{s.boxes, "box", "boxes"},
		{s.components, "component", "components"},
		{s.wires, "wire", "wires"},
		{s.symbols, "symbol", "symbols"},
		{s.merged, "merged", "merged"},
	} {
		if f.n > 0 {
			parts = append(parts, StyleDim.Render(plural(f.n, f.one, f.many)))
		}
	}
	return parts
}

// stats prints the counts on one line followed by whether the result came
// from the cache:
//
//	5 components · 4 wires · 1 symbol · cached
func (c console) stats(s statLine, cached bool) {
	status := styleComputed.Render("fresh")
	if cached {
		status = styleCached.Render("cached")
	}
	c.line("  " + strings.Join(append(s.parts(), status), StyleDim.Render(" · ")))
}

// report prints the outcome of a dataset run.
func (c console) report(name string, r dataset.Report) {
	c.success("%s: %s", name, plural(r.Written, "sample written", "samples written"))
	c.keyValue("rejected", StyleNumber.Render(fmt.Sprint(r.Rejected)))
	c.keyValue("attempts", StyleNumber.Render(fmt.Sprint(r.Attempts)))
	c.keyValue("run", r.RunID)
}

// plural formats n with the singular or plural noun.
func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

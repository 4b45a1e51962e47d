package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/nebulis-dev/nebulis/internal/ui"
)

func theme() *ui.Theme {
	if deps == nil || deps.Theme == nil {
		return ui.NewTheme(true)
	}
	return deps.Theme
}

// printHeader writes a title between two rules.
func printHeader(w io.Writer, title string) {
	t := theme()
	rule := t.Muted.Render(strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, t.Title.Render(title), rule)
}

// printStep writes a progress line.
func printStep(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, theme().Path.Render(msg))
}

func printSuccess(w io.Writer, msg string) {
	t := theme()
	_, _ = fmt.Fprintf(w, "%s %s\n", t.Success.Render("✓"), msg)
}

func printWarning(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, theme().Warning.Render("Warning: "+msg))
}

// printError writes the top-level error line.
func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, theme().Error.Render("Error: "+err.Error()))
}

// printPaths writes one indented line per path.
func printPaths(w io.Writer, paths []string) {
	t := theme()
	for _, p := range paths {
		_, _ = fmt.Fprintf(w, "  - %s\n", t.Path.Render(p))
	}
}

// successCard renders a success message inside a bordered card.
func successCard(title string, details ...string) string {
	t := theme()
	var body strings.Builder
	body.WriteString(t.Success.Render("✓") + " " + title)
	if len(details) > 0 {
		body.WriteString("\n\n")
		body.WriteString(strings.Join(details, "\n"))
	}
	return t.Card.Render(body.String())
}

// renderMarkdown renders md with glamour for terminals and returns it
// unchanged otherwise.
func renderMarkdown(w io.Writer, md string) string {
	if theme().NoColor || !ui.IsTerminal(w) {
		return md
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"go.trai.ch/recall/internal/app"
	"go.trai.ch/recall/internal/core/domain"
	"go.trai.ch/recall/internal/ui/output"
	"go.trai.ch/recall/internal/ui/style"
)

// printSummary prints the cache outcome and, with a journal, the task counts of the run.
func printSummary(w io.Writer, res *app.Result, journal Journal) {
	r := output.Renderer(w)

	switch res.Outcome {
	case app.OutcomeHit:
		_, _ = fmt.Fprintln(w, style.Hit.Renderer(r).Render(style.Check+" Configuration cache entry reused."))
	case app.OutcomeMiss:
		if res.Stage == app.StageFailed && !storedEntry(res) {
			_, _ = fmt.Fprintln(w, style.Miss.Renderer(r).Render(style.Cross+" Configuration cache entry discarded."))
		} else {
			_, _ = fmt.Fprintln(w, style.Miss.Renderer(r).Render(style.Dot+" Configuration cache entry stored."))
		}
	case app.OutcomeDisabled:
		_, _ = fmt.Fprintln(w, style.Off.Renderer(r).Render(style.Dot+" Configuration cache disabled."))
	}

	if n := len(res.Problems); n > 0 {
		_, _ = fmt.Fprintln(w, style.Miss.Renderer(r).Render(fmt.Sprintf("%s %d problem(s) found.", style.Warning, n)))
	}

	if journal == nil || res.Outcome == "" {
		return
	}
	var executed, skipped, failed int
	for _, v := range journal.Vertices() {
		if !domain.IsTaskVertex(v.Name) {
			continue
		}
		switch {
		case v.Failed:
			failed++
		case v.Cached:
			skipped++
		default:
			executed++
		}
	}
	status := style.Hit.Renderer(r).Render("BUILD SUCCESSFUL")
	if res.Stage == app.StageFailed {
		status = lipgloss.NewStyle().Renderer(r).Foreground(style.Red).Bold(true).Render("BUILD FAILED")
	}
	_, _ = fmt.Fprintf(w, "%s: %d executed, %d skipped, %d failed\n", status, executed, skipped, failed)
}

// storedEntry reports whether a failed run got past storing its entry.
func storedEntry(res *app.Result) bool {
	for _, s := range res.Trace {
		if s == app.StageExecute {
			return true
		}
	}
	return false
}

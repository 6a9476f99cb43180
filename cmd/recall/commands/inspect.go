package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.trai.ch/recall/internal/ui/output"
	"go.trai.ch/recall/internal/ui/style"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [tasks...]",
		Short: "Show the stored configuration inputs for the given tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := runOptions(cmd)
			if err != nil {
				return err
			}

			report, err := c.app.Inspect(cmd.Context(), args, opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			r := output.Renderer(w)
			_, _ = fmt.Fprintf(w, "cache key: %s\n", report.Key)
			if report.Valid {
				_, _ = fmt.Fprintln(w, style.Hit.Renderer(r).Render(style.Check+" up to date"))
			} else {
				_, _ = fmt.Fprintln(w, style.Miss.Renderer(r).Render(style.Cross+" "+report.Reason))
			}

			_, _ = fmt.Fprintf(w, "inputs (%d):\n", len(report.Entries))
			for i, e := range report.Entries {
				_, _ = fmt.Fprintf(w, "  %3d  %s\n", i+1, e.Describe())
			}
			if len(report.Problems) > 0 {
				_, _ = fmt.Fprintf(w, "problems (%d):\n", len(report.Problems))
				for _, p := range report.Problems {
					_, _ = fmt.Fprintf(w, "  %s %s: %s\n", style.Warning, p.Severity, p.Message)
				}
			}
			return nil
		},
	}
	addCacheFlags(cmd)
	return cmd
}

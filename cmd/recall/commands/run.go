package commands

import (
	"github.com/spf13/cobra"

	"go.trai.ch/recall/internal/adapters/env"
	"go.trai.ch/recall/internal/app"
	"go.trai.ch/recall/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [tasks...]",
		Short: "Run the given tasks, reusing the cached configuration when possible",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			opts, err := runOptions(cmd)
			if err != nil {
				return err
			}

			res, err := c.app.Run(cmd.Context(), args, opts)
			if res != nil {
				printSummary(cmd.OutOrStdout(), res, c.journal)
			}
			return err
		},
	}
	addCacheFlags(cmd)
	cmd.Flags().IntP("parallelism", "j", 0, "Maximum number of tasks executed at once (0 means one per CPU)")
	return cmd
}

func addCacheFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("no-cache", "n", false, "Configure the build without reading or writing the configuration cache")
	cmd.Flags().Bool("strict", false, "Fail when task state is read while the build is being configured")
	cmd.Flags().String("task-access", string(domain.AccessBarrierBased),
		"Policy for task state reads while configuring: barrier or state")
	cmd.Flags().StringArrayP("property", "P", nil, "Set a startup property (name=value)")
	cmd.Flags().Bool("trust-mtime", false, "Skip rehashing files whose size and modification time are unchanged")
}

// runOptions reads the flags shared by run and inspect.
func runOptions(cmd *cobra.Command) (app.RunOptions, error) {
	root, _ := cmd.Flags().GetString("root")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	strict, _ := cmd.Flags().GetBool("strict")
	taskAccess, _ := cmd.Flags().GetString("task-access")
	pairs, _ := cmd.Flags().GetStringArray("property")
	trustMTime, _ := cmd.Flags().GetBool("trust-mtime")
	parallelism, _ := cmd.Flags().GetInt("parallelism")

	policy, err := domain.ParseAccessPolicy(taskAccess)
	if err != nil {
		return app.RunOptions{}, err
	}
	props, err := env.ParseOverrides(pairs)
	if err != nil {
		return app.RunOptions{}, err
	}

	mode := domain.ModeAdvisory
	if strict {
		mode = domain.ModeStrict
	}

	return app.RunOptions{
		RootDir:      root,
		NoCache:      noCache,
		Mode:         mode,
		TaskAccess:   policy,
		Properties:   props,
		Parallelism:  parallelism,
		TrustModTime: trustMTime,
	}, nil
}

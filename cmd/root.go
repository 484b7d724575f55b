package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rq",
		Short:         "Review Queue (rq): evaluate items shared by other users",
		Long:          "rq (Review Queue) serves items uploaded by other users one at a time, least-reviewed first, and records your ratings, reactions and skips.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newReviewCmd(app),
		newPoolCmd(app),
		newItemCmd(app),
	)

	return rootCmd
}

package cmd

import (
	"fmt"
	"runtime"

	"github.com/bnema/review-queue/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !verbose {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Version)
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "rq %s (%s, %s/%s)\n", version.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return err
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include Go runtime and platform")

	return cmd
}

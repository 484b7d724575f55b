package cmd

import (
	"fmt"

	"github.com/bnema/review-queue/internal/domain"
	"github.com/spf13/cobra"
)

func newPoolCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Inspect the candidate pool",
	}

	cmd.AddCommand(
		newPoolWarmCmd(app),
		newPoolPeekCmd(app),
	)

	return cmd
}

func newPoolWarmCmd(app *app) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Fetch the candidate pool into the cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := app.resolveUser(user)
			if err != nil {
				return err
			}

			items, err := app.loader.Warm(cmd.Context(), userID)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cached %d candidate items for %s\n", len(items), sanitizeForTerminal(string(userID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Acting user id (defaults to RQ_USER)")

	return cmd
}

func newPoolPeekCmd(app *app) *cobra.Command {
	var user string
	var window int

	cmd := &cobra.Command{
		Use:   "peek",
		Short: "Show the item a review session would start with",
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := app.resolveUser(user)
			if err != nil {
				return err
			}

			items, fromCache, err := app.loader.Load(cmd.Context(), userID)
			if err != nil {
				return err
			}

			selector, err := domain.NewSelector(items, nil, userID, domain.WithWindowSize(app.windowSize(window)))
			if err != nil {
				return fmt.Errorf("build selector: %w", err)
			}

			source := "store"
			if fromCache {
				source = "cache"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pool: %d items (from %s, window %d)\n", selector.PoolSize(), source, selector.WindowSize())

			item, ok := selector.Peek()
			if !ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "next: none")
				return nil
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "next: %s (owner %s, %d evaluations)\n",
				sanitizeForTerminal(string(item.ID)),
				sanitizeForTerminal(string(item.OwnerID)),
				item.EvaluationCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Acting user id (defaults to RQ_USER)")
	cmd.Flags().IntVar(&window, "window", 0, "Selection window size (defaults to selection.window_size)")

	return cmd
}

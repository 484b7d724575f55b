package cmd

import (
	"encoding/json"
	"fmt"

	reviewrender "github.com/bnema/review-queue/internal/adapters/render/review"
	"github.com/spf13/cobra"
)

func newItemCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage your own items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemListCmd(app),
	)

	return cmd
}

func newItemAddCmd(app *app) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "add <payload-ref>",
		Short: "Put an item up for evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := app.resolveUser(user)
			if err != nil {
				return err
			}

			item, err := app.catalog.AddItem(cmd.Context(), userID, args[0])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added item %s (%s)\n", item.ID, sanitizeForTerminal(item.PayloadRef))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Owner user id (defaults to RQ_USER)")

	return cmd
}

func newItemListCmd(app *app) *cobra.Command {
	var user string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your items with their evaluations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := app.resolveUser(user)
			if err != nil {
				return err
			}

			stats, err := app.catalog.ListOwned(cmd.Context(), userID)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}

			rendered, err := app.catalogRenderer(stats, reviewrender.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render items: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Owner user id (defaults to RQ_USER)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of the rendered view")

	return cmd
}

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/hostbridge-io/hbapi/internal/client"
	"github.com/hostbridge-io/hbapi/internal/constants"
)

// NewTagsCommand creates the tags command group.
func NewTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "Manage tags",
		Long:    "List and manage the labels attached to a site",
	}

	cmd.AddCommand(newTagsListCommand())
	cmd.AddCommand(newTagsAddCommand())
	cmd.AddCommand(newTagsDeleteCommand())

	return cmd
}

func renderTagTable(tags map[string]int64) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Tag", "ID")

	for name, id := range tags {
		_ = table.Append(name, fmt.Sprintf("%d", id))
	}

	return table.Render()
}

func newTagsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <site-id>",
		Short: "List a site's tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			siteID, err := client.ParseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			apiClient, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			tags, err := apiClient.Tags().List(ctx, siteID)
			if err != nil {
				return err
			}

			if done, err := renderStructured(tags); done {
				return err
			}

			if len(tags) == 0 {
				_, _ = os.Stdout.WriteString("No tags found\n")

				return nil
			}

			plain := make(map[string]int64, len(tags))
			for name, id := range tags {
				plain[name] = int64(id)
			}

			return renderTagTable(plain)
		},
	}
}

func newTagsAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <site-id> <tag>",
		Short: "Attach a tag to a site",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			siteID, err := client.ParseID(args[0])
			if err != nil {
				return err
			}

			if args[1] == "" {
				return constants.ErrTagNameRequired
			}

			ctx := context.Background()

			apiClient, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			tags, err := apiClient.Tags().Add(ctx, siteID, args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Added tag %q; site now has %d tags\n", args[1], len(tags))

			return nil
		},
	}
}

func newTagsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <site-id> <tag-id>",
		Short: "Detach a tag from a site",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			siteID, err := client.ParseID(args[0])
			if err != nil {
				return err
			}

			tagID, err := client.ParseID(args[1])
			if err != nil {
				return err
			}

			ctx := context.Background()

			apiClient, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			deleted, err := apiClient.Tags().Delete(ctx, siteID, tagID)
			if err != nil {
				return err
			}

			if !deleted {
				fmt.Fprintf(os.Stdout, "Tag %s was not deleted\n", args[1])

				return nil
			}

			fmt.Fprintf(os.Stdout, "Deleted tag %s\n", args[1])

			return nil
		},
	}
}

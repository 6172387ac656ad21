package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/hostbridge-io/hbapi/internal/client"
	"github.com/hostbridge-io/hbapi/internal/constants"
	"github.com/hostbridge-io/hbapi/pkg/hbapi"
)

// NewSitesCommand creates the sites command group.
func NewSitesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sites",
		Aliases: []string{"site"},
		Short:   "Manage sites",
		Long:    "List, create, clone, and delete Hostbridge sites",
	}

	cmd.AddCommand(newSitesListCommand())
	cmd.AddCommand(newSitesCreateCommand())
	cmd.AddCommand(newSitesCloneCommand())
	cmd.AddCommand(newSitesDeleteCommand())
	cmd.AddCommand(newSitesMetadataCommand())

	return cmd
}

func newSitesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			apiClient, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			sites, err := apiClient.Sites().List(ctx)
			if err != nil {
				return err
			}

			records := make([]hbapi.SiteRecord, 0, len(sites))
			for _, site := range sites {
				records = append(records, site.Record())
			}

			if done, err := renderStructured(records); done {
				return err
			}

			if len(records) == 0 {
				_, _ = os.Stdout.WriteString("No sites found\n")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Stack", "Created")

			for _, rec := range records {
				_ = table.Append(rec.ID.String(), rec.Name, rec.StackID.String(), rec.Created)
			}

			return table.Render()
		},
	}
}

func newSitesCreateCommand() *cobra.Command {
	var stackID string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if stackID == "" {
				return constants.ErrStackIDRequired
			}

			stack, err := client.ParseID(stackID)
			if err != nil {
				return err
			}

			ctx := context.Background()

			apiClient, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			site, err := apiClient.Sites().Create(ctx, args[0], stack, hbapi.SiteTypeNew)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Created site %s (id %s)\n", site.Name(), site.ID())

			return nil
		},
	}

	cmd.Flags().StringVarP(&stackID, "stack", "s", "", "id of the stack to provision on")

	return cmd
}

func newSitesCloneCommand() *cobra.Command {
	var (
		stackID  string
		sourceID string
	)

	cmd := &cobra.Command{
		Use:   "clone <name>",
		Short: "Clone a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if stackID == "" {
				return constants.ErrStackIDRequired
			}

			stack, err := client.ParseID(stackID)
			if err != nil {
				return err
			}

			source, err := client.ParseID(sourceID)
			if err != nil {
				return err
			}

			ctx := context.Background()

			apiClient, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			site, err := apiClient.Sites().Clone(ctx, args[0], stack, source)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Cloned site %s into %s (id %s)\n", sourceID, site.Name(), site.ID())

			return nil
		},
	}

	cmd.Flags().StringVarP(&stackID, "stack", "s", "", "id of the stack to provision on")
	cmd.Flags().StringVar(&sourceID, "from", "", "id of the site to clone")

	return cmd
}

func newSitesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <site-id>",
		Short: "Delete a site",
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

			deleted, err := apiClient.Sites().Delete(ctx, siteID)
			if err != nil {
				return err
			}

			if !deleted {
				fmt.Fprintf(os.Stdout, "Site %s was not deleted\n", siteID)

				return nil
			}

			fmt.Fprintf(os.Stdout, "Deleted site %s\n", siteID)

			return nil
		},
	}
}

func newSitesMetadataCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "metadata <site-id>",
		Short: "Show a site's metadata",
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

			records, err := apiClient.Sites().Metadata(ctx, siteID)
			if err != nil {
				return err
			}

			if done, err := renderStructured(records); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Key", "Value")

			for _, record := range records {
				for key, value := range record.Fields {
					_ = table.Append(key, fmt.Sprintf("%v", value))
				}
			}

			return table.Render()
		},
	}
}

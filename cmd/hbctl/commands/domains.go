package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/hostbridge-io/hbapi/internal/client"
)

// NewDomainsCommand creates the domains command group.
func NewDomainsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "domains",
		Aliases: []string{"domain"},
		Short:   "Manage domains",
		Long:    "List and manage the hostnames bound to a site",
	}

	cmd.AddCommand(newDomainsListCommand())
	cmd.AddCommand(newDomainsAddCommand())
	cmd.AddCommand(newDomainsSetPrimaryCommand())
	cmd.AddCommand(newDomainsDeleteCommand())

	return cmd
}

func newDomainsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <site-id>",
		Short: "List a site's domains",
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

			domains, err := apiClient.Domains().List(ctx, siteID)
			if err != nil {
				return err
			}

			if done, err := renderStructured(domains); done {
				return err
			}

			if len(domains) == 0 {
				_, _ = os.Stdout.WriteString("No domains found\n")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Domain", "Primary")

			for _, dom := range domains {
				_ = table.Append(dom.ID.String(), dom.Name, strconv.FormatBool(dom.Primary))
			}

			return table.Render()
		},
	}
}

func newDomainsAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <site-id> <hostname>",
		Short: "Bind a hostname to a site",
		Args:  cobra.ExactArgs(2),
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

			domainID, err := apiClient.Domains().Add(ctx, siteID, args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Added domain %s (id %s)\n", args[1], domainID)

			return nil
		},
	}
}

func newDomainsSetPrimaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-primary <site-id> <domain-id>",
		Short: "Mark a domain as the site's primary hostname",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			siteID, err := client.ParseID(args[0])
			if err != nil {
				return err
			}

			domainID, err := client.ParseID(args[1])
			if err != nil {
				return err
			}

			ctx := context.Background()

			apiClient, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			changed, err := apiClient.Domains().SetPrimary(ctx, siteID, domainID)
			if err != nil {
				return err
			}

			if !changed {
				fmt.Fprintln(os.Stdout, "Primary domain unchanged")

				return nil
			}

			fmt.Fprintf(os.Stdout, "Domain %s is now primary\n", domainID)

			return nil
		},
	}
}

func newDomainsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <site-id> <domain-id>",
		Short: "Unbind a domain from a site",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			siteID, err := client.ParseID(args[0])
			if err != nil {
				return err
			}

			domainID, err := client.ParseID(args[1])
			if err != nil {
				return err
			}

			ctx := context.Background()

			apiClient, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			deleted, err := apiClient.Domains().Delete(ctx, siteID, domainID)
			if err != nil {
				return err
			}

			if !deleted {
				fmt.Fprintf(os.Stdout, "Domain %s was not deleted\n", domainID)

				return nil
			}

			fmt.Fprintf(os.Stdout, "Deleted domain %s\n", domainID)

			return nil
		},
	}
}

package commands

import (
	"context"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewProvidersCommand creates the providers command group.
func NewProvidersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "providers",
		Aliases: []string{"provider"},
		Short:   "Manage providers",
		Long:    "List the cloud providers available to the account",
	}

	cmd.AddCommand(newProvidersListCommand())

	return cmd
}

func newProvidersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			providers, err := client.Providers().List(ctx)
			if err != nil {
				return err
			}

			if done, err := renderStructured(providers); done {
				return err
			}

			if len(providers) == 0 {
				_, _ = os.Stdout.WriteString("No providers found\n")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Provider")

			for _, provider := range providers {
				_ = table.Append(provider)
			}

			return table.Render()
		},
	}
}

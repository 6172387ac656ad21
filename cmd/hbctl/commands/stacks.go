package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hostbridge-io/hbapi/pkg/hbapi"
)

// NewStacksCommand creates the stacks command group.
func NewStacksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stacks",
		Aliases: []string{"stack"},
		Short:   "Manage stacks",
		Long:    "Stack operations (listing is not supported by the client yet)",
	}

	cmd.AddCommand(newStacksListCommand())

	return cmd
}

func newStacksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stacks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			_, err = client.Stacks().List(ctx)
			if hbapi.IsUnimplemented(err) {
				fmt.Fprintln(os.Stderr, "Stack listing is not supported yet; sites reference stacks by id.")

				return nil
			}

			return err
		},
	}
}

package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/hostbridge-io/hbapi/internal/constants"
	"github.com/hostbridge-io/hbapi/pkg/hbapi"
	"github.com/hostbridge-io/hbapi/pkg/hbclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		endpoint string
		apiKey   string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Hostbridge",
		Long:  "Validate an API key against a Hostbridge endpoint and store both in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if endpoint == "" {
				endpoint = viper.GetString("endpoint")
			}

			if endpoint == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("API endpoint: ")
				endpoint, _ = reader.ReadString('\n')
				endpoint = strings.TrimSpace(endpoint)
			}

			if endpoint == "" {
				return constants.ErrNoEndpointConfigured
			}

			if apiKey == "" {
				apiKey = viper.GetString("key")
			}

			if apiKey == "" {
				fmt.Print("API key: ")

				keyBytes, err := term.ReadPassword(syscall.Stdin)

				fmt.Println()

				if err != nil {
					return fmt.Errorf("reading API key: %w", err)
				}

				apiKey = strings.TrimSpace(string(keyBytes))
			}

			ctx := context.Background()

			// NewWithKey runs the login probe; a bad key fails here.
			_, err := hbclient.NewWithKey(ctx, endpoint, apiKey)
			if err != nil {
				if hbapi.IsUnauthorized(err) {
					return fmt.Errorf("login failed: %w", err)
				}

				return err
			}

			viper.Set("endpoint", endpoint)
			viper.Set("key", apiKey)

			if err := saveConfig(); err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Logged in to %s\n", endpoint)

			return nil
		},
	}

	cmd.Flags().StringVarP(&endpoint, "endpoint", "e", "", "API endpoint URL")
	cmd.Flags().StringVarP(&apiKey, "key", "k", "", "API key (prompted when omitted)")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from Hostbridge",
		Long:  "Remove the stored API key from the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("key", "")

			if err := saveConfig(); err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, "Logged out")

			return nil
		},
	}
}

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/hostbridge-io/hbapi/internal/constants"
	"github.com/hostbridge-io/hbapi/pkg/hbapi"
	"github.com/hostbridge-io/hbapi/pkg/hbclient"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"

	defaultJSONIndent = "  "
)

// CreateClient builds a logged-in client from the effective configuration
// (flags, environment, config file).
func CreateClient(ctx context.Context) (hbapi.Client, error) {
	endpoint := viper.GetString("endpoint")
	if endpoint == "" {
		return nil, constants.ErrNoEndpointConfigured
	}

	key := viper.GetString("key")
	if key == "" {
		return nil, constants.ErrNoAPIKeyConfigured
	}

	// Interactive use tolerates a few transient failures better than it
	// tolerates spurious errors, so the CLI opts into retries.
	return hbclient.New(ctx, &hbapi.Config{
		Endpoint: endpoint,
		Version:  viper.GetString("api_version"),
		APIKey:   key,
		RetryMax: constants.DefaultRetryMax,
		Debug:    viper.GetBool("verbose"),
		Logger:   maybeLogger(),
	})
}

func maybeLogger() hbapi.Logger {
	if !viper.GetBool("verbose") {
		return nil
	}

	return hbapi.NewHCLogAdapter(nil)
}

// renderStructured prints data as JSON or YAML when the output flag asks
// for it. It returns false when the caller should render a table instead.
func renderStructured(data interface{}) (bool, error) {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", defaultJSONIndent)

		if err := encoder.Encode(data); err != nil {
			return true, fmt.Errorf("encoding JSON output: %w", err)
		}

		return true, nil

	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)
		defer func() {
			_ = encoder.Close()
		}()

		if err := encoder.Encode(data); err != nil {
			return true, fmt.Errorf("encoding YAML output: %w", err)
		}

		return true, nil

	case OutputFormatTable, "":
		return false, nil

	default:
		return true, fmt.Errorf("%w: %s", constants.ErrUnknownOutputFormat, viper.GetString("output"))
	}
}

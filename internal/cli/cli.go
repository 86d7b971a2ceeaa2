package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/weather-energy-service/internal/weather"
)

// Deps are the collaborators the commands run against.
type Deps struct {
	Service *weather.Service

	// Serve runs the HTTP server until ctx is done.
	Serve func(ctx context.Context) error
}

// New builds the root command. Without a subcommand it serves HTTP.
func New(deps Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "weather-energy-service",
		Short:         "Weather forecast and solar energy estimates for a coordinate",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.Serve(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return deps.Serve(cmd.Context())
			},
		},
		queryCommand("forecast", "Print the 7-day forecast with energy estimates",
			func(ctx context.Context, loc weather.Coordinate) (any, error) {
				return deps.Service.GetForecast(ctx, loc)
			}),
		queryCommand("summary", "Print the 7-day weather summary",
			func(ctx context.Context, loc weather.Coordinate) (any, error) {
				return deps.Service.GetSummary(ctx, loc)
			}),
	)

	return root
}

func queryCommand(use, short string, run func(context.Context, weather.Coordinate) (any, error)) *cobra.Command {
	var (
		latitude  string
		longitude string
		output    string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "yaml" {
				return fmt.Errorf("unsupported output format %q", output)
			}

			loc, err := weather.ParseCoordinate(
				flagValue(cmd, "latitude", latitude),
				flagValue(cmd, "longitude", longitude),
			)
			if err != nil {
				return err
			}

			result, err := run(cmd.Context(), loc)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), output, result)
		},
	}

	cmd.Flags().StringVar(&latitude, "latitude", "", "latitude in decimal degrees")
	cmd.Flags().StringVar(&longitude, "longitude", "", "longitude in decimal degrees")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")

	return cmd
}

// flagValue returns nil when the flag was not given on the command line.
func flagValue(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func write(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		return json.NewEncoder(w).Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

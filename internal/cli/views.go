package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/couchcryptid/quake-dashboard/internal/observability"
)

func newViewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views",
		Short: "Print the dashboard, or one view, as JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			name, err := cmd.Flags().GetString("view")
			if err != nil {
				return err
			}

			a := newApp(cfg, cliLogger(cfg, cmd.ErrOrStderr()), observability.NewMetricsWith(prometheus.NewRegistry()))
			defer a.Close() //nolint:errcheck // nothing to report on exit

			d, err := a.pipeline.Run(cmd.Context())
			if err != nil {
				return err
			}
			return writeViews(cmd.OutOrStdout(), d, name)
		},
	}
	cmd.Flags().String("view", "", "Print only the named view")
	return cmd
}

// writeViews encodes the whole dashboard, or only the named view when name is
// set.
func writeViews(w io.Writer, d *domain.Dashboard, name string) error {
	var v any = d
	if name != "" {
		view, ok := d.Views.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown view %q (known: %v)", name, domain.ViewNames)
		}
		v = view
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

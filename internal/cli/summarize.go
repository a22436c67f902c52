package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/couchcryptid/quake-dashboard/internal/observability"
)

func newSummarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize",
		Short: "Print the dashboard views as tables.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			a := newApp(cfg, cliLogger(cfg, cmd.ErrOrStderr()), observability.NewMetricsWith(prometheus.NewRegistry()))
			defer a.Close() //nolint:errcheck // nothing to report on exit

			d, err := a.pipeline.Run(cmd.Context())
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.SetHeader(header)
	return table
}

func printSummary(w io.Writer, d *domain.Dashboard) {
	v := d.Views
	fmt.Fprintln(w, "Run:", d.RunID)
	fmt.Fprintf(w, "Rows: %d read, %d retained, %d dropped\n", d.Report.RawRows, d.Report.Retained, d.Report.Dropped)

	fmt.Fprintln(w, "\nEvents per decade")
	table := newTable(w, []string{"Decade", "Events"})
	for _, dc := range v.Decades {
		table.Append([]string{strconv.Itoa(dc.Decade), strconv.Itoa(dc.Count)})
	}
	table.Render()

	fmt.Fprintln(w, "\nGutenberg-Richter")
	table = newTable(w, []string{"Magnitude", "Events"})
	for _, mc := range v.GutenbergRichter {
		table.Append([]string{strconv.FormatFloat(mc.Magnitude, 'f', 1, 64), strconv.Itoa(mc.Count)})
	}
	table.Render()

	fmt.Fprintln(w, "\nMagnitude x depth")
	table = newTable(w, []string{"Depth", "Magnitude", "Events"})
	for _, b := range v.Buckets {
		table.Append([]string{b.Category.String(), b.Bin.Label(), strconv.Itoa(b.Count)})
	}
	table.Render()

	fmt.Fprintln(w, "\nTop sources")
	table = newTable(w, []string{"Source", "Events", "Median\nM", "Q1", "Q3", "Max"})
	for _, s := range v.TopSources {
		table.Append([]string{
			s.Source,
			strconv.Itoa(s.Count),
			fmt.Sprintf("%.2f", s.Summary.Median),
			fmt.Sprintf("%.2f", s.Summary.Q1),
			fmt.Sprintf("%.2f", s.Summary.Q3),
			fmt.Sprintf("%.2f", s.Summary.Max),
		})
	}
	table.Render()

	fmt.Fprintf(w, "\n%s aftershocks: %d events\n", v.Aftershocks.Window.Name, len(v.Aftershocks.Points))
	fmt.Fprintf(w, "Nuclear explosions: %d events\n", len(v.Nuclear))
}

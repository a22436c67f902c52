// Command validate runs the dashboard's data properties against a catalog
// file: row accounting, decade and energy invariants, depth boundaries,
// bucket sparsity, top-source ranking, the aftershock window and
// determinism across re-runs.
//
// Usage:
//
//	go run ./cmd/validate -catalog data/earthquakes.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/quake-dashboard/internal/adapter/catalog"
	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/couchcryptid/quake-dashboard/internal/observability"
	"github.com/couchcryptid/quake-dashboard/internal/pipeline"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	path := flag.String("catalog", "earthquakes.csv", "catalog file (.csv or .xlsx)")
	topSources := flag.Int("top-sources", 5, "top source count to check")
	landmarks := flag.Int("landmarks", 4, "energy landmark count to check")
	flag.Parse()

	os.Exit(run(os.Stdout, *path, *topSources, *landmarks))
}

func run(w io.Writer, path string, topSources, landmarks int) int {
	fmt.Fprintln(w, "=== Earthquake Catalog Validation ===")
	fmt.Fprintln(w)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := catalog.NewFileLoader(path, logger)
	records, err := loader.Load(context.Background())
	if err != nil {
		fmt.Fprintf(w, "FATAL: load catalog: %v\n", err)
		return 1
	}

	p := pipeline.New(loader, logger, observability.NewMetricsWith(nil),
		pipeline.WithTopSources(topSources),
		pipeline.WithEnergyLandmarks(landmarks),
	)
	first, err := p.Run(context.Background())
	if err != nil {
		fmt.Fprintf(w, "FATAL: pipeline run: %v\n", err)
		return 1
	}
	second, err := p.Run(context.Background())
	if err != nil {
		fmt.Fprintf(w, "FATAL: pipeline re-run: %v\n", err)
		return 1
	}

	table, _ := domain.Normalize(records)
	v := first.Views

	phases := []*phase{
		validateRowAccounting(first.Report, len(records), len(table)),
		validateDecades(v.Decades, len(table)),
		validateEnergy(v.Energy, table, landmarks),
		validateDepthCategories(table),
		validateBuckets(v.Buckets, len(table)),
		validateTopSources(v.TopSources, table, topSources),
		validateAftershocks(v.Aftershocks),
		validateDeterminism(first.Views, second.Views),
	}

	allPassed := true
	for _, ph := range phases {
		status := "\033[32mPASS\033[0m"
		if !ph.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(ph.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", ph.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Records: %d raw, %d retained, %d dropped\n",
		first.Report.RawRows, first.Report.Retained, first.Report.Dropped)

	// Print detailed errors.
	for _, ph := range phases {
		if ph.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", ph.name)
		for i, e := range ph.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

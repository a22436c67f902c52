// Package render builds go-echarts charts from dashboard views.
package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

// ErrUnknownView is returned for a view name the dashboard does not define.
var ErrUnknownView = errors.New("unknown view")

// PageTitle is the HTML title of the dashboard page.
const PageTitle = "Significant Earthquakes, 1965-2016"

// Charter is a renderable chart that can also be placed on a page.
type Charter interface {
	components.Charter
	Render(w io.Writer) error
}

type builder func(d *domain.Dashboard) Charter

var builders = map[string]builder{
	domain.ViewDecades:          decadesChart,
	domain.ViewEnergy:           energyChart,
	domain.ViewDepthMagnitudes:  depthChart,
	domain.ViewGutenbergRichter: gutenbergRichterChart,
	domain.ViewAftershocks:      aftershockChart,
	domain.ViewBuckets:          bucketChart,
	domain.ViewTopSources:       topSourcesChart,
	domain.ViewNuclear:          nuclearChart,
	domain.ViewHourly:           hourlyChart,
	domain.ViewTypes:            typesChart,
}

// Chart builds a new chart for the named view. Charts are never shared
// between calls.
func Chart(name string, d *domain.Dashboard) (Charter, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	return b(d), nil
}

// Page writes every view, in dashboard order, as one HTML page.
func Page(w io.Writer, d *domain.Dashboard) error {
	page := components.NewPage()
	page.PageTitle = PageTitle
	for _, name := range domain.ViewNames {
		c, err := Chart(name, d)
		if err != nil {
			return err
		}
		page.AddCharts(c)
	}
	return page.Render(w)
}

// View writes the single named chart as an HTML page.
func View(w io.Writer, name string, d *domain.Dashboard) error {
	c, err := Chart(name, d)
	if err != nil {
		return err
	}
	return c.Render(w)
}

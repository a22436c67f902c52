package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

const dateLayout = "2006-01-02 15:04"

func title(text, subtitle string) charts.GlobalOpts {
	return charts.WithTitleOpts(opts.Title{Title: text, Subtitle: subtitle})
}

func tooltip() charts.GlobalOpts {
	return charts.WithTooltipOpts(opts.Tooltip{Show: true})
}

func decadesChart(d *domain.Dashboard) Charter {
	labels := make([]string, len(d.Views.Decades))
	data := make([]opts.BarData, len(d.Views.Decades))
	for i, dc := range d.Views.Decades {
		labels[i] = strconv.Itoa(dc.Decade) + "s"
		data[i] = opts.BarData{Value: dc.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		title("Earthquakes per Decade", ""),
		tooltip(),
		charts.WithXAxisOpts(opts.XAxis{Name: "Decade"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Events"}),
	)
	bar.SetXAxis(labels).AddSeries("events", data)
	return bar
}

func energyChart(d *domain.Dashboard) Charter {
	v := d.Views.Energy
	labels := make([]string, len(v.Series))
	data := make([]opts.LineData, len(v.Series))
	for i, pt := range v.Series {
		labels[i] = pt.Timestamp.Format(dateLayout)
		data[i] = opts.LineData{Value: finite(pt.Cumulative)}
	}

	marks := make([]charts.SeriesOpts, 0, len(v.Landmarks))
	for _, lm := range v.Landmarks {
		marks = append(marks, charts.WithMarkPointNameCoordItemOpts(opts.MarkPointNameCoordItem{
			Name:       fmt.Sprintf("M%.1f %s", lm.Magnitude, lm.Timestamp.Format("2006-01-02")),
			Coordinate: []interface{}{lm.Timestamp.Format(dateLayout), finite(lm.Cumulative)},
		}))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		title("Cumulative Seismic Energy", "energy = 10^(1.5 M), largest events marked"),
		tooltip(),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cumulative energy", Type: "log"}),
	)
	line.SetXAxis(labels).AddSeries("cumulative energy", data, marks...)
	return line
}

func depthChart(d *domain.Dashboard) Charter {
	labels := make([]string, len(d.Views.DepthMagnitudes))
	data := make([]opts.BoxPlotData, len(d.Views.DepthMagnitudes))
	for i, g := range d.Views.DepthMagnitudes {
		labels[i] = g.Category.String()
		data[i] = opts.BoxPlotData{Name: labels[i], Value: boxValue(g.Summary)}
	}

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(
		title("Magnitude by Depth", "Shallow < 70 km, Intermediate 70-300 km, Deep > 300 km"),
		tooltip(),
		charts.WithYAxisOpts(opts.YAxis{Name: "Magnitude", Scale: true}),
	)
	box.SetXAxis(labels).AddSeries("magnitude", data)
	return box
}

func gutenbergRichterChart(d *domain.Dashboard) Charter {
	labels := make([]string, len(d.Views.GutenbergRichter))
	data := make([]opts.BarData, len(d.Views.GutenbergRichter))
	for i, mc := range d.Views.GutenbergRichter {
		labels[i] = strconv.FormatFloat(mc.Magnitude, 'f', 1, 64)
		data[i] = opts.BarData{Value: mc.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		title("Gutenberg-Richter Distribution", "events per 0.1 magnitude, log scale"),
		tooltip(),
		charts.WithXAxisOpts(opts.XAxis{Name: "Magnitude"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Events", Type: "log"}),
	)
	bar.SetXAxis(labels).AddSeries("events", data)
	return bar
}

func aftershockChart(d *domain.Dashboard) Charter {
	v := d.Views.Aftershocks
	labels := make([]string, len(v.Points))
	data := make([]opts.ScatterData, len(v.Points))
	for i, pt := range v.Points {
		labels[i] = pt.Timestamp.Format(dateLayout)
		data[i] = opts.ScatterData{Value: finite(pt.Magnitude), SymbolSize: symbolSize(pt.Magnitude)}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		title(v.Window.Name+" Aftershocks", fmt.Sprintf("%s to %s",
			v.Window.Mainshock.Format("2006-01-02"), v.Window.End().Format("2006-01-02"))),
		tooltip(),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (UTC)", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Magnitude", Scale: true}),
	)
	scatter.SetXAxis(labels).AddSeries("aftershocks", data)
	return scatter
}

func bucketChart(d *domain.Dashboard) Charter {
	bins := domain.MagnitudeBinLabels()
	categories := make([]string, len(domain.DepthCategories))
	for i, c := range domain.DepthCategories {
		categories[i] = c.String()
	}

	data := make([]opts.HeatMapData, 0, len(d.Views.Buckets))
	highest := 0
	for _, b := range d.Views.Buckets {
		data = append(data, opts.HeatMapData{Value: [3]interface{}{int(b.Bin), int(b.Category), b.Count}})
		highest = max(highest, b.Count)
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		title("Events by Magnitude and Depth", ""),
		tooltip(),
		charts.WithXAxisOpts(opts.XAxis{Name: "Magnitude", Type: "category", Data: bins}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Depth", Type: "category", Data: categories}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        0,
			Max:        float32(highest),
		}),
	)
	hm.SetXAxis(bins).AddSeries("events", data)
	return hm
}

func topSourcesChart(d *domain.Dashboard) Charter {
	labels := make([]string, len(d.Views.TopSources))
	data := make([]opts.BoxPlotData, len(d.Views.TopSources))
	for i, s := range d.Views.TopSources {
		labels[i] = fmt.Sprintf("%s (%d)", s.Source, s.Count)
		data[i] = opts.BoxPlotData{Name: s.Source, Value: boxValue(s.Summary)}
	}

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(
		title("Magnitude by Reporting Source", fmt.Sprintf("top %d sources by event count", len(labels))),
		tooltip(),
		charts.WithYAxisOpts(opts.YAxis{Name: "Magnitude", Scale: true}),
	)
	box.SetXAxis(labels).AddSeries("magnitude", data)
	return box
}

func nuclearChart(d *domain.Dashboard) Charter {
	data := make([]opts.GeoData, 0, len(d.Views.Nuclear))
	for i, n := range d.Views.Nuclear {
		if finite(n.Latitude) == nil || finite(n.Longitude) == nil {
			continue
		}
		name := n.Timestamp.Format("2006-01-02")
		if i < len(d.NuclearSiteLabels) && d.NuclearSiteLabels[i] != "" {
			name = d.NuclearSiteLabels[i] + " " + name
		}
		data = append(data, opts.GeoData{Name: name, Value: []interface{}{n.Longitude, n.Latitude, finite(n.Magnitude)}})
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		title("Nuclear Explosions", fmt.Sprintf("%d recorded tests", len(d.Views.Nuclear))),
		tooltip(),
		charts.WithGeoComponentOpts(opts.GeoComponent{Map: "world"}),
	)
	geo.AddSeries("nuclear explosions", types.ChartScatter, data, withSymbolSize(nuclearSymbolSize))
	return geo
}

func hourlyChart(d *domain.Dashboard) Charter {
	labels := make([]string, len(d.Views.Hourly))
	data := make([]opts.BarData, len(d.Views.Hourly))
	for h, n := range d.Views.Hourly {
		labels[h] = fmt.Sprintf("%02d", h)
		data[h] = opts.BarData{Value: n}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		title("Events by Hour of Day", "UTC"),
		tooltip(),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hour"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Events"}),
	)
	bar.SetXAxis(labels).AddSeries("events", data)
	return bar
}

func typesChart(d *domain.Dashboard) Charter {
	data := make([]opts.PieData, len(d.Views.Types))
	for i, tc := range d.Views.Types {
		data[i] = opts.PieData{Name: tc.Type, Value: tc.Count}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		title("Events by Type", ""),
		tooltip(),
	)
	pie.AddSeries("type", data)
	return pie
}

// boxValue orders a summary the way ECharts box plots expect.
func boxValue(s domain.BoxStats) []interface{} {
	return []interface{}{finite(s.LowerWhisker), finite(s.Q1), finite(s.Median), finite(s.Q3), finite(s.UpperWhisker)}
}

// symbolSize scales marker area with magnitude, never below 4.
func symbolSize(m float64) int {
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return 4
	}
	return max(4, int(math.Round((m-4)*6)))
}

// nuclearSymbolSize sizes a test-site marker at 1.5x its magnitude (value[2]).
const nuclearSymbolSize = `function (val) { return val[2] == null ? 4 : val[2] * 1.5; }`

func withSymbolSize(fn string) charts.SeriesOpts {
	return func(s *charts.SingleSeries) {
		s.SymbolSize = opts.FuncOpts(fn)
	}
}

// finite maps NaN and infinities to nil so the chart leaves a gap.
func finite(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

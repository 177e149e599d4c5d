// Package report assembles rendered charts into a standalone HTML
// dashboard — one card per dataset, SVG embedded inline, no external
// assets.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/huntiq/lightcharts/internal/chart"
	"github.com/huntiq/lightcharts/pkg/models"
)

// DashboardConfig controls dashboard generation.
type DashboardConfig struct {
	Title    string   // page title (default: "HUNTIQ Dashboard")
	Palette  []string // chart color cycle (default: chart.DefaultPalette)
	Width    float64  // line/bar canvas width (default: 600)
	Height   float64  // line/bar canvas height (default: 300)
	Size     float64  // pie/radar canvas side (default: 240)
	Padding  float64  // inner chart margin (default: 20)
	Parallel int      // concurrent chart renders (default: 4)
}

// DefaultDashboardConfig returns sensible defaults.
func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		Title:    "HUNTIQ Dashboard",
		Width:    600,
		Height:   300,
		Size:     240,
		Padding:  20,
		Parallel: 4,
	}
}

// dashboardData is the template model.
type dashboardData struct {
	Title       string
	GeneratedAt string
	Cards       []dashboardCard
}

type dashboardCard struct {
	Title string
	SVG   template.HTML
}

// GenerateDashboard renders every dataset to SVG and embeds the
// results in a single HTML page. Charts render concurrently but keep
// their input order on the page.
func GenerateDashboard(datasets []*models.Dataset, cfg DashboardConfig) (string, error) {
	if len(datasets) == 0 {
		return "", fmt.Errorf("no datasets to render")
	}
	if cfg.Title == "" {
		cfg = DefaultDashboardConfig()
	}
	if cfg.Parallel <= 0 {
		cfg.Parallel = 4
	}

	cards := make([]dashboardCard, len(datasets))
	var g errgroup.Group
	g.SetLimit(cfg.Parallel)
	for i, ds := range datasets {
		i, ds := i, ds
		g.Go(func() error {
			cards[i] = dashboardCard{
				Title: cardTitle(ds),
				SVG:   template.HTML(RenderDataset(ds, cfg)),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	tmpl, err := template.New("dashboard").Parse(DashboardTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing dashboard template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, dashboardData{
		Title:       cfg.Title,
		GeneratedAt: time.Now().Format("2006-01-02 15:04 MST"),
		Cards:       cards,
	})
	if err != nil {
		return "", fmt.Errorf("rendering dashboard: %w", err)
	}
	return buf.String(), nil
}

// RenderDataset dispatches a dataset to the matching chart renderer.
func RenderDataset(ds *models.Dataset, cfg DashboardConfig) string {
	switch ds.Chart {
	case models.ChartPie, models.ChartDonut:
		opts := chart.PieOptions{
			Size:        cfg.Size,
			Colors:      cfg.Palette,
			ShowLabels:  true,
			ShowTooltip: true,
		}
		if ds.Chart == models.ChartDonut {
			opts.InnerRadius = 0.55
		}
		return chart.PieChart(ds.Series, opts)

	case models.ChartLine, models.ChartArea:
		opts := chart.LineOptions{
			Width:    cfg.Width,
			Height:   cfg.Height,
			Padding:  cfg.Padding,
			Color:    chart.PaletteColor(0, cfg.Palette),
			ShowGrid: true,
			ShowDots: true,
			ShowArea: ds.Chart == models.ChartArea,
		}
		return chart.LineChart(ds.Series, opts)

	case models.ChartBar:
		return chart.BarChart(ds.Series, chart.BarOptions{
			Width:    cfg.Width,
			Height:   cfg.Height,
			Padding:  cfg.Padding,
			Colors:   cfg.Palette,
			ShowGrid: true,
		})

	case models.ChartRadar:
		return chart.RadarChart(ds.Series, chart.RadarOptions{
			Size:       cfg.Size,
			Color:      chart.PaletteColor(0, cfg.Palette),
			MaxValue:   ds.MaxValue,
			ShowLabels: true,
		})

	default:
		return chart.LineChart(ds.Series, chart.DefaultLineOptions())
	}
}

func cardTitle(ds *models.Dataset) string {
	if ds.Title != "" {
		return ds.Title
	}
	return ds.Name
}

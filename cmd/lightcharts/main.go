// lightcharts — server-side SVG chart rendering for HUNTIQ dashboards
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/huntiq/lightcharts/api"
	"github.com/huntiq/lightcharts/internal/config"
	"github.com/huntiq/lightcharts/internal/dataset"
	"github.com/huntiq/lightcharts/internal/report"
	"github.com/huntiq/lightcharts/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger, loaded in PersistentPreRunE.
var (
	cfg *config.Config
	log *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lightcharts",
	Short: "lightcharts — server-side SVG charts for HUNTIQ dashboards",
	Long: `lightcharts renders pie, donut, line, area, bar and radar charts
as standalone SVG documents, assembles them into HTML dashboards, and
serves them over an HTTP API with live dataset reload.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		log, err = buildLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(serveCmd)
}

// buildLogger constructs a zap logger from the logging configuration.
func buildLogger(lc config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	if lc.Format != "json" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lightcharts %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Render Command ---

var renderCmd = &cobra.Command{
	Use:   "render [dataset.json]",
	Short: "Render a dataset file to SVG",
	Long: `Render a JSON dataset file to a standalone SVG document.

The dataset file names its chart type:

  {"name": "species", "chart": "pie",
   "series": [{"name": "Deer", "value": 45}, {"name": "Boar", "value": 30}]}

Examples:
  lightcharts render species.json
  lightcharts render species.json --out species.svg
  lightcharts render harvest.json --chart area`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading dataset: %w", err)
		}

		var ds models.Dataset
		if err := json.Unmarshal(data, &ds); err != nil {
			return fmt.Errorf("parsing dataset: %w", err)
		}
		if ds.Name == "" {
			ds.Name = args[0]
		}
		if override, _ := cmd.Flags().GetString("chart"); override != "" {
			ds.Chart = models.ChartType(override)
		}
		if err := ds.Validate(); err != nil {
			return err
		}

		svg := report.RenderDataset(&ds, dashboardConfig())

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			fmt.Println(svg)
			return nil
		}
		if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		log.Info("chart rendered", zap.String("dataset", ds.Name), zap.String("out", out))
		return nil
	},
}

func init() {
	renderCmd.Flags().String("out", "", "output SVG file (default: stdout)")
	renderCmd.Flags().String("chart", "", "chart type override (pie, donut, line, area, bar, radar)")
}

// --- Dashboard Command ---

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Generate an HTML dashboard from the dataset directory",
	Long: `Render every dataset in the configured directory and assemble the
charts into a single standalone HTML page. With --pdf the page is also
exported via wkhtmltopdf or headless chromium when available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := dataset.NewStore(cfg.Datasets.Dir, log)
		if err := store.Load(); err != nil {
			return err
		}

		datasets := store.All()

		// Optional RSS/Atom activity panel.
		if cfg.Dashboard.FeedURL != "" {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			feedDS, err := dataset.FeedActivity(ctx, cfg.Dashboard.FeedURL, 7)
			if err != nil {
				log.Warn("feed activity unavailable", zap.Error(err))
			} else {
				datasets = append(datasets, feedDS)
			}
		}

		html, err := report.GenerateDashboard(datasets, dashboardConfig())
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = "dashboard.html"
		}
		if err := os.WriteFile(out, []byte(html), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		log.Info("dashboard generated", zap.String("out", out), zap.Int("charts", len(datasets)))

		if pdf, _ := cmd.Flags().GetBool("pdf"); pdf {
			opts := report.DefaultPDFOptions()
			opts.OutputPath = pdfPath(out)
			if err := report.ExportPDF(html, opts); err != nil {
				return fmt.Errorf("PDF export: %w", err)
			}
			log.Info("PDF exported", zap.String("out", opts.OutputPath),
				zap.Bool("native", report.IsPDFSupported()))
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().String("out", "dashboard.html", "output HTML file")
	dashboardCmd.Flags().Bool("pdf", false, "also export as PDF")
}

// pdfPath swaps an .html extension for .pdf.
func pdfPath(htmlPath string) string {
	if len(htmlPath) > 5 && htmlPath[len(htmlPath)-5:] == ".html" {
		return htmlPath[:len(htmlPath)-5] + ".pdf"
	}
	return htmlPath + ".pdf"
}

// --- Datasets Command ---

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List datasets in the configured directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := dataset.NewStore(cfg.Datasets.Dir, log)
		if err := store.Load(); err != nil {
			return err
		}

		all := store.All()
		if len(all) == 0 {
			fmt.Printf("no datasets in %s\n", cfg.Datasets.Dir)
			return nil
		}
		for _, ds := range all {
			title := ds.Title
			if title == "" {
				title = "-"
			}
			fmt.Printf("%-20s %-6s %3d points  %s\n", ds.Name, ds.Chart, len(ds.Series), title)
		}
		return nil
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := dataset.NewStore(cfg.Datasets.Dir, log)
		if err := store.Load(); err != nil {
			return err
		}
		if cfg.Datasets.Watch {
			if err := store.Watch(); err != nil {
				log.Warn("dataset watching disabled", zap.Error(err))
			}
		}
		defer store.Close()

		api.Version = version
		srv := api.NewServer(cfg, store, log)
		if noUI, _ := cmd.Flags().GetBool("no-ui"); noUI {
			srv.SetServeUI(false)
		}

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		return srv.ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().Bool("no-ui", false, "disable the embedded demo UI")
}

// dashboardConfig maps the loaded configuration onto report settings.
func dashboardConfig() report.DashboardConfig {
	rc := report.DefaultDashboardConfig()
	if cfg.Dashboard.Title != "" {
		rc.Title = cfg.Dashboard.Title
	}
	if len(cfg.Charts.Palette) > 0 {
		rc.Palette = cfg.Charts.Palette
	}
	if cfg.Charts.Width > 0 {
		rc.Width = cfg.Charts.Width
	}
	if cfg.Charts.Height > 0 {
		rc.Height = cfg.Charts.Height
	}
	if cfg.Charts.Size > 0 {
		rc.Size = cfg.Charts.Size
	}
	if cfg.Charts.Padding > 0 {
		rc.Padding = cfg.Charts.Padding
	}
	return rc
}

// Command pdftables extracts tables from precomputed detection data
// and serves the extraction history.
//
// The extract command consumes a fixture JSON file holding the page
// words, table detections and structure cells produced by an upstream
// detection pipeline, runs grid construction and text fill, and emits
// the canonical result JSON. Results can be stored in SQLite and later
// listed or exported to XLSX.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tsawler/pdftables"
	"github.com/tsawler/pdftables/export"
	"github.com/tsawler/pdftables/ocr"
	"github.com/tsawler/pdftables/store"
)

func main() {
	app := &cli.App{
		Name:  "pdftables",
		Usage: "construct table grids from PDF detection data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to YAML config file",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "log errors only",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Usage:     "extract tables from a detection fixture and emit result JSON",
				ArgsUsage: "<fixture.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "write result JSON to file instead of stdout",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "concurrent page workers",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "minimum detection score",
					},
					&cli.BoolFlag{
						Name:  "ocr",
						Usage: "enable OCR fallback for cells without embedded text",
					},
					&cli.StringFlag{
						Name:  "ocr-language",
						Usage: "OCR language",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "record the result in the database",
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "database path",
					},
				},
				Action: extractAction,
			},
			{
				Name:      "export",
				Usage:     "export a stored run to an XLSX workbook",
				ArgsUsage: "<run-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "out",
						Usage:    "output .xlsx path",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "database path",
					},
				},
				Action: exportAction,
			},
			{
				Name:  "runs",
				Usage: "list stored extraction runs",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "maximum runs to list",
						Value: 20,
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "database path",
					},
				},
				Action: runsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("quiet") {
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveConfig loads the config file and applies flag overrides.
func resolveConfig(c *cli.Context) (Config, error) {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("threshold") {
		cfg.DetectionThreshold = c.Float64("threshold")
	}
	if c.IsSet("ocr") {
		cfg.OCR.Enabled = c.Bool("ocr")
	}
	if c.IsSet("ocr-language") {
		cfg.OCR.Language = c.String("ocr-language")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	return cfg, nil
}

func extractAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: pdftables extract <fixture.json>")
	}
	logger := newLogger(c)

	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}

	source, err := loadFixture(c.Args().First(), cfg.DetectionThreshold)
	if err != nil {
		return err
	}

	extractor := pdftables.New(source, source, source).
		Workers(cfg.Workers).
		Logger(logger)

	if cfg.OCR.Enabled {
		client, err := ocr.New()
		if err != nil {
			logger.Warn("OCR unavailable, continuing without it", "error", err)
		} else {
			defer client.Close()
			if err := client.SetLanguage(cfg.OCR.Language); err != nil {
				return fmt.Errorf("failed to set OCR language: %w", err)
			}
			extractor = extractor.WithOCR(client.Recognize).OCRWorkers(cfg.OCR.Workers)
		}
	}

	result, warnings, err := extractor.Extract(c.Context, source.SourceFile())
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn("extraction warning", "code", string(w.Code), "page", w.Page, "message", w.Message)
	}

	if c.Bool("save") {
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		runID, err := db.SaveResult(c.Context, result)
		if err != nil {
			return fmt.Errorf("failed to save result: %w", err)
		}
		logger.Info("result saved", "run_id", runID, "tables", len(result.Tables))
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if path := c.String("out"); path != "" {
		return os.WriteFile(path, append(out, '\n'), 0o644)
	}
	fmt.Println(string(out))
	return nil
}

func exportAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: pdftables export <run-id> --out <file.xlsx>")
	}
	runID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", c.Args().First())
	}

	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	tables, err := db.RunTables(c.Context, runID)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		return fmt.Errorf("run %d has no tables", runID)
	}

	data, err := export.ResultsXLSX(tables)
	if err != nil {
		return err
	}

	out := c.String("out")
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	fmt.Printf("Exported %d table(s) from run %d to %s\n", len(tables), runID, out)
	return nil
}

func runsAction(c *cli.Context) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-8s %-8s %-30s\n", "ID", "Created", "OK", "Tables", "Source")
	fmt.Println(strings.Repeat("-", 76))
	for _, r := range runs {
		ok := "yes"
		if !r.Success {
			ok = "no"
		}
		fmt.Printf("%-6d %-20s %-8s %-8d %-30s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), ok, r.NumTables, r.SourceFile)
	}
	fmt.Printf("\nTotal: %d run(s)\n", len(runs))
	return nil
}

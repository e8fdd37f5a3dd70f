// cmd/optimize/main.go
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/ternaklab/farmstock/internal/cache"
	"github.com/ternaklab/farmstock/internal/config"
	"github.com/ternaklab/farmstock/internal/export"
	"github.com/ternaklab/farmstock/internal/repository/postgres"
	"github.com/ternaklab/farmstock/internal/service"
	"github.com/ternaklab/farmstock/internal/storage"
	"github.com/ternaklab/farmstock/pkg/logger"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "optimize",
		Usage: "Run inventory forecasting and replenishment optimization",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Optimize every inventory item and write the report",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "output-dir",
						Usage:   "Directory to write CSV and JSON reports into",
						Value:   "./reports",
						EnvVars: []string{"REPORT_OUTPUT_DIR"},
					},
					&cli.BoolFlag{
						Name:  "publish",
						Usage: "Upload the CSV report to object storage",
						Value: false,
					},
					&cli.BoolFlag{
						Name:  "refresh",
						Usage: "Drop cached reports before running",
						Value: false,
					},
				},
				Action: runOptimization,
			},
			{
				Name:  "reports",
				Usage: "Browse reports published to object storage",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List published report objects",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "prefix",
								Usage: "Object key prefix to list under",
								Value: "reports/",
							},
						},
						Action: listReports,
					},
					{
						Name:  "fetch",
						Usage: "Download a published report",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "key",
								Usage:    "Object key of the report to download",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "out",
								Usage: "Destination path (defaults to the object's base name)",
							},
						},
						Action: fetchReport,
					},
				},
			},
			{
				Name:  "forecast",
				Usage: "Forecast demand for a single inventory item",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.Int64Flag{
						Name:     "item",
						Usage:    "Inventory item ID",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "horizon",
						Usage: "Forecast horizon in days (0 uses the configured default)",
						Value: 0,
					},
				},
				Action: runForecast,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openRepo(c *cli.Context) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func runOptimization(c *cli.Context) error {
	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)

	db, err := openRepo(c)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := postgres.NewInventoryRepository(db)

	var store storage.ObjectStorage
	if c.Bool("publish") {
		store, err = storage.NewMinioClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("publish requested but storage unavailable: %w", err)
		}
	}

	svc := service.NewOptimizationService(repo, cfg.Engine, cache.NewReportCache(cfg.Cache), store)

	if c.Bool("refresh") {
		if err := svc.InvalidateReports(c.Context); err != nil {
			return err
		}
	}

	report, err := svc.RunAndPublish(c.Context)
	if err != nil {
		return fmt.Errorf("optimization run failed: %w", err)
	}

	outputDir := c.String("output-dir")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed creating output directory: %w", err)
	}

	stamp := report.GeneratedAt.Format("20060102")

	csvPath := filepath.Join(outputDir, fmt.Sprintf("optimization_%s.csv", stamp))
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed creating %s: %w", csvPath, err)
	}
	if err := export.WriteOptimizationCSV(csvFile, report); err != nil {
		csvFile.Close()
		return fmt.Errorf("failed writing csv report: %w", err)
	}
	if err := csvFile.Close(); err != nil {
		return fmt.Errorf("failed closing %s: %w", csvPath, err)
	}

	jsonPath := filepath.Join(outputDir, fmt.Sprintf("optimization_%s.json", stamp))
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed encoding json report: %w", err)
	}
	if err := os.WriteFile(jsonPath, payload, 0o644); err != nil {
		return fmt.Errorf("failed writing %s: %w", jsonPath, err)
	}

	log.Printf("Optimized %d items (%d excluded), reports written to %s and %s",
		len(report.Items), len(report.Excluded), csvPath, jsonPath)
	return nil
}

func listReports(c *cli.Context) error {
	cfg := config.Load()

	store, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage unavailable: %w", err)
	}

	objects, err := store.ListObjects(c.Context, c.String("prefix"))
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		log.Printf("no reports under prefix %q", c.String("prefix"))
		return nil
	}

	for _, obj := range objects {
		fmt.Printf("%10d  %s\n", obj.Size, obj.Key)
	}
	return nil
}

func fetchReport(c *cli.Context) error {
	cfg := config.Load()

	store, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage unavailable: %w", err)
	}

	key := c.String("key")
	dest := c.String("out")
	if dest == "" {
		dest = filepath.Base(key)
	}

	if err := store.DownloadObject(c.Context, key, dest); err != nil {
		return err
	}

	log.Printf("downloaded %s to %s", key, dest)
	return nil
}

func runForecast(c *cli.Context) error {
	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)

	db, err := openRepo(c)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := postgres.NewInventoryRepository(db)
	svc := service.NewForecastService(repo, cfg.Engine, cache.NewReportCache(cfg.Cache))

	report, err := svc.GetForecast(c.Context, c.Int64("item"), c.Int("horizon"))
	if err != nil {
		return fmt.Errorf("forecast failed: %w", err)
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed encoding forecast: %w", err)
	}
	fmt.Println(string(payload))
	return nil
}

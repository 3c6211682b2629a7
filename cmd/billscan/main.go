package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lodgeworks/utility-bills-tracker/internal/common"
	"github.com/lodgeworks/utility-bills-tracker/internal/export"
	"github.com/lodgeworks/utility-bills-tracker/internal/ingest"
	"github.com/lodgeworks/utility-bills-tracker/internal/pipeline"
	"github.com/lodgeworks/utility-bills-tracker/internal/registry"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	cfg := common.LoadConfig()

	// Parse CLI flags; flags win over environment values.
	var (
		dir        = flag.String("dir", cfg.Paths.InputDir, "directory to process bill PDFs from (required)")
		accomm     = flag.String("accommodations", cfg.Paths.AccommodationsXLSX, "accommodations workbook path")
		exceptions = flag.String("exceptions", cfg.Paths.ExceptionsJSON, "exception rules JSON path")
		paidDB     = flag.String("paid-db", cfg.Paths.PaidBillsDB, "paid-bill history SQLite path")
		out        = flag.String("out", "", "output XLSX file path (defaults to the export directory)")
		recordPaid = flag.Bool("record-paid", cfg.Run.RecordPaid, "record accepted bills into the paid-bill history")
	)
	flag.Parse()

	cfg.Paths.InputDir = *dir
	cfg.Paths.AccommodationsXLSX = *accomm
	cfg.Paths.ExceptionsJSON = *exceptions
	cfg.Paths.PaidBillsDB = *paidDB
	cfg.Run.RecordPaid = *recordPaid
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if *out == "" {
		name := fmt.Sprintf("output_%s.xlsx", time.Now().Format("2006-01-02.15.04.05"))
		*out = filepath.Join(cfg.Paths.ExportDir, name)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Logging.Level),
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Run.Timeout)
	defer cancel()

	if err := run(ctx, logger, cfg, *out); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *common.Config, outPath string) error {
	// A registry that cannot load aborts the batch; everything after
	// this point degrades per document instead.
	accommodations, err := registry.LoadAccommodationsXLSX(cfg.Paths.AccommodationsXLSX, logger)
	if err != nil {
		return common.NewAppError("REGISTRY_ERROR", "accommodation registry", err)
	}
	exceptions, err := registry.LoadExceptionsJSON(cfg.Paths.ExceptionsJSON, logger)
	if err != nil {
		return common.NewAppError("REGISTRY_ERROR", "exception registry", err)
	}
	paid, err := registry.OpenPaidBills(ctx, cfg.Paths.PaidBillsDB, logger)
	if err != nil {
		return common.NewAppError("REGISTRY_ERROR", "paid-bill registry", err)
	}
	defer paid.Close()

	// A brand-new history database starts from the historic workbook.
	if paid.Count() == 0 {
		if err := paid.SeedFromHistoric(ctx, cfg.Paths.HistoricXLSX); err != nil {
			return common.WrapError(err, "seed paid-bill history")
		}
	}

	docs, _, err := ingest.ScanDirectory(ctx, cfg.Paths.InputDir, logger)
	if err != nil {
		return common.WrapError(err, "scan input directory")
	}

	reconciler, err := pipeline.NewReconciler(accommodations, paid, exceptions, logger)
	if err != nil {
		return err
	}
	result := reconciler.Process(docs)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return common.WrapError(err, "create export directory")
	}

	svc := export.NewService(logger)
	if err := svc.WriteResults(outPath, result, paid.Count()+1); err != nil {
		return common.WrapError(err, "write results")
	}
	if err := svc.AppendAccounting(cfg.Paths.AccountingXLSX, result.Accepted); err != nil {
		return common.WrapError(err, "append accounting summary")
	}
	if err := svc.AppendHistoric(cfg.Paths.HistoricXLSX, result.Accepted); err != nil {
		return common.WrapError(err, "append historic database")
	}

	if cfg.Run.RecordPaid && len(result.Accepted) > 0 {
		if err := paid.Record(ctx, result.Accepted); err != nil {
			return common.WrapError(err, "record paid bills")
		}
	}

	logger.Info("summary",
		"accepted", len(result.Accepted),
		"no_accommodation", len(result.NotFound),
		"errors", len(result.Errors),
		"expired", len(result.Expired),
		"duplicates", len(result.Duplicates),
		"ignored", len(result.Ignored),
		"output", outPath,
	)
	return nil
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

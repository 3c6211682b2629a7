package registry

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite"

	"github.com/lodgeworks/utility-bills-tracker/constants"
	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

// PaidBillRegistry answers whether a bill was already paid in a previous
// run. Lookups are in-memory; the backing store is read once at startup.
type PaidBillRegistry interface {
	Get(provider constants.Provider, service constants.ServiceType, accommodationID, documentID string) *entity.PaidBill
	// Count is the number of historic records; result numbering in the
	// reports continues from it.
	Count() int
}

type paidKey struct {
	provider        constants.Provider
	service         constants.ServiceType
	accommodationID string
	documentID      string
}

// PaidBills is the SQLite-backed paid-bill history. All rows are loaded
// into memory when opened, so pipeline lookups never touch the database.
type PaidBills struct {
	db     *sql.DB
	byKey  map[paidKey]*entity.PaidBill
	logger *slog.Logger
}

const paidSchema = `
CREATE TABLE IF NOT EXISTS paid_bills (
	provider         TEXT NOT NULL,
	service_type     TEXT NOT NULL,
	accommodation_id TEXT NOT NULL,
	document_id      TEXT NOT NULL,
	original_file_id TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (provider, service_type, accommodation_id, document_id)
);`

// OpenPaidBills opens (creating if needed) the history database at path
// and loads every record into memory.
func OpenPaidBills(ctx context.Context, path string, logger *slog.Logger) (*PaidBills, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open paid-bill database: %w", err)
	}
	if _, err := db.ExecContext(ctx, paidSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init paid-bill schema: %w", err)
	}

	r := &PaidBills{db: db, byKey: map[paidKey]*entity.PaidBill{}, logger: logger}
	if err := r.loadAll(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("registry.paidbills.loaded", "count", len(r.byKey), "path", path)
	return r, nil
}

func (r *PaidBills) loadAll(ctx context.Context) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT provider, service_type, accommodation_id, document_id, original_file_id FROM paid_bills`)
	if err != nil {
		return fmt.Errorf("load paid bills: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var providerName, serviceName string
		rec := &entity.PaidBill{}
		if err := rows.Scan(&providerName, &serviceName, &rec.AccommodationID, &rec.DocumentID, &rec.OriginalFileID); err != nil {
			return fmt.Errorf("scan paid bill: %w", err)
		}
		rec.Provider, _ = constants.ParseProvider(providerName)
		rec.ServiceType, _ = constants.ParseServiceType(serviceName)
		r.byKey[paidKey{rec.Provider, rec.ServiceType, rec.AccommodationID, rec.DocumentID}] = rec
	}
	return rows.Err()
}

// Get returns the paid record for the key, or nil.
func (r *PaidBills) Get(provider constants.Provider, service constants.ServiceType, accommodationID, documentID string) *entity.PaidBill {
	return r.byKey[paidKey{provider, service, accommodationID, documentID}]
}

// Count returns the number of historic records.
func (r *PaidBills) Count() int { return len(r.byKey) }

// Record inserts newly accepted bills into the history after a run, so
// the next run sees them as paid.
func (r *PaidBills) Record(ctx context.Context, accepted []entity.Accepted) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin paid-bill insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO paid_bills (provider, service_type, accommodation_id, document_id, original_file_id)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare paid-bill insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range accepted {
		b := a.Bill
		if _, err := stmt.ExecContext(ctx, b.Provider.String(), b.ServiceType.String(), b.AccommodationID, b.DocumentID, a.File.SourceID); err != nil {
			return fmt.Errorf("insert paid bill %s/%s: %w", b.AccommodationID, b.DocumentID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit paid-bill insert: %w", err)
	}
	r.logger.Info("registry.paidbills.recorded", "count", len(accepted))
	return nil
}

// Column positions in the historic "Database" sheet.
const (
	historicColAccommodation = 2
	historicColProvider      = 5
	historicColService       = 6
	historicColDocument      = 13
	historicColOriginalFile  = 21
)

// SeedFromHistoric imports the historic XLSX database into the history,
// so a fresh SQLite file starts with the workbook's paid records. A
// missing workbook is not an error.
func (r *PaidBills) SeedFromHistoric(ctx context.Context, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open historic workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Database")
	if err != nil {
		return fmt.Errorf("read historic sheet: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin historic seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO paid_bills (provider, service_type, accommodation_id, document_id, original_file_id)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare historic seed: %w", err)
	}
	defer stmt.Close()

	seeded := 0
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		providerName := historicCell(row, historicColProvider)
		serviceName := historicCell(row, historicColService)
		accommodationID := historicCell(row, historicColAccommodation)
		documentID := historicCell(row, historicColDocument)

		provider, okP := constants.ParseProvider(providerName)
		service, okS := constants.ParseServiceType(serviceName)
		if !okP || !okS || accommodationID == "" || documentID == "" {
			r.logger.Warn("registry.paidbills.seed.skipped", "row", i+1,
				"provider", providerName, "service", serviceName)
			continue
		}

		if _, err := stmt.ExecContext(ctx, provider.String(), service.String(),
			accommodationID, documentID, historicCell(row, historicColOriginalFile)); err != nil {
			return fmt.Errorf("seed paid bill %s/%s: %w", accommodationID, documentID, err)
		}
		seeded++
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit historic seed: %w", err)
	}

	r.byKey = map[paidKey]*entity.PaidBill{}
	if err := r.loadAll(ctx); err != nil {
		return err
	}
	r.logger.Info("registry.paidbills.seeded", "rows", seeded, "path", path)
	return nil
}

func historicCell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}

// Close releases the backing database.
func (r *PaidBills) Close() error { return r.db.Close() }

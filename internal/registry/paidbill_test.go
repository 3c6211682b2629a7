package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/lodgeworks/utility-bills-tracker/constants"
	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

func TestPaidBillsRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "paid.db")

	r, err := OpenPaidBills(ctx, path, nil)
	if err != nil {
		t.Fatalf("OpenPaidBills: %v", err)
	}
	if r.Count() != 0 {
		t.Fatalf("Count: got %d, want 0 for a fresh database", r.Count())
	}

	amount := 45.67
	accepted := []entity.Accepted{
		{
			File: entity.NewFileRef("src-1", "bill.pdf"),
			Bill: &entity.Bill{
				Provider:        constants.ProviderEDP,
				ServiceType:     constants.ServiceElectricity,
				DocumentID:      "FT2024/001",
				AccommodationID: "APT_1",
				Amount:          &amount,
			},
		},
	}
	if err := r.Record(ctx, accepted); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopen: the record must survive and load back into memory.
	r, err = OpenPaidBills(ctx, path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r.Close()

	if r.Count() != 1 {
		t.Fatalf("Count: got %d, want 1", r.Count())
	}
	rec := r.Get(constants.ProviderEDP, constants.ServiceElectricity, "APT_1", "FT2024/001")
	if rec == nil {
		t.Fatal("Get: record not found after reopen")
	}
	if rec.OriginalFileID != "src-1" {
		t.Errorf("OriginalFileID: got %q, want %q", rec.OriginalFileID, "src-1")
	}

	if r.Get(constants.ProviderEDP, constants.ServiceElectricity, "APT_2", "FT2024/001") != nil {
		t.Error("Get: accommodation mismatch must not match")
	}
	if r.Get(constants.ProviderGalp, constants.ServiceElectricity, "APT_1", "FT2024/001") != nil {
		t.Error("Get: provider mismatch must not match")
	}
}

func TestPaidBillsRecordIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r, err := OpenPaidBills(ctx, filepath.Join(t.TempDir(), "paid.db"), nil)
	if err != nil {
		t.Fatalf("OpenPaidBills: %v", err)
	}
	defer r.Close()

	accepted := []entity.Accepted{
		{
			File: entity.NewFileRef("src-1", "bill.pdf"),
			Bill: &entity.Bill{
				Provider:        constants.ProviderNOS,
				ServiceType:     constants.ServiceTelecom,
				DocumentID:      "FT1",
				AccommodationID: "APT_1",
			},
		},
	}
	if err := r.Record(ctx, accepted); err != nil {
		t.Fatalf("Record: %v", err)
	}
	// Same key again: the insert is INSERT OR IGNORE.
	if err := r.Record(ctx, accepted); err != nil {
		t.Fatalf("Record (repeat): %v", err)
	}
}

// historicRow builds a full-width "Database" sheet row with the lookup
// columns filled in.
func historicRow(accommodation, provider, service, document, originalFile string) []any {
	row := make([]any, 23)
	for i := range row {
		row[i] = ""
	}
	row[2] = accommodation
	row[5] = provider
	row[6] = service
	row[13] = document
	row[21] = originalFile
	return row
}

func writeHistoricWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	if _, err := f.NewSheet("Database"); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	header := historicRow("Accommodation", "Provider", "Service Type", "Document", "Original File")
	all := append([][]any{header}, rows...)
	for i, row := range all {
		if err := f.SetSheetRow("Database", fmt.Sprintf("A%d", i+1), &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
}

func TestPaidBillsSeedFromHistoric(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	workbook := filepath.Join(dir, "historic.xlsx")
	writeHistoricWorkbook(t, workbook, [][]any{
		historicRow("APT_1", "EDP", "ELECTRICITY", "FT2024/001", "src-1"),
		historicRow("APT_2", "NOS", "TELECOM", "FT2024/002", "src-2"),
		historicRow("APT_3", "UNKNOWN_PROVIDER", "ELECTRICITY", "FT2024/003", "src-3"),
		historicRow("APT_4", "EDP", "ELECTRICITY", "", "src-4"),
	})

	r, err := OpenPaidBills(ctx, filepath.Join(dir, "paid.db"), nil)
	if err != nil {
		t.Fatalf("OpenPaidBills: %v", err)
	}
	defer r.Close()

	if err := r.SeedFromHistoric(ctx, workbook); err != nil {
		t.Fatalf("SeedFromHistoric: %v", err)
	}

	// Unknown-provider and empty-document rows are skipped.
	if r.Count() != 2 {
		t.Fatalf("Count: got %d, want 2", r.Count())
	}
	rec := r.Get(constants.ProviderEDP, constants.ServiceElectricity, "APT_1", "FT2024/001")
	if rec == nil {
		t.Fatal("Get: seeded record not found")
	}
	if rec.OriginalFileID != "src-1" {
		t.Errorf("OriginalFileID: got %q, want %q", rec.OriginalFileID, "src-1")
	}
	if r.Get(constants.ProviderNOS, constants.ServiceTelecom, "APT_2", "FT2024/002") == nil {
		t.Error("Get: second seeded record not found")
	}

	// Re-seeding the same workbook is idempotent.
	if err := r.SeedFromHistoric(ctx, workbook); err != nil {
		t.Fatalf("SeedFromHistoric (repeat): %v", err)
	}
	if r.Count() != 2 {
		t.Errorf("Count after re-seed: got %d, want 2", r.Count())
	}
}

func TestPaidBillsSeedFromHistoricMissingFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	r, err := OpenPaidBills(ctx, filepath.Join(dir, "paid.db"), nil)
	if err != nil {
		t.Fatalf("OpenPaidBills: %v", err)
	}
	defer r.Close()

	if err := r.SeedFromHistoric(ctx, filepath.Join(dir, "nope.xlsx")); err != nil {
		t.Fatalf("SeedFromHistoric on a missing workbook: %v", err)
	}
	if r.Count() != 0 {
		t.Errorf("Count: got %d, want 0", r.Count())
	}
}

package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lodgeworks/utility-bills-tracker/constants"
	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

func TestAccommodationsGet(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	list := []*entity.Accommodation{
		{ID: "APT_1", Provider: constants.ProviderEDP, ClientID: "C1", ContractID: "K1", ServiceStart: start},
		{ID: "APT_2", Provider: constants.ProviderEDP, ClientID: "C2", ServiceStart: start},
		{ID: "APT_3", Provider: constants.ProviderNOS, AccountID: "A3", ServiceStart: start},
		{ID: "APT_4", Provider: constants.ProviderEPAL, Location: "RuaB2", InstallationID: "I4", ServiceStart: start},
	}
	r := NewAccommodations(list, nil)

	tests := []struct {
		name         string
		provider     constants.Provider
		client       string
		account      string
		contract     string
		location     string
		installation string
		expectedID   string
	}{
		{name: "client id match", provider: constants.ProviderEDP, client: "C2", expectedID: "APT_2"},
		{name: "contract id match", provider: constants.ProviderEDP, contract: "K1", expectedID: "APT_1"},
		{name: "account id match", provider: constants.ProviderNOS, account: "A3", expectedID: "APT_3"},
		{name: "location match", provider: constants.ProviderEPAL, location: "RuaB2", expectedID: "APT_4"},
		{name: "installation match", provider: constants.ProviderEPAL, installation: "I4", expectedID: "APT_4"},
		{name: "provider must also match", provider: constants.ProviderGalp, client: "C1"},
		{name: "any one matching pair suffices", provider: constants.ProviderEDP, client: "C1", contract: "other", expectedID: "APT_1"},
		{name: "empty keys never match", provider: constants.ProviderNOS},
		{name: "no match", provider: constants.ProviderEDP, client: "C9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Get(tt.provider, tt.client, tt.account, tt.contract, tt.location, tt.installation)
			if tt.expectedID == "" {
				if got != nil {
					t.Errorf("Get: got %q, want nil", got.ID)
				}
				return
			}
			if got == nil {
				t.Fatalf("Get: got nil, want %q", tt.expectedID)
			}
			if got.ID != tt.expectedID {
				t.Errorf("Get: got %q, want %q", got.ID, tt.expectedID)
			}
		})
	}
}

func TestAccommodationsGetFirstWins(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewAccommodations([]*entity.Accommodation{
		{ID: "APT_1", Provider: constants.ProviderEDP, ClientID: "C1", ServiceStart: start},
		{ID: "APT_2", Provider: constants.ProviderEDP, ClientID: "C1", ServiceStart: start},
	}, nil)

	got := r.Get(constants.ProviderEDP, "C1", "", "", "", "")
	if got == nil || got.ID != "APT_1" {
		t.Errorf("Get: got %v, want the first loaded accommodation", got)
	}
}

func writeAccommodationsWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(accSheetName); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	header := []any{"ID", "Provider", "Client", "Account", "Contract", "Location",
		"Installation", "Service Start", "Closed Through", "Folder", "Accounting Folder", "Accounting Services"}
	for i, row := range append([][]any{header}, rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(accSheetName, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "accommodations.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestLoadAccommodationsXLSX(t *testing.T) {
	path := writeAccommodationsWorkbook(t, [][]any{
		{"APT_1", "EDP", "C1", "", "K1", "RuaA1", "", "2020-01-01", "2021-12-31", "fld-1", "acct-1", "ELECTRICITY"},
		{"APT_2", "WATER_GAIA", "123", "", "", "", "", "02/03/2021", "", "fld-2", "", ""},
		{"", "EDP", "ignored", "", "", "", "", "2020-01-01", "", "", "", ""},
		{"APT_3", "NOT_A_PROVIDER", "", "", "", "", "", "2020-01-01", "", "", "", ""},
		{"APT_4", "EDP", "", "", "", "", "", "never", "", "", "", ""},
	})

	r, err := LoadAccommodationsXLSX(path, nil)
	if err != nil {
		t.Fatalf("LoadAccommodationsXLSX: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len: got %d, want 2 (bad rows are skipped)", r.Len())
	}

	a := r.Get(constants.ProviderEDP, "C1", "", "", "", "")
	if a == nil {
		t.Fatal("Get: APT_1 not found")
	}
	if a.ID != "APT_1" || a.ContractID != "K1" || a.Location != "RuaA1" {
		t.Errorf("fields: got %+v", a)
	}
	if !a.ServiceStart.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ServiceStart: got %v", a.ServiceStart)
	}
	if a.ClosedThrough == nil || !a.ClosedThrough.Equal(time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ClosedThrough: got %v", a.ClosedThrough)
	}
	if a.FolderID != "fld-1" || a.AccountingFolderID != "acct-1" {
		t.Errorf("folders: got %q / %q", a.FolderID, a.AccountingFolderID)
	}
	if !a.MustAccounting(constants.ServiceElectricity) {
		t.Error("MustAccounting: electricity should be flagged")
	}
	if a.MustAccounting(constants.ServiceWater) {
		t.Error("MustAccounting: water should not be flagged")
	}

	b := r.Get(constants.ProviderWaterGaia, "123", "", "", "", "")
	if b == nil {
		t.Fatal("Get: APT_2 not found")
	}
	if !b.ServiceStart.Equal(time.Date(2021, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ServiceStart: got %v", b.ServiceStart)
	}
	if b.ClosedThrough != nil {
		t.Errorf("ClosedThrough: got %v, want nil", b.ClosedThrough)
	}
}

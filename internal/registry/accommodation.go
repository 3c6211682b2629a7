package registry

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lodgeworks/utility-bills-tracker/constants"
	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

// AccommodationRegistry resolves the accommodation a bill belongs to.
// Implementations are read-only during a run.
type AccommodationRegistry interface {
	// Get matches by provider plus any one of the identity keys; nil when
	// no accommodation matches.
	Get(provider constants.Provider, clientID, accountID, contractID, location, installationID string) *entity.Accommodation
}

// Accommodations is the in-memory registry, loaded once at startup.
type Accommodations struct {
	list   []*entity.Accommodation
	logger *slog.Logger
}

func NewAccommodations(list []*entity.Accommodation, logger *slog.Logger) *Accommodations {
	if logger == nil {
		logger = slog.Default()
	}
	return &Accommodations{list: list, logger: logger}
}

// Get scans the registry in load order. A key pair only matches when it
// is non-empty on both sides; the first accommodation with any matching
// pair wins.
func (r *Accommodations) Get(provider constants.Provider, clientID, accountID, contractID, location, installationID string) *entity.Accommodation {
	for _, a := range r.list {
		if a.Provider != provider {
			continue
		}
		pairs := [...][2]string{
			{a.ClientID, clientID},
			{a.AccountID, accountID},
			{a.ContractID, contractID},
			{a.Location, location},
			{a.InstallationID, installationID},
		}
		for _, p := range pairs {
			if p[0] != "" && p[1] != "" && p[0] == p[1] {
				return a
			}
		}
	}
	return nil
}

// Len returns the number of loaded accommodations.
func (r *Accommodations) Len() int { return len(r.list) }

const accSheetName = "Accommodations"

// Column layout of the accommodations workbook.
const (
	accColID = iota
	accColProvider
	accColClient
	accColAccount
	accColContract
	accColLocation
	accColInstallation
	accColServiceStart
	accColClosedThrough
	accColFolder
	accColAccountingFolder
	accColAccountingServices
)

// LoadAccommodationsXLSX reads the accommodations workbook. The first
// row is a header. Rows without an id or an unknown provider are skipped
// with a warning rather than aborting the load.
func LoadAccommodationsXLSX(path string, logger *slog.Logger) (*Accommodations, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open accommodations workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(accSheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", accSheetName, err)
	}

	var list []*entity.Accommodation
	for i, row := range rows {
		if i == 0 {
			continue
		}
		cell := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		id := cell(accColID)
		if id == "" {
			continue
		}
		provider, ok := constants.ParseProvider(cell(accColProvider))
		if !ok {
			logger.Warn("registry.accommodations.unknown_provider", "row", i+1, "provider", cell(accColProvider))
			continue
		}
		start, err := parseSheetDate(cell(accColServiceStart))
		if err != nil {
			logger.Warn("registry.accommodations.bad_start_date", "row", i+1, "value", cell(accColServiceStart))
			continue
		}

		acc := &entity.Accommodation{
			ID:                 id,
			Provider:           provider,
			ClientID:           cell(accColClient),
			AccountID:          cell(accColAccount),
			ContractID:         cell(accColContract),
			Location:           cell(accColLocation),
			InstallationID:     cell(accColInstallation),
			ServiceStart:       start,
			FolderID:           cell(accColFolder),
			AccountingFolderID: cell(accColAccountingFolder),
			AlwaysAccounting:   map[constants.ServiceType]bool{},
		}

		if raw := cell(accColClosedThrough); raw != "" {
			closed, err := parseSheetDate(raw)
			if err != nil {
				logger.Warn("registry.accommodations.bad_closed_date", "row", i+1, "value", raw)
			} else {
				acc.ClosedThrough = &closed
			}
		}
		for _, name := range strings.Split(cell(accColAccountingServices), ";") {
			if s, ok := constants.ParseServiceType(strings.TrimSpace(name)); ok {
				acc.AlwaysAccounting[s] = true
			}
		}

		list = append(list, acc)
	}

	logger.Info("registry.accommodations.loaded", "count", len(list), "path", path)
	return NewAccommodations(list, logger), nil
}

var sheetDateLayouts = []string{"2006-01-02", "02/01/2006", "2006/01/02"}

func parseSheetDate(raw string) (time.Time, error) {
	for _, layout := range sheetDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

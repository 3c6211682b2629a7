// Package export writes the run results as XLSX workbooks: one results
// workbook with a sheet per outcome list, an accounting summary that
// accumulates across runs, and the historic database of accepted bills.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

// Service produces the XLSX outputs of a run.
type Service struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, now: time.Now}
}

var processedHeaders = []string{
	"N.", "Accounting", "Accommodation", "Issue Year", "Issue Month",
	"Provider", "Service Type", "Document Type", "Contract", "Client",
	"Taxpayer", "Location", "Installation", "Document",
	"Reference Period", "Reference Start", "Reference End",
	"Issue Date", "Due Date", "Amount", "Output File", "Original File",
	"Processed At",
}

var rejectedHeaders = []string{
	"Provider", "Service Type", "Document Type", "Contract", "Client",
	"Taxpayer", "Location", "Installation", "Document",
	"Reference Period", "Reference Start", "Reference End",
	"Issue Date", "Due Date", "Amount", "Tag", "Original File",
}

var duplicatedHeaders = []string{
	"Accommodation", "Provider", "Service Type", "Document Type",
	"Contract", "Client", "Taxpayer", "Document", "Issue Date",
	"Due Date", "Amount", "Tag", "Paid File", "Original File",
}

var ignoredHeaders = []string{"Tag", "Original File"}

var accountingHeaders = []string{
	"Date", "Accommodation", "Category", "Description", "Amount", "Original File", "Processed At",
}

// WriteResults writes the six-sheet results workbook for one run.
// startNumber continues the result numbering from the paid-bill history.
func (s *Service) WriteResults(path string, result *entity.BatchResult, startNumber int) error {
	sortOutcomes(result)

	f := excelize.NewFile()
	defer f.Close()

	processedAt := s.now().Format("2006/01/02.15:04:05")

	var processedRows [][]any
	for i, a := range result.Accepted {
		b := a.Bill
		processedRows = append(processedRows, []any{
			startNumber + i, yesNo(b.IsAccounting), b.AccommodationID,
			issueYear(b), issueMonth(b),
			b.Provider.String(), b.ServiceType.String(), b.DocumentType.String(),
			b.ContractID, b.ClientID, b.TaxpayerID,
			b.ConsumptionLocation, b.InstallationID, b.DocumentID,
			b.ReferencePeriod, b.RawRefStart, b.RawRefEnd,
			b.RawIssueDate, b.RawDueDate, amountCell(b),
			a.OutputName, a.File.Name, processedAt,
		})
	}
	if err := writeSheet(f, "Processed", processedHeaders, processedRows); err != nil {
		return err
	}

	if err := writeSheet(f, "No Accommodation", rejectedHeaders, rejectedRows(result.NotFound)); err != nil {
		return err
	}
	if err := writeSheet(f, "Errors", rejectedHeaders, rejectedRows(result.Errors)); err != nil {
		return err
	}
	if err := writeSheet(f, "Expired", rejectedHeaders, rejectedRows(result.Expired)); err != nil {
		return err
	}

	var duplicatedRows [][]any
	for _, d := range result.Duplicates {
		b := d.Bill
		duplicatedRows = append(duplicatedRows, []any{
			b.AccommodationID, b.Provider.String(), b.ServiceType.String(),
			b.DocumentType.String(), b.ContractID, b.ClientID, b.TaxpayerID,
			b.DocumentID, b.RawIssueDate, b.RawDueDate, amountCell(b),
			string(d.Tag), d.OriginalFileID, d.File.Name,
		})
	}
	if err := writeSheet(f, "Duplicated", duplicatedHeaders, duplicatedRows); err != nil {
		return err
	}

	var ignoredRows [][]any
	for _, ig := range result.Ignored {
		ignoredRows = append(ignoredRows, []any{string(ig.Tag), ig.File.Name})
	}
	if err := writeSheet(f, "Ignored", ignoredHeaders, ignoredRows); err != nil {
		return err
	}

	// excelize always creates Sheet1; drop it once the real sheets exist.
	_ = f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save results workbook: %w", err)
	}
	s.logger.Info("export.results.saved", "path", path, "documents", result.Total())
	return nil
}

// AppendAccounting appends one summary row per accepted bill to the
// accounting workbook, creating it on first use.
func (s *Service) AppendAccounting(path string, accepted []entity.Accepted) error {
	processedAt := s.now().Format("2006/01/02.15:04:05")

	var rows [][]any
	for _, a := range accepted {
		b := a.Bill
		date := b.RawDueDate
		if date == "" {
			date = b.RawIssueDate
		}
		rows = append(rows, []any{
			date, b.AccommodationID, b.ServiceType.Category(),
			b.ReferencePeriod, amountCell(b), a.File.Name, processedAt,
		})
	}
	return s.appendRows(path, "Accounting", accountingHeaders, rows)
}

// AppendHistoric appends accepted bills to the historic database
// workbook, creating it on first use.
func (s *Service) AppendHistoric(path string, accepted []entity.Accepted) error {
	processedAt := s.now().Format("2006/01/02.15:04:05")

	var rows [][]any
	for _, a := range accepted {
		b := a.Bill
		rows = append(rows, []any{
			"", yesNo(b.IsAccounting), b.AccommodationID,
			issueYear(b), issueMonth(b),
			b.Provider.String(), b.ServiceType.String(), b.DocumentType.String(),
			b.ContractID, b.ClientID, b.TaxpayerID,
			b.ConsumptionLocation, b.InstallationID, b.DocumentID,
			b.ReferencePeriod, b.RawRefStart, b.RawRefEnd,
			b.RawIssueDate, b.RawDueDate, amountCell(b),
			a.OutputName, a.File.Name, processedAt,
		})
	}
	return s.appendRows(path, "Database", processedHeaders, rows)
}

func (s *Service) appendRows(path, sheet string, headers []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	var f *excelize.File
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f = excelize.NewFile()
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		_ = f.DeleteSheet("Sheet1")
		if err := setRow(f, sheet, 1, toAny(headers)); err != nil {
			return err
		}
	} else {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return fmt.Errorf("open workbook %s: %w", path, err)
		}
	}
	defer f.Close()

	existing, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	next := len(existing) + 1

	for i, row := range rows {
		if err := setRow(f, sheet, next+i, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	s.logger.Info("export.appended", "path", path, "sheet", sheet, "rows", len(rows))
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, toAny(headers)); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// sortOutcomes orders every sheet by provider, matching the reading
// order accountants expect.
func sortOutcomes(result *entity.BatchResult) {
	sort.SliceStable(result.Accepted, func(i, j int) bool {
		return result.Accepted[i].Bill.Provider < result.Accepted[j].Bill.Provider
	})
	byProvider := func(list []entity.Rejected) {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Bill == nil || list[j].Bill == nil {
				return list[j].Bill != nil
			}
			return list[i].Bill.Provider < list[j].Bill.Provider
		})
	}
	byProvider(result.NotFound)
	byProvider(result.Errors)
	byProvider(result.Expired)
	sort.SliceStable(result.Duplicates, func(i, j int) bool {
		return result.Duplicates[i].Bill.Provider < result.Duplicates[j].Bill.Provider
	})
}

func rejectedRows(list []entity.Rejected) [][]any {
	var rows [][]any
	for _, r := range list {
		b := r.Bill
		if b == nil {
			rows = append(rows, []any{"", "", "", "", "", "", "", "", "", "", "", "", "", "", "", string(r.Tag), r.File.Name})
			continue
		}
		rows = append(rows, []any{
			b.Provider.String(), b.ServiceType.String(), b.DocumentType.String(),
			b.ContractID, b.ClientID, b.TaxpayerID,
			b.ConsumptionLocation, b.InstallationID, b.DocumentID,
			b.ReferencePeriod, b.RawRefStart, b.RawRefEnd,
			b.RawIssueDate, b.RawDueDate, amountCell(b),
			string(r.Tag), r.File.Name,
		})
	}
	return rows
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func issueYear(b *entity.Bill) string {
	if b.IssueDate == nil {
		return ""
	}
	return fmt.Sprintf("%d", b.IssueDate.Year())
}

func issueMonth(b *entity.Bill) string {
	if b.IssueDate == nil {
		return ""
	}
	return fmt.Sprintf("%02d", int(b.IssueDate.Month()))
}

func amountCell(b *entity.Bill) any {
	if b.Amount == nil {
		return ""
	}
	return *b.Amount
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

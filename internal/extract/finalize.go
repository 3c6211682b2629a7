package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lodgeworks/utility-bills-tracker/constants"
	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

// finalize whitespace-normalizes identity fields, resolves the reference
// period, and derives the typed date and amount fields from the raw
// strings an extractor captured. Extractors call it last; it never fails,
// it only leaves fields unset.
func finalize(b *entity.Bill) *entity.Bill {
	b.DocumentID = stripSpaces(b.DocumentID)
	b.ClientID = stripSpaces(b.ClientID)
	b.ContractID = stripSpaces(b.ContractID)
	b.TaxpayerID = stripSpaces(b.TaxpayerID)
	b.ConsumptionLocation = stripSpaces(b.ConsumptionLocation)
	b.RawAmount = CleanAmount(b.RawAmount)

	resolvePeriod(b)

	b.DueDate = ParseCanonicalDate(b.RawDueDate)
	b.IssueDate = ParseCanonicalDate(b.RawIssueDate)
	b.RefStart = ParseCanonicalDate(b.RawRefStart)
	b.RefEnd = ParseCanonicalDate(b.RawRefEnd)

	if b.RawAmount != "" {
		if v := ParseAmount(b.RawAmount); v != nil {
			if b.DocumentType == constants.DocCreditNote {
				neg := -*v
				b.Amount = &neg
			} else {
				b.Amount = v
				if *v == 0 && b.DocumentType == constants.DocConsumptionBill {
					b.DocumentType = constants.DocZeroedInvoice
				}
			}
		}
	}

	return b
}

// resolvePeriod normalizes the raw reference-period string. Two shapes
// are accepted: a tilde-separated start~end range of dates, and a
// "month-name/year" pair, for which the period end is synthesized from
// the last calendar day of that month.
func resolvePeriod(b *entity.Bill) {
	period := strings.TrimSpace(b.ReferencePeriod)
	period = strings.ReplaceAll(period, "-", "/")
	b.ReferencePeriod = period

	if parts := strings.Split(period, "~"); len(parts) == 2 {
		b.RawRefStart = NormalizeDate(strings.TrimSpace(parts[0]), YearMonthDay, false)
		b.RawRefEnd = NormalizeDate(strings.TrimSpace(parts[1]), YearMonthDay, false)
		return
	}

	parts := strings.Split(period, "/")
	if len(parts) != 2 {
		return
	}

	month := MonthNumber(parts[0])
	if month == 0 {
		b.ReferencePeriod = parts[1] + "/" + parts[0]
		return
	}

	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return
	}

	b.ReferencePeriod = fmt.Sprintf("%d/%d", year, month)
	b.RawRefStart = NormalizeDate(b.ReferencePeriod+"/1", YearMonthDay, false)
	b.RawRefEnd = NormalizeDate(fmt.Sprintf("%s/%d", b.ReferencePeriod, lastDayOfMonth(year, month)), YearMonthDay, false)
}

// detectDocumentType spots credit notes and invoice-detail pages from
// boilerplate in the folded text. Zeroed invoices are recognized later,
// from the parsed amount.
func detectDocumentType(text string) constants.DocumentType {
	if containsAny(text, "NOTA DE CREDITO", "Nota de Credito", "Nota de credito") {
		return constants.DocCreditNote
	}
	if containsAny(text, "DETALHE DA FATURA", "Detalhe da Fatura", "Detalhe da fatura") {
		return constants.DocInvoiceDetail
	}
	return constants.DocConsumptionBill
}

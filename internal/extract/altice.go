package extract

import (
	"github.com/lodgeworks/utility-bills-tracker/constants"
	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

// Altice/MEO telecom bills. MEO keys accounts by an account number
// rather than a contract; invoice-detail pages are frequent and must be
// recognized so the pipeline can skip them.
func extractAltice(text string) *entity.Bill {
	b := &entity.Bill{
		Provider:     constants.ProviderAltice,
		ServiceType:  constants.ServiceTelecom,
		DocumentType: detectDocumentType(text),
	}

	b.AccountID = anchoredLine(text, "N. de Conta:")
	b.ClientID = anchoredLine(text, "N. de Cliente:")
	b.TaxpayerID = anchoredLine(text, "NIF:")
	b.DocumentID = anchoredLine(text, "Fatura n.")
	b.ReferencePeriod = anchoredLine(text, "Periodo de Faturacao:")
	b.RawIssueDate = anchoredLine(text, "Data da Fatura:")
	b.RawDueDate = anchoredLine(text, "Data de Pagamento:")
	b.RawAmount = anchoredLine(text, "Total da Fatura:")

	b.RawIssueDate = NormalizeDate(b.RawIssueDate, DayMonthYear, true)
	b.RawDueDate = NormalizeDate(b.RawDueDate, DayMonthYear, true)

	return finalize(b)
}

package extract

import (
	"github.com/lodgeworks/utility-bills-tracker/constants"
	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

// NOS telecom bills.
func extractNOS(text string) *entity.Bill {
	b := &entity.Bill{
		Provider:     constants.ProviderNOS,
		ServiceType:  constants.ServiceTelecom,
		DocumentType: detectDocumentType(text),
	}

	b.ClientID = anchoredLine(text, "N. de Cliente:")
	b.AccountID = anchoredLine(text, "Conta n.")
	b.TaxpayerID = anchoredLine(text, "NIF:")
	b.DocumentID = anchoredLine(text, "Fatura n.")
	b.ReferencePeriod = anchoredLine(text, "Periodo de Faturacao:")
	b.RawIssueDate = anchoredLine(text, "Emitida a:")
	b.RawDueDate = anchoredLine(text, "Pagamento ate:")
	b.RawAmount = anchoredLine(text, "Valor Total:")

	b.RawIssueDate = NormalizeDate(b.RawIssueDate, DayMonthYear, false)
	b.RawDueDate = NormalizeDate(b.RawDueDate, DayMonthYear, false)

	return finalize(b)
}

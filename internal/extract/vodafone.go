package extract

import (
	"github.com/lodgeworks/utility-bills-tracker/constants"
	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

// Vodafone telecom bills. Dates are fixed-width DD/MM/YYYY on the same
// line as their label, so a character count beats a line-end marker.
func extractVodafone(text string) *entity.Bill {
	b := &entity.Bill{
		Provider:     constants.ProviderVodafone,
		ServiceType:  constants.ServiceTelecom,
		DocumentType: detectDocumentType(text),
	}

	b.ClientID = anchoredLine(text, "Codigo de Cliente:")
	b.AccountID = anchoredLine(text, "N. de Conta:")
	b.TaxpayerID = anchoredLine(text, "NIF:")
	b.DocumentID = anchoredLine(text, "Fatura n.")
	b.ReferencePeriod = anchoredLine(text, "Periodo de Faturacao:")
	b.RawIssueDate = anchored(text, "Data de Emissao: ", "", 10)
	b.RawDueDate = anchored(text, "Data Limite de Pagamento: ", "", 10)
	b.RawAmount = anchoredLine(text, "Total a Pagar:")

	b.RawIssueDate = NormalizeDate(b.RawIssueDate, DayMonthYear, false)
	b.RawDueDate = NormalizeDate(b.RawDueDate, DayMonthYear, false)

	return finalize(b)
}

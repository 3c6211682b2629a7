package extract

import (
	"github.com/lodgeworks/utility-bills-tracker/constants"
	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

// EPAL water bills (Lisbon). The supply point doubles as the consumption
// location; dates come dot-separated (DD.MM.YYYY).
func extractEPAL(text string) *entity.Bill {
	b := &entity.Bill{
		Provider:     constants.ProviderEPAL,
		ServiceType:  constants.ServiceWater,
		DocumentType: detectDocumentType(text),
	}

	b.ClientID = anchoredLine(text, "N. de Cliente:")
	b.ContractID = anchoredLine(text, "N. de Contrato:")
	b.TaxpayerID = anchoredLine(text, "NIF:")
	b.ConsumptionLocation = anchoredLine(text, "Local de Fornecimento:")
	b.DocumentID = anchoredLine(text, "Fatura N.")
	b.ReferencePeriod = anchoredLine(text, "Periodo de Faturacao:")
	b.RawIssueDate = anchoredLine(text, "Emitida em:")
	b.RawDueDate = anchoredLine(text, "Pagamento ate:")
	b.RawAmount = anchoredLine(text, "Valor a Pagar:")

	b.RawIssueDate = NormalizeDate(b.RawIssueDate, DayMonthYear, false)
	b.RawDueDate = NormalizeDate(b.RawDueDate, DayMonthYear, false)

	return finalize(b)
}

package extract

import (
	"github.com/lodgeworks/utility-bills-tracker/constants"
	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

// Águas do Porto water bills.
func extractWaterPorto(text string) *entity.Bill {
	b := &entity.Bill{
		Provider:     constants.ProviderWaterPorto,
		ServiceType:  constants.ServiceWater,
		DocumentType: detectDocumentType(text),
	}

	b.ClientID = anchoredLine(text, "Cliente:")
	b.ContractID = anchoredLine(text, "Contrato:")
	b.TaxpayerID = anchoredLine(text, "Contribuinte:")
	b.ConsumptionLocation = anchoredLine(text, "Local de Consumo:")
	b.DocumentID = anchoredLine(text, "Documento:")
	b.ReferencePeriod = anchoredLine(text, "Periodo de Consumo:")
	b.RawIssueDate = anchoredLine(text, "Data de Emissao:")
	b.RawDueDate = anchoredLine(text, "Data Limite de Pagamento:")
	b.RawAmount = anchoredLine(text, "Total a Pagar:")

	b.RawIssueDate = NormalizeDate(b.RawIssueDate, DayMonthYear, false)
	b.RawDueDate = NormalizeDate(b.RawDueDate, DayMonthYear, false)

	return finalize(b)
}

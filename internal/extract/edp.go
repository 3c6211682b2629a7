package extract

import (
	"github.com/lodgeworks/utility-bills-tracker/constants"
	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

// EDP electricity bills. Labeled fields, one per line, numeric DMY dates.
func extractEDP(text string) *entity.Bill {
	b := &entity.Bill{
		Provider:     constants.ProviderEDP,
		ServiceType:  constants.ServiceElectricity,
		DocumentType: detectDocumentType(text),
	}

	b.ClientID = anchoredLine(text, "N. de Cliente:")
	b.ContractID = anchoredLine(text, "N. de Contrato:")
	b.TaxpayerID = anchoredLine(text, "N. de Contribuinte:")
	b.ConsumptionLocation = anchoredLine(text, "Local de Consumo:")
	b.DocumentID = anchoredLine(text, "Fatura N.")
	b.ReferencePeriod = anchoredLine(text, "Periodo de Faturacao:")
	b.RawIssueDate = anchoredLine(text, "Data de Emissao:")
	b.RawDueDate = anchoredLine(text, "Data Limite de Pagamento:")
	b.RawAmount = anchoredLine(text, "Total a Pagar:")

	b.RawIssueDate = NormalizeDate(b.RawIssueDate, DayMonthYear, false)
	b.RawDueDate = NormalizeDate(b.RawDueDate, DayMonthYear, false)

	return finalize(b)
}

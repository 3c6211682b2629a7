package extract

import (
	"github.com/lodgeworks/utility-bills-tracker/constants"
	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

// Galp electricity/gas bills. Same line-per-field layout as EDP, but the
// issue date is written out with the month name.
func extractGalp(text string) *entity.Bill {
	b := &entity.Bill{
		Provider:     constants.ProviderGalp,
		ServiceType:  constants.ServiceElectricity,
		DocumentType: detectDocumentType(text),
	}

	b.ClientID = anchoredLine(text, "N. Cliente:")
	b.ContractID = anchoredLine(text, "N. Contrato:")
	b.TaxpayerID = anchoredLine(text, "NIF:")
	b.ConsumptionLocation = anchoredLine(text, "Morada de Fornecimento:")
	b.DocumentID = anchoredLine(text, "Fatura n.")
	b.ReferencePeriod = anchoredLine(text, "Periodo de Faturacao:")
	b.RawIssueDate = anchoredLine(text, "Data de Emissao:")
	b.RawDueDate = anchoredLine(text, "Data Limite de Pagamento:")
	b.RawAmount = anchoredLine(text, "Total a Pagar:")

	b.RawIssueDate = NormalizeDate(b.RawIssueDate, DayMonthYear, true)
	b.RawDueDate = NormalizeDate(b.RawDueDate, DayMonthYear, false)

	return finalize(b)
}

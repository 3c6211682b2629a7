package extract

import (
	"github.com/lodgeworks/utility-bills-tracker/constants"
	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

// Gold Energy electricity bills. The supply point is keyed by its CUI
// code, captured as the installation id.
func extractGoldenEnergy(text string) *entity.Bill {
	b := &entity.Bill{
		Provider:     constants.ProviderGoldenEnergy,
		ServiceType:  constants.ServiceElectricity,
		DocumentType: detectDocumentType(text),
	}

	b.ClientID = anchoredLine(text, "N. de Cliente:")
	b.ContractID = anchoredLine(text, "Contrato:")
	b.TaxpayerID = anchoredLine(text, "NIF:")
	b.InstallationID = anchoredLine(text, "CUI:")
	b.DocumentID = anchoredLine(text, "Fatura n.")
	b.ReferencePeriod = anchoredLine(text, "Periodo de Faturacao:")
	b.RawIssueDate = anchoredLine(text, "Data de Emissao:")
	b.RawDueDate = anchoredLine(text, "Data Limite de Pagamento:")
	b.RawAmount = anchoredLine(text, "Total a Pagar:")

	b.RawIssueDate = NormalizeDate(b.RawIssueDate, DayMonthYear, false)
	b.RawDueDate = NormalizeDate(b.RawDueDate, DayMonthYear, false)

	return finalize(b)
}

package extract

import (
	"strings"

	"github.com/lodgeworks/utility-bills-tracker/constants"
	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

// Águas de Gaia water bills. The client and contract ids share one
// "Cliente / Conta" field, the document id rides on the account-holder
// line, and the amount sits after a currency token on the balance line.
func extractWaterGaia(text string) *entity.Bill {
	b := &entity.Bill{
		Provider:     constants.ProviderWaterGaia,
		ServiceType:  constants.ServiceWater,
		DocumentType: detectDocumentType(text),
	}

	clientAccount := anchoredLine(text, "Cliente / Conta:")
	if parts := strings.Split(clientAccount, "/"); len(parts) == 2 {
		b.ClientID = parts[0]
		b.ContractID = clientAccount
	}

	b.ConsumptionLocation = anchoredLine(text, "Local Consumo:")
	b.TaxpayerID = anchoredLine(text, "NIF:")
	b.ReferencePeriod = anchoredLine(text, "Periodo Faturacao:")
	b.RawDueDate = anchoredLine(text, "Debito a partir de\r\n")
	b.RawIssueDate = anchoredLine(text, "Data de Emissao\r\n")

	// The document id is glued onto the account-holder line.
	b.DocumentID = anchoredLine(text, "Titular da conta:\r\n")

	// "Saldo Atual EUR 45,67" -> currency token, then the amount.
	if balance := anchoredLine(text, "Saldo Atual"); balance != "" {
		if parts := strings.Split(balance, " "); len(parts) == 2 {
			b.RawAmount = parts[1]
		}
	}

	b.RawIssueDate = NormalizeDate(b.RawIssueDate, DayMonthYear, true)
	b.RawDueDate = NormalizeDate(b.RawDueDate, DayMonthYear, true)

	return finalize(b)
}

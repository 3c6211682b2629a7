package constants

// DocumentType classifies the kind of document a provider issued.
type DocumentType int

const (
	DocConsumptionBill DocumentType = iota
	DocConsumptionBillSplit
	DocCreditNote
	DocZeroedInvoice
	DocInvoiceDetail
)

var documentNames = map[DocumentType]string{
	DocConsumptionBill:      "CONSUMPTION_BILL",
	DocConsumptionBillSplit: "CONSUMPTION_BILL_SPLIT",
	DocCreditNote:           "CREDIT_NOTE",
	DocZeroedInvoice:        "ZEROED_INVOICE",
	DocInvoiceDetail:        "INVOICE_DETAIL",
}

func (d DocumentType) String() string {
	if name, ok := documentNames[d]; ok {
		return name
	}
	return "CONSUMPTION_BILL"
}

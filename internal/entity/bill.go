package entity

import (
	"fmt"
	"time"

	"github.com/lodgeworks/utility-bills-tracker/constants"
)

// Bill is the canonical record extracted from one utility document.
//
// The Raw* string fields carry the values exactly as the extractor
// normalized them (dates as YYYY/MM/DD or empty, the amount with digits
// and decimal comma only); the typed fields are derived from them. The
// raw strings, not the parsed values, define duplicate equality.
type Bill struct {
	Provider     constants.Provider
	ServiceType  constants.ServiceType
	DocumentType constants.DocumentType

	DocumentID          string
	TaxpayerID          string
	ClientID            string
	ContractID          string
	AccountID           string
	ConsumptionLocation string
	InstallationID      string

	ReferencePeriod string
	RawRefStart     string
	RawRefEnd       string
	RawIssueDate    string
	RawDueDate      string
	RawAmount       string

	RefStart  *time.Time
	RefEnd    *time.Time
	IssueDate *time.Time
	DueDate   *time.Time
	Amount    *float64

	// Assigned during reconciliation, never by extraction.
	AccommodationID    string
	FolderID           string
	AccountingFolderID string
	IsAccounting       bool
}

// IsComplete reports whether the bill carries enough information to be
// reconciled. Credit notes and zeroed invoices only need an issue date;
// ordinary bills need both due and issue dates.
func (b *Bill) IsComplete() bool {
	if b.ClientID == "" && b.ContractID == "" && b.ConsumptionLocation == "" {
		return false
	}
	if b.Amount == nil {
		return false
	}

	switch b.DocumentType {
	case constants.DocCreditNote, constants.DocZeroedInvoice:
		return b.IssueDate != nil
	default:
		if b.RawDueDate == "" {
			return false
		}
		return b.DueDate != nil && b.IssueDate != nil
	}
}

// CanonicalFileName computes the output name for an accepted bill.
// Empty until the bill is complete and an accommodation was assigned.
func (b *Bill) CanonicalFileName() string {
	if !b.IsComplete() || b.AccommodationID == "" {
		return ""
	}

	var part string
	switch b.DocumentType {
	case constants.DocConsumptionBill, constants.DocConsumptionBillSplit:
		dt := b.DueDate
		if dt == nil {
			dt = b.IssueDate
		}
		part = dt.Format("2006_01_02")
	default:
		if b.IssueDate != nil {
			part = b.IssueDate.Format("2006_01_02")
		} else {
			part = time.Now().Format("2006_01_02")
		}
		if b.DocumentType == constants.DocCreditNote {
			part += fmt.Sprintf("_NC_%s", b.DocumentID)
		} else if b.DocumentType == constants.DocZeroedInvoice {
			part += "_FZ"
		}
	}

	return fmt.Sprintf("%s_%s_%s.pdf", part, b.Provider.DisplayName(), b.AccommodationID)
}

// DuplicateKey is the identity tuple of a bill. Two bills are duplicates
// iff their keys are equal; the type is comparable so it can be a map key.
type DuplicateKey struct {
	Provider    constants.Provider
	ServiceType constants.ServiceType
	DocumentID  string
	TaxpayerID  string
	ClientID    string
	ContractID  string
	RawIssue    string
	RawDue      string
	RawAmount   string
}

// Key returns the duplicate-identity tuple for the bill.
func (b *Bill) Key() DuplicateKey {
	return DuplicateKey{
		Provider:    b.Provider,
		ServiceType: b.ServiceType,
		DocumentID:  b.DocumentID,
		TaxpayerID:  b.TaxpayerID,
		ClientID:    b.ClientID,
		ContractID:  b.ContractID,
		RawIssue:    b.RawIssueDate,
		RawDue:      b.RawDueDate,
		RawAmount:   b.RawAmount,
	}
}

// Equal reports duplicate-equality between two bills.
func (b *Bill) Equal(other *Bill) bool {
	if other == nil {
		return false
	}
	return b.Key() == other.Key()
}

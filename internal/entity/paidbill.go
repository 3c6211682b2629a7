package entity

import "github.com/lodgeworks/utility-bills-tracker/constants"

// PaidBill is one historic record of a bill that was already paid.
type PaidBill struct {
	Provider        constants.Provider
	ServiceType     constants.ServiceType
	AccommodationID string
	DocumentID      string
	// OriginalFileID points at the stored file of the paid bill.
	OriginalFileID string
}

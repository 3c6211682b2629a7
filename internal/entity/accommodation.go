package entity

import (
	"time"

	"github.com/lodgeworks/utility-bills-tracker/constants"
)

// Accommodation is a managed property that bills get attributed to.
// Loaded once at startup; read-only during a run.
type Accommodation struct {
	ID       string
	Provider constants.Provider

	// Matching keys. A key left empty on the accommodation side never
	// matches.
	ClientID       string
	AccountID      string
	ContractID     string
	Location       string
	InstallationID string

	// ServiceStart is the date the accommodation entered management.
	ServiceStart time.Time
	// ClosedThrough, when set, marks the end of a closed accounting
	// period; bills dated on or before it can no longer be booked.
	ClosedThrough *time.Time

	FolderID           string
	AccountingFolderID string

	// AlwaysAccounting flags services whose bills are routed to the
	// accounting folder regardless of amount.
	AlwaysAccounting map[constants.ServiceType]bool
}

// ValidStartDate reports whether d falls on or after the service start.
func (a *Accommodation) ValidStartDate(d time.Time) bool {
	return !d.Before(a.ServiceStart)
}

// InClosedPeriod reports whether d falls inside a closed accounting period.
func (a *Accommodation) InClosedPeriod(d time.Time) bool {
	return a.ClosedThrough != nil && !d.After(*a.ClosedThrough)
}

// MustAccounting reports whether bills for the given service always need
// accounting routing.
func (a *Accommodation) MustAccounting(s constants.ServiceType) bool {
	return a.AlwaysAccounting[s]
}

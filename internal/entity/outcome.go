package entity

import (
	"github.com/google/uuid"

	"github.com/lodgeworks/utility-bills-tracker/constants"
)

// FileRef identifies the source document of an outcome: the id the file
// carries in its source system (mailbox or storage) plus its display name.
type FileRef struct {
	ID       uuid.UUID
	SourceID string
	Name     string
}

// NewFileRef assigns a fresh outcome id to a source file.
func NewFileRef(sourceID, name string) FileRef {
	return FileRef{ID: uuid.New(), SourceID: sourceID, Name: name}
}

// Accepted wraps a bill that passed every reconciliation rule.
type Accepted struct {
	File FileRef
	Bill *Bill
	// OutputName is the canonical display name, cached when the outcome
	// was created. Split siblings share the pre-split name.
	OutputName string
}

// Rejected wraps a detected bill that failed a reconciliation rule; it is
// used for the error, not-found and expired lists.
type Rejected struct {
	File FileRef
	Tag  constants.OutcomeTag
	Bill *Bill
}

// Duplicated wraps a bill that duplicates an earlier one, either inside
// the batch or against the paid-bill history.
type Duplicated struct {
	File FileRef
	Tag  constants.OutcomeTag
	Bill *Bill
	// OriginalFileID links to the already-paid file, when known.
	OriginalFileID string
}

// Ignored marks a document that never became a valid bill; it carries no
// bill at all.
type Ignored struct {
	File FileRef
	Tag  constants.OutcomeTag
}

// BatchResult groups the six outcome lists of one run.
type BatchResult struct {
	Accepted   []Accepted
	NotFound   []Rejected
	Errors     []Rejected
	Expired    []Rejected
	Duplicates []Duplicated
	Ignored    []Ignored
}

// Total returns the number of documents across all lists.
func (r *BatchResult) Total() int {
	return len(r.Accepted) + len(r.NotFound) + len(r.Errors) +
		len(r.Expired) + len(r.Duplicates) + len(r.Ignored)
}
